package models

import "github.com/shopspring/decimal"

// Property is a listing in the catalog. Description and ImageKey are
// optional; ImageKey references an object in the blob store and is
// persisted as returned, never interpreted.
type Property struct {
	ID          int64
	Name        string
	Location    string
	Price       decimal.Decimal
	Rooms       int
	Type        string
	Description string
	ImageKey    string
}
