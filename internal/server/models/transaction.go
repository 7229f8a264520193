package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types. A sale is append-only history; only rentals may be
// updated or deleted after creation.
const (
	TransactionTypeSale   = "sale"
	TransactionTypeRental = "rental"
)

type Transaction struct {
	ID         int64
	PropertyID int64
	ClientID   int64
	Type       string
	Amount     decimal.Decimal
	Date       time.Time
}

// TransactionWithProperty is a transaction joined with the name of the
// property it refers to, used for order summaries.
type TransactionWithProperty struct {
	Transaction
	PropertyName string
}

// TransactionDetail adds both party names for the back-office listing.
type TransactionDetail struct {
	Transaction
	PropertyName string
	ClientName   string
}
