package models

// Trend is a per-property activity summary. Properties without any
// transactions still appear, with zero counts.
type Trend struct {
	PropertyName string
	Location     string
	TimesSold    int64
	TimesRented  int64
}
