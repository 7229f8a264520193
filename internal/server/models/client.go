package models

// Client is a party on a transaction. Rows are provisioned implicitly the
// first time an identity records a transaction; Email is unique when set.
type Client struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Inquiries string
}
