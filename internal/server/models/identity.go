package models

// Identity is the authenticated actor performing an operation. Core
// services receive it as an explicit parameter, never from ambient state.
type Identity struct {
	ID    int64
	Name  string
	Email string
}
