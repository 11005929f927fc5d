package models

// Customer is a client of the compounding workshop, keyed by a unique code.
type Customer struct {
	Code      string `json:"code"`
	ShortName string `json:"short_name"`
	Notes     string `json:"notes"`
}
