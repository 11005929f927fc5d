package models

import (
	"strings"
	"time"
)

// Stock entry kinds as stored in the stock worksheet.
const (
	StockKindInitial = "initial"
	StockKindReceipt = "receipt"
)

// StockEntry is a manually recorded stock movement for a pigment: either an
// opening-balance snapshot or a goods receipt.
type StockEntry struct {
	Kind      string    `json:"kind"`
	PigmentID string    `json:"pigment_id"`
	Date      time.Time `json:"date"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	Notes     string    `json:"notes"`
}

// Grams returns the quantity normalized to grams. Unknown units are treated
// as grams.
func (e StockEntry) Grams() float64 {
	if strings.EqualFold(strings.TrimSpace(e.Unit), "kg") {
		return e.Quantity * 1000
	}
	return e.Quantity
}

// IsInitial reports whether the entry is an opening-balance snapshot.
func (e StockEntry) IsInitial() bool {
	return strings.EqualFold(strings.TrimSpace(e.Kind), StockKindInitial)
}

// ValidStockKind reports whether the value names a known stock entry kind.
func ValidStockKind(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case StockKindInitial, StockKindReceipt:
		return true
	}
	return false
}
