package models

import "time"

// OperationKind distinguishes stock movements in the ledger.
type OperationKind string

const (
	KindIssue   OperationKind = "Issue"
	KindReceive OperationKind = "Receive"

	// KindAll is only valid as a filter value, never on a record.
	KindAll OperationKind = "All"
)

// TransactionRequest is the payload appended to the external ledger for a
// single line item. It is built once at submission time and never mutated.
type TransactionRequest struct {
	Kind       OperationKind
	ItemName   string
	Quantity   float64
	Unit       string
	Location   string
	PersonName string
	Notes      string
	FileURL    string
}

// Transaction is the read model of one ledger row. The ledger itself is
// owned by the external store; a report run treats the full set as an
// immutable input.
type Transaction struct {
	ID         string        `json:"id"`
	Date       time.Time     `json:"date"`
	Kind       OperationKind `json:"kind"`
	ItemName   string        `json:"item_name"`
	Quantity   float64       `json:"quantity"`
	Unit       string        `json:"unit"`
	Location   string        `json:"location"`
	PersonName string        `json:"person_name"`
	Notes      string        `json:"notes"`
	FileURL    string        `json:"file_url,omitempty"`
}
