package models

import "time"

// Stats holds the global counters for one filtered transaction set.
type Stats struct {
	IssuedCount       int     `bson:"issued_count" json:"issued_count"`
	ReceivedCount     int     `bson:"received_count" json:"received_count"`
	IssuedQty         float64 `bson:"issued_qty" json:"issued_qty"`
	ReceivedQty       float64 `bson:"received_qty" json:"received_qty"`
	DistinctItems     int     `bson:"distinct_items" json:"distinct_items"`
	DistinctLocations int     `bson:"distinct_locations" json:"distinct_locations"`
}

// ItemBreakdown accumulates one item's movements at one location. Unit keeps
// the unit of the first transaction that introduced the item at the
// location; later rows never overwrite it, even when inconsistent, so a
// mixed-unit ledger shows the oldest unit. Persons keeps first-seen order.
type ItemBreakdown struct {
	ItemName    string   `bson:"item_name" json:"item_name"`
	IssuedQty   float64  `bson:"issued_qty" json:"issued_qty"`
	ReceivedQty float64  `bson:"received_qty" json:"received_qty"`
	Unit        string   `bson:"unit" json:"unit"`
	Persons     []string `bson:"persons" json:"persons"`
}

// FloorSummary is the derived per-location aggregate. It is recomputed from
// the filtered set on every report run and never persisted on its own.
type FloorSummary struct {
	Location      string          `bson:"location" json:"location"`
	IssuedCount   int             `bson:"issued_count" json:"issued_count"`
	ReceivedCount int             `bson:"received_count" json:"received_count"`
	IssuedQty     float64         `bson:"issued_qty" json:"issued_qty"`
	ReceivedQty   float64         `bson:"received_qty" json:"received_qty"`
	LastActivity  time.Time       `bson:"last_activity" json:"last_activity"`
	Items         []ItemBreakdown `bson:"items" json:"items"`
}

// Summary bundles the aggregation output for one filtered set.
type Summary struct {
	Stats  Stats          `bson:"stats" json:"stats"`
	Floors []FloorSummary `bson:"floors" json:"floors"`
}

// DailySnapshot is the archived form of one day's aggregation, written by
// the scheduler into MongoDB.
type DailySnapshot struct {
	Date         time.Time `bson:"date" json:"date"`
	Transactions int       `bson:"transactions" json:"transactions"`
	Summary      Summary   `bson:"summary" json:"summary"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
