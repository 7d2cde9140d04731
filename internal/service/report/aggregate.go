package report

import (
	"sort"

	"github.com/satyammall/stockledger/internal/domain/models"
)

// Aggregate folds a filtered transaction set into global stats and one
// FloorSummary per distinct location. The result is a pure function of the
// input: identical input reproduces identical output, including order.
//
// The per-item unit is the unit of the transaction that first introduced the
// item at that location. A ledger carrying inconsistent units for the same
// item and location keeps the oldest unit silently, which can misstate later
// rows; kept for compatibility with the historical export format.
func Aggregate(filtered []models.Transaction) models.Summary {
	var stats models.Stats

	itemNames := make(map[string]bool)
	floorIndex := make(map[string]int)
	floors := make([]models.FloorSummary, 0)
	// location -> item name -> position in that floor's Items slice
	itemIndex := make(map[string]map[string]int)
	// location -> item name -> persons already recorded
	personSeen := make(map[string]map[string]map[string]bool)

	for _, tx := range filtered {
		switch tx.Kind {
		case models.KindIssue:
			stats.IssuedCount++
			stats.IssuedQty += tx.Quantity
		case models.KindReceive:
			stats.ReceivedCount++
			stats.ReceivedQty += tx.Quantity
		}
		itemNames[tx.ItemName] = true

		fi, ok := floorIndex[tx.Location]
		if !ok {
			fi = len(floors)
			floorIndex[tx.Location] = fi
			floors = append(floors, models.FloorSummary{Location: tx.Location})
			itemIndex[tx.Location] = make(map[string]int)
			personSeen[tx.Location] = make(map[string]map[string]bool)
		}
		floor := &floors[fi]

		switch tx.Kind {
		case models.KindIssue:
			floor.IssuedCount++
			floor.IssuedQty += tx.Quantity
		case models.KindReceive:
			floor.ReceivedCount++
			floor.ReceivedQty += tx.Quantity
		}
		if tx.Date.After(floor.LastActivity) {
			floor.LastActivity = tx.Date
		}

		ii, ok := itemIndex[tx.Location][tx.ItemName]
		if !ok {
			ii = len(floor.Items)
			itemIndex[tx.Location][tx.ItemName] = ii
			floor.Items = append(floor.Items, models.ItemBreakdown{
				ItemName: tx.ItemName,
				Unit:     tx.Unit,
			})
			personSeen[tx.Location][tx.ItemName] = make(map[string]bool)
		}
		entry := &floor.Items[ii]

		switch tx.Kind {
		case models.KindIssue:
			entry.IssuedQty += tx.Quantity
		case models.KindReceive:
			entry.ReceivedQty += tx.Quantity
		}
		if tx.PersonName != "" && !personSeen[tx.Location][tx.ItemName][tx.PersonName] {
			personSeen[tx.Location][tx.ItemName][tx.PersonName] = true
			entry.Persons = append(entry.Persons, tx.PersonName)
		}
	}

	stats.DistinctItems = len(itemNames)
	stats.DistinctLocations = len(floors)

	// Busiest floors first; equal totals keep first-encountered order.
	sort.SliceStable(floors, func(i, j int) bool {
		return floors[i].IssuedCount+floors[i].ReceivedCount >
			floors[j].IssuedCount+floors[j].ReceivedCount
	})

	return models.Summary{Stats: stats, Floors: floors}
}
