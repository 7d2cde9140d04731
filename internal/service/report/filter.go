package report

import (
	"sort"
	"time"

	"github.com/satyammall/stockledger/internal/domain/models"
)

// Filter narrows the transaction log for one report run. A zero Kind or
// KindAll passes every kind; an empty or "All" Location passes every
// location. Start and End are calendar-day bounds, both inclusive.
type Filter struct {
	Kind     models.OperationKind
	Location string
	Start    *time.Time
	End      *time.Time
}

const locationAll = "All"

// Apply returns the matching subset in display order: most recent first,
// ties keeping input order. The input slice is never modified, so applying
// the same filter twice yields the same result.
func (f Filter) Apply(txs []models.Transaction) []models.Transaction {
	var lower, upper time.Time
	if f.Start != nil {
		lower = startOfDay(*f.Start)
	}
	if f.End != nil {
		// Inclusive through the entire end day: compare strictly against
		// the start of the following day.
		upper = startOfDay(*f.End).AddDate(0, 0, 1)
	}

	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Kind != "" && f.Kind != models.KindAll && tx.Kind != f.Kind {
			continue
		}
		if f.Location != "" && f.Location != locationAll && tx.Location != f.Location {
			continue
		}
		if f.Start != nil && tx.Date.Before(lower) {
			continue
		}
		if f.End != nil && !tx.Date.Before(upper) {
			continue
		}
		out = append(out, tx)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
