package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/satyammall/stockledger/internal/domain/models"
)

// csvDateLayout fixes the exported date format so the same filtered set
// always produces the same bytes, regardless of host locale.
const csvDateLayout = "02/01/2006, 15:04:05"

var csvHeader = []string{"Date", "Type", "Item", "Quantity", "Unit", "Location", "Person", "Notes", "File"}

// CSVRows derives the flat CSV projection: a header row plus exactly one row
// per filtered transaction. Item, person, and notes columns are wrapped in
// double quotes when present, matching the historical export format.
func CSVRows(filtered []models.Transaction) [][]string {
	rows := make([][]string, 0, len(filtered)+1)
	rows = append(rows, csvHeader)
	for _, tx := range filtered {
		rows = append(rows, []string{
			tx.Date.Format(csvDateLayout),
			string(tx.Kind),
			quoteWrap(tx.ItemName),
			formatQty(tx.Quantity),
			tx.Unit,
			tx.Location,
			quoteWrap(tx.PersonName),
			quoteWrap(tx.Notes),
			tx.FileURL,
		})
	}
	return rows
}

// EncodeCSV renders projected rows to bytes, comma-separated with CRLF line
// endings. Quoting is already applied by the projection, so rows are joined
// verbatim.
func EncodeCSV(rows [][]string) []byte {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\r\n")
	}
	return []byte(b.String())
}

// Document carries the structured sections handed to the PDF renderer. The
// projection shapes data only; rendering happens elsewhere.
type Document struct {
	Title        string
	Stats        models.Stats
	Transactions []models.Transaction
	Floors       []FloorSection
}

// FloorSection is one location block of the document. Transactions is
// populated only in the per-location detail variant.
type FloorSection struct {
	Summary      models.FloorSummary
	Transactions []models.Transaction
}

// BuildDocument projects a filtered set and its aggregation into the
// full-report document: header stats, the complete transaction table, and
// one block per floor with its item breakdown.
func BuildDocument(filtered []models.Transaction, summary models.Summary) Document {
	doc := Document{
		Title:        "Satyam Mall Stock Report",
		Stats:        summary.Stats,
		Transactions: filtered,
	}
	for _, floor := range summary.Floors {
		doc.Floors = append(doc.Floors, FloorSection{Summary: floor})
	}
	return doc
}

// BuildLocationDocument projects the detail variant for a single location:
// only that floor's block, carrying the location's own transaction list.
func BuildLocationDocument(location string, filtered []models.Transaction, summary models.Summary) Document {
	scoped := Filter{Location: location}.Apply(filtered)
	doc := Document{
		Title:        fmt.Sprintf("%s Stock Report", location),
		Stats:        Aggregate(scoped).Stats,
		Transactions: scoped,
	}
	for _, floor := range summary.Floors {
		if floor.Location != location {
			continue
		}
		doc.Floors = append(doc.Floors, FloorSection{Summary: floor, Transactions: scoped})
	}
	return doc
}

// CSVFileName names the full-log CSV export for the given day.
func CSVFileName(date time.Time) string {
	return fmt.Sprintf("report_%s.csv", date.Format("2006-01-02"))
}

// PDFFileName names the mall-wide PDF export for the given day.
func PDFFileName(date time.Time) string {
	return fmt.Sprintf("satyam_mall_report_%s.pdf", date.Format("2006-01-02"))
}

// LocationPDFFileName names the per-location PDF export, with spaces in the
// location replaced by underscores.
func LocationPDFFileName(location string, date time.Time) string {
	return fmt.Sprintf("%s_report_%s.pdf", strings.ReplaceAll(location, " ", "_"), date.Format("2006-01-02"))
}

func quoteWrap(value string) string {
	if value == "" {
		return ""
	}
	return `"` + value + `"`
}

func formatQty(qty float64) string {
	return strconv.FormatFloat(qty, 'f', -1, 64)
}
