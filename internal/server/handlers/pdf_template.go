package handlers

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/satyammall/stockledger/internal/service/report"
)

// documentTemplate lays out the report sections produced by the export
// projection. The resulting HTML is shipped to the renderer service, which
// owns the actual PDF bytes.
var documentTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006 15:04")
	},
	"formatQty": func(qty float64) string {
		s := fmt.Sprintf("%.4f", qty)
		s = strings.TrimRight(s, "0")
		return strings.TrimRight(s, ".")
	},
	"join": strings.Join,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; margin: 24px; }
h1 { font-size: 20px; }
h2 { font-size: 15px; margin-top: 24px; }
table { border-collapse: collapse; width: 100%; margin-top: 8px; }
th, td { border: 1px solid #999; padding: 4px 6px; text-align: left; }
th { background: #eee; }
.stats span { display: inline-block; margin-right: 18px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="stats">
<span>Issued: {{.Stats.IssuedCount}} ({{formatQty .Stats.IssuedQty}})</span>
<span>Received: {{.Stats.ReceivedCount}} ({{formatQty .Stats.ReceivedQty}})</span>
<span>Items: {{.Stats.DistinctItems}}</span>
<span>Locations: {{.Stats.DistinctLocations}}</span>
</div>

<h2>Transactions</h2>
<table>
<tr><th>Date</th><th>Type</th><th>Item</th><th>Qty</th><th>Unit</th><th>Location</th><th>Person</th><th>Notes</th></tr>
{{range .Transactions}}
<tr><td>{{formatDate .Date}}</td><td>{{.Kind}}</td><td>{{.ItemName}}</td><td>{{formatQty .Quantity}}</td><td>{{.Unit}}</td><td>{{.Location}}</td><td>{{.PersonName}}</td><td>{{.Notes}}</td></tr>
{{end}}
</table>

{{range .Floors}}
<h2>{{.Summary.Location}}</h2>
<div class="stats">
<span>Issued: {{.Summary.IssuedCount}} ({{formatQty .Summary.IssuedQty}})</span>
<span>Received: {{.Summary.ReceivedCount}} ({{formatQty .Summary.ReceivedQty}})</span>
<span>Last activity: {{formatDate .Summary.LastActivity}}</span>
</div>
<table>
<tr><th>Item</th><th>Issued</th><th>Received</th><th>Unit</th><th>Persons</th></tr>
{{range .Summary.Items}}
<tr><td>{{.ItemName}}</td><td>{{formatQty .IssuedQty}}</td><td>{{formatQty .ReceivedQty}}</td><td>{{.Unit}}</td><td>{{join .Persons ", "}}</td></tr>
{{end}}
</table>
{{if .Transactions}}
<table>
<tr><th>Date</th><th>Type</th><th>Item</th><th>Qty</th><th>Unit</th><th>Person</th><th>Notes</th></tr>
{{range .Transactions}}
<tr><td>{{formatDate .Date}}</td><td>{{.Kind}}</td><td>{{.ItemName}}</td><td>{{formatQty .Quantity}}</td><td>{{.Unit}}</td><td>{{.PersonName}}</td><td>{{.Notes}}</td></tr>
{{end}}
</table>
{{end}}
{{end}}
</body>
</html>`))

func renderDocumentHTML(doc report.Document) (string, error) {
	var b strings.Builder
	if err := documentTemplate.Execute(&b, doc); err != nil {
		return "", fmt.Errorf("render report template: %w", err)
	}
	return b.String(), nil
}
