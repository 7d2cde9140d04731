package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satyammall/stockledger/internal/domain/models"
	"github.com/satyammall/stockledger/internal/service/report"
	"github.com/satyammall/stockledger/internal/service/submit"
)

type fakeLedger struct {
	txs       []models.Transaction
	submitted []models.TransactionRequest
	failFor   map[string]bool
}

func (f *fakeLedger) SubmitTransaction(_ context.Context, req models.TransactionRequest) error {
	if f.failFor[req.ItemName] {
		return errors.New("sheet append rejected")
	}
	f.submitted = append(f.submitted, req)
	return nil
}

func (f *fakeLedger) List(context.Context) ([]models.Transaction, error) {
	return f.txs, nil
}

type fakeInventory struct {
	items []models.InventoryItem
	err   error
}

func (f *fakeInventory) Snapshot(context.Context) ([]models.InventoryItem, error) {
	return f.items, f.err
}

type fakeRenderer struct {
	lastHTML string
}

func (f *fakeRenderer) RenderPDF(_ context.Context, html string) ([]byte, error) {
	f.lastHTML = html
	return []byte("%PDF-FAKE"), nil
}

func fixtureLog() []models.Transaction {
	return []models.Transaction{
		{ID: "t1", Date: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), Kind: models.KindIssue, ItemName: "Bolt", Quantity: 5, Unit: "pcs", Location: "Floor 1", PersonName: "Ravi"},
		{ID: "t2", Date: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), Kind: models.KindReceive, ItemName: "Paint", Quantity: 10, Unit: "ltr", Location: "Store", PersonName: "Meena"},
	}
}

func newTestServer(ledger *fakeLedger, inventory *fakeInventory, pdf *fakeRenderer) *gin.Engine {
	gin.SetMode(gin.TestMode)

	reports := report.NewService(ledger, nil)
	pipeline := submit.NewPipeline(ledger, nil, nil)
	txHandler := NewTransactionHandler(inventory, pipeline, reports, nil)
	reportHandler := NewReportHandler(reports, pdf, nil)
	reportHandler.now = func() time.Time { return time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC) }

	r := gin.New()
	r.POST("/api/v1/transactions", txHandler.SubmitBatch)
	r.GET("/api/v1/transactions", txHandler.ListTransactions)
	r.GET("/api/v1/inventory", txHandler.ListInventory)
	r.GET("/api/v1/reports/summary", reportHandler.Summary)
	r.GET("/api/v1/reports/export/csv", reportHandler.ExportCSV)
	r.GET("/api/v1/reports/export/pdf", reportHandler.ExportPDF)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitBatchSuccess(t *testing.T) {
	ledger := &fakeLedger{}
	inventory := &fakeInventory{items: []models.InventoryItem{{Name: "Bolt", Quantity: 50, Unit: "pcs"}}}
	r := newTestServer(ledger, inventory, &fakeRenderer{})

	w := postJSON(t, r, "/api/v1/transactions", gin.H{
		"kind":        "Issue",
		"location":    "Floor 1",
		"person_name": "Ravi",
		"items": []gin.H{
			{"item_name": "Bolt", "quantity": "2", "unit": "pcs"},
		},
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp submitBatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, submit.OutcomeSuccess, resp.Result.Outcome)
	require.Len(t, resp.Items, 1)
	assert.Empty(t, resp.Items[0].ItemName, "form resets to one blank item")

	require.Len(t, ledger.submitted, 1)
	assert.Equal(t, "Floor 1", ledger.submitted[0].Location)
	assert.Equal(t, 2.0, ledger.submitted[0].Quantity)
}

func TestSubmitBatchInsufficientStock(t *testing.T) {
	ledger := &fakeLedger{}
	inventory := &fakeInventory{items: []models.InventoryItem{{Name: "Bolt", Quantity: 5, Unit: "pcs"}}}
	r := newTestServer(ledger, inventory, &fakeRenderer{})

	w := postJSON(t, r, "/api/v1/transactions", gin.H{
		"kind": "Issue",
		"items": []gin.H{
			{"item_name": "Bolt", "quantity": "10", "unit": "pcs"},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient stock")
	assert.Empty(t, ledger.submitted)
}

func TestSubmitBatchPartialFailure(t *testing.T) {
	ledger := &fakeLedger{failFor: map[string]bool{"Paint": true}}
	inventory := &fakeInventory{items: []models.InventoryItem{
		{Name: "Bolt", Quantity: 50, Unit: "pcs"},
		{Name: "Paint", Quantity: 20, Unit: "ltr"},
	}}
	r := newTestServer(ledger, inventory, &fakeRenderer{})

	w := postJSON(t, r, "/api/v1/transactions", gin.H{
		"kind":     "Issue",
		"location": "Floor 2",
		"items": []gin.H{
			{"item_name": "Bolt", "quantity": "1", "unit": "pcs"},
			{"item_name": "Paint", "quantity": "1", "unit": "ltr"},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp submitBatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, submit.OutcomePartial, resp.Result.Outcome)
	assert.Equal(t, []string{"Paint"}, resp.Result.Failed)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Paint", resp.Items[0].ItemName)
}

func TestSubmitBatchRejectsUnknownKind(t *testing.T) {
	r := newTestServer(&fakeLedger{}, &fakeInventory{}, &fakeRenderer{})

	w := postJSON(t, r, "/api/v1/transactions", gin.H{
		"kind":  "Transfer",
		"items": []gin.H{{"item_name": "Bolt", "quantity": "1", "unit": "pcs"}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTransactionsFiltered(t *testing.T) {
	ledger := &fakeLedger{txs: fixtureLog()}
	r := newTestServer(ledger, &fakeInventory{}, &fakeRenderer{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?kind=Issue", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Transactions []models.Transaction `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, "t1", resp.Transactions[0].ID)
}

func TestListTransactionsRejectsBadDates(t *testing.T) {
	r := newTestServer(&fakeLedger{}, &fakeInventory{}, &fakeRenderer{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?start=yesterday", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportCSVSetsFileName(t *testing.T) {
	ledger := &fakeLedger{txs: fixtureLog()}
	r := newTestServer(ledger, &fakeInventory{}, &fakeRenderer{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/export/csv", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "report_2026-03-05.csv")

	lines := bytes.Split(bytes.TrimSpace(w.Body.Bytes()), []byte("\r\n"))
	assert.Len(t, lines, 3, "header plus two transactions")
}

func TestExportPDFFullReport(t *testing.T) {
	ledger := &fakeLedger{txs: fixtureLog()}
	pdf := &fakeRenderer{}
	r := newTestServer(ledger, &fakeInventory{}, pdf)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/export/pdf", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF-FAKE", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "satyam_mall_report_2026-03-05.pdf")
	assert.Contains(t, pdf.lastHTML, "Satyam Mall Stock Report")
	assert.Contains(t, pdf.lastHTML, "Bolt")
}

func TestExportPDFLocationDetail(t *testing.T) {
	ledger := &fakeLedger{txs: fixtureLog()}
	pdf := &fakeRenderer{}
	r := newTestServer(ledger, &fakeInventory{}, pdf)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/export/pdf?detail_location=Floor%201", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Floor_1_report_2026-03-05.pdf")
	assert.Contains(t, pdf.lastHTML, "Floor 1 Stock Report")
	assert.NotContains(t, pdf.lastHTML, "Paint", "other locations stay out of the detail variant")
}

func TestSummaryEndpoint(t *testing.T) {
	ledger := &fakeLedger{txs: fixtureLog()}
	r := newTestServer(ledger, &fakeInventory{}, &fakeRenderer{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/summary", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var summary models.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.Stats.IssuedCount)
	assert.Equal(t, 1, summary.Stats.ReceivedCount)
	assert.Len(t, summary.Floors, 2)
}

func TestListInventory(t *testing.T) {
	inventory := &fakeInventory{items: []models.InventoryItem{{Name: "Bolt", Quantity: 50, Unit: "pcs"}}}
	r := newTestServer(&fakeLedger{}, inventory, &fakeRenderer{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bolt")
}