package sheets

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/satyammall/stockledger/internal/config"
	"github.com/satyammall/stockledger/internal/domain/models"
)

const (
	transactionsRange = "Transactions!A:J"
	inventoryRange    = "Inventory!A:C"
	usersRange        = "Users!A:C"

	timestampLayout = "2006-01-02 15:04:05"
	dateLayout      = "2006-01-02"
)

// ErrUserNotFound indicates no user row matched the requested email.
var ErrUserNotFound = errors.New("user not found")

// Ledger is the transaction log collaborator: append-only writes plus a
// full read of the historical record.
type Ledger interface {
	SubmitTransaction(ctx context.Context, req models.TransactionRequest) error
	List(ctx context.Context) ([]models.Transaction, error)
}

// Inventory exposes the current stock snapshot.
type Inventory interface {
	Snapshot(ctx context.Context) ([]models.InventoryItem, error)
}

// Users looks up login accounts.
type Users interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

// GoogleSheetRepository implements the ledger, inventory, and user
// collaborators over one spreadsheet with a tab per concern.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
	now           func() time.Time
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
		now:           time.Now,
	}, nil
}

// SubmitTransaction writes one transaction request as a new ledger row. The
// row ID and timestamp are assigned here; the caller's request stays
// untouched.
func (r *GoogleSheetRepository) SubmitTransaction(ctx context.Context, req models.TransactionRequest) error {
	row := []interface{}{
		uuid.NewString(),
		r.now().Format(timestampLayout),
		string(req.Kind),
		req.ItemName,
		req.Quantity,
		req.Unit,
		req.Location,
		req.PersonName,
		req.Notes,
		req.FileURL,
	}

	if err := r.appendRow(ctx, transactionsRange, row); err != nil {
		return fmt.Errorf("append transaction for %s: %w", req.ItemName, err)
	}

	r.logger.Debug("transaction appended",
		zap.String("kind", string(req.Kind)),
		zap.String("item", req.ItemName),
		zap.String("location", req.Location))
	return nil
}

// List reads the full transaction log. Rows that fail to decode (including
// the header row) are skipped with a debug log rather than failing the read.
func (r *GoogleSheetRepository) List(ctx context.Context) ([]models.Transaction, error) {
	rows, err := r.readRange(ctx, transactionsRange)
	if err != nil {
		return nil, fmt.Errorf("load transaction log: %w", err)
	}

	txs := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := decodeTransaction(row)
		if err != nil {
			r.logger.Debug("skip unreadable ledger row", zap.Int("row", i+1), zap.Error(err))
			continue
		}
		txs = append(txs, tx)
	}

	return txs, nil
}

// Snapshot reads the inventory tab into item rows.
func (r *GoogleSheetRepository) Snapshot(ctx context.Context) ([]models.InventoryItem, error) {
	rows, err := r.readRange(ctx, inventoryRange)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}

	items := make([]models.InventoryItem, 0, len(rows))
	for i, row := range rows {
		if len(row) < 3 {
			continue
		}
		qty, err := parseFloat(row[1])
		if err != nil {
			r.logger.Debug("skip inventory row with invalid quantity", zap.Int("row", i+1), zap.Error(err))
			continue
		}
		items = append(items, models.InventoryItem{
			Name:     cell(row, 0),
			Quantity: qty,
			Unit:     cell(row, 2),
		})
	}

	return items, nil
}

// FindByEmail scans the user tab for an exact email match.
func (r *GoogleSheetRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	rows, err := r.readRange(ctx, usersRange)
	if err != nil {
		return models.User{}, fmt.Errorf("load users: %w", err)
	}

	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		if cell(row, 0) != email {
			continue
		}
		return models.User{
			Email:        email,
			Name:         cell(row, 1),
			PasswordHash: cell(row, 2),
		}, nil
	}

	return models.User{}, ErrUserNotFound
}

func (r *GoogleSheetRepository) appendRow(ctx context.Context, sheetRange string, values []interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}

	return nil
}

func (r *GoogleSheetRepository) readRange(ctx context.Context, sheetRange string) ([][]interface{}, error) {
	if sheetRange == "" {
		return nil, fmt.Errorf("sheetRange must not be empty")
	}

	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}

	return resp.Values, nil
}

func decodeTransaction(row []interface{}) (models.Transaction, error) {
	if len(row) < 9 {
		return models.Transaction{}, fmt.Errorf("row has %d cells, want at least 9", len(row))
	}

	date, err := parseDate(row[1])
	if err != nil {
		return models.Transaction{}, err
	}

	kind := models.OperationKind(cell(row, 2))
	if kind != models.KindIssue && kind != models.KindReceive {
		return models.Transaction{}, fmt.Errorf("unknown operation kind %q", cell(row, 2))
	}

	qty, err := parseFloat(row[4])
	if err != nil {
		return models.Transaction{}, err
	}

	return models.Transaction{
		ID:         cell(row, 0),
		Date:       date,
		Kind:       kind,
		ItemName:   cell(row, 3),
		Quantity:   qty,
		Unit:       cell(row, 5),
		Location:   cell(row, 6),
		PersonName: cell(row, 7),
		Notes:      cell(row, 8),
		FileURL:    cell(row, 9),
	}, nil
}

func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	return fmt.Sprint(row[i])
}

func parseDate(value interface{}) (time.Time, error) {
	str := fmt.Sprint(value)
	if str == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(timestampLayout, str); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, str); err == nil {
		return t, nil
	}
	if len(str) > 10 {
		str = str[:10]
	}
	return time.Parse(dateLayout, str)
}

func parseFloat(value interface{}) (float64, error) {
	str := fmt.Sprint(value)
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.ParseFloat(str, 64)
}
