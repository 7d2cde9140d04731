package submit

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/satyammall/stockledger/internal/domain/models"
	"github.com/satyammall/stockledger/internal/service/stock"
)

// Sink receives one transaction request per validated line item.
type Sink interface {
	SubmitTransaction(ctx context.Context, req models.TransactionRequest) error
}

// Uploader stores a batch attachment and returns its shareable URL.
type Uploader interface {
	Upload(ctx context.Context, att models.Attachment) (string, error)
}

// Progress observes per-item submission progress. current is 1-based and
// emitted once per item, after that item's outcome is known.
type Progress func(current, total int)

// Outcome classifies a completed submission batch.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomePartial Outcome = "partial"
	OutcomeFailure Outcome = "failure"
)

// Result summarizes one batch run. Failed names every item whose submission
// was rejected; Errors carries the matching user-facing messages. Warnings
// holds non-fatal degradations such as a failed attachment upload.
type Result struct {
	Outcome   Outcome  `json:"outcome"`
	Submitted []string `json:"submitted"`
	Failed    []string `json:"failed,omitempty"`
	Errors    []string `json:"errors,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// Form is the editable state of one submission session: the line items under
// entry, the fields shared by the whole batch, and the optional attachment.
// Only the pipeline rewrites it, and only after a batch completes.
type Form struct {
	Items      []models.LineItem  `json:"items"`
	Location   string             `json:"location"`
	PersonName string             `json:"person_name"`
	Notes      string             `json:"notes"`
	Attachment *models.Attachment `json:"-"`

	arena models.KeyArena
}

// NewForm starts a session with a single blank line item.
func NewForm() *Form {
	f := &Form{}
	f.Items = []models.LineItem{{Key: f.arena.Next()}}
	return f
}

// AddItem appends a blank line item and returns its key.
func (f *Form) AddItem() int {
	key := f.arena.Next()
	f.Items = append(f.Items, models.LineItem{Key: key})
	return key
}

func (f *Form) reset() {
	f.Items = []models.LineItem{{Key: f.arena.Next()}}
	f.Location = ""
	f.PersonName = ""
	f.Notes = ""
	f.Attachment = nil
}

// Pipeline submits validated batches to the external sink, one item at a
// time. There is no concurrency and no cancellation: once a batch starts it
// runs through every item.
type Pipeline struct {
	sink      Sink
	uploader  Uploader
	logger    *zap.Logger
	progress  Progress
	onSuccess func()
}

// NewPipeline wires a submission pipeline.
func NewPipeline(sink Sink, uploader Uploader, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{sink: sink, uploader: uploader, logger: logger}
}

// OnProgress registers the per-item progress observer.
func (p *Pipeline) OnProgress(fn Progress) {
	p.progress = fn
}

// OnSuccess registers a callback fired whenever at least one item of a batch
// was submitted, including partial outcomes.
func (p *Pipeline) OnSuccess(fn func()) {
	p.onSuccess = fn
}

// Run validates the form against the snapshot and submits its items in
// order. A validation error returns before any sink call. Submission
// failures are tolerated per item; the form is rewritten according to the
// batch outcome: fully reset on success, reduced to the failed items on a
// partial outcome, untouched on total failure.
func (p *Pipeline) Run(ctx context.Context, form *Form, kind models.OperationKind, snap models.Snapshot) (Result, error) {
	if kind == models.KindIssue {
		form.Items = stock.SyncUnits(form.Items, snap)
	}

	if err := stock.ValidateBatch(form.Items, snap, kind); err != nil {
		return Result{}, err
	}

	result := Result{Outcome: OutcomeFailure}

	fileURL := ""
	if kind == models.KindReceive && form.Attachment != nil {
		var url string
		var err error
		if p.uploader != nil {
			url, err = p.uploader.Upload(ctx, *form.Attachment)
		} else {
			err = fmt.Errorf("no uploader configured")
		}
		if err != nil {
			// Upload failure degrades to "no file"; the batch goes ahead.
			p.logger.Warn("attachment upload failed, submitting without file", zap.Error(err))
			result.Warnings = append(result.Warnings, fmt.Sprintf("file upload failed, transactions recorded without attachment: %v", err))
		} else {
			fileURL = url
		}
	}

	total := len(form.Items)
	failedNames := make(map[string]bool, total)

	for i, item := range form.Items {
		req, err := p.buildRequest(item, form, kind)
		if err == nil {
			if i == 0 {
				// The attachment link rides on the first item only.
				req.FileURL = fileURL
			}
			err = p.sink.SubmitTransaction(ctx, req)
		}

		if err != nil {
			p.logger.Error("item submission failed",
				zap.String("item", item.ItemName),
				zap.Int("position", i+1),
				zap.Error(err))
			failedNames[item.ItemName] = true
			result.Failed = append(result.Failed, item.ItemName)
			result.Errors = append(result.Errors, fmt.Sprintf("could not record %q: %v", item.ItemName, err))
		} else {
			result.Submitted = append(result.Submitted, item.ItemName)
		}

		if p.progress != nil {
			p.progress(i+1, total)
		}
	}

	switch {
	case len(result.Failed) == 0:
		result.Outcome = OutcomeSuccess
		form.reset()
	case len(result.Submitted) > 0:
		result.Outcome = OutcomePartial
		// Retention is by name equality, so every duplicate of a failed
		// name stays on the form. Common fields are preserved for retry.
		retained := form.Items[:0]
		for _, item := range form.Items {
			if failedNames[item.ItemName] {
				retained = append(retained, item)
			}
		}
		form.Items = retained
	}

	if len(result.Submitted) > 0 && p.onSuccess != nil {
		p.onSuccess()
	}

	p.logger.Info("batch completed",
		zap.String("outcome", string(result.Outcome)),
		zap.Int("submitted", len(result.Submitted)),
		zap.Int("failed", len(result.Failed)))

	return result, nil
}

func (p *Pipeline) buildRequest(item models.LineItem, form *Form, kind models.OperationKind) (models.TransactionRequest, error) {
	qty, err := stock.ParseQuantity(item.Quantity)
	if err != nil {
		return models.TransactionRequest{}, err
	}

	return models.TransactionRequest{
		Kind:       kind,
		ItemName:   item.ItemName,
		Quantity:   qty,
		Unit:       item.Unit,
		Location:   form.Location,
		PersonName: form.PersonName,
		Notes:      form.Notes,
	}, nil
}
