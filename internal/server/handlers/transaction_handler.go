package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/satyammall/stockledger/internal/domain/models"
	"github.com/satyammall/stockledger/internal/repository/sheets"
	"github.com/satyammall/stockledger/internal/service/report"
	"github.com/satyammall/stockledger/internal/service/stock"
	"github.com/satyammall/stockledger/internal/service/submit"
)

// TransactionHandler serves batch submission and ledger queries.
type TransactionHandler struct {
	inventory sheets.Inventory
	pipeline  *submit.Pipeline
	reports   *report.Service
	logger    *zap.Logger
}

// NewTransactionHandler constructs the HTTP handler adapter.
func NewTransactionHandler(inventory sheets.Inventory, pipeline *submit.Pipeline, reports *report.Service, logger *zap.Logger) *TransactionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransactionHandler{inventory: inventory, pipeline: pipeline, reports: reports, logger: logger}
}

type submitLineItem struct {
	ItemName string `json:"item_name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

type submitBatchRequest struct {
	Kind       models.OperationKind `json:"kind" binding:"required"`
	Location   string               `json:"location"`
	PersonName string               `json:"person_name"`
	Notes      string               `json:"notes"`
	Items      []submitLineItem     `json:"items" binding:"required"`
	Attachment *attachmentPayload   `json:"attachment,omitempty"`
}

type attachmentPayload struct {
	Name     string `json:"name"`
	MIMEType string `json:"mime_type"`
	Content  []byte `json:"content"`
}

type submitBatchResponse struct {
	Result submit.Result     `json:"result"`
	Items  []models.LineItem `json:"items"`
}

// SubmitBatch validates and submits one batch of line items. The response
// carries the post-run form items so the client can resume editing exactly
// what the pipeline retained.
func (h *TransactionHandler) SubmitBatch(c *gin.Context) {
	var req submitBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid batch payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Kind != models.KindIssue && req.Kind != models.KindReceive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be Issue or Receive"})
		return
	}

	items, err := h.inventory.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading inventory snapshot", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "inventory unavailable"})
		return
	}
	snap := models.NewSnapshot(items)

	form := submit.NewForm()
	form.Location = req.Location
	form.PersonName = req.PersonName
	form.Notes = req.Notes
	form.Items = form.Items[:0]
	for _, item := range req.Items {
		key := form.AddItem()
		form.Items[len(form.Items)-1] = models.LineItem{
			Key:      key,
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Unit:     item.Unit,
		}
	}
	if req.Attachment != nil {
		form.Attachment = &models.Attachment{
			Name:     req.Attachment.Name,
			MIMEType: req.Attachment.MIMEType,
			Content:  req.Attachment.Content,
		}
	}

	result, err := h.pipeline.Run(c.Request.Context(), form, req.Kind, snap)
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, stock.ErrMissingField),
			errors.Is(err, stock.ErrUnknownItem),
			errors.Is(err, stock.ErrInsufficientStock):
		default:
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusOK
	if result.Outcome == submit.OutcomeFailure {
		status = http.StatusBadGateway
	}
	c.JSON(status, submitBatchResponse{Result: result, Items: form.Items})
}

// ListTransactions returns the filtered, display-ordered transaction log.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rep, err := h.reports.Build(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("failed building transaction list", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "transaction log unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": rep.Transactions})
}

// ListInventory returns the current stock snapshot.
func (h *TransactionHandler) ListInventory(c *gin.Context) {
	items, err := h.inventory.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading inventory", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "inventory unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func parseFilter(c *gin.Context) (report.Filter, error) {
	filter := report.Filter{
		Kind:     models.OperationKind(c.DefaultQuery("kind", string(models.KindAll))),
		Location: c.Query("location"),
	}

	if filter.Kind != models.KindAll && filter.Kind != models.KindIssue && filter.Kind != models.KindReceive {
		return report.Filter{}, errors.New("kind must be All, Issue, or Receive")
	}

	if raw := c.Query("start"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return report.Filter{}, errors.New("start must be formatted as 2006-01-02")
		}
		filter.Start = &start
	}
	if raw := c.Query("end"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return report.Filter{}, errors.New("end must be formatted as 2006-01-02")
		}
		filter.End = &end
	}

	return filter, nil
}
