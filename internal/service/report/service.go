package report

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/satyammall/stockledger/internal/domain/models"
	"github.com/satyammall/stockledger/internal/repository/sheets"
)

// Report bundles one filtered view of the ledger with its aggregation.
type Report struct {
	Transactions []models.Transaction `json:"transactions"`
	Summary      models.Summary       `json:"summary"`
}

// Service reads the external transaction log and produces reports from it.
type Service struct {
	ledger sheets.Ledger
	logger *zap.Logger
}

// NewService wires a reporting service instance.
func NewService(ledger sheets.Ledger, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{ledger: ledger, logger: logger}
}

// Build loads the full log, applies the filter, and aggregates the result.
func (s *Service) Build(ctx context.Context, f Filter) (Report, error) {
	txs, err := s.ledger.List(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("build report: %w", err)
	}

	filtered := f.Apply(txs)
	summary := Aggregate(filtered)

	s.logger.Debug("report built",
		zap.Int("log_size", len(txs)),
		zap.Int("filtered", len(filtered)),
		zap.Int("floors", len(summary.Floors)))

	return Report{Transactions: filtered, Summary: summary}, nil
}
