package stock

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/satyammall/stockledger/internal/domain/models"
)

// ErrMissingField indicates a line item with an empty name, quantity, or unit.
var ErrMissingField = errors.New("missing required field")

// ErrUnknownItem indicates an issue for an item the inventory does not carry.
var ErrUnknownItem = errors.New("unknown inventory item")

// ErrInsufficientStock indicates an issue that would drive stock negative.
var ErrInsufficientStock = errors.New("insufficient stock")

// ValidateBatch checks every line item against the inventory snapshot before
// any submission happens. The first failing item aborts the whole batch, so
// a validation failure never produces a partially submitted batch.
func ValidateBatch(items []models.LineItem, snap models.Snapshot, kind models.OperationKind) error {
	if len(items) == 0 {
		return fmt.Errorf("batch has no line items: %w", ErrMissingField)
	}

	for i, item := range items {
		if err := validateItem(item, snap, kind); err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
	}

	return nil
}

func validateItem(item models.LineItem, snap models.Snapshot, kind models.OperationKind) error {
	name := strings.TrimSpace(item.ItemName)
	rawQty := strings.TrimSpace(item.Quantity)
	unit := strings.TrimSpace(item.Unit)

	if name == "" || rawQty == "" || unit == "" {
		return fmt.Errorf("item name, quantity, and unit are required: %w", ErrMissingField)
	}

	requested, err := decimal.NewFromString(rawQty)
	if err != nil || !requested.IsPositive() {
		// A quantity that does not parse as a positive decimal counts as
		// not provided.
		return fmt.Errorf("quantity %q is not a positive number: %w", rawQty, ErrMissingField)
	}

	// Receives may introduce items the catalog has never seen.
	if kind != models.KindIssue {
		return nil
	}

	stocked, ok := snap.Lookup(name)
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownItem)
	}

	available := decimal.NewFromFloat(stocked.Quantity)
	if available.LessThan(requested) {
		return fmt.Errorf("%q has %s %s, requested %s: %w",
			name, available.String(), stocked.Unit, requested.String(), ErrInsufficientStock)
	}

	return nil
}

// SyncUnits returns a copy of the items with each issue line's unit replaced
// by the unit of its matched inventory item. Unmatched names keep whatever
// unit they carry; validation will reject them anyway.
func SyncUnits(items []models.LineItem, snap models.Snapshot) []models.LineItem {
	synced := make([]models.LineItem, len(items))
	copy(synced, items)
	for i := range synced {
		if stocked, ok := snap.Lookup(strings.TrimSpace(synced[i].ItemName)); ok {
			synced[i].Unit = stocked.Unit
		}
	}
	return synced
}

// ParseQuantity converts a validated decimal quantity string to the float64
// carried on transaction requests.
func ParseQuantity(raw string) (float64, error) {
	qty, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse quantity %q: %w", raw, err)
	}
	return qty.InexactFloat64(), nil
}
