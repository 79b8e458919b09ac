// Package upload turns a stored record into the posting request the remote
// bookkeeping API accepts, re-validating the resolution against the live
// metadata snapshot first. The user may have edited the record since it was
// created, so nothing decided at creation time is trusted here.
package upload

import (
	"log/slog"

	"github.com/hanwen-zhu/billsnap/constants"
	"github.com/hanwen-zhu/billsnap/internal/common"
	"github.com/hanwen-zhu/billsnap/internal/entity"
	"github.com/hanwen-zhu/billsnap/internal/resolve"
	"github.com/hanwen-zhu/billsnap/internal/textnorm"
)

// Builder re-validates records and produces posting payloads.
type Builder struct {
	logger *slog.Logger
	cfg    common.LedgerConfig
}

func NewBuilder(cfg common.LedgerConfig, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger, cfg: cfg}
}

// Build maps a record plus the current metadata snapshot into the posting
// payload, or a reasoned failure. Validation order: endpoint configuration,
// leaf account, leaf category, direction.
func (b *Builder) Build(rec *entity.Record, snap entity.Snapshot) (map[string]any, error) {
	if b.cfg.BaseURL == "" || b.cfg.Token == "" {
		return nil, failure(ReasonMissingConfig)
	}
	if rec.AccountID == "" || !snap.IsLeafAccount(rec.AccountID) {
		return nil, failure(ReasonNoLeafAccount)
	}
	if rec.Resolution == nil || rec.Resolution.CategoryID == "" {
		return nil, failure(ReasonNoLeafCategory)
	}
	cat, ok := snap.CategoryByID(rec.Resolution.CategoryID)
	if !ok || !snap.IsLeafCategory(cat.ID) {
		return nil, failure(ReasonNoLeafCategory)
	}
	if cat.Direction == constants.DirectionTransfer {
		return nil, failure(ReasonTransferCategory)
	}

	// The amount-direction inference runs again against the possibly-edited
	// record; a conflicting category is swapped for a sibling when possible.
	dir := resolve.InferDirection(rec.Receipt, textnorm.Normalize(rec.RawText))
	categoryID := cat.ID
	if cat.Direction != dir {
		fallbackID, ok := resolve.FallbackCategoryByType(snap, cat.ID, dir)
		if !ok {
			return nil, failure(ReasonDirectionConflict)
		}
		b.logger.Info("upload.category_fallback",
			"record_id", rec.ID, "from", cat.ID, "to", fallbackID, "direction", dir)
		categoryID = fallbackID
	}

	var amountMinor int64
	currency := constants.DefaultCurrency
	if rec.Receipt.Amount != nil {
		amountMinor = rec.Receipt.Amount.Minor
		if amountMinor < 0 {
			amountMinor = -amountMinor
		}
		if rec.Receipt.Amount.Currency != "" {
			currency = rec.Receipt.Amount.Currency
		}
	}

	payload := map[string]any{
		"record_id":    rec.ID.String(),
		"amount_minor": amountMinor,
		"currency":     currency,
		"direction":    string(dir),
		"category_id":  categoryID,
		"account_id":   rec.AccountID,
		"pay_time":     rec.PayTime,
	}
	if rec.Resolution.TagID != "" {
		payload["tag_id"] = rec.Resolution.TagID
	}
	if rec.Receipt.Merchant != "" {
		payload["merchant"] = rec.Receipt.Merchant
	}
	if rec.Receipt.Item != "" {
		payload["remark"] = rec.Receipt.Item
	}
	if rec.Receipt.OrderID != "" {
		payload["order_id"] = rec.Receipt.OrderID
	}

	if err := ValidatePayload(payload); err != nil {
		return nil, common.WrapError(err, "posting payload rejected by schema")
	}
	return payload, nil
}
