package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/hanwen-zhu/billsnap/constants"
)

// Resolution is a successful category/tag/direction decision. Absence of a
// field is meaningful: an empty TagID means "no tag could be resolved".
type Resolution struct {
	CategoryID string              `json:"category_id"`
	TagID      string              `json:"tag_id,omitempty"`
	Direction  constants.Direction `json:"direction"`
}

// HistoryRecord is a previously stored, user-labeled receipt used as a
// read-only signal source for resolution. Never mutated by the core.
type HistoryRecord struct {
	Merchant   string    `json:"merchant"`
	CategoryID string    `json:"category_id"`
	TagID      string    `json:"tag_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Record is a stored draft: a parse plus its resolution state. The persisted
// record always wins over a recomputed resolution if the user edited it.
type Record struct {
	ID            uuid.UUID            `json:"id"`
	Receipt       ParsedReceipt        `json:"receipt"`
	Resolution    *Resolution          `json:"resolution,omitempty"`
	AccountID     string               `json:"account_id,omitempty"`
	PayTime       int64                `json:"pay_time"`
	PayTimeSource constants.TimeSource `json:"pay_time_source"`
	NeedsReview   bool                 `json:"needs_review"`
	RawText       string               `json:"raw_text,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}
