package entity

import (
	"github.com/hanwen-zhu/billsnap/constants"
)

// Money is a monetary amount in integer minor units (cents, fen) plus an
// ISO-like currency code. Minor may be negative for refunds and income.
type Money struct {
	Minor    int64  `json:"minor"`
	Currency string `json:"currency"`
}

// Confidence holds the 0-100 reliability estimates for a parse.
type Confidence struct {
	Amount   int `json:"amount"`
	Merchant int `json:"merchant"`
	Category int `json:"category"`
	Overall  int `json:"overall"`
}

// ParsedReceipt is the structured result of parsing one recognized receipt
// text. Immutable once produced; re-derivable from the input text.
type ParsedReceipt struct {
	Amount        *Money             `json:"amount,omitempty"`
	Merchant      string             `json:"merchant,omitempty"`
	PayTime       *int64             `json:"pay_time,omitempty"` // epoch seconds
	PayMethod     string             `json:"pay_method,omitempty"`
	CardTail      string             `json:"card_tail,omitempty"`
	CategoryGuess string             `json:"category_guess,omitempty"`
	Platform      constants.Platform `json:"platform,omitempty"`
	Status        constants.Status   `json:"status,omitempty"`
	OrderID       string             `json:"order_id,omitempty"`
	Item          string             `json:"item,omitempty"`
	Template      constants.Template `json:"template"`
	Confidence    Confidence         `json:"confidence"`
}
