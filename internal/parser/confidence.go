package parser

import (
	"math"
	"strings"

	"github.com/hanwen-zhu/billsnap/internal/entity"
	"github.com/hanwen-zhu/billsnap/internal/textnorm"
)

// Minor-unit thresholds for amount confidence bands.
const (
	largeAmountMinor = 100_000 // 1000 currency units
	midBandLowMinor  = 1_000   // 10 currency units
)

// scoreConfidence derives the per-field and overall confidence for a parse
// from its extraction quality signals. Every score is clamped to [0,100].
func scoreConfidence(rec entity.ParsedReceipt, signExplicit bool, merchantQuality int, norm string) entity.Confidence {
	var c entity.Confidence

	if rec.Amount == nil {
		c.Amount = 20
	} else {
		c.Amount = 70
		abs := rec.Amount.Minor
		if abs < 0 {
			abs = -abs
		}
		switch {
		case abs >= largeAmountMinor:
			c.Amount += 10
		case abs >= midBandLowMinor:
			c.Amount += 8
		}
		if signExplicit {
			c.Amount += 8
		}
		if textnorm.HasResidualConfusables(norm) {
			c.Amount -= 8
		}
	}

	if rec.Merchant == "" {
		c.Merchant = 20
	} else {
		c.Merchant = 60 + merchantQuality
	}

	if rec.CategoryGuess == "" {
		c.Category = 25
	} else {
		c.Category = 65
		if strings.Contains(norm, rec.CategoryGuess) {
			c.Category += 15
		}
	}

	c.Amount = clamp(c.Amount)
	c.Merchant = clamp(c.Merchant)
	c.Category = clamp(c.Category)
	c.Overall = clamp(int(math.Round(
		0.45*float64(c.Amount) + 0.35*float64(c.Merchant) + 0.20*float64(c.Category))))
	return c
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
