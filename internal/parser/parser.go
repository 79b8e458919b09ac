// Package parser composes normalization, template detection, field
// extraction, and merchant resolution into one parse call. Parsing is pure:
// the same text always yields the same ParsedReceipt, and it never fails —
// every extractor degrades to absence and lowers confidence instead.
package parser

import (
	"log/slog"
	"strings"
	"time"

	"github.com/hanwen-zhu/billsnap/constants"
	"github.com/hanwen-zhu/billsnap/internal/entity"
	"github.com/hanwen-zhu/billsnap/internal/extract"
	"github.com/hanwen-zhu/billsnap/internal/merchant"
	"github.com/hanwen-zhu/billsnap/internal/template"
	"github.com/hanwen-zhu/billsnap/internal/textnorm"
)

// Config holds parsing behavior knobs.
type Config struct {
	DefaultCurrency string
}

type Parser struct {
	logger *slog.Logger
	cfg    Config
	now    func() time.Time
}

func New(logger *slog.Logger, cfg Config) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = constants.DefaultCurrency
	}
	return &Parser{logger: logger, cfg: cfg, now: time.Now}
}

// Parse runs the parser on the raw text and, when aggressive preprocessing
// changes the text, on the preprocessed variant too, keeping whichever
// result scored higher overall.
func (p *Parser) Parse(text string) entity.ParsedReceipt {
	first := p.parseOnce(text)
	pre, changed := textnorm.Preprocess(text)
	if !changed {
		return first
	}
	second := p.parseOnce(pre)
	if second.Confidence.Overall > first.Confidence.Overall {
		p.logger.Debug("parse.preprocessed_won",
			"first", first.Confidence.Overall, "second", second.Confidence.Overall)
		return second
	}
	return first
}

func (p *Parser) parseOnce(text string) entity.ParsedReceipt {
	norm := textnorm.Normalize(text)
	allLines := strings.Split(norm, "\n")
	tmpl := template.Detect(norm, textnorm.Lines(norm))
	labels := template.LabelsFor(tmpl)

	var rec entity.ParsedReceipt
	rec.Template = tmpl

	amountLine := -1
	signExplicit := false
	if amt, ok := extract.Amount(norm, allLines, p.cfg.DefaultCurrency); ok {
		rec.Amount = &entity.Money{Minor: amt.Minor, Currency: amt.Currency}
		amountLine = amt.Line
		signExplicit = amt.SignExplicit
	}
	if ts, ok := extract.PayTime(norm, p.now()); ok {
		rec.PayTime = &ts
	}
	if pf, ok := extract.Platform(norm); ok {
		rec.Platform = pf
	}
	if st, ok := extract.Status(norm); ok {
		rec.Status = st
	}
	if tail, ok := extract.CardTail(norm); ok {
		rec.CardTail = tail
	}
	if v, ok := extract.LabelValue(allLines, labels.PayMethod); ok {
		rec.PayMethod = v
	}
	if v, ok := extract.LabelValue(allLines, labels.Item); ok {
		rec.Item = v
	}
	if v, ok := extract.LabelValue(allLines, labels.OrderID); ok {
		rec.OrderID = strings.TrimSpace(v)
	} else if v, ok := extract.OrderIDFallback(norm); ok {
		rec.OrderID = v
	}

	merchHits := extract.LabelValues(allLines, labels.Merchant)
	mq := 0
	if m, ok := merchant.Resolve(allLines, merchHits, amountLine); ok {
		rec.Merchant = m.Name
		mq = m.Quality
	}

	rec.CategoryGuess = extract.CategoryGuess(rec.Merchant, rec.Item, norm)
	rec.Confidence = scoreConfidence(rec, signExplicit, mq, norm)

	p.logger.Debug("parse.ok",
		"template", tmpl,
		"merchant", rec.Merchant,
		"has_amount", rec.Amount != nil,
		"confidence", rec.Confidence.Overall,
	)
	return rec
}
