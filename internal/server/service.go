// Package server exposes the parsing and resolution core over HTTP. All
// store I/O happens here, before the pure core functions run — never
// interleaved with them.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hanwen-zhu/billsnap/internal/entity"
	"github.com/hanwen-zhu/billsnap/internal/parser"
	"github.com/hanwen-zhu/billsnap/internal/repository"
	"github.com/hanwen-zhu/billsnap/internal/resolve"
	"github.com/hanwen-zhu/billsnap/internal/textnorm"
	"github.com/hanwen-zhu/billsnap/internal/upload"
)

// reviewThreshold flags low-confidence parses for manual review.
const reviewThreshold = 60

// Service wires the pure core to the store and the bookkeeping API.
type Service struct {
	logger        *slog.Logger
	parser        *parser.Parser
	records       repository.RecordRepository
	metadata      repository.MetadataRepository
	builder       *upload.Builder
	client        *upload.Client
	historyWindow int
}

func NewService(
	logger *slog.Logger,
	p *parser.Parser,
	records repository.RecordRepository,
	metadata repository.MetadataRepository,
	builder *upload.Builder,
	client *upload.Client,
	historyWindow int,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if historyWindow <= 0 {
		historyWindow = 300
	}
	return &Service{
		logger:        logger,
		parser:        p,
		records:       records,
		metadata:      metadata,
		builder:       builder,
		client:        client,
		historyWindow: historyWindow,
	}
}

// Parse runs the parser only; nothing is stored.
func (s *Service) Parse(text string) entity.ParsedReceipt {
	return s.parser.Parse(text)
}

// CreateRecord parses the text, resolves category/tag/direction against the
// current metadata and history, and persists the draft. Resolution absence
// flags the record for review instead of guessing.
func (s *Service) CreateRecord(ctx context.Context, text string, captureTime *int64, accountID string) (*entity.Record, error) {
	receipt := s.parser.Parse(text)

	snap, err := s.metadata.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.records.RecentHistory(ctx, s.historyWindow)
	if err != nil {
		return nil, err
	}

	in := resolve.Input{
		Receipt:  receipt,
		Text:     textnorm.Normalize(text),
		Snapshot: snap,
		History:  history,
	}
	var res *entity.Resolution
	catResolver := resolve.NewCategoryResolver(s.logger, resolve.CreationSimilarity)
	tagResolver := resolve.NewTagResolver(s.logger, resolve.CreationSimilarity)

	categoryID, direction, catOK := catResolver.Resolve(in)
	categoryName := ""
	if catOK {
		if c, ok := snap.CategoryByID(categoryID); ok {
			categoryName = c.Name
		}
	}
	tagID, _ := tagResolver.Resolve(in, categoryName)
	if catOK {
		res = &entity.Resolution{CategoryID: categoryID, TagID: tagID, Direction: direction}
	}

	payTime, source := parser.DecidePayTime(receipt.PayTime, captureTime, time.Now())

	rec := &entity.Record{
		Receipt:       receipt,
		Resolution:    res,
		AccountID:     accountID,
		PayTime:       payTime,
		PayTimeSource: source,
		NeedsReview:   res == nil || receipt.Confidence.Overall < reviewThreshold,
		RawText:       text,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}
	s.logger.Info("record.created",
		"record_id", rec.ID,
		"merchant", receipt.Merchant,
		"resolved", res != nil,
		"needs_review", rec.NeedsReview,
	)
	return rec, nil
}

// ListRecords returns stored records inside the optional date window.
func (s *Service) ListRecords(ctx context.Context, from, to *time.Time) ([]*entity.Record, error) {
	return s.records.List(ctx, from, to)
}

// ReplaceMetadata swaps in a freshly synced metadata snapshot.
func (s *Service) ReplaceMetadata(ctx context.Context, snap entity.Snapshot) error {
	return s.metadata.ReplaceSnapshot(ctx, snap)
}

// UploadRecord re-validates a stored record against the live snapshot and
// posts it to the bookkeeping API.
func (s *Service) UploadRecord(ctx context.Context, id uuid.UUID) error {
	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return err
	}
	snap, err := s.metadata.Snapshot(ctx)
	if err != nil {
		return err
	}
	payload, err := s.builder.Build(rec, snap)
	if err != nil {
		return err
	}
	return s.client.Post(ctx, payload)
}
