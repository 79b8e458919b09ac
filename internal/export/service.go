// Package export produces XLSX workbooks of stored records.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hanwen-zhu/billsnap/internal/entity"
	"github.com/hanwen-zhu/billsnap/internal/repository"
)

// Service is a tiny façade over the record repository that produces XLSX
// bytes for exports.
type Service struct {
	records repository.RecordRepository
	logger  *slog.Logger
}

func NewService(records repository.RecordRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{records: records, logger: logger}
}

// ExportRecordsXLSX returns an XLSX workbook for the given date window.
// If only from is provided -> from..today (inclusive).
// If neither is provided   -> all records.
func (s *Service) ExportRecordsXLSX(ctx context.Context, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	var fromDate, toDate *time.Time
	if from != nil {
		f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		fromDate = &f
	}
	if to != nil {
		t := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, time.UTC)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		now := time.Now().UTC()
		t := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)
		toDate = &t
	}

	recs, err := s.records.List(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Records"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{
		"Pay Time", "Merchant", "Amount", "Currency", "Direction",
		"Category ID", "Tag ID", "Status", "Order ID", "Confidence", "Needs Review",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, rec := range recs {
		values := recordRow(rec)
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Info("export.ok", "rows", len(recs), "elapsed", time.Since(start))
	return buf.Bytes(), nil
}

func recordRow(rec *entity.Record) []any {
	amount := ""
	currency := ""
	if rec.Receipt.Amount != nil {
		amount = fmt.Sprintf("%.2f", float64(rec.Receipt.Amount.Minor)/100)
		currency = rec.Receipt.Amount.Currency
	}
	categoryID, tagID, direction := "", "", ""
	if rec.Resolution != nil {
		categoryID = rec.Resolution.CategoryID
		tagID = rec.Resolution.TagID
		direction = string(rec.Resolution.Direction)
	}
	return []any{
		time.Unix(rec.PayTime, 0).UTC().Format(time.RFC3339),
		rec.Receipt.Merchant,
		amount,
		currency,
		direction,
		categoryID,
		tagID,
		string(rec.Receipt.Status),
		rec.Receipt.OrderID,
		rec.Receipt.Confidence.Overall,
		rec.NeedsReview,
	}
}
