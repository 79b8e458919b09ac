package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/hanwen-zhu/billsnap/constants"
	"github.com/hanwen-zhu/billsnap/internal/entity"
)

type stubRecords struct {
	recs []*entity.Record
}

func (s *stubRecords) Create(context.Context, *entity.Record) error { return nil }
func (s *stubRecords) GetByID(context.Context, uuid.UUID) (*entity.Record, error) {
	return nil, nil
}
func (s *stubRecords) List(_ context.Context, _, _ *time.Time) ([]*entity.Record, error) {
	return s.recs, nil
}
func (s *stubRecords) UpdateResolution(context.Context, uuid.UUID, *entity.Resolution, bool) error {
	return nil
}
func (s *stubRecords) RecentHistory(context.Context, int) ([]entity.HistoryRecord, error) {
	return nil, nil
}

func TestExportRecordsXLSX(t *testing.T) {
	recs := []*entity.Record{
		{
			ID: uuid.New(),
			Receipt: entity.ParsedReceipt{
				Amount:   &entity.Money{Minor: -2550, Currency: "CNY"},
				Merchant: "美团",
				Status:   constants.StatusSuccess,
				OrderID:  "MT20240312QWE456",
			},
			Resolution: &entity.Resolution{
				CategoryID: "c-dining",
				Direction:  constants.DirectionExpense,
			},
			PayTime: time.Date(2024, 3, 12, 18, 20, 0, 0, time.UTC).Unix(),
		},
		{
			ID:          uuid.New(),
			Receipt:     entity.ParsedReceipt{},
			PayTime:     time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC).Unix(),
			NeedsReview: true,
		},
	}

	svc := NewService(&stubRecords{recs: recs}, nil)
	bs, err := svc.ExportRecordsXLSX(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("ExportRecordsXLSX failed: %v", err)
	}
	if len(bs) == 0 {
		t.Fatal("empty workbook bytes")
	}

	f, err := excelize.OpenReader(bytes.NewReader(bs))
	if err != nil {
		t.Fatalf("workbook unreadable: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != "Records" {
		t.Errorf("sheets = %v, want only Records", sheets)
	}

	rows, err := f.GetRows("Records")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header plus two records", len(rows))
	}
	if rows[0][0] != "Pay Time" || rows[0][1] != "Merchant" {
		t.Errorf("header row = %v", rows[0])
	}
	if rows[1][1] != "美团" || rows[1][2] != "-25.50" {
		t.Errorf("record row = %v", rows[1])
	}
}

func TestRecordRow(t *testing.T) {
	rec := &entity.Record{
		Receipt: entity.ParsedReceipt{},
		PayTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix(),
	}
	row := recordRow(rec)
	if len(row) != 11 {
		t.Fatalf("row width = %d, want 11", len(row))
	}
	if row[2] != "" || row[3] != "" {
		t.Errorf("amount columns = %v/%v, want empty for a record without amount", row[2], row[3])
	}
}
