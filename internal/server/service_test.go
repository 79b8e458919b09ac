package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hanwen-zhu/billsnap/constants"
	"github.com/hanwen-zhu/billsnap/internal/common"
	"github.com/hanwen-zhu/billsnap/internal/entity"
	"github.com/hanwen-zhu/billsnap/internal/parser"
	"github.com/hanwen-zhu/billsnap/internal/upload"
)

type memRecords struct {
	recs    map[uuid.UUID]*entity.Record
	history []entity.HistoryRecord
}

func newMemRecords() *memRecords {
	return &memRecords{recs: make(map[uuid.UUID]*entity.Record)}
}

func (m *memRecords) Create(_ context.Context, rec *entity.Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	m.recs[rec.ID] = rec
	return nil
}

func (m *memRecords) GetByID(_ context.Context, id uuid.UUID) (*entity.Record, error) {
	rec, ok := m.recs[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return rec, nil
}

func (m *memRecords) List(_ context.Context, _, _ *time.Time) ([]*entity.Record, error) {
	out := make([]*entity.Record, 0, len(m.recs))
	for _, r := range m.recs {
		out = append(out, r)
	}
	return out, nil
}

func (m *memRecords) UpdateResolution(_ context.Context, id uuid.UUID, res *entity.Resolution, needsReview bool) error {
	rec, ok := m.recs[id]
	if !ok {
		return common.ErrNotFound
	}
	rec.Resolution = res
	rec.NeedsReview = needsReview
	return nil
}

func (m *memRecords) RecentHistory(_ context.Context, _ int) ([]entity.HistoryRecord, error) {
	return m.history, nil
}

type memMetadata struct {
	snap entity.Snapshot
}

func (m *memMetadata) Snapshot(_ context.Context) (entity.Snapshot, error) {
	return m.snap, nil
}

func (m *memMetadata) ReplaceSnapshot(_ context.Context, snap entity.Snapshot) error {
	m.snap = snap
	return nil
}

func serviceSnapshot() entity.Snapshot {
	return entity.Snapshot{
		Categories: []entity.Category{
			{ID: "exp", Name: "支出", Direction: constants.DirectionExpense},
			{ID: "c-dining", Name: "餐饮", Direction: constants.DirectionExpense, ParentID: "exp"},
			{ID: "c-grocery", Name: "超市", Direction: constants.DirectionExpense, ParentID: "exp"},
		},
		Accounts: []entity.Account{
			{ID: "a-root", Name: "钱包"},
			{ID: "a-cash", Name: "现金", ParentID: "a-root"},
		},
		Tags: []entity.Tag{
			{ID: "t-takeout", Name: "外卖"},
		},
	}
}

func newTestService(ledger common.LedgerConfig) (*Service, *memRecords, *memMetadata) {
	records := newMemRecords()
	metadata := &memMetadata{snap: serviceSnapshot()}
	svc := NewService(
		nil,
		parser.New(nil, parser.Config{}),
		records,
		metadata,
		upload.NewBuilder(ledger, nil),
		upload.NewClient(ledger, nil),
		300,
	)
	return svc, records, metadata
}

func TestCreateRecordResolved(t *testing.T) {
	svc, records, _ := newTestService(common.LedgerConfig{})
	capture := time.Now().Add(-time.Hour).Unix()

	rec, err := svc.CreateRecord(context.Background(), "美团外卖\n-25.50\n支付成功", &capture, "a-cash")
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	if rec.ID == uuid.Nil {
		t.Error("record was not assigned an id")
	}
	if rec.Resolution == nil {
		t.Fatal("record was not resolved")
	}
	if rec.Resolution.CategoryID != "c-dining" {
		t.Errorf("CategoryID = %q, want c-dining", rec.Resolution.CategoryID)
	}
	if rec.Resolution.TagID != "t-takeout" {
		t.Errorf("TagID = %q, want t-takeout", rec.Resolution.TagID)
	}
	if rec.Resolution.Direction != constants.DirectionExpense {
		t.Errorf("Direction = %v, want expense", rec.Resolution.Direction)
	}
	if rec.NeedsReview {
		t.Error("confident resolved record flagged for review")
	}
	if rec.PayTime != capture || rec.PayTimeSource != constants.TimeSourceCapture {
		t.Errorf("PayTime = (%d, %v), want the capture time", rec.PayTime, rec.PayTimeSource)
	}
	if _, ok := records.recs[rec.ID]; !ok {
		t.Error("record not persisted")
	}
}

func TestCreateRecordUnresolvedNeedsReview(t *testing.T) {
	svc, _, _ := newTestService(common.LedgerConfig{})
	rec, err := svc.CreateRecord(context.Background(), "随便什么 4.50", nil, "a-cash")
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	if rec.Resolution != nil {
		t.Errorf("Resolution = %+v, want none for an unresolvable text", rec.Resolution)
	}
	if !rec.NeedsReview {
		t.Error("unresolved record not flagged for review")
	}
	if rec.PayTimeSource != constants.TimeSourceNow {
		t.Errorf("PayTimeSource = %v, want now", rec.PayTimeSource)
	}
}

func TestUploadRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc, _, _ := newTestService(common.LedgerConfig{BaseURL: srv.URL, Token: "secret"})
	rec, err := svc.CreateRecord(context.Background(), "美团外卖\n-25.50\n支付成功", nil, "a-cash")
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	if err := svc.UploadRecord(context.Background(), rec.ID); err != nil {
		t.Fatalf("UploadRecord failed: %v", err)
	}
}

func TestUploadRecordUnknownID(t *testing.T) {
	svc, _, _ := newTestService(common.LedgerConfig{BaseURL: "http://example.invalid", Token: "x"})
	if err := svc.UploadRecord(context.Background(), uuid.New()); err == nil {
		t.Error("UploadRecord succeeded for a missing record")
	}
}

func TestUploadRecordMissingConfig(t *testing.T) {
	svc, _, _ := newTestService(common.LedgerConfig{})
	rec, err := svc.CreateRecord(context.Background(), "美团外卖\n-25.50\n支付成功", nil, "a-cash")
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	err = svc.UploadRecord(context.Background(), rec.ID)
	reason, ok := upload.ReasonOf(err)
	if !ok || reason != upload.ReasonMissingConfig {
		t.Errorf("ReasonOf = (%q, %v), want %q", reason, ok, upload.ReasonMissingConfig)
	}
}

func TestReplaceMetadata(t *testing.T) {
	svc, _, metadata := newTestService(common.LedgerConfig{})
	next := entity.Snapshot{Categories: []entity.Category{{ID: "c-new", Name: "新分类", Direction: constants.DirectionExpense}}}
	if err := svc.ReplaceMetadata(context.Background(), next); err != nil {
		t.Fatalf("ReplaceMetadata failed: %v", err)
	}
	if len(metadata.snap.Categories) != 1 || metadata.snap.Categories[0].ID != "c-new" {
		t.Errorf("snapshot not replaced: %+v", metadata.snap)
	}
}
