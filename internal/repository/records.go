package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hanwen-zhu/billsnap/constants"
	"github.com/hanwen-zhu/billsnap/internal/common"
	"github.com/hanwen-zhu/billsnap/internal/entity"
)

type RecordRepository interface {
	Create(ctx context.Context, rec *entity.Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Record, error)
	List(ctx context.Context, from, to *time.Time) ([]*entity.Record, error)
	UpdateResolution(ctx context.Context, id uuid.UUID, res *entity.Resolution, needsReview bool) error
	// RecentHistory returns the most-recent labeled records, newest first,
	// as the read-only signal window for resolution.
	RecentHistory(ctx context.Context, limit int) ([]entity.HistoryRecord, error)
}

type recordRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewRecordRepository(db *DB, logger *slog.Logger) RecordRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &recordRepository{db: db, logger: logger}
}

const recordColumns = `id, merchant, amount_minor, currency, pay_time, pay_time_source,
	pay_method, card_tail, category_guess, platform, status, order_id, item, template,
	conf_amount, conf_merchant, conf_category, conf_overall,
	category_id, tag_id, direction, account_id, needs_review, raw_text, created_at, updated_at`

func (r *recordRepository) Create(ctx context.Context, rec *entity.Record) error {
	now := time.Now().UTC()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = now
	rec.UpdatedAt = now

	var amountMinor sql.NullInt64
	currency := ""
	if rec.Receipt.Amount != nil {
		amountMinor = sql.NullInt64{Int64: rec.Receipt.Amount.Minor, Valid: true}
		currency = rec.Receipt.Amount.Currency
	}
	categoryID, tagID, direction := "", "", ""
	if rec.Resolution != nil {
		categoryID = rec.Resolution.CategoryID
		tagID = rec.Resolution.TagID
		direction = string(rec.Resolution.Direction)
	}

	q := r.db.rebind(`INSERT INTO records (` + recordColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q,
		rec.ID.String(), rec.Receipt.Merchant, amountMinor, currency,
		rec.PayTime, string(rec.PayTimeSource),
		rec.Receipt.PayMethod, rec.Receipt.CardTail, rec.Receipt.CategoryGuess,
		string(rec.Receipt.Platform), string(rec.Receipt.Status),
		rec.Receipt.OrderID, rec.Receipt.Item, string(rec.Receipt.Template),
		rec.Receipt.Confidence.Amount, rec.Receipt.Confidence.Merchant,
		rec.Receipt.Confidence.Category, rec.Receipt.Confidence.Overall,
		categoryID, tagID, direction, rec.AccountID,
		boolToInt(rec.NeedsReview), rec.RawText,
		rec.CreatedAt.Unix(), rec.UpdatedAt.Unix(),
	)
	if err != nil {
		r.logger.Error("record insert failed", "record_id", rec.ID, "error", err)
		return common.WrapError(err, "insert record")
	}
	return nil
}

func (r *recordRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Record, error) {
	q := r.db.rebind(`SELECT ` + recordColumns + ` FROM records WHERE id = ?`)
	row := r.db.QueryRowContext(ctx, q, id.String())
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.WrapError(err, "get record")
	}
	return rec, nil
}

func (r *recordRepository) List(ctx context.Context, from, to *time.Time) ([]*entity.Record, error) {
	q := `SELECT ` + recordColumns + ` FROM records WHERE 1=1`
	args := make([]any, 0, 2)
	if from != nil {
		q += ` AND created_at >= ?`
		args = append(args, from.Unix())
	}
	if to != nil {
		q += ` AND created_at <= ?`
		args = append(args, to.Unix())
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, r.db.rebind(q), args...)
	if err != nil {
		return nil, common.WrapError(err, "list records")
	}
	defer rows.Close()

	var out []*entity.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, common.WrapError(err, "scan record")
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *recordRepository) UpdateResolution(ctx context.Context, id uuid.UUID, res *entity.Resolution, needsReview bool) error {
	categoryID, tagID, direction := "", "", ""
	if res != nil {
		categoryID = res.CategoryID
		tagID = res.TagID
		direction = string(res.Direction)
	}
	q := r.db.rebind(`UPDATE records
		SET category_id = ?, tag_id = ?, direction = ?, needs_review = ?, updated_at = ?
		WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, q,
		categoryID, tagID, direction, boolToInt(needsReview),
		time.Now().UTC().Unix(), id.String())
	if err != nil {
		return common.WrapError(err, "update resolution")
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *recordRepository) RecentHistory(ctx context.Context, limit int) ([]entity.HistoryRecord, error) {
	q := r.db.rebind(`SELECT merchant, category_id, tag_id, created_at
		FROM records
		WHERE category_id != '' AND merchant != ''
		ORDER BY created_at DESC
		LIMIT ?`)
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, common.WrapError(err, "recent history")
	}
	defer rows.Close()

	var out []entity.HistoryRecord
	for rows.Next() {
		var h entity.HistoryRecord
		var created int64
		if err := rows.Scan(&h.Merchant, &h.CategoryID, &h.TagID, &created); err != nil {
			return nil, common.WrapError(err, "scan history")
		}
		h.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, h)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*entity.Record, error) {
	var (
		rec         entity.Record
		idStr       string
		amountMinor sql.NullInt64
		currency    string
		source      string
		platform    string
		status      string
		tmpl        string
		categoryID  string
		tagID       string
		direction   string
		needsReview int
		createdAt   int64
		updatedAt   int64
	)
	err := row.Scan(
		&idStr, &rec.Receipt.Merchant, &amountMinor, &currency,
		&rec.PayTime, &source,
		&rec.Receipt.PayMethod, &rec.Receipt.CardTail, &rec.Receipt.CategoryGuess,
		&platform, &status, &rec.Receipt.OrderID, &rec.Receipt.Item, &tmpl,
		&rec.Receipt.Confidence.Amount, &rec.Receipt.Confidence.Merchant,
		&rec.Receipt.Confidence.Category, &rec.Receipt.Confidence.Overall,
		&categoryID, &tagID, &direction, &rec.AccountID,
		&needsReview, &rec.RawText, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	if amountMinor.Valid {
		rec.Receipt.Amount = &entity.Money{Minor: amountMinor.Int64, Currency: currency}
	}
	rec.PayTimeSource = constants.TimeSource(source)
	rec.Receipt.Platform = constants.Platform(platform)
	rec.Receipt.Status = constants.Status(status)
	rec.Receipt.Template = constants.Template(tmpl)
	if categoryID != "" || tagID != "" || direction != "" {
		rec.Resolution = &entity.Resolution{
			CategoryID: categoryID,
			TagID:      tagID,
			Direction:  constants.Direction(direction),
		}
	}
	rec.NeedsReview = needsReview != 0
	rec.CreatedAt = time.Unix(createdAt, 0).UTC()
	rec.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
