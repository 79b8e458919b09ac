package repository

import (
	"context"
	"log/slog"

	"github.com/hanwen-zhu/billsnap/constants"
	"github.com/hanwen-zhu/billsnap/internal/common"
	"github.com/hanwen-zhu/billsnap/internal/entity"
)

// MetadataRepository serves the category/account/tag snapshots the resolvers
// read. The snapshot is replaced wholesale by metadata sync, never edited.
type MetadataRepository interface {
	Snapshot(ctx context.Context) (entity.Snapshot, error)
	ReplaceSnapshot(ctx context.Context, snap entity.Snapshot) error
}

type metadataRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewMetadataRepository(db *DB, logger *slog.Logger) MetadataRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &metadataRepository{db: db, logger: logger}
}

func (r *metadataRepository) Snapshot(ctx context.Context) (entity.Snapshot, error) {
	var snap entity.Snapshot

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, direction, parent_id FROM categories ORDER BY id`)
	if err != nil {
		return snap, common.WrapError(err, "snapshot categories")
	}
	for rows.Next() {
		var c entity.Category
		var dir string
		if err := rows.Scan(&c.ID, &c.Name, &dir, &c.ParentID); err != nil {
			rows.Close()
			return snap, common.WrapError(err, "scan category")
		}
		c.Direction = constants.Direction(dir)
		snap.Categories = append(snap.Categories, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snap, err
	}

	rows, err = r.db.QueryContext(ctx, `SELECT id, name, parent_id FROM accounts ORDER BY id`)
	if err != nil {
		return snap, common.WrapError(err, "snapshot accounts")
	}
	for rows.Next() {
		var a entity.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.ParentID); err != nil {
			rows.Close()
			return snap, common.WrapError(err, "scan account")
		}
		snap.Accounts = append(snap.Accounts, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snap, err
	}

	rows, err = r.db.QueryContext(ctx, `SELECT id, name, group_id FROM tags ORDER BY id`)
	if err != nil {
		return snap, common.WrapError(err, "snapshot tags")
	}
	for rows.Next() {
		var t entity.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.GroupID); err != nil {
			rows.Close()
			return snap, common.WrapError(err, "scan tag")
		}
		snap.Tags = append(snap.Tags, t)
	}
	rows.Close()
	return snap, rows.Err()
}

func (r *metadataRepository) ReplaceSnapshot(ctx context.Context, snap entity.Snapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return common.WrapError(err, "begin snapshot replace")
	}
	defer tx.Rollback()

	for _, table := range []string{"categories", "accounts", "tags"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return common.WrapError(err, "clear "+table)
		}
	}
	insCat := r.db.rebind(`INSERT INTO categories (id, name, direction, parent_id) VALUES (?, ?, ?, ?)`)
	for _, c := range snap.Categories {
		if _, err := tx.ExecContext(ctx, insCat, c.ID, c.Name, string(c.Direction), c.ParentID); err != nil {
			return common.WrapError(err, "insert category")
		}
	}
	insAcc := r.db.rebind(`INSERT INTO accounts (id, name, parent_id) VALUES (?, ?, ?)`)
	for _, a := range snap.Accounts {
		if _, err := tx.ExecContext(ctx, insAcc, a.ID, a.Name, a.ParentID); err != nil {
			return common.WrapError(err, "insert account")
		}
	}
	insTag := r.db.rebind(`INSERT INTO tags (id, name, group_id) VALUES (?, ?, ?)`)
	for _, t := range snap.Tags {
		if _, err := tx.ExecContext(ctx, insTag, t.ID, t.Name, t.GroupID); err != nil {
			return common.WrapError(err, "insert tag")
		}
	}

	r.logger.Info("metadata snapshot replaced",
		"categories", len(snap.Categories), "accounts", len(snap.Accounts), "tags", len(snap.Tags))
	return tx.Commit()
}
