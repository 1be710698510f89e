package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Setting struct {
	Key         string     `db:"key" json:"key"`
	Value       string     `db:"value" json:"value"`
	Description *string    `db:"description" json:"description,omitempty"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	UpdatedBy   *uuid.UUID `db:"updated_by" json:"updated_by,omitempty"`
}

type SettingUpdate struct {
	Key   string
	Value string
}

const settingColumns = `key, value, description, updated_at, updated_by`

const sqlListSettings = `SELECT ` + settingColumns + ` FROM settings ORDER BY key`

func (s *Store) ListSettings(ctx context.Context) ([]Setting, error) {
	settings := []Setting{}
	if err := s.db.SelectContext(ctx, &settings, sqlListSettings); err != nil {
		s.logger.Error(ctx, "failed to list settings", err)
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}

const sqlUpdateSetting = `
UPDATE settings
SET value = $2, updated_by = $3, updated_at = NOW()
WHERE key = $1`

// UpdateSettings writes every value in one transaction. An unknown key rolls
// the whole batch back with ErrNotFound.
func (s *Store) UpdateSettings(ctx context.Context, updates []SettingUpdate, updatedBy uuid.UUID) ([]Setting, error) {
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, u := range updates {
			res, err := tx.ExecContext(ctx, sqlUpdateSetting, u.Key, u.Value, updatedBy)
			if err != nil {
				s.logger.Error(ctx, "failed to update setting", err)
				return fmt.Errorf("failed to update setting %s: %w", u.Key, err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return ErrNotFound
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.ListSettings(ctx)
}
