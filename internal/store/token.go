package store

import (
	"context"
	"fmt"
	"time"
)

const sqlRevokeToken = `
INSERT INTO revoked_tokens (jti, expires_at)
VALUES ($1, $2)
ON CONFLICT (jti) DO NOTHING`

// RevokeToken records a token id as revoked until it would have expired anyway.
func (s *Store) RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error {
	if _, err := s.db.ExecContext(ctx, sqlRevokeToken, jti, expiresAt); err != nil {
		s.logger.Error(ctx, "failed to revoke token", err)
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

const sqlIsTokenRevoked = `
SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE jti = $1 AND expires_at > NOW())`

func (s *Store) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	var revoked bool
	if err := s.db.GetContext(ctx, &revoked, sqlIsTokenRevoked, jti); err != nil {
		s.logger.Error(ctx, "failed to check token revocation", err)
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return revoked, nil
}

const sqlPurgeExpiredTokens = `DELETE FROM revoked_tokens WHERE expires_at <= NOW()`

// PurgeExpiredTokens drops revocation rows whose tokens can no longer validate.
func (s *Store) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, sqlPurgeExpiredTokens)
	if err != nil {
		s.logger.Error(ctx, "failed to purge expired tokens", err)
		return 0, fmt.Errorf("failed to purge expired tokens: %w", err)
	}
	return res.RowsAffected()
}
