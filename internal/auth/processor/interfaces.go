package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"
	"time"

	"outreach-server/internal/store"

	"github.com/google/uuid"
)

// AuthStore defines the database operations required by AuthProcessor
type AuthStore interface {
	CreateUserWithIdentity(ctx context.Context, params store.CreateUserParams) (store.User, error)
	GetCredentialsByEmail(ctx context.Context, email string) (store.Credentials, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (store.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
	RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

// TokenCache holds revoked token ids when Redis is available
type TokenCache interface {
	IsEnabled() bool
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Exists(ctx context.Context, keys ...string) (int64, error)
}
