package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"outreach-server/internal/access"
	"outreach-server/internal/observability"
	"outreach-server/internal/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrProfileUnavailable = errors.New("Could not fetch user profile. Please contact support.")
	ErrAccountBanned      = errors.New("Your account has been banned. Please contact an admin.")
	ErrAccountPending     = errors.New("Your account is pending admin approval. Please wait.")
	ErrFailedSignup       = errors.New("failed to sign up")
	ErrFailedSignIn       = errors.New("failed to sign in")
	ErrFailedSignOut      = errors.New("failed to sign out")
	ErrInvalidJWTToken    = errors.New("invalid jwt token")
	ErrParseJWTToken      = errors.New("failed to parse jwt token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrRevokedToken       = errors.New("token has been revoked")
)

const revokedKeyPrefix = "revoked_jti:"

type AuthProcessor struct {
	store     AuthStore
	cache     TokenCache
	jwtSecret string
	logger    *observability.Logger
}

// New builds the processor. cache may be nil, in which case revocations live
// in the store only.
func New(store AuthStore, cache TokenCache, jwtSecret string, logger *observability.Logger) AuthProcessor {
	return AuthProcessor{
		store:     store,
		cache:     cache,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

type Session struct {
	Token string        `json:"token,omitempty"`
	User  store.User    `json:"user"`
	Views []access.View `json:"views"`
}

// Signup creates the login identity and a pending analyst profile.
func (p *AuthProcessor) Signup(ctx context.Context, email, password, name string) (store.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	ctx = observability.WithFields(ctx, observability.Field{Key: "email", Value: email})

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		p.logger.Error(ctx, "failed to hash password", err)
		return store.User{}, ErrFailedSignup
	}

	user, err := p.store.CreateUserWithIdentity(ctx, store.CreateUserParams{
		Email:          email,
		Name:           strings.TrimSpace(name),
		HashedPassword: string(hashedPassword),
		Role:           store.UserRoleAnalyst,
		Status:         store.UserStatusPendingApproval,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return store.User{}, ErrEmailAlreadyExists
		}
		p.logger.Error(ctx, "failed to create user", err)
		return store.User{}, ErrFailedSignup
	}

	p.logger.Info(ctx, "user signed up")
	return user, nil
}

// SignIn verifies the password and admits only active profiles.
func (p *AuthProcessor) SignIn(ctx context.Context, email, password string) (Session, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "email", Value: email})

	creds, err := p.store.GetCredentialsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		p.logger.Error(ctx, "failed to get credentials by email", err)
		return Session{}, ErrFailedSignIn
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.HashedPassword), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	user, err := p.store.GetUserByID(ctx, creds.UserID)
	if err != nil {
		p.logger.Error(ctx, "failed to fetch user profile", err)
		return Session{}, ErrProfileUnavailable
	}
	if err := statusGate(user); err != nil {
		return Session{}, err
	}

	token, err := p.generateJWTToken(ctx, user)
	if err != nil {
		return Session{}, err
	}
	if err := p.store.TouchLastLogin(ctx, user.ID); err != nil {
		p.logger.Error(ctx, "failed to record last login", err)
	}

	return Session{
		Token: token,
		User:  user,
		Views: access.VisibleViews(access.Role(user.Role)),
	}, nil
}

// Authenticate resolves a bearer token to an active user. Tokens are checked
// for revocation and the profile is re-read so bans take effect immediately.
func (p *AuthProcessor) Authenticate(ctx context.Context, token string) (store.User, BaseClaims, error) {
	claims, err := p.ValidateJWTToken(ctx, token)
	if err != nil {
		return store.User{}, BaseClaims{}, err
	}

	revoked, err := p.isRevoked(ctx, claims.ID)
	if err != nil {
		return store.User{}, BaseClaims{}, ErrInvalidJWTToken
	}
	if revoked {
		return store.User{}, BaseClaims{}, ErrRevokedToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return store.User{}, BaseClaims{}, ErrInvalidJWTToken
	}
	user, err := p.store.GetUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			p.logger.Error(ctx, "failed to fetch user profile", err)
		}
		return store.User{}, BaseClaims{}, ErrProfileUnavailable
	}
	if err := statusGate(user); err != nil {
		return store.User{}, BaseClaims{}, err
	}
	return user, claims, nil
}

// SignOut revokes the token id until the token would have expired.
func (p *AuthProcessor) SignOut(ctx context.Context, claims BaseClaims) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "jti", Value: claims.ID})

	expiresAt := time.Now().Add(tokenLifetime)
	if claims.ExpirationTime != nil {
		expiresAt = claims.ExpirationTime.Time
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	if p.cacheEnabled() {
		if err := p.cache.SetWithTTL(ctx, revokedKeyPrefix+claims.ID, "1", ttl); err != nil {
			p.logger.Error(ctx, "failed to revoke token in cache", err)
			return ErrFailedSignOut
		}
		return nil
	}

	if err := p.store.RevokeToken(ctx, claims.ID, expiresAt); err != nil {
		p.logger.Error(ctx, "failed to revoke token", err)
		return ErrFailedSignOut
	}
	return nil
}

// GetSession returns the profile and navigation for an authenticated user.
func (p *AuthProcessor) GetSession(ctx context.Context, userID uuid.UUID) (Session, error) {
	user, err := p.store.GetUserByID(ctx, userID)
	if err != nil {
		p.logger.Error(ctx, "failed to fetch user profile", err)
		return Session{}, ErrProfileUnavailable
	}
	return Session{
		User:  user,
		Views: access.VisibleViews(access.Role(user.Role)),
	}, nil
}

func (p *AuthProcessor) cacheEnabled() bool {
	return p.cache != nil && p.cache.IsEnabled()
}

func (p *AuthProcessor) isRevoked(ctx context.Context, jti string) (bool, error) {
	if p.cacheEnabled() {
		n, err := p.cache.Exists(ctx, revokedKeyPrefix+jti)
		if err != nil {
			p.logger.Error(ctx, "failed to check revoked token in cache", err)
			return false, fmt.Errorf("failed to check revocation: %w", err)
		}
		return n > 0, nil
	}
	revoked, err := p.store.IsTokenRevoked(ctx, jti)
	if err != nil {
		return false, err
	}
	return revoked, nil
}

// statusGate maps a non-active profile to the message shown at sign-in.
func statusGate(user store.User) error {
	switch user.Status {
	case store.UserStatusActive:
		return nil
	case store.UserStatusBanned:
		return ErrAccountBanned
	default:
		return ErrAccountPending
	}
}
