package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"

	"outreach-server/internal/access"
	"outreach-server/internal/events"
	"outreach-server/internal/lifecycle"
	"outreach-server/internal/observability"
	"outreach-server/internal/store"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrSelfAction        = errors.New("admins cannot change their own account")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidTransition = errors.New("invalid user status transition")
	ErrUserNotActive     = errors.New("only active users can change role")
	ErrUserNotPending    = errors.New("only pending users can be rejected")
	ErrStatusChanged     = errors.New("user status changed concurrently")
	ErrFailedQuery       = errors.New("failed to load team")
	ErrFailedUpdate      = errors.New("failed to update user")
)

type TeamStore interface {
	ListUsers(ctx context.Context) ([]store.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (store.User, error)
	UpdateUserStatus(ctx context.Context, id uuid.UUID, from, to string) (store.User, error)
	UpdateUserRole(ctx context.Context, id uuid.UUID, role string) (store.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (store.User, error)
	DeletePendingUser(ctx context.Context, id uuid.UUID) (store.User, error)
}

type Auditor interface {
	Record(ctx context.Context, entry events.Entry) error
}

type TeamProcessor struct {
	store   TeamStore
	auditor Auditor
	logger  *observability.Logger
}

func New(store TeamStore, auditor Auditor, logger *observability.Logger) TeamProcessor {
	return TeamProcessor{
		store:   store,
		auditor: auditor,
		logger:  logger,
	}
}

func (p *TeamProcessor) ListUsers(ctx context.Context) ([]store.User, error) {
	users, err := p.store.ListUsers(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to list users", err)
		return nil, ErrFailedQuery
	}
	return users, nil
}

func (p *TeamProcessor) Approve(ctx context.Context, adminID, userID uuid.UUID) (store.User, error) {
	return p.setStatus(ctx, adminID, userID, store.UserStatusPendingApproval, store.UserStatusActive, store.AuditActionUserApproved)
}

func (p *TeamProcessor) Ban(ctx context.Context, adminID, userID uuid.UUID) (store.User, error) {
	return p.setStatus(ctx, adminID, userID, store.UserStatusActive, store.UserStatusBanned, store.AuditActionUserBanned)
}

func (p *TeamProcessor) Unban(ctx context.Context, adminID, userID uuid.UUID) (store.User, error) {
	return p.setStatus(ctx, adminID, userID, store.UserStatusBanned, store.UserStatusActive, store.AuditActionUserUnbanned)
}

// Reject removes a signup that has not been approved yet, identity included.
func (p *TeamProcessor) Reject(ctx context.Context, adminID, userID uuid.UUID) (store.User, error) {
	if adminID == userID {
		return store.User{}, ErrSelfAction
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "target_user_id", Value: userID.String()})

	user, err := p.store.DeletePendingUser(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return store.User{}, ErrUserNotFound
		case errors.Is(err, store.ErrStatusConflict):
			return store.User{}, ErrUserNotPending
		}
		p.logger.Error(ctx, "failed to reject user", err)
		return store.User{}, ErrFailedUpdate
	}

	p.audit(ctx, adminID, store.AuditActionUserRejected, user, nil)
	return user, nil
}

// ChangeRole assigns a new role to an active user.
func (p *TeamProcessor) ChangeRole(ctx context.Context, adminID, userID uuid.UUID, role string) (store.User, error) {
	if adminID == userID {
		return store.User{}, ErrSelfAction
	}
	parsed, err := access.ParseRole(role)
	if err != nil {
		return store.User{}, fmt.Errorf("%w: %v", ErrInvalidRole, err)
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "target_user_id", Value: userID.String()})

	before, err := p.getUser(ctx, userID)
	if err != nil {
		return store.User{}, err
	}
	user, err := p.store.UpdateUserRole(ctx, userID, string(parsed))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return store.User{}, ErrUserNotFound
		case errors.Is(err, store.ErrStatusConflict):
			return store.User{}, ErrUserNotActive
		}
		p.logger.Error(ctx, "failed to change user role", err)
		return store.User{}, ErrFailedUpdate
	}

	p.audit(ctx, adminID, store.AuditActionUserRoleChanged, user,
		map[string]interface{}{"from": before.Role, "to": user.Role})
	return user, nil
}

// Delete removes a user's profile and auth identity together.
func (p *TeamProcessor) Delete(ctx context.Context, adminID, userID uuid.UUID) (store.User, error) {
	if adminID == userID {
		return store.User{}, ErrSelfAction
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "target_user_id", Value: userID.String()})

	user, err := p.store.DeleteUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, ErrUserNotFound
		}
		p.logger.Error(ctx, "failed to delete user", err)
		return store.User{}, ErrFailedUpdate
	}

	p.audit(ctx, adminID, store.AuditActionUserDeleted, user, nil)
	return user, nil
}

// setStatus moves a user along one named edge of the user lifecycle. Approve
// and unban share a target status, so the source status is checked as well.
func (p *TeamProcessor) setStatus(ctx context.Context, adminID, userID uuid.UUID, from, to, action string) (store.User, error) {
	if adminID == userID {
		return store.User{}, ErrSelfAction
	}
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "target_user_id", Value: userID.String()},
		observability.Field{Key: "user_status", Value: to},
	)

	current, err := p.getUser(ctx, userID)
	if err != nil {
		return store.User{}, err
	}
	if err := lifecycle.User.Check(current.Status, to); err != nil {
		return store.User{}, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}
	if current.Status != from {
		return store.User{}, fmt.Errorf("%w: user is %s, expected %s", ErrInvalidTransition, current.Status, from)
	}

	user, err := p.store.UpdateUserStatus(ctx, userID, current.Status, to)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return store.User{}, ErrUserNotFound
		case errors.Is(err, store.ErrStatusConflict):
			return store.User{}, ErrStatusChanged
		}
		p.logger.Error(ctx, "failed to update user status", err)
		return store.User{}, ErrFailedUpdate
	}

	p.audit(ctx, adminID, action, user, map[string]interface{}{"from": current.Status, "to": user.Status})
	p.logger.Info(ctx, "user status updated")
	return user, nil
}

func (p *TeamProcessor) getUser(ctx context.Context, id uuid.UUID) (store.User, error) {
	user, err := p.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, ErrUserNotFound
		}
		p.logger.Error(ctx, "failed to get user", err)
		return store.User{}, ErrFailedQuery
	}
	return user, nil
}

// audit carries email and name so the email worker can address the user
// without reading the database.
func (p *TeamProcessor) audit(ctx context.Context, adminID uuid.UUID, action string, user store.User, extra map[string]interface{}) {
	details := map[string]interface{}{"email": user.Email, "name": user.Name}
	for k, v := range extra {
		details[k] = v
	}
	userID := user.ID
	if err := p.auditor.Record(ctx, events.Entry{
		ActorID:    &adminID,
		Action:     action,
		EntityType: store.EntityTypeUser,
		EntityID:   &userID,
		Details:    details,
	}); err != nil {
		p.logger.Error(ctx, "failed to audit team change", err)
	}
}
