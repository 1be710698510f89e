package email

import (
	"context"
	"fmt"

	"outreach-server/internal/events"
	"outreach-server/internal/observability"
	"outreach-server/internal/workers"
)

// EmailEventProcessor turns team membership events into notification emails
type EmailEventProcessor struct {
	emailService *EmailService
	logger       *observability.Logger
}

func NewEmailEventProcessor(emailService *EmailService, logger *observability.Logger) workers.EventProcessor {
	return &EmailEventProcessor{
		emailService: emailService,
		logger:       logger,
	}
}

func (p *EmailEventProcessor) Name() string {
	return "email"
}

// Process sends the email for user.approved and user.banned. Other event
// types are acknowledged without side effects.
func (p *EmailEventProcessor) Process(ctx context.Context, event workers.EventMessage) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "event_id", Value: event.ID},
		observability.Field{Key: "event_type", Value: event.Type},
		observability.Field{Key: "user_id", Value: event.EntityID},
	)

	switch event.Type {
	case events.TypeUserApproved, events.TypeUserBanned:
	default:
		return nil
	}

	to, _ := event.Data["email"].(string)
	name, _ := event.Data["name"].(string)
	if to == "" {
		// replaying will not fix a malformed event
		p.logger.Warn(ctx, "user event has no email, skipping")
		return nil
	}

	var err error
	if event.Type == events.TypeUserApproved {
		err = p.emailService.SendAccountApproved(ctx, to, name)
	} else {
		err = p.emailService.SendAccountBanned(ctx, to, name)
	}
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", event.Type, err)
	}
	return nil
}
