package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"outreach-server/internal/clients/mail"
	"outreach-server/internal/observability"
)

var (
	ErrInvalidEmailAddress = errors.New("invalid email address")
	ErrSendingEmail        = errors.New("error sending email")
	ErrEmptyTemplate       = errors.New("email template is empty")
)

const (
	templateAccountApproved = "account_approved"
	templateAccountBanned   = "account_banned"
)

// Mailer is satisfied by *mail.ResendClient
type Mailer interface {
	Send(ctx context.Context, msg mail.Message) (string, error)
}

// EmailService sends account notifications to team members
type EmailService struct {
	mailer        Mailer
	logger        *observability.Logger
	defaultSender string
	agencyName    string
	webAppURI     string
	templates     map[string]*template.Template
}

type TemplateData struct {
	Name       string
	Email      string
	AgencyName string
	LoginLink  string
}

func New(mailer Mailer, defaultSender, agencyName, webAppURI string, logger *observability.Logger) *EmailService {
	return &EmailService{
		mailer:        mailer,
		logger:        logger,
		defaultSender: defaultSender,
		agencyName:    agencyName,
		webAppURI:     webAppURI,
		templates: map[string]*template.Template{
			templateAccountApproved: template.Must(template.New(templateAccountApproved).Parse(`
			<html>
				<body>
					<h1>Your account is approved</h1>
					<p>Hi {{.Name}},</p>
					<p>An administrator at {{.AgencyName}} approved your account. You can now sign in and start reviewing pages.</p>
					<p><a href="{{.LoginLink}}">Sign in</a></p>
				</body>
			</html>
			`)),
			templateAccountBanned: template.Must(template.New(templateAccountBanned).Parse(`
			<html>
				<body>
					<h1>Your account has been suspended</h1>
					<p>Hi {{.Name}},</p>
					<p>Your access to the {{.AgencyName}} outreach workspace has been suspended by an administrator.</p>
					<p>Reply to this email if you think this is a mistake.</p>
				</body>
			</html>
			`)),
		},
	}
}

func (s *EmailService) render(name string, data TemplateData) (string, error) {
	tmpl, ok := s.templates[name]
	if !ok {
		return "", fmt.Errorf("template %s not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// SendAccountApproved tells a new team member they can sign in
func (s *EmailService) SendAccountApproved(ctx context.Context, to, name string) error {
	loginLink := s.webAppURI + "/auth"
	return s.sendTemplate(ctx, templateAccountApproved, to,
		fmt.Sprintf("Welcome to %s", s.agencyName),
		fmt.Sprintf("Hi %s,\n\nAn administrator at %s approved your account. Sign in at %s\n", name, s.agencyName, loginLink),
		TemplateData{Name: name, Email: to, AgencyName: s.agencyName, LoginLink: loginLink})
}

func (s *EmailService) SendAccountBanned(ctx context.Context, to, name string) error {
	return s.sendTemplate(ctx, templateAccountBanned, to,
		"Your account has been suspended",
		fmt.Sprintf("Hi %s,\n\nYour access to the %s outreach workspace has been suspended by an administrator.\n", name, s.agencyName),
		TemplateData{Name: name, Email: to, AgencyName: s.agencyName})
}

func (s *EmailService) sendTemplate(ctx context.Context, templateName, to, subject, text string, data TemplateData) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_type", Value: templateName},
		observability.Field{Key: "recipient", Value: to},
	)

	if to == "" {
		return ErrInvalidEmailAddress
	}

	html, err := s.render(templateName, data)
	if err != nil {
		s.logger.Error(ctx, "failed to render email template", err)
		return fmt.Errorf("%w: %s", ErrEmptyTemplate, err.Error())
	}

	if _, err := s.mailer.Send(ctx, mail.Message{
		From:    s.defaultSender,
		To:      to,
		ReplyTo: s.defaultSender,
		Subject: subject,
		HTML:    html,
		Text:    text,
	}); err != nil {
		s.logger.Error(ctx, "failed to send email", err)
		return fmt.Errorf("%w: %s", ErrSendingEmail, err.Error())
	}

	s.logger.Info(ctx, "email sent")
	return nil
}
