package deadline

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/go-projects-nosql/internal/domain"
)

type userLookup interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type emailSender interface {
	SendEmail(to, subject, htmlBody string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// OwnerDispatcher delivers a notification to its owner by email and, when the
// owner has a contact number, by SMS. Either channel may be nil.
type OwnerDispatcher struct {
	users  userLookup
	mailer emailSender
	sms    smsSender
}

func NewOwnerDispatcher(users userLookup, mailer emailSender, sms smsSender) *OwnerDispatcher {
	return &OwnerDispatcher{users: users, mailer: mailer, sms: sms}
}

// Enabled reports whether any delivery channel is configured.
func (d *OwnerDispatcher) Enabled() bool {
	return d.mailer != nil || d.sms != nil
}

func (d *OwnerDispatcher) Dispatch(ctx context.Context, n *domain.Notification) error {
	if !d.Enabled() {
		return nil
	}
	u, err := d.users.Get(ctx, n.UserID)
	if err != nil {
		return fmt.Errorf("load owner %s: %w", n.UserID, err)
	}

	var errs []error
	if d.mailer != nil && u.Email != "" {
		body := fmt.Sprintf("<h3>%s</h3><p>%s</p>", html.EscapeString(n.Title), html.EscapeString(n.Message))
		if err := d.mailer.SendEmail(u.Email, n.Title, body); err != nil {
			errs = append(errs, fmt.Errorf("email: %w", err))
		}
	}
	if d.sms != nil && u.Contact != "" {
		if err := d.sms.SendSMS(ctx, u.Contact, n.Title+": "+n.Message); err != nil {
			errs = append(errs, fmt.Errorf("sms: %w", err))
		}
	}
	return errors.Join(errs...)
}
