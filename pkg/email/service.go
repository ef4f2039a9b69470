package email

import (
	"context"

	"meetowner_crm/pkg/config"
)

// Mailer sends the CRM's notification emails.
type Mailer interface {
	SendLeadAssignedEmail(ctx context.Context, to string, data LeadAssignedData) error
	SendFollowUpDigest(ctx context.Context, to string, data FollowUpDigestData) error
}

// FromConfig returns nil, nil when no API key is configured; callers treat
// a nil Mailer as "email disabled".
func FromConfig(cfg config.MailConfig) (Mailer, error) {
	if cfg.ResendAPIKey == "" {
		return nil, nil
	}
	service, err := NewEmailService(cfg.ResendAPIKey, cfg.From)
	if err != nil {
		return nil, err
	}
	return service, nil
}
