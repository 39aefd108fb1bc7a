// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for send configuration and policy failures. The reason
// strings double as the log/schedule error detail.
var (
	ErrGatewayNotConfigured    = errors.New("twilio_not_configured")
	ErrSenderNotConfigured     = errors.New("twilio_from_missing")
	ErrOutsideWindowNoTemplate = errors.New("outside_24h_no_template")
	ErrScheduleClaimed         = errors.New("schedule_already_claimed")
)

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
	CampaignID string
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign %s not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id string) error {
	return &ErrCampaignNotFound{CampaignID: id}
}

// IsSendConfigError reports whether the send failed because the gateway or
// sender identity is unset, as opposed to a provider rejection.
func IsSendConfigError(err error) bool {
	return errors.Is(err, ErrGatewayNotConfigured) || errors.Is(err, ErrSenderNotConfigured)
}
