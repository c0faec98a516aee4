package services

import (
	"errors"
	"fmt"
)

// Common service errors
var (
	// ErrNetwork marks transport-level failures talking to the upstream API
	ErrNetwork = errors.New("network error")
	// ErrSMTPAuth marks an SMTP credential rejection at session start
	ErrSMTPAuth = errors.New("smtp authentication failed")
	// ErrNoRecipientsDelivered marks an SMTP send where every recipient failed
	ErrNoRecipientsDelivered = errors.New("no recipients delivered")
)

// UpstreamError represents a non-success status returned by the upstream API
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream API returned status %d", e.StatusCode)
}
