package domain

import (
	"fmt"
	"time"
)

// Engagement is a client project record shown in the "All Clients" table.
type Engagement struct {
	ID            string
	ClientName    string
	BusinessName  *string
	Service       string
	Partner       string
	Referral      *string
	Status        string
	CreatedAt     time.Time
	DueDate       *time.Time // nil means no deadline, which is never overdue
	DocumentCount int
	LoggedHours   float64
}

// DisplayName joins the client and business names for search and display.
// A missing business name contributes an empty string.
func (e *Engagement) DisplayName() string {
	return e.ClientName + " " + StrOrEmpty(e.BusinessName)
}

// ReferralOrSentinel returns the referral source, or NoReferral when absent.
func (e *Engagement) ReferralOrSentinel() string {
	return ReferralValue(e.Referral)
}

// IsLate reports whether the engagement has a due date strictly before now.
func (e *Engagement) IsLate(now time.Time) bool {
	return e.DueDate != nil && e.DueDate.Before(now)
}

// Validate checks the fields every stored engagement must carry.
func (e *Engagement) Validate() error {
	if e.ClientName == "" {
		return fmt.Errorf("client name is required")
	}
	if e.Service == "" {
		return fmt.Errorf("service is required")
	}
	if e.Status == "" {
		return fmt.Errorf("status is required")
	}
	if e.DocumentCount < 0 {
		return fmt.Errorf("document count must be non-negative, got %d", e.DocumentCount)
	}
	if e.LoggedHours < 0 {
		return fmt.Errorf("logged hours must be non-negative, got %g", e.LoggedHours)
	}
	return nil
}
