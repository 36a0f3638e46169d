package domain

import (
	"fmt"
	"time"
)

// Prospect is a not-yet-converted lead shown in the "New Clients" table.
// IsIndividual and BusinessName are not cross-checked; both may be set.
type Prospect struct {
	ID               string
	ClientName       string
	BusinessName     *string
	IsIndividual     bool
	Service          string
	Partner          string
	ReferredBy       *string
	CreatedAt        time.Time
	ProjectedRevenue float64
}

// DisplayName joins the client and business names for search and display.
func (p *Prospect) DisplayName() string {
	return p.ClientName + " " + StrOrEmpty(p.BusinessName)
}

// ReferredByOrSentinel returns the referrer name, or NoReferral when absent.
func (p *Prospect) ReferredByOrSentinel() string {
	return ReferralValue(p.ReferredBy)
}

// Validate checks the fields every stored prospect must carry.
func (p *Prospect) Validate() error {
	if p.ClientName == "" {
		return fmt.Errorf("client name is required")
	}
	if p.Service == "" {
		return fmt.Errorf("service is required")
	}
	if p.ProjectedRevenue < 0 {
		return fmt.Errorf("projected revenue must be non-negative, got %g", p.ProjectedRevenue)
	}
	return nil
}
