package domain

import (
	"errors"
	"fmt"
)

// RowKind discriminates the two row shapes a table can hold.
type RowKind string

const (
	KindEngagements RowKind = "engagements"
	KindProspects   RowKind = "prospects"
)

// NoReferral stands in for an absent referral source so that "no referral"
// can be filtered on and offered as a dropdown option.
const NoReferral = "—"

// ErrUnknownKind is returned for any row kind other than the two above.
var ErrUnknownKind = errors.New("unknown row kind")

// ParseRowKind validates a kind string.
func ParseRowKind(s string) (RowKind, error) {
	switch RowKind(s) {
	case KindEngagements, KindProspects:
		return RowKind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Valid reports whether k is one of the known kinds.
func (k RowKind) Valid() bool {
	return k == KindEngagements || k == KindProspects
}

// ReferralValue normalizes an optional referral to its filterable value.
func ReferralValue(ref *string) string {
	if ref == nil || *ref == "" {
		return NoReferral
	}
	return *ref
}

// StrOrEmpty dereferences an optional string.
func StrOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StrPtr returns nil for "" and a pointer to s otherwise.
func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
