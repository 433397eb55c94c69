package subscription

import "strings"

// Tier is the subscription plan a user is on
type Tier string

// Subscription tiers
const (
	TierNone         Tier = "none"
	TierBTN          Tier = "btn"
	TierEngine       Tier = "engine"
	TierAppliedPower Tier = "applied_power"
	TierPremium      Tier = "premium"

	// TierLegacyFullProgram was provisioned before tiers were split and
	// still grants engine access
	TierLegacyFullProgram Tier = "full-program"
)

// Status is the billing state of a subscription
type Status string

// Subscription statuses
const (
	StatusActive     Status = "active"
	StatusTrialing   Status = "trialing"
	StatusPastDue    Status = "past_due"
	StatusCanceled   Status = "canceled"
	StatusExpired    Status = "expired"
	StatusIncomplete Status = "incomplete"
)

// Feature names a gated capability
type Feature string

// Feature keys
const (
	FeatureBTN          Feature = "btn"
	FeatureEngine       Feature = "engine"
	FeatureAppliedPower Feature = "applied_power"
	FeaturePremium      Feature = "premium"
)

// Decision is the result of an access check
type Decision struct {
	HasAccess bool   `json:"hasAccess"`
	Reason    string `json:"reason,omitempty"`
}

// Denial reasons
const (
	ReasonUnknownFeature  = "Unknown feature"
	ReasonNoSubscription  = "No subscription found"
	ReasonInactive        = "Subscription is not active"
	ReasonTierNotEntitled = "Your plan does not include this feature"
)

// tierLabels maps the spellings seen in stored and provider-supplied labels
// onto the current tiers
var tierLabels = map[string]Tier{
	"btn":           TierBTN,
	"engine":        TierEngine,
	"applied_power": TierAppliedPower,
	"appliedpower":  TierAppliedPower,
	"premium":       TierPremium,
	"none":          TierNone,
}

var labelSeparators = strings.NewReplacer("-", "_", " ", "_")

// ParseTier normalises a stored or provider-supplied tier label. Case,
// surrounding space and "-"/" " separators are ignored for the current
// tiers, so "Applied Power" is applied_power. Other labels, legacy ones
// included, are only lowercased; an empty label is TierNone.
func ParseTier(s string) Tier {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TierNone
	}
	if t, ok := tierLabels[labelSeparators.Replace(s)]; ok {
		return t
	}
	return Tier(s)
}

// IsCurrent reports whether t is one of the tiers that can be sold today
func (t Tier) IsCurrent() bool {
	switch t {
	case TierBTN, TierEngine, TierAppliedPower, TierPremium:
		return true
	}
	return false
}

// ParseStatus normalises a status label
func ParseStatus(s string) Status {
	return Status(strings.ToLower(strings.TrimSpace(s)))
}

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusTrialing, StatusPastDue, StatusCanceled, StatusExpired, StatusIncomplete:
		return true
	}
	return false
}

// ParseFeature normalises a feature key. "appliedpower" and
// "applied-power" are accepted for applied_power.
func ParseFeature(s string) Feature {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "appliedpower", "applied-power":
		return FeatureAppliedPower
	}
	return Feature(s)
}
