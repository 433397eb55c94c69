package subscription

// Policy is the entitlement table: which statuses count as paid up, which
// tiers satisfy each feature, and which legacy tier labels stand in for a
// current tier.
type Policy struct {
	entitledStatuses map[Status]bool
	featureTiers     map[Feature]map[Tier]bool
	aliases          map[Tier]Tier
}

// DefaultPolicy returns the built-in entitlement table
func DefaultPolicy() *Policy {
	return NewPolicy(
		[]Status{StatusActive, StatusTrialing},
		map[Feature][]Tier{
			FeatureBTN:          {TierBTN, TierPremium},
			FeatureEngine:       {TierEngine, TierPremium},
			FeatureAppliedPower: {TierAppliedPower, TierPremium},
			FeaturePremium:      {TierPremium},
		},
		map[Tier]Tier{
			TierLegacyFullProgram: TierEngine,
		},
	)
}

// NewPolicy builds a policy from explicit tables
func NewPolicy(statuses []Status, features map[Feature][]Tier, aliases map[Tier]Tier) *Policy {
	p := &Policy{
		entitledStatuses: make(map[Status]bool, len(statuses)),
		featureTiers:     make(map[Feature]map[Tier]bool, len(features)),
		aliases:          make(map[Tier]Tier, len(aliases)),
	}
	for _, s := range statuses {
		p.entitledStatuses[ParseStatus(string(s))] = true
	}
	for f, tiers := range features {
		set := make(map[Tier]bool, len(tiers))
		for _, t := range tiers {
			set[ParseTier(string(t))] = true
		}
		p.featureTiers[ParseFeature(string(f))] = set
	}
	for legacy, current := range aliases {
		p.aliases[ParseTier(string(legacy))] = ParseTier(string(current))
	}
	return p
}

// PolicyFromTable overlays string tables, as read from an entitlements
// file, on top of the defaults. Empty sections keep the default.
func PolicyFromTable(statuses []string, features map[string][]string, aliases map[string]string) *Policy {
	p := DefaultPolicy()

	if len(statuses) > 0 {
		p.entitledStatuses = make(map[Status]bool, len(statuses))
		for _, s := range statuses {
			p.entitledStatuses[ParseStatus(s)] = true
		}
	}
	for f, tiers := range features {
		set := make(map[Tier]bool, len(tiers))
		for _, t := range tiers {
			set[ParseTier(t)] = true
		}
		p.featureTiers[ParseFeature(f)] = set
	}
	if len(aliases) > 0 {
		p.aliases = make(map[Tier]Tier, len(aliases))
		for legacy, current := range aliases {
			p.aliases[ParseTier(legacy)] = ParseTier(current)
		}
	}
	return p
}

// IsEntitledStatus reports whether status grants access at all
func (p *Policy) IsEntitledStatus(status Status) bool {
	return p.entitledStatuses[status]
}

// KnowsFeature reports whether feature has an entry in the table
func (p *Policy) KnowsFeature(feature Feature) bool {
	_, ok := p.featureTiers[feature]
	return ok
}

// Resolve maps a legacy tier label to the tier it stands for
func (p *Policy) Resolve(tier Tier) Tier {
	if current, ok := p.aliases[tier]; ok {
		return current
	}
	return tier
}

// ProductTier maps a purchased product identifier to the tier it grants.
// Legacy labels resolve through the alias table; unknown or missing
// products default to premium.
func (p *Policy) ProductTier(product string) Tier {
	t := p.Resolve(ParseTier(product))
	if t.IsCurrent() {
		return t
	}
	return TierPremium
}

// Evaluate applies the table to one user's tier and status
func (p *Policy) Evaluate(tier Tier, status Status, feature Feature) Decision {
	tiers, ok := p.featureTiers[feature]
	if !ok {
		return Decision{Reason: ReasonUnknownFeature}
	}
	if tier == "" || tier == TierNone {
		return Decision{Reason: ReasonNoSubscription}
	}
	if !p.entitledStatuses[status] {
		return Decision{Reason: ReasonInactive}
	}
	if tiers[tier] || tiers[p.Resolve(tier)] {
		return Decision{HasAccess: true}
	}
	return Decision{Reason: ReasonTierNotEntitled}
}
