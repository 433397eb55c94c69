package subscription

import "testing"

func TestPolicy_Evaluate_Engine(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name       string
		tier       Tier
		status     Status
		wantAccess bool
		wantReason string
	}{
		{"engine active", TierEngine, StatusActive, true, ""},
		{"engine trialing", TierEngine, StatusTrialing, true, ""},
		{"premium active", TierPremium, StatusActive, true, ""},
		{"premium trialing", TierPremium, StatusTrialing, true, ""},
		{"legacy full-program active", TierLegacyFullProgram, StatusActive, true, ""},
		{"legacy full-program trialing", TierLegacyFullProgram, StatusTrialing, true, ""},
		{"btn active", TierBTN, StatusActive, false, ReasonTierNotEntitled},
		{"applied power active", TierAppliedPower, StatusActive, false, ReasonTierNotEntitled},
		{"unrecognised tier", Tier("gold"), StatusActive, false, ReasonTierNotEntitled},
		{"engine past due", TierEngine, StatusPastDue, false, ReasonInactive},
		{"engine canceled", TierEngine, StatusCanceled, false, ReasonInactive},
		{"premium expired", TierPremium, StatusExpired, false, ReasonInactive},
		{"no tier", TierNone, StatusActive, false, ReasonNoSubscription},
		{"empty tier", Tier(""), Status(""), false, ReasonNoSubscription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Evaluate(tt.tier, tt.status, FeatureEngine)
			if got.HasAccess != tt.wantAccess {
				t.Errorf("HasAccess = %v, want %v", got.HasAccess, tt.wantAccess)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestPolicy_Evaluate_FeatureMatrix(t *testing.T) {
	p := DefaultPolicy()

	tiers := []Tier{TierBTN, TierEngine, TierAppliedPower, TierPremium, TierLegacyFullProgram}
	want := map[Feature]map[Tier]bool{
		FeatureBTN:          {TierBTN: true, TierPremium: true},
		FeatureEngine:       {TierEngine: true, TierPremium: true, TierLegacyFullProgram: true},
		FeatureAppliedPower: {TierAppliedPower: true, TierPremium: true},
		FeaturePremium:      {TierPremium: true},
	}

	for feature, allowed := range want {
		for _, tier := range tiers {
			got := p.Evaluate(tier, StatusActive, feature)
			if got.HasAccess != allowed[tier] {
				t.Errorf("Evaluate(%s, active, %s).HasAccess = %v, want %v", tier, feature, got.HasAccess, allowed[tier])
			}
		}
	}
}

func TestPolicy_Evaluate_UnknownFeature(t *testing.T) {
	got := DefaultPolicy().Evaluate(TierPremium, StatusActive, Feature("nutrition"))
	if got.HasAccess {
		t.Fatal("expected unknown feature to be denied")
	}
	if got.Reason != ReasonUnknownFeature {
		t.Errorf("Reason = %q, want %q", got.Reason, ReasonUnknownFeature)
	}
}

func TestPolicy_ReasonsAreDistinct(t *testing.T) {
	reasons := []string{ReasonUnknownFeature, ReasonNoSubscription, ReasonInactive, ReasonTierNotEntitled}
	seen := make(map[string]bool)
	for _, r := range reasons {
		if r == "" {
			t.Fatal("empty reason")
		}
		if seen[r] {
			t.Fatalf("duplicate reason %q", r)
		}
		seen[r] = true
	}
}

func TestPolicyFromTable(t *testing.T) {
	p := PolicyFromTable(
		[]string{"Active"},
		map[string][]string{"nutrition": {"premium", "Nutrition"}},
		map[string]string{"founder": "premium"},
	)

	if p.IsEntitledStatus(StatusTrialing) {
		t.Error("trialing should no longer be entitled")
	}
	if !p.IsEntitledStatus(StatusActive) {
		t.Error("active should be entitled")
	}
	if !p.KnowsFeature(FeatureEngine) {
		t.Error("default features should be kept")
	}
	if got := p.Evaluate(Tier("nutrition"), StatusActive, Feature("nutrition")); !got.HasAccess {
		t.Errorf("nutrition tier denied: %s", got.Reason)
	}
	if got := p.Evaluate(Tier("founder"), StatusActive, FeaturePremium); !got.HasAccess {
		t.Errorf("founder alias denied: %s", got.Reason)
	}
	if got := p.Evaluate(TierLegacyFullProgram, StatusActive, FeatureEngine); got.HasAccess {
		t.Error("replaced alias table should drop full-program")
	}
}

func TestProductTier(t *testing.T) {
	tests := []struct {
		in   string
		want Tier
	}{
		{"btn", TierBTN},
		{"ENGINE", TierEngine},
		{"applied-power", TierAppliedPower},
		{"Applied Power", TierAppliedPower},
		{"appliedpower", TierAppliedPower},
		{"premium", TierPremium},
		{"", TierPremium},
		{"something-else", TierPremium},
		{"full-program", TierEngine},
		{" Full-Program ", TierEngine},
		{"none", TierPremium},
	}
	p := DefaultPolicy()
	for _, tt := range tests {
		if got := p.ProductTier(tt.in); got != tt.want {
			t.Errorf("ProductTier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in   string
		want Tier
	}{
		{"engine", TierEngine},
		{" BTN ", TierBTN},
		{"Applied Power", TierAppliedPower},
		{"applied-power", TierAppliedPower},
		{"APPLIED_POWER", TierAppliedPower},
		{"appliedpower", TierAppliedPower},
		{"full-program", TierLegacyFullProgram},
		{"Gold", Tier("gold")},
		{"", TierNone},
	}
	for _, tt := range tests {
		if got := ParseTier(tt.in); got != tt.want {
			t.Errorf("ParseTier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPolicy_Evaluate_StoredLabels(t *testing.T) {
	p := DefaultPolicy()
	for _, label := range []string{"Applied Power", "applied-power", "appliedpower"} {
		got := p.Evaluate(ParseTier(label), StatusActive, FeatureAppliedPower)
		if !got.HasAccess {
			t.Errorf("stored tier %q denied applied_power: %s", label, got.Reason)
		}
	}
	if got := p.Evaluate(ParseTier("Full-Program"), StatusActive, FeatureEngine); !got.HasAccess {
		t.Errorf("stored legacy tier denied engine: %s", got.Reason)
	}
}

func TestParseFeature(t *testing.T) {
	if got := ParseFeature(" AppliedPower "); got != FeatureAppliedPower {
		t.Errorf("got %q", got)
	}
	if got := ParseTier("  "); got != TierNone {
		t.Errorf("got %q", got)
	}
}
