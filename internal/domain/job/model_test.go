package job

import (
	"encoding/json"
	"testing"
	"time"
)

func TestForcedRefreshDedupeKey(t *testing.T) {
	day := time.Date(2026, 3, 9, 23, 30, 0, 0, time.UTC)
	got := ForcedRefreshDedupeKey(42, day)
	if got != "context_refresh:forced:42:20260309" {
		t.Errorf("got %q", got)
	}

	j := &AIJob{JobType: JobTypeContextRefresh, DedupeKey: &got}
	if !j.IsForcedRefresh() {
		t.Error("expected forced refresh")
	}

	other := "weekly"
	j.DedupeKey = &other
	if j.IsForcedRefresh() {
		t.Error("non-forced key reported as forced")
	}
}

func TestAIJob_ChangeSummary(t *testing.T) {
	tests := []struct {
		name   string
		result json.RawMessage
		want   int
	}{
		{"empty", nil, 0},
		{"malformed", json.RawMessage(`{`), 0},
		{"missing field", json.RawMessage(`{}`), 0},
		{"two entries", json.RawMessage(`{"change_summary":["a","b"]}`), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := (&AIJob{Result: tt.result}).ChangeSummary()
			if got == nil {
				t.Fatal("expected non-nil slice")
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestJobType_IsKnown(t *testing.T) {
	for _, jt := range []JobType{JobTypeContextRefresh, JobTypeProgramGeneration, JobTypePreviewAction, JobTypeApplyAction} {
		if !jt.IsKnown() {
			t.Errorf("%s should be known", jt)
		}
	}
	if JobType("sync").IsKnown() {
		t.Error("sync should be unknown")
	}
}
