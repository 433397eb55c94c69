package services

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/pratik-mahalle/fitcoach/internal/domain/job"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/testutil"
)

func TestJobService_Enqueue(t *testing.T) {
	repo := testutil.NewMockJobRepository()
	service := NewJobService(repo, 0, logger.Nop())
	ctx := context.Background()

	tests := []struct {
		name      string
		req       job.EnqueueRequest
		wantErr   string
		wantDedup bool
	}{
		{
			name:    "missing user",
			req:     job.EnqueueRequest{JobType: job.JobTypeContextRefresh},
			wantErr: errors.ErrCodeInvalidInput,
		},
		{
			name:    "missing job type",
			req:     job.EnqueueRequest{UserID: 1},
			wantErr: errors.ErrCodeInvalidInput,
		},
		{
			name: "first enqueue",
			req:  job.EnqueueRequest{UserID: 1, JobType: job.JobTypeProgramGeneration, DedupeKey: "week-1"},
		},
		{
			name:      "duplicate dedupe key",
			req:       job.EnqueueRequest{UserID: 1, JobType: job.JobTypeProgramGeneration, DedupeKey: "week-1"},
			wantDedup: true,
		},
		{
			name: "same key other user",
			req:  job.EnqueueRequest{UserID: 2, JobType: job.JobTypeProgramGeneration, DedupeKey: "week-1"},
		},
		{
			name: "no dedupe key never collides",
			req:  job.EnqueueRequest{UserID: 1, JobType: job.JobTypeProgramGeneration},
		},
		{
			name: "no dedupe key twice",
			req:  job.EnqueueRequest{UserID: 1, JobType: job.JobTypeProgramGeneration},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := service.Enqueue(ctx, tt.req)
			if tt.wantErr != "" {
				if !errors.HasCode(err, tt.wantErr) {
					t.Fatalf("Enqueue() error = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Enqueue() unexpected error: %v", err)
			}
			if res.Deduplicated != tt.wantDedup {
				t.Errorf("Deduplicated = %v, want %v", res.Deduplicated, tt.wantDedup)
			}
			if !tt.wantDedup && res.JobID == "" {
				t.Error("JobID is empty")
			}
		})
	}

	if len(repo.Jobs) != 4 {
		t.Errorf("stored %d jobs, want 4", len(repo.Jobs))
	}
}

func TestJobService_EnqueueInvalidInputMessage(t *testing.T) {
	service := NewJobService(testutil.NewMockJobRepository(), 0, logger.Nop())
	_, err := service.Enqueue(context.Background(), job.EnqueueRequest{})
	appErr, ok := errors.As(err)
	if !ok || appErr.Message != "userId and jobType required" {
		t.Errorf("Enqueue() error = %v", err)
	}
}

func TestJobService_EnqueueStoreFailure(t *testing.T) {
	repo := testutil.NewMockJobRepository()
	repo.EnqueueErr = stderrors.New("disk full")
	service := NewJobService(repo, 0, logger.Nop())

	_, err := service.Enqueue(context.Background(), job.EnqueueRequest{UserID: 1, JobType: job.JobTypeApplyAction})
	if !errors.HasCode(err, errors.ErrCodeUpstreamUnavailable) {
		t.Errorf("Enqueue() error = %v, want UPSTREAM_UNAVAILABLE", err)
	}
}

func TestJobService_Latest(t *testing.T) {
	repo := testutil.NewMockJobRepository()
	service := NewJobService(repo, 0, logger.Nop())
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	for i, key := range []string{"a", "b", "c"} {
		j := &job.AIJob{UserID: 7, JobType: job.JobTypeProgramGeneration, DedupeKey: &key, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := repo.Enqueue(ctx, j); err != nil {
			t.Fatal(err)
		}
	}

	got, err := service.Latest(ctx, 7, job.JobTypeProgramGeneration)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if *got.DedupeKey != "c" {
		t.Errorf("Latest() = %s, want newest job c", *got.DedupeKey)
	}

	if _, err := service.Latest(ctx, 7, job.JobTypeApplyAction); !errors.IsNotFound(err) {
		t.Errorf("Latest() for missing type error = %v, want NotFound", err)
	}
}

func TestJobService_LastRefresh(t *testing.T) {
	repo := testutil.NewMockJobRepository()
	service := NewJobService(repo, 0, logger.Nop())
	ctx := context.Background()

	got, err := service.LastRefresh(ctx, 3)
	if err != nil {
		t.Fatalf("LastRefresh() error = %v", err)
	}
	if got.Status != job.RefreshStatusNone || got.LastRefreshAt != nil || got.ChangeSummary == nil || len(got.ChangeSummary) != 0 {
		t.Errorf("LastRefresh() with no jobs = %+v", got)
	}

	completed := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	result, _ := json.Marshal(job.ContextRefreshResult{ChangeSummary: []string{"Volume increased"}})
	repo.Jobs = append(repo.Jobs, &job.AIJob{
		ID:          "j1",
		UserID:      3,
		JobType:     job.JobTypeContextRefresh,
		Status:      job.StatusCompleted,
		Result:      result,
		CreatedAt:   completed.Add(-time.Minute),
		CompletedAt: &completed,
	})

	got, err = service.LastRefresh(ctx, 3)
	if err != nil {
		t.Fatalf("LastRefresh() error = %v", err)
	}
	if got.Status != string(job.StatusCompleted) {
		t.Errorf("Status = %q, want completed", got.Status)
	}
	if got.LastRefreshAt == nil || !got.LastRefreshAt.Equal(completed) {
		t.Errorf("LastRefreshAt = %v, want %v", got.LastRefreshAt, completed)
	}
	if len(got.ChangeSummary) != 1 || got.ChangeSummary[0] != "Volume increased" {
		t.Errorf("ChangeSummary = %v", got.ChangeSummary)
	}
}

func TestJobService_ForceRefresh(t *testing.T) {
	repo := testutil.NewMockJobRepository()
	service := NewJobService(repo, 24*time.Hour, logger.Nop())
	ctx := context.Background()

	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	res, err := service.ForceRefresh(ctx, 5)
	if err != nil {
		t.Fatalf("ForceRefresh() error = %v", err)
	}
	if res.JobID == "" || res.Deduplicated {
		t.Errorf("ForceRefresh() = %+v", res)
	}
	stored := repo.Jobs[0]
	if want := job.ForcedRefreshDedupeKey(5, now); stored.DedupeKey == nil || *stored.DedupeKey != want {
		t.Errorf("dedupe key = %v, want %s", stored.DedupeKey, want)
	}
	stored.CreatedAt = now

	// second request inside the cooldown
	now = now.Add(2 * time.Hour)
	_, err = service.ForceRefresh(ctx, 5)
	appErr, ok := errors.As(err)
	if !ok || appErr.Code != errors.ErrCodeRateLimited {
		t.Fatalf("ForceRefresh() error = %v, want RATE_LIMITED", err)
	}
	details, _ := appErr.Details.(map[string]interface{})
	next, _ := details["nextAvailableAt"].(time.Time)
	if want := stored.CreatedAt.Add(24 * time.Hour); !next.Equal(want) {
		t.Errorf("nextAvailableAt = %v, want %v", next, want)
	}

	// after the cooldown a new day key is used
	now = now.Add(23 * time.Hour)
	if _, err := service.ForceRefresh(ctx, 5); err != nil {
		t.Fatalf("ForceRefresh() after cooldown error = %v", err)
	}
	if len(repo.Jobs) != 2 {
		t.Errorf("stored %d jobs, want 2", len(repo.Jobs))
	}
}
