package testutil

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pratik-mahalle/fitcoach/internal/auth"
	"github.com/pratik-mahalle/fitcoach/internal/domain/chat"
	"github.com/pratik-mahalle/fitcoach/internal/domain/coach"
	"github.com/pratik-mahalle/fitcoach/internal/domain/job"
	"github.com/pratik-mahalle/fitcoach/internal/domain/payment"
	"github.com/pratik-mahalle/fitcoach/internal/domain/user"
	"github.com/pratik-mahalle/fitcoach/internal/domain/workout"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
)

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	Users       map[int64]*user.User
	AuthIndex   map[string]*user.User
	NextID      int64
	CreateError error
	GetError    error
	UpdateError error
	SearchError error
	ListError   error
	StatsError  error

	// SearchCalls counts Search invocations
	SearchCalls int
	LastFilter  user.Filter
	StatsResult *user.SubscriptionStats

	// Stalled makes lookups block until their context is done
	Stalled atomic.Bool
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:     make(map[int64]*user.User),
		AuthIndex: make(map[string]*user.User),
		NextID:    1,
	}
}

// Add stores u and returns it, assigning an id when unset
func (m *MockUserRepository) Add(u *user.User) *user.User {
	if u.ID == 0 {
		u.ID = m.NextID
		m.NextID++
	}
	m.Users[u.ID] = u
	if u.AuthID != "" {
		m.AuthIndex[u.AuthID] = u
	}
	return u
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, ok := m.AuthIndex[u.AuthID]; ok && u.AuthID != "" {
		return errors.Conflict("User already exists")
	}
	m.Add(u)
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.Stalled.Load() {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, errors.UserNotFound()
	}
	return u, nil
}

func (m *MockUserRepository) GetByAuthID(ctx context.Context, authID string) (*user.User, error) {
	if m.Stalled.Load() {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.AuthIndex[authID]
	if !ok {
		return nil, errors.UserNotFound()
	}
	return u, nil
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Users[u.ID]; !ok {
		return errors.UserNotFound()
	}
	m.Add(u)
	return nil
}

func (m *MockUserRepository) Search(ctx context.Context, query string, limit int) ([]*user.User, error) {
	m.SearchCalls++
	if m.SearchError != nil {
		return nil, m.SearchError
	}
	q := strings.ToLower(query)
	var out []*user.User
	for _, u := range m.sorted() {
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockUserRepository) List(ctx context.Context, filter user.Filter) ([]*user.User, int64, error) {
	m.LastFilter = filter
	if m.ListError != nil {
		return nil, 0, m.ListError
	}
	all := m.sorted()
	total := int64(len(all))
	if filter.Offset >= len(all) {
		return []*user.User{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[filter.Offset:end], total, nil
}

func (m *MockUserRepository) Stats(ctx context.Context, now, trialCutoff time.Time) (*user.SubscriptionStats, error) {
	if m.StatsError != nil {
		return nil, m.StatsError
	}
	if m.StatsResult != nil {
		return m.StatsResult, nil
	}
	return &user.SubscriptionStats{Total: int64(len(m.Users))}, nil
}

func (m *MockUserRepository) sorted() []*user.User {
	out := make([]*user.User, 0, len(m.Users))
	for _, u := range m.Users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MockJobRepository is a mock implementation of job.Repository that
// enforces the (user, type, dedupe key) uniqueness of the real store
type MockJobRepository struct {
	mu          sync.Mutex
	Jobs        []*job.AIJob
	EnqueueErr  error
	GetErr      error
	ClaimErr    error
	CompleteErr error
}

func NewMockJobRepository() *MockJobRepository {
	return &MockJobRepository{}
}

func (m *MockJobRepository) Enqueue(ctx context.Context, j *job.AIJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.EnqueueErr != nil {
		return m.EnqueueErr
	}
	if j.DedupeKey != nil {
		for _, existing := range m.Jobs {
			if existing.UserID == j.UserID && existing.JobType == j.JobType &&
				existing.DedupeKey != nil && *existing.DedupeKey == *j.DedupeKey {
				return errors.Conflict("Job already enqueued")
			}
		}
	}
	j.ID = uuid.New().String()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}
	if j.ScheduledFor.IsZero() {
		j.ScheduledFor = j.CreatedAt
	}
	if j.Status == "" {
		j.Status = job.StatusPending
	}
	m.Jobs = append(m.Jobs, j)
	return nil
}

func (m *MockJobRepository) GetByID(ctx context.Context, id string) (*job.AIJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, j := range m.Jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, errors.NotFound("Job")
}

func (m *MockJobRepository) Latest(ctx context.Context, userID int64, jobType job.JobType) (*job.AIJob, error) {
	return m.latest(func(j *job.AIJob) bool {
		return j.UserID == userID && j.JobType == jobType
	})
}

func (m *MockJobRepository) LatestForced(ctx context.Context, userID int64) (*job.AIJob, error) {
	return m.latest(func(j *job.AIJob) bool {
		return j.UserID == userID && j.IsForcedRefresh()
	})
}

func (m *MockJobRepository) latest(match func(*job.AIJob) bool) (*job.AIJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	var newest *job.AIJob
	for _, j := range m.Jobs {
		if match(j) && (newest == nil || !j.CreatedAt.Before(newest.CreatedAt)) {
			newest = j
		}
	}
	if newest == nil {
		return nil, errors.NotFound("Job")
	}
	return newest, nil
}

func (m *MockJobRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*job.AIJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClaimErr != nil {
		return nil, m.ClaimErr
	}
	var claimed []*job.AIJob
	for _, j := range m.Jobs {
		if len(claimed) == limit {
			break
		}
		if j.Status == job.StatusPending && !j.ScheduledFor.After(now) {
			started := now
			j.Status = job.StatusRunning
			j.StartedAt = &started
			claimed = append(claimed, j)
		}
	}
	return claimed, nil
}

func (m *MockJobRepository) Complete(ctx context.Context, id string, result json.RawMessage) error {
	return m.finish(id, job.StatusCompleted, result, "")
}

func (m *MockJobRepository) Fail(ctx context.Context, id string, message string) error {
	return m.finish(id, job.StatusFailed, nil, message)
}

func (m *MockJobRepository) finish(id string, status job.Status, result json.RawMessage, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CompleteErr != nil {
		return m.CompleteErr
	}
	for _, j := range m.Jobs {
		if j.ID == id {
			now := time.Now().UTC()
			j.Status = status
			j.Result = result
			j.ErrorMessage = msg
			j.CompletedAt = &now
			return nil
		}
	}
	return errors.NotFound("Job")
}

// MockWorkoutRepository is a mock implementation of workout.Repository
type MockWorkoutRepository struct {
	Workouts    map[string]*workout.Workout
	BTN         map[int64]*workout.BTNWorkout
	NextID      int64
	SearchError error
	CreateError error
	SaveError   error

	SearchCalls int
	LastSearch  workout.SearchFilter
}

func NewMockWorkoutRepository() *MockWorkoutRepository {
	return &MockWorkoutRepository{
		Workouts: make(map[string]*workout.Workout),
		BTN:      make(map[int64]*workout.BTNWorkout),
		NextID:   1,
	}
}

func (m *MockWorkoutRepository) Create(ctx context.Context, w *workout.Workout) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, ok := m.Workouts[w.Slug]; ok {
		return errors.Conflict("Workout already exists")
	}
	w.ID = m.NextID
	m.NextID++
	m.Workouts[w.Slug] = w
	return nil
}

func (m *MockWorkoutRepository) Search(ctx context.Context, filter workout.SearchFilter) ([]*workout.Workout, int64, error) {
	m.SearchCalls++
	m.LastSearch = filter
	if m.SearchError != nil {
		return nil, 0, m.SearchError
	}
	var out []*workout.Workout
	for _, w := range m.Workouts {
		if filter.Query == "" || strings.Contains(strings.ToLower(w.Name), strings.ToLower(filter.Query)) {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (m *MockWorkoutRepository) CreateBTN(ctx context.Context, w *workout.BTNWorkout) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	w.ID = m.NextID
	m.NextID++
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}
	m.BTN[w.ID] = w
	return nil
}

func (m *MockWorkoutRepository) ListBTN(ctx context.Context, userID int64, filter workout.BTNFilter) ([]*workout.BTNWorkout, error) {
	var out []*workout.BTNWorkout
	for _, w := range m.BTN {
		if w.UserID != userID {
			continue
		}
		switch filter.Status {
		case workout.FilterCompleted:
			if !w.IsCompleted() {
				continue
			}
		case workout.FilterIncomplete:
			if w.IsCompleted() {
				continue
			}
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MockWorkoutRepository) GetBTN(ctx context.Context, id int64) (*workout.BTNWorkout, error) {
	w, ok := m.BTN[id]
	if !ok {
		return nil, errors.NotFound("Workout")
	}
	return w, nil
}

func (m *MockWorkoutRepository) SaveBTNResult(ctx context.Context, id int64, score string, percentile int, tier, notes string, completedAt time.Time) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	w, ok := m.BTN[id]
	if !ok {
		return errors.NotFound("Workout")
	}
	w.UserScore = &score
	w.Percentile = &percentile
	w.PerformanceTier = &tier
	if notes != "" {
		w.Notes = &notes
	}
	w.CompletedAt = &completedAt
	return nil
}

// MockChatRepository is a mock implementation of chat.Repository
type MockChatRepository struct {
	Conversations map[int64]*chat.Conversation
	Messages      map[int64][]*chat.Message
	NextID        int64
	GetError      error
}

func NewMockChatRepository() *MockChatRepository {
	return &MockChatRepository{
		Conversations: make(map[int64]*chat.Conversation),
		Messages:      make(map[int64][]*chat.Message),
		NextID:        1,
	}
}

func (m *MockChatRepository) GetConversationByUser(ctx context.Context, userID int64) (*chat.Conversation, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, c := range m.Conversations {
		if c.UserID == userID {
			return c, nil
		}
	}
	return nil, errors.NotFound("Conversation")
}

func (m *MockChatRepository) CreateConversation(ctx context.Context, conv *chat.Conversation) error {
	conv.ID = m.NextID
	m.NextID++
	m.Conversations[conv.ID] = conv
	return nil
}

func (m *MockChatRepository) MarkReadByUser(ctx context.Context, conversationID int64) error {
	if c, ok := m.Conversations[conversationID]; ok {
		c.UnreadByUser = false
	}
	return nil
}

func (m *MockChatRepository) TouchForAdmin(ctx context.Context, conversationID int64, at time.Time) error {
	c, ok := m.Conversations[conversationID]
	if !ok {
		return errors.NotFound("Conversation")
	}
	c.UnreadByAdmin = true
	c.LastMessageAt = &at
	return nil
}

func (m *MockChatRepository) GetConversation(ctx context.Context, id int64) (*chat.Conversation, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	c, ok := m.Conversations[id]
	if !ok {
		return nil, errors.NotFound("Conversation")
	}
	return c, nil
}

// ListConversations orders by latest message, newest first. Owner details
// are left blank.
func (m *MockChatRepository) ListConversations(ctx context.Context, filter chat.InboxFilter) ([]*chat.ConversationSummary, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	var out []*chat.ConversationSummary
	for _, c := range m.Conversations {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.UnreadOnly && !c.UnreadByAdmin {
			continue
		}
		sum := &chat.ConversationSummary{
			ID:            c.ID,
			UserID:        c.UserID,
			Status:        c.Status,
			Unread:        c.UnreadByAdmin,
			LastMessageAt: c.LastMessageAt,
			CreatedAt:     c.CreatedAt,
		}
		if msgs := m.Messages[c.ID]; len(msgs) > 0 {
			sum.LastMessagePreview = msgs[len(msgs)-1].Content
		}
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].LastMessageAt, out[j].LastMessageAt
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		if !a.Equal(*b) {
			return a.After(*b)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *MockChatRepository) MarkReadByAdmin(ctx context.Context, conversationID int64) error {
	if c, ok := m.Conversations[conversationID]; ok {
		c.UnreadByAdmin = false
	}
	return nil
}

func (m *MockChatRepository) TouchForUser(ctx context.Context, conversationID int64, at time.Time) error {
	c, ok := m.Conversations[conversationID]
	if !ok {
		return errors.NotFound("Conversation")
	}
	c.UnreadByUser = true
	c.UnreadByAdmin = false
	c.Status = chat.StatusOpen
	c.LastMessageAt = &at
	return nil
}

func (m *MockChatRepository) ListMessages(ctx context.Context, conversationID int64) ([]*chat.Message, error) {
	return m.Messages[conversationID], nil
}

func (m *MockChatRepository) AddMessage(ctx context.Context, msg *chat.Message) error {
	msg.ID = m.NextID
	m.NextID++
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	m.Messages[msg.ConversationID] = append(m.Messages[msg.ConversationID], msg)
	return nil
}

func (m *MockChatRepository) CountMessages(ctx context.Context, conversationID int64) (int64, error) {
	return int64(len(m.Messages[conversationID])), nil
}

// MockCoachRepository is a mock implementation of coach.Repository
type MockCoachRepository struct {
	Coaches       map[int64]*coach.Coach
	Relationships []*coach.Relationship
	NextID        int64
	GetError      error
}

func NewMockCoachRepository() *MockCoachRepository {
	return &MockCoachRepository{
		Coaches: make(map[int64]*coach.Coach),
		NextID:  1,
	}
}

func (m *MockCoachRepository) GetByUserID(ctx context.Context, userID int64) (*coach.Coach, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, c := range m.Coaches {
		if c.UserID == userID {
			return c, nil
		}
	}
	return nil, errors.NotFound("Coach")
}

func (m *MockCoachRepository) Create(ctx context.Context, c *coach.Coach) error {
	c.ID = m.NextID
	m.NextID++
	m.Coaches[c.ID] = c
	return nil
}

func (m *MockCoachRepository) CreateRelationship(ctx context.Context, rel *coach.Relationship) error {
	rel.ID = m.NextID
	m.NextID++
	m.Relationships = append(m.Relationships, rel)
	return nil
}

func (m *MockCoachRepository) ActiveRelationship(ctx context.Context, coachUserID, athleteID int64) (*coach.Relationship, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, rel := range m.Relationships {
		c, ok := m.Coaches[rel.CoachID]
		if !ok || c.UserID != coachUserID || c.Status != coach.StatusApproved {
			continue
		}
		if rel.AthleteID == athleteID && rel.Status == coach.RelationshipActive {
			return rel, nil
		}
	}
	return nil, errors.NotFound("Relationship")
}

// MockCheckoutProvider is a mock implementation of payment.Provider
type MockCheckoutProvider struct {
	Sessions map[string]*payment.ProviderSession
	Err      error
	Calls    int
}

func NewMockCheckoutProvider() *MockCheckoutProvider {
	return &MockCheckoutProvider{Sessions: make(map[string]*payment.ProviderSession)}
}

func (m *MockCheckoutProvider) GetCheckoutSession(ctx context.Context, sessionID string) (*payment.ProviderSession, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	s, ok := m.Sessions[sessionID]
	if !ok {
		return nil, payment.ErrSessionNotFound
	}
	return s, nil
}

// MockVerifier accepts the tokens in its map and rejects everything else
type MockVerifier struct {
	Tokens map[string]string
	// Emails holds the email claim per subject
	Emails map[string]string
	Calls  []string
}

func NewMockVerifier() *MockVerifier {
	return &MockVerifier{Tokens: make(map[string]string), Emails: make(map[string]string)}
}

func (m *MockVerifier) Verify(ctx context.Context, token string) (*auth.Claims, error) {
	m.Calls = append(m.Calls, token)
	subject, ok := m.Tokens[token]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{Subject: subject, Email: m.Emails[subject]}, nil
}
