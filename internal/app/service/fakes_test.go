package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"codearena/internal/common"
	"codearena/internal/domain/model"
	"codearena/internal/platform/judge"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*model.User
	solved map[string]bool // userID + "/" + problemID
	board  []model.LeaderboardEntry
	err    error
	limits []int
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*model.User{}, solved: map[string]bool{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return common.ErrConflict
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) find(match func(*model.User) bool) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Username == username })
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.HashedPassword = hashedPassword
	return nil
}

func (r *fakeUserRepo) RecordSubmissionResult(ctx context.Context, userID, problemID string, accepted bool, at time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	u, ok := r.users[userID]
	if !ok {
		return false, common.ErrNotFound
	}
	first := false
	if accepted {
		key := userID + "/" + problemID
		first = !r.solved[key]
		r.solved[key] = true
		solvedAt := at
		u.LastSolvedAt = &solvedAt
	}
	u.TotalSubmissions++
	if first {
		u.TotalSolved++
	}
	return first, nil
}

func (r *fakeUserRepo) Leaderboard(_ context.Context, limit int) ([]model.LeaderboardEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.limits = append(r.limits, limit)
	if len(r.board) > limit {
		return r.board[:limit], nil
	}
	return r.board, nil
}

func (r *fakeUserRepo) stats(userID string) (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.users[userID]
	return u.TotalSubmissions, u.TotalSolved
}

type fakeProblemRepo struct {
	mu       sync.Mutex
	problems map[string]*model.Problem
	created  []*model.Problem
	filters  []model.ProblemFilter
	nextNum  int
}

func newFakeProblemRepo(problems ...*model.Problem) *fakeProblemRepo {
	r := &fakeProblemRepo{problems: map[string]*model.Problem{}, nextNum: 100}
	for _, p := range problems {
		r.problems[p.ID] = p
	}
	return r
}

func (r *fakeProblemRepo) CreateProblem(_ context.Context, p *model.Problem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextNum++
	p.ProblemNumber = r.nextNum
	r.problems[p.ID] = p
	r.created = append(r.created, p)
	return nil
}

func (r *fakeProblemRepo) FindProblemByID(_ context.Context, id string) (*model.Problem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.problems[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProblemRepo) FindProblemByNumber(_ context.Context, number int) (*model.Problem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.problems {
		if p.ProblemNumber == number {
			cp := *p
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeProblemRepo) ListProblems(_ context.Context, f model.ProblemFilter) ([]model.Problem, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters = append(r.filters, f)
	var out []model.Problem
	for _, p := range r.problems {
		out = append(out, *p)
	}
	return out, len(out), nil
}

type fakeSubmissionRepo struct {
	mu          sync.Mutex
	submissions map[string]*model.Submission
	order       []string
	updateErr   error
	counts      model.SubmissionCounts
	days        []string
	activity    []model.DailyActivity
	since       time.Time
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: map[string]*model.Submission{}}
}

func (r *fakeSubmissionRepo) Create(ctx context.Context, sub *model.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	sub.Verdict = model.VerdictPending
	sub.CreatedAt = time.Now()
	cp := *sub
	r.submissions[sub.ID] = &cp
	r.order = append(r.order, sub.ID)
	return nil
}

func (r *fakeSubmissionRepo) Update(ctx context.Context, id string, verdict model.Verdict, executionTime float64, memory int, raw json.RawMessage) (*model.Submission, error) {
	// Like a real driver, a finished context fails the write.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	sub, ok := r.submissions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	sub.Verdict = verdict
	sub.ExecutionTime = executionTime
	sub.Memory = memory
	sub.Details = raw
	cp := *sub
	return &cp, nil
}

func (r *fakeSubmissionRepo) FindByID(_ context.Context, id string) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.submissions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *sub
	return &cp, nil
}

func (r *fakeSubmissionRepo) ListByUser(_ context.Context, userID string) ([]model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Submission{}
	for i := len(r.order) - 1; i >= 0; i-- {
		if sub := r.submissions[r.order[i]]; sub.UserID == userID {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) ExistsAcceptedFor(_ context.Context, userID, problemID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sub := range r.submissions {
		if sub.UserID == userID && sub.ProblemID == problemID && sub.Verdict == model.VerdictAccepted {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSubmissionRepo) CountByUser(_ context.Context, _ string) (model.SubmissionCounts, error) {
	return r.counts, nil
}

func (r *fakeSubmissionRepo) DailyActivity(_ context.Context, _ string, since time.Time) ([]model.DailyActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.since = since
	return r.activity, nil
}

func (r *fakeSubmissionRepo) AcceptedDays(_ context.Context, _ string) ([]string, error) {
	return r.days, nil
}

func (r *fakeSubmissionRepo) only() *model.Submission {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.order) != 1 {
		return nil
	}
	cp := *r.submissions[r.order[0]]
	return &cp
}

func (r *fakeSubmissionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

type fakeJudge struct {
	mu       sync.Mutex
	result   *judge.Result
	err      error
	requests []judge.SubmitRequest
	during   func() // runs while the call is in flight
}

func (j *fakeJudge) Submit(_ context.Context, req judge.SubmitRequest) (*judge.Result, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.requests = append(j.requests, req)
	if j.during != nil {
		j.during()
	}
	if j.err != nil {
		return nil, j.err
	}
	return j.result, nil
}

func (j *fakeJudge) calls() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.requests)
}

func judgeResult(statusID int, t float64, memory float64) *judge.Result {
	raw, _ := json.Marshal(map[string]interface{}{
		"status": map[string]interface{}{"id": statusID},
		"time":   t,
		"memory": memory,
	})
	return &judge.Result{
		Status: &judge.Status{ID: statusID},
		Time:   judge.Number(t),
		Memory: judge.Number(memory),
		Raw:    raw,
	}
}

type fakeResetTokens struct {
	mu     sync.Mutex
	tokens map[string]string
	ttls   map[string]time.Duration
}

func newFakeResetTokens() *fakeResetTokens {
	return &fakeResetTokens{tokens: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeResetTokens) Save(_ context.Context, token, userID string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = userID
	f.ttls[token] = ttl
	return nil
}

func (f *fakeResetTokens) Consume(_ context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	userID, ok := f.tokens[token]
	if !ok {
		return "", common.ErrNotFound
	}
	delete(f.tokens, token)
	return userID, nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	links []string
}

func (n *recordingNotifier) SendPasswordReset(_ context.Context, _ *model.User, link string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.links = append(n.links, link)
	return nil
}
