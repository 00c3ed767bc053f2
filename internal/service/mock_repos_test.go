package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"recruit-tracker/config"
	"recruit-tracker/internal/analytics"
	"recruit-tracker/internal/model"
	"recruit-tracker/internal/repository"
	pkgerrors "recruit-tracker/pkg/errors"
)

var errStoreDown = errors.New("store unavailable")

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	teams *mockTeamRepo
	seq   int
}

func newMockUserRepo(teams *mockTeamRepo) *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User), teams: teams}
}

func (m *mockUserRepo) withTeam(u model.User) model.User {
	if u.TeamID != nil && m.teams != nil {
		if t, ok := m.teams.teams[*u.TeamID]; ok {
			team := *t
			u.Team = &team
		}
	} else {
		u.Team = nil
	}
	return u
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	if user.Version == 0 {
		user.Version = 1
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		cp := m.withTeam(*u)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := m.withTeam(*u)
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	current, ok := m.users[user.UserID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if user.Version != 0 && user.Version != current.Version {
		return pkgerrors.ErrOptimisticLock
	}
	cp := *user
	cp.Version = current.Version + 1
	cp.Team = nil
	m.users[user.UserID] = &cp
	user.Version = cp.Version
	return nil
}

func (m *mockUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.LastLoginAt = &at
	return nil
}

func (m *mockUserRepo) sorted() []model.User {
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, m.withTeam(*u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}

func (m *mockUserRepo) List(_ context.Context, filter repository.UserFilter, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.sorted() {
		if filter.TeamID != "" && u.TeamRef() != filter.TeamID {
			continue
		}
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if !filter.IncludeInactive && !u.IsActive {
			continue
		}
		if filter.Keyword != "" {
			kw := strings.ToLower(filter.Keyword)
			if !strings.Contains(strings.ToLower(u.FullName()), kw) && !strings.Contains(strings.ToLower(u.Email), kw) {
				continue
			}
		}
		all = append(all, u)
	}
	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockUserRepo) ListActive(_ context.Context, scope analytics.Scope) ([]model.User, error) {
	var out []model.User
	for _, u := range m.sorted() {
		if u.IsActive && scope.Allows(u) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) ListByTeam(_ context.Context, teamID string) ([]model.User, error) {
	var out []model.User
	for _, u := range m.sorted() {
		if u.TeamRef() == teamID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) ListByIDs(_ context.Context, ids []string) ([]model.User, error) {
	var out []model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, m.withTeam(*u))
		}
	}
	return out, nil
}

func (m *mockUserRepo) CountByTeam(_ context.Context, teamID string) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.TeamRef() == teamID {
			n++
		}
	}
	return n, nil
}

// ── Mock TeamRepository ──

type mockTeamRepo struct {
	teams   map[string]*model.Team
	seq     int
	listErr error
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{teams: make(map[string]*model.Team)}
}

func (m *mockTeamRepo) Create(_ context.Context, team *model.Team) error {
	if team.TeamID == "" {
		m.seq++
		team.TeamID = fmt.Sprintf("team-%d", m.seq)
	}
	if team.Version == 0 {
		team.Version = 1
	}
	m.teams[team.TeamID] = team
	return nil
}

func (m *mockTeamRepo) GetByID(_ context.Context, id string) (*model.Team, error) {
	if t, ok := m.teams[id]; ok && !t.DeletedAt.Valid {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamRepo) GetByName(_ context.Context, name string) (*model.Team, error) {
	for _, t := range m.teams {
		if !t.DeletedAt.Valid && strings.EqualFold(t.Name, name) {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamRepo) List(_ context.Context) ([]model.Team, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.Team, 0, len(m.teams))
	for _, t := range m.teams {
		if t.DeletedAt.Valid {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockTeamRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Team, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Team
	for _, t := range all {
		for _, id := range ids {
			if t.TeamID == id {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

func (m *mockTeamRepo) Update(_ context.Context, team *model.Team) error {
	current, ok := m.teams[team.TeamID]
	if !ok || current.Version != team.Version {
		return pkgerrors.ErrOptimisticLock
	}
	cp := *team
	cp.Version++
	m.teams[team.TeamID] = &cp
	team.Version = cp.Version
	return nil
}

func (m *mockTeamRepo) Delete(_ context.Context, id, deletedBy string) error {
	t, ok := m.teams[id]
	if !ok || t.DeletedAt.Valid {
		return gorm.ErrRecordNotFound
	}
	t.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	t.DeletedBy = &deletedBy
	return nil
}

// ── Mock DailyRecordRepository ──

type mockDailyRecordRepo struct {
	records map[string]*model.DailyRecord // key: user_id|date
	listErr error
}

func newMockDailyRecordRepo() *mockDailyRecordRepo {
	return &mockDailyRecordRepo{records: make(map[string]*model.DailyRecord)}
}

func recordKey(userID string, day time.Time) string {
	return userID + "|" + day.Format("2006-01-02")
}

func (m *mockDailyRecordRepo) Upsert(_ context.Context, record *model.DailyRecord) error {
	key := recordKey(record.UserID, record.RecordDate)
	if existing, ok := m.records[key]; ok {
		record.RecordID = existing.RecordID
		record.CreatedAt = existing.CreatedAt
	} else {
		record.RecordID = "rec-" + key
	}
	record.UpdatedAt = time.Now()
	cp := *record
	m.records[key] = &cp
	return nil
}

func (m *mockDailyRecordRepo) GetByUserAndDate(_ context.Context, userID string, day time.Time) (*model.DailyRecord, error) {
	if r, ok := m.records[recordKey(userID, day)]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDailyRecordRepo) List(_ context.Context, filter repository.RecordFilter) ([]model.DailyRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []model.DailyRecord
	for _, r := range m.records {
		if !filter.Scope.Allows(r) {
			continue
		}
		if filter.TeamID != "" && r.TeamID != filter.TeamID {
			continue
		}
		if len(filter.UserIDs) > 0 && !contains(filter.UserIDs, r.UserID) {
			continue
		}
		if !filter.From.IsZero() && r.RecordDate.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && r.RecordDate.After(filter.To) {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordDate.Before(out[j].RecordDate) })
	return out, nil
}

// ── Mock GoalRepository ──

type mockGoalRepo struct {
	goals   map[string]*model.Goal
	seq     int
	listErr error
}

func newMockGoalRepo() *mockGoalRepo {
	return &mockGoalRepo{goals: make(map[string]*model.Goal)}
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sameMonth(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (m *mockGoalRepo) Upsert(_ context.Context, goal *model.Goal) error {
	for _, g := range m.goals {
		if sameRef(g.UserID, goal.UserID) && sameRef(g.TeamID, goal.TeamID) && g.Year == goal.Year &&
			sameMonth(g.Month, goal.Month) && g.MetricType == goal.MetricType {
			g.TargetValue = goal.TargetValue
			g.UpdatedBy = goal.UpdatedBy
			goal.GoalID = g.GoalID
			goal.CreatedAt = g.CreatedAt
			goal.CreatedBy = g.CreatedBy
			return nil
		}
	}
	m.seq++
	goal.GoalID = fmt.Sprintf("goal-%d", m.seq)
	cp := *goal
	m.goals[goal.GoalID] = &cp
	return nil
}

func (m *mockGoalRepo) GetByID(_ context.Context, id string) (*model.Goal, error) {
	if g, ok := m.goals[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGoalRepo) List(_ context.Context, filter repository.GoalFilter) ([]model.Goal, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []model.Goal
	for _, g := range m.goals {
		if !filter.Scope.Allows(g) {
			continue
		}
		if filter.Year != 0 && g.Year != filter.Year {
			continue
		}
		if filter.AnnualOnly && g.Month != nil {
			continue
		}
		if !filter.AnnualOnly && filter.Month != nil && (g.Month == nil || *g.Month != *filter.Month) {
			continue
		}
		if filter.UserID != "" && g.RowOwner() != filter.UserID {
			continue
		}
		if filter.TeamID != "" && g.RowTeam() != filter.TeamID {
			continue
		}
		if filter.TeamLevel && g.UserID != nil {
			continue
		}
		if len(filter.MetricTypes) > 0 && !contains(filter.MetricTypes, g.MetricType) {
			continue
		}
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GoalID < out[j].GoalID })
	return out, nil
}

func (m *mockGoalRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.goals[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.goals, id)
	return nil
}

// ── Mock InterviewRepository ──

type mockInterviewRepo struct {
	interviews map[string]*model.InterviewSchedule
	seq        int
	listErr    error
}

func newMockInterviewRepo() *mockInterviewRepo {
	return &mockInterviewRepo{interviews: make(map[string]*model.InterviewSchedule)}
}

func (m *mockInterviewRepo) Create(_ context.Context, iv *model.InterviewSchedule) error {
	m.seq++
	iv.InterviewID = fmt.Sprintf("iv-%d", m.seq)
	iv.CreatedAt = time.Date(2025, 1, 1, 0, 0, m.seq, 0, time.UTC)
	cp := *iv
	m.interviews[iv.InterviewID] = &cp
	return nil
}

func (m *mockInterviewRepo) GetByID(_ context.Context, id string) (*model.InterviewSchedule, error) {
	if iv, ok := m.interviews[id]; ok {
		cp := *iv
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInterviewRepo) UpdateStatus(_ context.Context, id, status, updatedBy string) error {
	iv, ok := m.interviews[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	iv.Status = status
	iv.UpdatedBy = &updatedBy
	return nil
}

func (m *mockInterviewRepo) List(_ context.Context, filter repository.InterviewFilter) ([]model.InterviewSchedule, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []model.InterviewSchedule
	for _, iv := range m.interviews {
		if !filter.Scope.Allows(iv) {
			continue
		}
		if filter.TeamID != "" && iv.TeamID != filter.TeamID {
			continue
		}
		if filter.Status != "" && iv.Status != filter.Status {
			continue
		}
		if !filter.From.IsZero() && (iv.InterviewAt == nil || iv.InterviewAt.Before(filter.From)) {
			continue
		}
		if !filter.To.IsZero() && (iv.InterviewAt == nil || iv.InterviewAt.After(filter.To)) {
			continue
		}
		out = append(out, *iv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ── Mock DealRepository ──

type mockDealRepo struct {
	deals   map[string]*model.Deal
	seq     int
	listErr error
}

func newMockDealRepo() *mockDealRepo {
	return &mockDealRepo{deals: make(map[string]*model.Deal)}
}

func (m *mockDealRepo) Create(_ context.Context, deal *model.Deal) error {
	m.seq++
	deal.DealID = fmt.Sprintf("deal-%d", m.seq)
	deal.CreatedAt = time.Date(2025, 1, 1, 0, 0, m.seq, 0, time.UTC)
	cp := *deal
	m.deals[deal.DealID] = &cp
	return nil
}

func (m *mockDealRepo) GetByID(_ context.Context, id string) (*model.Deal, error) {
	if d, ok := m.deals[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDealRepo) UpdateStatus(_ context.Context, id, status, updatedBy string) error {
	d, ok := m.deals[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.Status = status
	d.UpdatedBy = &updatedBy
	return nil
}

func (m *mockDealRepo) List(_ context.Context, filter repository.DealFilter) ([]model.Deal, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []model.Deal
	for _, d := range m.deals {
		if !filter.Scope.Allows(d) {
			continue
		}
		if filter.TeamID != "" && d.TeamID != filter.TeamID {
			continue
		}
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ── Mock PlacementRepository ──

type mockPlacementRepo struct {
	placements []model.Placement
	listErr    error
}

func newMockPlacementRepo() *mockPlacementRepo {
	return &mockPlacementRepo{}
}

func (m *mockPlacementRepo) Create(_ context.Context, p *model.Placement) error {
	p.PlacementID = fmt.Sprintf("pl-%d", len(m.placements)+1)
	m.placements = append(m.placements, *p)
	return nil
}

func (m *mockPlacementRepo) List(_ context.Context, filter repository.PlacementFilter) ([]model.Placement, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []model.Placement
	for _, p := range m.placements {
		if !filter.Scope.Allows(p) {
			continue
		}
		if filter.TeamID != "" && p.TeamID != filter.TeamID {
			continue
		}
		if !filter.From.IsZero() && p.PlacementDate.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && p.PlacementDate.After(filter.To) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// ── Mock ForecastSettingsRepository ──

type mockForecastSettingsRepo struct {
	row    *model.ForecastSettings
	getErr error
}

func (m *mockForecastSettingsRepo) Get(_ context.Context) (*model.ForecastSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.row == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m.row
	return &cp, nil
}

func (m *mockForecastSettingsRepo) Save(_ context.Context, s *model.ForecastSettings) error {
	cp := *s
	m.row = &cp
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// ── fixtures ──

type testRepos struct {
	repo       *repository.Repository
	users      *mockUserRepo
	teams      *mockTeamRepo
	records    *mockDailyRecordRepo
	goals      *mockGoalRepo
	interviews *mockInterviewRepo
	deals      *mockDealRepo
	placements *mockPlacementRepo
	settings   *mockForecastSettingsRepo
}

func newTestRepos() *testRepos {
	teams := newMockTeamRepo()
	r := &testRepos{
		users:      newMockUserRepo(teams),
		teams:      teams,
		records:    newMockDailyRecordRepo(),
		goals:      newMockGoalRepo(),
		interviews: newMockInterviewRepo(),
		deals:      newMockDealRepo(),
		placements: newMockPlacementRepo(),
		settings:   &mockForecastSettingsRepo{},
	}
	r.repo = &repository.Repository{
		User:             r.users,
		Team:             r.teams,
		DailyRecord:      r.records,
		Goal:             r.goals,
		Interview:        r.interviews,
		Deal:             r.deals,
		Placement:        r.placements,
		ForecastSettings: r.settings,
	}
	return r
}

func (r *testRepos) addTeam(id, name string, managers ...string) *model.Team {
	t := &model.Team{TeamID: id, Name: name, ManagerIDs: model.UUIDArray(managers)}
	t.Version = 1
	r.teams.teams[id] = t
	return t
}

func (r *testRepos) addUser(id, role, teamID string) *model.User {
	u := &model.User{
		UserID:    id,
		Email:     id + "@example.com",
		FirstName: strings.ToUpper(id[:1]) + id[1:],
		LastName:  "Tester",
		Role:      role,
		IsActive:  true,
	}
	if teamID != "" {
		u.TeamID = &teamID
	}
	u.Version = 1
	r.users.users[id] = u
	return u
}

func (r *testRepos) addRecord(userID, teamID string, day time.Time, rec model.DailyRecord) {
	rec.UserID = userID
	rec.TeamID = teamID
	rec.RecordDate = day
	_ = r.records.Upsert(context.Background(), &rec)
}

func actorOf(u *model.User) analytics.Actor {
	return analytics.Actor{ID: u.UserID, Role: analytics.Role(u.Role), TeamID: u.TeamRef(), Active: u.IsActive}
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{CalendarName: "Recruiting Interviews"},
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 7 * 24 * time.Hour,
		},
		Forecast: config.ForecastConfig{
			TargetRevenue:             500000,
			AvgPlacementFee:           20000,
			InterviewsPerPlacement:    4,
			SubmissionsPerInterview:   3,
			JobOrdersPerSubmission:    0.5,
			PresentationsAPerJobOrder: 5,
			PresentationsBPerJobOrder: 3,
		},
	}
}

func fixedNow() time.Time {
	return time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var nopLogger = zap.NewNop()
