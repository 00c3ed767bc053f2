package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/model"
)

func setupTestGoalService() (*goalService, *testRepos) {
	repos := newTestRepos()
	repos.addTeam("team-a", "Alpha", "mia")
	repos.addTeam("team-b", "Bravo")
	repos.addUser("ada", model.RoleAdmin, "")
	repos.addUser("mia", model.RoleManager, "team-a")
	repos.addUser("rita", model.RoleRecruiter, "team-a")
	repos.addUser("bob", model.RoleRecruiter, "team-b")
	svc := NewGoalService(repos.repo, nil, nopLogger).(*goalService)
	svc.now = fixedNow
	return svc, repos
}

func intPtr(i int) *int { return &i }

func TestGoalUpsert_UserGoalTakesUsersTeam(t *testing.T) {
	svc, repos := setupTestGoalService()

	goal, err := svc.Upsert(context.Background(), actorOf(repos.users.users["mia"]), &dto.UpsertGoalRequest{
		UserID:      strPtr("rita"),
		Year:        2025,
		Month:       intPtr(3),
		MetricType:  model.MetricRP,
		TargetValue: 40,
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if goal.TeamID == nil || *goal.TeamID != "team-a" {
		t.Errorf("user goal should carry team-a, got %v", goal.TeamID)
	}
}

func TestGoalUpsert_ReplacesExisting(t *testing.T) {
	svc, repos := setupTestGoalService()
	mgr := actorOf(repos.users.users["mia"])
	req := &dto.UpsertGoalRequest{TeamID: strPtr("team-a"), Year: 2025, MetricType: model.MetricSales, TargetValue: 100000}

	first, err := svc.Upsert(context.Background(), mgr, req)
	if err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}
	req.TargetValue = 120000
	second, err := svc.Upsert(context.Background(), mgr, req)
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("same key should keep the goal id, got %s and %s", first.ID, second.ID)
	}
	if len(repos.goals.goals) != 1 || repos.goals.goals[first.ID].TargetValue != 120000 {
		t.Errorf("expected one goal at 120000, got %+v", repos.goals.goals)
	}
}

func TestGoalUpsert_Errors(t *testing.T) {
	svc, repos := setupTestGoalService()
	mgr := actorOf(repos.users.users["mia"])

	tests := []struct {
		name  string
		actor string
		req   dto.UpsertGoalRequest
		want  error
	}{
		{"no owner", "mia", dto.UpsertGoalRequest{Year: 2025, MetricType: model.MetricFTI}, ErrGoalOwnerRequired},
		{"unknown metric", "mia", dto.UpsertGoalRequest{TeamID: strPtr("team-a"), Year: 2025, MetricType: "calls"}, ErrInvalidMetricType},
		{"negative target", "mia", dto.UpsertGoalRequest{TeamID: strPtr("team-a"), Year: 2025, MetricType: model.MetricFTI, TargetValue: -1}, ErrInvalidGoalTarget},
		{"nan target", "mia", dto.UpsertGoalRequest{TeamID: strPtr("team-a"), Year: 2025, MetricType: model.MetricFTI, TargetValue: math.NaN()}, ErrInvalidGoalTarget},
		{"other team", "mia", dto.UpsertGoalRequest{TeamID: strPtr("team-b"), Year: 2025, MetricType: model.MetricFTI}, ErrForbidden},
		{"other team user", "mia", dto.UpsertGoalRequest{UserID: strPtr("bob"), Year: 2025, MetricType: model.MetricFTI}, ErrForbidden},
		{"team mismatch", "ada", dto.UpsertGoalRequest{UserID: strPtr("bob"), TeamID: strPtr("team-a"), Year: 2025, MetricType: model.MetricFTI}, ErrGoalTeamMismatch},
		{"unknown team", "ada", dto.UpsertGoalRequest{TeamID: strPtr("team-z"), Year: 2025, MetricType: model.MetricFTI}, ErrTeamNotFound},
		{"unknown user", "ada", dto.UpsertGoalRequest{UserID: strPtr("ghost"), Year: 2025, MetricType: model.MetricFTI}, ErrUserNotFound},
		{"recruiter", "rita", dto.UpsertGoalRequest{UserID: strPtr("rita"), Year: 2025, MetricType: model.MetricFTI}, ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := mgr
			if tt.actor != "mia" {
				actor = actorOf(repos.users.users[tt.actor])
			}
			if _, err := svc.Upsert(context.Background(), actor, &tt.req); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got: %v", tt.want, err)
			}
		})
	}
}

func TestGoalList_ScopedAndDefaultsYear(t *testing.T) {
	svc, repos := setupTestGoalService()
	admin := actorOf(repos.users.users["ada"])
	ctx := context.Background()

	for _, req := range []dto.UpsertGoalRequest{
		{TeamID: strPtr("team-a"), Year: 2025, MetricType: model.MetricSales, TargetValue: 1},
		{TeamID: strPtr("team-b"), Year: 2025, MetricType: model.MetricSales, TargetValue: 2},
		{UserID: strPtr("rita"), Year: 2025, MetricType: model.MetricRP, TargetValue: 3},
		{TeamID: strPtr("team-a"), Year: 2024, MetricType: model.MetricSales, TargetValue: 4},
	} {
		req := req
		if _, err := svc.Upsert(ctx, admin, &req); err != nil {
			t.Fatalf("seed goal: %v", err)
		}
	}

	goals, _ := svc.List(ctx, admin, &dto.GoalListRequest{})
	if len(goals) != 3 {
		t.Errorf("admin should see 3 goals for 2025, got %d", len(goals))
	}
	goals, _ = svc.List(ctx, actorOf(repos.users.users["mia"]), &dto.GoalListRequest{})
	if len(goals) != 2 {
		t.Errorf("manager should see 2 team-a goals, got %d", len(goals))
	}
	goals, _ = svc.List(ctx, actorOf(repos.users.users["rita"]), &dto.GoalListRequest{})
	if len(goals) != 1 || goals[0].MetricType != model.MetricRP {
		t.Errorf("recruiter should see only their own goal, got %+v", goals)
	}
}

func TestGoalList_ReadFailureDegrades(t *testing.T) {
	svc, repos := setupTestGoalService()
	repos.goals.listErr = errStoreDown

	goals, err := svc.List(context.Background(), actorOf(repos.users.users["ada"]), &dto.GoalListRequest{Year: 2025})
	if err != nil {
		t.Fatalf("a failed read should not fail the list, got: %v", err)
	}
	if goals == nil || len(goals) != 0 {
		t.Errorf("expected an empty, non-nil list, got %+v", goals)
	}
}

func TestGoalDelete(t *testing.T) {
	svc, repos := setupTestGoalService()
	ctx := context.Background()

	goal, _ := svc.Upsert(ctx, actorOf(repos.users.users["ada"]), &dto.UpsertGoalRequest{
		TeamID: strPtr("team-b"), Year: 2025, MetricType: model.MetricJobOrders, TargetValue: 10,
	})

	if err := svc.Delete(ctx, actorOf(repos.users.users["mia"]), goal.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got: %v", err)
	}
	if err := svc.Delete(ctx, actorOf(repos.users.users["ada"]), goal.ID); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if err := svc.Delete(ctx, actorOf(repos.users.users["ada"]), goal.ID); !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("expected ErrGoalNotFound, got: %v", err)
	}
}

func TestPeriodTarget(t *testing.T) {
	a, b := "team-a", "team-b"
	rita := "rita"
	goals := []model.Goal{
		{TeamID: &a, Year: 2025, MetricType: model.MetricSales, TargetValue: 120000},
		{TeamID: &b, Year: 2025, Month: intPtr(3), MetricType: model.MetricSales, TargetValue: 5000},
		{TeamID: &b, Year: 2025, Month: intPtr(4), MetricType: model.MetricSales, TargetValue: 7000},
		// annual ignored once the owner has monthly goals
		{TeamID: &b, Year: 2025, MetricType: model.MetricSales, TargetValue: 999999},
		{UserID: &rita, TeamID: &a, Year: 2025, MetricType: model.MetricFTI, TargetValue: 24},
	}

	tests := []struct {
		name   string
		metric string
		months []int
		want   float64
	}{
		{"one month", model.MetricSales, []int{3}, 10000 + 5000},
		{"quarter", model.MetricSales, []int{1, 2, 3}, 30000 + 5000},
		{"full year", model.MetricSales, months(12), 120000 + 12000},
		{"user annual spread", model.MetricFTI, []int{6}, 2},
		{"no goals", model.MetricMP, []int{1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := periodTarget(goals, tt.metric, tt.months); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
