//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"recruit-tracker/internal/analytics"
	"recruit-tracker/internal/model"
	"recruit-tracker/internal/repository"
	"recruit-tracker/pkg/database"
	pkgerrors "recruit-tracker/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=recruit password=recruit_password dbname=recruit_tracker_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect test database: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "get sql.DB: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestData creates a team with one recruiter and returns a cleanup func
func setupTestData(t *testing.T) (team *model.Team, user *model.User, cleanup func()) {
	t.Helper()
	ctx := context.Background()
	suffix := time.Now().UnixNano()

	team = &model.Team{
		Name:       fmt.Sprintf("Team-%d", suffix),
		ManagerIDs: model.UUIDArray{},
	}
	if err := testDB.WithContext(ctx).Create(team).Error; err != nil {
		t.Fatalf("create team: %v", err)
	}

	user = &model.User{
		Email:        fmt.Sprintf("recruiter%d@example.com", suffix),
		FirstName:    "Test",
		LastName:     "Recruiter",
		PasswordHash: "$2a$10$placeholder",
		Role:         model.RoleRecruiter,
		TeamID:       &team.TeamID,
		IsActive:     true,
	}
	if err := testDB.WithContext(ctx).Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	cleanup = func() {
		testDB.Where("user_id = ?", user.UserID).Delete(&model.DailyRecord{})
		testDB.Where("user_id = ? OR team_id = ?", user.UserID, team.TeamID).Delete(&model.Goal{})
		testDB.Where("user_id = ?", user.UserID).Delete(&model.User{})
		testDB.Unscoped().Where("team_id = ?", team.TeamID).Delete(&model.Team{})
	}
	return
}

// ═══════════════════════════════════════════════════════════
// Transactions
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	txRepo := repo.WithTx(tx)

	team := &model.Team{Name: fmt.Sprintf("Rollback-%d", time.Now().UnixNano()), ManagerIDs: model.UUIDArray{}}
	if err := txRepo.Team.Create(ctx, team); err != nil {
		tx.Rollback()
		t.Fatalf("create inside tx: %v", err)
	}

	tx.Rollback()

	if _, err := repo.Team.GetByID(ctx, team.TeamID); err == nil {
		testDB.Unscoped().Where("team_id = ?", team.TeamID).Delete(&model.Team{})
		t.Fatal("expected the team to be gone after rollback")
	}
}

func TestTransaction_Commit(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	txRepo := repo.WithTx(tx)

	team := &model.Team{Name: fmt.Sprintf("Commit-%d", time.Now().UnixNano()), ManagerIDs: model.UUIDArray{}}
	if err := txRepo.Team.Create(ctx, team); err != nil {
		tx.Rollback()
		t.Fatalf("create inside tx: %v", err)
	}
	if err := tx.Commit().Error; err != nil {
		t.Fatalf("Commit: %v", err)
	}
	defer testDB.Unscoped().Where("team_id = ?", team.TeamID).Delete(&model.Team{})

	found, err := repo.Team.GetByID(ctx, team.TeamID)
	if err != nil {
		t.Fatalf("GetByID after commit: %v", err)
	}
	if found.Name != team.Name {
		t.Errorf("name mismatch: expected %s, got %s", team.Name, found.Name)
	}
}

// ═══════════════════════════════════════════════════════════
// Optimistic locking
// ═══════════════════════════════════════════════════════════

func TestTeamUpdate_OptimisticLock(t *testing.T) {
	team, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	first, _ := repo.Team.GetByID(ctx, team.TeamID)
	second, _ := repo.Team.GetByID(ctx, team.TeamID)

	first.Name = team.Name + "-a"
	if err := repo.Team.Update(ctx, first); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if first.Version != second.Version+1 {
		t.Errorf("expected version %d, got %d", second.Version+1, first.Version)
	}

	second.Name = team.Name + "-b"
	err := repo.Team.Update(ctx, second)
	if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Fatalf("expected ErrOptimisticLock on stale version, got %v", err)
	}
}

func TestTeamDelete_KeepsHistoryRows(t *testing.T) {
	team, user, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	rec := &model.DailyRecord{UserID: user.UserID, TeamID: team.TeamID, RecordDate: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)}
	if err := repo.DailyRecord.Upsert(ctx, rec); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// the recruiter moves on, leaving only history behind
	if err := testDB.Model(&model.User{}).Where("user_id = ?", user.UserID).Update("team_id", nil).Error; err != nil {
		t.Fatalf("unassign user: %v", err)
	}
	if n, err := repo.User.CountByTeam(ctx, team.TeamID); err != nil || n != 0 {
		t.Fatalf("expected no members, got %d err=%v", n, err)
	}

	if err := repo.Team.Delete(ctx, team.TeamID, user.UserID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Team.Delete(ctx, team.TeamID, user.UserID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("second delete should report not found, got %v", err)
	}

	if _, err := repo.Team.GetByID(ctx, team.TeamID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("deleted team should be hidden from GetByID, got %v", err)
	}
	teams, err := repo.Team.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, tm := range teams {
		if tm.TeamID == team.TeamID {
			t.Error("deleted team should be hidden from List")
		}
	}
	if got, _ := repo.Team.ListByIDs(ctx, []string{team.TeamID}); len(got) != 0 {
		t.Errorf("deleted team should be hidden from ListByIDs, got %d", len(got))
	}

	records, err := repo.DailyRecord.List(ctx, repository.RecordFilter{
		Scope: analytics.Scope{Kind: analytics.ScopeTeam, TeamID: team.TeamID},
	})
	if err != nil {
		t.Fatalf("List records: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("history rows should survive the delete, got %d", len(records))
	}

	again := &model.Team{Name: team.Name, ManagerIDs: model.UUIDArray{}}
	if err := repo.Team.Create(ctx, again); err != nil {
		t.Fatalf("name of a deleted team should be reusable: %v", err)
	}
	testDB.Unscoped().Where("team_id = ?", again.TeamID).Delete(&model.Team{})
}

// ═══════════════════════════════════════════════════════════
// Daily records
// ═══════════════════════════════════════════════════════════

func TestDailyRecord_UpsertLastWriteWins(t *testing.T) {
	team, user, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	first := &model.DailyRecord{
		UserID:          user.UserID,
		TeamID:          team.TeamID,
		RecordDate:      day,
		PresentationsA:  3,
		PlacementAmount: decimal.NewFromInt(1000),
	}
	if err := repo.DailyRecord.Upsert(ctx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := &model.DailyRecord{
		UserID:          user.UserID,
		TeamID:          team.TeamID,
		RecordDate:      day,
		PresentationsA:  7,
		Submissions:     2,
		PlacementAmount: decimal.NewFromInt(2500),
	}
	if err := repo.DailyRecord.Upsert(ctx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.DailyRecord.GetByUserAndDate(ctx, user.UserID, day)
	if err != nil {
		t.Fatalf("GetByUserAndDate: %v", err)
	}
	if got.PresentationsA != 7 || got.Submissions != 2 || !got.PlacementAmount.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("expected the second write to win, got %+v", got)
	}

	records, err := repo.DailyRecord.List(ctx, repository.RecordFilter{
		Scope: analytics.Scope{Kind: analytics.ScopeOwner, OwnerID: user.UserID},
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record per user and day, got %d", len(records))
	}
}

func TestDailyRecord_ScopeNoneMatchesNothing(t *testing.T) {
	team, user, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	rec := &model.DailyRecord{UserID: user.UserID, TeamID: team.TeamID, RecordDate: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)}
	if err := repo.DailyRecord.Upsert(ctx, rec); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	records, err := repo.DailyRecord.List(ctx, repository.RecordFilter{Scope: analytics.Scope{}})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("zero scope should match nothing, got %d rows", len(records))
	}

	records, err = repo.DailyRecord.List(ctx, repository.RecordFilter{
		Scope: analytics.Scope{Kind: analytics.ScopeTeam, TeamID: team.TeamID},
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("team scope should see the record, got %d rows", len(records))
	}
}

// ═══════════════════════════════════════════════════════════
// Goals
// ═══════════════════════════════════════════════════════════

func TestGoal_UpsertTreatsNullKeysAsEqual(t *testing.T) {
	team, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	annual := func(target float64) *model.Goal {
		return &model.Goal{
			TeamID:      &team.TeamID,
			Year:        2025,
			MetricType:  model.MetricSales,
			TargetValue: target,
		}
	}

	first := annual(100000)
	if err := repo.Goal.Upsert(ctx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second := annual(150000)
	if err := repo.Goal.Upsert(ctx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.GoalID != first.GoalID {
		t.Errorf("expected the same goal to be overwritten, got %s and %s", first.GoalID, second.GoalID)
	}

	goals, err := repo.Goal.List(ctx, repository.GoalFilter{
		Scope:      analytics.Scope{Kind: analytics.ScopeAll},
		Year:       2025,
		TeamID:     team.TeamID,
		TeamLevel:  true,
		AnnualOnly: true,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(goals) != 1 || goals[0].TargetValue != 150000 {
		t.Errorf("expected one goal with the latest target, got %+v", goals)
	}

	if err := repo.Goal.Delete(ctx, first.GoalID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Goal.Delete(ctx, first.GoalID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("second delete should report not found, got %v", err)
	}
}
