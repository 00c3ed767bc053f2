package service

import (
	"context"
	"errors"
	"testing"

	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/model"
	pkgerrors "recruit-tracker/pkg/errors"
)

func setupTestTeamService() (TeamService, *testRepos) {
	repos := newTestRepos()
	repos.addTeam("team-a", "Alpha", "mia")
	repos.addTeam("team-b", "Bravo")
	repos.addUser("ada", model.RoleAdmin, "")
	repos.addUser("mia", model.RoleManager, "team-a")
	repos.addUser("rita", model.RoleRecruiter, "team-a")
	return NewTeamService(repos.repo, nopLogger), repos
}

func TestTeamList(t *testing.T) {
	svc, repos := setupTestTeamService()
	ctx := context.Background()

	teams, err := svc.List(ctx, actorOf(repos.users.users["ada"]))
	if err != nil || len(teams) != 2 {
		t.Fatalf("admin should see 2 teams, got %d err=%v", len(teams), err)
	}
	if teams[0].Name != "Alpha" || teams[0].MemberCount != 2 {
		t.Errorf("unexpected first team: %+v", teams[0])
	}
	if len(teams[0].Managers) != 1 || teams[0].Managers[0].ID != "mia" {
		t.Errorf("expected mia as manager, got %+v", teams[0].Managers)
	}

	teams, _ = svc.List(ctx, actorOf(repos.users.users["rita"]))
	if len(teams) != 1 || teams[0].ID != "team-a" {
		t.Errorf("recruiter should see only their team, got %+v", teams)
	}

	repos.users.users["rita"].TeamID = nil
	teams, _ = svc.List(ctx, actorOf(repos.users.users["rita"]))
	if len(teams) != 0 {
		t.Errorf("unassigned user should see no teams, got %d", len(teams))
	}
}

func TestTeamGetByID_HidesOtherTeams(t *testing.T) {
	svc, repos := setupTestTeamService()

	if _, err := svc.GetByID(context.Background(), actorOf(repos.users.users["mia"]), "team-b"); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("expected ErrTeamNotFound, got: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), actorOf(repos.users.users["ada"]), "team-b"); err != nil {
		t.Errorf("admin should see team-b, got: %v", err)
	}
}

func TestTeamCreate(t *testing.T) {
	svc, repos := setupTestTeamService()
	admin := actorOf(repos.users.users["ada"])

	team, err := svc.Create(context.Background(), admin, &dto.CreateTeamRequest{
		Name:       "Charlie",
		ManagerIDs: []string{"mia", "mia"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(team.ManagerIDs) != 1 {
		t.Errorf("manager ids should be deduplicated, got %v", team.ManagerIDs)
	}

	if _, err := svc.Create(context.Background(), admin, &dto.CreateTeamRequest{Name: "alpha"}); !errors.Is(err, ErrTeamNameExists) {
		t.Errorf("expected ErrTeamNameExists, got: %v", err)
	}
	if _, err := svc.Create(context.Background(), admin, &dto.CreateTeamRequest{Name: "Delta", ManagerIDs: []string{"ghost"}}); !errors.Is(err, ErrManagerNotFound) {
		t.Errorf("expected ErrManagerNotFound, got: %v", err)
	}
	if _, err := svc.Create(context.Background(), actorOf(repos.users.users["mia"]), &dto.CreateTeamRequest{Name: "Echo"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got: %v", err)
	}
}

func TestTeamUpdate(t *testing.T) {
	svc, repos := setupTestTeamService()
	admin := actorOf(repos.users.users["ada"])
	name := "Alpha Prime"

	team, err := svc.Update(context.Background(), admin, "team-a", &dto.UpdateTeamRequest{Name: &name, ManagerIDs: []string{}, Version: 1})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if team.Name != name || team.Version != 2 || len(team.ManagerIDs) != 0 {
		t.Errorf("unexpected team after update: %+v", team)
	}

	// stale version
	if _, err := svc.Update(context.Background(), admin, "team-a", &dto.UpdateTeamRequest{Name: &name, Version: 1}); !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Errorf("expected ErrOptimisticLock, got: %v", err)
	}

	bravo := "Bravo"
	if _, err := svc.Update(context.Background(), admin, "team-a", &dto.UpdateTeamRequest{Name: &bravo}); !errors.Is(err, ErrTeamNameExists) {
		t.Errorf("expected ErrTeamNameExists, got: %v", err)
	}
}

func TestTeamDelete(t *testing.T) {
	svc, repos := setupTestTeamService()
	admin := actorOf(repos.users.users["ada"])

	if err := svc.Delete(context.Background(), admin, "team-a"); !errors.Is(err, ErrTeamHasMembers) {
		t.Errorf("expected ErrTeamHasMembers, got: %v", err)
	}
	if err := svc.Delete(context.Background(), admin, "team-b"); err != nil {
		t.Errorf("empty team should be deleted, got: %v", err)
	}
	if err := svc.Delete(context.Background(), admin, "team-b"); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("expected ErrTeamNotFound, got: %v", err)
	}
}

func TestTeamDelete_KeepsRowAndFreesName(t *testing.T) {
	svc, repos := setupTestTeamService()
	admin := actorOf(repos.users.users["ada"])
	ctx := context.Background()

	if err := svc.Delete(ctx, admin, "team-b"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	row := repos.teams.teams["team-b"]
	if row == nil || !row.DeletedAt.Valid {
		t.Fatalf("team row should be kept and marked deleted, got %+v", row)
	}
	if row.DeletedBy == nil || *row.DeletedBy != "ada" {
		t.Errorf("deleted_by should record the actor, got %v", row.DeletedBy)
	}

	teams, _ := svc.List(ctx, admin)
	if len(teams) != 1 || teams[0].ID != "team-a" {
		t.Errorf("deleted team should drop out of List, got %+v", teams)
	}
	if _, err := svc.GetByID(ctx, admin, "team-b"); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("expected ErrTeamNotFound, got: %v", err)
	}
	if _, err := svc.Create(ctx, admin, &dto.CreateTeamRequest{Name: "bravo"}); err != nil {
		t.Errorf("name of a deleted team should be reusable, got: %v", err)
	}
}

func TestTeamMembers(t *testing.T) {
	svc, repos := setupTestTeamService()

	members, err := svc.Members(context.Background(), actorOf(repos.users.users["mia"]), "team-a")
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	if len(members) != 2 {
		t.Errorf("expected 2 members, got %d", len(members))
	}
	if _, err := svc.Members(context.Background(), actorOf(repos.users.users["mia"]), "team-b"); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("expected ErrTeamNotFound, got: %v", err)
	}
}
