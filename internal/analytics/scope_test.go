package analytics

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"recruit-tracker/internal/model"
)

func TestVisibleScope(t *testing.T) {
	Convey("Given actors of every role", t, func() {
		admin := Actor{ID: "a1", Role: RoleAdmin, Active: true}
		manager := Actor{ID: "m1", Role: RoleManager, TeamID: "t1", Active: true}
		recruiter := Actor{ID: "r1", Role: RoleRecruiter, TeamID: "t1", Active: true}

		rows := []model.DailyRecord{
			{RecordID: "1", UserID: "r1", TeamID: "t1"},
			{RecordID: "2", UserID: "r2", TeamID: "t1"},
			{RecordID: "3", UserID: "r3", TeamID: "t2"},
		}

		Convey("An admin sees every row", func() {
			s := VisibleScope(admin)
			So(s.Kind, ShouldEqual, ScopeAll)
			So(Filter(rows, s), ShouldHaveLength, 3)
		})

		Convey("A manager sees the rows of their team", func() {
			s := VisibleScope(manager)
			So(s.Kind, ShouldEqual, ScopeTeam)
			got := Filter(rows, s)
			So(got, ShouldHaveLength, 2)
			So(got[0].RecordID, ShouldEqual, "1")
			So(got[1].RecordID, ShouldEqual, "2")
		})

		Convey("A recruiter sees only rows they authored", func() {
			s := VisibleScope(recruiter)
			So(s.Kind, ShouldEqual, ScopeOwner)
			got := Filter(rows, s)
			So(got, ShouldHaveLength, 1)
			So(got[0].UserID, ShouldEqual, "r1")
		})

		Convey("Unscoped actors see nothing and get no error", func() {
			for _, a := range []Actor{
				{ID: "m2", Role: RoleManager, Active: true},
				{ID: "r2", Role: RoleRecruiter, Active: true},
				{ID: "x", Role: Role("owner"), TeamID: "t1", Active: true},
				{ID: "a2", Role: RoleAdmin, Active: false},
				{Role: RoleAdmin, Active: true},
			} {
				s := VisibleScope(a)
				So(s.Kind, ShouldEqual, ScopeNone)
				So(Filter(rows, s), ShouldBeEmpty)
			}
		})

		Convey("The zero scope matches nothing", func() {
			So(Scope{}.Allows(rows[0]), ShouldBeFalse)
		})

		Convey("Team-wide access follows the scope kind", func() {
			So(VisibleScope(admin).AllowsTeam("t2"), ShouldBeTrue)
			So(VisibleScope(manager).AllowsTeam("t1"), ShouldBeTrue)
			So(VisibleScope(manager).AllowsTeam("t2"), ShouldBeFalse)
			So(VisibleScope(recruiter).AllowsTeam("t1"), ShouldBeFalse)
		})
	})
}

func TestCapabilities(t *testing.T) {
	Convey("Given the fixed capability table", t, func() {
		Convey("Admins hold every capability", func() {
			a := Actor{ID: "a", Role: RoleAdmin, Active: true}
			So(a.IsAdmin(), ShouldBeTrue)
			So(a.CanManageUsers(), ShouldBeTrue)
			So(a.CanManageTeams(), ShouldBeTrue)
			So(a.CanSetGoalsFor("any-team"), ShouldBeTrue)
		})

		Convey("Managers set goals for their own team only", func() {
			m := Actor{ID: "m", Role: RoleManager, TeamID: "t1", Active: true}
			So(m.CanViewTeamData(), ShouldBeTrue)
			So(m.CanSetGoalsFor("t1"), ShouldBeTrue)
			So(m.CanSetGoalsFor("t2"), ShouldBeFalse)
			So(m.CanManageUsers(), ShouldBeFalse)
		})

		Convey("Recruiters hold none", func() {
			r := Actor{ID: "r", Role: RoleRecruiter, TeamID: "t1", Active: true}
			So(r.CanViewTeamData(), ShouldBeFalse)
			So(r.CanSetGoalsFor("t1"), ShouldBeFalse)
		})

		Convey("Inactive actors lose everything", func() {
			a := Actor{ID: "a", Role: RoleAdmin}
			So(a.IsAdmin(), ShouldBeFalse)
			So(a.CanSetGoalsFor("t1"), ShouldBeFalse)
		})

		Convey("ParseRole accepts only the closed set", func() {
			r, ok := ParseRole("manager")
			So(ok, ShouldBeTrue)
			So(r, ShouldEqual, RoleManager)
			_, ok = ParseRole("Admin")
			So(ok, ShouldBeFalse)
		})
	})
}
