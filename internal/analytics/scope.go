// Package analytics holds the pure computations behind the tracker: who may see which rows,
// how daily records roll up over a period, how entities rank against goals, the revenue
// funnel forecast and the yearly tracking grid.
package analytics

// Role closed set of actor roles
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleRecruiter Role = "recruiter"
)

// ParseRole maps a stored role string onto the enumeration.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleAdmin, RoleManager, RoleRecruiter:
		return r, true
	}
	return "", false
}

// Capabilities what a role may do, independent of any particular row
type Capabilities struct {
	ViewAll     bool
	ViewTeam    bool
	ManageUsers bool
	ManageTeams bool
	SetGoals    bool
}

var roleCapabilities = map[Role]Capabilities{
	RoleAdmin:     {ViewAll: true, ViewTeam: true, ManageUsers: true, ManageTeams: true, SetGoals: true},
	RoleManager:   {ViewTeam: true, SetGoals: true},
	RoleRecruiter: {},
}

// Capabilities unknown roles get the zero value
func (r Role) Capabilities() Capabilities { return roleCapabilities[r] }

// Actor the authenticated principal every service call is made on behalf of
type Actor struct {
	ID     string
	Role   Role
	TeamID string // "" when unassigned
	Active bool
}

func (a Actor) caps() Capabilities {
	if !a.Active {
		return Capabilities{}
	}
	return a.Role.Capabilities()
}

func (a Actor) IsAdmin() bool        { return a.caps().ViewAll }
func (a Actor) CanManageUsers() bool { return a.caps().ManageUsers }
func (a Actor) CanManageTeams() bool { return a.caps().ManageTeams }

// CanViewTeamData managers and admins see more than their own rows
func (a Actor) CanViewTeamData() bool {
	c := a.caps()
	return c.ViewAll || (c.ViewTeam && a.TeamID != "")
}

// CanSetGoalsFor reports whether the actor may write goals for teamID.
// Admins may target any team; managers only their own.
func (a Actor) CanSetGoalsFor(teamID string) bool {
	c := a.caps()
	if !c.SetGoals {
		return false
	}
	if c.ViewAll {
		return true
	}
	return a.TeamID != "" && a.TeamID == teamID
}

// ScopeKind the shape of a visibility predicate
type ScopeKind int

const (
	ScopeNone ScopeKind = iota
	ScopeAll
	ScopeTeam
	ScopeOwner
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeAll:
		return "all"
	case ScopeTeam:
		return "team"
	case ScopeOwner:
		return "owner"
	}
	return "none"
}

// Scope a row predicate derived from an actor. The zero value matches nothing.
type Scope struct {
	Kind    ScopeKind
	TeamID  string
	OwnerID string
}

// Row anything that carries an author and a team
type Row interface {
	RowOwner() string
	RowTeam() string
}

// VisibleScope decides which rows an actor may read.
//
//	admin                -> all
//	manager with team    -> rows of that team
//	recruiter with team  -> rows the recruiter authored
//	anything else        -> none
func VisibleScope(a Actor) Scope {
	if !a.Active || a.ID == "" {
		return Scope{}
	}
	switch a.Role {
	case RoleAdmin:
		return Scope{Kind: ScopeAll}
	case RoleManager:
		if a.TeamID != "" {
			return Scope{Kind: ScopeTeam, TeamID: a.TeamID}
		}
	case RoleRecruiter:
		if a.TeamID != "" {
			return Scope{Kind: ScopeOwner, OwnerID: a.ID}
		}
	}
	return Scope{}
}

// Allows evaluates the predicate against one row.
func (s Scope) Allows(r Row) bool {
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeTeam:
		return s.TeamID != "" && r.RowTeam() == s.TeamID
	case ScopeOwner:
		return s.OwnerID != "" && r.RowOwner() == s.OwnerID
	}
	return false
}

// AllowsTeam reports whether rows of teamID can be visible at all under s.
// Owner scopes are treated as matching nothing team-wide.
func (s Scope) AllowsTeam(teamID string) bool {
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeTeam:
		return s.TeamID == teamID
	}
	return false
}

// Filter keeps the rows s allows, preserving order.
func Filter[T Row](rows []T, s Scope) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if s.Allows(r) {
			out = append(out, r)
		}
	}
	return out
}
