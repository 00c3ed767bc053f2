package service

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"recruit-tracker/internal/analytics"
	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/model"
	"recruit-tracker/pkg/metrics"
)

// ── shared business errors ──

var (
	ErrForbidden   = errors.New("operation not permitted")
	ErrNoTeam      = errors.New("user is not assigned to a team")
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// requireTeam every authored row needs a team
func requireTeam(actor analytics.Actor) error {
	if actor.TeamID == "" {
		return ErrNoTeam
	}
	return nil
}

// readFailed logs a read that failed during aggregation; the caller continues with no rows.
func readFailed(logger *zap.Logger, m *metrics.Metrics, source string, err error) {
	logger.Warn("read failed, continuing with no rows", zap.String("source", source), zap.Error(err))
	m.StoreReadFailed(source)
}

// ── time formatting ──

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// yearMonth fills a missing year or month from now
func yearMonth(year, month int, now time.Time) (int, time.Month) {
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	return year, time.Month(month)
}

// ── references ──

func toUserBrief(u *model.User) *dto.UserBrief {
	if u == nil {
		return nil
	}
	return &dto.UserBrief{
		ID:       u.UserID,
		FullName: u.FullName(),
		Email:    u.Email,
		Role:     u.Role,
	}
}

func toTeamBrief(t *model.Team) *dto.TeamBrief {
	if t == nil {
		return nil
	}
	return &dto.TeamBrief{ID: t.TeamID, Name: t.Name}
}

// ── goal resolution ──

// months returns 1..n
func months(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// periodTarget resolves the target of one metric over some months of a year.
// Goals are grouped per owner (user or team); for each owner the monthly goals in
// the months are summed, and an owner without monthly goals contributes its annual
// goal spread evenly over the months.
func periodTarget(goals []model.Goal, metric string, inMonths []int) float64 {
	want := make(map[int]bool, len(inMonths))
	for _, m := range inMonths {
		want[m] = true
	}

	type owner struct{ user, team string }
	monthly := make(map[owner]float64)
	hasMonthly := make(map[owner]bool)
	annual := make(map[owner]float64)

	for _, g := range goals {
		if g.MetricType != metric {
			continue
		}
		k := owner{g.RowOwner(), g.RowTeam()}
		if g.Month == nil {
			annual[k] += g.TargetValue
			continue
		}
		hasMonthly[k] = true
		if want[*g.Month] {
			monthly[k] += g.TargetValue
		}
	}

	var total float64
	for _, v := range monthly {
		total += v
	}
	for k, v := range annual {
		if !hasMonthly[k] {
			total += v * float64(len(inMonths)) / 12
		}
	}
	return total
}
