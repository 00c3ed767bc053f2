package analytics

import (
	"errors"
	"fmt"
	"math"

	pkgerrors "recruit-tracker/pkg/errors"
)

// ErrInvalidForecastConfig forecast inputs that cannot produce a finite funnel
var ErrInvalidForecastConfig = fmt.Errorf("forecast: %w", pkgerrors.ErrInvalidConfiguration)

// Ratios conversion factors between funnel stages, each applied to the stage below
type Ratios struct {
	InterviewsPerPlacement    float64 `json:"interviews_per_placement"`
	SubmissionsPerInterview   float64 `json:"submissions_per_interview"`
	JobOrdersPerSubmission    float64 `json:"job_orders_per_submission"`
	PresentationsAPerJobOrder float64 `json:"presentations_a_per_job_order"`
	PresentationsBPerJobOrder float64 `json:"presentations_b_per_job_order"`
}

// Funnel required activity at every stage to reach a revenue target
type Funnel struct {
	Placements     int64 `json:"placements"`
	Interviews     int64 `json:"interviews"`
	Submissions    int64 `json:"submissions"`
	JobOrders      int64 `json:"job_orders"`
	PresentationsA int64 `json:"presentations_a"`
	PresentationsB int64 `json:"presentations_b"`
}

// maxStage keeps ceil results inside int64.
const maxStage = float64(1 << 53)

// Forecast works backwards from a revenue target. Every stage rounds up so the plan
// never under-provisions, and both presentation stages derive from job orders independently.
func Forecast(targetRevenue, avgDealSize float64, r Ratios) (Funnel, error) {
	if !finite(targetRevenue) || targetRevenue < 0 {
		return Funnel{}, fmt.Errorf("%w: target revenue must be a non-negative number", ErrInvalidForecastConfig)
	}
	if !finite(avgDealSize) || avgDealSize <= 0 {
		return Funnel{}, fmt.Errorf("%w: average deal size must be positive", ErrInvalidForecastConfig)
	}
	if err := r.Validate(); err != nil {
		return Funnel{}, err
	}

	placements := math.Ceil(targetRevenue / avgDealSize)
	if placements*avgDealSize < targetRevenue {
		placements++
	}

	interviews := stage(placements, r.InterviewsPerPlacement)
	submissions := stage(interviews, r.SubmissionsPerInterview)
	jobOrders := stage(submissions, r.JobOrdersPerSubmission)
	presA := stage(jobOrders, r.PresentationsAPerJobOrder)
	presB := stage(jobOrders, r.PresentationsBPerJobOrder)

	for _, v := range []float64{placements, interviews, submissions, jobOrders, presA, presB} {
		if v > maxStage {
			return Funnel{}, fmt.Errorf("%w: funnel exceeds representable range", ErrInvalidForecastConfig)
		}
	}
	return Funnel{
		Placements:     int64(placements),
		Interviews:     int64(interviews),
		Submissions:    int64(submissions),
		JobOrders:      int64(jobOrders),
		PresentationsA: int64(presA),
		PresentationsB: int64(presB),
	}, nil
}

// Validate every ratio must be a positive finite number.
func (r Ratios) Validate() error {
	var errs []error
	check := func(name string, v float64) {
		if !finite(v) || v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive", ErrInvalidForecastConfig, name))
		}
	}
	check("interviews_per_placement", r.InterviewsPerPlacement)
	check("submissions_per_interview", r.SubmissionsPerInterview)
	check("job_orders_per_submission", r.JobOrdersPerSubmission)
	check("presentations_a_per_job_order", r.PresentationsAPerJobOrder)
	check("presentations_b_per_job_order", r.PresentationsBPerJobOrder)
	return errors.Join(errs...)
}

func stage(prev, ratio float64) float64 {
	return math.Ceil(prev * ratio)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
