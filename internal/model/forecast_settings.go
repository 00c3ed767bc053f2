package model

// ForecastSettings default funnel inputs, maps to forecast_settings (single strongly typed row)
type ForecastSettings struct {
	Singleton                 bool    `gorm:"primaryKey;default:true"         json:"-"`
	TargetRevenue             float64 `gorm:"type:numeric(14,2);not null"     json:"target_revenue"`
	AvgPlacementFee           float64 `gorm:"type:numeric(14,2);not null"     json:"avg_placement_fee"`
	InterviewsPerPlacement    float64 `gorm:"not null"                        json:"interviews_per_placement"`
	SubmissionsPerInterview   float64 `gorm:"not null"                        json:"submissions_per_interview"`
	JobOrdersPerSubmission    float64 `gorm:"not null"                        json:"job_orders_per_submission"`
	PresentationsAPerJobOrder float64 `gorm:"not null"                        json:"presentations_a_per_job_order"`
	PresentationsBPerJobOrder float64 `gorm:"not null"                        json:"presentations_b_per_job_order"`
	BaseModel
}

// TableName table name
func (ForecastSettings) TableName() string { return "forecast_settings" }
