package model

// FunnelStage is one column of the hiring funnel, ordered by pipeline stage.
type FunnelStage struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

type TimeToHire struct {
	AverageDays float64 `json:"average_time_to_hire_days"`
	HiredCount  int     `json:"hired_count"`
	Individual  []int   `json:"individual_times_days"`
}

type SourceEffectiveness struct {
	Source          string  `json:"source"`
	TotalCandidates int     `json:"total_candidates"`
	HiredCandidates int     `json:"hired_candidates"`
	ConversionRate  float64 `json:"conversion_rate"`
}

type DiversityTracking struct {
	GenderDistribution map[string]int `json:"gender_distribution"`
}

// DisparityBucket holds rejection counts for one demographic value.
type DisparityBucket struct {
	Total         int     `json:"total"`
	Rejected      int     `json:"rejected"`
	RejectionRate float64 `json:"rejection_rate"`
}

type ScreeningDisparity struct {
	GenderDisparity    map[string]DisparityBucket `json:"gender_disparity"`
	EthnicityDisparity map[string]DisparityBucket `json:"ethnicity_disparity"`
}

type ScoreDisparity struct {
	GenderAverageScores    map[string]float64 `json:"gender_average_scores"`
	EthnicityAverageScores map[string]float64 `json:"ethnicity_average_scores"`
}
