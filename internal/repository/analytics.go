package repository

import (
	"context"
	"fmt"

	"github.com/brianmahove/recruiting-ai/pkg"
	"github.com/brianmahove/recruiting-ai/pkg/model"
)

// HiringFunnel counts candidates per pipeline stage, in stage order. Stages
// with no candidates still appear with a zero count.
func (r *Repository) HiringFunnel(ctx context.Context) ([]model.FunnelStage, error) {
	const q = `
SELECT ps.name, COUNT(c.candidate_id)
FROM pipeline_stages ps
LEFT JOIN candidates c ON c.status = ps.name
GROUP BY ps.name, ps.stage_order
ORDER BY ps.stage_order ASC
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query hiring funnel: %w", err)
	}
	defer rows.Close()

	out := []model.FunnelStage{}
	for rows.Next() {
		var f model.FunnelStage
		if err := rows.Scan(&f.Stage, &f.Count); err != nil {
			return nil, fmt.Errorf("scan funnel row: %w", err)
		}
		out = append(out, f)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

// TimeToHire averages whole days from candidate creation to hire over hired
// candidates with a hire date.
func (r *Repository) TimeToHire(ctx context.Context) (model.TimeToHire, error) {
	const q = `
SELECT EXTRACT(DAY FROM hired_at - created_at)::int
FROM candidates
WHERE status = $1 AND hired_at IS NOT NULL
ORDER BY hired_at ASC
`
	rows, err := r.db.Query(ctx, q, model.StageHired)
	if err != nil {
		return model.TimeToHire{}, fmt.Errorf("query time to hire: %w", err)
	}
	defer rows.Close()

	out := model.TimeToHire{Individual: []int{}}
	var sum int
	for rows.Next() {
		var days int
		if err := rows.Scan(&days); err != nil {
			return model.TimeToHire{}, fmt.Errorf("scan time-to-hire row: %w", err)
		}
		out.Individual = append(out.Individual, days)
		sum += days
	}
	if rows.Err() != nil {
		return model.TimeToHire{}, fmt.Errorf("rows error: %w", rows.Err())
	}

	out.HiredCount = len(out.Individual)
	if out.HiredCount > 0 {
		out.AverageDays = pkg.Round2(float64(sum) / float64(out.HiredCount))
	}
	return out, nil
}

// SourceEffectiveness groups candidates by source with hire conversion rates.
// Candidates without a source are skipped.
func (r *Repository) SourceEffectiveness(ctx context.Context) ([]model.SourceEffectiveness, error) {
	const q = `
SELECT source,
       COUNT(*),
       COUNT(*) FILTER (WHERE status = $1)
FROM candidates
WHERE source IS NOT NULL AND source <> ''
GROUP BY source
ORDER BY source ASC
`
	rows, err := r.db.Query(ctx, q, model.StageHired)
	if err != nil {
		return nil, fmt.Errorf("query source effectiveness: %w", err)
	}
	defer rows.Close()

	out := []model.SourceEffectiveness{}
	for rows.Next() {
		var s model.SourceEffectiveness
		if err := rows.Scan(&s.Source, &s.TotalCandidates, &s.HiredCandidates); err != nil {
			return nil, fmt.Errorf("scan source row: %w", err)
		}
		s.ConversionRate = pkg.Rate(s.HiredCandidates, s.TotalCandidates)
		out = append(out, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (r *Repository) DiversityTracking(ctx context.Context) (model.DiversityTracking, error) {
	const q = `
SELECT gender, COUNT(*)
FROM candidates
WHERE gender IS NOT NULL AND gender <> ''
GROUP BY gender
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return model.DiversityTracking{}, fmt.Errorf("query diversity tracking: %w", err)
	}
	defer rows.Close()

	out := model.DiversityTracking{GenderDistribution: map[string]int{}}
	for rows.Next() {
		var gender string
		var count int
		if err := rows.Scan(&gender, &count); err != nil {
			return model.DiversityTracking{}, fmt.Errorf("scan diversity row: %w", err)
		}
		out.GenderDistribution[gender] = count
	}
	if rows.Err() != nil {
		return model.DiversityTracking{}, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

// ScreeningDisparity reports rejection rates per gender and ethnicity bucket.
func (r *Repository) ScreeningDisparity(ctx context.Context) (model.ScreeningDisparity, error) {
	out := model.ScreeningDisparity{
		GenderDisparity:    map[string]model.DisparityBucket{},
		EthnicityDisparity: map[string]model.DisparityBucket{},
	}

	if err := r.disparityByColumn(ctx, "gender", out.GenderDisparity); err != nil {
		return model.ScreeningDisparity{}, err
	}
	if err := r.disparityByColumn(ctx, "ethnicity", out.EthnicityDisparity); err != nil {
		return model.ScreeningDisparity{}, err
	}
	return out, nil
}

func (r *Repository) disparityByColumn(ctx context.Context, column string, into map[string]model.DisparityBucket) error {
	// column is one of two fixed identifiers, never user input
	q := fmt.Sprintf(`
SELECT %s,
       COUNT(*),
       COUNT(*) FILTER (WHERE status = $1)
FROM candidates
WHERE %s IS NOT NULL AND %s <> ''
GROUP BY %s
`, column, column, column, column)

	rows, err := r.db.Query(ctx, q, model.StageRejected)
	if err != nil {
		return fmt.Errorf("query %s disparity: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var bucket string
		var total, rejected int
		if err := rows.Scan(&bucket, &total, &rejected); err != nil {
			return fmt.Errorf("scan %s disparity row: %w", column, err)
		}
		into[bucket] = model.DisparityBucket{
			Total:         total,
			Rejected:      rejected,
			RejectionRate: pkg.Rate(rejected, total),
		}
	}
	if rows.Err() != nil {
		return fmt.Errorf("rows error: %w", rows.Err())
	}
	return nil
}

// AssessmentScoreDisparity averages completed assessment totals per
// demographic bucket.
func (r *Repository) AssessmentScoreDisparity(ctx context.Context) (model.ScoreDisparity, error) {
	out := model.ScoreDisparity{
		GenderAverageScores:    map[string]float64{},
		EthnicityAverageScores: map[string]float64{},
	}

	if err := r.scoreDisparityByColumn(ctx, "gender", out.GenderAverageScores); err != nil {
		return model.ScoreDisparity{}, err
	}
	if err := r.scoreDisparityByColumn(ctx, "ethnicity", out.EthnicityAverageScores); err != nil {
		return model.ScoreDisparity{}, err
	}
	return out, nil
}

func (r *Repository) scoreDisparityByColumn(ctx context.Context, column string, into map[string]float64) error {
	q := fmt.Sprintf(`
SELECT c.%s, AVG(ar.total_score)
FROM assessment_results ar
JOIN candidates c ON c.candidate_id = ar.candidate_id
WHERE ar.status IN ($1, $2) AND c.%s IS NOT NULL AND c.%s <> ''
GROUP BY c.%s
`, column, column, column, column)

	rows, err := r.db.Query(ctx, q, model.ResultCompleted, model.ResultGraded)
	if err != nil {
		return fmt.Errorf("query %s score disparity: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var bucket string
		var avg float64
		if err := rows.Scan(&bucket, &avg); err != nil {
			return fmt.Errorf("scan %s score row: %w", column, err)
		}
		into[bucket] = pkg.Round2(avg)
	}
	if rows.Err() != nil {
		return fmt.Errorf("rows error: %w", rows.Err())
	}
	return nil
}
