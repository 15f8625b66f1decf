package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/brianmahove/recruiting-ai/pkg"
	"github.com/brianmahove/recruiting-ai/pkg/model"
	"github.com/jackc/pgx/v5"
)

// SeedDefaultStages inserts the default pipeline on first boot. Existing
// stages are left alone.
func (r *Repository) SeedDefaultStages(ctx context.Context) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		for i, name := range model.DefaultStageNames {
			const q = `
INSERT INTO pipeline_stages (name, stage_order, is_default)
VALUES ($1, $2, TRUE)
ON CONFLICT (name) DO NOTHING
`
			if _, err := tx.Exec(ctx, q, name, i); err != nil {
				return fmt.Errorf("seed stage %q: %w", name, err)
			}
		}
		return nil
	})
}

func (r *Repository) ListStages(ctx context.Context) ([]model.PipelineStage, error) {
	const q = `
SELECT stage_id, name, stage_order, description, is_default, created_at, updated_at
FROM pipeline_stages
ORDER BY stage_order ASC
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query stages: %w", err)
	}
	defer rows.Close()

	out := []model.PipelineStage{}
	for rows.Next() {
		var s model.PipelineStage
		if err := rows.Scan(&s.StageID, &s.Name, &s.StageOrder, &s.Description, &s.IsDefault, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stage row: %w", err)
		}
		out = append(out, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (r *Repository) GetStageByID(ctx context.Context, id int64) (model.PipelineStage, error) {
	const q = `
SELECT stage_id, name, stage_order, description, is_default, created_at, updated_at
FROM pipeline_stages WHERE stage_id = $1
`
	var s model.PipelineStage
	row := r.db.QueryRow(ctx, q, id)
	if err := row.Scan(&s.StageID, &s.Name, &s.StageOrder, &s.Description, &s.IsDefault, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PipelineStage{}, fmt.Errorf("stage %d: %w", id, ErrNotFound)
		}
		return model.PipelineStage{}, fmt.Errorf("scan stage: %w", err)
	}
	return s, nil
}

func (r *Repository) StageExistsByName(ctx context.Context, name string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM pipeline_stages WHERE name = $1)`
	var exists bool
	if err := r.db.QueryRow(ctx, q, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("check stage name: %w", err)
	}
	return exists, nil
}

// CreateStage appends a stage at the end of the board, or splices it in at the
// requested order shifting later stages down.
func (r *Repository) CreateStage(ctx context.Context, req model.CreateStageRequest) (model.PipelineStage, error) {
	var created model.PipelineStage
	err := r.execTx(ctx, func(tx pgx.Tx) error {
		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM pipeline_stages`).Scan(&count); err != nil {
			return fmt.Errorf("count stages: %w", err)
		}

		order := count
		if req.Order != nil && *req.Order >= 0 && *req.Order < count {
			order = *req.Order
			const shift = `UPDATE pipeline_stages SET stage_order = stage_order + 1, updated_at = now() WHERE stage_order >= $1`
			if _, err := tx.Exec(ctx, shift, order); err != nil {
				return fmt.Errorf("shift stages: %w", err)
			}
		}

		const q = `
INSERT INTO pipeline_stages (name, stage_order, description, is_default)
VALUES ($1, $2, $3, FALSE)
RETURNING stage_id, name, stage_order, description, is_default, created_at, updated_at
`
		row := tx.QueryRow(ctx, q, req.Name, order, req.Description)
		if err := row.Scan(&created.StageID, &created.Name, &created.StageOrder, &created.Description, &created.IsDefault, &created.CreatedAt, &created.UpdatedAt); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("stage %q: %w", req.Name, ErrDuplicate)
			}
			return fmt.Errorf("insert stage: %w", err)
		}
		return nil
	})
	return created, err
}

// UpdateStage renames, redescribes, or reorders a stage. A rename follows
// through to candidates so every status keeps matching a stage name; a reorder
// renumbers the whole board so stage orders stay a dense 0..n-1 sequence, with
// out-of-range targets clamped to the last position.
func (r *Repository) UpdateStage(ctx context.Context, id int64, req model.UpdateStageRequest) (model.PipelineStage, error) {
	var updated model.PipelineStage
	err := r.execTx(ctx, func(tx pgx.Tx) error {
		var cur model.PipelineStage
		const qCur = `
SELECT stage_id, name, stage_order, description, is_default, created_at, updated_at
FROM pipeline_stages WHERE stage_id = $1 FOR UPDATE
`
		row := tx.QueryRow(ctx, qCur, id)
		if err := row.Scan(&cur.StageID, &cur.Name, &cur.StageOrder, &cur.Description, &cur.IsDefault, &cur.CreatedAt, &cur.UpdatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("stage %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("lock stage: %w", err)
		}

		if req.Order != nil && *req.Order != cur.StageOrder {
			rows, err := tx.Query(ctx, `SELECT stage_id FROM pipeline_stages ORDER BY stage_order ASC FOR UPDATE`)
			if err != nil {
				return fmt.Errorf("lock stage order: %w", err)
			}
			ids := []int64{}
			for rows.Next() {
				var sid int64
				if err := rows.Scan(&sid); err != nil {
					rows.Close()
					return fmt.Errorf("scan stage id: %w", err)
				}
				ids = append(ids, sid)
			}
			rows.Close()
			if rows.Err() != nil {
				return fmt.Errorf("rows error: %w", rows.Err())
			}

			oldPos := -1
			for i, sid := range ids {
				if sid == id {
					oldPos = i
					break
				}
			}
			for i, sid := range pkg.RenormalizeOrder(ids, oldPos, *req.Order) {
				const move = `UPDATE pipeline_stages SET stage_order = $1, updated_at = now() WHERE stage_id = $2 AND stage_order <> $1`
				if _, err := tx.Exec(ctx, move, i, sid); err != nil {
					return fmt.Errorf("renumber stages: %w", err)
				}
			}
		}

		if req.Name != nil && *req.Name != cur.Name {
			if _, err := tx.Exec(ctx, `UPDATE pipeline_stages SET name = $1, updated_at = now() WHERE stage_id = $2`, *req.Name, id); err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("stage %q: %w", *req.Name, ErrDuplicate)
				}
				return fmt.Errorf("rename stage: %w", err)
			}
			if _, err := tx.Exec(ctx, `UPDATE candidates SET status = $1, updated_at = now() WHERE status = $2`, *req.Name, cur.Name); err != nil {
				return fmt.Errorf("rename candidate statuses: %w", err)
			}
		}

		if req.Description != nil {
			if _, err := tx.Exec(ctx, `UPDATE pipeline_stages SET description = $1, updated_at = now() WHERE stage_id = $2`, *req.Description, id); err != nil {
				return fmt.Errorf("update stage description: %w", err)
			}
		}

		const qOut = `
SELECT stage_id, name, stage_order, description, is_default, created_at, updated_at
FROM pipeline_stages WHERE stage_id = $1
`
		row = tx.QueryRow(ctx, qOut, id)
		return row.Scan(&updated.StageID, &updated.Name, &updated.StageOrder, &updated.Description, &updated.IsDefault, &updated.CreatedAt, &updated.UpdatedAt)
	})
	return updated, err
}

// DeleteStage refuses default stages, moves the stage's candidates back to the
// default stage (recording the transition), and closes the order gap.
func (r *Repository) DeleteStage(ctx context.Context, id int64) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		var name string
		var order int
		var isDefault bool
		const qCur = `SELECT name, stage_order, is_default FROM pipeline_stages WHERE stage_id = $1 FOR UPDATE`
		if err := tx.QueryRow(ctx, qCur, id).Scan(&name, &order, &isDefault); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("stage %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("lock stage: %w", err)
		}
		if isDefault {
			return fmt.Errorf("stage %q is a default stage: %w", name, ErrProtected)
		}

		const qHist = `
INSERT INTO candidate_status_history (candidate_id, old_status, new_status)
SELECT candidate_id, status, $1 FROM candidates WHERE status = $2
`
		if _, err := tx.Exec(ctx, qHist, model.StageNewCandidate, name); err != nil {
			return fmt.Errorf("record reassignment history: %w", err)
		}
		if _, err := tx.Exec(ctx, `UPDATE candidates SET status = $1, updated_at = now() WHERE status = $2`, model.StageNewCandidate, name); err != nil {
			return fmt.Errorf("reassign candidates: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM pipeline_stages WHERE stage_id = $1`, id); err != nil {
			return fmt.Errorf("delete stage: %w", err)
		}
		if _, err := tx.Exec(ctx, `UPDATE pipeline_stages SET stage_order = stage_order - 1, updated_at = now() WHERE stage_order > $1`, order); err != nil {
			return fmt.Errorf("close order gap: %w", err)
		}
		return nil
	})
}
