package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveRun stores a run and all of its ranked results in one transaction and returns the run ID
func (db *DB) SaveRun(ctx context.Context, in RunInput) (uuid.UUID, error) {
	if in.Requirement == nil {
		return uuid.Nil, errors.New("failed to save run: requirement is nil")
	}
	if in.Ranked.RequirementID != uuid.Nil && in.Ranked.RequirementID != in.Requirement.ID {
		return uuid.Nil, fmt.Errorf("failed to save run: ranked list belongs to requirement %s, not %s",
			in.Ranked.RequirementID, in.Requirement.ID)
	}

	requirementJSON, err := json.Marshal(in.Requirement)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal requirement: %w", err)
	}

	rows := resultRows(in.Ranked, in.Threshold)
	matched := 0
	for _, row := range rows {
		if row.Matched {
			matched++
		}
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	runID := uuid.New()
	_, err = tx.Exec(ctx,
		`INSERT INTO ranking_runs (id, requirement_id, job_title, requirement, threshold,
		                           candidate_count, matched_count, failed_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		runID, in.Requirement.ID, in.Requirement.Title, requirementJSON, in.Threshold,
		len(rows), matched, in.FailedCount,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(
			`INSERT INTO match_results (run_id, rank, candidate_id, composite_score, skill_score,
			                            experience_score, keyword_score, matched_required_skills,
			                            missing_required_skills, experience_confidence, matched)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			runID, row.Rank, row.CandidateID, row.CompositeScore, row.SkillScore,
			row.ExperienceScore, row.KeywordScore, row.MatchedRequired,
			row.MissingRequired, row.ExperienceConfidence, row.Matched,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return uuid.Nil, fmt.Errorf("failed to save results: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// GetRun retrieves a run by ID. It returns nil when no such run exists.
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var run Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, requirement_id, job_title, threshold, candidate_count, matched_count,
		        failed_count, created_at
		 FROM ranking_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.RequirementID, &run.JobTitle, &run.Threshold, &run.CandidateCount,
		&run.MatchedCount, &run.FailedCount, &run.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns retrieves the most recent runs
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, requirement_id, job_title, threshold, candidate_count, matched_count,
		        failed_count, created_at
		 FROM ranking_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.RequirementID, &run.JobTitle, &run.Threshold,
			&run.CandidateCount, &run.MatchedCount, &run.FailedCount, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// GetRunResults retrieves the stored results of a run in rank order
func (db *DB) GetRunResults(ctx context.Context, runID uuid.UUID) ([]StoredResult, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT rank, candidate_id, composite_score, skill_score, experience_score, keyword_score,
		        matched_required_skills, missing_required_skills, experience_confidence, matched
		 FROM match_results WHERE run_id = $1 ORDER BY rank`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get run results: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (StoredResult, error) {
		var r StoredResult
		err := row.Scan(&r.Rank, &r.CandidateID, &r.CompositeScore, &r.SkillScore,
			&r.ExperienceScore, &r.KeywordScore, &r.MatchedRequired, &r.MissingRequired,
			&r.ExperienceConfidence, &r.Matched)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan run results: %w", err)
	}
	return results, nil
}
