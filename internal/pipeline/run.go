// Package pipeline provides the batch orchestration that turns one job description and many profiles into a ranking.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-matcher/internal/logger"
	"github.com/jonathan/candidate-matcher/internal/parsing"
	"github.com/jonathan/candidate-matcher/internal/profile"
	"github.com/jonathan/candidate-matcher/internal/ranking"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// maxLoggedError bounds the failure text attached to a skipped-profile log entry
const maxLoggedError = 200

// Stage names the step at which a profile failed
type Stage string

// Stages reported in Failure
const (
	StageInput   Stage = "input"
	StageSegment Stage = "segment"
)

// Progress steps reported through ProgressCallback
const (
	StepRequirement = "requirement"
	StepMatch       = "match"
	StepRank        = "rank"
)

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step        string `json:"step"`
	CandidateID string `json:"candidate_id,omitempty"`
	Message     string `json:"message"`
	Content     any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs. It may be called
// from several goroutines at once.
type ProgressCallback func(event ProgressEvent)

// Input is one batch: a job description and the raw profiles to rank against it
type Input struct {
	JobText string
	// Profiles maps candidate id to raw profile text
	Profiles map[string]string
}

// Options holds configuration for a run
type Options struct {
	// Workers bounds how many profiles are processed at once. Values below 1 mean 1.
	Workers int
	// Threshold is the composite score at or above which a result counts as matched
	Threshold float64
	// MinYears drops candidates with a confident total below this many years. 0 disables.
	MinYears float64
	// AsOf is the month ongoing roles resolve to
	AsOf types.YearMonth
	// Engine scores profiles. Nil means ranking.NewEngine().
	Engine     *ranking.Engine
	OnProgress ProgressCallback
}

// Failure records a profile that could not be scored
type Failure struct {
	CandidateID string `json:"candidate_id"`
	Stage       Stage  `json:"stage"`
	Message     string `json:"error"`
	Err         error  `json:"-"`
}

func newFailure(candidateID string, stage Stage, err error) *Failure {
	return &Failure{CandidateID: candidateID, Stage: stage, Message: err.Error(), Err: err}
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %s: %v", f.CandidateID, f.Stage, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Result holds everything a run produced
type Result struct {
	Requirement *types.JobRequirement `json:"requirement"`
	// Ranked holds every scored candidate that passed the experience filter
	Ranked types.RankedList `json:"ranked"`
	// Matched is the prefix of Ranked at or above Options.Threshold
	Matched types.RankedList `json:"matched"`
	// FilteredByExperience holds results dropped by Options.MinYears, by candidate id
	FilteredByExperience []types.MatchResult `json:"filtered_by_experience"`
	// Failures holds profiles that could not be scored, by candidate id
	Failures []Failure `json:"failures"`
}

// outcome is the per-profile slot written by exactly one worker
type outcome struct {
	result  *types.MatchResult
	failure *Failure
}

// Run extracts the requirement from the job text, then normalizes and scores
// every profile concurrently and ranks the successes. A job description that
// yields no requirement aborts the run before any profile is processed. A
// profile that fails is recorded in Result.Failures and the run continues.
// Cancelling ctx discards partial results.
func Run(ctx context.Context, in Input, opts Options, log *zap.Logger) (*Result, error) {
	log = logger.WithFields(log)

	req, err := parsing.ExtractRequirement(in.JobText)
	if err != nil {
		return nil, fmt.Errorf("failed to extract requirement: %w", err)
	}
	log = log.With(zap.String(logger.FieldRequirement, req.ID.String()))
	log.Info("requirement extracted",
		zap.String("title", req.Title),
		zap.Strings("required", req.Required),
		zap.Strings("preferred", req.Preferred),
		zap.Int("keywords", len(req.Keywords)),
	)
	emitProgress(&opts, ProgressEvent{
		Step:    StepRequirement,
		Message: fmt.Sprintf("Extracted %d skills and %d keywords", req.SkillCount(), len(req.Keywords)),
		Content: req,
	})

	engine := opts.Engine
	if engine == nil {
		engine = ranking.NewEngine()
	}
	workers := max(opts.Workers, 1)

	ids := make([]string, 0, len(in.Profiles))
	for id := range in.Profiles {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	slots := make([]outcome, len(ids))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, id := range ids {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			slots[i] = matchOne(engine, req, id, in.Profiles[id], opts)
			if slots[i].result != nil {
				emitProgress(&opts, ProgressEvent{
					Step:        StepMatch,
					CandidateID: id,
					Message:     fmt.Sprintf("Scored %.3f", slots[i].result.Composite),
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	result := &Result{
		Requirement:          req,
		FilteredByExperience: []types.MatchResult{},
		Failures:             []Failure{},
	}
	var scored []types.MatchResult
	for _, slot := range slots {
		switch {
		case slot.failure != nil:
			logger.WithCandidate(log, slot.failure.CandidateID).Warn("profile skipped",
				zap.String(logger.FieldStage, string(slot.failure.Stage)),
				zap.String("error", logger.TruncateForLog(slot.failure.Message, maxLoggedError)),
			)
			result.Failures = append(result.Failures, *slot.failure)
		case belowMinimumExperience(*slot.result, opts.MinYears):
			logger.WithCandidate(log, slot.result.CandidateID).Debug("filtered by experience",
				zap.Int("total_months", slot.result.TotalExperienceMonths),
				zap.Float64("min_years", opts.MinYears),
			)
			result.FilteredByExperience = append(result.FilteredByExperience, *slot.result)
		default:
			scored = append(scored, *slot.result)
		}
	}

	ranked, err := ranking.Rank(scored)
	if err != nil {
		return nil, fmt.Errorf("failed to rank results: %w", err)
	}
	result.Ranked = ranked
	result.Matched = ranked.AboveThreshold(opts.Threshold)

	emitProgress(&opts, ProgressEvent{
		Step:    StepRank,
		Message: fmt.Sprintf("Ranked %d candidates, %d matched", ranked.Len(), result.Matched.Len()),
		Content: ranked,
	})
	log.Info("ranking complete",
		zap.Int("profiles", len(ids)),
		zap.Int("ranked", ranked.Len()),
		zap.Int("matched", result.Matched.Len()),
		zap.Int("filtered", len(result.FilteredByExperience)),
		zap.Int("failed", len(result.Failures)),
	)

	return result, nil
}

func matchOne(engine *ranking.Engine, req *types.JobRequirement, id, raw string, opts Options) outcome {
	if strings.TrimSpace(id) == "" {
		return outcome{failure: newFailure(id, StageInput, errors.New("candidate id is empty"))}
	}

	p, err := profile.NormalizeText(id, raw, profile.Options{AsOf: opts.AsOf})
	if err != nil {
		return outcome{failure: newFailure(id, StageSegment, err)}
	}

	result := engine.Match(p, req)
	return outcome{result: &result}
}

// belowMinimumExperience reports whether a confident experience total falls
// short of minYears. Low-confidence totals are only a lower bound and are kept.
func belowMinimumExperience(r types.MatchResult, minYears float64) bool {
	if minYears <= 0 || !r.ExperienceConfidence {
		return false
	}
	return float64(r.TotalExperienceMonths)/12 < minYears
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *Options, event ProgressEvent) {
	if opts.OnProgress != nil {
		opts.OnProgress(event)
	}
}
