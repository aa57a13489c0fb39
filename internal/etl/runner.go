package etl

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/classify"
	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/warehouse"
)

// Runner sequences the standard bronze-to-silver rebuild. Stage order is
// fixed: the snapshot read first, then one rebuild stage per destination
// dataset. A rebuild-stage failure is recorded and the remaining stages
// still run; only a snapshot failure aborts the run, because every later
// stage consumes the snapshot.
type Runner struct {
	reader warehouse.BronzeReader
	store  warehouse.SilverStore
	masker classify.Masker
	log    zerolog.Logger
}

// NewRunner wires a runner over the given warehouse and amount masker.
func NewRunner(reader warehouse.BronzeReader, store warehouse.SilverStore, masker classify.Masker, log zerolog.Logger) *Runner {
	return &Runner{reader: reader, store: store, masker: masker, log: log}
}

// rebuildStages builds the fixed stage sequence after the snapshot.
func (r *Runner) rebuildStages() []Stage {
	stages := []Stage{
		&CustomerStage{Store: r.store},
		&ProductStage{Store: r.store},
		&RevenueStage{Store: r.store, Masker: r.masker},
	}
	for _, platform := range warehouse.SocialPlatforms {
		stages = append(stages, &SocialStage{Store: r.store, Platform: platform})
	}
	return append(stages, &EmailStage{Store: r.store})
}

// Run executes a full pipeline run and returns the per-stage report.
func (r *Runner) Run(ctx context.Context) RunReport {
	report := RunReport{
		RunID:     uuid.NewString(),
		Started:   time.Now(),
		Succeeded: true,
	}
	state := &RunState{}

	log := r.log.With().Str("run_id", report.RunID).Logger()
	log.Info().Msg("starting silver rebuild")

	snapshot := &SnapshotStage{Reader: r.reader}
	result := r.execute(ctx, snapshot, state, log)
	report.Stages = append(report.Stages, result)
	if !result.Success {
		report.Succeeded = false
		log.Error().Str("stage", snapshot.Name()).Msg("snapshot failed; aborting run")
		return report
	}

	log.Info().
		Int("order_lines", len(state.OrderLines)).
		Int("bank_transactions", len(state.BankTransactions)).
		Int("email_campaigns", len(state.EmailRaw)).
		Msg("bronze snapshot loaded")

	for _, stage := range r.rebuildStages() {
		result := r.execute(ctx, stage, state, log)
		report.Stages = append(report.Stages, result)
		if !result.Success {
			report.Succeeded = false
		}
	}

	report.ClassificationGaps = state.ClassificationGaps
	report.GapDescriptions = state.GapDescriptions

	if state.ClassificationGaps > 0 {
		log.Warn().
			Int("gaps", state.ClassificationGaps).
			Msg("revenue rows fell through the rule table; audit rule coverage")
	}
	log.Info().
		Bool("succeeded", report.Succeeded).
		Int("skipped_records", state.SkippedRecords).
		Msg("silver rebuild finished")

	return report
}

func (r *Runner) execute(ctx context.Context, stage Stage, state *RunState, log zerolog.Logger) StageResult {
	start := time.Now()
	err := stage.Execute(ctx, state)
	result := StageResult{
		Stage:    stage.Name(),
		Duration: time.Since(start),
		Success:  err == nil,
	}
	if err != nil {
		result.Err = errInfo(err)
		log.Error().
			Err(err).
			Str("stage", stage.Name()).
			Str("code", result.Err.Code).
			Dur("duration", result.Duration).
			Msg("stage failed")
		return result
	}
	log.Info().
		Str("stage", stage.Name()).
		Dur("duration", result.Duration).
		Msg("stage completed")
	return result
}

func errInfo(err error) *StageErrorInfo {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return &StageErrorInfo{Message: stageErr.Error(), Code: stageErr.Code}
	}
	return &StageErrorInfo{Message: err.Error(), Code: "UNEXPECTED"}
}
