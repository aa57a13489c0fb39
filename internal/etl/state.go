// Package etl is the load coordinator: it sequences the silver-layer
// rebuild stages over a single bronze snapshot, times each stage, and
// reports per-stage success or failure. It owns no business rules; those
// live in classify, resolve, and marketing.
package etl

import (
	"time"

	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/models"
)

// RunState carries the bronze snapshot and cross-stage counters through a
// run. The snapshot is read once at the start; stages never re-read the
// warehouse mid-run.
type RunState struct {
	OrderLines       []models.OrderLine
	BankTransactions []models.BankTransaction
	SocialRaw        map[string][]models.SocialDailyRaw
	EmailRaw         []models.EmailCampaignRaw

	// ClassificationGaps counts Revenue rows that matched no revenue-type
	// rule; GapDescriptions preserves their descriptions for the rule
	// coverage audit. Gaps are observable, not errors.
	ClassificationGaps int
	GapDescriptions    []string

	// SkippedRecords counts individual malformed records dropped by the
	// normalizers.
	SkippedRecords int
}

// StageErrorInfo is the reported error surface of a failed stage.
type StageErrorInfo struct {
	Message string
	Code    string
}

// StageResult reports one stage's outcome. Timing is attached here, as a
// return value, instead of being tracked in process-wide state.
type StageResult struct {
	Stage    string
	Duration time.Duration
	Success  bool
	Err      *StageErrorInfo
}

// RunReport aggregates a full pipeline run.
type RunReport struct {
	RunID              string
	Started            time.Time
	Stages             []StageResult
	ClassificationGaps int
	GapDescriptions    []string
	Succeeded          bool
}
