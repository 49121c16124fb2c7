package live

import (
	"time"

	"wikiqa/internal/builder"
)

// StageStatus is the display status of a stage.
type StageStatus string

const (
	StagePending StageStatus = "pending"
	StageRunning StageStatus = "running"
	StageDone    StageStatus = "done"
	StageFailed  StageStatus = "failed"
)

// StageRow holds UI state for one pipeline stage.
type StageRow struct {
	Stage      builder.Stage
	Status     StageStatus
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
}

// SubjectRow holds UI state for one subject that has been read.
type SubjectRow struct {
	Index int
	Name  string
	Pairs int
}

// State captures the live UI state for a build.
type State struct {
	BuildID       string
	SourceURL     string
	StartedAt     time.Time
	FinishedAt    time.Time
	Stages        []StageRow
	Subjects      []SubjectRow
	TotalSubjects int
	Pairs         int
	Downloaded    int64
	DownloadTotal int64
	LastEvent     string
	Finished      bool
	Failed        bool
	Interrupted   bool
}

// NewState returns a state with every stage pending.
func NewState() State {
	stages := make([]StageRow, 0, len(builder.Stages))
	for _, stage := range builder.Stages {
		stages = append(stages, StageRow{Stage: stage, Status: StagePending})
	}
	return State{Stages: stages}
}
