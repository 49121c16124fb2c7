package live

import (
	"fmt"
	"time"

	"wikiqa/internal/builder"
)

// Reduce applies a build event to the UI state.
func Reduce(state State, event Event) State {
	switch event.Kind {
	case EventBuildStart:
		state.BuildID = event.BuildID
		state.SourceURL = event.SourceURL
		state.StartedAt = event.EmittedAt
		state.LastEvent = "Build started"
	case EventStageStart:
		state = updateStage(state, event.Stage, func(row StageRow) StageRow {
			row.Status = StageRunning
			row.StartedAt = event.EmittedAt
			return row
		})
		state.LastEvent = fmt.Sprintf("Stage %s started", event.Stage)
	case EventStageEnd:
		state = updateStage(state, event.Stage, func(row StageRow) StageRow {
			row.FinishedAt = event.EmittedAt
			row.Error = event.Error
			if event.Error != "" {
				row.Status = StageFailed
			} else {
				row.Status = StageDone
			}
			return row
		})
		if event.Error != "" {
			state.LastEvent = fmt.Sprintf("Stage %s failed: %s", event.Stage, event.Error)
		} else {
			state.LastEvent = fmt.Sprintf("Stage %s finished", event.Stage)
		}
	case EventSubject:
		state.Subjects = append(state.Subjects, SubjectRow{
			Index: event.Subject.Index,
			Name:  event.Subject.Name,
			Pairs: event.Subject.Pairs,
		})
		state.TotalSubjects = event.Subject.Total
		state.Pairs += event.Subject.Pairs
		state.LastEvent = fmt.Sprintf("Read %s (%d pairs)", event.Subject.Name, event.Subject.Pairs)
	case EventDownload:
		state.Downloaded = event.Written
		state.DownloadTotal = event.Total
	case EventBuildEnd:
		state.Finished = true
		state.FinishedAt = event.EmittedAt
		state.Failed = event.Error != ""
		if state.Failed {
			state.LastEvent = "Build failed: " + event.Error
		} else {
			state.Pairs = event.Result.Pairs
			state.LastEvent = fmt.Sprintf("Build finished: %d pairs in %s", event.Result.Pairs, formatDuration(event.Result.Duration))
		}
	}
	return state
}

// updateStage applies fn to the row for stage, appending one if it is unknown.
func updateStage(state State, stage builder.Stage, fn func(StageRow) StageRow) State {
	rows := append([]StageRow(nil), state.Stages...)
	for i := range rows {
		if rows[i].Stage == stage {
			rows[i] = fn(rows[i])
			state.Stages = rows
			return state
		}
	}
	state.Stages = append(rows, fn(StageRow{Stage: stage, Status: StagePending}))
	return state
}

// formatDuration renders a rounded duration for display.
func formatDuration(duration time.Duration) string {
	if duration <= 0 {
		return "0s"
	}
	return duration.Round(100 * time.Millisecond).String()
}
