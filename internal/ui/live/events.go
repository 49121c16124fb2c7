package live

import (
	"time"

	"wikiqa/internal/builder"
)

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventBuildStart signals the start of a build.
	EventBuildStart EventKind = iota
	// EventStageStart signals a stage has begun.
	EventStageStart
	// EventStageEnd signals a stage has finished or failed.
	EventStageEnd
	// EventSubject reports a subject that has been read.
	EventSubject
	// EventBuildEnd signals build completion.
	EventBuildEnd
	// EventDownload reports archive download progress.
	EventDownload
)

// Event carries a UI update payload.
type Event struct {
	Kind      EventKind
	BuildID   string
	SourceURL string
	Stage     builder.Stage
	Error     string
	Subject   builder.SubjectEvent
	Result    builder.Result
	Written   int64
	Total     int64
	EmittedAt time.Time
}
