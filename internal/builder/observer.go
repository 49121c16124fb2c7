package builder

import "github.com/google/uuid"

// SubjectEvent reports one subject whose data file has been read.
type SubjectEvent struct {
	Index int
	Total int
	Name  string
	Pairs int
}

// Observer receives build lifecycle events for UI or logging.
type Observer interface {
	OnBuildStart(buildID uuid.UUID, sourceURL string)
	OnStageStart(stage Stage)
	OnStageEnd(stage Stage, err error)
	OnSubject(event SubjectEvent)
	OnBuildEnd(result Result, err error)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) OnBuildStart(uuid.UUID, string) {}
func (NopObserver) OnStageStart(Stage)             {}
func (NopObserver) OnStageEnd(Stage, error)        {}
func (NopObserver) OnSubject(SubjectEvent)         {}
func (NopObserver) OnBuildEnd(Result, error)       {}
