package builder

import "fmt"

// Stage names one step of a build.
type Stage string

const (
	StagePrepare  Stage = "prepare"
	StageFetch    Stage = "fetch"
	StageExtract  Stage = "extract"
	StageRename   Stage = "rename"
	StageDiscover Stage = "discover"
	StageRead     Stage = "read"
	StageWrite    Stage = "write"
	StageCatalog  Stage = "catalog"
	StageCleanup  Stage = "cleanup"
)

// Stages lists every stage in execution order. StageCatalog only runs when
// a catalog is configured.
var Stages = []Stage{
	StagePrepare,
	StageFetch,
	StageExtract,
	StageRename,
	StageDiscover,
	StageRead,
	StageWrite,
	StageCatalog,
	StageCleanup,
}

// StageError wraps the failure of a single stage.
type StageError struct {
	Stage Stage
	Err   error
}

func (err *StageError) Error() string {
	return fmt.Sprintf("%s: %v", err.Stage, err.Err)
}

func (err *StageError) Unwrap() error {
	return err.Err
}
