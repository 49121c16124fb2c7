package live

import (
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"wikiqa/internal/builder"
)

// Controller runs the live UI and implements builder.Observer.
type Controller struct {
	events    chan Event
	program   *tea.Program
	done      chan struct{}
	closeOnce sync.Once
	now       func() time.Time

	progressMu   sync.Mutex
	lastProgress int64
}

// progressStep is the minimum download growth between progress events.
const progressStep = 256 << 10

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	events := make(chan Event, 256)
	model := NewModel(events, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen())
	controller := &Controller{
		events:  events,
		program: program,
		done:    make(chan struct{}),
		now:     time.Now,
	}
	go func() {
		_, _ = program.Run()
		close(controller.done)
	}()
	return controller
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.events)
	})
}

// Wait blocks until the UI has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// OnBuildStart forwards build start events to the UI.
func (c *Controller) OnBuildStart(buildID uuid.UUID, sourceURL string) {
	c.send(Event{Kind: EventBuildStart, BuildID: buildID.String(), SourceURL: sourceURL})
}

// OnStageStart forwards stage start events to the UI.
func (c *Controller) OnStageStart(stage builder.Stage) {
	c.send(Event{Kind: EventStageStart, Stage: stage})
}

// OnStageEnd forwards stage completion events to the UI.
func (c *Controller) OnStageEnd(stage builder.Stage, err error) {
	c.send(Event{Kind: EventStageEnd, Stage: stage, Error: errorText(err)})
}

// OnSubject forwards subject progress to the UI.
func (c *Controller) OnSubject(event builder.SubjectEvent) {
	c.send(Event{Kind: EventSubject, Subject: event})
}

// OnBuildEnd forwards build completion events to the UI and closes it.
func (c *Controller) OnBuildEnd(result builder.Result, err error) {
	c.send(Event{Kind: EventBuildEnd, Result: result, Error: errorText(err)})
	c.Close()
}

// OnDownloadProgress forwards archive download progress to the UI. It
// matches fetch.ProgressFunc.
func (c *Controller) OnDownloadProgress(written, total int64) {
	if c == nil {
		return
	}
	c.progressMu.Lock()
	if written-c.lastProgress < progressStep && written != total {
		c.progressMu.Unlock()
		return
	}
	c.lastProgress = written
	c.progressMu.Unlock()
	c.send(Event{Kind: EventDownload, Written: written, Total: total})
}

// send stamps and enqueues an event without blocking the caller.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	if c.now != nil {
		event.EmittedAt = c.now()
	}
	select {
	case c.events <- event:
	default:
	}
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
