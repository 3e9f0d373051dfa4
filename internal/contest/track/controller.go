// Package track owns the lifecycle of one submission attempt: creation
// through the judging API, then status polling until a terminal verdict,
// a poll failure, or the tracking deadline.
package track

import (
	"context"
	"strings"
	"sync"
	"time"

	"shodhacli/internal/contest/model"
	"shodhacli/internal/contest/poll"
	appErr "shodhacli/pkg/errors"
)

const (
	// DefaultPollInterval is the gap between status queries.
	DefaultPollInterval = 2 * time.Second
	// DefaultTrackTimeout is how long tracking waits for a verdict
	// before giving up client-side.
	DefaultTrackTimeout = 30 * time.Second
	// DefaultQueryTimeout bounds one status query.
	DefaultQueryTimeout = 5 * time.Second
)

// State is the lifecycle state of the current submission attempt.
type State int

const (
	StateDraft State = iota
	StateSubmitting
	StateTracking
	StateTerminal
	StateTimedOut
	StateSubmitFailed
	StatePollError
)

func (s State) String() string {
	switch s {
	case StateDraft:
		return "draft"
	case StateSubmitting:
		return "submitting"
	case StateTracking:
		return "tracking"
	case StateTerminal:
		return "terminal"
	case StateTimedOut:
		return "timed_out"
	case StateSubmitFailed:
		return "submit_failed"
	case StatePollError:
		return "poll_error"
	}
	return "unknown"
}

// EventKind classifies observer events.
type EventKind int

const (
	// EventProcessing reports the judge is still working; repeats per tick.
	EventProcessing EventKind = iota
	// EventVerdict carries the judge's terminal status. At most one per attempt.
	EventVerdict
	// EventTimeout reports the client gave up waiting. Not a judge verdict.
	EventTimeout
	// EventSubmitFailed reports the creation call failed; tracking never started.
	EventSubmitFailed
	// EventPollError reports a failed status query; tracking stopped.
	EventPollError
)

// Event is delivered to the controller's observer. Verdict, timeout,
// submit-failure and poll-error are mutually exclusive: exactly one of
// them ends an attempt.
type Event struct {
	Kind         EventKind
	SubmissionID string
	Status       model.SubmissionStatus
	Result       string
	Err          error
}

// StatusAPI is the judging collaborator surface the controller needs.
type StatusAPI interface {
	PostSubmission(ctx context.Context, draft model.SubmissionDraft) (string, error)
	GetSubmission(ctx context.Context, submissionID string) (model.SubmissionState, error)
}

// Options tune polling; zero values select the defaults above.
type Options struct {
	PollInterval time.Duration
	TrackTimeout time.Duration
	QueryTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.TrackTimeout <= 0 {
		o.TrackTimeout = DefaultTrackTimeout
	}
	if o.QueryTimeout <= 0 {
		o.QueryTimeout = DefaultQueryTimeout
	}
	return o
}

// Controller drives one submission at a time. Starting a new attempt
// cancels the previous attempt's polling first, so at most one tracking
// schedule exists per controller.
type Controller struct {
	api    StatusAPI
	notify func(Event)
	opts   Options

	mu           sync.Mutex
	state        State
	submissionID string
	handle       *poll.Handle
	reported     bool
}

// NewController creates a controller reporting events to notify.
// notify may be nil; it is invoked from the polling goroutine.
func NewController(api StatusAPI, notify func(Event), opts Options) *Controller {
	return &Controller{
		api:    api,
		notify: notify,
		opts:   opts.withDefaults(),
		state:  StateDraft,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SubmissionID returns the identifier of the current attempt, if any.
func (c *Controller) SubmissionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submissionID
}

// Done returns a channel closed once the current attempt's polling has
// fully stopped. Without an active attempt it returns a closed channel.
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle != nil {
		return c.handle.Done()
	}
	closed := make(chan struct{})
	close(closed)
	return closed
}

// Submit validates the draft, creates the submission and starts status
// polling. Validation failures are returned synchronously and never
// reach the collaborator. A creation failure transitions to
// StateSubmitFailed without tracking ever starting.
func (c *Controller) Submit(ctx context.Context, draft model.SubmissionDraft) error {
	if draft.ProblemID == 0 {
		return appErr.ValidationError("problem_id", "no problem selected")
	}
	if strings.TrimSpace(draft.Code) == "" {
		return appErr.New(appErr.EmptyCode)
	}

	// Cancel any prior attempt first: Cancel waits for an in-flight
	// tick, so no stale callback can claim the new attempt's report.
	c.mu.Lock()
	prior := c.handle
	c.handle = nil
	c.mu.Unlock()
	if prior != nil {
		prior.Cancel()
	}

	c.mu.Lock()
	c.submissionID = ""
	c.reported = false
	c.state = StateSubmitting
	c.mu.Unlock()

	submissionID, err := c.api.PostSubmission(ctx, draft)
	if err != nil {
		wrapped := appErr.Wrap(err, appErr.SubmitFailed)
		c.finish(StateSubmitFailed, Event{Kind: EventSubmitFailed, Err: wrapped})
		return wrapped
	}

	c.mu.Lock()
	c.submissionID = submissionID
	c.state = StateTracking
	c.mu.Unlock()

	handle := poll.Start(
		func() poll.Control { return c.tick(submissionID) },
		c.opts.PollInterval,
		c.opts.TrackTimeout,
		func() {
			c.finish(StateTimedOut, Event{
				Kind:         EventTimeout,
				SubmissionID: submissionID,
				Err:          appErr.New(appErr.TrackingTimeout),
			})
		},
	)

	c.mu.Lock()
	c.handle = handle
	c.mu.Unlock()
	return nil
}

// tick performs one status query.
func (c *Controller) tick(submissionID string) poll.Control {
	ctx, cancel := context.WithTimeout(context.Background(), c.opts.QueryTimeout)
	defer cancel()

	state, err := c.api.GetSubmission(ctx, submissionID)
	if err != nil {
		// No retry on a failed poll: stop and surface it, distinctly
		// from both a judge verdict and the tracking timeout.
		c.finish(StatePollError, Event{
			Kind:         EventPollError,
			SubmissionID: submissionID,
			Err:          appErr.Wrap(err, appErr.PollFailed),
		})
		return poll.Done
	}

	if !state.Status.IsTerminal() {
		c.emit(Event{Kind: EventProcessing, SubmissionID: submissionID, Status: state.Status})
		return poll.Continue
	}

	c.finish(StateTerminal, Event{
		Kind:         EventVerdict,
		SubmissionID: submissionID,
		Status:       state.Status,
		Result:       state.Result,
	})
	return poll.Done
}

// Cancel stops polling for the current attempt, if any. No event is
// emitted: cancellation means the caller no longer wants a report.
func (c *Controller) Cancel() {
	c.mu.Lock()
	handle := c.handle
	c.reported = true
	c.mu.Unlock()
	if handle != nil {
		handle.Cancel()
	}
}

// finish records a final state and reports it at most once per attempt.
func (c *Controller) finish(state State, event Event) {
	c.mu.Lock()
	if c.reported {
		c.mu.Unlock()
		return
	}
	c.reported = true
	c.state = state
	c.mu.Unlock()
	c.emit(event)
}

func (c *Controller) emit(event Event) {
	if c.notify != nil {
		c.notify(event)
	}
}
