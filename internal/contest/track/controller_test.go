package track

import (
	"context"
	"sync"
	"testing"
	"time"

	"shodhacli/internal/contest/model"
	"shodhacli/internal/testutil"
	appErr "shodhacli/pkg/errors"
)

// fakeJudge plays back a scripted sequence of status-query results.
// The last result repeats once the script runs out.
type fakeJudge struct {
	mu        sync.Mutex
	submitErr error
	nextID    string
	submitted []model.SubmissionDraft
	script    []queryResult
	queries   map[string]int
}

type queryResult struct {
	status model.SubmissionStatus
	result string
	err    error
}

func newFakeJudge(id string, script ...queryResult) *fakeJudge {
	return &fakeJudge{nextID: id, script: script, queries: make(map[string]int)}
}

func (f *fakeJudge) PostSubmission(_ context.Context, draft model.SubmissionDraft) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return "", f.submitErr
	}
	f.submitted = append(f.submitted, draft)
	return f.nextID, nil
}

func (f *fakeJudge) GetSubmission(_ context.Context, submissionID string) (model.SubmissionState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := f.queries[submissionID]
	f.queries[submissionID] = idx + 1
	if idx >= len(f.script) {
		idx = len(f.script) - 1
	}
	step := f.script[idx]
	if step.err != nil {
		return model.SubmissionState{}, step.err
	}
	return model.SubmissionState{ID: submissionID, Status: step.status, Result: step.result}, nil
}

func (f *fakeJudge) queryCount(submissionID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[submissionID]
}

func (f *fakeJudge) submitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submitted)
}

// recorder collects lifecycle events.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) notify(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) byKind(kind EventKind) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, ev := range r.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func (r *recorder) finalCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Kind != EventProcessing {
			n++
		}
	}
	return n
}

func testOptions() Options {
	return Options{
		PollInterval: 10 * time.Millisecond,
		TrackTimeout: 500 * time.Millisecond,
		QueryTimeout: 100 * time.Millisecond,
	}
}

func validDraft() model.SubmissionDraft {
	return model.SubmissionDraft{
		ContestID: 1,
		ProblemID: 7,
		UserName:  "alice",
		Language:  "python",
		Code:      "print(1)",
	}
}

func TestSubmitRejectsBlankCode(t *testing.T) {
	judge := newFakeJudge("s1")
	c := NewController(judge, nil, testOptions())

	draft := validDraft()
	draft.Code = "   \n\t"
	err := c.Submit(context.Background(), draft)

	testutil.AssertTrue(t, appErr.Is(err, appErr.EmptyCode), "blank code should be rejected locally")
	testutil.AssertEqual(t, judge.submitCount(), 0)
	testutil.AssertEqual(t, c.State(), StateDraft)
}

func TestSubmitRejectsMissingProblem(t *testing.T) {
	judge := newFakeJudge("s1")
	c := NewController(judge, nil, testOptions())

	draft := validDraft()
	draft.ProblemID = 0
	err := c.Submit(context.Background(), draft)

	testutil.AssertTrue(t, appErr.Is(err, appErr.ValidationFailed), "missing problem should be rejected locally")
	testutil.AssertEqual(t, judge.submitCount(), 0)
}

func TestSubmitFailureNeverStartsTracking(t *testing.T) {
	judge := newFakeJudge("s1")
	judge.submitErr = appErr.New(appErr.RequestFailed)
	rec := &recorder{}
	c := NewController(judge, rec.notify, testOptions())

	err := c.Submit(context.Background(), validDraft())

	testutil.AssertTrue(t, appErr.Is(err, appErr.SubmitFailed), "creation failure should map to SubmitFailed")
	testutil.AssertEqual(t, c.State(), StateSubmitFailed)
	testutil.AssertEqual(t, len(rec.byKind(EventSubmitFailed)), 1)
	testutil.AssertEqual(t, judge.queryCount("s1"), 0)
}

func TestVerdictStopsPollingImmediately(t *testing.T) {
	judge := newFakeJudge("s1",
		queryResult{status: model.StatusRunning},
		queryResult{status: model.StatusRunning},
		queryResult{status: model.StatusAccepted, result: "All test cases passed"},
	)
	rec := &recorder{}
	c := NewController(judge, rec.notify, testOptions())

	if err := c.Submit(context.Background(), validDraft()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	<-c.Done()

	testutil.AssertEqual(t, c.State(), StateTerminal)
	testutil.AssertEqual(t, judge.queryCount("s1"), 3)

	verdicts := rec.byKind(EventVerdict)
	testutil.AssertEqual(t, len(verdicts), 1)
	testutil.AssertEqual(t, verdicts[0].Status, model.StatusAccepted)
	testutil.AssertEqual(t, verdicts[0].Result, "All test cases passed")
	testutil.AssertEqual(t, len(rec.byKind(EventProcessing)), 2)

	// The verdict ended the schedule: no further query may be issued.
	time.Sleep(50 * time.Millisecond)
	testutil.AssertEqual(t, judge.queryCount("s1"), 3)
	testutil.AssertEqual(t, rec.finalCount(), 1)
}

func TestTimeoutWhenNeverTerminal(t *testing.T) {
	judge := newFakeJudge("s1", queryResult{status: model.StatusPending})
	rec := &recorder{}
	opts := testOptions()
	opts.TrackTimeout = 105 * time.Millisecond
	c := NewController(judge, rec.notify, opts)

	if err := c.Submit(context.Background(), validDraft()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	<-c.Done()

	testutil.AssertEqual(t, c.State(), StateTimedOut)
	testutil.AssertEqual(t, len(rec.byKind(EventTimeout)), 1)
	testutil.AssertEqual(t, len(rec.byKind(EventVerdict)), 0)

	// Giving up is final: queries stop at the deadline.
	after := judge.queryCount("s1")
	time.Sleep(50 * time.Millisecond)
	testutil.AssertEqual(t, judge.queryCount("s1"), after)
	testutil.AssertEqual(t, rec.finalCount(), 1)
}

func TestPollErrorStopsTracking(t *testing.T) {
	judge := newFakeJudge("s1", queryResult{err: appErr.New(appErr.RequestFailed)})
	rec := &recorder{}
	c := NewController(judge, rec.notify, testOptions())

	if err := c.Submit(context.Background(), validDraft()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	<-c.Done()

	testutil.AssertEqual(t, c.State(), StatePollError)
	testutil.AssertEqual(t, len(rec.byKind(EventPollError)), 1)
	testutil.AssertEqual(t, judge.queryCount("s1"), 1)

	// No automatic retry of a failed poll.
	time.Sleep(50 * time.Millisecond)
	testutil.AssertEqual(t, judge.queryCount("s1"), 1)
	testutil.AssertEqual(t, rec.finalCount(), 1)
}

func TestCancelSuppressesAllReports(t *testing.T) {
	judge := newFakeJudge("s1", queryResult{status: model.StatusPending})
	rec := &recorder{}
	opts := testOptions()
	opts.TrackTimeout = 80 * time.Millisecond
	c := NewController(judge, rec.notify, opts)

	if err := c.Submit(context.Background(), validDraft()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	time.Sleep(25 * time.Millisecond)
	c.Cancel()
	after := judge.queryCount("s1")

	// Wait past the original deadline: no tick, no timeout report.
	time.Sleep(120 * time.Millisecond)
	testutil.AssertEqual(t, judge.queryCount("s1"), after)
	testutil.AssertEqual(t, rec.finalCount(), 0)
}

func TestResubmitCancelsPriorAttempt(t *testing.T) {
	judge := newFakeJudge("s1", queryResult{status: model.StatusPending})
	rec := &recorder{}
	c := NewController(judge, rec.notify, testOptions())

	if err := c.Submit(context.Background(), validDraft()); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	time.Sleep(25 * time.Millisecond)

	judge.mu.Lock()
	judge.nextID = "s2"
	judge.script = []queryResult{{status: model.StatusAccepted}}
	judge.mu.Unlock()

	if err := c.Submit(context.Background(), validDraft()); err != nil {
		t.Fatalf("second submit failed: %v", err)
	}
	testutil.AssertEqual(t, c.SubmissionID(), "s2")
	<-c.Done()

	// The replaced attempt ends silently; only s2 reports a verdict.
	s1Queries := judge.queryCount("s1")
	time.Sleep(50 * time.Millisecond)
	testutil.AssertEqual(t, judge.queryCount("s1"), s1Queries)
	testutil.AssertEqual(t, rec.finalCount(), 1)
	verdicts := rec.byKind(EventVerdict)
	testutil.AssertEqual(t, len(verdicts), 1)
	testutil.AssertEqual(t, verdicts[0].SubmissionID, "s2")
}
