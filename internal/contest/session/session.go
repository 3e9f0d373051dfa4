// Package session composes the contest-view state: the loaded contest,
// the selected problem, the editor draft, the active submission tracker
// and the leaderboard refresher.
package session

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"shodhacli/internal/contest/board"
	"shodhacli/internal/contest/model"
	"shodhacli/internal/contest/template"
	"shodhacli/internal/contest/track"
	appErr "shodhacli/pkg/errors"
	"shodhacli/pkg/utils/logger"

	"go.uber.org/zap"
)

// DefaultLanguage is the language selected when a session opens.
const DefaultLanguage = "java"

// API is the full collaborator surface a session needs.
type API interface {
	GetContest(ctx context.Context, contestID int64) (*model.Contest, error)
	track.StatusAPI
	board.BoardAPI
}

// Ticket carries the identifiers needed to open a session.
type Ticket struct {
	ContestID int64
	UserName  string
}

// Join validates the join form and yields a session ticket. Both fields
// must be non-empty; nothing else is checked here. Whether the contest
// exists is discovered on open.
func Join(contestID, userName string) (Ticket, error) {
	contestID = strings.TrimSpace(contestID)
	userName = strings.TrimSpace(userName)
	if contestID == "" {
		return Ticket{}, appErr.ValidationError("contest_id", "required")
	}
	if userName == "" {
		return Ticket{}, appErr.ValidationError("user_name", "required")
	}
	id, err := strconv.ParseInt(contestID, 10, 64)
	if err != nil {
		return Ticket{}, appErr.ValidationError("contest_id", "must be numeric")
	}
	return Ticket{ContestID: id, UserName: userName}, nil
}

// Options tune the session's polling behavior.
type Options struct {
	Track track.Options
	Board board.Options
}

// Session owns one contest view's mutable state. It is not shared
// across concurrent sessions; all mutation goes through its methods.
type Session struct {
	api    API
	ticket Ticket

	tracker   *track.Controller
	refresher *board.Refresher

	mu       sync.Mutex
	contest  *model.Contest
	selected *model.Problem
	language string
	code     string
	closed   bool
}

// Open builds a session, attempts the one-shot contest fetch and starts
// the leaderboard refresher. A failed contest fetch does not fail Open:
// the session stays unloaded and the view surfaces the loading state.
// notify receives submission lifecycle events; it may be nil.
func Open(ctx context.Context, api API, ticket Ticket, opts Options, notify func(track.Event)) *Session {
	s := &Session{
		api:      api,
		ticket:   ticket,
		language: DefaultLanguage,
	}
	s.tracker = track.NewController(api, notify, opts.Track)
	s.refresher = board.NewRefresher(api, opts.Board)

	contest, err := api.GetContest(ctx, ticket.ContestID)
	if err != nil {
		logger.Warn(ctx, "contest fetch failed",
			zap.Int64("contest_id", ticket.ContestID), zap.Error(err))
	} else {
		s.mu.Lock()
		s.contest = contest
		// The original view preselects the first problem on load.
		if len(contest.Problems) > 0 {
			s.selected = &contest.Problems[0]
		}
		s.mu.Unlock()
	}

	s.refresher.Start(ticket.ContestID)
	return s
}

// Loaded reports whether the contest fetch succeeded.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contest != nil
}

// Contest returns the loaded contest, or nil while loading.
func (s *Session) Contest() *model.Contest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contest
}

// UserName returns the joined user name.
func (s *Session) UserName() string {
	return s.ticket.UserName
}

// SelectProblem switches the active problem.
func (s *Session) SelectProblem(problemID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.contest == nil {
		return appErr.New(appErr.ContestFetchFailed).WithMessage("contest is still loading")
	}
	problem := s.contest.ProblemByID(problemID)
	if problem == nil {
		return appErr.Newf(appErr.NotFound, "no problem %d in this contest", problemID)
	}
	s.selected = problem
	return nil
}

// Selected returns the active problem, or nil.
func (s *Session) Selected() *model.Problem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// SetLanguage switches the editor language and resets the draft to that
// language's template, discarding unsaved edits. The reset also happens
// for unknown languages (empty template); language is a top-level
// control, so the replacement is the expected behavior, not data loss.
func (s *Session) SetLanguage(language string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = language
	s.code = template.TemplateFor(language)
}

// Language returns the selected language.
func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// SetCode replaces the editor draft.
func (s *Session) SetCode(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.code = code
}

// Code returns the editor draft.
func (s *Session) Code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

// Submit sends the current draft for judging and starts tracking.
// Validation failures come back synchronously; lifecycle events arrive
// through the notify callback passed to Open.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return appErr.New(appErr.SessionClosed)
	}
	draft := model.SubmissionDraft{
		ContestID: s.ticket.ContestID,
		UserName:  s.ticket.UserName,
		Language:  s.language,
		Code:      s.code,
	}
	if s.selected != nil {
		draft.ProblemID = s.selected.ID
	}
	s.mu.Unlock()

	return s.tracker.Submit(ctx, draft)
}

// TrackingState returns the lifecycle state of the current attempt.
func (s *Session) TrackingState() track.State {
	return s.tracker.State()
}

// TrackingDone returns a channel closed once the current attempt's
// polling has stopped.
func (s *Session) TrackingDone() <-chan struct{} {
	return s.tracker.Done()
}

// Leaderboard returns the current standings snapshot.
func (s *Session) Leaderboard() []model.LeaderboardEntry {
	return s.refresher.Snapshot()
}

// Close tears the session down: the submission tracker and the
// leaderboard refresher are both canceled so no schedule outlives the
// view. Idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.tracker.Cancel()
	s.refresher.Stop()
}
