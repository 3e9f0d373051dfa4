// Package board keeps a contest's leaderboard snapshot fresh on a fixed
// cadence for as long as the contest view is displayed.
package board

import (
	"context"
	"sync"
	"time"

	"shodhacli/internal/contest/model"
	"shodhacli/internal/contest/poll"
	"shodhacli/pkg/utils/logger"

	"go.uber.org/zap"
)

const (
	// DefaultInterval is the refresh cadence.
	DefaultInterval = 20 * time.Second
	// DefaultFetchTimeout bounds one leaderboard fetch.
	DefaultFetchTimeout = 5 * time.Second
)

// BoardAPI is the collaborator surface the refresher needs.
type BoardAPI interface {
	GetLeaderboard(ctx context.Context, contestID int64) ([]model.LeaderboardEntry, error)
}

// Options tune the refresher; zero values select the defaults above.
type Options struct {
	Interval     time.Duration
	FetchTimeout time.Duration
	// OnUpdate, if set, is called with each fresh snapshot.
	OnUpdate func([]model.LeaderboardEntry)
}

// Refresher periodically replaces its leaderboard snapshot wholesale.
// Fetch failures are logged and tolerated; refresh continues until Stop.
type Refresher struct {
	api  BoardAPI
	opts Options

	mu       sync.RWMutex
	snapshot []model.LeaderboardEntry
	handle   *poll.Handle
}

// NewRefresher creates a refresher over the given API.
func NewRefresher(api BoardAPI, opts Options) *Refresher {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	return &Refresher{api: api, opts: opts}
}

// Start fetches once immediately, then keeps refreshing every interval
// until Stop. Calling Start while running restarts the schedule.
func (r *Refresher) Start(contestID int64) {
	r.Stop()
	r.fetch(contestID)

	handle := poll.Start(func() poll.Control {
		r.fetch(contestID)
		return poll.Continue
	}, r.opts.Interval, 0, nil)

	r.mu.Lock()
	r.handle = handle
	r.mu.Unlock()
}

// Stop halts refreshing. Idempotent; must be called when the contest
// view goes away so no orphaned schedule keeps fetching.
func (r *Refresher) Stop() {
	r.mu.Lock()
	handle := r.handle
	r.handle = nil
	r.mu.Unlock()
	if handle != nil {
		handle.Cancel()
	}
}

// Snapshot returns the most recently fetched standings.
func (r *Refresher) Snapshot() []model.LeaderboardEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// fetch replaces the held snapshot with a fresh one. Stale data is
// never merged: the previous snapshot is discarded in full.
func (r *Refresher) fetch(contestID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), r.opts.FetchTimeout)
	defer cancel()

	entries, err := r.api.GetLeaderboard(ctx, contestID)
	if err != nil {
		logger.Warn(ctx, "leaderboard fetch failed",
			zap.Int64("contest_id", contestID), zap.Error(err))
		return
	}

	r.mu.Lock()
	r.snapshot = entries
	r.mu.Unlock()

	if r.opts.OnUpdate != nil {
		r.opts.OnUpdate(entries)
	}
}
