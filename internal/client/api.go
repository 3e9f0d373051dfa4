package client

import (
	"context"
	"fmt"
	"net/http"

	"shodhacli/internal/contest/model"
	appErr "shodhacli/pkg/errors"

	"github.com/google/uuid"
)

// GetContest fetches one contest including its problems.
func (c *Client) GetContest(ctx context.Context, contestID int64) (*model.Contest, error) {
	var contest model.Contest
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/contests/%d", contestID), nil, nil, &contest); err != nil {
		return nil, err
	}
	return &contest, nil
}

// PostSubmission creates a submission and returns its identifier.
// Each call carries a fresh idempotency key so a retried request cannot
// create a duplicate submission on the server.
func (c *Client) PostSubmission(ctx context.Context, draft model.SubmissionDraft) (string, error) {
	headers := map[string]string{
		"X-Idempotency-Key": uuid.NewString(),
	}
	var created struct {
		SubmissionID string `json:"submissionId"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/submissions", headers, draft, &created); err != nil {
		return "", err
	}
	if created.SubmissionID == "" {
		return "", appErr.New(appErr.BadResponse).WithMessage("server returned no submission id")
	}
	return created.SubmissionID, nil
}

// GetSubmission queries the judged state of one submission.
func (c *Client) GetSubmission(ctx context.Context, submissionID string) (model.SubmissionState, error) {
	var state model.SubmissionState
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/submissions/%s", submissionID), nil, nil, &state); err != nil {
		return model.SubmissionState{}, err
	}
	if state.ID == "" {
		state.ID = submissionID
	}
	return state, nil
}

// GetLeaderboard fetches the full ranked standings for a contest.
// Ordering is owned by the server and preserved as received.
func (c *Client) GetLeaderboard(ctx context.Context, contestID int64) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/contests/%d/leaderboard", contestID), nil, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
