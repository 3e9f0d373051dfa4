package model

// Contest represents one contest with its ordered problem set.
// Immutable once fetched for the duration of a session.
type Contest struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Problems []Problem `json:"problems"`
}

// Problem represents one contest problem.
type Problem struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Statement string `json:"statement"`
}

// ProblemByID returns the problem with the given id, or nil.
func (c *Contest) ProblemByID(id int64) *Problem {
	for i := range c.Problems {
		if c.Problems[i].ID == id {
			return &c.Problems[i]
		}
	}
	return nil
}

// LeaderboardEntry represents one row of a leaderboard snapshot.
// BestTimeMillis is nil when the user has no accepted submission.
type LeaderboardEntry struct {
	UserName       string `json:"userName"`
	AcceptedCount  int    `json:"acceptedCount"`
	BestTimeMillis *int64 `json:"bestTimeMillis,omitempty"`
}
