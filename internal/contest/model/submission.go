package model

// SubmissionStatus is the judge-assigned status of a submission.
type SubmissionStatus string

const (
	// Non-terminal statuses
	StatusPending SubmissionStatus = "PENDING"
	StatusRunning SubmissionStatus = "RUNNING"

	// Terminal statuses
	StatusAccepted          SubmissionStatus = "ACCEPTED"
	StatusWrongAnswer       SubmissionStatus = "WRONG_ANSWER"
	StatusTimeLimitExceeded SubmissionStatus = "TIME_LIMIT_EXCEEDED"
	StatusCompilationError  SubmissionStatus = "COMPILATION_ERROR"
	StatusRuntimeError      SubmissionStatus = "RUNTIME_ERROR"
)

// IsTerminal reports whether no further evaluation occurs for the status.
// Statuses this client does not know are treated as terminal: the judge
// may grow new failure kinds, and polling past an unknown verdict would
// never stop.
func (s SubmissionStatus) IsTerminal() bool {
	switch s {
	case StatusPending, StatusRunning:
		return false
	}
	return true
}

// SubmissionDraft is a pre-submit submission without an identifier.
type SubmissionDraft struct {
	ContestID int64  `json:"contestId"`
	ProblemID int64  `json:"problemId"`
	UserName  string `json:"userName"`
	Language  string `json:"language"`
	Code      string `json:"code"`
}

// SubmissionState is the judged state returned by a status query.
// Result carries optional judge output (failing test, compiler log).
type SubmissionState struct {
	ID     string           `json:"submissionId"`
	Status SubmissionStatus `json:"status"`
	Result string           `json:"result,omitempty"`
}
