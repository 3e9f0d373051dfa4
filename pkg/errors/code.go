package errors

// ErrorCode represents a unique error identifier
type ErrorCode int

// Error code ranges allocation:
// 10000-10999: System & Common errors
// 11000-11999: Contest & Session errors
// 12000-12999: Submission tracking errors
// 13000-13999: Leaderboard errors

const (
	// ========== System & Common Errors (10000-10999) ==========

	// Success
	Success ErrorCode = 10000

	// Generic errors (10000-10099)
	InternalError ErrorCode = 10001
	InvalidParams ErrorCode = 10002
	NotFound      ErrorCode = 10003
	Timeout       ErrorCode = 10004

	// Transport errors (10100-10199)
	RequestFailed ErrorCode = 10100
	BadResponse   ErrorCode = 10101
	APIError      ErrorCode = 10102

	// Validation errors (10300-10399)
	ValidationFailed   ErrorCode = 10300
	RequiredFieldEmpty ErrorCode = 10301

	// ========== Contest & Session Errors (11000-11999) ==========

	ContestNotFound    ErrorCode = 11000
	ContestFetchFailed ErrorCode = 11001
	ProblemNotSelected ErrorCode = 11100
	SessionClosed      ErrorCode = 11200

	// ========== Submission Tracking Errors (12000-12999) ==========

	SubmitFailed     ErrorCode = 12000
	EmptyCode        ErrorCode = 12001
	PollFailed       ErrorCode = 12100
	TrackingTimeout  ErrorCode = 12101
	TrackingCanceled ErrorCode = 12102

	// ========== Leaderboard Errors (13000-13999) ==========

	LeaderboardFetchFailed ErrorCode = 13000
)

// errorMessages maps error codes to their default English messages
var errorMessages = map[ErrorCode]string{
	// System & Common
	Success:       "Success",
	InternalError: "Internal error",
	InvalidParams: "Invalid parameters",
	NotFound:      "Resource not found",
	Timeout:       "Request timeout",

	// Transport
	RequestFailed: "Request could not be made",
	BadResponse:   "Response could not be interpreted",
	APIError:      "Server returned an error status",

	// Validation
	ValidationFailed:   "Validation failed",
	RequiredFieldEmpty: "Required field is empty",

	// Contest & Session
	ContestNotFound:    "Contest not found",
	ContestFetchFailed: "Failed to fetch contest",
	ProblemNotSelected: "No problem selected",
	SessionClosed:      "Session is closed",

	// Submission tracking
	SubmitFailed:     "Submission failed",
	EmptyCode:        "Code must not be empty",
	PollFailed:       "Error checking submission status",
	TrackingTimeout:  "Gave up waiting for a verdict",
	TrackingCanceled: "Submission tracking canceled",

	// Leaderboard
	LeaderboardFetchFailed: "Failed to fetch leaderboard",
}

// Message returns the default message for the error code
func (c ErrorCode) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return "Unknown error"
}
