package ytcomments

import (
	"ytcomments/youtube"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, ytcomments.ErrChannelNotFound) {
//		fmt.Println("channel not found")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var listerErr *ytcomments.ListerError
//	if errors.As(err, &listerErr) {
//		fmt.Printf("listing %s failed: %v\n", listerErr.Target, listerErr.Err)
//	}

// ListerError wraps errors from video or comment listing.
type ListerError = youtube.ListerError

// Sentinel errors exported from sub-packages.
var (
	// ErrChannelNotFound indicates the channel does not exist.
	ErrChannelNotFound = youtube.ErrChannelNotFound
	// ErrCommentsDisabled indicates a video has comments disabled. The run
	// still aborts; the sentinel only names the condition.
	ErrCommentsDisabled = youtube.ErrCommentsDisabled
	// ErrQuotaExceeded indicates the API quota was exhausted.
	ErrQuotaExceeded = youtube.ErrQuotaExceeded
	// ErrMalformedResponse indicates an API response was missing fields the
	// record projection requires.
	ErrMalformedResponse = youtube.ErrMalformedResponse
)
