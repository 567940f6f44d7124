// Package youtube provides channel video listing and comment thread
// retrieval via the YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
	"regexp"
)

// Sentinel errors for listing operations. All of them are fatal for a
// collection run; they exist so diagnostics name the condition and so
// library callers can check with errors.Is().
var (
	ErrChannelNotFound   = errors.New("youtube: channel not found")
	ErrCommentsDisabled  = errors.New("youtube: comments disabled for video")
	ErrQuotaExceeded     = errors.New("youtube: api quota exceeded")
	ErrMalformedResponse = errors.New("youtube: malformed api response")
)

// channelIDRegex matches YouTube channel IDs (UC followed by 22 base64 chars).
var channelIDRegex = regexp.MustCompile(`^UC[a-zA-Z0-9_-]{22}$`)

// ValidChannelID reports whether s is a well-formed YouTube channel ID.
func ValidChannelID(s string) bool {
	return channelIDRegex.MatchString(s)
}

// VideoLister fetches the full video listing of a channel.
type VideoLister interface {
	// ListChannelVideos fetches every video published by the channel,
	// in the order the backing endpoint returns them.
	ListChannelVideos(ctx context.Context, channelID string) ([]Video, error)
}

// CommentLister fetches the top-level comment threads of a single video.
type CommentLister interface {
	// ListCommentThreads fetches every top-level comment thread for the
	// video, in the order the backing endpoint returns them.
	ListCommentThreads(ctx context.Context, videoID string) ([]CommentThread, error)
}

// Video contains the metadata retained for each channel video.
//
// PublishedAt is kept as the RFC 3339 string the API returns: the format's
// fixed-width, zero-padded layout means lexical order is chronological
// order, which is what the downstream sort relies on.
type Video struct {
	// ID is the YouTube video ID (e.g., "dQw4w9WgXcQ").
	ID string `json:"videoId"`
	// PublishedAt is when the video was published, RFC 3339.
	PublishedAt string `json:"publishTime"`
	// Title is the video title.
	Title string `json:"title"`
	// Description is the video description.
	Description string `json:"description"`
}

// URL returns the full YouTube watch URL for this video.
func (v Video) URL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

// CommentThread is one top-level comment on a video. Nested replies are
// not retrieved.
type CommentThread struct {
	// VideoID is the video the comment was posted on.
	VideoID string `json:"videoId"`
	// PublishedAt is when the comment was posted, RFC 3339.
	PublishedAt string `json:"publishedAt"`
	// UpdatedAt is when the comment was last edited, RFC 3339.
	UpdatedAt string `json:"updatedAt"`
	// LikeCount is the comment's like count as reported by the API.
	LikeCount int64 `json:"likeCount"`
	// AuthorDisplayName is the comment author's display name.
	AuthorDisplayName string `json:"authorDisplayName"`
	// TextDisplay is the comment text in plain text (no HTML entities).
	TextDisplay string `json:"textDisplay"`
}

// ListerError wraps listing errors with context about what failed.
// Use errors.As() to extract it:
//
//	var listerErr *youtube.ListerError
//	if errors.As(err, &listerErr) {
//		fmt.Printf("listing %s failed: %v\n", listerErr.Target, listerErr.Err)
//	}
type ListerError struct {
	// Source indicates which endpoint produced the error ("search",
	// "commentThreads").
	Source string
	// Target is the channel or video ID that was being listed.
	Target string
	// Err is the underlying error.
	Err error
}

// Error returns a string representation of the listing error.
func (e *ListerError) Error() string {
	return "youtube: " + e.Source + " listing " + e.Target + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *ListerError) Unwrap() error { return e.Err }
