package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	// videoPageSize is the fixed page size for channel video searches.
	videoPageSize = 50
	// commentPageSize is the fixed page size for comment thread listings.
	commentPageSize = 100
	// defaultRequestsPerSecond paces Data API calls when no rate is configured.
	defaultRequestsPerSecond = 8
)

// Client lists channel videos and per-video comment threads using the
// YouTube Data API v3. It implements VideoLister and CommentLister.
//
// The client paces its requests with a token bucket so a large channel does
// not hammer the API. Pacing is proactive only: the client never retries and
// never reacts to rate-limit errors, which remain fatal like every other
// remote failure.
type Client struct {
	service *youtube.Service
	limiter *rate.Limiter
}

// ClientOption customizes a Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	baseURL    string
	httpClient *http.Client
	rps        float64
}

// WithBaseURL overrides the Data API endpoint. Tests use this to point the
// client at a local server.
func WithBaseURL(u string) ClientOption {
	return func(o *clientOptions) { o.baseURL = u }
}

// WithHTTPClient supplies the HTTP client to issue requests with, bypassing
// API-key authentication. Tests use this together with WithBaseURL.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(o *clientOptions) { o.httpClient = hc }
}

// WithRequestsPerSecond sets the request pacing rate.
func WithRequestsPerSecond(rps float64) ClientOption {
	return func(o *clientOptions) { o.rps = rps }
}

// NewClient creates a Data API v3 client authenticated with the given API
// key. The key is sent as a query parameter on every request.
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	o := clientOptions{rps: defaultRequestsPerSecond}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rps <= 0 {
		o.rps = defaultRequestsPerSecond
	}

	var svcOpts []option.ClientOption
	if o.httpClient != nil {
		svcOpts = append(svcOpts, option.WithHTTPClient(o.httpClient))
	} else {
		if apiKey == "" {
			return nil, fmt.Errorf("youtube: api key required")
		}
		svcOpts = append(svcOpts, option.WithAPIKey(apiKey))
	}
	if o.baseURL != "" {
		svcOpts = append(svcOpts, option.WithEndpoint(o.baseURL))
	}

	service, err := youtube.NewService(ctx, svcOpts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &Client{
		service: service,
		limiter: rate.NewLimiter(rate.Limit(o.rps), 1),
	}, nil
}

// ListChannelVideos fetches every video published by the channel via the
// search endpoint, restricted to video-type results, following the page
// cursor until exhausted. Videos are returned in the order the API yields
// them; sorting happens at export, not at collection.
func (c *Client) ListChannelVideos(ctx context.Context, channelID string) ([]Video, error) {
	videos, err := collectPages(ctx, func(ctx context.Context, pageToken string) ([]Video, string, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, "", err
		}

		call := c.service.Search.List([]string{"id", "snippet"}).
			ChannelId(channelID).
			Type("video").
			MaxResults(videoPageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, "", classifyAPIError(err)
		}

		page := make([]Video, 0, len(resp.Items))
		for _, item := range resp.Items {
			v, err := videoFromSearchResult(item)
			if err != nil {
				return nil, "", err
			}
			page = append(page, v)
		}
		return page, resp.NextPageToken, nil
	})
	if err != nil {
		return nil, &ListerError{Source: "search", Target: channelID, Err: err}
	}
	return videos, nil
}

// ListCommentThreads fetches every top-level comment thread for the video,
// following the page cursor until exhausted. Comment text is requested in
// plain text so no HTML entities reach the output tables.
func (c *Client) ListCommentThreads(ctx context.Context, videoID string) ([]CommentThread, error) {
	threads, err := collectPages(ctx, func(ctx context.Context, pageToken string) ([]CommentThread, string, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, "", err
		}

		call := c.service.CommentThreads.List([]string{"snippet"}).
			VideoId(videoID).
			MaxResults(commentPageSize).
			TextFormat("plainText").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, "", classifyAPIError(err)
		}

		page := make([]CommentThread, 0, len(resp.Items))
		for _, item := range resp.Items {
			t, err := commentFromThread(videoID, item)
			if err != nil {
				return nil, "", err
			}
			page = append(page, t)
		}
		return page, resp.NextPageToken, nil
	})
	if err != nil {
		return nil, &ListerError{Source: "commentThreads", Target: videoID, Err: err}
	}
	return threads, nil
}

// videoFromSearchResult projects a raw search result into a Video. Items
// missing the id or snippet are rejected as malformed rather than propagated
// with empty fields.
func videoFromSearchResult(item *youtube.SearchResult) (Video, error) {
	if item == nil || item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
		return Video{}, fmt.Errorf("%w: search result missing id or snippet", ErrMalformedResponse)
	}
	return Video{
		ID:          item.Id.VideoId,
		PublishedAt: item.Snippet.PublishedAt,
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
	}, nil
}

// commentFromThread projects a raw comment thread into a CommentThread.
// The video ID is taken from the request, not the response, so attribution
// holds by construction.
func commentFromThread(videoID string, item *youtube.CommentThread) (CommentThread, error) {
	if item == nil || item.Snippet == nil ||
		item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
		return CommentThread{}, fmt.Errorf("%w: comment thread missing top-level comment", ErrMalformedResponse)
	}
	top := item.Snippet.TopLevelComment.Snippet
	return CommentThread{
		VideoID:           videoID,
		PublishedAt:       top.PublishedAt,
		UpdatedAt:         top.UpdatedAt,
		LikeCount:         top.LikeCount,
		AuthorDisplayName: top.AuthorDisplayName,
		TextDisplay:       top.TextDisplay,
	}, nil
}

// classifyAPIError maps googleapi error reasons onto package sentinels so
// diagnostics name the condition. Classification never triggers a retry;
// every remote failure stays fatal for the run.
func classifyAPIError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	for _, e := range apiErr.Errors {
		switch e.Reason {
		case "commentsDisabled":
			return fmt.Errorf("%w: %v", ErrCommentsDisabled, err)
		case "quotaExceeded", "rateLimitExceeded", "dailyLimitExceeded":
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		case "channelNotFound", "channelClosed", "channelSuspended":
			return fmt.Errorf("%w: %v", ErrChannelNotFound, err)
		}
	}
	return err
}
