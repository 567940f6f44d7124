package ytcomments

import (
	"context"

	"ytcomments/collect"
	"ytcomments/youtube"
)

// CollectChannel fetches every video published by the channel and every
// top-level comment on those videos, returning the joined, sorted result.
// It uses the reference sequential flow (one video at a time); build a
// collect.Collector directly to fetch comments concurrently.
func CollectChannel(ctx context.Context, apiKey, channelID string) (*collect.Result, error) {
	client, err := youtube.NewClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return collect.New(client, client, 1).Run(ctx, channelID)
}
