// Package ytcomments collects a YouTube channel's videos and top-level
// comments and exports them as CSV tables.
//
// It is a one-shot pipeline, not a service: list every video the channel
// published, fetch the top-level comment threads for each video, join the
// comments with their video's metadata, sort, and write three tables.
//
// Overview
//
// The high-level convenience function runs the whole collection:
//
//	ctx := context.Background()
//	result, err := ytcomments.CollectChannel(ctx, apiKey, "UCuAXFkgsw1L7xaCfnd5JJOw")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%d videos, %d comments\n", len(result.Videos), len(result.Comments))
//
// Writing the CSV tables:
//
//	exporter := &export.Exporter{Dir: "."}
//	paths, err := exporter.WriteAll(result)
//
// Configuration
//
// The CLI loads settings from multiple sources:
//
//   1. Environment variables (highest priority)
//   2. Config file (ytcomments.json or ~/.config/ytcomments/ytcomments.json)
//   3. Default values (lowest priority)
//
// Environment variables:
//
//   - YTCOMMENTS_API_KEY: YouTube Data API key (overrides the key file)
//   - YTCOMMENTS_API_KEY_FILE: Path to the API key file
//   - YTCOMMENTS_OUTPUT_DIR: Directory for the CSV tables
//   - YTCOMMENTS_WORKERS: Concurrent comment fetches (1 = sequential)
//   - YTCOMMENTS_REQUESTS_PER_SECOND: API request pacing
//
// Error Handling
//
// Every failure is fatal for the run: the first remote-call or write error
// aborts, nothing is retried, and no partial results are salvaged. Empty
// result sets are not errors; a channel with zero videos produces
// header-only tables.
//
// Checking for sentinel errors:
//
//	if errors.Is(err, ytcomments.ErrCommentsDisabled) {
//		fmt.Println("a video has comments disabled")
//	}
//
// Extracting wrapped error details:
//
//	var listerErr *ytcomments.ListerError
//	if errors.As(err, &listerErr) {
//		fmt.Printf("listing %s failed: %v\n", listerErr.Target, listerErr.Err)
//	}
//
// Advanced Usage
//
// For more control, use the sub-packages directly:
//
//   - youtube: Data API v3 client, video and comment thread listing
//   - collect: aggregation, the comment/video join, and sorting
//   - export: CSV table writing
//   - config: configuration management
//
package ytcomments
