package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"ytcomments/collect"
	"ytcomments/config"
	"ytcomments/export"
	"ytcomments/youtube"
)

func main() {
	fs := flag.NewFlagSet("ytcomments", flag.ExitOnError)
	keyFile := fs.String("key-file", "", "Path to the API key file (overrides config)")
	outDir := fs.String("out", "", "Directory to write CSV tables into (overrides config)")
	workers := fs.Int("workers", 0, "Concurrent comment fetches (overrides config; 1 = sequential)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `ytcomments - export a YouTube channel's videos and comments to CSV

Usage:
  ytcomments [flags] <channel-id>

The channel ID is the "UC..." identifier of the channel. Three CSV files are
written: the video list, the comment table, and the comment texts, all named
after the channel ID.

Flags:
`)
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	argv := fs.Args()
	if len(argv) != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one channel ID\n")
		fs.Usage()
		os.Exit(1)
	}
	channelID := argv[0]
	if !youtube.ValidChannelID(channelID) {
		fmt.Fprintf(os.Stderr, "Error: %q does not look like a channel ID (expected UC followed by 22 characters)\n", channelID)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("loading config: %v", err)
	}
	if *keyFile != "" {
		cfg.APIKeyFile = *keyFile
		cfg.APIKey = ""
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	apiKey, err := cfg.ReadAPIKey()
	if err != nil {
		fatal("%v", err)
	}

	ctx := context.Background()

	client, err := youtube.NewClient(ctx, apiKey,
		youtube.WithRequestsPerSecond(cfg.RequestsPerSecond))
	if err != nil {
		fatal("%v", err)
	}

	collector := collect.New(client, client, cfg.Workers)
	result, err := collector.Run(ctx, channelID)
	if err != nil {
		fatal("%v", err)
	}

	exporter := &export.Exporter{Dir: cfg.OutputDir}
	paths, err := exporter.WriteAll(result)
	if err != nil {
		fatal("%v", err)
	}

	fmt.Printf("Collected %d videos and %d comments from %s\n",
		len(result.Videos), len(result.Comments), channelID)
	for _, p := range paths {
		fmt.Printf("Wrote %s\n", p)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
