// Package export writes collection results as CSV tables.
package export

import (
	"encoding/csv"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strconv"

	"ytcomments/collect"
	"ytcomments/youtube"
)

// Column headers for the three output tables.
var (
	videoHeader = []string{"url", "videoId", "publishTime", "title", "description"}
	commentHeader = []string{
		"videoId", "videoPublishTime", "videoTitle",
		"commentPublishedAt", "commentUpdatedAt",
		"likeCount", "authorDisplayName", "textDisplay",
	}
	textHeader = []string{"textDisplay"}
)

// Exporter writes the CSV tables of a collection run into a directory.
type Exporter struct {
	// Dir is the directory output files are written into. Empty means the
	// current working directory.
	Dir string
}

// WriteAll writes the three tables for the result and returns the paths
// written, in write order:
//
//	<channelID>-videolist.csv            one row per video
//	<channelID>-youtube_comments.csv     one row per comment
//	<channelID>_youtube_comment_texts.csv comment text only
//
// Each write is independent and sequential: a failure aborts at the point it
// occurs and earlier files remain on disk. The paths returned alongside an
// error are the files that were written successfully before it.
func (e *Exporter) WriteAll(res *collect.Result) ([]string, error) {
	videoPath := filepath.Join(e.Dir, res.ChannelID+"-videolist.csv")
	commentPath := filepath.Join(e.Dir, res.ChannelID+"-youtube_comments.csv")
	textPath := filepath.Join(e.Dir, res.ChannelID+"_youtube_comment_texts.csv")

	if err := e.WriteVideoTable(videoPath, res.Videos); err != nil {
		return nil, err
	}
	log.Printf("export: wrote %d videos to %s", len(res.Videos), videoPath)

	if err := e.WriteCommentTable(commentPath, res.Comments); err != nil {
		return []string{videoPath}, err
	}
	log.Printf("export: wrote %d comments to %s", len(res.Comments), commentPath)

	if err := e.WriteCommentTextTable(textPath, res.Comments); err != nil {
		return []string{videoPath, commentPath}, err
	}
	log.Printf("export: wrote %d comment texts to %s", len(res.Comments), textPath)

	return []string{videoPath, commentPath, textPath}, nil
}

// WriteVideoTable writes one row per video, sorted ascending by publish
// time. The input slice is not modified.
func (e *Exporter) WriteVideoTable(path string, videos []youtube.Video) error {
	sorted := make([]youtube.Video, len(videos))
	copy(sorted, videos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt < sorted[j].PublishedAt
	})

	rows := make([][]string, 0, len(sorted))
	for _, v := range sorted {
		rows = append(rows, []string{v.URL(), v.ID, v.PublishedAt, v.Title, v.Description})
	}
	return writeCSV(path, videoHeader, rows)
}

// WriteCommentTable writes one row per comment, in the order given (the
// collector has already sorted them).
func (e *Exporter) WriteCommentTable(path string, comments []collect.Record) error {
	rows := make([][]string, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, []string{
			c.VideoID, c.VideoPublishedAt, c.VideoTitle,
			c.PublishedAt, c.UpdatedAt,
			strconv.FormatInt(c.LikeCount, 10),
			c.AuthorDisplayName, c.TextDisplay,
		})
	}
	return writeCSV(path, commentHeader, rows)
}

// WriteCommentTextTable writes only the comment text, one row per comment,
// in the same order as the comment table.
func (e *Exporter) WriteCommentTextTable(path string, comments []collect.Record) error {
	rows := make([][]string, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, []string{c.TextDisplay})
	}
	return writeCSV(path, textHeader, rows)
}

// writeCSV writes a header row plus data rows to path atomically.
func writeCSV(path string, header []string, rows [][]string) error {
	w, err := newAtomicWriter(path)
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		w.Abort()
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := cw.WriteAll(rows); err != nil {
		w.Abort()
		return fmt.Errorf("export %s: %w", path, err)
	}

	if err := w.Commit(); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}
