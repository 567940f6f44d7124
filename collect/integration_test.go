package collect_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	ytapi "google.golang.org/api/youtube/v3"

	"ytcomments/collect"
	"ytcomments/export"
	"ytcomments/youtube"
)

const testChannel = "UCuAXFkgsw1L7xaCfnd5JJOw"

// fakeAPI serves a channel with two videos and two comments per video,
// every listing split across two pages.
func fakeAPI(t *testing.T) http.Handler {
	t.Helper()

	searchPages := map[string]*ytapi.SearchListResponse{
		"": {
			Items: []*ytapi.SearchResult{{
				Id: &ytapi.ResourceId{VideoId: "vid-late"},
				Snippet: &ytapi.SearchResultSnippet{
					PublishedAt: "2023-02-01T00:00:00Z", Title: "Later video", Description: "d2",
				},
			}},
			NextPageToken: "s2",
		},
		"s2": {
			Items: []*ytapi.SearchResult{{
				Id: &ytapi.ResourceId{VideoId: "vid-early"},
				Snippet: &ytapi.SearchResultSnippet{
					PublishedAt: "2023-01-01T00:00:00Z", Title: "Earlier video", Description: "d1",
				},
			}},
		},
	}

	comment := func(published, author, text string, likes int64) *ytapi.CommentThread {
		return &ytapi.CommentThread{
			Snippet: &ytapi.CommentThreadSnippet{
				TopLevelComment: &ytapi.Comment{
					Snippet: &ytapi.CommentSnippet{
						PublishedAt:       published,
						UpdatedAt:         published,
						LikeCount:         likes,
						AuthorDisplayName: author,
						TextDisplay:       text,
					},
				},
			},
		}
	}

	commentPages := map[string]map[string]*ytapi.CommentThreadListResponse{
		"vid-late": {
			"": {
				Items:         []*ytapi.CommentThread{comment("2023-02-03T00:00:00Z", "carol", "late second", 1)},
				NextPageToken: "c2",
			},
			"c2": {
				Items: []*ytapi.CommentThread{comment("2023-02-02T00:00:00Z", "dave", "late first", 2)},
			},
		},
		"vid-early": {
			"": {
				Items:         []*ytapi.CommentThread{comment("2023-01-03T00:00:00Z", "alice", "early second", 3)},
				NextPageToken: "c2",
			},
			"c2": {
				Items: []*ytapi.CommentThread{comment("2023-01-02T00:00:00Z", "bob", "early first", 4)},
			},
		},
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		q := r.URL.Query()
		switch r.URL.Path {
		case "/youtube/v3/search":
			resp, ok := searchPages[q.Get("pageToken")]
			if !ok {
				t.Errorf("unexpected search pageToken %q", q.Get("pageToken"))
				http.NotFound(w, r)
				return
			}
			json.NewEncoder(w).Encode(resp)
		case "/youtube/v3/commentThreads":
			pages, ok := commentPages[q.Get("videoId")]
			if !ok {
				t.Errorf("unexpected videoId %q", q.Get("videoId"))
				http.NotFound(w, r)
				return
			}
			resp, ok := pages[q.Get("pageToken")]
			if !ok {
				t.Errorf("unexpected comment pageToken %q", q.Get("pageToken"))
				http.NotFound(w, r)
				return
			}
			json.NewEncoder(w).Encode(resp)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	})
}

func TestPipelineEndToEnd(t *testing.T) {
	srv := httptest.NewServer(fakeAPI(t))
	t.Cleanup(srv.Close)

	client, err := youtube.NewClient(context.Background(), "",
		youtube.WithBaseURL(srv.URL+"/"),
		youtube.WithHTTPClient(srv.Client()),
		youtube.WithRequestsPerSecond(10000))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	result, err := collect.New(client, client, 1).Run(context.Background(), testChannel)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(result.Videos) != 2 {
		t.Fatalf("got %d videos, want 2", len(result.Videos))
	}
	if len(result.Comments) != 4 {
		t.Fatalf("got %d comments, want 4", len(result.Comments))
	}

	dir := t.TempDir()
	paths, err := (&export.Exporter{Dir: dir}).WriteAll(result)
	if err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("got %d paths, want 3", len(paths))
	}

	readTable := func(path string) [][]string {
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("open %s: %v", path, err)
		}
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		if err != nil {
			t.Fatalf("parse %s: %v", path, err)
		}
		return rows
	}

	// Video table: 2 rows sorted ascending by publish time.
	videoRows := readTable(filepath.Join(dir, testChannel+"-videolist.csv"))
	if len(videoRows) != 3 {
		t.Fatalf("video table has %d rows, want header + 2", len(videoRows))
	}
	if videoRows[1][1] != "vid-early" || videoRows[2][1] != "vid-late" {
		t.Errorf("video order = %q, %q; want vid-early, vid-late", videoRows[1][1], videoRows[2][1])
	}

	// Comment table: 4 rows, earlier video's comments first, each video's
	// comments in ascending publish time.
	commentRows := readTable(filepath.Join(dir, testChannel+"-youtube_comments.csv"))
	if len(commentRows) != 5 {
		t.Fatalf("comment table has %d rows, want header + 4", len(commentRows))
	}
	wantTexts := []string{"early first", "early second", "late first", "late second"}
	for i, want := range wantTexts {
		if got := commentRows[i+1][7]; got != want {
			t.Errorf("comment row %d text = %q, want %q", i, got, want)
		}
	}

	// Text table mirrors the comment table order.
	textRows := readTable(filepath.Join(dir, testChannel+"_youtube_comment_texts.csv"))
	if len(textRows) != 5 {
		t.Fatalf("text table has %d rows, want header + 4", len(textRows))
	}
	for i, want := range wantTexts {
		if got := textRows[i+1][0]; got != want {
			t.Errorf("text row %d = %q, want %q", i, got, want)
		}
	}
}
