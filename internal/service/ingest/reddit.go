// Package ingest fetches comments from upstream, classifies them and
// persists the results. It is the collaborator layer around the
// classification core: all network and storage I/O lives here.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultUserAgent = "ipolls-app/1.0"

// RedditClient handles interactions with the Reddit JSON API.
type RedditClient struct {
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string
}

// RedditPost represents a submission returned by a subreddit search.
type RedditPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	SelfText    string  `json:"selftext"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	Created     float64 `json:"created_utc"`
	Permalink   string  `json:"permalink"`
	Subreddit   string  `json:"subreddit"`
}

// RedditComment is one comment in a submission's tree.
type RedditComment struct {
	ID      string  `json:"id"`
	Author  string  `json:"author"`
	Body    string  `json:"body"`
	Score   int     `json:"score"`
	Created float64 `json:"created_utc"`

	// Replies is either a nested listing or an empty string, so it has
	// to be decoded lazily.
	Replies json.RawMessage `json:"replies"`
}

// redditListing is the generic kind/data envelope Reddit wraps
// everything in.
type redditListing struct {
	Kind string `json:"kind"`
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Kind string          `json:"kind"`
			Data json.RawMessage `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// NewRedditClient creates a new Reddit API client.
func NewRedditClient(timeout time.Duration) *RedditClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RedditClient{
		HTTPClient: &http.Client{Timeout: timeout},
		BaseURL:    "https://www.reddit.com",
		UserAgent:  defaultUserAgent,
	}
}

// SearchPosts fetches the newest submissions in a subreddit carrying the
// given flair.
func (c *RedditClient) SearchPosts(ctx context.Context, subreddit, flair string, limit int) ([]RedditPost, error) {
	if limit <= 0 {
		limit = 25
	}

	query := url.Values{}
	query.Set("q", fmt.Sprintf("flair:%q", flair))
	query.Set("restrict_sr", "1")
	query.Set("sort", "new")
	query.Set("limit", fmt.Sprintf("%d", limit))

	reqURL := fmt.Sprintf("%s/r/%s/search.json?%s", c.BaseURL, subreddit, query.Encode())

	listing, err := c.getListing(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var posts []RedditPost
	for _, child := range listing.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		var post RedditPost
		if err := json.Unmarshal(child.Data, &post); err != nil {
			return nil, fmt.Errorf("failed to decode post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// FetchComments fetches the full comment tree of a submission,
// flattened depth-first.
func (c *RedditClient) FetchComments(ctx context.Context, subreddit, postID string) ([]RedditComment, error) {
	reqURL := fmt.Sprintf("%s/r/%s/comments/%s.json?limit=500", c.BaseURL, subreddit, postID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Reddit API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Reddit API returned status code %d", resp.StatusCode)
	}

	// The comments endpoint returns two listings: the submission
	// itself, then the comment tree.
	var listings []redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		return nil, fmt.Errorf("failed to decode Reddit API response: %w", err)
	}
	if len(listings) < 2 {
		return nil, nil
	}

	var comments []RedditComment
	collectComments(listings[1], &comments)
	return comments, nil
}

// collectComments walks a comment listing depth-first, descending into
// each comment's replies. "more" stubs are skipped.
func collectComments(listing redditListing, out *[]RedditComment) {
	for _, child := range listing.Data.Children {
		if child.Kind != "t1" {
			continue
		}
		var rc RedditComment
		if err := json.Unmarshal(child.Data, &rc); err != nil {
			continue
		}
		replies := rc.Replies
		rc.Replies = nil
		*out = append(*out, rc)

		if len(replies) > 0 && replies[0] == '{' {
			var nested redditListing
			if err := json.Unmarshal(replies, &nested); err == nil {
				collectComments(nested, out)
			}
		}
	}
}

func (c *RedditClient) getListing(ctx context.Context, reqURL string) (*redditListing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Reddit API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Reddit API returned status code %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("failed to decode Reddit API response: %w", err)
	}
	return &listing, nil
}

// formatCreated renders a Reddit epoch timestamp in the interchange
// layout the date parser prioritizes.
func formatCreated(created float64) string {
	return time.Unix(int64(created), 0).UTC().Format("2006-01-02 15:04:05")
}
