package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultBaseURL     = "https://www.flashscore.com"
	DefaultFeedBaseURL = "https://2.flashscore.ninja/2/x/feed"
	DefaultListingFeed = "m_2_5724"
	UserAgent          = "tennis-results-cli/1.0 (github.com/tleroy/tennis-results)"
	Timeout            = 30 * time.Second

	// The feed endpoints reject requests without this header.
	feedAuthHeader = "x-fsign"
	feedAuthValue  = "SW9D1eZo"
)

const maxRetries = 3

// Options overrides the client defaults; zero values keep them.
type Options struct {
	BaseURL     string
	FeedBaseURL string
	Timeout     time.Duration
}

// Client fetches segments from the results site.
type Client struct {
	client      *http.Client
	baseURL     string
	feedBaseURL string
}

// New creates a Client with the given overrides.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.FeedBaseURL == "" {
		opts.FeedBaseURL = DefaultFeedBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = Timeout
	}
	return &Client{
		client:      &http.Client{Timeout: opts.Timeout},
		baseURL:     strings.TrimSuffix(opts.BaseURL, "/"),
		feedBaseURL: strings.TrimSuffix(opts.FeedBaseURL, "/"),
	}
}

// Text fetches a URL and returns the body, retrying transient
// failures with exponential backoff. 4xx responses are not retried.
func (c *Client) Text(ctx context.Context, url string) (string, error) {
	var body string
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", UserAgent)
		req.Header.Set(feedAuthHeader, feedAuthValue)

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		body = string(data)
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	return body, nil
}

// Document fetches a URL and parses its markup.
func (c *Client) Document(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := c.Text(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}
	return doc, nil
}

// ListingURL is the delimited feed carrying the tournament listing for
// one category feed id (e.g. "m_2_5724" for ATP singles).
func (c *Client) ListingURL(listingFeed string) string {
	if listingFeed == "" {
		listingFeed = DefaultListingFeed
	}
	return c.baseURL + "/x/req/" + listingFeed
}

// Resolve turns a site-relative href into an absolute URL.
func (c *Client) Resolve(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return c.baseURL + "/" + strings.TrimPrefix(href, "/")
}

// StatusFeedURL is a match's lifecycle feed.
func (c *Client) StatusFeedURL(matchID string) string {
	return c.feedBaseURL + "/dc_1_" + matchID
}

// ScoreFeedURL is a match's set-by-set score feed.
func (c *Client) ScoreFeedURL(matchID string) string {
	return c.feedBaseURL + "/df_sur_1_" + matchID
}

// OddsFeedURL is a match's odds panel feed.
func (c *Client) OddsFeedURL(matchID string) string {
	return c.feedBaseURL + "/df_od_1_" + matchID
}
