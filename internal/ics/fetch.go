package ics

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	appLog "icaldump/internal/log"
)

// Client fetches iCalendar feeds with ETag / Last-Modified conditional
// requests and a disk-backed body cache, so unchanged feeds are not
// re-downloaded and transient network failures fall back to the last
// known body.
type Client struct {
	httpc    *http.Client
	cacheDir string
}

type cacheMeta struct {
	URL          string    `json:"url"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewClient creates a feed client caching under cacheDir.
func NewClient(cacheDir string) *Client {
	if cacheDir == "" {
		cacheDir = "./var/ics-cache"
	}
	return &Client{
		httpc:    &http.Client{Timeout: 15 * time.Second},
		cacheDir: cacheDir,
	}
}

// Get returns the feed body for feedURL, from the network when it changed
// and from the disk cache when the server answers 304 or is unreachable.
func (c *Client) Get(ctx context.Context, feedURL string) ([]byte, error) {
	if feedURL == "" {
		return nil, errors.New("feed URL is empty")
	}

	dir := c.cachePath(feedURL)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	meta := c.loadMeta(dir)
	cached, _ := os.ReadFile(filepath.Join(dir, "body.ics"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	if meta.ETag != "" {
		req.Header.Set("If-None-Match", meta.ETag)
	}
	if meta.LastModified != "" {
		req.Header.Set("If-Modified-Since", meta.LastModified)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		if len(cached) > 0 {
			appLog.Error("feed fetch failed, using cached body", err, "url", redactURL(feedURL))
			return cached, nil
		}
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, rerr := io.ReadAll(resp.Body)
		if rerr != nil {
			return nil, rerr
		}
		c.saveCache(dir, cacheMeta{
			URL:          feedURL,
			ETag:         resp.Header.Get("ETag"),
			LastModified: resp.Header.Get("Last-Modified"),
			UpdatedAt:    time.Now().UTC(),
		}, body)
		appLog.Debug("feed fetched", "url", redactURL(feedURL), "bytes", len(body))
		return body, nil

	case http.StatusNotModified:
		if len(cached) == 0 {
			return nil, errors.New("feed returned 304 but no cached body exists")
		}
		appLog.Debug("feed not modified, using cache", "url", redactURL(feedURL))
		return cached, nil

	default:
		if len(cached) > 0 {
			appLog.Error("feed returned non-OK status, using cached body",
				fmt.Errorf("status %s", resp.Status), "url", redactURL(feedURL))
			return cached, nil
		}
		return nil, fmt.Errorf("feed fetch: %s", resp.Status)
	}
}

func (c *Client) cachePath(feedURL string) string {
	sum := sha256.Sum256([]byte(feedURL))
	return filepath.Join(c.cacheDir, hex.EncodeToString(sum[:8]))
}

func (c *Client) loadMeta(dir string) cacheMeta {
	var meta cacheMeta
	data, err := os.ReadFile(filepath.Join(dir, "meta.json"))
	if err != nil {
		return meta
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return cacheMeta{}
	}
	return meta
}

func (c *Client) saveCache(dir string, meta cacheMeta, body []byte) {
	if err := os.WriteFile(filepath.Join(dir, "body.ics"), body, 0o600); err != nil {
		appLog.Error("feed cache body write failed", err, "dir", dir)
		return
	}
	data, err := json.Marshal(&meta)
	if err != nil {
		return
	}
	if err := os.WriteFile(filepath.Join(dir, "meta.json"), data, 0o600); err != nil {
		appLog.Error("feed cache meta write failed", err, "dir", dir)
	}
}

// redactURL keeps only the scheme and host of a feed URL for logging.
// Private feed URLs commonly carry secrets in the path or query.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "(redacted)"
	}
	return u.Scheme + "://" + u.Host + "/..."
}
