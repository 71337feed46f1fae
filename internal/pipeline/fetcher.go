package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/noisepop/internal/cache"
	"github.com/ppiankov/noisepop/internal/model"
	"github.com/ppiankov/noisepop/internal/util"
)

// ErrDisallowed is returned when robots.txt forbids fetching the dataset
var ErrDisallowed = errors.New("fetch disallowed by robots.txt")

// Fetcher retrieves the raw dataset over HTTP
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker // nil when robots.txt is not consulted
	limiter    *util.HostLimiter
	cache      cache.Cache // nil when caching is disabled
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// FetchResult is the dataset body and where it came from
type FetchResult struct {
	Body     []byte          `json:"body"`
	Meta     model.FetchMeta `json:"meta"`
	FinalURL string          `json:"final_url"`
}

// NewFetcher creates a Fetcher. c may be nil to disable caching.
func NewFetcher(cfg model.HTTPConfig, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy)

	client := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return fmt.Errorf("stopped after 3 redirects")
			}
			return nil
		},
	}

	f := &Fetcher{
		httpClient: client,
		userAgent:  cfg.UserAgent,
		maxBytes:   cfg.MaxBodyBytes,
		limiter:    util.NewHostLimiter(cfg.RequestsPerSecond, 1),
		cache:      c,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
	if f.maxBytes <= 0 {
		f.maxBytes = model.DefaultConfig().HTTP.MaxBodyBytes
	}
	if cfg.RespectRobots {
		f.robots = util.NewRobotsChecker(client, cfg.UserAgent)
	}
	return f
}

// Fetch retrieves the dataset at rawURL. An HTML landing page is followed
// once to its first CSV link.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	key := cache.Key(rawURL)
	if f.cache != nil {
		if res, ok := f.fromCache(key); ok {
			f.logger.Debug("Dataset served from cache", zap.String("url", rawURL))
			return res, nil
		}
	}

	res, err := f.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if isHTML(res.Meta.ContentType) {
		link, err := FindCSVLink(res.Body, res.FinalURL)
		if err != nil {
			return nil, err
		}
		f.logger.Info("Following CSV link from landing page", zap.String("page", res.FinalURL), zap.String("link", link))

		landing := res.FinalURL
		res, err = f.get(ctx, link)
		if err != nil {
			return nil, err
		}
		res.Meta.ResolvedFrom = landing
	}

	if f.cache != nil {
		if b, err := json.Marshal(res); err == nil {
			if err := f.cache.Set(key, b, f.cacheTTL); err != nil {
				f.logger.Warn("Cache write failed", zap.Error(err))
			}
		}
	}
	return res, nil
}

func (f *Fetcher) fromCache(key string) (*FetchResult, bool) {
	b, ok := f.cache.Get(key)
	if !ok {
		return nil, false
	}
	var res FetchResult
	if err := json.Unmarshal(b, &res); err != nil {
		_ = f.cache.Delete(key)
		return nil, false
	}
	res.Meta.FromCache = true
	return &res, true
}

// get performs one polite GET: robots.txt check, host rate limit, request
func (f *Fetcher) get(ctx context.Context, rawURL string) (*FetchResult, error) {
	if f.robots != nil {
		verdict, err := f.robots.Check(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("robots: %w", err)
		}
		if !verdict.Allowed {
			return nil, fmt.Errorf("%w: %s", ErrDisallowed, rawURL)
		}
		if err := f.limiter.ApplyCrawlDelay(rawURL, verdict.CrawlDelay); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}
	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/csv,text/plain;q=0.9,text/html;q=0.5,*/*;q=0.1")

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	meta := model.FetchMeta{
		StatusCode:   resp.StatusCode,
		ContentType:  resp.Header.Get("Content-Type"),
		LastModified: resp.Header.Get("Last-Modified"),
		ETag:         resp.Header.Get("ETag"),
		Headers:      make(map[string]string),
	}
	for _, key := range []string{"Content-Length", "Server", "Cache-Control"} {
		if val := resp.Header.Get(key); val != "" {
			meta.Headers[key] = val
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("read body: response exceeds %d bytes", f.maxBytes)
	}

	f.logger.Debug("Fetched",
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", time.Since(start)))

	return &FetchResult{
		Body:     body,
		Meta:     meta,
		FinalURL: resp.Request.URL.String(),
	}, nil
}

func isHTML(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "text/html" || mt == "application/xhtml+xml"
}
