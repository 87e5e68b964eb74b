// Package api implements the HackerTarget HTTP API client.
package api

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	cachepkg "github.com/ismailtasdelen/hackertarget/pkg/cache/sqlite"
	"github.com/ismailtasdelen/hackertarget/pkg/config"
	"github.com/ismailtasdelen/hackertarget/pkg/models"
	"github.com/ismailtasdelen/hackertarget/pkg/target"
)

const (
	defaultBaseURL = "https://api.hackertarget.com"
	userAgent      = "HackerTarget-CLI/3.0 (https://github.com/ismailtasdelen/hackertarget)"
)

// Body fragments the API uses to signal errors inside a 200 response.
var errorIndicators = []string{
	"error check your search parameter",
	"invalid",
	"api count exceeded",
	"please slow down",
}

// Recorder records completed queries. Implementations must never fail the
// query on a recording error.
type Recorder interface {
	Record(ctx context.Context, rec models.HistoryRecord)
}

// Client queries the HackerTarget API with retries, caching, and history
// recording. The cache and recorder are optional; a nil value disables the
// corresponding behavior.
type Client struct {
	baseURL string
	apiKey  string
	http    *retryablehttp.Client
	cache   *cachepkg.Cache
	history Recorder
	logger  zerolog.Logger
}

// New builds a Client from the API config with all collaborators injected.
func New(cfg config.APIConfig, cache *cachepkg.Cache, history Recorder, logger zerolog.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.MaxRetries
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 10 * time.Second
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.Logger = leveledLogger{logger}
	rc.CheckRetry = retryPolicy
	// Hand back the final response so the caller can classify the failure
	// instead of receiving a generic "giving up" error.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	if !cfg.VerifySSL {
		rc.HTTPClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  cfg.Key,
		http:    rc,
		cache:   cache,
		history: history,
		logger:  logger,
	}
}

// retryPolicy retries on connection errors, 429, and 5xx — the same set of
// statuses the API is known to return transiently.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
		return true, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// Query runs a single tool against a target. The target is cleaned and
// validated, the cache is consulted first, and a fresh response is cached
// on success.
func (c *Client) Query(ctx context.Context, tool Tool, rawTarget string) (*models.QueryResult, error) {
	if !tool.Valid() {
		return nil, fmt.Errorf("invalid tool choice: %d", int(tool))
	}

	if err := target.Validate(rawTarget); err != nil {
		c.logger.Error().Err(err).Str("target", rawTarget).Msg("target validation failed")
		return nil, err
	}
	cleaned := target.Clean(rawTarget)

	started := time.Now()

	if c.cache != nil {
		if value, ok := c.cache.Get(tool.ID(), cleaned); ok {
			c.logger.Info().Str("tool", tool.Name()).Str("target", cleaned).Msg("using cached result")
			res := &models.QueryResult{
				Tool:      tool.Name(),
				Target:    cleaned,
				Data:      value,
				Cached:    true,
				Timestamp: time.Now(),
			}
			c.record(ctx, tool, cleaned, true, "ok", time.Since(started))
			return res, nil
		}
	}

	c.logger.Info().Str("tool", tool.Name()).Str("target", cleaned).Msg("querying API")

	text, err := c.do(ctx, tool, cleaned)
	if err != nil {
		c.record(ctx, tool, cleaned, false, "error", time.Since(started))
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(tool.ID(), cleaned, text)
	}
	c.record(ctx, tool, cleaned, false, "ok", time.Since(started))

	c.logger.Debug().Int("bytes", len(text)).Str("tool", tool.Name()).Msg("query completed")
	return &models.QueryResult{
		Tool:      tool.Name(),
		Target:    cleaned,
		Data:      text,
		Timestamp: time.Now(),
	}, nil
}

func (c *Client) do(ctx context.Context, tool Tool, cleaned string) (string, error) {
	reqURL := c.baseURL + tool.Endpoint() + "?q=" + url.QueryEscape(cleaned)
	if c.apiKey != "" {
		reqURL += "&apikey=" + url.QueryEscape(c.apiKey)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("unable to reach HackerTarget API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	return validateResponse(resp, body, tool)
}

// validateResponse maps HTTP status codes and error-indicator bodies onto
// the client's error taxonomy.
func validateResponse(resp *http.Response, body []byte, tool Tool) (string, error) {
	if resp.StatusCode == http.StatusTooManyRequests {
		var retryAfter time.Duration
		if v := resp.Header.Get("Retry-After"); v != "" {
			if secs, err := strconv.Atoi(v); err == nil {
				retryAfter = time.Duration(secs) * time.Second
			}
		}
		return "", &RateLimitError{RetryAfter: retryAfter}
	}
	if resp.StatusCode >= 400 {
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d error for %s", resp.StatusCode, tool.Name()),
			Body:       string(body),
		}
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return "", &APIError{Message: fmt.Sprintf("empty response from %s", tool.Name())}
	}

	lower := strings.ToLower(text)
	for _, indicator := range errorIndicators {
		if strings.Contains(lower, indicator) {
			if strings.Contains(lower, "api count") || strings.Contains(lower, "slow down") {
				return "", &RateLimitError{}
			}
			return "", &APIError{Message: text, Body: text}
		}
	}

	return text, nil
}

func (c *Client) record(ctx context.Context, tool Tool, cleaned string, cached bool, status string, dur time.Duration) {
	if c.history == nil {
		return
	}
	c.history.Record(ctx, models.HistoryRecord{
		ToolID:     tool.ID(),
		ToolName:   tool.Name(),
		Target:     cleaned,
		Cached:     cached,
		Status:     status,
		DurationMS: dur.Milliseconds(),
		CreatedAt:  time.Now(),
	})
}

// BatchQuery runs a tool against each target in order, pausing delay
// between requests to stay under the rate limit. With continueOnError set,
// individual failures are captured per target instead of aborting.
func (c *Client) BatchQuery(ctx context.Context, tool Tool, targets []string, delay time.Duration, continueOnError bool) ([]models.BatchResult, error) {
	c.logger.Info().Str("tool", tool.Name()).Int("targets", len(targets)).Msg("starting batch query")

	results := make([]models.BatchResult, 0, len(targets))
	for i, tgt := range targets {
		res, err := c.Query(ctx, tool, tgt)
		if err != nil {
			c.logger.Warn().Err(err).Str("target", tgt).Msg("batch target failed")
			results = append(results, models.BatchResult{Target: tgt, Error: err.Error()})
			if !continueOnError {
				return results, err
			}
		} else {
			results = append(results, models.BatchResult{Target: tgt, Success: true, Data: res.Data})
		}

		if i < len(targets)-1 && delay > 0 {
			select {
			case <-ctx.Done():
				return results, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	success := 0
	for _, r := range results {
		if r.Success {
			success++
		}
	}
	c.logger.Info().Int("success", success).Int("total", len(targets)).Msg("batch query completed")
	return results, nil
}

// leveledLogger adapts zerolog to retryablehttp's LeveledLogger.
type leveledLogger struct {
	l zerolog.Logger
}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.l.Error().Fields(kv).Msg(msg) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.l.Warn().Fields(kv).Msg(msg) }
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.l.Debug().Fields(kv).Msg(msg) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.l.Debug().Fields(kv).Msg(msg) }
