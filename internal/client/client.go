package client

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/krillinai/klicbridge/internal/cache"
	"github.com/krillinai/klicbridge/internal/config"
	"github.com/krillinai/klicbridge/internal/models"
)

// BaseURLSource provides the KlicStudio base URL to use for a request.
// The URL is read fresh on every call, so runtime changes made through the
// connector take effect on the next request.
type BaseURLSource interface {
	BaseURL() string
}

// Client defines the interface for talking to a KlicStudio service.
type Client interface {
	// SystemConfig fetches the full system configuration document.
	SystemConfig(ctx context.Context) (json.RawMessage, error)
	// UpdateSystemConfig submits a full or partial configuration document.
	// Merging and validation happen on the service side.
	UpdateSystemConfig(ctx context.Context, document map[string]interface{}) (json.RawMessage, error)
	// UpdateLLMConfig changes only the provided fields of the llm section.
	UpdateLLMConfig(ctx context.Context, update models.LLMConfigUpdate) (json.RawMessage, error)

	// UploadFile places a local file on the service and returns its
	// service-side reference.
	UploadFile(ctx context.Context, localPath string) (*models.UploadResult, error)
	// StartSubtitleTask validates params locally and asks the service to
	// begin processing, returning the new task ID.
	StartSubtitleTask(ctx context.Context, params models.SubtitleTaskParams) (string, error)
	// SubtitleTaskDetails polls the current progress snapshot of a task.
	SubtitleTaskDetails(ctx context.Context, taskID string) (*models.TaskStatus, error)
	// FetchFileAsText downloads a task artifact and decodes it to UTF-8 text.
	FetchFileAsText(ctx context.Context, downloadURL string) (*models.FetchResult, error)

	// Close releases resources held by the client, such as the artifact cache.
	Close() error
}

// client implements the Client interface
type client struct {
	httpClient     *http.Client
	base           BaseURLSource
	requestTimeout time.Duration
	fetchTimeout   time.Duration
	artifactCache  cache.Cache
}

// NewClient creates a new client instance bound to the given base URL source.
func NewClient(cfg *config.Config, base BaseURLSource) Client {
	logger := config.GetLogger()

	requestTimeout := parseDurationOrDefault(cfg.ClientTimeout, 120*time.Second, "client_timeout")
	fetchTimeout := parseDurationOrDefault(cfg.FetchTimeout, 60*time.Second, "fetch_timeout")

	cacheSize := cfg.Cache.Size
	if cacheSize <= 0 {
		cacheSize = 32
	}
	cacheTTL := parseDurationOrDefault(cfg.Cache.TTL, 10*time.Minute, "cache.ttl")

	// Clone DefaultTransport to preserve its settings (timeouts, connection
	// pooling, HTTP/2) and wrap it with response decompression. No Timeout
	// on the http.Client itself: each call runs under its own time budget.
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()
	httpClient := &http.Client{
		Transport: newDecompressionTransport(baseTransport),
	}

	artifactCache, err := cache.New("memory", cache.ProviderConfig{
		Size:  cacheSize,
		TTL:   cacheTTL,
		Group: "artifact",
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create artifact cache")
	}

	logger.Debug().
		Dur("request_timeout", requestTimeout).
		Dur("fetch_timeout", fetchTimeout).
		Int("cache_size", cacheSize).
		Dur("cache_ttl", cacheTTL).
		Msg("KlicStudio client configured")

	return &client{
		httpClient:     httpClient,
		base:           base,
		requestTimeout: requestTimeout,
		fetchTimeout:   fetchTimeout,
		artifactCache:  artifactCache,
	}
}

// Close releases the artifact cache and its metric collectors.
func (c *client) Close() error {
	return c.artifactCache.Close()
}

// parseDurationOrDefault parses a Go duration string, falling back to def for
// empty or malformed values.
func parseDurationOrDefault(value string, def time.Duration, field string) time.Duration {
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		logger := config.GetLogger()
		logger.Warn().Err(err).Str(field, value).Msgf("Invalid duration, using default %s", def)
		return def
	}
	return parsed
}
