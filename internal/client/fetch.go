package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/krillinai/klicbridge/internal/apperrors"
	"github.com/krillinai/klicbridge/internal/config"
	"github.com/krillinai/klicbridge/internal/models"
)

// artifactEndpoint is the fixed metrics label for artifact downloads.
// Artifact URLs embed task IDs and would blow up label cardinality.
const artifactEndpoint = "GET artifact"

// cachedArtifact is a decoded download kept for repeated reads of the same
// subtitle file. Entries are stored JSON-encoded in the artifact cache.
type cachedArtifact struct {
	FileName string `json:"file_name"`
	Text     string `json:"text"`
	MimeType string `json:"mime_type"`
}

// FetchFileAsText downloads a task artifact, normally a subtitle file, and
// returns it decoded to UTF-8 text. Recently fetched artifacts are served
// from a small in-memory cache keyed by URL; task artifacts never change
// once written, so a cached copy stays valid until it ages out.
func (c *client) FetchFileAsText(ctx context.Context, downloadURL string) (*models.FetchResult, error) {
	if strings.TrimSpace(downloadURL) == "" {
		return nil, apperrors.NewInvalidArgumentError("download_url", "download URL is required")
	}
	parsed, err := url.Parse(downloadURL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return nil, apperrors.NewInvalidArgumentError("download_url", fmt.Sprintf("%q is not an absolute URL", downloadURL))
	}

	logger := config.GetLogger()
	if encoded, ok := c.artifactCache.Get(downloadURL); ok {
		var cached cachedArtifact
		if err := json.Unmarshal(encoded, &cached); err == nil {
			logger.Debug().Str("url", downloadURL).Msg("Artifact served from cache")
			return &models.FetchResult{
				FileName:    cached.FileName,
				TextContent: cached.Text,
				MimeType:    cached.MimeType,
			}, nil
		}
	}

	fileName := path.Base(parsed.Path)
	if fileName == "." || fileName == "/" || fileName == "" {
		fileName = "download"
	}

	result, err := c.roundTrip(ctx, c.fetchTimeout, artifactEndpoint, func(reqCtx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, downloadURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		return req, nil
	})
	if err != nil {
		observeOutcome(artifactEndpoint, err)
		return nil, fmt.Errorf("failed to download artifact: %w", err)
	}

	text, err := decodeText(result.body, result.contentType)
	observeOutcome(artifactEndpoint, err)
	if err != nil {
		return nil, fmt.Errorf("failed to decode artifact %s: %w", fileName, err)
	}

	mimeType := result.contentType
	if mimeType == "" {
		mimeType = "text/plain"
	}

	if encoded, err := json.Marshal(&cachedArtifact{
		FileName: fileName,
		Text:     text,
		MimeType: mimeType,
	}); err == nil {
		c.artifactCache.Set(downloadURL, encoded)
	}
	logger.Debug().Str("url", downloadURL).Int("bytes", len(result.body)).Msg("Artifact fetched and cached")

	return &models.FetchResult{
		FileName:    fileName,
		TextContent: text,
		MimeType:    mimeType,
	}, nil
}
