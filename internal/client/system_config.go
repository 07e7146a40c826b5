package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/krillinai/klicbridge/internal/apperrors"
	"github.com/krillinai/klicbridge/internal/config"
	"github.com/krillinai/klicbridge/internal/models"
)

// SystemConfig fetches the service's configuration document (app, server,
// llm, transcribe and tts sections). The document is passed through opaquely.
func (c *client) SystemConfig(ctx context.Context) (json.RawMessage, error) {
	logger := config.GetLogger()
	logger.Info().Msg("Fetching KlicStudio system configuration")

	data, err := c.requestEnvelope(ctx, http.MethodGet, "/api/config", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch system configuration: %w", err)
	}
	return data, nil
}

// UpdateSystemConfig submits a full or partial configuration document.
// Merging and validation are the service's responsibility; the bridge does
// not interpret the contents.
func (c *client) UpdateSystemConfig(ctx context.Context, document map[string]interface{}) (json.RawMessage, error) {
	if len(document) == 0 {
		return nil, apperrors.NewInvalidArgumentError("config", "configuration document is required")
	}

	logger := config.GetLogger()
	logger.Info().Int("sections", len(document)).Msg("Updating KlicStudio system configuration")

	data, err := c.requestEnvelope(ctx, http.MethodPost, "/api/config", document)
	if err != nil {
		return nil, fmt.Errorf("failed to update system configuration: %w", err)
	}
	return data, nil
}

// UpdateLLMConfig sends a sparse configuration document containing only the
// llm fields to change. The current configuration is never read back or
// resent, so concurrent edits to other sections are left alone.
func (c *client) UpdateLLMConfig(ctx context.Context, update models.LLMConfigUpdate) (json.RawMessage, error) {
	if update.Empty() {
		return nil, apperrors.NewInvalidArgumentError("llm", "at least one of baseUrl, apiKey or model is required")
	}

	fields := make([]string, 0, 3)
	if update.BaseURL != "" {
		fields = append(fields, "baseUrl")
	}
	if update.APIKey != "" {
		fields = append(fields, "apiKey")
	}
	if update.Model != "" {
		fields = append(fields, "model")
	}

	logger := config.GetLogger()
	logger.Info().Strs("fields", fields).Msg("Updating KlicStudio LLM configuration")

	return c.UpdateSystemConfig(ctx, update.Document())
}
