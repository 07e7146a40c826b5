package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/krillinai/klicbridge/internal/apperrors"
	"github.com/krillinai/klicbridge/internal/config"
	"github.com/krillinai/klicbridge/internal/models"
)

// StartSubtitleTask validates params locally, then asks the service to begin
// processing and returns the new task ID. Validation failures never reach
// the network, and the creation request is sent exactly once: a retried send
// could start a duplicate job.
func (c *client) StartSubtitleTask(ctx context.Context, params models.SubtitleTaskParams) (string, error) {
	request, err := buildSubtitleTaskRequest(params)
	if err != nil {
		return "", err
	}

	logger := config.GetLogger()
	logger.Info().
		Str("url", request.URL).
		Str("language", request.Language).
		Str("target_lang", request.TargetLang).
		Str("embed", request.EmbedSubtitleVideoType).
		Bool("tts", request.TTS == 1).
		Msg("Starting subtitle task")

	data, err := c.requestEnvelope(ctx, http.MethodPost, "/api/capability/subtitleTask", request)
	if err != nil {
		return "", fmt.Errorf("failed to start subtitle task: %w", err)
	}

	var created models.SubtitleTaskCreated
	if err := json.Unmarshal(data, &created); err != nil {
		return "", fmt.Errorf("failed to decode task creation response: %w", err)
	}
	if created.TaskID == "" {
		return "", apperrors.NewRemoteError("task creation response carried no task_id", 0)
	}

	logger.Info().Str("task_id", created.TaskID).Msg("Subtitle task started")
	return created.TaskID, nil
}

// SubtitleTaskDetails polls the service for a task's progress snapshot and
// normalizes it: lifecycle state is derived from the report, download URLs
// are made absolute against the current base URL, and completed tasks gain
// the inferred embedded-video locations. Nothing is cached; every call asks
// the service again.
func (c *client) SubtitleTaskDetails(ctx context.Context, taskID string) (*models.TaskStatus, error) {
	if strings.TrimSpace(taskID) == "" {
		return nil, apperrors.NewInvalidArgumentError("task_id", "task ID is required")
	}

	path := "/api/capability/subtitleTask?taskId=" + url.QueryEscape(taskID)
	data, err := c.requestEnvelope(ctx, http.MethodGet, path, nil)
	if err != nil {
		var gw *apperrors.ErrGateway
		if errors.As(err, &gw) && gw.Status == http.StatusNotFound {
			return nil, apperrors.NewTaskNotFoundError(taskID)
		}
		return nil, fmt.Errorf("failed to fetch task details: %w", err)
	}

	var details models.SubtitleTaskDetails
	if err := json.Unmarshal(data, &details); err != nil {
		return nil, fmt.Errorf("failed to decode task details: %w", err)
	}
	if details.TaskID == "" {
		details.TaskID = taskID
	}

	baseURL := c.base.BaseURL()
	status := &models.TaskStatus{
		TaskID:            details.TaskID,
		State:             models.ClassifyTaskState(details.ProcessPercent, details.FailReason),
		ProcessPercent:    details.ProcessPercent,
		FailReason:        details.FailReason,
		SpeechDownloadURL: absolutizeURL(baseURL, details.SpeechDownloadURL),
	}
	for _, artifact := range details.SubtitleInfo {
		status.Subtitles = append(status.Subtitles, models.SubtitleArtifact{
			Name:        artifact.Name,
			DownloadURL: absolutizeURL(baseURL, artifact.DownloadURL),
		})
	}
	if status.State == models.TaskStateCompleted {
		status.PotentialEmbeddedVideos = potentialEmbeddedVideos(baseURL, details.TaskID)
	}

	logger := config.GetLogger()
	logger.Info().
		Str("task_id", details.TaskID).
		Str("state", string(status.State)).
		Float64("progress", status.ProcessPercent).
		Msg("Fetched subtitle task details")

	return status, nil
}

// buildSubtitleTaskRequest checks caller parameters against the capability
// contract and assembles the wire request. Optional toggles default the way
// the service expects: recognition language zh_cn, no embedding, translated
// line on top.
func buildSubtitleTaskRequest(p models.SubtitleTaskParams) (*models.SubtitleTaskRequest, error) {
	if strings.TrimSpace(p.MediaURL) == "" {
		return nil, apperrors.NewInvalidArgumentError("media_url", "media path or link is required")
	}

	language := p.Language
	if language == "" {
		language = "zh_cn"
	}
	if !models.IsSourceLanguage(language) {
		return nil, apperrors.NewInvalidArgumentError("language", fmt.Sprintf("unsupported recognition language %q", language))
	}
	if p.OriginLang != "" && !models.IsSourceLanguage(p.OriginLang) {
		return nil, apperrors.NewInvalidArgumentError("origin_lang", fmt.Sprintf("unsupported recognition language %q", p.OriginLang))
	}
	if p.TargetLang != "" && !models.IsTranslationLanguage(p.TargetLang) {
		return nil, apperrors.NewInvalidArgumentError("target_lang", fmt.Sprintf("unsupported translation language %q", p.TargetLang))
	}

	embedType := p.EmbedSubtitleVideoType
	if embedType == "" {
		embedType = models.EmbedNone
	}
	if !models.IsEmbedType(embedType) {
		return nil, apperrors.NewInvalidArgumentError("embed_subtitle_video_type", fmt.Sprintf("must be one of none, horizontal, vertical, all; got %q", embedType))
	}

	position := p.TranslationSubtitlePos
	if position == 0 {
		position = 1
	}
	if position != 1 && position != 2 {
		return nil, apperrors.NewInvalidArgumentError("translation_subtitle_pos", "must be 1 (translation on top) or 2 (translation below)")
	}

	for i, rule := range p.ReplaceWords {
		original, _, found := strings.Cut(rule, "|")
		if !found {
			return nil, apperrors.NewInvalidArgumentError("replace_words", fmt.Sprintf("rule %d must use the form original|replacement", i))
		}
		if original == "" {
			return nil, apperrors.NewInvalidArgumentError("replace_words", fmt.Sprintf("rule %d has an empty original word", i))
		}
	}

	request := &models.SubtitleTaskRequest{
		URL:                    p.MediaURL,
		Language:               language,
		Bilingual:              boolToFlag(p.Bilingual),
		TranslationSubtitlePos: position,
		TTS:                    boolToFlag(p.TTS),
		ModalFilter:            boolToFlag(p.ModalFilter),
		EmbedSubtitleVideoType: embedType,
		VerticalMajorTitle:     p.VerticalMajorTitle,
		VerticalMinorTitle:     p.VerticalMinorTitle,
		Replace:                p.ReplaceWords,
	}

	// The translation source defaults to the recognition language, and only
	// matters when a translation was requested at all.
	if p.OriginLang != "" {
		request.OriginLang = p.OriginLang
	} else if p.TargetLang != "" {
		request.OriginLang = language
	}
	if p.TargetLang != "" {
		request.TargetLang = p.TargetLang
	}

	// Voice settings are meaningless and omitted unless synthesis is on.
	if request.TTS == 1 {
		request.TTSVoiceCode = p.TTSVoiceCode
		request.TTSVoiceCloneSrcFileURL = p.TTSVoiceCloneSrcFileURL
	}

	return request, nil
}

// boolToFlag translates a toggle to the service's 1 (on) / 2 (off) encoding.
func boolToFlag(on bool) int {
	if on {
		return 1
	}
	return 2
}

// absolutizeURL roots a relative download path at the service base URL.
// Already-absolute URLs pass through untouched.
func absolutizeURL(baseURL, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if strings.HasPrefix(ref, "/") {
		return baseURL + ref
	}
	return baseURL + "/" + ref
}

// potentialEmbeddedVideos lists where the service places rendered videos for
// a finished task. The service does not report these, so the files may or
// may not exist depending on the requested embedding mode.
func potentialEmbeddedVideos(baseURL, taskID string) []models.SubtitleArtifact {
	return []models.SubtitleArtifact{
		{
			Name:        "horizontal video with embedded subtitles (may not exist)",
			DownloadURL: fmt.Sprintf("%s/api/file/tasks/%s/output/horizontal_embed.mp4", baseURL, taskID),
		},
		{
			Name:        "vertical video with embedded subtitles (may not exist)",
			DownloadURL: fmt.Sprintf("%s/api/file/tasks/%s/output/vertical_embed.mp4", baseURL, taskID),
		},
	}
}
