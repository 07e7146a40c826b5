package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/krillinai/klicbridge/internal/client"
	"github.com/krillinai/klicbridge/internal/config"
	"github.com/krillinai/klicbridge/internal/connector"
	"github.com/krillinai/klicbridge/internal/models"
)

// server holds the tool handlers of the bridge
type server struct {
	state  *connector.State
	client client.Client
	logger zerolog.Logger
}

// NewServer creates the tool handler set bound to connector state and a
// KlicStudio client.
func NewServer(state *connector.State, c client.Client) *server {
	return &server{
		state:  state,
		client: c,
		logger: config.GetLogger(),
	}
}

// Tool argument structs. The SDK derives each tool's input schema from the
// json and jsonschema tags and rejects calls that do not match, so handlers
// only validate semantics, not shape.

type setBaseURLArgs struct {
	URL string `json:"url" jsonschema:"KlicStudio base URL, e.g. http://127.0.0.1:8888"`
}

type updateSystemConfigArgs struct {
	Config map[string]interface{} `json:"config" jsonschema:"full or partial KlicStudio configuration document; the service merges it into the current configuration"`
}

type updateLLMConfigArgs struct {
	BaseURL string `json:"base_url,omitempty" jsonschema:"OpenAI-compatible API base URL"`
	APIKey  string `json:"api_key,omitempty" jsonschema:"API key for the LLM provider"`
	Model   string `json:"model,omitempty" jsonschema:"model name used for translation and summarization"`
}

type uploadFileArgs struct {
	FilePath string `json:"file_path" jsonschema:"path of a local media file to place on the KlicStudio service"`
}

type startSubtitleTaskArgs struct {
	URL                     string   `json:"url" jsonschema:"media location: the file_path returned by upload_file, or an external video link the service can reach"`
	Language                string   `json:"language,omitempty" jsonschema:"recognition language of the media (zh_cn, en, ja, tr, de, ko, ru); defaults to zh_cn"`
	OriginLang              string   `json:"origin_lang,omitempty" jsonschema:"translation source language; defaults to the recognition language"`
	TargetLang              string   `json:"target_lang,omitempty" jsonschema:"translation target language; subtitles are translated only when set"`
	Bilingual               bool     `json:"bilingual,omitempty" jsonschema:"produce subtitles in both the original and target language"`
	TranslationSubtitlePos  int      `json:"translation_subtitle_pos,omitempty" jsonschema:"1 places the translated line on top, 2 below; defaults to 1"`
	TTS                     bool     `json:"tts,omitempty" jsonschema:"synthesize speech for the generated subtitles"`
	TTSVoiceCode            string   `json:"tts_voice_code,omitempty" jsonschema:"voice for speech synthesis, e.g. en-US-SteffanNeural"`
	TTSVoiceCloneSrcFileURL string   `json:"tts_voice_clone_src_file_url,omitempty" jsonschema:"uploaded audio sample to clone the voice from"`
	ModalFilter             bool     `json:"modal_filter,omitempty" jsonschema:"remove filler words from the transcript"`
	EmbedSubtitleVideoType  string   `json:"embed_subtitle_video_type,omitempty" jsonschema:"render video with embedded subtitles: none, horizontal, vertical or all; defaults to none"`
	VerticalMajorTitle      string   `json:"vertical_major_title,omitempty" jsonschema:"main caption shown on vertically rendered video"`
	VerticalMinorTitle      string   `json:"vertical_minor_title,omitempty" jsonschema:"sub caption shown on vertically rendered video"`
	ReplaceWords            []string `json:"replace_words,omitempty" jsonschema:"transcript replacement rules, each formatted original|replacement"`
}

type taskDetailsArgs struct {
	TaskID string `json:"task_id" jsonschema:"task identifier returned by start_subtitle_task"`
}

type fetchFileArgs struct {
	DownloadURL string `json:"download_url" jsonschema:"absolute artifact URL from get_subtitle_task_details"`
}

func (s *server) getBaseURL(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, any, error) {
	s.logger.Debug().Msg("get_base_url called")

	return s.success(ToolGetBaseURL, "current KlicStudio base URL", map[string]string{
		"base_url": s.state.BaseURL(),
	}), nil, nil
}

func (s *server) setBaseURL(ctx context.Context, req *mcp.CallToolRequest, args setBaseURLArgs) (*mcp.CallToolResult, any, error) {
	s.logger.Debug().Str("url", args.URL).Msg("set_base_url called")

	newURL, previousURL, err := s.state.SetBaseURL(args.URL)
	if err != nil {
		return s.failure(ToolSetBaseURL, err), nil, nil
	}

	s.logger.Info().Str("base_url", newURL).Str("previous", previousURL).Msg("KlicStudio base URL changed")
	return s.success(ToolSetBaseURL, "base URL updated", map[string]string{
		"base_url":          newURL,
		"previous_base_url": previousURL,
	}), nil, nil
}

func (s *server) getSystemConfig(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, any, error) {
	s.logger.Debug().Msg("get_system_config called")

	document, err := s.client.SystemConfig(ctx)
	if err != nil {
		return s.failure(ToolGetSystemConfig, err), nil, nil
	}
	return s.success(ToolGetSystemConfig, "current KlicStudio configuration", document), nil, nil
}

func (s *server) updateSystemConfig(ctx context.Context, req *mcp.CallToolRequest, args updateSystemConfigArgs) (*mcp.CallToolResult, any, error) {
	s.logger.Debug().Int("sections", len(args.Config)).Msg("update_system_config called")

	result, err := s.client.UpdateSystemConfig(ctx, args.Config)
	if err != nil {
		return s.failure(ToolUpdateSystemConfig, err), nil, nil
	}
	return s.success(ToolUpdateSystemConfig, "configuration updated", result), nil, nil
}

func (s *server) updateLLMConfig(ctx context.Context, req *mcp.CallToolRequest, args updateLLMConfigArgs) (*mcp.CallToolResult, any, error) {
	s.logger.Debug().Msg("update_llm_config called")

	update := models.LLMConfigUpdate{
		BaseURL: args.BaseURL,
		APIKey:  args.APIKey,
		Model:   args.Model,
	}
	result, err := s.client.UpdateLLMConfig(ctx, update)
	if err != nil {
		return s.failure(ToolUpdateLLMConfig, err), nil, nil
	}
	return s.success(ToolUpdateLLMConfig, "LLM configuration updated", result), nil, nil
}

func (s *server) uploadFile(ctx context.Context, req *mcp.CallToolRequest, args uploadFileArgs) (*mcp.CallToolResult, any, error) {
	s.logger.Debug().Str("file_path", args.FilePath).Msg("upload_file called")

	result, err := s.client.UploadFile(ctx, args.FilePath)
	if err != nil {
		return s.failure(ToolUploadFile, err), nil, nil
	}

	s.logger.Info().Str("file", result.FileName).Str("stored_path", result.FilePath).Msg("upload_file completed")
	return s.success(ToolUploadFile, "file uploaded; pass file_path as the url of start_subtitle_task", result), nil, nil
}

func (s *server) startSubtitleTask(ctx context.Context, req *mcp.CallToolRequest, args startSubtitleTaskArgs) (*mcp.CallToolResult, any, error) {
	s.logger.Debug().Str("url", args.URL).Str("target_lang", args.TargetLang).Msg("start_subtitle_task called")

	params := models.SubtitleTaskParams{
		MediaURL:                args.URL,
		Language:                args.Language,
		OriginLang:              args.OriginLang,
		TargetLang:              args.TargetLang,
		Bilingual:               args.Bilingual,
		TranslationSubtitlePos:  args.TranslationSubtitlePos,
		TTS:                     args.TTS,
		TTSVoiceCode:            args.TTSVoiceCode,
		TTSVoiceCloneSrcFileURL: args.TTSVoiceCloneSrcFileURL,
		ModalFilter:             args.ModalFilter,
		EmbedSubtitleVideoType:  args.EmbedSubtitleVideoType,
		VerticalMajorTitle:      args.VerticalMajorTitle,
		VerticalMinorTitle:      args.VerticalMinorTitle,
		ReplaceWords:            args.ReplaceWords,
	}

	taskID, err := s.client.StartSubtitleTask(ctx, params)
	if err != nil {
		return s.failure(ToolStartSubtitleTask, err), nil, nil
	}

	s.logger.Info().Str("task_id", taskID).Msg("start_subtitle_task completed")
	return s.success(ToolStartSubtitleTask, "task started; poll get_subtitle_task_details until COMPLETED or FAILED", map[string]string{
		"task_id": taskID,
	}), nil, nil
}

func (s *server) getSubtitleTaskDetails(ctx context.Context, req *mcp.CallToolRequest, args taskDetailsArgs) (*mcp.CallToolResult, any, error) {
	s.logger.Debug().Str("task_id", args.TaskID).Msg("get_subtitle_task_details called")

	status, err := s.client.SubtitleTaskDetails(ctx, args.TaskID)
	if err != nil {
		return s.failure(ToolGetSubtitleTaskDetails, err), nil, nil
	}
	return s.success(ToolGetSubtitleTaskDetails, "task status snapshot", status), nil, nil
}

func (s *server) fetchFileAsText(ctx context.Context, req *mcp.CallToolRequest, args fetchFileArgs) (*mcp.CallToolResult, any, error) {
	s.logger.Debug().Str("download_url", args.DownloadURL).Msg("fetch_file_as_text called")

	result, err := s.client.FetchFileAsText(ctx, args.DownloadURL)
	if err != nil {
		return s.failure(ToolFetchFileAsText, err), nil, nil
	}

	s.logger.Debug().Str("file", result.FileName).Int("chars", len(result.TextContent)).Msg("fetch_file_as_text completed")
	return s.success(ToolFetchFileAsText, "artifact decoded as text", result), nil, nil
}
