package models

// Embed types accepted by the subtitle task endpoint.
const (
	EmbedNone       = "none"
	EmbedHorizontal = "horizontal"
	EmbedVertical   = "vertical"
	EmbedAll        = "all"
)

// TaskState describes where a subtitle task currently is in its lifecycle.
// The state is derived from the service's progress report on each poll; the
// bridge never drives transitions itself.
type TaskState string

const (
	TaskStateCreated   TaskState = "CREATED"
	TaskStateRunning   TaskState = "RUNNING"
	TaskStateCompleted TaskState = "COMPLETED"
	TaskStateFailed    TaskState = "FAILED"
)

// SubtitleTaskParams holds the caller-facing parameters for starting a
// subtitle processing task. Boolean toggles are translated to the service's
// 1 (on) / 2 (off) encoding at request time.
type SubtitleTaskParams struct {
	// MediaURL is a path on the KlicStudio service (e.g. "local:./uploads/v.mp4")
	// or an external media link the service can reach.
	MediaURL string
	// Language is the recognition language of the media.
	Language string
	// OriginLang is the translation source language. When translation is
	// requested and this is empty, it defaults to Language.
	OriginLang string
	// TargetLang enables translation when non-empty.
	TargetLang string
	// Bilingual requests subtitles in both languages.
	Bilingual bool
	// TranslationSubtitlePos places the translated line: 1 = above, 2 = below.
	TranslationSubtitlePos int
	// TTS enables speech synthesis for the generated subtitles.
	TTS bool
	// TTSVoiceCode selects the synthesis voice (e.g. "en-US-SteffanNeural").
	TTSVoiceCode string
	// TTSVoiceCloneSrcFileURL points at an uploaded audio sample for voice cloning.
	TTSVoiceCloneSrcFileURL string
	// ModalFilter removes filler words from the transcript.
	ModalFilter bool
	// EmbedSubtitleVideoType renders subtitled video: none, horizontal,
	// vertical or all.
	EmbedSubtitleVideoType string
	// VerticalMajorTitle is the main caption of vertically rendered video.
	VerticalMajorTitle string
	// VerticalMinorTitle is the sub caption of vertically rendered video.
	VerticalMinorTitle string
	// ReplaceWords rewrites transcript words, each entry "original|replacement".
	ReplaceWords []string
}

// SubtitleTaskRequest is the JSON body of the task creation endpoint.
type SubtitleTaskRequest struct {
	URL                     string   `json:"url"`
	Language                string   `json:"language"`
	Bilingual               int      `json:"bilingual"`
	TranslationSubtitlePos  int      `json:"translation_subtitle_pos"`
	TTS                     int      `json:"tts"`
	ModalFilter             int      `json:"modal_filter"`
	EmbedSubtitleVideoType  string   `json:"embed_subtitle_video_type"`
	OriginLang              string   `json:"origin_lang,omitempty"`
	TargetLang              string   `json:"target_lang,omitempty"`
	TTSVoiceCode            string   `json:"tts_voice_code,omitempty"`
	TTSVoiceCloneSrcFileURL string   `json:"tts_voice_clone_src_file_url,omitempty"`
	VerticalMajorTitle      string   `json:"vertical_major_title,omitempty"`
	VerticalMinorTitle      string   `json:"vertical_minor_title,omitempty"`
	Replace                 []string `json:"replace,omitempty"`
}

// SubtitleTaskCreated is the data payload returned by the task creation endpoint.
type SubtitleTaskCreated struct {
	TaskID string `json:"task_id"`
}

// SubtitleTaskDetails is the data payload returned by the task status endpoint.
type SubtitleTaskDetails struct {
	TaskID            string             `json:"task_id"`
	ProcessPercent    float64            `json:"process_percent"`
	FailReason        string             `json:"fail_reason"`
	SubtitleInfo      []SubtitleArtifact `json:"subtitle_info"`
	SpeechDownloadURL string             `json:"speech_download_url"`
}

// SubtitleArtifact is a downloadable task output.
type SubtitleArtifact struct {
	Name        string `json:"name"`
	DownloadURL string `json:"download_url"`
}

// TaskStatus is the normalized view of a subtitle task returned to callers.
// Download URLs are absolute. PotentialEmbeddedVideos lists rendered video
// locations that are inferred rather than reported, so they may not exist.
type TaskStatus struct {
	TaskID                  string             `json:"task_id"`
	State                   TaskState          `json:"state"`
	ProcessPercent          float64            `json:"process_percent"`
	FailReason              string             `json:"fail_reason,omitempty"`
	Subtitles               []SubtitleArtifact `json:"subtitle_info,omitempty"`
	SpeechDownloadURL       string             `json:"speech_download_url,omitempty"`
	PotentialEmbeddedVideos []SubtitleArtifact `json:"potential_embedded_video_urls,omitempty"`
}

// ClassifyTaskState derives the lifecycle state from a progress report.
// A non-empty failure reason wins over any progress value.
func ClassifyTaskState(processPercent float64, failReason string) TaskState {
	switch {
	case failReason != "":
		return TaskStateFailed
	case processPercent >= 100:
		return TaskStateCompleted
	case processPercent > 0:
		return TaskStateRunning
	default:
		return TaskStateCreated
	}
}

// IsEmbedType reports whether value is a valid subtitle embedding mode.
func IsEmbedType(value string) bool {
	switch value {
	case EmbedNone, EmbedHorizontal, EmbedVertical, EmbedAll:
		return true
	default:
		return false
	}
}
