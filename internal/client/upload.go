package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/krillinai/klicbridge/internal/apperrors"
	"github.com/krillinai/klicbridge/internal/config"
	"github.com/krillinai/klicbridge/internal/models"
)

// UploadFile sends a local file to the service's upload endpoint and returns
// where the service stored it. The file is buffered in memory for the send.
func (c *client) UploadFile(ctx context.Context, localPath string) (*models.UploadResult, error) {
	if strings.TrimSpace(localPath) == "" {
		return nil, apperrors.NewInvalidArgumentError("file_path", "local file path is required")
	}

	info, err := os.Stat(localPath)
	if err != nil || info.IsDir() {
		return nil, apperrors.NewFileNotFoundError(localPath)
	}

	content, err := os.ReadFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", localPath, err)
	}

	fileName := filepath.Base(localPath)
	mimeType := detectMimeType(fileName)

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreatePart(fileFormHeader(fileName, mimeType))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	logger := config.GetLogger()
	logger.Info().
		Str("file", fileName).
		Str("mime_type", mimeType).
		Int64("size_bytes", info.Size()).
		Msg("Uploading file to KlicStudio")

	endpoint := http.MethodPost + " /api/file"
	requestURL := c.base.BaseURL() + "/api/file"
	formContentType := writer.FormDataContentType()

	result, err := c.roundTrip(ctx, c.requestTimeout, endpoint, func(reqCtx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, requestURL, bytes.NewReader(form.Bytes()))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", formContentType)
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		observeOutcome(endpoint, err)
		return nil, fmt.Errorf("failed to upload %s: %w", fileName, err)
	}

	data, err := decodeEnvelope(endpoint, result.body)
	observeOutcome(endpoint, err)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", fileName, err)
	}

	var payload struct {
		FilePath filePathList `json:"file_path"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	if len(payload.FilePath) == 0 || payload.FilePath[0] == "" {
		return nil, apperrors.NewRemoteError("upload response carried no file path", 0)
	}

	logger.Info().Str("file", fileName).Str("stored_path", payload.FilePath[0]).Msg("File uploaded")

	return &models.UploadResult{
		FilePath: payload.FilePath[0],
		FileName: fileName,
		MimeType: mimeType,
		Size:     info.Size(),
	}, nil
}

// filePathList tolerates both shapes the upload endpoint has served for
// file_path: a list of stored paths and a single plain string.
type filePathList []string

func (l *filePathList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("file_path is neither a string list nor a string: %w", err)
	}
	*l = filePathList{one}
	return nil
}

// fileFormHeader builds the multipart header for the upload part by hand.
// CreateFormFile pins the part's content type to application/octet-stream,
// and the service uses the declared type to tell audio from video.
func fileFormHeader(fileName, mimeType string) textproto.MIMEHeader {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(fileName)))
	header.Set("Content-Type", mimeType)
	return header
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// detectMimeType resolves the upload content type from the file extension.
// The platform MIME table is consulted first; a small fallback covers the
// media extensions the service most commonly receives.
func detectMimeType(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if byTable := mime.TypeByExtension(ext); byTable != "" {
		return byTable
	}
	switch ext {
	case ".mp4", ".mov", ".avi", ".mkv":
		return "video/mp4"
	case ".mp3", ".wav", ".aac", ".m4a":
		return "audio/mpeg"
	}
	return "application/octet-stream"
}
