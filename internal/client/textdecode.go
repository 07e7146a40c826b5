package client

import (
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"

	"github.com/krillinai/klicbridge/internal/apperrors"
)

// decodeText turns a downloaded body into a UTF-8 string. Valid UTF-8 passes
// through, otherwise the charset declared in the Content-Type header is
// honored. Latin-1 is the final fallback: it maps every byte, so legacy
// subtitle files always come out readable. Bodies carrying NUL bytes are
// binary, not text, and are refused.
func decodeText(content []byte, contentType string) (string, error) {
	if bytes.IndexByte(content, 0) >= 0 {
		return "", apperrors.NewRemoteError("artifact content is binary and cannot be decoded as text", 0)
	}
	if utf8.Valid(content) {
		return string(content), nil
	}

	if reader, err := charset.NewReader(bytes.NewReader(content), contentType); err == nil {
		if decoded, err := io.ReadAll(reader); err == nil && utf8.Valid(decoded) {
			return string(decoded), nil
		}
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
	if err != nil {
		return "", apperrors.NewRemoteError("artifact content cannot be decoded as text", 0)
	}
	return string(decoded), nil
}
