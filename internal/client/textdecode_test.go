package client

import (
	"strings"
	"testing"
)

func TestDecodeText_UTF8(t *testing.T) {
	content := "1\n00:00:01,000 --> 00:00:03,000\nhéllo wörld 你好\n"

	decoded, err := decodeText([]byte(content), "text/plain; charset=utf-8")
	if err != nil {
		t.Fatalf("decodeText failed: %v", err)
	}
	if decoded != content {
		t.Errorf("Expected UTF-8 content unchanged, got %q", decoded)
	}
}

func TestDecodeText_DeclaredCharset(t *testing.T) {
	// "你好" encoded as GBK is invalid UTF-8
	gbk := []byte{0xC4, 0xE3, 0xBA, 0xC3}

	decoded, err := decodeText(gbk, "text/plain; charset=gbk")
	if err != nil {
		t.Fatalf("decodeText failed: %v", err)
	}
	if decoded != "你好" {
		t.Errorf("Expected GBK content decoded to 你好, got %q", decoded)
	}
}

func TestDecodeText_Latin1Fallback(t *testing.T) {
	// "café" with a Latin-1 0xE9 is invalid UTF-8
	latin1 := []byte{'c', 'a', 'f', 0xE9}

	decoded, err := decodeText(latin1, "")
	if err != nil {
		t.Fatalf("decodeText failed: %v", err)
	}
	if !strings.Contains(decoded, "caf") {
		t.Fatalf("Expected readable text, got %q", decoded)
	}
	if decoded != "café" {
		t.Errorf("Expected Latin-1 content decoded to café, got %q", decoded)
	}
}

func TestDecodeText_BinaryRejected(t *testing.T) {
	binary := []byte{0x00, 0x01, 0x02, 'P', 'K'}

	_, err := decodeText(binary, "application/zip")
	if err == nil {
		t.Fatal("Expected an error for binary content, got nil")
	}
}

func TestDecodeText_Empty(t *testing.T) {
	decoded, err := decodeText(nil, "text/plain")
	if err != nil {
		t.Fatalf("decodeText failed on empty content: %v", err)
	}
	if decoded != "" {
		t.Errorf("Expected empty string, got %q", decoded)
	}
}
