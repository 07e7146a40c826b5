package connector

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/krillinai/klicbridge/internal/apperrors"
)

// State holds the mutable connector configuration shared by all tool calls:
// the base URL of the KlicStudio service. Every remote call reads the URL
// fresh, so a change takes effect on the next call. Writes are rare
// administrator actions; last write wins.
type State struct {
	mu      sync.RWMutex
	baseURL string
}

// NewState creates connector state with a validated initial base URL.
func NewState(rawURL string) (*State, error) {
	normalized, err := NormalizeBaseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &State{baseURL: normalized}, nil
}

// BaseURL returns the base URL currently in effect.
func (s *State) BaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baseURL
}

// SetBaseURL validates and installs a new base URL, returning the installed
// value and the one it replaced. On rejection the current URL stays in effect.
func (s *State) SetBaseURL(rawURL string) (newURL, previousURL string, err error) {
	normalized, err := NormalizeBaseURL(rawURL)
	if err != nil {
		return "", "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	previousURL = s.baseURL
	s.baseURL = normalized
	return normalized, previousURL, nil
}

// NormalizeBaseURL checks that rawURL is an absolute http(s) URL with a host
// and returns it with surrounding whitespace and any trailing slash removed.
func NormalizeBaseURL(rawURL string) (string, error) {
	normalized := strings.TrimRight(strings.TrimSpace(rawURL), "/")
	if normalized == "" {
		return "", apperrors.NewInvalidConfigError(rawURL, "base URL is required")
	}

	u, err := url.Parse(normalized)
	if err != nil {
		return "", apperrors.NewInvalidConfigError(rawURL, fmt.Sprintf("not a valid URL: %v", err))
	}
	if !u.IsAbs() || u.Host == "" {
		return "", apperrors.NewInvalidConfigError(rawURL, "absolute URL with host is required")
	}
	if u.User != nil {
		return "", apperrors.NewInvalidConfigError(rawURL, "userinfo is not allowed")
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", apperrors.NewInvalidConfigError(rawURL, "query and fragment are not allowed")
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return "", apperrors.NewInvalidConfigError(rawURL, "scheme must be http or https")
	}

	return normalized, nil
}
