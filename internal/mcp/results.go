package mcp

import (
	"encoding/json"

	"github.com/getsentry/sentry-go"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/krillinai/klicbridge/internal/apperrors"
	"github.com/krillinai/klicbridge/internal/metrics"
)

// toolEnvelope frames every tool result the way the KlicStudio API frames
// its responses, so callers see one shape for local and remote outcomes.
// Error is 0 on success; on failure Kind carries the error taxonomy label.
type toolEnvelope struct {
	Error int         `json:"error"`
	Msg   string      `json:"msg"`
	Kind  string      `json:"kind,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

// success builds a successful tool result and counts the call.
func (s *server) success(tool, msg string, data interface{}) *mcp.CallToolResult {
	metrics.ToolCallsTotal.WithLabelValues(tool, "success").Inc()
	return envelopeResult(&toolEnvelope{Msg: msg, Data: data}, false)
}

// failure converts a component error into a failure tool result. The error
// never propagates as a protocol-level crash; the caller sees IsError with
// the envelope carrying the message and kind.
func (s *server) failure(tool string, err error) *mcp.CallToolResult {
	kind := apperrors.Kind(err)
	metrics.ToolCallsTotal.WithLabelValues(tool, kind).Inc()
	s.logger.Error().Err(err).Str("tool", tool).Str("kind", kind).Msg("Tool call failed")
	captureFailure(tool, kind, err)
	return envelopeResult(&toolEnvelope{Error: 1, Msg: err.Error(), Kind: kind}, true)
}

// envelopeResult renders an envelope as both text and structured content.
func envelopeResult(env *toolEnvelope, isError bool) *mcp.CallToolResult {
	encoded, err := json.Marshal(env)
	if err != nil {
		// The replacement envelope must survive its own encoding, so the
		// unencodable data is dropped entirely.
		env = &toolEnvelope{Error: 1, Msg: "failed to encode tool result", Kind: "internal"}
		encoded = []byte(`{"error":1,"msg":"failed to encode tool result","kind":"internal"}`)
		isError = true
	}
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(encoded)}},
		StructuredContent: env,
		IsError:           isError,
	}
}

// captureFailure reports service faults to Sentry. Caller mistakes (bad
// arguments, missing files, unknown tasks, domain rejections) are expected
// traffic and stay out of error reporting. Without a configured DSN the
// capture is a no-op.
func captureFailure(tool, kind string, err error) {
	switch kind {
	case "internal", "gateway_timeout", "gateway_unreachable", "remote_rejected":
	default:
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("tool", tool)
		scope.SetTag("kind", kind)
		sentry.CaptureException(err)
	})
}
