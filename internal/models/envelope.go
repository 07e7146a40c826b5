package models

import "encoding/json"

// Envelope represents the uniform response wrapper returned by every
// KlicStudio endpoint. Error is 0 on success; any other value is a
// domain-level failure explained by Msg.
type Envelope struct {
	Error int             `json:"error"`
	Msg   string          `json:"msg"`
	Data  json.RawMessage `json:"data"`
}

// OK reports whether the envelope carries a successful response.
func (e *Envelope) OK() bool {
	return e.Error == 0
}
