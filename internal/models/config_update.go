package models

// LLMConfigUpdate carries the LLM settings to change on the service. Empty
// fields are left untouched; at least one must be set.
type LLMConfigUpdate struct {
	BaseURL string `json:"baseUrl,omitempty"`
	APIKey  string `json:"apiKey,omitempty"`
	Model   string `json:"model,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (u LLMConfigUpdate) Empty() bool {
	return u.BaseURL == "" && u.APIKey == "" && u.Model == ""
}

// Document builds the sparse configuration document to send to the service,
// containing only the llm section and only the provided fields.
func (u LLMConfigUpdate) Document() map[string]interface{} {
	llm := make(map[string]interface{}, 3)
	if u.BaseURL != "" {
		llm["baseUrl"] = u.BaseURL
	}
	if u.APIKey != "" {
		llm["apiKey"] = u.APIKey
	}
	if u.Model != "" {
		llm["model"] = u.Model
	}
	return map[string]interface{}{"llm": llm}
}
