package core

const (
	AppName       = "Lyla"
	AppUserAgent  = "Lyla/0.1"
	AppVersion    = "0.1.0"
)

// PromptRequest is what a front end hands to the model invoker: the
// transcript so far and the new question. Question is never blank.
type PromptRequest struct {
	Context  string `json:"context"`
	Question string `json:"question"`
}

// Model describes one model offered by a runtime.
type Model struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContextLength int    `json:"context_length,omitempty"`
}
