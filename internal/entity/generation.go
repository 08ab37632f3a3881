package entity

import "encoding/json"

// OutputSchema is a JSON Schema object describing the expected generation output
type OutputSchema map[string]any

type GenerationRequest struct {
	Model        string       `json:"model,omitempty"`
	PromptID     string       `json:"prompt_id"`
	Prompt       string       `json:"prompt"`
	OutputSchema OutputSchema `json:"output_schema"`
}

// GenerationResponse is the envelope returned by the generation service.
// Output stays raw until the stage that asked for it decodes it.
type GenerationResponse struct {
	Output json.RawMessage `json:"output"`
}

type ExcerptsOutput struct {
	Excerpts []string `json:"excerpts"`
}

type AnswerOutput struct {
	Answer string `json:"answer"`
}
