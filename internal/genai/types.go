package genai

import "github.com/titanomni/omni/internal/shape"

// Content is a single conversational turn.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part is a text fragment within a content turn.
type Part struct {
	Text string `json:"text"`
}

// GenerationConfig holds the sampling parameters and output constraints
// for one generateContent call. Temperature and topP are pointers so an
// explicit 0 reaches the wire; nil leaves the model's own default.
type GenerationConfig struct {
	Temperature      *float64      `json:"temperature,omitempty"`
	TopP             *float64      `json:"topP,omitempty"`
	TopK             int           `json:"topK,omitempty"`
	MaxOutputTokens  int           `json:"maxOutputTokens,omitempty"`
	ResponseMIMEType string        `json:"responseMimeType,omitempty"`
	ResponseSchema   *shape.Schema `json:"responseSchema,omitempty"`
}

// GenerateRequest is the wire body of a generateContent call.
type GenerateRequest struct {
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// GenerateResponse is the wire body of a generateContent result. Only the
// fields this system reads are declared.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is a single model completion.
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// Text returns the first candidate's concatenated text parts, or "".
func (r GenerateResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var out string
	for _, p := range r.Candidates[0].Content.Parts {
		out += p.Text
	}
	return out
}
