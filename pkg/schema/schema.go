package schema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// KeyValues is an insertion-ordered string mapping. It marshals to a JSON
// object whose keys keep the order they were set in.
type KeyValues = orderedmap.OrderedMap[string, string]

// AnalysisResult is the single response value of an image analysis. On
// failure only Error is set.
type AnalysisResult struct {
	Description     string           `json:"description,omitempty" jsonschema_description:"Free-text description returned by the vision model"`
	JSONPrompt      *KeyValues       `json:"jsonPrompt,omitempty" jsonschema_description:"Ordered key/value prompt for image generators"`
	ToonPrompt      string           `json:"toonPrompt,omitempty" jsonschema_description:"Cartoon style prompt"`
	DetailedPrompt  *PromptStructure `json:"detailedPrompt,omitempty" jsonschema_description:"Five-field detailed prompt"`
	CinematicPrompt string           `json:"cinematicPrompt,omitempty" jsonschema_description:"Cinematic prompt embedding the full description"`
	Error           string           `json:"error,omitempty" jsonschema_description:"Set only when the analysis failed"`
}

type PromptStructure struct {
	Action   string `json:"action"`
	Subject  string `json:"subject"`
	Style    string `json:"style"`
	Scene    string `json:"scene"`
	Elements string `json:"elements"`
}

// Failure builds a result carrying only an error message.
func Failure(msg string) AnalysisResult {
	return AnalysisResult{Error: msg}
}
