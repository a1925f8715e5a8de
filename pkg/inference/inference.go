package inference

import (
	"context"
	"encoding/base64"
)

// AnalysisPrompt is the instruction sent alongside every image.
const AnalysisPrompt = "Analyze this image in detail. Describe: " +
	"1. Main subjects and their characteristics " +
	"2. Setting and environment " +
	"3. Colors, lighting, and mood " +
	"4. Composition and style " +
	"5. Any notable details or elements"

// DefaultMaxTokens bounds the length of a description.
const DefaultMaxTokens = 500

// Describer turns raw image bytes into a free-text description.
type Describer interface {
	Describe(ctx context.Context, image []byte) (string, error)
}

// DataURI encodes image bytes as a base64 JPEG data URI. The media type is
// always image/jpeg regardless of the actual encoding.
func DataURI(image []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)
}
