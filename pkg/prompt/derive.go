package prompt

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"imageprompt/pkg/schema"
)

const toonTemplate = "Create a cartoon style illustration of %s. " +
	"Style: Pixar animation style, vibrant colors, expressive characters, " +
	"smooth gradients, family-friendly aesthetic. " +
	"Scene: %s with whimsical elements and playful atmosphere. " +
	"Additional: cel-shaded rendering, character-focused composition, " +
	"dynamic poses, exaggerated features for emotional expression"

const cinematicTemplate = "Cinematic shot: %s | " +
	"Cinematography: anamorphic lens, shallow depth of field, " +
	"color grading like Christopher Nolan films | " +
	"Mood: dramatic lighting, high contrast, film grain | " +
	"Technical: 65mm film, IMAX quality, lens flares, " +
	"cinematic aspect ratio 2.39:1 | " +
	"Post-processing: color correction, film emulation"

// JSON builds the key/value prompt. Keys are emitted in a fixed order.
func JSON(description string) *schema.KeyValues {
	kv := orderedmap.New[string, string]()
	kv.Set("action", "generate")
	kv.Set("subject", ExtractSubject(description))
	kv.Set("style", "photorealistic, high detail, 8k resolution")
	kv.Set("scene", ExtractScene(description))
	kv.Set("additionalElements", ExtractElements(description))
	kv.Set("lighting", "natural lighting, golden hour")
	kv.Set("camera", "wide angle lens, rule of thirds composition")
	return kv
}

func Toon(description string) string {
	return fmt.Sprintf(toonTemplate, ExtractSubject(description), ExtractScene(description))
}

func Detailed(description string) *schema.PromptStructure {
	return &schema.PromptStructure{
		Action:   "Create a highly detailed digital artwork",
		Subject:  ExtractSubject(description),
		Style:    "hyperrealistic digital painting, octane render, unreal engine 5",
		Scene:    ExtractScene(description) + " with atmospheric depth",
		Elements: ExtractElements(description) + ", volumetric fog, ray tracing, ambient occlusion",
	}
}

// Cinematic embeds the whole description, not the extracted fragments.
func Cinematic(description string) string {
	return fmt.Sprintf(cinematicTemplate, description)
}

// Derive computes every prompt for a description.
func Derive(description string) schema.AnalysisResult {
	return schema.AnalysisResult{
		Description:     description,
		JSONPrompt:      JSON(description),
		ToonPrompt:      Toon(description),
		DetailedPrompt:  Detailed(description),
		CinematicPrompt: Cinematic(description),
	}
}
