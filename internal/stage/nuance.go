package stage

// VideoNuance tunes avatar performance during synthesis. Zero values are
// never sent to the synthesizer; use VideoNuanceFrom to apply defaults.
type VideoNuance struct {
	MicroExpressionIntensity   float64 `json:"microExpressionIntensity"`
	VoiceInflectionVariability float64 `json:"voiceInflectionVariability"`
	NonVerbalCueFrequency      float64 `json:"nonVerbalCueFrequency"`
	EmotionalAuthenticity      float64 `json:"emotionalAuthenticity"`
	GestureComplexity          float64 `json:"gestureComplexity"`
	EyeContactPattern          string  `json:"eyeContactPattern"`
	BreathingPattern           string  `json:"breathingPattern"`
	PersonalityProjection      float64 `json:"personalityProjection"`
}

// EditNuance tunes post-production treatment of a synthesized video.
type EditNuance struct {
	VisualNuanceLevel    float64 `json:"visualNuanceLevel"`
	AudioNuanceLevel     float64 `json:"audioNuanceLevel"`
	CaptionAdaptability  float64 `json:"captionAdaptability"`
	EditingSubtlety      float64 `json:"editingSubtlety"`
	ColorGradingMood     string  `json:"colorGradingMood"`
	TransitionSmoothness float64 `json:"transitionSmoothness"`
	MusicSyncPrecision   float64 `json:"musicSyncPrecision"`
	EffectsIntensity     float64 `json:"effectsIntensity"`
}

// VideoNuanceFrom builds a VideoNuance from the free-form nuance bag stored
// in script metadata, falling back to the house defaults for anything the
// bag omits or types wrongly.
func VideoNuanceFrom(params map[string]any) VideoNuance {
	return VideoNuance{
		MicroExpressionIntensity:   floatParam(params, "microExpressionIntensity", 0.7),
		VoiceInflectionVariability: floatParam(params, "voiceInflectionVariability", 0.6),
		NonVerbalCueFrequency:      floatParam(params, "nonVerbalCueFrequency", 0.5),
		EmotionalAuthenticity:      floatParam(params, "emotionalAuthenticity", 0.8),
		GestureComplexity:          floatParam(params, "gestureComplexity", 0.6),
		EyeContactPattern:          stringParam(params, "eyeContactPattern", "natural"),
		BreathingPattern:           stringParam(params, "breathingPattern", "calm"),
		PersonalityProjection:      floatParam(params, "personalityProjection", 0.7),
	}
}

// EditNuanceFrom is the post-production counterpart of VideoNuanceFrom.
func EditNuanceFrom(params map[string]any) EditNuance {
	return EditNuance{
		VisualNuanceLevel:    floatParam(params, "visualNuanceLevel", 0.6),
		AudioNuanceLevel:     floatParam(params, "audioNuanceLevel", 0.7),
		CaptionAdaptability:  floatParam(params, "captionAdaptability", 0.8),
		EditingSubtlety:      floatParam(params, "editingSubtlety", 0.5),
		ColorGradingMood:     stringParam(params, "colorGradingMood", "warm"),
		TransitionSmoothness: floatParam(params, "transitionSmoothness", 0.7),
		MusicSyncPrecision:   floatParam(params, "musicSyncPrecision", 0.8),
		EffectsIntensity:     floatParam(params, "effectsIntensity", 0.4),
	}
}

// floatParam reads a numeric value from a JSON-decoded map. Decoded JSON
// numbers arrive as float64, but int shows up when the map was built in Go.
func floatParam(params map[string]any, key string, fallback float64) float64 {
	if params == nil {
		return fallback
	}
	switch v := params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return fallback
	}
}

func stringParam(params map[string]any, key string, fallback string) string {
	if params == nil {
		return fallback
	}
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
