package analysis

import "encoding/json"

// Analysis is the scored result of a pitch. It is merged into a session and
// never persisted on its own.
type Analysis struct {
	Transcript     string   `json:"transcript"`
	OverallScore   int      `json:"overallScore"`
	ToneScore      int      `json:"toneScore"`
	ClarityScore   int      `json:"clarityScore"`
	StructureScore int      `json:"structureScore"`
	Feedback       string   `json:"feedback"`
	Suggestions    []string `json:"suggestions"`
}

// wireAnalysis mirrors the JSON shape the scorer is instructed to emit, with
// pointer fields so missing and mistyped fields are both detectable.
type wireAnalysis struct {
	Transcript     *string  `json:"transcript"`
	OverallScore   *float64 `json:"overallScore"`
	ToneScore      *float64 `json:"toneScore"`
	ClarityScore   *float64 `json:"clarityScore"`
	StructureScore *float64 `json:"structureScore"`
	Feedback       *string  `json:"feedback"`
	Suggestions    []string `json:"suggestions"`
}

// Parse decodes a scorer response and validates its shape: transcript and
// feedback must be strings, all four scores numbers, suggestions a list.
// Types only: the scorer is instructed to stay in 0-100 but out-of-range
// values are accepted here.
func Parse(raw string) (*Analysis, bool) {
	var w wireAnalysis
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return nil, false
	}
	if w.Transcript == nil || w.Feedback == nil || w.Suggestions == nil ||
		w.OverallScore == nil || w.ToneScore == nil || w.ClarityScore == nil || w.StructureScore == nil {
		return nil, false
	}
	return &Analysis{
		Transcript:     *w.Transcript,
		OverallScore:   int(*w.OverallScore),
		ToneScore:      int(*w.ToneScore),
		ClarityScore:   int(*w.ClarityScore),
		StructureScore: int(*w.StructureScore),
		Feedback:       *w.Feedback,
		Suggestions:    w.Suggestions,
	}, true
}

// Fallback is the deterministic substitute returned whenever the scorer is
// unreachable or responds with an invalid shape. The transcript is whatever
// text was submitted.
func Fallback(text string) *Analysis {
	return &Analysis{
		Transcript:     text,
		OverallScore:   75,
		ToneScore:      70,
		ClarityScore:   80,
		StructureScore: 70,
		Feedback:       "Your pitch shows good potential! Focus on adding more specific benefits and a stronger call to action. Practice your delivery to sound more confident and enthusiastic.",
		Suggestions: []string{
			"Add specific numbers or statistics to support your claims",
			"Include a clear call to action at the end",
			"Practice your opening to grab attention immediately",
			"Use more confident language and avoid filler words",
		},
	}
}
