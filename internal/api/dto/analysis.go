package dto

// AnalysisDTO represents a pitch analysis in API responses
// Uses camelCase for frontend compatibility
type AnalysisDTO struct {
	Transcript     string   `json:"transcript"`
	OverallScore   int      `json:"overallScore"`
	ToneScore      int      `json:"toneScore"`
	ClarityScore   int      `json:"clarityScore"`
	StructureScore int      `json:"structureScore"`
	Feedback       string   `json:"feedback"`
	Suggestions    []string `json:"suggestions"`
}

// AnalyzeTextRequest represents a text analysis request
type AnalyzeTextRequest struct {
	Text string `json:"text" validate:"required"`
}

// TipsDTO represents the daily coaching tips response
type TipsDTO struct {
	Tips []string `json:"tips"`
}
