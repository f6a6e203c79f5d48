package analysis

import "context"

// Client is the external speech and scoring collaborator
type Client interface {
	// Transcribe converts raw audio to text. May fail with a transport or
	// quota error.
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)

	// Score sends a scoring prompt and returns the raw completion text. May
	// fail with a transport error or return malformed content; callers treat
	// both identically.
	Score(ctx context.Context, prompt string) (string, error)
}

// Service defines the interface for the analysis pipeline
type Service interface {
	// AnalyzeAudio transcribes audio and scores the resulting text. A
	// transcription failure surfaces as an error; scoring failures do not
	// (see AnalyzeText).
	AnalyzeAudio(ctx context.Context, audio []byte) (*Analysis, error)

	// AnalyzeText scores pitch text. It never fails observably: any scorer
	// error or invalid response degrades to the deterministic fallback.
	AnalyzeText(ctx context.Context, text string) (*Analysis, error)

	// DailyTips returns a small random sample of coaching tips
	DailyTips(ctx context.Context) []string
}
