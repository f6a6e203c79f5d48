package services

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/UnatyNomsa/pitchpal/internal/domain/analysis"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/errors"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/logger"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/metrics"
)

// transcriptionLanguage is the fixed language hint sent with every
// transcription request.
const transcriptionLanguage = "en"

// dailyTipCount is how many tips a single request returns
const dailyTipCount = 3

var coachingTips = []string{
	"Start with a compelling hook that addresses your prospect's pain point",
	"Use the 'Problem-Agitation-Solution' framework for maximum impact",
	"Practice your pitch with a timer - aim for 2-3 minutes maximum",
	"Include social proof and specific examples to build credibility",
	"End with a clear, specific call to action",
	"Record yourself and listen back to identify areas for improvement",
	"Use power words like 'transform', 'breakthrough', 'proven', 'guaranteed'",
	"Match your prospect's communication style and pace",
	"Ask qualifying questions to engage your prospect",
	"Practice handling common objections confidently",
}

// AnalysisService implements analysis.Service
type AnalysisService struct {
	ai     analysis.Client
	logger *logger.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(ai analysis.Client, log *logger.Logger) analysis.Service {
	return &AnalysisService{
		ai:     ai,
		logger: log,
	}
}

// AnalyzeAudio transcribes the audio and scores the resulting text. A
// transcription failure is a hard error; once transcription succeeds the text
// path takes over, which never fails.
func (s *AnalysisService) AnalyzeAudio(ctx context.Context, audio []byte) (*analysis.Analysis, error) {
	s.logger.Debugf("Transcribing %d bytes of audio", len(audio))

	text, err := s.ai.Transcribe(ctx, audio, transcriptionLanguage)
	if err != nil {
		s.logger.ErrorWithErr(err, "Transcription failed")
		metrics.RecordAnalysis("audio", "transcription_error")
		return nil, errors.UpstreamUnavailable("transcription", err)
	}

	return s.AnalyzeText(ctx, text)
}

// AnalyzeText scores pitch text. Scorer transport errors, unparseable
// responses, and shape-invalid responses all degrade to the deterministic
// fallback; this method never returns an error.
func (s *AnalysisService) AnalyzeText(ctx context.Context, text string) (*analysis.Analysis, error) {
	raw, err := s.ai.Score(ctx, scoringPrompt(text))
	if err != nil {
		s.logger.WithError(err).Warn("Scoring call failed, using fallback analysis")
		metrics.RecordAnalysis("text", "fallback")
		return analysis.Fallback(text), nil
	}

	a, ok := analysis.Parse(raw)
	if !ok {
		s.logger.Warn("Scorer returned an invalid shape, using fallback analysis")
		metrics.RecordAnalysis("text", "fallback")
		return analysis.Fallback(text), nil
	}

	metrics.RecordAnalysis("text", "scored")
	return a, nil
}

// DailyTips returns a random sample of the coaching tip pool
func (s *AnalysisService) DailyTips(ctx context.Context) []string {
	shuffled := make([]string, len(coachingTips))
	copy(shuffled, coachingTips)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:dailyTipCount]
}

// scoringPrompt builds the instruction that pins the scorer to the fixed JSON
// shape the validation gate expects.
func scoringPrompt(text string) string {
	return fmt.Sprintf(`
You are an expert sales coach. Analyze this sales pitch and provide detailed feedback.

Sales Pitch: %q

Please provide your analysis in the following JSON format:
{
  "transcript": %q,
  "overallScore": <number 0-100>,
  "toneScore": <number 0-100>,
  "clarityScore": <number 0-100>,
  "structureScore": <number 0-100>,
  "feedback": "<detailed feedback paragraph>",
  "suggestions": ["<specific suggestion 1>", "<specific suggestion 2>", "<specific suggestion 3>"]
}

Scoring criteria:
- Overall Score: General effectiveness and persuasiveness
- Tone Score: Confidence, enthusiasm, professionalism
- Clarity Score: Clear communication, easy to understand
- Structure Score: Logical flow, clear value proposition, call to action

Provide 3-5 specific, actionable suggestions for improvement.
`, text, text)
}
