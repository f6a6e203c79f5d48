package client

import "context"

// AnalysisService handles sessionless analysis API calls
type AnalysisService struct {
	client *Client
}

// AnalyzeTextRequest represents a text analysis request
type AnalyzeTextRequest struct {
	Text string `json:"text"`
}

// AnalyzeText scores raw pitch text. No session is created and no quota is
// consumed.
func (s *AnalysisService) AnalyzeText(ctx context.Context, text string) (*Analysis, error) {
	var analysis Analysis
	err := s.client.doRequest(ctx, "POST", "/api/v1/analyze-text", &AnalyzeTextRequest{Text: text}, &analysis)
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

// Tips retrieves the daily coaching tips
func (s *AnalysisService) Tips(ctx context.Context) ([]string, error) {
	var result struct {
		Tips []string `json:"tips"`
	}
	if err := s.client.doRequest(ctx, "GET", "/api/v1/tips", nil, &result); err != nil {
		return nil, err
	}
	return result.Tips, nil
}
