package services

import (
	"context"
)

// stubGemini fakes the completion service. Responses are returned in order;
// every call is recorded with its sampling settings.
type stubGemini struct {
	responses []string
	err       error
	calls     []stubCall
}

type stubCall struct {
	prompt      string
	temperature float32
	maxTokens   int32
}

func (s *stubGemini) GenerateText(_ context.Context, prompt string, temperature float32, maxTokens int32) (string, error) {
	s.calls = append(s.calls, stubCall{prompt: prompt, temperature: temperature, maxTokens: maxTokens})
	if s.err != nil {
		return "", s.err
	}

	idx := len(s.calls) - 1
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	if idx < 0 {
		return "", nil
	}
	return s.responses[idx], nil
}
