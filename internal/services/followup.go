package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	// Higher variance than the evaluation call: question diversity is
	// wanted here.
	followUpTemperature = 0.7
	followUpMaxTokens   = 150
)

// FollowUpService turns a candidate's flagged weaknesses into suggested
// interview questions. With no weaknesses there is nothing to probe, so the
// completion service is not called at all.
type FollowUpService interface {
	Generate(ctx context.Context, weaknesses []string, jobDescription string) []string
}

type followUpService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	logger        *zap.Logger
}

func NewFollowUpService(gemini GeminiService, log *zap.Logger) FollowUpService {
	return &followUpService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		logger:        log,
	}
}

// Generate implements FollowUpService.
func (f *followUpService) Generate(ctx context.Context, weaknesses []string, jobDescription string) []string {
	if len(weaknesses) == 0 {
		return []string{}
	}

	prompt := f.promptBuilder.BuildFollowUpPrompt(weaknesses, jobDescription)

	response, err := f.gemini.GenerateText(ctx, prompt, followUpTemperature, followUpMaxTokens)
	if err != nil {
		f.logger.Warn("follow-up call failed", zap.Error(err))
		return []string{fmt.Sprintf("⚠️ Failed to generate follow-up questions: %v", err)}
	}

	return splitQuestions(response)
}

// splitQuestions is a lenient line-oriented parser for the freeform bullet
// list the model returns. The service is asked for exactly three questions
// but is not contractually bound to that, so callers must tolerate more or
// fewer.
func splitQuestions(text string) []string {
	questions := []string{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•–")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		questions = append(questions, line)
	}

	return questions
}
