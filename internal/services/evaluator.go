package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jakehazelwood1/ReCupid/internal/models"
)

const (
	// Low-variance setting: scoring is a judgment task that should be
	// repeatable across runs.
	evaluationTemperature = 0.3
	// Sized to the JSON schema the prompt asks for.
	evaluationMaxTokens = 700

	parseFailureSummary = "⚠️ Failed to parse AI response — invalid JSON format."
)

// EvaluatorService scores one candidate document against a job description.
// It never returns an error: any failure produces a degraded record with a
// nil score and an explanatory summary, and the batch moves on.
type EvaluatorService interface {
	Evaluate(ctx context.Context, cvText, jobDescription string) *models.CandidateEvaluation
}

type evaluatorService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	validate      *validator.Validate
	logger        *zap.Logger
}

func NewEvaluatorService(gemini GeminiService, log *zap.Logger) EvaluatorService {
	return &evaluatorService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		validate:      validator.New(),
		logger:        log,
	}
}

// Evaluate implements EvaluatorService.
func (e *evaluatorService) Evaluate(ctx context.Context, cvText, jobDescription string) *models.CandidateEvaluation {
	prompt := e.promptBuilder.BuildEvaluationPrompt(cvText, jobDescription)

	response, err := e.gemini.GenerateText(ctx, prompt, evaluationTemperature, evaluationMaxTokens)
	if err != nil {
		e.logger.Warn("evaluation call failed", zap.Error(err))
		return failedEvaluation(fmt.Sprintf("⚠️ Error calling the completion service: %v", err))
	}

	evaluation, err := e.parseEvaluation(response)
	if err != nil {
		e.logger.Warn("evaluation response rejected", zap.Error(err))
		return failedEvaluation(parseFailureSummary)
	}

	return evaluation
}

// parseEvaluation decodes the model reply into a CandidateEvaluation. A JSON
// syntax error, a missing score, and an out-of-range value are all the same
// malformed-output failure.
func (e *evaluatorService) parseEvaluation(response string) (*models.CandidateEvaluation, error) {
	var evaluation models.CandidateEvaluation
	if err := json.Unmarshal([]byte(extractJSON(response)), &evaluation); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	if evaluation.Score == nil {
		return nil, fmt.Errorf("response missing required score field")
	}

	if err := e.validate.Struct(&evaluation); err != nil {
		return nil, fmt.Errorf("response failed schema validation: %w", err)
	}

	if evaluation.Strengths == nil {
		evaluation.Strengths = []string{}
	}
	if evaluation.Weaknesses == nil {
		evaluation.Weaknesses = []string{}
	}

	return &evaluation, nil
}

func failedEvaluation(summary string) *models.CandidateEvaluation {
	return &models.CandidateEvaluation{
		Score:      nil,
		Summary:    summary,
		Overview:   "",
		Strengths:  []string{},
		Weaknesses: []string{},
	}
}

// extractJSON pulls the JSON payload out of text that might wrap it in
// markdown fences or stray prose.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}
