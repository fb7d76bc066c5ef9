package services

import (
	"strings"

	_ "embed"
)

//go:embed evaluation_prompt.md
var evaluationPromptTemplate string

//go:embed followup_prompt.md
var followUpPromptTemplate string

// PromptBuilder renders the fixed natural-language templates sent to the
// completion service. Both builders are pure functions of their inputs; the
// job description and candidate text are interpolated verbatim.
type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildEvaluationPrompt creates the candidate-evaluation prompt. The template
// fixes the recruiter persona, the experience-comparison rules, the six
// evaluation dimensions and the strict JSON-only output contract.
func (pb *PromptBuilder) BuildEvaluationPrompt(cvText, jobDescription string) string {
	prompt := strings.ReplaceAll(evaluationPromptTemplate, "{{JOB_DESCRIPTION}}", jobDescription)
	return strings.ReplaceAll(prompt, "{{CV_TEXT}}", cvText)
}

// BuildFollowUpPrompt creates the follow-up-question prompt from the flagged
// weaknesses, rendered as one bullet line each.
func (pb *PromptBuilder) BuildFollowUpPrompt(weaknesses []string, jobDescription string) string {
	var list strings.Builder
	for _, weakness := range weaknesses {
		list.WriteString("- ")
		list.WriteString(weakness)
		list.WriteString("\n")
	}

	prompt := strings.ReplaceAll(followUpPromptTemplate, "{{JOB_DESCRIPTION}}", jobDescription)
	return strings.ReplaceAll(prompt, "{{WEAKNESSES}}", strings.TrimRight(list.String(), "\n"))
}
