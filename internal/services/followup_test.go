package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGenerateNoWeaknessesSkipsServiceCall(t *testing.T) {
	stub := &stubGemini{responses: []string{"should never be returned"}}
	followUps := NewFollowUpService(stub, zap.NewNop())

	questions := followUps.Generate(context.Background(), nil, "jd")

	assert.Empty(t, questions)
	assert.Empty(t, stub.calls, "no model call for an empty weaknesses list")

	questions = followUps.Generate(context.Background(), []string{}, "jd")
	assert.Empty(t, questions)
	assert.Empty(t, stub.calls)
}

func TestGenerateSplitsBulletList(t *testing.T) {
	stub := &stubGemini{responses: []string{
		"- How have you handled production incidents without Kubernetes experience?\n" +
			"* Could you describe a time you led a small team?\n" +
			"\n" +
			"• What steps are you taking to close your cloud skills gap?",
	}}
	followUps := NewFollowUpService(stub, zap.NewNop())

	questions := followUps.Generate(context.Background(), []string{"No Kubernetes"}, "jd")

	require.Len(t, questions, 3)
	assert.Equal(t, "How have you handled production incidents without Kubernetes experience?", questions[0])
	assert.Equal(t, "Could you describe a time you led a small team?", questions[1])
	assert.Equal(t, "What steps are you taking to close your cloud skills gap?", questions[2])
}

func TestGenerateSamplingSettings(t *testing.T) {
	stub := &stubGemini{responses: []string{"- one question"}}
	followUps := NewFollowUpService(stub, zap.NewNop())

	followUps.Generate(context.Background(), []string{"gap"}, "platform role")

	require.Len(t, stub.calls, 1)
	assert.Equal(t, float32(0.7), stub.calls[0].temperature)
	assert.Equal(t, int32(150), stub.calls[0].maxTokens)
	assert.Contains(t, stub.calls[0].prompt, "- gap")
	assert.Contains(t, stub.calls[0].prompt, "platform role")
}

func TestGenerateToleratesNonThreeLineReplies(t *testing.T) {
	stub := &stubGemini{responses: []string{"- only one came back"}}
	followUps := NewFollowUpService(stub, zap.NewNop())

	questions := followUps.Generate(context.Background(), []string{"gap"}, "jd")

	assert.Equal(t, []string{"only one came back"}, questions)
}

func TestGenerateServiceFailure(t *testing.T) {
	stub := &stubGemini{err: errors.New("connection refused")}
	followUps := NewFollowUpService(stub, zap.NewNop())

	questions := followUps.Generate(context.Background(), []string{"gap"}, "jd")

	require.Len(t, questions, 1)
	assert.Contains(t, questions[0], "Failed to generate follow-up questions")
	assert.Contains(t, questions[0], "connection refused")
}

func TestSplitQuestions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"dash bullets", "- a\n- b", []string{"a", "b"}},
		{"mixed markers", "* a\n• b\n– c", []string{"a", "b", "c"}},
		{"blank lines dropped", "a\n\n\nb\n", []string{"a", "b"}},
		{"indented bullets", "  - a\n\t- b", []string{"a", "b"}},
		{"plain lines kept", "no marker here", []string{"no marker here"}},
		{"empty input", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitQuestions(tt.input))
		})
	}
}
