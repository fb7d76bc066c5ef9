package models

// ScoreBreakdown holds the five fixed sub-scores the model is asked to return.
// The caps mirror the prompt contract; the sub-scores are not required to sum
// to Score.
type ScoreBreakdown struct {
	TechnicalFit          int `json:"technical_fit" validate:"min=0,max=40"`
	IndustryRelevance     int `json:"industry_relevance" validate:"min=0,max=20"`
	ImpactAndAchievements int `json:"impact_and_achievements" validate:"min=0,max=15"`
	CulturalFit           int `json:"cultural_fit" validate:"min=0,max=15"`
	CareerAlignment       int `json:"career_alignment" validate:"min=0,max=10"`
}

// CandidateEvaluation is the structured scoring record produced per uploaded
// document. On failure Score is nil and Summary carries a human-readable
// explanation instead of a recruiter paragraph.
type CandidateEvaluation struct {
	Score             *int            `json:"score" validate:"omitempty,min=0,max=100"`
	Breakdown         *ScoreBreakdown `json:"breakdown,omitempty"`
	Overview          string          `json:"overview"`
	Summary           string          `json:"summary"`
	Strengths         []string        `json:"strengths"`
	Weaknesses        []string        `json:"weaknesses"`
	Differentiator    string          `json:"differentiator,omitempty"`
	FollowUpQuestions []string        `json:"follow_up_questions,omitempty"`
}

// Failed reports whether the evaluation carries no usable score.
func (e *CandidateEvaluation) Failed() bool {
	return e.Score == nil
}

type FitBand string

const (
	FitStrong   FitBand = "strong-fit"
	FitModerate FitBand = "moderate-fit"
	FitWeak     FitBand = "weak-fit"
	FitNone     FitBand = "no-score"
)

// BandForScore maps a score to its qualitative fit band. The thresholds are
// shared by the live view and the export so the two can never disagree:
// nil -> no score, >=80 strong, 60-79 moderate, otherwise weak.
func BandForScore(score *int) FitBand {
	switch {
	case score == nil:
		return FitNone
	case *score >= 80:
		return FitStrong
	case *score >= 60:
		return FitModerate
	default:
		return FitWeak
	}
}

// Banner returns the user-facing label for the band.
func (b FitBand) Banner() string {
	switch b {
	case FitStrong:
		return "✅ Strong fit for the role"
	case FitModerate:
		return "🟡 Moderate fit for the role"
	case FitWeak:
		return "⚠️ Weak fit for the role"
	default:
		return "❌ No score available"
	}
}

// CSSClass returns the style hook shared by the live card and the export.
func (b FitBand) CSSClass() string {
	return string(b)
}
