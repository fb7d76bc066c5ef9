package services

import (
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/jakehazelwood1/ReCupid/internal/models"
)

//go:embed templates/*.tmpl
var reportTemplates embed.FS

// ReportRenderer formats evaluation records as HTML, both the per-candidate
// card shown in the live view and the standalone export document. Both go
// through the same card template and the same fit banding, so they cannot
// drift apart.
type ReportRenderer interface {
	RenderCandidate(filename string, evaluation *models.CandidateEvaluation) (string, error)
	RenderExport(jobDescription string, results []models.CandidateResult) (string, error)
}

type reportRenderer struct {
	templates *template.Template
}

func NewReportRenderer() (ReportRenderer, error) {
	tmpl, err := template.New("report").
		Funcs(template.FuncMap{"nl2br": nl2br}).
		ParseFS(reportTemplates, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report templates: %w", err)
	}

	return &reportRenderer{templates: tmpl}, nil
}

type candidateCard struct {
	Filename   string
	ScoreText  string
	Band       models.FitBand
	Evaluation models.CandidateEvaluation
}

type exportPage struct {
	JobDescription string
	Candidates     []candidateCard
}

// RenderCandidate implements ReportRenderer.
func (r *reportRenderer) RenderCandidate(filename string, evaluation *models.CandidateEvaluation) (string, error) {
	var out strings.Builder
	if err := r.templates.ExecuteTemplate(&out, "candidate-card", newCandidateCard(filename, *evaluation)); err != nil {
		return "", fmt.Errorf("failed to render candidate card: %w", err)
	}

	return out.String(), nil
}

// RenderExport implements ReportRenderer.
func (r *reportRenderer) RenderExport(jobDescription string, results []models.CandidateResult) (string, error) {
	page := exportPage{
		JobDescription: jobDescription,
		Candidates:     make([]candidateCard, 0, len(results)),
	}
	for _, result := range results {
		page.Candidates = append(page.Candidates, newCandidateCard(result.Filename, result.Evaluation))
	}

	var out strings.Builder
	if err := r.templates.ExecuteTemplate(&out, "export", page); err != nil {
		return "", fmt.Errorf("failed to render export: %w", err)
	}

	return out.String(), nil
}

func newCandidateCard(filename string, evaluation models.CandidateEvaluation) candidateCard {
	scoreText := "N/A"
	if evaluation.Score != nil {
		scoreText = strconv.Itoa(*evaluation.Score)
	}

	return candidateCard{
		Filename:   filename,
		ScoreText:  scoreText,
		Band:       models.BandForScore(evaluation.Score),
		Evaluation: evaluation,
	}
}

// nl2br escapes user text and turns its line breaks into <br> tags so the job
// description keeps its formatting in the export.
func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}
