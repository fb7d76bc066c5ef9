package services

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// DocumentExtractor converts an uploaded document into plain text. Extraction
// is strictly best-effort: corrupt files, password-protected files and
// unsupported extensions all yield an empty string, never an error.
type DocumentExtractor interface {
	ExtractText(filename string, data []byte) string
}

type documentExtractor struct {
	logger *zap.Logger
}

func NewDocumentExtractor(logger *zap.Logger) DocumentExtractor {
	return &documentExtractor{logger: logger}
}

// ExtractText implements DocumentExtractor.
func (e *documentExtractor) ExtractText(filename string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(filename))

	var text string
	switch ext {
	case ".pdf":
		text = e.extractPDF(filename, data)
	case ".docx":
		text = e.extractDOCX(filename, data)
	default:
		e.logger.Debug("unsupported document extension",
			zap.String("filename", filename),
			zap.String("extension", ext),
		)
		return ""
	}

	return strings.TrimSpace(text)
}

func (e *documentExtractor) extractPDF(filename string, data []byte) (text string) {
	// The pdf library panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("pdf extraction panicked",
				zap.String("filename", filename),
				zap.Any("panic", r),
			)
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.logger.Warn("failed to open pdf",
			zap.String("filename", filename),
			zap.Error(err),
		)
		return ""
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// A failing page contributes nothing; keep going.
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String()
}

var (
	docxTagPattern        = regexp.MustCompile(`<[^>]+>`)
	docxSpaceRunPattern   = regexp.MustCompile(`[ \t\r\f\v]+`)
	docxNewlineRunPattern = regexp.MustCompile(`\n+`)
)

func (e *documentExtractor) extractDOCX(filename string, data []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.logger.Warn("failed to open docx",
			zap.String("filename", filename),
			zap.Error(err),
		)
		return ""
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return ""
		}
		docXML, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return ""
		}
		break
	}

	if len(docXML) == 0 {
		e.logger.Warn("no document.xml found in docx", zap.String("filename", filename))
		return ""
	}

	// Paragraph and tab boundaries become whitespace before tags are
	// stripped, so the text keeps its line structure.
	content := string(docXML)
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:tab/>", "\t")
	content = docxTagPattern.ReplaceAllString(content, " ")

	content = strings.ReplaceAll(content, "\u00a0", " ")
	content = docxSpaceRunPattern.ReplaceAllString(content, " ")
	content = docxNewlineRunPattern.ReplaceAllString(content, "\n")

	return content
}
