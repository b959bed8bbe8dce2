package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/unidoc/unioffice/common"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/measurement"
	"go.uber.org/zap"
)

// DocxRenderer fills the report template for one record. Placeholders use
// the {{key}} form and must each sit inside a single run; resolved images
// are appended after the template body, one paragraph per image.
type DocxRenderer struct {
	templatePath   string
	imageWidthInch float64
	logger         *zap.Logger
}

// NewDocxRenderer creates a new template renderer
func NewDocxRenderer(templatePath string, imageWidthInch float64, logger *zap.Logger) *DocxRenderer {
	if imageWidthInch <= 0 {
		imageWidthInch = 2.5
	}
	return &DocxRenderer{
		templatePath:   templatePath,
		imageWidthInch: imageWidthInch,
		logger:         logger,
	}
}

// Render substitutes the context into the template and returns DOCX bytes.
func (r *DocxRenderer) Render(rc RenderContext) ([]byte, error) {
	doc, err := document.Open(r.templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open template %s: %w", r.templatePath, err)
	}

	for _, para := range doc.Paragraphs() {
		r.fillParagraph(para, rc.Fields)
	}
	for _, tbl := range doc.Tables() {
		for _, row := range tbl.Rows() {
			for _, cell := range row.Cells() {
				for _, para := range cell.Paragraphs() {
					r.fillParagraph(para, rc.Fields)
				}
			}
		}
	}

	appended := 0
	for _, img := range rc.Images {
		if err := r.appendImage(doc, img.Data); err != nil {
			// A payload that passed the content-type check can still be
			// undecodable; skip it like any other bad image reference.
			r.logger.Debug("Skipping unembeddable image",
				zap.String("file_id", img.FileID),
				zap.Error(err))
			continue
		}
		appended++
	}

	if appended < len(rc.Images) {
		r.logger.Warn("Some images could not be embedded",
			zap.Int("resolved", len(rc.Images)),
			zap.Int("embedded", appended))
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, fmt.Errorf("failed to save rendered document: %w", err)
	}
	return buf.Bytes(), nil
}

// fillParagraph replaces {{key}} tokens in each run of a paragraph.
func (r *DocxRenderer) fillParagraph(para document.Paragraph, fields map[string]string) {
	for _, run := range para.Runs() {
		text := run.Text()
		if !strings.Contains(text, "{{") {
			continue
		}
		for key, value := range fields {
			text = strings.ReplaceAll(text, "{{"+key+"}}", value)
		}
		run.ClearContent()
		run.AddText(text)
	}
}

// appendImage adds one inline image in its own paragraph, scaled to the
// configured width with aspect ratio preserved.
func (r *DocxRenderer) appendImage(doc *document.Document, data []byte) error {
	img, err := common.ImageFromBytes(data)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	ref, err := doc.AddImage(img)
	if err != nil {
		return fmt.Errorf("failed to add image to document: %w", err)
	}

	para := doc.AddParagraph()
	run := para.AddRun()
	inline, err := run.AddDrawingInline(ref)
	if err != nil {
		return fmt.Errorf("failed to inline image: %w", err)
	}

	width := measurement.Distance(r.imageWidthInch * float64(measurement.Inch))
	height := width
	if img.Size.X > 0 {
		height = measurement.Distance(float64(width) * float64(img.Size.Y) / float64(img.Size.X))
	}
	inline.SetSize(width, height)

	return nil
}
