package report

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConverterConfig holds PDF conversion configuration
type ConverterConfig struct {
	ScratchDir     string        // empty means os.TempDir()
	ConverterBin   string        // e.g. "soffice"
	ConvertTimeout time.Duration
}

// PDFConverter converts rendered DOCX bytes to PDF by shelling out to a
// headless office converter. Scratch files are uniquely named per call and
// removed best-effort on every exit path.
type PDFConverter struct {
	cfg    ConverterConfig
	logger *zap.Logger
}

// NewPDFConverter creates a new PDF converter
func NewPDFConverter(cfg ConverterConfig, logger *zap.Logger) *PDFConverter {
	return &PDFConverter{
		cfg:    cfg,
		logger: logger,
	}
}

// Convert writes docx to a scratch file, runs the converter, and reads the
// produced PDF back into memory.
func (c *PDFConverter) Convert(ctx context.Context, docx []byte) ([]byte, error) {
	scratchDir := c.cfg.ScratchDir
	if scratchDir == "" {
		scratchDir = os.TempDir()
	}

	name := uuid.NewString()
	docxPath := filepath.Join(scratchDir, name+".docx")
	pdfPath := filepath.Join(scratchDir, name+".pdf")

	if err := os.WriteFile(docxPath, docx, 0644); err != nil {
		return nil, fmt.Errorf("failed to write scratch document: %w", err)
	}
	defer c.cleanup(docxPath, pdfPath)

	if c.cfg.ConvertTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.ConvertTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.cfg.ConverterBin,
		"--headless", "--convert-to", "pdf", "--outdir", scratchDir, docxPath)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("pdf conversion failed: %w: %s", err, string(output))
	}

	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read converted pdf: %w", err)
	}

	if err := Inspect(pdf); err != nil {
		return nil, fmt.Errorf("converted pdf failed inspection: %w", err)
	}

	return pdf, nil
}

// cleanup removes scratch files. Failures are logged and swallowed; a
// leftover scratch file must never fail an export.
func (c *PDFConverter) cleanup(paths ...string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			c.logger.Debug("Failed to remove scratch file",
				zap.String("path", p),
				zap.Error(err))
		}
	}
}
