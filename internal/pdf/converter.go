// Package pdf covers the PDF leg of the contract pipeline: DOCX conversion
// through a headless LibreOffice, the signature stamp overlay and the
// authenticity hash printed on it.
package pdf

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	appErrors "github.com/nexusmededucacao/nexusmed-contratos/pkg/errors"
)

// Converter turns a rendered DOCX into a PDF.
type Converter interface {
	ToPDF(ctx context.Context, docx []byte) ([]byte, error)
}

// SofficeConverter shells out to LibreOffice. Each conversion runs in its own
// scratch directory so concurrent generations never collide on output names.
type SofficeConverter struct {
	binary  string
	timeout time.Duration
}

var _ Converter = (*SofficeConverter)(nil)

// NewSofficeConverter builds a converter around the given binary (usually
// "soffice") with a per-conversion timeout.
func NewSofficeConverter(binary string, timeout time.Duration) *SofficeConverter {
	if binary == "" {
		binary = "soffice"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SofficeConverter{binary: binary, timeout: timeout}
}

// ToPDF writes the DOCX to a temp dir, invokes the converter and reads the
// resulting PDF back. Every failure mode maps to ErrConversion so the caller
// can surface a single upstream-converter error.
func (c *SofficeConverter) ToPDF(ctx context.Context, docx []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "contrato-conv-*")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrConversion.Code, appErrors.ErrConversion.Status, "prepare conversion workspace")
	}
	defer os.RemoveAll(dir)

	docxPath := filepath.Join(dir, "contrato.docx")
	if err := os.WriteFile(docxPath, docx, 0o600); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrConversion.Code, appErrors.ErrConversion.Status, "write conversion input")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.binary, "--headless", "--convert-to", "pdf", "--outdir", dir, docxPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, appErrors.Wrap(fmt.Errorf("%s: %w (%s)", c.binary, err, string(output)),
			appErrors.ErrConversion.Code, appErrors.ErrConversion.Status, appErrors.ErrConversion.Message)
	}

	pdfPath := filepath.Join(dir, "contrato.pdf")
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		// soffice exits 0 on some failures without producing output.
		return nil, appErrors.Wrap(err, appErrors.ErrConversion.Code, appErrors.ErrConversion.Status,
			"converter produced no PDF output")
	}
	return data, nil
}
