package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/nexusmededucacao/nexusmed-contratos/internal/format"
	appErrors "github.com/nexusmededucacao/nexusmed-contratos/pkg/errors"
)

// Stamp carries the audit data rendered onto every page of a signed
// contract.
type Stamp struct {
	SignedAt   time.Time
	SignerName string
	SignerCPF  string
	SignerIP   string
	Hash       string
}

// Text is the two-line footer: the human line and the technical line.
func (s Stamp) Text() string {
	return fmt.Sprintf("Assinado eletronicamente por %s (CPF: %s) em %s\nIP: %s | Hash: %s",
		s.SignerName,
		format.CPF(s.SignerCPF),
		s.SignedAt.Format("02/01/2006 15:04:05"),
		s.SignerIP,
		s.Hash,
	)
}

// watermark description: small grey Helvetica near the bottom center of each
// page, translucent so it never obscures contract text.
const stampDesc = "font:Helvetica, points:8, scale:1 abs, pos:bc, off:0 20, fillc:#808080, op:0.5, rot:0"

// ApplyStamp merges the signature footer onto every page of the PDF and
// returns the stamped document.
func ApplyStamp(pdf []byte, stamp Stamp) ([]byte, error) {
	wm, err := api.TextWatermark(stamp.Text(), stampDesc, true, false, types.POINTS)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrConversion.Code, appErrors.ErrConversion.Status,
			"build signature stamp")
	}

	var out bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(pdf), &out, nil, wm, nil); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrConversion.Code, appErrors.ErrConversion.Status,
			"apply signature stamp")
	}
	return out.Bytes(), nil
}
