package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduleDataset() Dataset {
	return Dataset{
		Title:    "Detalhamento do Saldo",
		Subtitle: "Contrato DERMA-2026.1",
		Headers:  []string{"Parc.", "Vencimento", "Valor", "Forma"},
		Rows: []map[string]string{
			{"Parc.": "1/2", "Vencimento": "10/01/2026", "Valor": "R$ 500,00", "Forma": "Boleto/Pix"},
			{"Parc.": "2/2", "Vencimento": "10/02/2026", "Valor": "R$ 500,00", "Forma": "Boleto/Pix"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(scheduleDataset())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Parc.,Vencimento,Valor,Forma", lines[0])
	assert.Contains(t, lines[1], "10/01/2026")
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(scheduleDataset())
	require.NoError(t, err)
	assert.True(t, len(out) > 0)
	assert.Equal(t, "%PDF", string(out[:4]))
}
