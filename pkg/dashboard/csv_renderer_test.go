package dashboard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsvRenderer(t *testing.T) {
	t.Run("should render header, one row per budget line and totals", func(t *testing.T) {
		// given
		renderer := NewCsvRenderer()
		selection := Selection{NomeMunicipio: "Recife", Competencia: "202501"}
		rows := []ProcessedRow{
			{
				Recurso:               "Equipes de Saúde da Família",
				RecursoReal:           1000,
				PercaRecursoMensal:    100,
				RecursoPotencial:      1100,
				RecursoRealAnual:      12000,
				RecursoPotencialAnual: 13200,
				Diferenca:             1200,
			},
			{
				Recurso:          "Agentes Comunitários de Saúde",
				RecursoReal:      500,
				RecursoPotencial: 500,
				RecursoRealAnual: 6000,
			},
		}
		summary := FinancialSummary{
			TotalPercaMensal:    100,
			TotalDiferencaAnual: 1200,
			TotalRecebido:       1500,
		}

		// when
		result, err := renderer.RenderReport(selection, rows, summary)

		// then
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(result), "\n")
		require.Len(t, lines, 5)
		assert.Contains(t, lines[0], "Recife")
		assert.Contains(t, lines[0], "202501")
		assert.Contains(t, lines[1], "Recurso Real (Mensal)")
		assert.Equal(t, "Equipes de Saúde da Família,1000.00,100.00,1100.00,12000.00,13200.00,1200.00", lines[2])
		assert.Equal(t, "TOTAL,1500.00,100.00,1600.00,18000.00,19200.00,1200.00", lines[4])
	})

	t.Run("should render an empty report without rows", func(t *testing.T) {
		// given
		renderer := NewCsvRenderer()

		// when
		result, err := renderer.RenderReport(Selection{}, nil, FinancialSummary{})

		// then
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(result), "\n")
		assert.Len(t, lines, 3)
	})
}
