package dashboard

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type CsvRenderer interface {
	RenderReport(selection Selection, rows []ProcessedRow, summary FinancialSummary) (string, error)
}

type CsvRendererImpl struct {
}

func NewCsvRenderer() *CsvRendererImpl {
	return &CsvRendererImpl{}
}

// RenderReport renders the processed budget lines and totals as CSV, one row
// per budget line plus a totals row.
func (r *CsvRendererImpl) RenderReport(selection Selection, rows []ProcessedRow, summary FinancialSummary) (string, error) {
	data := make([][]string, 0, len(rows)+3)
	data = append(data, []string{
		"Município", selection.NomeMunicipio, "Competência", selection.Competencia,
	})
	data = append(data, []string{
		"Recurso",
		"Recurso Real (Mensal)",
		"Perca Mensal",
		"Recurso Potencial (Mensal)",
		"Recurso Real (Anual)",
		"Recurso Potencial (Anual)",
		"Diferença (Anual)",
	})

	for _, row := range rows {
		data = append(data, []string{
			row.Recurso,
			formatValue(row.RecursoReal),
			formatValue(row.PercaRecursoMensal),
			formatValue(row.RecursoPotencial),
			formatValue(row.RecursoRealAnual),
			formatValue(row.RecursoPotencialAnual),
			formatValue(row.Diferenca),
		})
	}

	data = append(data, []string{
		"TOTAL",
		formatValue(summary.TotalRecebido),
		formatValue(summary.TotalPercaMensal),
		formatValue(summary.TotalRecebido + summary.TotalPercaMensal),
		formatValue(summary.TotalRecebido * 12),
		formatValue(summary.TotalRecebido*12 + summary.TotalDiferencaAnual),
		formatValue(summary.TotalDiferencaAnual),
	})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func formatValue(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
