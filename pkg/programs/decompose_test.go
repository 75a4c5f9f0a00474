package programs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davisxavier1984/papprefeito/pkg/funding"
)

func esfLine(integral, desconto, repasse float64) funding.BudgetLineSummary {
	return funding.BudgetLineSummary{
		DsPlanoOrcamentario: "Incentivo Financeiro - Equipes de Saúde da Família e Equipes de Atenção Primária",
		VlIntegral:          integral,
		VlDesconto:          desconto,
		VlEfetivoRepasse:    repasse,
	}
}

func findCard(t *testing.T, breakdowns []ProgramBreakdown, code Code) ProgramBreakdown {
	t.Helper()
	for _, b := range breakdowns {
		if b.Codigo == code {
			return b
		}
	}
	require.Failf(t, "missing program card", "no card with code %q", code)
	return ProgramBreakdown{}
}

func TestDecompose(t *testing.T) {
	t.Run("should return empty slice for empty budget lines", func(t *testing.T) {
		// when
		result := Decompose(nil, &funding.PaymentDetail{QtTetoEsf: 10})

		// then
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("should tolerate a nil payment detail", func(t *testing.T) {
		// given
		resumos := []funding.BudgetLineSummary{esfLine(1000, 0, 1000)}

		// when
		result := Decompose(resumos, nil)

		// then
		require.Len(t, result, 1)
		card := result[0]
		assert.Equal(t, CodeEsfEap, card.Codigo)
		assert.Equal(t, 0, card.Quantidades.Teto)
		assert.Equal(t, 0, card.Quantidades.Percentual)
	})

	t.Run("should skip families whose budget line is absent", func(t *testing.T) {
		// given
		resumos := []funding.BudgetLineSummary{esfLine(1000, 0, 1000)}

		// when
		result := Decompose(resumos, &funding.PaymentDetail{QtEsfCredenciado: 5, QtTetoEsf: 5})

		// then
		require.Len(t, result, 1)
		assert.Equal(t, CodeEsfEap, result[0].Codigo)
	})

	t.Run("should flag opportunity when credentialing is below the ceiling", func(t *testing.T) {
		// given
		resumos := []funding.BudgetLineSummary{esfLine(10000, 0, 10000)}
		detail := &funding.PaymentDetail{QtEsfCredenciado: 5, QtTetoEsf: 10}

		// when
		card := findCard(t, Decompose(resumos, detail), CodeEsfEap)

		// then
		assert.Equal(t, StatusOpportunity, card.Status)
		assert.Equal(t, 50, card.Quantidades.Percentual)
		require.Len(t, card.Oportunidades, 1)
		assert.Equal(t, "Pode credenciar mais 5 equipes eSF", card.Oportunidades[0])
		assert.Empty(t, card.Alertas)
	})

	t.Run("should alert when credentialed teams exceed the ceiling", func(t *testing.T) {
		// given
		resumos := []funding.BudgetLineSummary{esfLine(10000, 0, 10000)}
		detail := &funding.PaymentDetail{QtEsfCredenciado: 12, QtTetoEsf: 10}

		// when
		card := findCard(t, Decompose(resumos, detail), CodeEsfEap)

		// then
		assert.Equal(t, StatusAlert, card.Status)
		require.Len(t, card.Alertas, 1)
		assert.Equal(t, "2 equipes eSF acima do teto", card.Alertas[0])
		assert.Empty(t, card.Oportunidades)
	})

	t.Run("should rank discount above every other status", func(t *testing.T) {
		// given an over-ceiling municipality that also had a discount applied
		resumos := []funding.BudgetLineSummary{esfLine(10000, -1500, 8500)}
		detail := &funding.PaymentDetail{QtEsfCredenciado: 12, QtTetoEsf: 10}

		// when
		card := findCard(t, Decompose(resumos, detail), CodeEsfEap)

		// then
		assert.Equal(t, StatusDiscount, card.Status)
		assert.Equal(t, "⚠️ Desconto aplicado", card.Badge)
		assert.InDelta(t, 15.0, card.PercentualDesconto, 0.001)
		assert.Len(t, card.Alertas, 1)
	})

	t.Run("should mark family inactive when nothing is paid nor credentialed", func(t *testing.T) {
		// given
		resumos := []funding.BudgetLineSummary{esfLine(0, 0, 0)}

		// when
		card := findCard(t, Decompose(resumos, &funding.PaymentDetail{}), CodeEsfEap)

		// then
		assert.Equal(t, StatusInactive, card.Status)
		assert.Equal(t, "❌ Sem credenciamento", card.Badge)
	})

	t.Run("should report zero occupancy when the ceiling is zero", func(t *testing.T) {
		// given a payment with teams but no published ceiling
		resumos := []funding.BudgetLineSummary{esfLine(1000, 0, 1000)}
		detail := &funding.PaymentDetail{QtEsfCredenciado: 3, QtTetoEsf: 0}

		// when
		card := findCard(t, Decompose(resumos, detail), CodeEsfEap)

		// then
		assert.Equal(t, 0, card.Quantidades.Percentual)
		assert.Equal(t, StatusOk, card.Status)
	})

	t.Run("should alert on community agents credentialed without payment", func(t *testing.T) {
		// given
		resumos := []funding.BudgetLineSummary{{
			DsPlanoOrcamentario: "Agentes Comunitários de Saúde",
			VlIntegral:          5000,
			VlEfetivoRepasse:    5000,
		}}
		detail := &funding.PaymentDetail{QtAcsDiretoCredenciado: 8, QtAcsDiretoPgto: 6, QtTetoAcs: 10}

		// when
		card := findCard(t, Decompose(resumos, detail), CodeAcs)

		// then
		assert.Equal(t, StatusAlert, card.Status)
		require.Len(t, card.Alertas, 1)
		assert.Equal(t, "2 agentes credenciados sem pagamento", card.Alertas[0])
	})

	t.Run("should compute the monthly per capita transfer", func(t *testing.T) {
		// given
		resumos := []funding.BudgetLineSummary{{
			DsPlanoOrcamentario: "Incentivo Financeiro com base no critério populacional per capita",
			VlEfetivoRepasse:    50000,
		}}
		detail := &funding.PaymentDetail{QtPopulacao: 20000, NuAnoRefPopulacaoIbge: 2022}

		// when
		card := findCard(t, Decompose(resumos, detail), CodePerCapita)

		// then
		assert.InDelta(t, 2.5, card.PerCapitaMensal, 0.001)
		assert.Equal(t, 20000, card.Populacao)
		assert.Equal(t, 2022, card.AnoReferencia)
	})

	t.Run("should not divide per capita by a zero population", func(t *testing.T) {
		// given
		resumos := []funding.BudgetLineSummary{{
			DsPlanoOrcamentario: "per capita",
			VlEfetivoRepasse:    50000,
		}}

		// when
		card := findCard(t, Decompose(resumos, &funding.PaymentDetail{}), CodePerCapita)

		// then
		assert.Equal(t, 0.0, card.PerCapitaMensal)
	})
}

func TestDecomposeDentalCards(t *testing.T) {
	dentalLine := funding.BudgetLineSummary{
		DsPlanoOrcamentario: "Incentivo Financeiro da Saúde Bucal",
		VlIntegral:          20000,
		VlEfetivoRepasse:    20000,
	}

	t.Run("should emit only the team card when nothing else was paid", func(t *testing.T) {
		// given
		detail := &funding.PaymentDetail{QtSb40hCredenciada: 4, QtTetoSb40h: 4, VlPagamentoEsb40h: 20000}

		// when
		result := Decompose([]funding.BudgetLineSummary{dentalLine}, detail)

		// then
		require.Len(t, result, 1)
		assert.Equal(t, CodeEsb, result[0].Codigo)
	})

	t.Run("should badge fully occupied dental teams as fully received", func(t *testing.T) {
		// given
		detail := &funding.PaymentDetail{QtSb40hCredenciada: 4, QtTetoSb40h: 4, VlPagamentoEsb40h: 20000}

		// when
		card := findCard(t, Decompose([]funding.BudgetLineSummary{dentalLine}, detail), CodeEsb)

		// then
		assert.Equal(t, StatusOk, card.Status)
		assert.Equal(t, "✓ 100% recebido", card.Badge)
		assert.Equal(t, 100, card.Quantidades.Percentual)
	})

	t.Run("should emit specialty center and prosthesis lab cards when paid", func(t *testing.T) {
		// given
		detail := &funding.PaymentDetail{
			QtSb40hCredenciada:      4,
			QtTetoSb40h:             4,
			VlPagamentoEsb40h:       20000,
			VlPagamentoCeoMunicipal: 8000,
			VlPagamentoLrpdEstadual: 3000,
			VlTotalPagamentoSesb:    1200,
		}

		// when
		result := Decompose([]funding.BudgetLineSummary{dentalLine}, detail)

		// then
		require.Len(t, result, 4)
		ceo := findCard(t, result, CodeCeo)
		assert.Equal(t, 8000.0, ceo.VlEfetivoRepasse)
		sesb := findCard(t, result, CodeSesb)
		assert.Equal(t, 1200.0, sesb.VlEfetivoRepasse)
		lrpd := findCard(t, result, CodeLrpd)
		assert.Equal(t, 3000.0, lrpd.VlEfetivoRepasse)
	})
}

func TestAggregateOpportunities(t *testing.T) {
	t.Run("should keep every opportunity under the cap", func(t *testing.T) {
		// given
		breakdowns := []ProgramBreakdown{
			{Oportunidades: []string{"a", "b"}},
			{Oportunidades: []string{"c"}},
		}

		// when
		result := AggregateOpportunities(breakdowns, 5)

		// then
		assert.Equal(t, []string{"a", "b", "c"}, result)
	})

	t.Run("should cap the list and summarize the rest", func(t *testing.T) {
		// given
		breakdowns := []ProgramBreakdown{
			{Oportunidades: []string{"a", "b", "c"}},
			{Oportunidades: []string{"d", "e", "f", "g"}},
		}

		// when
		result := AggregateOpportunities(breakdowns, 5)

		// then
		require.Len(t, result, 6)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, result[:5])
		assert.Equal(t, "+2 outras oportunidades", result[5])
	})
}

func TestDecomposeDentalDetail(t *testing.T) {
	t.Run("should return nil without a payment record", func(t *testing.T) {
		assert.Nil(t, DecomposeDentalDetail(nil))
	})

	t.Run("should total values and teams across all dental services", func(t *testing.T) {
		// given
		detail := &funding.PaymentDetail{
			QtSb40hCredenciada:          3,
			QtSb40hDifCredenciada:       1,
			QtSbEqpQuilombAssentModalI:  1,
			QtSbEqpQuilombAssentModalII: 2,
			QtUomCredenciada:            1,
			VlPagamentoEsb40h:           10000,
			VlPagamentoEsb40hQualidade:  2000,
			VlPagamentoUom:              4000,
			VlPagamentoCeoMunicipal:     5000,
			VlPagamentoLrpdMunicipal:    1500,
		}

		// when
		result := DecomposeDentalDetail(detail)

		// then
		require.NotNil(t, result)
		assert.Equal(t, 22500.0, result.Totais.VlTotal)
		assert.Equal(t, 8, result.Totais.QtTotalEquipe)
		assert.Equal(t, 3, result.Esb.Modalidade40h.Credenciadas)
		assert.Equal(t, 1, result.Uom.Credenciadas)
	})
}
