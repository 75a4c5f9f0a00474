package programs

import (
	"fmt"
	"math"
	"strings"

	"github.com/davisxavier1984/papprefeito/pkg/funding"
)

// Decompose turns the raw funding snapshot into per-program cards. It is a
// pure, total function: missing budget lines skip their family, a nil payment
// detail counts as all zeros, and it never fails.
func Decompose(resumos []funding.BudgetLineSummary, detail *funding.PaymentDetail) []ProgramBreakdown {
	if len(resumos) == 0 {
		return []ProgramBreakdown{}
	}

	var d funding.PaymentDetail
	if detail != nil {
		d = *detail
	}

	out := make([]ProgramBreakdown, 0, 8)

	if resumo := findLine(resumos, CodeEsfEap); resumo != nil {
		out = append(out, buildEsfEap(*resumo, d))
	}
	if resumo := findLine(resumos, CodeEsb); resumo != nil {
		out = append(out, buildDentalCards(*resumo, d)...)
	}
	if resumo := findLine(resumos, CodeEmulti); resumo != nil {
		out = append(out, buildEmulti(*resumo, d))
	}
	if resumo := findLine(resumos, CodeAcs); resumo != nil {
		out = append(out, buildAcs(*resumo, d))
	}
	if resumo := findLine(resumos, CodeDemais); resumo != nil {
		out = append(out, buildDemais(*resumo, d))
	}
	if resumo := findLine(resumos, CodePerCapita); resumo != nil {
		out = append(out, buildPerCapita(*resumo, d))
	}

	return out
}

// AggregateOpportunities collects opportunity messages across all programs,
// capped at maxShown entries with a "+N" summary line.
func AggregateOpportunities(breakdowns []ProgramBreakdown, maxShown int) []string {
	all := make([]string, 0)
	for _, b := range breakdowns {
		all = append(all, b.Oportunidades...)
	}
	if maxShown <= 0 || len(all) <= maxShown {
		return all
	}
	hidden := len(all) - maxShown
	capped := append([]string{}, all[:maxShown]...)
	return append(capped, fmt.Sprintf("+%d outras oportunidades", hidden))
}

func matchLabel(substring string) func(funding.BudgetLineSummary) bool {
	return func(r funding.BudgetLineSummary) bool {
		return strings.Contains(r.DsPlanoOrcamentario, substring)
	}
}

// findLine locates the budget line for a program family. A missing line means
// the family is simply absent from the report for this period.
func findLine(resumos []funding.BudgetLineSummary, code Code) *funding.BudgetLineSummary {
	matcher, ok := lineMatchers[code]
	if !ok {
		return nil
	}
	for i := range resumos {
		if matcher(resumos[i]) {
			return &resumos[i]
		}
	}
	return nil
}

// occupancyPercent is defined as 0 when the ceiling is 0, never NaN/Inf.
func occupancyPercent(credenciados, teto int) int {
	if teto <= 0 {
		return 0
	}
	return int(math.Round(float64(credenciados) / float64(teto) * 100))
}

func discountPercent(desconto, integral float64) float64 {
	if integral <= 0 {
		return 0
	}
	return math.Abs(desconto / integral * 100)
}

// statusFacts carries the inputs of the status classification. First matching
// rule wins: desconto, alerta, inativo, oportunidade, ok.
type statusFacts struct {
	desconto     float64
	alertas      []string
	repasse      float64
	credenciados int
	teto         int
	percentual   int
}

func classify(f statusFacts) Status {
	switch {
	case f.desconto < 0:
		return StatusDiscount
	case len(f.alertas) > 0:
		return StatusAlert
	case f.repasse == 0 && f.credenciados == 0:
		return StatusInactive
	case f.teto > 0 && f.percentual < 100:
		return StatusOpportunity
	default:
		return StatusOk
	}
}

func badgeFor(status Status) string {
	switch status {
	case StatusDiscount:
		return "⚠️ Desconto aplicado"
	case StatusAlert:
		return "⚠️ Acima do teto"
	case StatusInactive:
		return "❌ Sem credenciamento"
	case StatusOpportunity:
		return "💡 Oportunidade"
	default:
		return "✓ Ativo"
	}
}

func buildEsfEap(resumo funding.BudgetLineSummary, d funding.PaymentDetail) ProgramBreakdown {
	percentualEsf := occupancyPercent(d.QtEsfCredenciado, d.QtTetoEsf)
	percentualEap := occupancyPercent(d.QtEapCredenciadas, d.QtTetoEap)

	var alertas []string
	if d.QtEsfCredenciado > d.QtTetoEsf {
		alertas = append(alertas, fmt.Sprintf("%d equipes eSF acima do teto", d.QtEsfCredenciado-d.QtTetoEsf))
	}

	var oportunidades []string
	if vagas := d.QtTetoEsf - d.QtEsfCredenciado; vagas > 0 {
		oportunidades = append(oportunidades, fmt.Sprintf("Pode credenciar mais %d equipes eSF", vagas))
	}
	if vagas := d.QtTetoEap - d.QtEapCredenciadas; vagas > 0 {
		oportunidades = append(oportunidades, fmt.Sprintf("%d vagas eAP disponíveis", vagas))
	}

	var componentes []ValueComponent
	if d.VlFixoEsf > 0 {
		componentes = append(componentes, ValueComponent{Nome: "Fixo eSF", Valor: d.VlFixoEsf})
	}
	if d.VlVinculoEsf > 0 {
		componentes = append(componentes, ValueComponent{Nome: "Vínculo eSF", Valor: d.VlVinculoEsf})
	}
	if d.VlQualidadeEsf > 0 {
		componentes = append(componentes, ValueComponent{Nome: "Qualidade eSF", Valor: d.VlQualidadeEsf})
	}

	status := classify(statusFacts{
		desconto:     resumo.VlDesconto,
		alertas:      alertas,
		repasse:      resumo.VlEfetivoRepasse,
		credenciados: d.QtEsfCredenciado + d.QtEapCredenciadas,
		teto:         d.QtTetoEsf,
		percentual:   percentualEsf,
	})

	cor := "#22c55e"
	if status == StatusDiscount {
		cor = "#f59e0b"
	}

	return ProgramBreakdown{
		Codigo: CodeEsfEap,
		Nome:   "Equipes de Saúde da Família",
		Icone:  "👥",
		Cor:    cor,
		Quantidades: QuantityBlock{
			Credenciados: d.QtEsfCredenciado,
			Homologados:  d.QtEsfHomologado,
			Pagos:        d.QtEsf100pcPgto,
			Teto:         d.QtTetoEsf,
			Percentual:   percentualEsf,
			Detalhes:     fmt.Sprintf("%d credenciadas / %d teto (%d%%)", d.QtEsfCredenciado, d.QtTetoEsf, percentualEsf),
		},
		QuantidadesSecundarias: &QuantityBlock{
			Credenciados: d.QtEapCredenciadas,
			Teto:         d.QtTetoEap,
			Percentual:   percentualEap,
			Detalhes:     fmt.Sprintf("eAP: %d / %d", d.QtEapCredenciadas, d.QtTetoEap),
		},
		VlIntegral:         resumo.VlIntegral,
		VlDesconto:         resumo.VlDesconto,
		PercentualDesconto: discountPercent(resumo.VlDesconto, resumo.VlIntegral),
		VlEfetivoRepasse:   resumo.VlEfetivoRepasse,
		ComponentesValor:   componentes,
		Status:             status,
		Badge:              badgeFor(status),
		Alertas:            alertas,
		Oportunidades:      oportunidades,
		FaixaEquidade:      resumo.DsFaixaIndiceEquidadeEsfEap,
	}
}

// buildDentalCards expands the single Saúde Bucal budget line into up to four
// cards: teams (ESB), specialty centers (CEO), small-municipality specialty
// service (SESB) and prosthesis labs (LRPD). Value-only cards appear only when
// something was paid.
func buildDentalCards(resumo funding.BudgetLineSummary, d funding.PaymentDetail) []ProgramBreakdown {
	cards := make([]ProgramBreakdown, 0, 4)

	cards = append(cards, buildEsb(resumo, d))

	if card, ok := buildCeo(d); ok {
		cards = append(cards, card)
	}
	if card, ok := buildSesb(d); ok {
		cards = append(cards, card)
	}
	if card, ok := buildLrpd(d); ok {
		cards = append(cards, card)
	}

	return cards
}

func buildEsb(resumo funding.BudgetLineSummary, d funding.PaymentDetail) ProgramBreakdown {
	percentual := occupancyPercent(d.QtSb40hCredenciada, d.QtTetoSb40h)

	var oportunidades []string
	if vagas := d.QtTetoSb40h - d.QtSb40hCredenciada; vagas > 0 {
		oportunidades = append(oportunidades, fmt.Sprintf("Pode credenciar mais %d equipes 40h", vagas))
	}
	if d.QtTetoSbChDif > 0 {
		oportunidades = append(oportunidades, fmt.Sprintf("%d vagas CH diferenciada disponíveis", d.QtTetoSbChDif))
	}

	var componentes []ValueComponent
	if d.VlPagamentoEsb40h > 0 {
		componentes = append(componentes, ValueComponent{Nome: "ESB 40h", Valor: d.VlPagamentoEsb40h})
	}
	if d.VlPagamentoEsb40hQualidade > 0 {
		componentes = append(componentes, ValueComponent{Nome: "Qualidade", Valor: d.VlPagamentoEsb40hQualidade})
	}
	if d.VlPagamentoEsbChDiferenciada > 0 {
		componentes = append(componentes, ValueComponent{Nome: "CH Diferenciada", Valor: d.VlPagamentoEsbChDiferenciada})
	}
	if d.VlPagamentoImplantacaoEsb40h > 0 {
		componentes = append(componentes, ValueComponent{Nome: "Implantação", Valor: d.VlPagamentoImplantacaoEsb40h})
	}

	vlTotal := d.VlPagamentoEsb40h + d.VlPagamentoEsb40hQualidade +
		d.VlPagamentoEsbChDiferenciada + d.VlPagamentoImplantacaoEsb40h

	status := classify(statusFacts{
		desconto:     resumo.VlDesconto,
		repasse:      vlTotal,
		credenciados: d.QtSb40hCredenciada,
		teto:         d.QtTetoSb40h,
		percentual:   percentual,
	})

	cor := "#0ea5e9"
	if percentual == 100 {
		cor = "#22c55e"
	}

	badge := badgeFor(status)
	if status == StatusOk {
		badge = "✓ 100% recebido"
	}

	var secundarias *QuantityBlock
	if d.QtTetoSbChDif > 0 {
		secundarias = &QuantityBlock{
			Credenciados: d.QtSb40hDifCredenciada,
			Teto:         d.QtTetoSbChDif,
			Detalhes:     fmt.Sprintf("CH Diferenciada: %d / %d", d.QtSb40hDifCredenciada, d.QtTetoSbChDif),
		}
	}

	return ProgramBreakdown{
		Codigo: CodeEsb,
		Nome:   "ESB - Equipes de Saúde Bucal",
		Icone:  "🦷",
		Cor:    cor,
		Quantidades: QuantityBlock{
			Credenciados: d.QtSb40hCredenciada,
			Homologados:  d.QtSb40hHomologado,
			Pagos:        d.QtSbPagamentoModalidadeI + d.QtSbPagamentoModalidadeII,
			Teto:         d.QtTetoSb40h,
			Percentual:   percentual,
			Detalhes:     fmt.Sprintf("%d / %d teto (%d%%)", d.QtSb40hCredenciada, d.QtTetoSb40h, percentual),
		},
		QuantidadesSecundarias: secundarias,
		VlEfetivoRepasse:       vlTotal,
		ComponentesValor:       componentes,
		Status:                 status,
		Badge:                  badge,
		Oportunidades:          oportunidades,
	}
}

func buildCeo(d funding.PaymentDetail) (ProgramBreakdown, bool) {
	vlTotal := d.VlPagamentoCeoMunicipal + d.VlPagamentoCeoEstadual
	if vlTotal <= 0 {
		return ProgramBreakdown{}, false
	}

	var componentes []ValueComponent
	if d.VlPagamentoCeoMunicipal > 0 {
		componentes = append(componentes, ValueComponent{Nome: "CEO Municipal", Valor: d.VlPagamentoCeoMunicipal})
	}
	if d.VlPagamentoCeoEstadual > 0 {
		componentes = append(componentes, ValueComponent{Nome: "CEO Estadual", Valor: d.VlPagamentoCeoEstadual})
	}

	return ProgramBreakdown{
		Codigo: CodeCeo,
		Nome:   "CEO - Centro de Especialidades Odontológicas",
		Icone:  "🏥",
		Cor:    "#8b5cf6",
		Quantidades: QuantityBlock{
			Detalhes: splitDescription("CEO", d.VlPagamentoCeoMunicipal, d.VlPagamentoCeoEstadual),
		},
		VlEfetivoRepasse: vlTotal,
		ComponentesValor: componentes,
		Status:           StatusOk,
		Badge:            badgeFor(StatusOk),
	}, true
}

func buildSesb(d funding.PaymentDetail) (ProgramBreakdown, bool) {
	vlTotal := d.VlTotalPagamentoSesb
	if vlTotal == 0 {
		vlTotal = d.VlPagamentoSesb + d.VlPagamentoDesempenhoSesb
	}
	if vlTotal <= 0 {
		return ProgramBreakdown{}, false
	}

	var componentes []ValueComponent
	if d.VlPagamentoSesb > 0 {
		componentes = append(componentes, ValueComponent{Nome: "Pagamento", Valor: d.VlPagamentoSesb})
	}
	if d.VlPagamentoDesempenhoSesb > 0 {
		componentes = append(componentes, ValueComponent{Nome: "Desempenho", Valor: d.VlPagamentoDesempenhoSesb})
	}

	return ProgramBreakdown{
		Codigo: CodeSesb,
		Nome:   "SESB - Serviço de Especialidades em Saúde Bucal",
		Icone:  "🏥",
		Cor:    "#06b6d4",
		Quantidades: QuantityBlock{
			Detalhes: "Municípios elegíveis (até 20 mil habitantes)",
		},
		VlEfetivoRepasse: vlTotal,
		ComponentesValor: componentes,
		Status:           StatusOk,
		Badge:            badgeFor(StatusOk),
	}, true
}

func buildLrpd(d funding.PaymentDetail) (ProgramBreakdown, bool) {
	vlTotal := d.VlPagamentoLrpdMunicipal + d.VlPagamentoLrpdEstadual
	if vlTotal <= 0 {
		return ProgramBreakdown{}, false
	}

	var componentes []ValueComponent
	if d.VlPagamentoLrpdMunicipal > 0 {
		componentes = append(componentes, ValueComponent{Nome: "LRPD Municipal", Valor: d.VlPagamentoLrpdMunicipal})
	}
	if d.VlPagamentoLrpdEstadual > 0 {
		componentes = append(componentes, ValueComponent{Nome: "LRPD Estadual", Valor: d.VlPagamentoLrpdEstadual})
	}

	return ProgramBreakdown{
		Codigo: CodeLrpd,
		Nome:   "LRPD - Laboratório Regional de Prótese Dentária",
		Icone:  "🔬",
		Cor:    "#ec4899",
		Quantidades: QuantityBlock{
			Detalhes: splitDescription("LRPD", d.VlPagamentoLrpdMunicipal, d.VlPagamentoLrpdEstadual),
		},
		VlEfetivoRepasse: vlTotal,
		ComponentesValor: componentes,
		Status:           StatusOk,
		Badge:            badgeFor(StatusOk),
	}, true
}

func splitDescription(prefix string, municipal, estadual float64) string {
	switch {
	case municipal > 0 && estadual > 0:
		return prefix + " Municipal e Estadual"
	case municipal > 0:
		return prefix + " Municipal"
	default:
		return prefix + " Estadual"
	}
}

func buildEmulti(resumo funding.BudgetLineSummary, d funding.PaymentDetail) ProgramBreakdown {
	percentual := occupancyPercent(d.QtEmultiCredenciadas, d.QtTetoEmultiComplementar)

	var oportunidades []string
	if vagas := d.QtTetoEmultiEstrategica - d.QtEmultiPagamentoEstrategica; vagas > 0 {
		oportunidades = append(oportunidades, fmt.Sprintf("%d equipes estratégicas disponíveis", vagas))
	}

	var componentes []ValueComponent
	if d.VlPagamentoEmultiCusteio > 0 {
		componentes = append(componentes, ValueComponent{Nome: "Custeio", Valor: d.VlPagamentoEmultiCusteio})
	}
	if d.VlPagamentoEmultiQualidade > 0 {
		componentes = append(componentes, ValueComponent{Nome: "Qualidade", Valor: d.VlPagamentoEmultiQualidade})
	}
	if d.VlPagamentoEmultiAtendimentoRemoto > 0 {
		componentes = append(componentes, ValueComponent{Nome: "Atend. Remoto", Valor: d.VlPagamentoEmultiAtendimentoRemoto})
	}

	detalhes := fmt.Sprintf("%d / %d (Complementar)", d.QtEmultiCredenciadas, d.QtTetoEmultiComplementar)
	if d.QtEmultiPagasAtendRemoto > 0 {
		detalhes += fmt.Sprintf(" (%d com atend. remoto)", d.QtEmultiPagasAtendRemoto)
	}

	var secundarias *QuantityBlock
	if d.QtTetoEmultiEstrategica > 0 {
		secundarias = &QuantityBlock{
			Credenciados: d.QtEmultiPagamentoEstrategica,
			Teto:         d.QtTetoEmultiEstrategica,
			Percentual:   occupancyPercent(d.QtEmultiPagamentoEstrategica, d.QtTetoEmultiEstrategica),
			Detalhes:     fmt.Sprintf("Estratégica: %d / %d", d.QtEmultiPagamentoEstrategica, d.QtTetoEmultiEstrategica),
		}
	}

	status := classify(statusFacts{
		desconto:     resumo.VlDesconto,
		repasse:      resumo.VlEfetivoRepasse,
		credenciados: d.QtEmultiCredenciadas,
		teto:         d.QtTetoEmultiComplementar,
		percentual:   percentual,
	})

	return ProgramBreakdown{
		Codigo: CodeEmulti,
		Nome:   "Equipes Multiprofissionais",
		Icone:  "🏥",
		Cor:    "#22c55e",
		Quantidades: QuantityBlock{
			Credenciados: d.QtEmultiCredenciadas,
			Homologados:  d.QtEmultiHomologado,
			Pagos:        d.QtEmultiPagas,
			Teto:         d.QtTetoEmultiComplementar,
			Percentual:   percentual,
			Detalhes:     detalhes,
		},
		QuantidadesSecundarias: secundarias,
		VlIntegral:             resumo.VlIntegral,
		VlDesconto:             resumo.VlDesconto,
		PercentualDesconto:     discountPercent(resumo.VlDesconto, resumo.VlIntegral),
		VlEfetivoRepasse:       resumo.VlEfetivoRepasse,
		ComponentesValor:       componentes,
		Status:                 status,
		Badge:                  badgeFor(status),
		Oportunidades:          oportunidades,
	}
}

func buildAcs(resumo funding.BudgetLineSummary, d funding.PaymentDetail) ProgramBreakdown {
	percentual := occupancyPercent(d.QtAcsDiretoCredenciado, d.QtTetoAcs)
	acimaDoTeto := d.QtAcsDiretoCredenciado > d.QtTetoAcs

	var alertas []string
	if acimaDoTeto {
		alertas = append(alertas, fmt.Sprintf("%d agentes acima do teto", d.QtAcsDiretoCredenciado-d.QtTetoAcs))
	}
	if semPagamento := d.QtAcsDiretoCredenciado - d.QtAcsDiretoPgto; semPagamento > 0 {
		alertas = append(alertas, fmt.Sprintf("%d agentes credenciados sem pagamento", semPagamento))
	}

	var oportunidades []string
	if vagas := d.QtTetoAcs - d.QtAcsDiretoCredenciado; !acimaDoTeto && vagas > 0 {
		oportunidades = append(oportunidades, fmt.Sprintf("Pode credenciar mais %d agentes", vagas))
	}

	status := classify(statusFacts{
		desconto:     resumo.VlDesconto,
		alertas:      alertas,
		repasse:      resumo.VlEfetivoRepasse,
		credenciados: d.QtAcsDiretoCredenciado,
		teto:         d.QtTetoAcs,
		percentual:   percentual,
	})

	cor := "#22c55e"
	if acimaDoTeto {
		cor = "#ef4444"
	}

	return ProgramBreakdown{
		Codigo: CodeAcs,
		Nome:   "Agentes Comunitários de Saúde",
		Icone:  "🚶",
		Cor:    cor,
		Quantidades: QuantityBlock{
			Credenciados: d.QtAcsDiretoCredenciado,
			Pagos:        d.QtAcsDiretoPgto,
			Teto:         d.QtTetoAcs,
			Percentual:   percentual,
			Detalhes: fmt.Sprintf("%d credenciados / %d pagos / %d teto",
				d.QtAcsDiretoCredenciado, d.QtAcsDiretoPgto, d.QtTetoAcs),
		},
		VlEfetivoRepasse: resumo.VlEfetivoRepasse,
		Status:           status,
		Badge:            badgeFor(status),
		Alertas:          alertas,
		Oportunidades:    oportunidades,
	}
}

func buildDemais(resumo funding.BudgetLineSummary, d funding.PaymentDetail) ProgramBreakdown {
	var servicos []string
	if d.QtIafCredenciado > 0 {
		plural := ""
		if d.QtIafCredenciado > 1 {
			plural = "s"
		}
		servicos = append(servicos, fmt.Sprintf("IAF: %d credenciado%s", d.QtIafCredenciado, plural))
	}
	if d.QtUomCredenciada > 0 {
		servicos = append(servicos, fmt.Sprintf("UOM: %d", d.QtUomCredenciada))
	}
	if d.QtAcademiaSaudeCredenciado > 0 {
		servicos = append(servicos, fmt.Sprintf("Academia Saúde: %d", d.QtAcademiaSaudeCredenciado))
	}

	detalhes := "0 credenciados"
	if len(servicos) > 0 {
		detalhes = strings.Join(servicos, " | ")
	}

	credenciados := d.QtIafCredenciado + d.QtUomCredenciada + d.QtAcademiaSaudeCredenciado
	status := classify(statusFacts{
		desconto:     resumo.VlDesconto,
		repasse:      resumo.VlEfetivoRepasse,
		credenciados: credenciados,
	})

	cor := "#22c55e"
	if status == StatusInactive {
		cor = "#64748b"
	}

	return ProgramBreakdown{
		Codigo: CodeDemais,
		Nome:   "Demais Programas",
		Icone:  "⚙️",
		Cor:    cor,
		Quantidades: QuantityBlock{
			Detalhes: detalhes,
		},
		VlEfetivoRepasse: resumo.VlEfetivoRepasse,
		Status:           status,
		Badge:            badgeFor(status),
	}
}

func buildPerCapita(resumo funding.BudgetLineSummary, d funding.PaymentDetail) ProgramBreakdown {
	perCapitaMensal := 0.0
	if d.QtPopulacao > 0 {
		perCapitaMensal = resumo.VlEfetivoRepasse / float64(d.QtPopulacao)
	}

	return ProgramBreakdown{
		Codigo:          CodePerCapita,
		Nome:            "Componente per capita",
		Icone:           "👨‍👩‍👧‍👦",
		Cor:             "#0ea5e9",
		Populacao:       d.QtPopulacao,
		AnoReferencia:   d.NuAnoRefPopulacaoIbge,
		PerCapitaMensal: perCapitaMensal,
		Quantidades: QuantityBlock{
			Detalhes: fmt.Sprintf("População: %d habitantes", d.QtPopulacao),
		},
		VlEfetivoRepasse: resumo.VlEfetivoRepasse,
		Status:           StatusOk,
		Badge:            badgeFor(StatusOk),
	}
}
