package funding

// BudgetLineSummary is one budget line ("plano orçamentário") as published by
// the Ministry of Health for a municipality and competência. The identity
// net = gross + adjustment + discount is guaranteed upstream and never
// re-derived here.
type BudgetLineSummary struct {
	DsPlanoOrcamentario         string  `json:"dsPlanoOrcamentario"`
	VlIntegral                  float64 `json:"vlIntegral"`
	VlAjuste                    float64 `json:"vlAjuste"`
	VlDesconto                  float64 `json:"vlDesconto"`
	VlEfetivoRepasse            float64 `json:"vlEfetivoRepasse"`
	DsFaixaIndiceEquidadeEsfEap string  `json:"dsFaixaIndiceEquidadeEsfEap,omitempty"`
	QtPopulacao                 int     `json:"qtPopulacao,omitempty"`
}

// PaymentDetail is the normalized per-period payment record. Every field that
// the upstream API omits is already zero here; see RawPaymentDetail.Normalize.
type PaymentDetail struct {
	CoUf                        string `json:"coUf"`
	CoMunicipio                 string `json:"coMunicipio"`
	NoMunicipio                 string `json:"noMunicipio"`
	SgUf                        string `json:"sgUf"`
	NuCompetencia               string `json:"nuCompetencia"`
	DsFaixaIndiceEquidadeEsfEap string `json:"dsFaixaIndiceEquidadeEsfEap"`

	QtPopulacao           int `json:"qtPopulacao"`
	NuAnoRefPopulacaoIbge int `json:"nuAnoRefPopulacaoIbge"`

	// Equipes de Saúde da Família / Atenção Primária
	QtEsfCredenciado  int     `json:"qtEsfCredenciado"`
	QtEsfHomologado   int     `json:"qtEsfHomologado"`
	QtEsf100pcPgto    int     `json:"qtEsf100pcPgto"`
	QtTetoEsf         int     `json:"qtTetoEsf"`
	QtEapCredenciadas int     `json:"qtEapCredenciadas"`
	QtEapHomologado   int     `json:"qtEapHomologado"`
	QtTetoEap         int     `json:"qtTetoEap"`
	VlFixoEsf         float64 `json:"vlFixoEsf"`
	VlVinculoEsf      float64 `json:"vlVinculoEsf"`
	VlQualidadeEsf    float64 `json:"vlQualidadeEsf"`

	// Equipes Multiprofissionais
	QtEmultiCredenciadas               int     `json:"qtEmultiCredenciadas"`
	QtEmultiHomologado                 int     `json:"qtEmultiHomologado"`
	QtEmultiPagas                      int     `json:"qtEmultiPagas"`
	QtEmultiPagamentoEstrategica       int     `json:"qtEmultiPagamentoEstrategica"`
	QtEmultiPagasAtendRemoto           int     `json:"qtEmultiPagasAtendRemoto"`
	QtTetoEmultiComplementar           int     `json:"qtTetoEmultiComplementar"`
	QtTetoEmultiEstrategica            int     `json:"qtTetoEmultiEstrategica"`
	VlPagamentoEmultiCusteio           float64 `json:"vlPagamentoEmultiCusteio"`
	VlPagamentoEmultiQualidade         float64 `json:"vlPagamentoEmultiQualidade"`
	VlPagamentoEmultiAtendimentoRemoto float64 `json:"vlPagamentoEmultiAtendimentoRemoto"`

	// Agentes Comunitários de Saúde
	QtAcsDiretoCredenciado int `json:"qtAcsDiretoCredenciado"`
	QtAcsDiretoPgto        int `json:"qtAcsDiretoPgto"`
	QtTetoAcs              int `json:"qtTetoAcs"`

	// Saúde Bucal - equipes
	QtSb40hCredenciada                int     `json:"qtSb40hCredenciada"`
	QtSb40hHomologado                 int     `json:"qtSb40hHomologado"`
	QtSb40hDifCredenciada             int     `json:"qtSb40hDifCredenciada"`
	QtSbChDifHomologado               int     `json:"qtSbChDifHomologado"`
	QtTetoSb40h                       int     `json:"qtTetoSb40h"`
	QtTetoSbChDif                     int     `json:"qtTetoSbChDif"`
	QtSbPagamentoModalidadeI          int     `json:"qtSbPagamentoModalidadeI"`
	QtSbPagamentoModalidadeII         int     `json:"qtSbPagamentoModalidadeII"`
	QtSbPagamentoDifModalidade20Horas int     `json:"qtSbPagamentoDifModalidade20Horas"`
	QtSbPagamentoDifModalidade30Horas int     `json:"qtSbPagamentoDifModalidade30Horas"`
	QtSbEqpQuilombAssentModalI        int     `json:"qtSbEqpQuilombAssentModalI"`
	QtSbEqpQuilombAssentModalII       int     `json:"qtSbEqpQuilombAssentModalII"`
	QtSbEquipeImplantacao             int     `json:"qtSbEquipeImplantacao"`
	VlPagamentoEsb40h                 float64 `json:"vlPagamentoEsb40h"`
	VlPagamentoEsb40hQualidade        float64 `json:"vlPagamentoEsb40hQualidade"`
	VlPagamentoEsbChDiferenciada      float64 `json:"vlPagamentoEsbChDiferenciada"`
	VlPagamentoImplantacaoEsb40h      float64 `json:"vlPagamentoImplantacaoEsb40h"`

	// Saúde Bucal - unidades e serviços
	QtUomCredenciada          int     `json:"qtUomCredenciada"`
	QtUomHomologado           int     `json:"qtUomHomologado"`
	QtUomPgto                 int     `json:"qtUomPgto"`
	VlPagamentoUom            float64 `json:"vlPagamentoUom"`
	VlPagamentoUomImplantacao float64 `json:"vlPagamentoUomImplantacao"`
	VlPagamentoCeoMunicipal   float64 `json:"vlPagamentoCeoMunicipal"`
	VlPagamentoCeoEstadual    float64 `json:"vlPagamentoCeoEstadual"`
	VlPagamentoSesb           float64 `json:"vlPagamentoSesb"`
	VlPagamentoDesempenhoSesb float64 `json:"vlPagamentoDesempenhoSesb"`
	VlTotalPagamentoSesb      float64 `json:"vlTotalPagamentoSesb"`
	VlPagamentoLrpdMunicipal  float64 `json:"vlPagamentoLrpdMunicipal"`
	VlPagamentoLrpdEstadual   float64 `json:"vlPagamentoLrpdEstadual"`

	// Demais programas
	QtIafCredenciado           int `json:"qtIafCredenciado"`
	QtAcademiaSaudeCredenciado int `json:"qtAcademiaSaudeCredenciado"`
}

// Snapshot is the immutable raw funding data for one municipality+competência.
// It is never mutated after being built; consumers only read from it.
type Snapshot struct {
	CodigoIbge  string              `json:"codigo_ibge"`
	Competencia string              `json:"competencia"`
	Resumos     []BudgetLineSummary `json:"resumosPlanosOrcamentarios"`
	Pagamentos  []PaymentDetail     `json:"pagamentos"`
}

// Detail returns the period's detailed payment record, or nil when the
// upstream report carried none.
func (s *Snapshot) Detail() *PaymentDetail {
	if s == nil || len(s.Pagamentos) == 0 {
		return nil
	}
	return &s.Pagamentos[0]
}
