package programs

import "github.com/davisxavier1984/papprefeito/pkg/funding"

// Status classifies a program card. Values are serialized in Portuguese to
// stay compatible with the dashboard frontend.
type Status string

const (
	StatusOk          Status = "ok"
	StatusDiscount    Status = "desconto"
	StatusAlert       Status = "alerta"
	StatusInactive    Status = "inativo"
	StatusOpportunity Status = "oportunidade"
)

// Code identifies a recognized program family.
type Code string

const (
	CodeEsfEap    Code = "esf-eap"
	CodeEsb       Code = "esb"
	CodeCeo       Code = "ceo"
	CodeSesb      Code = "sesb"
	CodeLrpd      Code = "lrpd"
	CodeEmulti    Code = "emulti"
	CodeAcs       Code = "acs"
	CodeDemais    Code = "demais"
	CodePerCapita Code = "percapita"
)

// QuantityBlock summarizes team counts against the credentialing ceiling.
type QuantityBlock struct {
	Credenciados int    `json:"credenciados,omitempty"`
	Homologados  int    `json:"homologados,omitempty"`
	Pagos        int    `json:"pagos,omitempty"`
	Teto         int    `json:"teto,omitempty"`
	Percentual   int    `json:"percentual,omitempty"`
	Detalhes     string `json:"detalhes"`
}

// ValueComponent is one named slice of a program's transferred value.
type ValueComponent struct {
	Nome  string  `json:"nome"`
	Valor float64 `json:"valor"`
}

// ProgramBreakdown is the display-ready decomposition of one program family.
type ProgramBreakdown struct {
	Codigo Code   `json:"codigo"`
	Nome   string `json:"nome"`
	Icone  string `json:"icone"`
	Cor    string `json:"cor"`

	Quantidades            QuantityBlock  `json:"quantidades"`
	QuantidadesSecundarias *QuantityBlock `json:"quantidadesSecundarias,omitempty"`

	VlIntegral         float64          `json:"vlIntegral,omitempty"`
	VlDesconto         float64          `json:"vlDesconto,omitempty"`
	PercentualDesconto float64          `json:"percentualDesconto,omitempty"`
	VlEfetivoRepasse   float64          `json:"vlEfetivoRepasse"`
	ComponentesValor   []ValueComponent `json:"componentesValor,omitempty"`

	Status Status `json:"status"`
	Badge  string `json:"badge"`

	Alertas       []string `json:"alertas,omitempty"`
	Oportunidades []string `json:"oportunidades,omitempty"`

	FaixaEquidade   string  `json:"faixaEquidade,omitempty"`
	Populacao       int     `json:"populacao,omitempty"`
	AnoReferencia   int     `json:"anoReferencia,omitempty"`
	PerCapitaMensal float64 `json:"perCapitaMensal,omitempty"`
}

// lineMatchers maps each program family to the predicate that locates its
// budget line in the published summary list. The association is data here so
// family lookup is not scattered through the decomposition code. Dental
// sub-cards (esb, ceo, sesb, lrpd) all hang off the Saúde Bucal line.
var lineMatchers = map[Code]func(funding.BudgetLineSummary) bool{
	CodeEsfEap:    matchLabel("Equipes de Saúde da Família"),
	CodeEsb:       matchLabel("Saúde Bucal"),
	CodeEmulti:    matchLabel("Multiprofissionais"),
	CodeAcs:       matchLabel("Agentes Comunitários"),
	CodeDemais:    matchLabel("Demais programas"),
	CodePerCapita: matchLabel("per capita"),
}
