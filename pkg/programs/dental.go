package programs

import "github.com/davisxavier1984/papprefeito/pkg/funding"

// DentalTeams40h breaks down the 40-hour oral health teams by payment modality.
type DentalTeams40h struct {
	Credenciadas int `json:"credenciadas"`
	Homologadas  int `json:"homologadas"`
	ModalidadeI  int `json:"modalidadeI"`
	ModalidadeII int `json:"modalidadeII"`
}

// DentalTeamsChDif covers the reduced-workload (carga horária diferenciada)
// oral health teams.
type DentalTeamsChDif struct {
	Credenciadas  int `json:"credenciadas"`
	Homologadas   int `json:"homologadas"`
	Modalidade20h int `json:"modalidade20h"`
	Modalidade30h int `json:"modalidade30h"`
}

// DentalQuilombola counts teams serving quilombola and settlement communities.
type DentalQuilombola struct {
	ModalidadeI  int `json:"modalidadeI"`
	ModalidadeII int `json:"modalidadeII"`
}

// DentalTeamValues lists the payment components of the oral health teams.
type DentalTeamValues struct {
	Pagamento      float64 `json:"pagamento"`
	Qualidade      float64 `json:"qualidade"`
	ChDiferenciada float64 `json:"chDiferenciada"`
	Implantacao    float64 `json:"implantacao"`
}

type DentalEsb struct {
	Modalidade40h            DentalTeams40h   `json:"modalidade40h"`
	ChDiferenciada           DentalTeamsChDif `json:"chDiferenciada"`
	QuilombolasAssentamentos DentalQuilombola `json:"quilombolasAssentamentos"`
	Implantacao              int              `json:"implantacao"`
	Valores                  DentalTeamValues `json:"valores"`
}

type DentalUomValues struct {
	Pagamento   float64 `json:"pagamento"`
	Implantacao float64 `json:"implantacao"`
}

// DentalUom covers mobile dental units (Unidade Odontológica Móvel).
type DentalUom struct {
	Credenciadas int             `json:"credenciadas"`
	Homologadas  int             `json:"homologadas"`
	Pagas        int             `json:"pagas"`
	Valores      DentalUomValues `json:"valores"`
}

// DentalSplit is a municipal/state funding split.
type DentalSplit struct {
	Municipal float64 `json:"municipal"`
	Estadual  float64 `json:"estadual"`
}

type DentalTotals struct {
	VlTotal       float64 `json:"vlTotal"`
	QtTotalEquipe int     `json:"qtTotalEquipes"`
}

// DentalDetail is the full oral health drill-down behind the program cards.
type DentalDetail struct {
	Esb    DentalEsb    `json:"esb"`
	Uom    DentalUom    `json:"uom"`
	Ceo    DentalSplit  `json:"ceo"`
	Lrpd   DentalSplit  `json:"lrpd"`
	Totais DentalTotals `json:"totais"`
}

// DecomposeDentalDetail builds the oral health drill-down from the payment
// record. Returns nil when the period carried no detailed record.
func DecomposeDentalDetail(detail *funding.PaymentDetail) *DentalDetail {
	if detail == nil {
		return nil
	}
	d := *detail

	esb := DentalEsb{
		Modalidade40h: DentalTeams40h{
			Credenciadas: d.QtSb40hCredenciada,
			Homologadas:  d.QtSb40hHomologado,
			ModalidadeI:  d.QtSbPagamentoModalidadeI,
			ModalidadeII: d.QtSbPagamentoModalidadeII,
		},
		ChDiferenciada: DentalTeamsChDif{
			Credenciadas:  d.QtSb40hDifCredenciada,
			Homologadas:   d.QtSbChDifHomologado,
			Modalidade20h: d.QtSbPagamentoDifModalidade20Horas,
			Modalidade30h: d.QtSbPagamentoDifModalidade30Horas,
		},
		QuilombolasAssentamentos: DentalQuilombola{
			ModalidadeI:  d.QtSbEqpQuilombAssentModalI,
			ModalidadeII: d.QtSbEqpQuilombAssentModalII,
		},
		Implantacao: d.QtSbEquipeImplantacao,
		Valores: DentalTeamValues{
			Pagamento:      d.VlPagamentoEsb40h,
			Qualidade:      d.VlPagamentoEsb40hQualidade,
			ChDiferenciada: d.VlPagamentoEsbChDiferenciada,
			Implantacao:    d.VlPagamentoImplantacaoEsb40h,
		},
	}

	uom := DentalUom{
		Credenciadas: d.QtUomCredenciada,
		Homologadas:  d.QtUomHomologado,
		Pagas:        d.QtUomPgto,
		Valores: DentalUomValues{
			Pagamento:   d.VlPagamentoUom,
			Implantacao: d.VlPagamentoUomImplantacao,
		},
	}

	ceo := DentalSplit{Municipal: d.VlPagamentoCeoMunicipal, Estadual: d.VlPagamentoCeoEstadual}
	lrpd := DentalSplit{Municipal: d.VlPagamentoLrpdMunicipal, Estadual: d.VlPagamentoLrpdEstadual}

	vlTotal := esb.Valores.Pagamento + esb.Valores.Qualidade + esb.Valores.ChDiferenciada + esb.Valores.Implantacao +
		uom.Valores.Pagamento + uom.Valores.Implantacao +
		ceo.Municipal + ceo.Estadual +
		lrpd.Municipal + lrpd.Estadual

	qtTotalEquipes := esb.Modalidade40h.Credenciadas + esb.ChDiferenciada.Credenciadas +
		esb.QuilombolasAssentamentos.ModalidadeI + esb.QuilombolasAssentamentos.ModalidadeII +
		uom.Credenciadas

	return &DentalDetail{
		Esb:    esb,
		Uom:    uom,
		Ceo:    ceo,
		Lrpd:   lrpd,
		Totais: DentalTotals{VlTotal: vlTotal, QtTotalEquipe: qtTotalEquipes},
	}
}
