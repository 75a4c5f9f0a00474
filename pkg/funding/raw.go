package funding

// RawPaymentDetail mirrors PaymentDetail with optional fields, exactly as the
// upstream API serializes it. The report omits every field that does not apply
// to the municipality, so all numeric fields are pointers here and collapse to
// zero in a single normalization step instead of being defaulted at each use
// site.
type RawPaymentDetail struct {
	CoUf                        *string `json:"coUf"`
	CoMunicipio                 *string `json:"coMunicipio"`
	NoMunicipio                 *string `json:"noMunicipio"`
	SgUf                        *string `json:"sgUf"`
	NuCompetencia               *string `json:"nuCompetencia"`
	DsFaixaIndiceEquidadeEsfEap *string `json:"dsFaixaIndiceEquidadeEsfEap"`

	QtPopulacao           *int `json:"qtPopulacao"`
	NuAnoRefPopulacaoIbge *int `json:"nuAnoRefPopulacaoIbge"`

	QtEsfCredenciado  *int     `json:"qtEsfCredenciado"`
	QtEsfHomologado   *int     `json:"qtEsfHomologado"`
	QtEsf100pcPgto    *int     `json:"qtEsf100pcPgto"`
	QtTetoEsf         *int     `json:"qtTetoEsf"`
	QtEapCredenciadas *int     `json:"qtEapCredenciadas"`
	QtEapHomologado   *int     `json:"qtEapHomologado"`
	QtTetoEap         *int     `json:"qtTetoEap"`
	VlFixoEsf         *float64 `json:"vlFixoEsf"`
	VlVinculoEsf      *float64 `json:"vlVinculoEsf"`
	VlQualidadeEsf    *float64 `json:"vlQualidadeEsf"`

	QtEmultiCredenciadas               *int     `json:"qtEmultiCredenciadas"`
	QtEmultiHomologado                 *int     `json:"qtEmultiHomologado"`
	QtEmultiPagas                      *int     `json:"qtEmultiPagas"`
	QtEmultiPagamentoEstrategica       *int     `json:"qtEmultiPagamentoEstrategica"`
	QtEmultiPagasAtendRemoto           *int     `json:"qtEmultiPagasAtendRemoto"`
	QtTetoEmultiComplementar           *int     `json:"qtTetoEmultiComplementar"`
	QtTetoEmultiEstrategica            *int     `json:"qtTetoEmultiEstrategica"`
	VlPagamentoEmultiCusteio           *float64 `json:"vlPagamentoEmultiCusteio"`
	VlPagamentoEmultiQualidade         *float64 `json:"vlPagamentoEmultiQualidade"`
	VlPagamentoEmultiAtendimentoRemoto *float64 `json:"vlPagamentoEmultiAtendimentoRemoto"`

	QtAcsDiretoCredenciado *int `json:"qtAcsDiretoCredenciado"`
	QtAcsDiretoPgto        *int `json:"qtAcsDiretoPgto"`
	QtTetoAcs              *int `json:"qtTetoAcs"`

	QtSb40hCredenciada                *int     `json:"qtSb40hCredenciada"`
	QtSb40hHomologado                 *int     `json:"qtSb40hHomologado"`
	QtSb40hDifCredenciada             *int     `json:"qtSb40hDifCredenciada"`
	QtSbChDifHomologado               *int     `json:"qtSbChDifHomologado"`
	QtTetoSb40h                       *int     `json:"qtTetoSb40h"`
	QtTetoSbChDif                     *int     `json:"qtTetoSbChDif"`
	QtSbPagamentoModalidadeI          *int     `json:"qtSbPagamentoModalidadeI"`
	QtSbPagamentoModalidadeII         *int     `json:"qtSbPagamentoModalidadeII"`
	QtSbPagamentoDifModalidade20Horas *int     `json:"qtSbPagamentoDifModalidade20Horas"`
	QtSbPagamentoDifModalidade30Horas *int     `json:"qtSbPagamentoDifModalidade30Horas"`
	QtSbEqpQuilombAssentModalI        *int     `json:"qtSbEqpQuilombAssentModalI"`
	QtSbEqpQuilombAssentModalII       *int     `json:"qtSbEqpQuilombAssentModalII"`
	QtSbEquipeImplantacao             *int     `json:"qtSbEquipeImplantacao"`
	VlPagamentoEsb40h                 *float64 `json:"vlPagamentoEsb40h"`
	VlPagamentoEsb40hQualidade        *float64 `json:"vlPagamentoEsb40hQualidade"`
	VlPagamentoEsbChDiferenciada      *float64 `json:"vlPagamentoEsbChDiferenciada"`
	VlPagamentoImplantacaoEsb40h      *float64 `json:"vlPagamentoImplantacaoEsb40h"`

	QtUomCredenciada          *int     `json:"qtUomCredenciada"`
	QtUomHomologado           *int     `json:"qtUomHomologado"`
	QtUomPgto                 *int     `json:"qtUomPgto"`
	VlPagamentoUom            *float64 `json:"vlPagamentoUom"`
	VlPagamentoUomImplantacao *float64 `json:"vlPagamentoUomImplantacao"`
	VlPagamentoCeoMunicipal   *float64 `json:"vlPagamentoCeoMunicipal"`
	VlPagamentoCeoEstadual    *float64 `json:"vlPagamentoCeoEstadual"`
	VlPagamentoSesb           *float64 `json:"vlPagamentoSesb"`
	VlPagamentoDesempenhoSesb *float64 `json:"vlPagamentoDesempenhoSesb"`
	VlTotalPagamentoSesb      *float64 `json:"vlTotalPagamentoSesb"`
	VlPagamentoLrpdMunicipal  *float64 `json:"vlPagamentoLrpdMunicipal"`
	VlPagamentoLrpdEstadual   *float64 `json:"vlPagamentoLrpdEstadual"`

	QtIafCredenciado           *int `json:"qtIafCredenciado"`
	QtAcademiaSaudeCredenciado *int `json:"qtAcademiaSaudeCredenciado"`
}

// Normalize maps every absent field to its zero value. This is the only place
// where "field missing" and "field is zero" are conflated; everything
// downstream works with plain values.
func (r RawPaymentDetail) Normalize() PaymentDetail {
	return PaymentDetail{
		CoUf:                        strOrEmpty(r.CoUf),
		CoMunicipio:                 strOrEmpty(r.CoMunicipio),
		NoMunicipio:                 strOrEmpty(r.NoMunicipio),
		SgUf:                        strOrEmpty(r.SgUf),
		NuCompetencia:               strOrEmpty(r.NuCompetencia),
		DsFaixaIndiceEquidadeEsfEap: strOrEmpty(r.DsFaixaIndiceEquidadeEsfEap),

		QtPopulacao:           intOrZero(r.QtPopulacao),
		NuAnoRefPopulacaoIbge: intOrZero(r.NuAnoRefPopulacaoIbge),

		QtEsfCredenciado:  intOrZero(r.QtEsfCredenciado),
		QtEsfHomologado:   intOrZero(r.QtEsfHomologado),
		QtEsf100pcPgto:    intOrZero(r.QtEsf100pcPgto),
		QtTetoEsf:         intOrZero(r.QtTetoEsf),
		QtEapCredenciadas: intOrZero(r.QtEapCredenciadas),
		QtEapHomologado:   intOrZero(r.QtEapHomologado),
		QtTetoEap:         intOrZero(r.QtTetoEap),
		VlFixoEsf:         floatOrZero(r.VlFixoEsf),
		VlVinculoEsf:      floatOrZero(r.VlVinculoEsf),
		VlQualidadeEsf:    floatOrZero(r.VlQualidadeEsf),

		QtEmultiCredenciadas:               intOrZero(r.QtEmultiCredenciadas),
		QtEmultiHomologado:                 intOrZero(r.QtEmultiHomologado),
		QtEmultiPagas:                      intOrZero(r.QtEmultiPagas),
		QtEmultiPagamentoEstrategica:       intOrZero(r.QtEmultiPagamentoEstrategica),
		QtEmultiPagasAtendRemoto:           intOrZero(r.QtEmultiPagasAtendRemoto),
		QtTetoEmultiComplementar:           intOrZero(r.QtTetoEmultiComplementar),
		QtTetoEmultiEstrategica:            intOrZero(r.QtTetoEmultiEstrategica),
		VlPagamentoEmultiCusteio:           floatOrZero(r.VlPagamentoEmultiCusteio),
		VlPagamentoEmultiQualidade:         floatOrZero(r.VlPagamentoEmultiQualidade),
		VlPagamentoEmultiAtendimentoRemoto: floatOrZero(r.VlPagamentoEmultiAtendimentoRemoto),

		QtAcsDiretoCredenciado: intOrZero(r.QtAcsDiretoCredenciado),
		QtAcsDiretoPgto:        intOrZero(r.QtAcsDiretoPgto),
		QtTetoAcs:              intOrZero(r.QtTetoAcs),

		QtSb40hCredenciada:                intOrZero(r.QtSb40hCredenciada),
		QtSb40hHomologado:                 intOrZero(r.QtSb40hHomologado),
		QtSb40hDifCredenciada:             intOrZero(r.QtSb40hDifCredenciada),
		QtSbChDifHomologado:               intOrZero(r.QtSbChDifHomologado),
		QtTetoSb40h:                       intOrZero(r.QtTetoSb40h),
		QtTetoSbChDif:                     intOrZero(r.QtTetoSbChDif),
		QtSbPagamentoModalidadeI:          intOrZero(r.QtSbPagamentoModalidadeI),
		QtSbPagamentoModalidadeII:         intOrZero(r.QtSbPagamentoModalidadeII),
		QtSbPagamentoDifModalidade20Horas: intOrZero(r.QtSbPagamentoDifModalidade20Horas),
		QtSbPagamentoDifModalidade30Horas: intOrZero(r.QtSbPagamentoDifModalidade30Horas),
		QtSbEqpQuilombAssentModalI:        intOrZero(r.QtSbEqpQuilombAssentModalI),
		QtSbEqpQuilombAssentModalII:       intOrZero(r.QtSbEqpQuilombAssentModalII),
		QtSbEquipeImplantacao:             intOrZero(r.QtSbEquipeImplantacao),
		VlPagamentoEsb40h:                 floatOrZero(r.VlPagamentoEsb40h),
		VlPagamentoEsb40hQualidade:        floatOrZero(r.VlPagamentoEsb40hQualidade),
		VlPagamentoEsbChDiferenciada:      floatOrZero(r.VlPagamentoEsbChDiferenciada),
		VlPagamentoImplantacaoEsb40h:      floatOrZero(r.VlPagamentoImplantacaoEsb40h),

		QtUomCredenciada:          intOrZero(r.QtUomCredenciada),
		QtUomHomologado:           intOrZero(r.QtUomHomologado),
		QtUomPgto:                 intOrZero(r.QtUomPgto),
		VlPagamentoUom:            floatOrZero(r.VlPagamentoUom),
		VlPagamentoUomImplantacao: floatOrZero(r.VlPagamentoUomImplantacao),
		VlPagamentoCeoMunicipal:   floatOrZero(r.VlPagamentoCeoMunicipal),
		VlPagamentoCeoEstadual:    floatOrZero(r.VlPagamentoCeoEstadual),
		VlPagamentoSesb:           floatOrZero(r.VlPagamentoSesb),
		VlPagamentoDesempenhoSesb: floatOrZero(r.VlPagamentoDesempenhoSesb),
		VlTotalPagamentoSesb:      floatOrZero(r.VlTotalPagamentoSesb),
		VlPagamentoLrpdMunicipal:  floatOrZero(r.VlPagamentoLrpdMunicipal),
		VlPagamentoLrpdEstadual:   floatOrZero(r.VlPagamentoLrpdEstadual),

		QtIafCredenciado:           intOrZero(r.QtIafCredenciado),
		QtAcademiaSaudeCredenciado: intOrZero(r.QtAcademiaSaudeCredenciado),
	}
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func strOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
