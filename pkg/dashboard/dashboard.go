package dashboard

// Selection identifies what the user is currently looking at. Changing any
// part of it invalidates everything derived from the previous selection.
type Selection struct {
	UF            string `json:"uf,omitempty"`
	CodigoIbge    string `json:"codigo_ibge,omitempty"`
	NomeMunicipio string `json:"nome_municipio,omitempty"`
	Competencia   string `json:"competencia,omitempty"`
}

// ProcessedRow is one budget line enriched with the user's projected monthly
// loss. Annual figures project the monthly values over twelve transfers.
type ProcessedRow struct {
	Recurso               string  `json:"recurso"`
	RecursoReal           float64 `json:"recurso_real"`
	PercaRecursoMensal    float64 `json:"perca_recurso_mensal"`
	RecursoPotencial      float64 `json:"recurso_potencial"`
	RecursoRealAnual      float64 `json:"recurso_real_anual"`
	RecursoPotencialAnual float64 `json:"recurso_potencial_anual"`
	Diferenca             float64 `json:"diferenca"`
}

// FinancialSummary aggregates the processed rows for the header cards.
type FinancialSummary struct {
	TotalPercaMensal     float64 `json:"total_perca_mensal"`
	TotalDiferencaAnual  float64 `json:"total_diferenca_anual"`
	PercentualPerdaAnual float64 `json:"percentual_perda_anual"`
	TotalRecebido        float64 `json:"total_recebido"`
}
