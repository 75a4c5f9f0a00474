package municipality

// UF is one Brazilian federative unit.
type UF struct {
	Codigo string `json:"codigo"`
	Nome   string `json:"nome"`
	Sigla  string `json:"sigla"`
}

// Municipality identifies a municipality by its 6-digit IBGE code, the format
// the funding API expects.
type Municipality struct {
	CodigoIbge string `json:"codigo_ibge"`
	Nome       string `json:"nome"`
	UF         string `json:"uf"`
}

// fallbackUFs is the full list of federative units, served when the IBGE
// localities API is unreachable. The set is stable enough to hardcode.
var fallbackUFs = []UF{
	{Codigo: "12", Nome: "Acre", Sigla: "AC"},
	{Codigo: "27", Nome: "Alagoas", Sigla: "AL"},
	{Codigo: "16", Nome: "Amapá", Sigla: "AP"},
	{Codigo: "13", Nome: "Amazonas", Sigla: "AM"},
	{Codigo: "29", Nome: "Bahia", Sigla: "BA"},
	{Codigo: "23", Nome: "Ceará", Sigla: "CE"},
	{Codigo: "53", Nome: "Distrito Federal", Sigla: "DF"},
	{Codigo: "32", Nome: "Espírito Santo", Sigla: "ES"},
	{Codigo: "52", Nome: "Goiás", Sigla: "GO"},
	{Codigo: "21", Nome: "Maranhão", Sigla: "MA"},
	{Codigo: "51", Nome: "Mato Grosso", Sigla: "MT"},
	{Codigo: "50", Nome: "Mato Grosso do Sul", Sigla: "MS"},
	{Codigo: "31", Nome: "Minas Gerais", Sigla: "MG"},
	{Codigo: "15", Nome: "Pará", Sigla: "PA"},
	{Codigo: "25", Nome: "Paraíba", Sigla: "PB"},
	{Codigo: "41", Nome: "Paraná", Sigla: "PR"},
	{Codigo: "26", Nome: "Pernambuco", Sigla: "PE"},
	{Codigo: "22", Nome: "Piauí", Sigla: "PI"},
	{Codigo: "33", Nome: "Rio de Janeiro", Sigla: "RJ"},
	{Codigo: "24", Nome: "Rio Grande do Norte", Sigla: "RN"},
	{Codigo: "43", Nome: "Rio Grande do Sul", Sigla: "RS"},
	{Codigo: "11", Nome: "Rondônia", Sigla: "RO"},
	{Codigo: "14", Nome: "Roraima", Sigla: "RR"},
	{Codigo: "42", Nome: "Santa Catarina", Sigla: "SC"},
	{Codigo: "35", Nome: "São Paulo", Sigla: "SP"},
	{Codigo: "28", Nome: "Sergipe", Sigla: "SE"},
	{Codigo: "17", Nome: "Tocantins", Sigla: "TO"},
}

// FallbackUFs returns a copy of the static federative unit list.
func FallbackUFs() []UF {
	return append([]UF{}, fallbackUFs...)
}

// IsValidUF reports whether the given sigla is a known federative unit.
func IsValidUF(sigla string) bool {
	for _, uf := range fallbackUFs {
		if uf.Sigla == sigla {
			return true
		}
	}
	return false
}
