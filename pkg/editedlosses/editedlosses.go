package editedlosses

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no edited record exists for the requested
// municipality and competência.
var ErrNotFound = errors.New("edited municipality record not found")

// EditedMunicipality holds the projected monthly loss values a user entered
// for one municipality and competência. PercaRecursoMensal is positional: the
// value at index i belongs to budget line i of the funding report.
type EditedMunicipality struct {
	CodigoIbge         string    `json:"codigo_ibge"`
	Competencia        string    `json:"competencia"`
	PercaRecursoMensal []float64 `json:"perca_recurso_mensal"`
	DataEdicao         time.Time `json:"data_edicao"`
}
