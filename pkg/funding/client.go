package funding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
)

// ErrNotFound is returned when the upstream report has no data for the
// requested municipality+competência combination.
var ErrNotFound = errors.New("no funding data for municipality and competência")

// Client fetches raw funding snapshots from the Ministry of Health
// financing API.
type Client interface {
	FetchSnapshot(ctx context.Context, codigoIbge string, competencia string) (*Snapshot, error)
}

type ClientImpl struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *ClientImpl {
	return &ClientImpl{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// apiResponse is the upstream payload shape. Payment records arrive with all
// fields optional and are normalized before leaving this package.
type apiResponse struct {
	Resumos    []BudgetLineSummary `json:"resumosPlanosOrcamentarios"`
	Pagamentos []RawPaymentDetail  `json:"pagamentos"`
}

// FetchSnapshot queries the payment report for a single competência.
// The API is queried with nuParcelaInicio == nuParcelaFim, the same way the
// official report page does for a single month.
func (c *ClientImpl) FetchSnapshot(ctx context.Context, codigoIbge string, competencia string) (*Snapshot, error) {
	if len(codigoIbge) < 6 {
		return nil, fmt.Errorf("codigo IBGE must have at least 6 digits: %q", codigoIbge)
	}

	params := url.Values{}
	params.Set("unidadeGeografica", "MUNICIPIO")
	params.Set("coUf", codigoIbge[:2])
	params.Set("coMunicipio", codigoIbge[:6])
	params.Set("nuParcelaInicio", competencia)
	params.Set("nuParcelaFim", competencia)
	params.Set("tipoRelatorio", "COMPLETO")

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "papprefeito-ConsultaDados/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("financing API returned non-OK status: %d", resp.StatusCode)
		log.Error(err)
		return nil, err
	}

	var response apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return nil, err
	}

	// The API answers 200 with empty arrays for unknown combinations.
	if len(response.Resumos) == 0 {
		return nil, ErrNotFound
	}

	pagamentos := make([]PaymentDetail, 0, len(response.Pagamentos))
	for _, raw := range response.Pagamentos {
		pagamentos = append(pagamentos, raw.Normalize())
	}

	return &Snapshot{
		CodigoIbge:  codigoIbge,
		Competencia: competencia,
		Resumos:     response.Resumos,
		Pagamentos:  pagamentos,
	}, nil
}
