package municipality

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// Client fetches federative units and municipalities from the IBGE
// localities API.
type Client interface {
	FetchUFs(ctx context.Context) ([]UF, error)
	FetchMunicipalities(ctx context.Context, ufSigla string) ([]Municipality, error)
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

type ufPayload struct {
	ID    int    `json:"id"`
	Sigla string `json:"sigla"`
	Nome  string `json:"nome"`
}

type municipalityPayload struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
}

func (c *ClientImpl) FetchUFs(ctx context.Context) ([]UF, error) {
	var payload []ufPayload
	if err := c.get(ctx, c.baseURL+"/estados?orderBy=nome", &payload); err != nil {
		return nil, err
	}

	ufs := make([]UF, 0, len(payload))
	for _, entry := range payload {
		ufs = append(ufs, UF{
			Codigo: strconv.Itoa(entry.ID),
			Nome:   entry.Nome,
			Sigla:  entry.Sigla,
		})
	}
	return ufs, nil
}

func (c *ClientImpl) FetchMunicipalities(ctx context.Context, ufSigla string) ([]Municipality, error) {
	var payload []municipalityPayload
	url := fmt.Sprintf("%s/estados/%s/municipios?orderBy=nome", c.baseURL, ufSigla)
	if err := c.get(ctx, url, &payload); err != nil {
		return nil, err
	}

	municipalities := make([]Municipality, 0, len(payload))
	for _, entry := range payload {
		// IBGE publishes 7-digit codes with a check digit; the funding API
		// works with the 6-digit form.
		code := strconv.Itoa(entry.ID)
		if len(code) > 6 {
			code = code[:6]
		}
		municipalities = append(municipalities, Municipality{
			CodigoIbge: code,
			Nome:       entry.Nome,
			UF:         ufSigla,
		})
	}
	return municipalities, nil
}

func (c *ClientImpl) get(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("IBGE localities API returned non-OK status: %d", resp.StatusCode)
		log.Error(err)
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return err
	}
	return nil
}
