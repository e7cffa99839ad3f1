package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client trae el snapshot de usuarios/productos/órdenes desde la API
// upstream. Cualquier falla de red o de decodificación cuenta como
// "upstream no disponible" para el mapeo de estados del servicio.
type Client struct {
	baseURL  string
	endpoint string
	http     *http.Client
}

func NewClient(baseURL, endpoint string) *Client {
	return &Client{
		baseURL:  baseURL,
		endpoint: endpoint,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch descarga el snapshot y devuelve también el body crudo, que el
// servicio usa para calcular el fingerprint del cache.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+c.endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream respondió %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("upstream devolvió un body que no es JSON")
	}
	return body, nil
}
