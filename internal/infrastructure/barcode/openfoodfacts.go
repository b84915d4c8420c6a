// Package barcode resuelve códigos de barras desconocidos contra la base
// pública de Open Food Facts, como ayuda para dar de alta productos nuevos.
package barcode

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/almacen-api/internal/scanner"
	"github.com/jhoicas/almacen-api/pkg/config"
)

// OpenFoodFactsClient cliente de solo lectura contra la API pública.
type OpenFoodFactsClient struct {
	httpClient *resty.Client
}

var _ scanner.Lookup = (*OpenFoodFactsClient)(nil)

// NewOpenFoodFactsClient construye el cliente de consulta.
func NewOpenFoodFactsClient(cfg config.LookupConfig) *OpenFoodFactsClient {
	restyClient := resty.New()
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetTimeout(timeout)
	return &OpenFoodFactsClient{httpClient: restyClient}
}

type productPayload struct {
	Status  int `json:"status"` // 1 = encontrado
	Product struct {
		ProductName string `json:"product_name"`
		Brands      string `json:"brands"`
		Categories  string `json:"categories"`
		GenericName string `json:"generic_name"`
		ImageURL    string `json:"image_url"`
	} `json:"product"`
}

// Lookup consulta la ficha de un código. Devuelve (nil, nil) cuando la base
// no lo conoce.
func (c *OpenFoodFactsClient) Lookup(ctx context.Context, code string) (*scanner.LookupResult, error) {
	payload := new(productPayload)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(payload).
		Get(fmt.Sprintf("/api/v0/product/%s.json", code))
	if err != nil {
		return nil, fmt.Errorf("consultar código de barras: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("open food facts: status=%d", resp.StatusCode())
	}
	if payload.Status != 1 {
		return nil, nil
	}
	return &scanner.LookupResult{
		Barcode:     code,
		Name:        payload.Product.ProductName,
		Brand:       payload.Product.Brands,
		Category:    payload.Product.Categories,
		Description: payload.Product.GenericName,
		ImageURL:    payload.Product.ImageURL,
	}, nil
}
