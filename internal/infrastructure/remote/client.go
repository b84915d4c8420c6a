// Package remote implementa el cliente HTTP de la estación contra la API
// central del almacén.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/offline"
	"github.com/jhoicas/almacen-api/pkg/config"
)

// APIClient cliente resty contra la API del almacén. Cada request reporta su
// desenlace al monitor de conectividad: error de transporte baja la señal,
// cualquier respuesta completada la sube.
type APIClient struct {
	httpClient *resty.Client
}

var _ offline.Fetcher = (*APIClient)(nil)

// NewClient construye el cliente a partir de la configuración de la estación.
func NewClient(cfg config.RemoteConfig, monitor *offline.Monitor) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)
	if cfg.Token != "" {
		restyClient.SetAuthToken(cfg.Token)
	}

	restyClient.OnAfterResponse(func(_ *resty.Client, _ *resty.Response) error {
		monitor.Notify(true)
		return nil
	})
	restyClient.OnError(func(_ *resty.Request, _ error) {
		monitor.Notify(false)
	})

	return &APIClient{httpClient: restyClient}
}

// FetchProducts trae el catálogo completo.
func (c *APIClient) FetchProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	result := new(dto.ProductListResponse)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		Get("/api/v1/products")
	if err != nil {
		return nil, fmt.Errorf("obtener productos: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return result.Products, nil
}

// FetchMovements trae el historial reciente de movimientos.
func (c *APIClient) FetchMovements(ctx context.Context) ([]dto.MovementResponse, error) {
	result := new(dto.MovementListResponse)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		Get("/api/v1/movements")
	if err != nil {
		return nil, fmt.Errorf("obtener movimientos: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return result.Movements, nil
}

// CreateMovement registra un movimiento de entrada o salida en la central.
func (c *APIClient) CreateMovement(ctx context.Context, req dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	result := new(dto.MovementResponse)
	apiErr := new(dto.ErrorResponse)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(result).
		SetError(apiErr).
		Post("/api/v1/movements")
	if err != nil {
		return nil, fmt.Errorf("registrar movimiento: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("api del almacén: code=%d, message=%s", resp.StatusCode(), apiErr.Message)
	}
	return result, nil
}

func checkStatus(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("api del almacén: status=%d", resp.StatusCode())
	}
	return nil
}
