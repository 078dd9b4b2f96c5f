package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client клиент для работы с CatalogService (справочные данные:
// услуги, мастера, инвентарь ресурсов). Движок расписания считает
// полученные данные неизменяемым снапшотом на время одного расчёта
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetService получает услугу вместе с её требованиями к ресурсам
func (c *Client) GetService(ctx context.Context, serviceID int64) (*Service, error) {
	endpoint := fmt.Sprintf("%s/internal/services/%d", c.baseURL, serviceID)

	var service Service
	if err := c.getJSON(ctx, endpoint, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}

	return &service, nil
}

// GetTechniciansByService получает всех мастеров, владеющих услугой
// (включая отключённых - фильтрация по enabled выполняется движком)
func (c *Client) GetTechniciansByService(ctx context.Context, serviceID int64) ([]Technician, error) {
	endpoint := fmt.Sprintf("%s/internal/services/%d/technicians", c.baseURL, serviceID)

	var technicians []Technician
	if err := c.getJSON(ctx, endpoint, &technicians, ErrServiceNotFound); err != nil {
		return nil, err
	}

	return technicians, nil
}

// GetTechnician получает мастера по ID
func (c *Client) GetTechnician(ctx context.Context, technicianID int64) (*Technician, error) {
	endpoint := fmt.Sprintf("%s/internal/technicians/%d", c.baseURL, technicianID)

	var technician Technician
	if err := c.getJSON(ctx, endpoint, &technician, ErrTechnicianNotFound); err != nil {
		return nil, err
	}

	return &technician, nil
}

// GetResourcesByTypes получает неудалённые единицы ресурсов указанных типов
func (c *Client) GetResourcesByTypes(ctx context.Context, resourceTypes []string) ([]Resource, error) {
	if len(resourceTypes) == 0 {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/internal/resources?types=%s",
		c.baseURL, url.QueryEscape(strings.Join(resourceTypes, ",")))

	var resources []Resource
	if err := c.getJSON(ctx, endpoint, &resources, ErrInvalidResponse); err != nil {
		return nil, err
	}

	return resources, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
// notFoundErr возвращается при статусе 404
func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
