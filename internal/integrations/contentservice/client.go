package contentservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с контент-сервисом салона
// (профиль, услуги, мастера)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента контент-сервиса
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetSalon получает профиль салона, включая рабочие часы и номер WhatsApp
func (c *Client) GetSalon(ctx context.Context) (*SalonProfile, error) {
	url := fmt.Sprintf("%s/internal/salon", c.baseURL)

	var profile SalonProfile
	if err := c.getJSON(ctx, url, &profile, ErrSalonNotFound); err != nil {
		return nil, err
	}

	return &profile, nil
}

// GetService получает услугу по идентификатору
func (c *Client) GetService(ctx context.Context, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/services/%d", c.baseURL, serviceID)

	var service Service
	if err := c.getJSON(ctx, url, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}

	return &service, nil
}

// GetActiveStaff получает список активных мастеров салона.
// Число активных мастеров определяет вместимость каждого слота.
func (c *Client) GetActiveStaff(ctx context.Context) ([]Staff, error) {
	url := fmt.Sprintf("%s/internal/staff?active=true", c.baseURL)

	var staff []Staff
	if err := c.getJSON(ctx, url, &staff, ErrStaffNotFound); err != nil {
		return nil, err
	}

	return staff, nil
}

// GetActiveStaffWithGracefulDegradation получает активных мастеров с graceful degradation.
// При недоступности контент-сервиса возвращает ErrServiceDegraded,
// что позволяет расчету доступности перейти на резервную вместимость.
func (c *Client) GetActiveStaffWithGracefulDegradation(ctx context.Context) ([]Staff, error) {
	staff, err := c.GetActiveStaff(ctx)
	if err != nil {
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("ContentService unavailable, applying graceful degradation for staff lookup: %v", err)
		return nil, fmt.Errorf("%w: error=%v", ErrServiceDegraded, err)
	}

	return staff, nil
}

// getJSON выполняет GET запрос и декодирует JSON-ответ в out
func (c *Client) getJSON(ctx context.Context, url string, out interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
