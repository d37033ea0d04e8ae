package carrierservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с CarrierService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CarrierService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCarrier получает перевозчика по ID пользователя
func (c *Client) GetCarrier(ctx context.Context, carrierUserID int64) (*Carrier, error) {
	url := fmt.Sprintf("%s/internal/carriers/%d", c.baseURL, carrierUserID)

	var carrier Carrier
	if err := c.getJSON(ctx, url, &carrier, ErrCarrierNotFound); err != nil {
		return nil, err
	}

	return &carrier, nil
}

// GetActiveTruck получает активный тягач перевозчика
func (c *Client) GetActiveTruck(ctx context.Context, carrierUserID int64) (*Truck, error) {
	url := fmt.Sprintf("%s/internal/carriers/%d/trucks/active", c.baseURL, carrierUserID)

	var truck Truck
	if err := c.getJSON(ctx, url, &truck, ErrTruckNotFound); err != nil {
		return nil, err
	}

	return &truck, nil
}

// GetActiveTruckWithGracefulDegradation получает активный тягач перевозчика.
// При недоступности CarrierService возвращает ErrServiceDegraded вместо
// транспортной ошибки - запись можно создать без данных тягача.
// Отсутствие тягача (404) деградацией не считается и пробрасывается как есть.
func (c *Client) GetActiveTruckWithGracefulDegradation(ctx context.Context, carrierUserID int64) (*Truck, error) {
	truck, err := c.GetActiveTruck(ctx, carrierUserID)
	if err != nil {
		if errors.Is(err, ErrTruckNotFound) {
			return nil, err
		}

		c.log.Warn("carrierservice: degraded mode, proceeding without truck data: carrier_user_id=%d, error=%v", carrierUserID, err)
		return nil, fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}

	return truck, nil
}

// getJSON выполняет GET-запрос и декодирует ответ.
// notFoundErr возвращается на 404 - у каждого метода свой sentinel.
func (c *Client) getJSON(ctx context.Context, url string, dest interface{}, notFoundErr error) error {
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
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid request parameters", ErrInvalidResponse)
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
