package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Типы событий жизненного цикла
const (
	EventAppointmentCreated     = "appointment.created"
	EventAppointmentCancelled   = "appointment.cancelled"
	EventAppointmentRescheduled = "appointment.rescheduled"
	EventAbsenceReviewed        = "absence.reviewed"
)

// Event событие жизненного цикла для асинхронной доставки уведомлений
type Event struct {
	Type          string    `json:"type"`
	AppointmentID int64     `json:"appointmentId,omitempty"`
	AbsenceID     int64     `json:"absenceId,omitempty"`
	CustomerID    int64     `json:"customerId,omitempty"`
	TechnicianID  int64     `json:"technicianId,omitempty"`
	StartTime     time.Time `json:"startTime,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Client клиент NotifyService. Уведомления fire-and-forget: вызов
// никогда не блокирует и не роняет бизнес-операцию
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send синхронно отправляет событие в NotifyService
func (c *Client) Send(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	endpoint := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: unexpected status code %d", ErrInternal, resp.StatusCode)
	}

	return nil
}

// SendAsync отправляет событие в фоне, отвязавшись от контекста запроса.
// Ошибка доставки только логируется - уведомления не должны влиять
// на результат транзакции
func (c *Client) SendAsync(event Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
		defer cancel()

		if err := c.Send(ctx, event); err != nil {
			c.log.Warn("notifyservice: failed to deliver %s event: %v", event.Type, err)
		}
	}()
}
