// Package apiclient обращается к внешнему REST API агентства: отклики, сообщения
// из формы обратной связи и их статистика. Без повторов, кеша и заголовков авторизации.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ignatzorin/agency-site/internal/logger"
)

// Envelope: общий конверт ответов API.
type Envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
	Message    string          `json:"message,omitempty"`
	Errors     []FieldError    `json:"errors,omitempty"`
}

// Pagination: серверная пагинация списков.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// Client: клиент внешнего API.
type Client struct {
	http *resty.Client
}

// New создаёт клиента для baseURL вида http://host:5005/api.
func New(baseURL string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetLogger(logger.WithComponent("apiclient"))

	return &Client{http: rc}
}

// BaseURL возвращает адрес API.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// Ping проверяет доступность API: любой HTTP-ответ считается успехом.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.http.R().SetContext(ctx).Head("/"); err != nil {
		return fmt.Errorf("apiclient: ping: %w", err)
	}
	return nil
}

// do выполняет запрос и разбирает конверт. Транспортные ошибки и ошибки разбора
// оборачиваются через %w, отказ API возвращается как *APIError.
func (c *Client) do(ctx context.Context, method, path string, build func(*resty.Request)) (*Envelope, error) {
	req := c.http.R().SetContext(ctx)
	if build != nil {
		build(req)
	}

	started := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		logger.WithComponent("apiclient").WithError(err).WithField("method", method).WithField("path", path).Warn("upstream request failed")
		return nil, fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}

	logger.WithComponent("apiclient").WithField("method", method).WithField("path", path).
		WithField("status", resp.StatusCode()).WithField("duration", time.Since(started)).Debug("upstream request")

	var env Envelope
	if decodeErr := json.Unmarshal(resp.Body(), &env); decodeErr != nil {
		if resp.IsError() {
			return nil, &APIError{StatusCode: resp.StatusCode()}
		}
		return nil, fmt.Errorf("%w: %s %s: %v", ErrDecode, method, path, decodeErr)
	}

	if resp.IsError() || !env.Success {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Message:    env.Message,
			Errors:     env.Errors,
		}
	}
	return &env, nil
}

func decodeData(env *Envelope, dst any) error {
	if len(env.Data) == 0 {
		return fmt.Errorf("%w: empty data", ErrDecode)
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
