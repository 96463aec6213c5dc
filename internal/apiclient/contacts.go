package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/ignatzorin/agency-site/internal/models"
)

// ContactQuery: параметры серверной пагинации сообщений.
type ContactQuery struct {
	Page   int
	Limit  int
	Status string
	Search string
	Days   string
}

func (q ContactQuery) params() map[string]string {
	p := map[string]string{
		"page":  strconv.Itoa(max(q.Page, 1)),
		"limit": strconv.Itoa(max(q.Limit, 1)),
	}
	if q.Status != "" && q.Status != "all" {
		p["status"] = q.Status
	}
	if q.Search != "" {
		p["search"] = q.Search
	}
	if q.Days != "" && q.Days != "all" {
		p["days"] = q.Days
	}
	return p
}

// ContactPage: одна страница сообщений и её пагинация.
type ContactPage struct {
	Items      []*models.Contact
	Pagination Pagination
}

// ListContacts загружает страницу сообщений. Если API не вернул количество
// страниц, оно считается как ceil(total/limit).
func (c *Client) ListContacts(ctx context.Context, q ContactQuery) (*ContactPage, error) {
	env, err := c.do(ctx, http.MethodGet, "/contacts", func(r *resty.Request) {
		r.SetQueryParams(q.params())
	})
	if err != nil {
		return nil, err
	}

	var items []*models.Contact
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := decodeData(env, &items); err != nil {
			return nil, err
		}
	}
	if items == nil {
		items = []*models.Contact{}
	}

	page := &ContactPage{Items: items}
	if env.Pagination != nil {
		page.Pagination = *env.Pagination
	} else {
		page.Pagination = Pagination{Total: len(items), Page: max(q.Page, 1), Limit: max(q.Limit, 1)}
	}
	if page.Pagination.Pages == 0 && page.Pagination.Limit > 0 {
		page.Pagination.Pages = (page.Pagination.Total + page.Pagination.Limit - 1) / page.Pagination.Limit
	}
	return page, nil
}

// ContactStats загружает агрегаты сообщений.
func (c *Client) ContactStats(ctx context.Context) (*models.ContactStats, error) {
	env, err := c.do(ctx, http.MethodGet, "/contacts/stats", nil)
	if err != nil {
		return nil, err
	}
	var stats models.ContactStats
	if err := decodeData(env, &stats); err != nil {
		return nil, err
	}
	if stats.ByStatus == nil {
		stats.ByStatus = map[string]int{}
	}
	return &stats, nil
}

// GetContact загружает одно сообщение.
func (c *Client) GetContact(ctx context.Context, id string) (*models.Contact, error) {
	env, err := c.do(ctx, http.MethodGet, "/contacts/{id}", func(r *resty.Request) {
		r.SetPathParam("id", id)
	})
	if err != nil {
		return nil, err
	}
	var contact models.Contact
	if err := decodeData(env, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

// UpdateContactStatus отправляет PATCH /contacts/{id}/status.
func (c *Client) UpdateContactStatus(ctx context.Context, id, status string) error {
	_, err := c.do(ctx, http.MethodPatch, "/contacts/{id}/status", func(r *resty.Request) {
		r.SetPathParam("id", id).SetBody(map[string]string{"status": status})
	})
	return err
}

// DeleteContact удаляет сообщение.
func (c *Client) DeleteContact(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/contacts/{id}", func(r *resty.Request) {
		r.SetPathParam("id", id)
	})
	return err
}

// SubmitContact отправляет форму обратной связи.
func (c *Client) SubmitContact(ctx context.Context, in models.ContactInput) error {
	_, err := c.do(ctx, http.MethodPost, "/contacts", func(r *resty.Request) {
		r.SetBody(in)
	})
	return err
}
