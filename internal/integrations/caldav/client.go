package caldav

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// timeRangeLayout is the UTC instant form used in calendar-query
	// time-range filters.
	timeRangeLayout = "20060102T150405Z"

	reportBodyTemplate = `<?xml version="1.0" encoding="utf-8"?>
<c:calendar-query xmlns:d="DAV:" xmlns:c="urn:ietf:params:xml:ns:caldav">
  <d:prop>
    <d:getetag/>
    <c:calendar-data/>
  </d:prop>
  <c:filter>
    <c:comp-filter name="VCALENDAR">
      <c:comp-filter name="VEVENT">
        <c:time-range start="%s" end="%s"/>
      </c:comp-filter>
    </c:comp-filter>
  </c:filter>
</c:calendar-query>`
)

// Client клиент для работы с CalDAV сервером
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	log        Logger
	observer   Observer
}

// NewClient создает новый экземпляр CalDAV клиента
func NewClient(baseURL, username, password string, timeout time.Duration, log Logger, observer Observer) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:      log,
		observer: observer,
	}
}

// FetchEvents выполняет calendar-query REPORT по коллекции и возвращает все
// объекты, чьи события могут пересекать [start, end). Фильтрация сервера
// работает по меткам времени, поэтому вызывающая сторона должна расширять
// окно минимум на сутки с каждой стороны для date-only записей.
func (c *Client) FetchEvents(ctx context.Context, calendarPath string, start, end time.Time) ([]Object, error) {
	body := fmt.Sprintf(reportBodyTemplate,
		start.UTC().Format(timeRangeLayout),
		end.UTC().Format(timeRangeLayout),
	)

	req, err := http.NewRequestWithContext(ctx, "REPORT", c.url(calendarPath), strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/xml; charset=utf-8")
	req.Header.Set("Depth", "1")
	c.auth(req)

	resp, err := c.httpClient.Do(req)
	c.observe("fetch_events", err)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusMultiStatus:
		// Продолжаем обработку
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusNotFound:
		return nil, ErrObjectNotFound
	default:
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(data))
	}

	var ms multistatus
	if err := xml.NewDecoder(resp.Body).Decode(&ms); err != nil {
		return nil, fmt.Errorf("%w: failed to decode multistatus: %v", ErrInvalidResponse, err)
	}

	objects := make([]Object, 0, len(ms.Responses))
	for _, r := range ms.Responses {
		href := strings.TrimSpace(r.Href)
		if href == "" || strings.TrimRight(href, "/") == strings.TrimRight(calendarPath, "/") {
			continue
		}

		obj := Object{Href: href}
		for _, ps := range r.Propstats {
			// Prop без данных (stub) оставляем с пустым Data - вызывающая
			// сторона догрузит объект через FetchObject.
			if ps.Prop.CalendarData != "" {
				obj.Data = ps.Prop.CalendarData
			}
			if ps.Prop.ETag != "" {
				obj.ETag = ps.Prop.ETag
			}
		}
		objects = append(objects, obj)
	}

	c.log.Info("caldav: fetched %d objects from %s", len(objects), calendarPath)
	return objects, nil
}

// FetchObject загружает один календарный объект по его href
// (hydration fallback для stub-ответов REPORT).
func (c *Client) FetchObject(ctx context.Context, href string) (Object, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(href), nil)
	if err != nil {
		return Object{}, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "text/calendar")
	c.auth(req)

	resp, err := c.httpClient.Do(req)
	c.observe("fetch_object", err)
	if err != nil {
		return Object{}, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return Object{}, ErrObjectNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return Object{}, ErrUnauthorized
	default:
		data, _ := io.ReadAll(resp.Body)
		return Object{}, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(data))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Object{}, fmt.Errorf("%w: failed to read body: %v", ErrInvalidResponse, err)
	}

	return Object{
		Href: href,
		ETag: resp.Header.Get("ETag"),
		Data: string(data),
	}, nil
}

// PutEvent создает календарный объект в коллекции и возвращает его href.
// If-None-Match: * защищает от перезаписи существующего объекта.
func (c *Client) PutEvent(ctx context.Context, calendarPath, uid, icsBody string) (string, error) {
	href := strings.TrimRight(calendarPath, "/") + "/" + uid + ".ics"

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.url(href), strings.NewReader(icsBody))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "text/calendar; charset=utf-8")
	req.Header.Set("If-None-Match", "*")
	c.auth(req)

	resp, err := c.httpClient.Do(req)
	c.observe("put_event", err)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusNoContent, http.StatusOK:
		c.log.Info("caldav: created event %s", href)
		return href, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", ErrUnauthorized
	default:
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(data))
	}
}

// DeleteEvent удаляет календарный объект. Отсутствующий объект не считается
// ошибкой - удаление идемпотентно.
func (c *Client) DeleteEvent(ctx context.Context, href string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.url(href), nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	c.auth(req)

	resp, err := c.httpClient.Do(req)
	c.observe("delete_event", err)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(data))
	}
}

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func (c *Client) auth(req *http.Request) {
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
}

func (c *Client) observe(operation string, err error) {
	if c.observer != nil {
		c.observer.ObserveExternal("caldav", operation, err)
	}
}
