// Package client talks to the booking backend on behalf of the booking widget
// and the terminal CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"salon-booking/api"
	"salon-booking/internal/slots"
	"salon-booking/pkg/response"
)

var tracer = otel.Tracer("salon.internal.client")

var ErrUnexpectedStatus = errors.New("unexpected response status")

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewWithHTTPClient is New with a caller supplied transport.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	c := New(baseURL)
	c.httpClient = hc
	return c
}

// FetchUnavailable reads the approved bookings feed.
func (c *Client) FetchUnavailable(ctx context.Context) ([]api.UnavailableTime, error) {
	const op = "client.FetchUnavailable"

	ctx, span := tracer.Start(ctx, "client.FetchUnavailable")
	defer span.End()

	var feed []api.UnavailableTime
	if err := c.do(ctx, http.MethodGet, "/api/horarios-indisponiveis", nil, http.StatusOK, &feed); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	span.SetAttributes(attribute.Int("salon.bookings", len(feed)))

	return feed, nil
}

// BookingsIndex fetches the feed and groups it by date. Malformed entries are
// dropped; the joined parse error is returned next to a usable index.
func (c *Client) BookingsIndex(ctx context.Context) (slots.BookingsIndex, error) {
	const op = "client.BookingsIndex"

	feed, err := c.FetchUnavailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	idx, err := api.IndexUnavailable(feed)
	if err != nil {
		return idx, fmt.Errorf("%s: %w", op, err)
	}

	return idx, nil
}

func (c *Client) FetchServices(ctx context.Context) ([]api.ServiceResponse, error) {
	const op = "client.FetchServices"

	var out struct {
		Services []api.ServiceResponse `json:"services"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/servicos", nil, http.StatusOK, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out.Services, nil
}

func (c *Client) CreateBooking(ctx context.Context, req *api.BookingRequest) (*api.BookingCreated, error) {
	const op = "client.CreateBooking"

	ctx, span := tracer.Start(ctx, "client.CreateBooking")
	defer span.End()

	var out api.BookingCreated
	if err := c.do(ctx, http.MethodPost, "/api/agendamentos", req, http.StatusCreated, &out); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	span.SetAttributes(attribute.Int64("salon.booking_id", out.ID))

	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in any, want int, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return statusError(resp)
	}

	if err := render.DecodeJSON(resp.Body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func statusError(resp *http.Response) error {
	var envelope response.Response
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
	if len(raw) > 0 && json.Unmarshal(raw, &envelope) == nil && envelope.Code != "" {
		return fmt.Errorf("%w: %d %s: %s", ErrUnexpectedStatus, resp.StatusCode, envelope.Code, envelope.Message)
	}
	return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
}
