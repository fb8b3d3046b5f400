package upload

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/ayoisaiah/moodtrack/internal/models"
)

const maxAckBytes = 64 << 10

// Deliverer sends a payload to external storage exactly once per call and
// returns the endpoint's acknowledgment.
type Deliverer interface {
	Deliver(ctx context.Context, p models.Payload) (string, error)
}

type httpDeliverer struct {
	client   *http.Client
	endpoint string
}

// NewDeliverer returns a Deliverer that POSTs payloads as JSON to endpoint.
func NewDeliverer(endpoint string, timeout time.Duration) Deliverer {
	return &httpDeliverer{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (d *httpDeliverer) Deliver(
	ctx context.Context,
	p models.Payload,
) (string, error) {
	if d.endpoint == "" {
		return "", ErrDelivery.Fmt(p.Filename).Wrap(errNoEndpoint)
	}

	body, err := json.Marshal(p)
	if err != nil {
		return "", ErrDelivery.Fmt(p.Filename).Wrap(err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.endpoint,
		bytes.NewReader(body),
	)
	if err != nil {
		return "", ErrDelivery.Fmt(p.Filename).Wrap(err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", ErrDelivery.Fmt(p.Filename).Wrap(err)
	}
	defer resp.Body.Close()

	ack, err := io.ReadAll(io.LimitReader(resp.Body, maxAckBytes))
	if err != nil {
		return "", ErrDelivery.Fmt(p.Filename).Wrap(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", ErrDelivery.Fmt(p.Filename).Wrap(
			errUnexpectedStatus.Fmt(resp.Status, strings.TrimSpace(string(ack))),
		)
	}

	slog.Info(
		"payload delivered",
		slog.String("file", p.Filename),
		slog.Int("status", resp.StatusCode),
	)

	return string(ack), nil
}
