package ai

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// exchange records what happened to the last request sent through the doer.
type exchange struct {
	requestID    string
	sent         bool
	transportErr error
	status       int
	body         []byte
}

// recordingDoer is the go-openai HTTPDoer. It tags each request with an ID
// and keeps the raw body of failed responses, which the client would
// otherwise reduce to its own error type.
type recordingDoer struct {
	client *http.Client

	mu       sync.Mutex
	exchange exchange
}

func newRecordingDoer(client *http.Client) *recordingDoer {
	if client == nil {
		client = &http.Client{}
	}
	return &recordingDoer{client: client}
}

// Do implements openai.HTTPDoer.
func (d *recordingDoer) Do(req *http.Request) (*http.Response, error) {
	id := requestIDFrom(req.Context())
	req.Header.Set(RequestIDHeader, id)

	resp, err := d.client.Do(req)

	d.mu.Lock()
	defer d.mu.Unlock()

	d.exchange = exchange{requestID: id, sent: true}
	if err != nil {
		d.exchange.transportErr = err
		return nil, err
	}

	d.exchange.status = resp.StatusCode
	if isFailureStatus(resp.StatusCode) {
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			d.exchange.transportErr = readErr
			return nil, readErr
		}
		d.exchange.body = body
		resp.Body = io.NopCloser(bytes.NewReader(body))
	}

	return resp, nil
}

func (d *recordingDoer) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.exchange = exchange{}
}

func (d *recordingDoer) last() exchange {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.exchange
}

func isFailureStatus(code int) bool {
	return code < http.StatusOK || code >= http.StatusBadRequest
}
