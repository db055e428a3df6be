package handler

import (
	"encoding/json"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// StreamContext sends signal patches over an open SSE connection.
type StreamContext interface {
	Context
	SendSignal(name string, value any) error
	SendSignals(signals map[string]any) error
}

// SSEHandler runs for the lifetime of the connection.
type SSEHandler func(ctx StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if _, ok := w.(http.Flusher); !ok {
		return ErrStreamingUnsupported
	}
	return s.handler(&streamContext{
		Context: NewContext(w, r),
		sse:     datastar.NewSSE(w, r),
	})
}

// SSE opens a datastar Server-Sent Events stream. Signals set to nil are
// removed on the client.
func SSE(h SSEHandler) Response {
	return sseResponse{handler: h}
}

type streamContext struct {
	Context
	sse *datastar.ServerSentEventGenerator
}

func (c *streamContext) SendSignal(name string, value any) error {
	return c.SendSignals(map[string]any{name: value})
}

func (c *streamContext) SendSignals(signals map[string]any) error {
	data, err := json.Marshal(signals)
	if err != nil {
		return err
	}
	return c.sse.PatchSignals(data)
}
