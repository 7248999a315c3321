package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Debug enables best-effort stderr diagnostics for dropped SSE events.
var Debug bool

func debugf(format string, args ...any) {
	if Debug {
		log.Printf(format, args...)
	}
}

// sseDoneSentinel is the terminal marker every supported backend sends
// as the payload of its final event line.
const sseDoneSentinel = "[DONE]"

// sseHTTPClient is shared across providers. Streaming responses can
// stay open for minutes, so the timeout is generous.
var sseHTTPClient = &http.Client{
	Timeout: 10 * time.Minute,
}

// sseDecoder turns raw response bytes into SSE data payloads. A
// logical line may arrive split across any number of reads; the
// decoder buffers partial lines until the newline shows up.
type sseDecoder struct {
	buf  []byte
	done bool
}

// feed appends chunk and returns the payloads of all event lines
// completed by it, in order. Once the terminal sentinel is seen the
// decoder stops: remaining buffered lines are not processed and
// further feeds return nothing.
func (d *sseDecoder) feed(chunk []byte) []string {
	if d.done {
		return nil
	}
	d.buf = append(d.buf, chunk...)

	var payloads []string
	for {
		i := bytes.IndexByte(d.buf, '\n')
		if i < 0 {
			return payloads
		}
		line := d.buf[:i]
		d.buf = d.buf[i+1:]

		// A rune split across reads has been rejoined by now, so
		// validation at line granularity is safe. Anything still
		// invalid is replaced rather than aborting the stream.
		line = bytes.ToValidUTF8(bytes.TrimSpace(line), []byte("�"))
		if !bytes.HasPrefix(line, []byte("data:")) {
			continue
		}
		payload := string(bytes.TrimSpace(line[len("data:"):]))
		if payload == sseDoneSentinel {
			d.done = true
			return payloads
		}
		payloads = append(payloads, payload)
	}
}

// sseRequest describes one streaming POST.
type sseRequest struct {
	URL     string
	Headers map[string]string
	Body    any
}

// extractFunc maps one decoded SSE event payload to a text fragment.
// An empty fragment with nil error means the event carried no text
// (keep-alives, metadata) and is skipped silently. A non-nil error
// marks the single event as malformed; the stream continues.
type extractFunc func(data []byte) (string, error)

// maxParseErrors bounds how many malformed events are tolerated before
// the whole stream is treated as broken.
const maxParseErrors = 10

// streamSSE opens req and forwards extracted fragments to events until
// the terminal sentinel, EOF, or an error. The provider name is used
// in error messages only. Fragments are delivered in arrival order;
// if ctx is cancelled the function stops forwarding and returns nil.
func streamSSE(ctx context.Context, provider string, req sseRequest, extract extractFunc, events chan<- Event) error {
	body, err := json.Marshal(req.Body)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", provider, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", req.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", provider, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := sseHTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return &ProtocolError{Provider: provider, Status: resp.StatusCode, Body: string(bytes.TrimSpace(respBody))}
	}

	decoder := &sseDecoder{}
	chunk := make([]byte, 32*1024)
	parseErrors := 0

	for {
		n, readErr := resp.Body.Read(chunk)
		if n > 0 {
			for _, payload := range decoder.feed(chunk[:n]) {
				text, err := extract([]byte(payload))
				if err != nil {
					parseErrors++
					debugf("%s: dropping malformed SSE event: %v", provider, err)
					if parseErrors > maxParseErrors {
						return fmt.Errorf("%s: too many malformed SSE events, last: %w", provider, err)
					}
					continue
				}
				if text == "" {
					continue
				}
				select {
				case events <- Event{Type: EventTextDelta, Text: text}:
				case <-ctx.Done():
					// Receiver gave up; stop forwarding without error.
					return nil
				}
			}
			if decoder.done {
				break
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("%s streaming error: %w", provider, readErr)
		}
	}

	select {
	case events <- Event{Type: EventDone}:
	case <-ctx.Done():
	}
	return nil
}
