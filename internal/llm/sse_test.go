package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestSSEDecoderBasic(t *testing.T) {
	d := &sseDecoder{}
	got := d.feed([]byte("data: {\"a\":1}\n\ndata: {\"b\":2}\n"))
	want := []string{`{"a":1}`, `{"b":2}`}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("payloads=%v, want %v", got, want)
	}
}

func TestSSEDecoderBufferBoundaryIndependence(t *testing.T) {
	stream := "event: message\r\ndata: {\"text\":\"hello\"}\r\n\ndata: {\"text\":\"world\"}\n: keepalive\ndata: [DONE]\ndata: {\"text\":\"after\"}\n"
	want := []string{`{"text":"hello"}`, `{"text":"world"}`}

	// Whatever the split position, the decoded payload sequence must
	// be identical.
	for i := 0; i <= len(stream); i++ {
		d := &sseDecoder{}
		var got []string
		got = append(got, d.feed([]byte(stream[:i]))...)
		got = append(got, d.feed([]byte(stream[i:]))...)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("split at %d: payloads=%v, want %v", i, got, want)
		}
		if !d.done {
			t.Fatalf("split at %d: sentinel not detected", i)
		}
	}

	// Byte-at-a-time delivery.
	d := &sseDecoder{}
	var got []string
	for i := 0; i < len(stream); i++ {
		got = append(got, d.feed([]byte{stream[i]})...)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("byte-at-a-time: payloads=%v, want %v", got, want)
	}
}

func TestSSEDecoderStopsAtSentinel(t *testing.T) {
	d := &sseDecoder{}
	got := d.feed([]byte("data: [DONE]\ndata: {\"x\":1}\n"))
	if len(got) != 0 {
		t.Fatalf("payloads after sentinel: %v", got)
	}
	if got := d.feed([]byte("data: {\"y\":2}\n")); len(got) != 0 {
		t.Fatalf("feed after sentinel returned %v", got)
	}
}

func TestSSEDecoderReplacesInvalidUTF8(t *testing.T) {
	d := &sseDecoder{}
	got := d.feed([]byte("data: {\"bad\":\"\xff\"}\n"))
	if len(got) != 1 {
		t.Fatalf("payloads=%v, want one", got)
	}
	if !strings.Contains(got[0], "�") {
		t.Fatalf("invalid byte not replaced: %q", got[0])
	}
}

// collectSSE runs streamSSE against a test server and gathers events.
func collectSSE(t *testing.T, handler http.HandlerFunc, extract extractFunc) ([]Event, error) {
	t.Helper()
	srv := httptest.NewServer(handler)
	defer srv.Close()

	events := make(chan Event, 64)
	err := streamSSE(context.Background(), "Test", sseRequest{URL: srv.URL, Body: map[string]any{"stream": true}}, extract, events)
	close(events)
	var got []Event
	for e := range events {
		got = append(got, e)
	}
	return got, err
}

func textExtract(data []byte) (string, error) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", err
	}
	return payload.Text, nil
}

func TestStreamSSEDeliversFragmentsInOrder(t *testing.T) {
	events, err := collectSSE(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, "data: {\"text\":\"Hi\"}\n\n")
		io.WriteString(w, "data: {\"text\":\" there\"}\n\n")
		io.WriteString(w, "data: [DONE]\n\n")
	}, textExtract)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var texts []string
	for _, e := range events {
		if e.Type == EventTextDelta {
			texts = append(texts, e.Text)
		}
	}
	if !reflect.DeepEqual(texts, []string{"Hi", " there"}) {
		t.Fatalf("texts=%v", texts)
	}
	if last := events[len(events)-1]; last.Type != EventDone {
		t.Fatalf("last event type=%v, want EventDone", last.Type)
	}
}

func TestStreamSSENonSuccessStatus(t *testing.T) {
	_, err := collectSSE(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":"bad key"}`)
	}, textExtract)
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("error=%v, want ProtocolError", err)
	}
	if perr.Status != http.StatusUnauthorized {
		t.Fatalf("status=%d", perr.Status)
	}
	if !strings.Contains(perr.Body, "bad key") {
		t.Fatalf("body=%q, want full error body", perr.Body)
	}
}

func TestStreamSSESkipsMalformedEvents(t *testing.T) {
	events, err := collectSSE(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "data: {\"text\":\"ok\"}\n")
		io.WriteString(w, "data: {not json\n")
		io.WriteString(w, "data: {\"text\":\"still ok\"}\n")
		io.WriteString(w, "data: [DONE]\n")
	}, textExtract)
	if err != nil {
		t.Fatalf("single malformed event aborted the stream: %v", err)
	}
	var texts []string
	for _, e := range events {
		if e.Type == EventTextDelta {
			texts = append(texts, e.Text)
		}
	}
	if !reflect.DeepEqual(texts, []string{"ok", "still ok"}) {
		t.Fatalf("texts=%v", texts)
	}
}

func TestStreamSSETooManyMalformedEvents(t *testing.T) {
	_, err := collectSSE(t, func(w http.ResponseWriter, r *http.Request) {
		for i := 0; i <= maxParseErrors; i++ {
			fmt.Fprintf(w, "data: {broken %d\n", i)
		}
		io.WriteString(w, "data: [DONE]\n")
	}, textExtract)
	if err == nil {
		t.Fatal("expected error after exceeding malformed event cap")
	}
}

func TestStreamSSEStopsWhenReceiverGone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for i := 0; i < 100; i++ {
			fmt.Fprintf(w, "data: {\"text\":\"f%d\"}\n", i)
		}
		io.WriteString(w, "data: [DONE]\n")
	}))
	defer srv.Close()

	// Unbuffered channel with no receiver: the first send blocks until
	// the context is cancelled, then streamSSE must exit without error.
	events := make(chan Event)
	cancel()
	err := streamSSE(ctx, "Test", sseRequest{URL: srv.URL, Body: map[string]any{}}, textExtract, events)
	if err != nil && !errors.Is(err, context.Canceled) {
		t.Fatalf("unexpected error: %v", err)
	}
}
