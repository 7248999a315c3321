package llm

import (
	"context"
	"io"
	"strings"
)

// EventType tags a streaming event.
type EventType int

const (
	// EventTextDelta carries one incremental text fragment.
	EventTextDelta EventType = iota
	// EventDone marks normal stream completion.
	EventDone
	// EventError carries a terminal error.
	EventError
)

// Event is one item produced by a Stream.
type Event struct {
	Type EventType
	Text string
	Err  error
}

// Stream yields events for one in-flight request.
type Stream interface {
	// Recv returns the next event, blocking until one is available.
	// io.EOF is returned after the event channel is exhausted.
	Recv() (Event, error)
	// Close cancels the stream. Safe to call concurrently with Recv.
	Close() error
}

type channelStream struct {
	ctx    context.Context
	cancel context.CancelFunc
	events <-chan Event
}

// newEventStream runs fn in a goroutine feeding a bounded event
// channel. An error returned by fn is forwarded as a terminal
// EventError before the channel closes.
func newEventStream(ctx context.Context, run func(context.Context, chan<- Event) error) Stream {
	streamCtx, cancel := context.WithCancel(ctx)
	ch := make(chan Event, 16)
	go func() {
		defer close(ch)
		if err := run(streamCtx, ch); err != nil {
			ch <- Event{Type: EventError, Err: err}
		}
	}()
	return &channelStream{ctx: streamCtx, cancel: cancel, events: ch}
}

func (s *channelStream) Recv() (Event, error) {
	// Non-blocking drain: consume any buffered event before checking
	// ctx.Done() so a terminal event is not dropped when both are ready.
	select {
	case event, ok := <-s.events:
		if !ok {
			return Event{}, io.EOF
		}
		return event, nil
	default:
	}

	select {
	case <-s.ctx.Done():
		return Event{}, s.ctx.Err()
	case event, ok := <-s.events:
		if !ok {
			return Event{}, io.EOF
		}
		return event, nil
	}
}

func (s *channelStream) Close() error {
	s.cancel()
	return nil
}

// NewScriptedStream adapts a script function to a Stream. emit
// returns false once the stream context is cancelled, at which point
// the script should stop producing. Used by the placeholder provider
// and by tests that need precise control over fragment timing.
func NewScriptedStream(ctx context.Context, script func(ctx context.Context, emit func(Event) bool)) Stream {
	return newEventStream(ctx, func(ctx context.Context, ch chan<- Event) error {
		emit := func(e Event) bool {
			select {
			case ch <- e:
				return true
			case <-ctx.Done():
				return false
			}
		}
		script(ctx, emit)
		return nil
	})
}

// Collect drains a stream to completion and returns the accumulated
// text. Used by one-shot callers such as conversation naming.
func Collect(stream Stream) (string, error) {
	defer stream.Close()
	var sb strings.Builder
	for {
		event, err := stream.Recv()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}
		switch event.Type {
		case EventTextDelta:
			sb.WriteString(event.Text)
		case EventError:
			return sb.String(), event.Err
		case EventDone:
			return sb.String(), nil
		}
	}
}
