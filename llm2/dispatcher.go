package llm2

import (
	"context"
	"sync"
)

// requiresBearerToken reports whether api authenticates via a resolved
// bearer token rather than ambient cloud credentials.
func requiresBearerToken(api Api) bool {
	return api != APIGoogleVertex && api != APIBedrockConverse
}

func driverFor(api Api) (Driver, error) {
	switch api {
	case APIOpenAICompletions:
		return openAILikeDriver{}, nil
	case APIMinimaxCompletions:
		return minimaxDriver{}, nil
	default:
		return nil, newError(ErrInvalidResponse, "dialect not yet implemented: "+string(api))
	}
}

// Stream is the event-stream consumer handle: events arrive in order
// on Events, and the terminal message is published to the one-shot result
// slot before the final Done/Error event is pushed onto the channel, so a
// consumer that only awaits Result sees the same final state as one that
// drains all events. Events must still be drained for the producing
// goroutine to finish.
type Stream struct {
	Events <-chan Event

	mu      sync.Mutex
	done    chan struct{}
	result  *AssistantMessage
	err     error
}

// Result blocks until the stream reaches its terminal event and returns the
// final assistant message (or the error that ended it).
func (s *Stream) Result() (*AssistantMessage, error) {
	<-s.done
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.err
}

func (s *Stream) publish(msg *AssistantMessage, err error) {
	s.mu.Lock()
	s.result = msg
	s.err = err
	s.mu.Unlock()
	close(s.done)
}

// Dispatch resolves the api key, selects the driver by model.API, and starts
// the stream concurrently, returning the consumer handle synchronously.
func Dispatch(ctx context.Context, model Model, llmCtx Context, options Options) (*Stream, error) {
	driver, err := driverFor(model.API)
	if err != nil {
		return nil, err
	}

	resolved := options
	if requiresBearerToken(model.API) {
		key := resolved.ApiKey
		if key == "" {
			key = getEnvAPIKey(model.Provider)
		}
		if key == "" {
			key = secretManagerAPIKey(model.Provider, resolved.Secrets)
		}
		if key == "" {
			return nil, newError(ErrNoAPIKey, model.Provider.String())
		}
		resolved.ApiKey = key
	}

	inner := make(chan Event, eventBufferSize)
	events := make(chan Event, eventBufferSize)
	stream := &Stream{Events: events, done: make(chan struct{})}

	var msg *AssistantMessage
	var streamErr error
	go func() {
		msg, streamErr = driver.Stream(ctx, model, llmCtx, resolved, inner)
		close(inner)
	}()

	// Forward driver events, publishing the terminal message to the one-shot
	// result slot before the Done/Error event itself reaches the consumer.
	go func() {
		defer close(events)
		published := false
		for e := range inner {
			if e.Type == EventDone || e.Type == EventError {
				stream.publish(e.Partial, e.Err)
				published = true
			}
			events <- e
		}
		// msg/streamErr are visible here: their writes happen before
		// close(inner), which happens before the range loop ends.
		if !published {
			stream.publish(msg, streamErr)
		}
	}()

	return stream, nil
}

const eventBufferSize = 16

// Complete drains a stream to completion, discarding intermediate events,
// and returns the final assistant message.
func Complete(ctx context.Context, model Model, llmCtx Context, options Options) (*AssistantMessage, error) {
	stream, err := Dispatch(ctx, model, llmCtx, options)
	if err != nil {
		return nil, err
	}
	for range stream.Events {
	}
	return stream.Result()
}
