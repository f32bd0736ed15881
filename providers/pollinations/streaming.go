package pollinations

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	llmprovider "github.com/haowjy/pollinations-llm-go"
)

const (
	streamReadBufferSize = 4096
	streamChannelSize    = 10
)

// StreamResponse generates a streaming response from Pollinations.
//
// Request and HTTP errors are returned directly. Once the channel is
// returned, a clean stream ends with a Finish part (when the upstream sent a
// finish reason) and an aborted stream ends with a single Error event and no
// synthetic Finish. Consumers must drain the channel until it is closed.
func (p *Provider) StreamResponse(ctx context.Context, req *llmprovider.GenerateRequest) (<-chan llmprovider.StreamEvent, error) {
	if err := p.validateRequest(req); err != nil {
		return nil, err
	}

	body, warnings, err := p.builder.build(req, true)
	if err != nil {
		return nil, err
	}

	log := p.requestLogger(req, true)
	log.Debug("Sending Pollinations request")

	resp, err := p.do(ctx, body)
	if err != nil {
		return nil, err
	}

	eventChan := make(chan llmprovider.StreamEvent, streamChannelSize)

	go func() {
		defer close(eventChan)
		defer resp.Body.Close()

		if err := p.streamEvents(ctx, resp.Body, warnings, eventChan, log); err != nil {
			log.WithError(err).Debug("Pollinations stream aborted")
			sendAbort(ctx, eventChan, err)
		}
	}()

	return eventChan, nil
}

// sendAbort delivers the abort error. A free buffer slot always takes it;
// otherwise it waits for the consumer until ctx is done.
func sendAbort(ctx context.Context, eventChan chan<- llmprovider.StreamEvent, err error) {
	event := llmprovider.StreamEvent{Error: err}
	select {
	case eventChan <- event:
		return
	default:
	}

	select {
	case eventChan <- event:
	case <-ctx.Done():
	}
}

// streamEvents pumps the response body through the SSE decoder and the delta
// normalizer. It returns nil on a clean end of stream and an error when the
// stream was aborted; in the latter case nothing is flushed.
func (p *Provider) streamEvents(
	ctx context.Context,
	body io.Reader,
	warnings []llmprovider.Warning,
	eventChan chan<- llmprovider.StreamEvent,
	log logrus.FieldLogger,
) error {
	decoder := newSSEDecoder(log)
	normalizer := newDeltaNormalizer(warnings, p.generateID)

	emit := func(parts []llmprovider.StreamPart) error {
		for _, part := range parts {
			if finish, ok := part.(llmprovider.Finish); ok {
				log.WithField("finish_reason", finish.FinishReason).Debug("Pollinations stream finished")
			}
			select {
			case eventChan <- llmprovider.StreamEvent{Part: part}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}

	buf := make([]byte, streamReadBufferSize)
	for !decoder.Done() {
		n, readErr := body.Read(buf)
		if n > 0 {
			for _, chunk := range decoder.Feed(buf[:n]) {
				if err := emit(normalizer.Process(chunk)); err != nil {
					return err
				}
			}
		}

		if readErr == nil {
			continue
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return p.wrapTransportError(fmt.Errorf("error reading stream: %w", readErr))
	}

	for _, chunk := range decoder.Flush() {
		if err := emit(normalizer.Process(chunk)); err != nil {
			return err
		}
	}

	return emit(normalizer.Flush())
}
