package pollinations

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	sseDataPrefix   = "data: "
	sseDoneSentinel = "data: [DONE]"
)

// lineSplitter turns an arbitrarily chunked byte feed into complete lines.
// The trailing partial line is carried over to the next Write. Splitting
// happens on raw bytes so multi-byte runes cut across chunks stay intact.
type lineSplitter struct {
	buf []byte
}

// Write appends chunk and returns every line completed by it, without the
// trailing '\n'.
func (s *lineSplitter) Write(chunk []byte) []string {
	s.buf = append(s.buf, chunk...)

	last := bytes.LastIndexByte(s.buf, '\n')
	if last < 0 {
		return nil
	}

	lines := strings.Split(string(s.buf[:last]), "\n")

	rest := s.buf[last+1:]
	s.buf = append(s.buf[:0:0], rest...)

	return lines
}

// Flush returns the carry-over as a final line, if any. The buffer is emptied.
func (s *lineSplitter) Flush() (string, bool) {
	if len(s.buf) == 0 {
		return "", false
	}
	line := string(s.buf)
	s.buf = nil
	return line, true
}

// sseDecoder extracts chat completion chunks from SSE data lines.
//
// Non-data lines are ignored. "data: [DONE]" terminates decoding: the rest of
// the batch and all later input are discarded. Lines whose payload is not
// valid JSON are dropped; the drop is logged at debug level only.
type sseDecoder struct {
	splitter lineSplitter
	done     bool
	logger   logrus.FieldLogger
}

func newSSEDecoder(logger logrus.FieldLogger) *sseDecoder {
	return &sseDecoder{logger: logger}
}

// Done reports whether the termination sentinel was seen.
func (d *sseDecoder) Done() bool {
	return d.done
}

// Feed decodes all payloads completed by chunk.
func (d *sseDecoder) Feed(chunk []byte) []*ChatCompletionChunk {
	if d.done {
		return nil
	}

	var payloads []*ChatCompletionChunk
	for _, line := range d.splitter.Write(chunk) {
		payload, stop := d.parseLine(line)
		if stop {
			return payloads
		}
		if payload != nil {
			payloads = append(payloads, payload)
		}
	}
	return payloads
}

// Flush decodes the final unterminated line, if any.
func (d *sseDecoder) Flush() []*ChatCompletionChunk {
	if d.done {
		return nil
	}

	line, ok := d.splitter.Flush()
	if !ok {
		return nil
	}

	payload, _ := d.parseLine(line)
	if payload == nil {
		return nil
	}
	return []*ChatCompletionChunk{payload}
}

// parseLine returns the decoded payload (nil if the line carries none) and
// whether decoding must stop.
func (d *sseDecoder) parseLine(line string) (*ChatCompletionChunk, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || !strings.HasPrefix(trimmed, sseDataPrefix) {
		return nil, false
	}

	if trimmed == sseDoneSentinel {
		d.done = true
		return nil, true
	}

	var chunk ChatCompletionChunk
	if err := json.Unmarshal([]byte(trimmed[len(sseDataPrefix):]), &chunk); err != nil {
		d.logger.WithError(err).WithField("line_length", len(trimmed)).Debug("Skipping unparseable SSE data line")
		return nil, false
	}

	return &chunk, false
}
