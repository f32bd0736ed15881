// Package pollinationstest provides an in-process fake of the Pollinations
// chat completions endpoint. Responses are scripted: each incoming request
// consumes the next Script from the queue (the last one repeats).
package pollinationstest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
)

// Script describes one scripted response.
type Script struct {
	// Status defaults to 200
	Status int

	// Body is written as-is for non-streaming requests and error responses
	Body string

	// Lines are written as SSE events for streaming requests
	Lines []string

	// ChunkSize splits the SSE payload into writes of at most this many
	// bytes, regardless of line boundaries. Zero writes one event per write.
	ChunkSize int

	// Delay is slept before each write
	Delay time.Duration

	// HangAfter stops writing after this many writes and blocks until the
	// client goes away. Zero never hangs.
	HangAfter int
}

// RecordedRequest is a request received by the server.
type RecordedRequest struct {
	Header http.Header
	Body   []byte
}

// JSON returns the request body as a gjson result.
func (r RecordedRequest) JSON() gjson.Result {
	return gjson.ParseBytes(r.Body)
}

// Server is a scripted fake upstream.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	scripts  []Script
	requests []RecordedRequest
}

// NewServer starts a server that answers with the given scripts in order.
func NewServer(scripts ...Script) *Server {
	s := &Server{scripts: scripts}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Enqueue appends a script.
func (s *Server) Enqueue(script Script) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripts = append(s.scripts, script)
}

// Requests returns every request received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request (zero value if none).
func (s *Server) LastRequest() RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}
	}
	return s.requests[len(s.requests)-1]
}

func (s *Server) nextScript() Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.scripts) == 0 {
		return Script{Status: http.StatusInternalServerError, Body: `{"error":"no script"}`}
	}
	script := s.scripts[0]
	if len(s.scripts) > 1 {
		s.scripts = s.scripts[1:]
	}
	return script
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{Header: r.Header.Clone(), Body: body})
	s.mu.Unlock()

	script := s.nextScript()
	status := script.Status
	if status == 0 {
		status = http.StatusOK
	}

	streaming := gjson.GetBytes(body, "stream").Bool() && status == http.StatusOK
	if !streaming {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, script.Body)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)

	flusher, _ := w.(http.Flusher)
	for i, piece := range script.writes() {
		if script.HangAfter > 0 && i == script.HangAfter {
			if flusher != nil {
				flusher.Flush()
			}
			<-r.Context().Done()
			return
		}
		if script.Delay > 0 {
			select {
			case <-time.After(script.Delay):
			case <-r.Context().Done():
				return
			}
		}
		if _, err := io.WriteString(w, piece); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// writes splits the SSE payload into the pieces written to the wire.
func (sc Script) writes() []string {
	events := make([]string, len(sc.Lines))
	for i, line := range sc.Lines {
		events[i] = line + "\n\n"
	}
	if sc.ChunkSize <= 0 {
		return events
	}

	payload := strings.Join(events, "")
	var pieces []string
	for len(payload) > sc.ChunkSize {
		pieces = append(pieces, payload[:sc.ChunkSize])
		payload = payload[sc.ChunkSize:]
	}
	if payload != "" {
		pieces = append(pieces, payload)
	}
	return pieces
}

// DataLine renders v as an SSE data line.
func DataLine(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic("pollinationstest: cannot marshal payload: " + err.Error())
	}
	return "data: " + string(data)
}

// DoneLine is the stream termination sentinel.
func DoneLine() string {
	return "data: [DONE]"
}

// StreamScript returns a 200 streaming script.
func StreamScript(lines ...string) Script {
	return Script{Lines: lines}
}

// JSONScript returns a 200 non-streaming script with v as the body.
func JSONScript(v interface{}) Script {
	data, err := json.Marshal(v)
	if err != nil {
		panic("pollinationstest: cannot marshal body: " + err.Error())
	}
	return Script{Body: string(data)}
}

// ErrorScript returns a script answering with the given status and raw body.
func ErrorScript(status int, body string) Script {
	return Script{Status: status, Body: body}
}
