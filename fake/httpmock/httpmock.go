// Package httpmock provides a mockable HTTP transport for tests: an
// http.RoundTripper fed with canned responses or errors, which records every
// outgoing request and tracks call counts per method and per URL.
//
// Results can be configured as a single reusable result, an ordered queue
// that is consumed call by call, or per-URL variants of either:
//
//	tr := httpmock.NewTransport(httpmock.Respond(200, `{"ok":true}`))
//	tr.Queue("http://api/flaky", httpmock.Error(io.ErrUnexpectedEOF), httpmock.Respond(200, "ok"))
//	client := tr.Client()
package httpmock

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// LoggedRequest keeps a simplified record of one outgoing request.
type LoggedRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Result is one canned outcome for a request: a response template or an
// error to be returned from RoundTrip.
type Result struct {
	status int
	header http.Header
	body   []byte
	err    error
}

// Respond returns a Result carrying the given status and body.
func Respond(status int, body string) Result {
	return Result{status: status, body: []byte(body)}
}

// RespondJSON returns a Result carrying the given status and v encoded as a
// JSON body with the matching content type.
func RespondJSON(status int, v any) Result {
	b, err := json.Marshal(v)
	if err != nil {
		return Result{err: fmt.Errorf("httpmock: encode JSON result: %w", err)}
	}
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	return Result{status: status, header: h, body: b}
}

// Error returns a Result that makes RoundTrip fail with err.
func Error(err error) Result {
	return Result{err: err}
}

// WithHeader returns a copy of the result with an extra response header.
func (r Result) WithHeader(key, value string) Result {
	h := http.Header{}
	for k, v := range r.header {
		h[k] = v
	}
	h.Set(key, value)
	r.header = h
	return r
}

type resultQueue struct {
	static  *Result // reused indefinitely when set
	pending []Result
}

func (q *resultQueue) next() (Result, bool) {
	if q.static != nil {
		return *q.static, true
	}
	if len(q.pending) == 0 {
		return Result{}, false
	}
	r := q.pending[0]
	q.pending = q.pending[1:]
	return r, true
}

// Transport is a mock http.RoundTripper. Construct with NewTransport or
// NewQueue and hand it to the code under test via Client. All methods are
// safe for concurrent use.
type Transport struct {
	mu          sync.Mutex
	fallback    resultQueue
	byURL       map[string]*resultQueue
	requests    []LoggedRequest
	byMethod    map[string]int
	byMethodURL map[string]int
	arrivals    chan struct{}
}

// NewTransport returns a transport that answers every request with result.
func NewTransport(result Result) *Transport {
	t := newTransport()
	t.fallback.static = &result
	return t
}

// NewQueue returns a transport that consumes the given results in order and
// fails once they are exhausted.
func NewQueue(results ...Result) *Transport {
	t := newTransport()
	t.fallback.pending = results
	return t
}

func newTransport() *Transport {
	return &Transport{
		byURL:       make(map[string]*resultQueue),
		byMethod:    make(map[string]int),
		byMethodURL: make(map[string]int),
		arrivals:    make(chan struct{}, 1024),
	}
}

// Handle makes every request for url answer with result, taking precedence
// over the fallback configuration.
func (t *Transport) Handle(url string, result Result) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byURL[url] = &resultQueue{static: &result}
	return t
}

// Queue sets an ordered, consumed-per-call result list for url.
func (t *Transport) Queue(url string, results ...Result) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byURL[url] = &resultQueue{pending: results}
	return t
}

// Client returns an http.Client using this transport.
func (t *Transport) Client() *http.Client {
	return &http.Client{Transport: t}
}

// RoundTrip implements http.RoundTripper. Unmatched requests and exhausted
// queues return an error rather than a response, failing the consuming call.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		b, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("httpmock: read request body: %w", err)
		}
		body = b
	}
	url := req.URL.String()

	t.mu.Lock()
	t.requests = append(t.requests, LoggedRequest{
		Method: req.Method,
		URL:    url,
		Header: req.Header.Clone(),
		Body:   body,
	})
	t.byMethod[req.Method]++
	t.byMethodURL[req.Method+" "+url]++

	result, ok := Result{}, false
	if q := t.byURL[url]; q != nil {
		result, ok = q.next()
	}
	if !ok {
		result, ok = t.fallback.next()
	}
	t.mu.Unlock()

	select {
	case t.arrivals <- struct{}{}:
	default:
	}

	if !ok {
		return nil, fmt.Errorf("httpmock: no result configured for %s %s", req.Method, url)
	}
	if result.err != nil {
		return nil, result.err
	}

	header := result.header
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", result.status, http.StatusText(result.status)),
		StatusCode:    result.status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(result.body)),
		ContentLength: int64(len(result.body)),
		Request:       req,
	}, nil
}

// Requests returns a copy of the logged requests, in arrival order.
func (t *Transport) Requests() []LoggedRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]LoggedRequest, len(t.requests))
	copy(out, t.requests)
	return out
}

// CallCount returns how many requests used the given method.
func (t *Transport) CallCount(method string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.byMethod[method]
}

// CallCountFor returns how many requests used the given method and URL.
func (t *Transport) CallCountFor(method, url string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.byMethodURL[method+" "+url]
}

// WaitForRequests blocks until n further requests have been consumed or ctx
// expires. Requests made before the call count towards n; each call consumes
// the requests it observed, so a later call waits for new ones.
func (t *Transport) WaitForRequests(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		select {
		case <-t.arrivals:
		case <-ctx.Done():
			return fmt.Errorf("httpmock: waited for %d requests, got %d: %w", n, i, ctx.Err())
		}
	}
	return nil
}
