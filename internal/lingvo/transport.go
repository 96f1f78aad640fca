package lingvo

import (
	"log"
	"net/http"
	"time"
)

// loggingTransport logs each exchange without headers, which carry credentials.
type loggingTransport struct {
	next http.RoundTripper
}

// NewLoggingTransport wraps next (http.DefaultTransport when nil) with request logging.
func NewLoggingTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggingTransport{next: next}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	elapsed := time.Since(start).Round(time.Millisecond)

	if err != nil {
		log.Printf("[LINGVO] %s %s failed after %v: %v", req.Method, req.URL.Path, elapsed, err)
		return nil, err
	}
	log.Printf("[LINGVO] %s %s -> %d (%v)", req.Method, req.URL.Path, resp.StatusCode, elapsed)
	return resp, nil
}
