package lingvo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultBaseURL = "https://developers.lingvolive.com/api/v1/"
	DefaultAuthURL = "https://developers.lingvolive.com/api/v1.1/"

	defaultTimeout = 30 * time.Second
)

// Config holds client settings. Only APIKey is required.
type Config struct {
	// APIKey is the application key issued by Lingvo Live.
	APIKey string

	// BaseURL is the prefix for lookup methods. Default: DefaultBaseURL
	BaseURL string

	// AuthURL is the prefix for the authenticate endpoint. Default: DefaultAuthURL
	AuthURL string

	// Timeout bounds each HTTP exchange. Default: 30s. Ignored when HTTPClient is set.
	Timeout time.Duration

	// LogRequests wraps the transport with request logging.
	LogRequests bool

	// HTTPClient overrides the client used for all requests.
	HTTPClient *http.Client
}

// DefaultConfig returns a Config pointing at the public API.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		AuthURL: DefaultAuthURL,
		Timeout: defaultTimeout,
	}
}

// Client executes Lingvo API requests with a bearer token it owns.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	auth        *Authenticator
	authTimeout time.Duration

	mu    sync.RWMutex
	token string

	reauth singleflight.Group
}

// New creates a Client and performs the initial authentication. It fails with
// an *AuthenticationError when the API key is rejected.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("lingvo: api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.LogRequests {
		logged := *httpClient
		logged.Transport = NewLoggingTransport(httpClient.Transport)
		httpClient = &logged
	}

	c := &Client{
		httpClient:  httpClient,
		baseURL:     withTrailingSlash(cfg.BaseURL),
		auth:        NewAuthenticator(httpClient, withTrailingSlash(cfg.AuthURL), cfg.APIKey),
		authTimeout: cfg.Timeout,
	}

	token, err := c.auth.Authenticate(ctx)
	if err != nil {
		return nil, fmt.Errorf("initial authentication: %w", err)
	}
	c.setToken(token)
	log.Printf("[LINGVO] Authenticated against %s", cfg.AuthURL)

	return c, nil
}

// Token returns the bearer token currently in use.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Reauthenticate exchanges the API key for a new token right away.
func (c *Client) Reauthenticate(ctx context.Context) error {
	return c.refreshToken(ctx, c.Token(), true)
}

// Execute sends req and blocks until the result is available. A 401 triggers
// one re-authentication and one resend; the resend's outcome is final.
// Other non-2xx statuses come back as a result with IsOk false.
func (c *Client) Execute(ctx context.Context, req Request) (Result, error) {
	return c.roundTrip(ctx, newCallID(), req)
}

// Callback receives the outcome of ExecuteAsync. Exactly one method is called,
// once, from a goroutine other than the caller's.
type Callback interface {
	OnResponse(req Request, result Result)
	OnFailure(req Request, err error)
}

// CallbackFuncs adapts two functions to Callback. Nil functions are skipped.
type CallbackFuncs struct {
	Response func(req Request, result Result)
	Failure  func(req Request, err error)
}

func (f CallbackFuncs) OnResponse(req Request, result Result) {
	if f.Response != nil {
		f.Response(req, result)
	}
}

func (f CallbackFuncs) OnFailure(req Request, err error) {
	if f.Failure != nil {
		f.Failure(req, err)
	}
}

// ExecuteAsync runs the same sequence as Execute without blocking the caller.
// The intermediate 401 of a retried call is never delivered to cb. A nil cb
// discards the outcome.
func (c *Client) ExecuteAsync(ctx context.Context, req Request, cb Callback) {
	if cb == nil {
		cb = CallbackFuncs{}
	}
	callID := newCallID()
	go func() {
		result, err := c.roundTrip(ctx, callID, req)
		if err != nil {
			cb.OnFailure(req, err)
			return
		}
		cb.OnResponse(req, result)
	}()
}

// Do executes req and asserts the result type.
func Do[R Result](ctx context.Context, c *Client, req Request) (R, error) {
	var zero R
	result, err := c.Execute(ctx, req)
	if err != nil {
		return zero, err
	}
	typed, ok := result.(R)
	if !ok {
		return zero, &DecodeError{Method: req.Method(), Err: fmt.Errorf("unexpected result type %T", result)}
	}
	return typed, nil
}

// rawResponse is an undecoded HTTP exchange.
type rawResponse struct {
	status     int
	statusText string
	body       []byte
}

// roundTrip is the whole life of one logical call: send, on 401 refresh the
// token and send again, then decode whichever response is final.
func (c *Client) roundTrip(ctx context.Context, callID string, req Request) (Result, error) {
	token := c.Token()
	raw, err := c.send(ctx, req, token)
	if err != nil {
		return nil, err
	}

	if raw.status == http.StatusUnauthorized {
		log.Printf("[LINGVO] %s %s: token rejected, re-authenticating", callID, req.Method())
		if err := c.refreshToken(ctx, token, false); err != nil {
			return nil, fmt.Errorf("re-authenticate for %s: %w", req.Method(), err)
		}
		raw, err = c.send(ctx, req, c.Token())
		if err != nil {
			return nil, err
		}
		if raw.status == http.StatusUnauthorized {
			log.Printf("[LINGVO] %s %s: retry rejected again, giving up", callID, req.Method())
		}
	}

	return decode(req, raw.status, raw.statusText, raw.body)
}

// refreshToken replaces the token. Concurrent callers share one exchange; a
// caller whose stale token was already replaced skips the exchange unless force is set.
// The shared exchange is detached from the caller that started it, so each
// caller is only interrupted by its own ctx.
func (c *Client) refreshToken(ctx context.Context, stale string, force bool) error {
	exchangeCtx := context.WithoutCancel(ctx)
	ch := c.reauth.DoChan("authenticate", func() (any, error) {
		if current := c.Token(); !force && current != stale {
			return current, nil
		}
		authCtx, cancel := context.WithTimeout(exchangeCtx, c.authTimeout)
		defer cancel()

		token, err := c.auth.Authenticate(authCtx)
		if err != nil {
			return nil, err
		}
		c.setToken(token)
		return token, nil
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return &TransportError{Method: authenticateMethod, Err: ctx.Err()}
	}
}

func (c *Client) send(ctx context.Context, req Request, token string) (*rawResponse, error) {
	httpReq, err := c.newRequest(ctx, req, token)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Method: req.Method(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: req.Method(), Err: err}
	}

	return &rawResponse{
		status:     resp.StatusCode,
		statusText: statusText(resp),
		body:       body,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, req Request, token string) (*http.Request, error) {
	url := c.baseURL + req.Method() + req.Params().QueryString()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", req.Method(), err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	return httpReq, nil
}

// statusText returns the reason phrase the server sent, e.g. "Not Found".
func statusText(resp *http.Response) string {
	if text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); text != "" && text != resp.Status {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

func withTrailingSlash(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}

func newCallID() string {
	return uuid.NewString()[:8]
}

// IsTransportError reports whether err came from the network rather than the API.
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
