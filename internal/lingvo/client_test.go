package lingvo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mrlokans/lexscheduler/internal/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-key"

// fakeLingvo imitates the authenticate endpoint and the lookup methods.
// Tokens are issued as "token-1", "token-2", ...; only the latest is accepted
// unless acceptToken overrides it.
type fakeLingvo struct {
	authCalls   atomic.Int32
	lookupCalls atomic.Int32

	mu          sync.Mutex
	issued      string
	acceptToken func(token string, call int32) bool
	lookup      func(w http.ResponseWriter, r *http.Request)
	beforeAuth  func(call int32)
	lastAuth    *http.Request
	lastLookup  *http.Request
}

func (f *fakeLingvo) setAccept(fn func(token string, call int32) bool) {
	f.mu.Lock()
	f.acceptToken = fn
	f.mu.Unlock()
}

func (f *fakeLingvo) setBeforeAuth(fn func(call int32)) {
	f.mu.Lock()
	f.beforeAuth = fn
	f.mu.Unlock()
}

func (f *fakeLingvo) setLookup(fn func(w http.ResponseWriter, r *http.Request)) {
	f.mu.Lock()
	f.lookup = fn
	f.mu.Unlock()
}

func newFakeLingvo(t *testing.T) (*fakeLingvo, *httptest.Server) {
	t.Helper()
	f := &fakeLingvo{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1.1/authenticate", func(w http.ResponseWriter, r *http.Request) {
		n := f.authCalls.Add(1)
		f.mu.Lock()
		f.lastAuth = r
		before := f.beforeAuth
		f.mu.Unlock()
		if before != nil {
			before(n)
		}

		if r.Method != http.MethodPost || r.Header.Get("Authorization") != "Basic "+testAPIKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		token := fmt.Sprintf("token-%d", n)
		f.mu.Lock()
		f.issued = token
		f.mu.Unlock()
		_, _ = io.WriteString(w, token)
	})
	mux.HandleFunc("/api/v1/", func(w http.ResponseWriter, r *http.Request) {
		n := f.lookupCalls.Add(1)
		f.mu.Lock()
		f.lastLookup = r
		issued := f.issued
		accept := f.acceptToken
		lookup := f.lookup
		f.mu.Unlock()

		token := r.Header.Get("Authorization")
		ok := token == "Bearer "+issued
		if accept != nil {
			ok = accept(token, n)
		}
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if lookup != nil {
			lookup(w, r)
			return
		}
		_, _ = io.WriteString(w, `["cat","cats"]`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func testConfig(srv *httptest.Server, apiKey string) Config {
	return Config{
		APIKey:     apiKey,
		BaseURL:    srv.URL + "/api/v1/",
		AuthURL:    srv.URL + "/api/v1.1/",
		HTTPClient: srv.Client(),
	}
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	client, err := New(context.Background(), testConfig(srv, testAPIKey))
	require.NoError(t, err)
	return client
}

func TestNew_InvalidAPIKey(t *testing.T) {
	fake, srv := newFakeLingvo(t)

	client, err := New(context.Background(), testConfig(srv, "wrong-key"))
	require.Error(t, err)
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrInvalidAPIKey)

	var authErr *AuthenticationError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Equal(t, int32(1), fake.authCalls.Load())
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}

func TestNew_AuthenticateRequestShape(t *testing.T) {
	fake, srv := newFakeLingvo(t)

	client := newTestClient(t, srv)
	assert.Equal(t, "token-1", client.Token())

	fake.mu.Lock()
	req := fake.lastAuth
	fake.mu.Unlock()
	require.NotNil(t, req)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "Basic "+testAPIKey, req.Header.Get("Authorization"))
	assert.Equal(t, int64(0), req.ContentLength)
}

func TestNew_AuthServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, "maintenance")
	}))
	defer srv.Close()

	_, err := New(context.Background(), testConfig(srv, testAPIKey))

	var authErr *AuthenticationError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, http.StatusServiceUnavailable, authErr.StatusCode)
	assert.Equal(t, "maintenance", authErr.Body)
	assert.NotErrorIs(t, err, ErrInvalidAPIKey)
}

func TestExecute_Success(t *testing.T) {
	fake, srv := newFakeLingvo(t)
	fake.setLookup(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"Lexem":"cat","PartOfSpeech":"noun","ParadigmJson":{"Name":"cat","Grammar":"","Groups":[{"Name":"","Table":[[{"Value":"cat","Prefix":""},{"Value":"cats","Prefix":""}]],"ColumnCount":2,"RowCount":1}]}}]`)
	})

	client := newTestClient(t, srv)
	resp, err := client.GetWordForms(context.Background(), "cat", lang.EN)
	require.NoError(t, err)

	assert.True(t, resp.IsOk)
	assert.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, resp.LexemModels, 1)
	assert.Equal(t, "cat", resp.LexemModels[0].Lexem)
	assert.Equal(t, []string{"cat", "cats"}, resp.LexemModels[0].Paradigm.Forms())

	fake.mu.Lock()
	req := fake.lastLookup
	fake.mu.Unlock()
	assert.Equal(t, "/api/v1/WordForms", req.URL.Path)
	assert.Equal(t, "text=cat&lang=1033", req.URL.RawQuery)
	assert.Equal(t, "Bearer token-1", req.Header.Get("Authorization"))

	assert.Equal(t, int32(1), fake.authCalls.Load(), "no re-authentication without a 401")
	assert.Equal(t, int32(1), fake.lookupCalls.Load())
}

func TestExecute_RemoteErrorDoesNotReauthenticate(t *testing.T) {
	fake, srv := newFakeLingvo(t)
	fake.setLookup(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"a":1}`)
	})

	client := newTestClient(t, srv)
	resp, err := client.GetSuggests(context.Background(), "zzz", lang.EN, lang.RU)
	require.NoError(t, err)

	assert.False(t, resp.IsOk)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Not Found", resp.Message)
	assert.JSONEq(t, `{"a":1}`, string(resp.ErrorDescription))
	assert.Empty(t, resp.Suggests)
	assert.True(t, IsNotFound(resp.Err()))

	assert.Equal(t, int32(1), fake.authCalls.Load())
	assert.Equal(t, int32(1), fake.lookupCalls.Load())
}

func TestExecute_RetriesOnceAfter401(t *testing.T) {
	fake, srv := newFakeLingvo(t)
	client := newTestClient(t, srv)

	// The token minted at construction expires before the first lookup.
	fake.setAccept(func(token string, call int32) bool { return call > 1 && token == "Bearer token-2" })

	resp, err := client.GetSuggests(context.Background(), "cat", lang.EN, lang.RU)
	require.NoError(t, err)

	assert.True(t, resp.IsOk)
	assert.Equal(t, []string{"cat", "cats"}, resp.Suggests)
	assert.Equal(t, "token-2", client.Token())
	assert.Equal(t, int32(2), fake.authCalls.Load(), "exactly one re-authentication")
	assert.Equal(t, int32(2), fake.lookupCalls.Load(), "exactly one retried request")
}

func TestExecute_SecondUnauthorizedIsFinal(t *testing.T) {
	fake, srv := newFakeLingvo(t)
	client := newTestClient(t, srv)

	fake.setAccept(func(string, int32) bool { return false })

	resp, err := client.GetWordForms(context.Background(), "cat", lang.EN)
	require.NoError(t, err)

	assert.False(t, resp.IsOk)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, int32(2), fake.authCalls.Load())
	assert.Equal(t, int32(2), fake.lookupCalls.Load(), "no third attempt")
}

func TestExecute_ReauthenticationFailure(t *testing.T) {
	fake, srv := newFakeLingvo(t)
	client := newTestClient(t, srv)

	// Revoke the key: the next authenticate call answers 401.
	client.auth.apiKey = "revoked"
	fake.setAccept(func(string, int32) bool { return false })

	_, err := client.GetWordForms(context.Background(), "cat", lang.EN)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAPIKey)
	assert.Equal(t, int32(1), fake.lookupCalls.Load())
}

func TestExecute_TransportErrorNotRetried(t *testing.T) {
	fake, srv := newFakeLingvo(t)

	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	cfg := testConfig(srv, testAPIKey)
	cfg.BaseURL = deadURL + "/api/v1/"
	client, err := New(context.Background(), cfg)
	require.NoError(t, err)

	_, err = client.GetWordForms(context.Background(), "cat", lang.EN)
	require.Error(t, err)
	assert.True(t, IsTransportError(err))

	var decodeErr *DecodeError
	assert.False(t, errors.As(err, &decodeErr))
	assert.Equal(t, int32(1), fake.authCalls.Load())
}

func TestExecute_DecodeError(t *testing.T) {
	fake, srv := newFakeLingvo(t)
	fake.setLookup(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>oops</html>`)
	})

	client := newTestClient(t, srv)
	_, err := client.GetWordForms(context.Background(), "cat", lang.EN)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "WordForms", decodeErr.Method)
	assert.False(t, IsTransportError(err))
}

func TestExecute_ContextCancelled(t *testing.T) {
	_, srv := newFakeLingvo(t)
	client := newTestClient(t, srv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Execute(ctx, WordForms{Text: "cat", Lang: lang.EN})
	assert.True(t, IsTransportError(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReauthenticate(t *testing.T) {
	fake, srv := newFakeLingvo(t)
	client := newTestClient(t, srv)

	require.NoError(t, client.Reauthenticate(context.Background()))
	assert.Equal(t, "token-2", client.Token())
	assert.Equal(t, int32(2), fake.authCalls.Load())
}

func TestExecute_ConcurrentUnauthorizedCalls(t *testing.T) {
	fake, srv := newFakeLingvo(t)
	client := newTestClient(t, srv)

	const calls = 8

	// Hold every first attempt until all of them arrived, so all callers see
	// the 401 for token-1 together.
	var rejected atomic.Int32
	allRejected := make(chan struct{})
	fake.setAccept(func(token string, _ int32) bool {
		if token != "Bearer token-1" {
			return true
		}
		if rejected.Add(1) == calls {
			close(allRejected)
		}
		select {
		case <-allRejected:
		case <-time.After(5 * time.Second):
		}
		return false
	})

	var wg sync.WaitGroup
	errs := make(chan error, calls)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.GetSuggests(context.Background(), "cat", lang.EN, lang.RU)
			if err == nil && !resp.IsOk {
				err = resp.Err()
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(2), fake.authCalls.Load(), "one initial exchange plus one shared re-authentication")
	assert.Equal(t, int32(2*calls), fake.lookupCalls.Load())
	assert.Equal(t, "token-2", client.Token())
}

func TestExecute_CancelledCallerDoesNotFailSharedReauthentication(t *testing.T) {
	fake, srv := newFakeLingvo(t)
	client := newTestClient(t, srv)

	fake.setAccept(func(token string, _ int32) bool { return token != "Bearer token-1" })

	authStarted := make(chan struct{})
	releaseAuth := make(chan struct{})
	var releaseOnce sync.Once
	release := func() { releaseOnce.Do(func() { close(releaseAuth) }) }
	t.Cleanup(release)

	fake.setBeforeAuth(func(call int32) {
		if call == 2 {
			close(authStarted)
			<-releaseAuth
		}
	})

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	errA := make(chan error, 1)
	go func() {
		_, err := client.Execute(ctxA, WordForms{Text: "cat", Lang: lang.EN})
		errA <- err
	}()

	select {
	case <-authStarted:
	case <-time.After(5 * time.Second):
		t.Fatal("re-authentication did not start")
	}

	errB := make(chan error, 1)
	go func() {
		resp, err := client.GetSuggests(context.Background(), "cat", lang.EN, lang.RU)
		if err == nil && !resp.IsOk {
			err = resp.Err()
		}
		errB <- err
	}()

	// Let the second caller reach its own 401 and join the exchange.
	require.Eventually(t, func() bool { return fake.lookupCalls.Load() >= 2 }, 5*time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	cancelA()
	select {
	case err := <-errA:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled caller did not return")
	}

	release()
	select {
	case err := <-errB:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("second caller did not return")
	}

	assert.Equal(t, int32(2), fake.authCalls.Load())
	assert.Equal(t, "token-2", client.Token())
}

type recordingCallback struct {
	responses atomic.Int32
	failures  atomic.Int32
	result    chan Result
	err       chan error
}

func newRecordingCallback() *recordingCallback {
	return &recordingCallback{
		result: make(chan Result, 2),
		err:    make(chan error, 2),
	}
}

func (r *recordingCallback) OnResponse(_ Request, result Result) {
	r.responses.Add(1)
	r.result <- result
}

func (r *recordingCallback) OnFailure(_ Request, err error) {
	r.failures.Add(1)
	r.err <- err
}

func TestExecuteAsync_RetriedCallCompletesOnce(t *testing.T) {
	fake, srv := newFakeLingvo(t)
	client := newTestClient(t, srv)

	fake.setAccept(func(token string, call int32) bool { return call > 1 })

	cb := newRecordingCallback()
	client.ExecuteAsync(context.Background(), Suggests{Text: "cat", SrcLang: lang.EN, DstLang: lang.RU}, cb)

	select {
	case result := <-cb.result:
		resp, ok := result.(*SuggestsResponse)
		require.True(t, ok)
		assert.True(t, resp.IsOk)
		assert.Equal(t, []string{"cat", "cats"}, resp.Suggests)
	case err := <-cb.err:
		t.Fatalf("unexpected failure: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("callback was not invoked")
	}

	// Give a stray second invocation a chance to show up.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), cb.responses.Load())
	assert.Equal(t, int32(0), cb.failures.Load())
	assert.Equal(t, int32(2), fake.lookupCalls.Load())
}

func TestExecuteAsync_TransportFailure(t *testing.T) {
	_, srv := newFakeLingvo(t)

	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	cfg := testConfig(srv, testAPIKey)
	cfg.BaseURL = deadURL + "/api/v1/"
	client, err := New(context.Background(), cfg)
	require.NoError(t, err)

	var calls atomic.Int32
	done := make(chan error, 2)
	client.ExecuteAsync(context.Background(), WordForms{Text: "cat", Lang: lang.EN}, CallbackFuncs{
		Response: func(Request, Result) {
			calls.Add(1)
			done <- nil
		},
		Failure: func(_ Request, err error) {
			calls.Add(1)
			done <- err
		},
	})

	select {
	case err := <-done:
		assert.True(t, IsTransportError(err))
	case <-time.After(5 * time.Second):
		t.Fatal("callback was not invoked")
	}

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDo_UnexpectedResultType(t *testing.T) {
	_, srv := newFakeLingvo(t)
	client := newTestClient(t, srv)

	_, err := Do[*WordFormsResponse](context.Background(), client, Suggests{Text: "cat", SrcLang: lang.EN, DstLang: lang.RU})

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestLoggingTransport(t *testing.T) {
	fake, srv := newFakeLingvo(t)

	cfg := testConfig(srv, testAPIKey)
	cfg.LogRequests = true
	client, err := New(context.Background(), cfg)
	require.NoError(t, err)

	resp, err := client.GetSuggests(context.Background(), "cat", lang.EN, lang.RU)
	require.NoError(t, err)
	assert.True(t, resp.IsOk)
	assert.Equal(t, int32(1), fake.lookupCalls.Load())
}

func TestExecuteAsync_NilCallback(t *testing.T) {
	fake, srv := newFakeLingvo(t)
	client := newTestClient(t, srv)

	client.ExecuteAsync(context.Background(), WordForms{Text: "cat", Lang: lang.EN}, nil)

	require.Eventually(t, func() bool { return fake.lookupCalls.Load() == 1 }, 5*time.Second, 5*time.Millisecond)
}
