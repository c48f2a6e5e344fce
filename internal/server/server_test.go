package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/cryptobot/internal/agent"
	"github.com/dotcommander/cryptobot/internal/chat"
	"github.com/dotcommander/cryptobot/internal/errs"
	"github.com/dotcommander/cryptobot/internal/workpool"
)

type stubRunner struct {
	err error
}

func (s stubRunner) Run(_ context.Context, _ agent.Agent, input string) (agent.Result, error) {
	if s.err != nil {
		return agent.Result{}, s.err
	}
	return agent.Result{FinalOutput: "echo: " + input}, nil
}

func newTestServer(t *testing.T, runner chat.Runner) *httptest.Server {
	t.Helper()
	pool := workpool.New(2)
	t.Cleanup(pool.Close)
	s := New(agent.NewCryptoBot(nil), pool, "127.0.0.1:0", zerolog.Nop(), chat.WithRunner(runner))
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url+"/api/v1/chat", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestHandleChat(t *testing.T) {
	srv := newTestServer(t, stubRunner{})

	resp, data := post(t, srv.URL, `{"message":"What's the price of bitcoin?"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var out ChatResponse
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, "echo: What's the price of bitcoin?", out.Response)
	_, err := uuid.Parse(out.ID)
	require.NoError(t, err)
}

func TestHandleChatDistinctIDs(t *testing.T) {
	srv := newTestServer(t, stubRunner{})

	var ids []string
	for range 2 {
		_, data := post(t, srv.URL, `{"message":"price of eth"}`)
		var out ChatResponse
		require.NoError(t, json.Unmarshal(data, &out))
		ids = append(ids, out.ID)
	}
	require.NotEqual(t, ids[0], ids[1])
}

func TestHandleChatBadRequest(t *testing.T) {
	srv := newTestServer(t, stubRunner{})

	cases := map[string]struct {
		body string
		want string
	}{
		"invalid json":  {body: `{`, want: "invalid request body"},
		"empty message": {body: `{"message":""}`, want: "message is required"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp, data := post(t, srv.URL, tc.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var out ErrorResponse
			require.NoError(t, json.Unmarshal(data, &out))
			require.Equal(t, tc.want, out.Error)
		})
	}
}

func TestHandleChatRunFailure(t *testing.T) {
	srv := newTestServer(t, stubRunner{err: errs.Error{Reason: "The inference API had a server error."}})

	resp, data := post(t, srv.URL, `{"message":"price of bitcoin"}`)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	var out ErrorResponse
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, "The inference API had a server error.", out.Error)
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, stubRunner{})

	resp, err := http.Get(srv.URL + "/api/v1/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "ok", out["status"])
}

func TestStatusFor(t *testing.T) {
	require.Equal(t, http.StatusGatewayTimeout, statusFor(context.DeadlineExceeded))
	require.Equal(t, http.StatusServiceUnavailable, statusFor(context.Canceled))
	require.Equal(t, http.StatusBadGateway, statusFor(errs.Error{Reason: "x"}))
}

func TestServeShutsDownOnCancel(t *testing.T) {
	pool := workpool.New(1)
	defer pool.Close()
	s := New(agent.NewCryptoBot(nil), pool, "127.0.0.1:0", zerolog.Nop(), chat.WithRunner(stubRunner{}))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/api/v1/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
