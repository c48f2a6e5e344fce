package tools

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"charm.land/fantasy"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/cryptobot/internal/coingecko"
)

type fakeSource struct {
	quote coingecko.Quote
	err   error
	ids   []string
}

func (f *fakeSource) SimplePrice(_ context.Context, id, vs string) (coingecko.Quote, error) {
	f.ids = append(f.ids, id+"/"+vs)
	return f.quote, f.err
}

func TestCryptoPriceLookup(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		src := &fakeSource{quote: coingecko.Quote{ID: "bitcoin", Currency: "usd", Price: "67000"}}
		out := NewCryptoPrice(src).Lookup(context.Background(), "bitcoin")
		require.Equal(t, "The current price of bitcoin is $67000.", out)
	})

	t.Run("not found keeps the given casing", func(t *testing.T) {
		src := &fakeSource{err: coingecko.ErrNotFound}
		out := NewCryptoPrice(src).Lookup(context.Background(), "Dogecoin")
		require.Equal(t, "Could not find the price for Dogecoin.", out)
		require.Equal(t, []string{"dogecoin/usd"}, src.ids)
	})

	t.Run("error is embedded", func(t *testing.T) {
		src := &fakeSource{err: errors.New("timed out")}
		out := NewCryptoPrice(src).Lookup(context.Background(), "bitcoin")
		require.Equal(t, "An error occurred while fetching the price: timed out", out)
	})

	t.Run("no memoization", func(t *testing.T) {
		src := &fakeSource{quote: coingecko.Quote{Price: "1"}}
		p := NewCryptoPrice(src)
		p.Lookup(context.Background(), "ETHEREUM")
		p.Lookup(context.Background(), "ETHEREUM")
		require.Equal(t, []string{"ethereum/usd", "ethereum/usd"}, src.ids)
	})
}

func TestCryptoPriceAgainstIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("ids") {
		case "bitcoin":
			_, _ = w.Write([]byte(`{"bitcoin":{"usd":67000}}`))
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	t.Cleanup(srv.Close)

	p := NewCryptoPrice(coingecko.New(coingecko.WithBaseURL(srv.URL)))
	require.Equal(t, "The current price of Bitcoin is $67000.", p.Lookup(context.Background(), "Bitcoin"))
	require.Equal(t, "Could not find the price for Dogecoin.", p.Lookup(context.Background(), "Dogecoin"))
}

func TestCryptoPriceInvoke(t *testing.T) {
	src := &fakeSource{quote: coingecko.Quote{Price: "3100.5"}}
	p := NewCryptoPrice(src)

	out, err := p.Invoke(context.Background(), json.RawMessage(`{"crypto_name":"ethereum"}`))
	require.NoError(t, err)
	require.Equal(t, "The current price of ethereum is $3100.5.", out)

	_, err = p.Invoke(context.Background(), json.RawMessage(`not json`))
	require.Error(t, err)
}

func TestAgentTool(t *testing.T) {
	src := &fakeSource{quote: coingecko.Quote{Price: "67000"}}
	at := AgentTool(NewCryptoPrice(src))

	info := at.Info()
	require.Equal(t, CryptoPriceName, info.Name)
	require.NotEmpty(t, info.Description)
	require.Equal(t, []string{"crypto_name"}, info.Required)
	require.Contains(t, info.Parameters, "crypto_name")

	resp, err := at.Run(context.Background(), fantasy.ToolCall{
		ID:    "call_1",
		Name:  CryptoPriceName,
		Input: `{"crypto_name":"bitcoin"}`,
	})
	require.NoError(t, err)
	require.False(t, resp.IsError)
	require.Equal(t, "The current price of bitcoin is $67000.", resp.Content)

	resp, err = at.Run(context.Background(), fantasy.ToolCall{ID: "call_2", Name: CryptoPriceName, Input: `[`})
	require.NoError(t, err)
	require.True(t, resp.IsError)

	require.Len(t, AgentTools(NewCryptoPrice(src), NewCryptoPrice(src)), 2)
}
