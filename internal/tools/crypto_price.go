package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dotcommander/cryptobot/internal/coingecko"
)

// CryptoPriceName is the name the model calls the price tool by.
const CryptoPriceName = "get_crypto_price"

const usd = "usd"

// PriceSource looks up a coin price.
type PriceSource interface {
	SimplePrice(ctx context.Context, id, vsCurrency string) (coingecko.Quote, error)
}

// CryptoPriceInput is the argument object the model sends.
type CryptoPriceInput struct {
	CryptoName string `json:"crypto_name"`
}

// CryptoPrice reports the current USD price of a cryptocurrency.
type CryptoPrice struct {
	source PriceSource
}

var _ Tool = &CryptoPrice{}

// NewCryptoPrice creates the price tool backed by source.
func NewCryptoPrice(source PriceSource) *CryptoPrice {
	return &CryptoPrice{source: source}
}

func (p *CryptoPrice) Name() string { return CryptoPriceName }

func (p *CryptoPrice) Description() string {
	return "Get the current price in USD of a cryptocurrency by its CoinGecko id (for example bitcoin, ethereum, dogecoin)."
}

func (p *CryptoPrice) Parameters() Parameters {
	return Parameters{
		Properties: map[string]any{
			"crypto_name": map[string]any{
				"type":        "string",
				"description": "The cryptocurrency name or CoinGecko id, e.g. bitcoin",
			},
		},
		Required: []string{"crypto_name"},
	}
}

func (p *CryptoPrice) Invoke(ctx context.Context, args json.RawMessage) (string, error) {
	var in CryptoPriceInput
	if err := json.Unmarshal(args, &in); err != nil {
		return "", fmt.Errorf("invalid %s arguments: %w", CryptoPriceName, err)
	}
	return p.Lookup(ctx, in.CryptoName), nil
}

// Lookup returns a sentence with the price of name, or a sentence describing
// why there is none. It never fails.
func (p *CryptoPrice) Lookup(ctx context.Context, name string) string {
	q, err := p.source.SimplePrice(ctx, strings.ToLower(name), usd)
	switch {
	case err == nil:
		return fmt.Sprintf("The current price of %s is $%s.", name, q.Price)
	case errors.Is(err, coingecko.ErrNotFound):
		return fmt.Sprintf("Could not find the price for %s.", name)
	default:
		return fmt.Sprintf("An error occurred while fetching the price: %s", err)
	}
}
