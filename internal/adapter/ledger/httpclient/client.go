package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mergeverse/internal/app/ports"
)

var (
	ErrUnknownSymbol = errors.New("unknown crypto symbol")
	ErrSkillTooLow   = errors.New("skill score below symbol eligibility floor")
)

// CryptoInfo describes one supported exchange target.
type CryptoInfo struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Network      string  `json:"network"`
	MinIQ        int     `json:"min_iq"`
	ExchangeRate float64 `json:"exchange_rate"`
	Decimals     int     `json:"decimals"`
}

// DefaultCryptos is the built-in quote table.
func DefaultCryptos() []CryptoInfo {
	return []CryptoInfo{
		{Symbol: "ETH", Name: "Ethereum", Network: "ethereum", MinIQ: 10, ExchangeRate: 0.0005, Decimals: 18},
		{Symbol: "USDT", Name: "Tether USD", Network: "ethereum", MinIQ: 20, ExchangeRate: 0.8, Decimals: 6},
		{Symbol: "MATIC", Name: "Polygon", Network: "polygon", MinIQ: 30, ExchangeRate: 1.2, Decimals: 18},
		{Symbol: "BNB", Name: "BNB", Network: "bsc", MinIQ: 30, ExchangeRate: 0.5, Decimals: 18},
	}
}

// Client quotes exchanges from the static table and submits transfers to the
// external ledger service.
type Client struct {
	baseURL    string
	cryptos    []CryptoInfo
	httpClient *http.Client
}

var _ ports.Ledger = (*Client)(nil)

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		cryptos: DefaultCryptos(),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) lookup(symbol string) (CryptoInfo, bool) {
	for _, info := range c.cryptos {
		if info.Symbol == symbol {
			return info, true
		}
	}
	return CryptoInfo{}, false
}

func (c *Client) Quote(_ context.Context, amount int, symbol string, iq int) (float64, error) {
	info, ok := c.lookup(symbol)
	if !ok {
		return 0, ErrUnknownSymbol
	}
	if iq < info.MinIQ {
		return 0, ErrSkillTooLow
	}
	return float64(amount) * info.ExchangeRate, nil
}

type transferResponse struct {
	TxRef string `json:"tx_ref"`
}

func (c *Client) Transfer(ctx context.Context, amount int, symbol, address string) (string, error) {
	info, ok := c.lookup(symbol)
	if !ok {
		return "", ErrUnknownSymbol
	}
	payload := map[string]any{
		"amount":  amount,
		"symbol":  info.Symbol,
		"network": info.Network,
		"address": address,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ledger/transfer", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ledger request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("ledger status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	var out transferResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode ledger response: %w", err)
	}
	return out.TxRef, nil
}
