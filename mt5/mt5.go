package mt5

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"github.com/xyths/hs/convert"
)

const DefaultGatewayURL = "http://127.0.0.1:6542"

const (
	GET  = "GET"
	POST = "POST"
)

// Client talks to a locally running MetaTrader 5 terminal gateway.
type Client struct {
	GatewayURL string

	client *http.Client
}

func New(gatewayURL string, timeout time.Duration) *Client {
	if gatewayURL == "" {
		gatewayURL = DefaultGatewayURL
	}
	return &Client{
		GatewayURL: strings.TrimRight(gatewayURL, "/"),
		client:     &http.Client{Timeout: timeout},
	}
}

// Initialize opens the terminal session. On failure callers should query
// LastError for the platform error code.
func (c *Client) Initialize(ctx context.Context) error {
	var r responseInitialize
	if err := c.request(ctx, POST, "/initialize", nil, nil, &r); err != nil {
		return err
	}
	if !r.Success {
		if r.Message != "" {
			return errors.Errorf("initialize rejected: %s", r.Message)
		}
		return errors.New("initialize rejected")
	}
	return nil
}

// Shutdown tears the session down. Best effort.
func (c *Client) Shutdown(ctx context.Context) error {
	return c.request(ctx, POST, "/shutdown", nil, nil, nil)
}

// AccountInfo returns nil without error when the terminal has no active
// account session.
func (c *Client) AccountInfo(ctx context.Context) (*AccountInfo, error) {
	var raw *rawAccountInfo
	if err := c.request(ctx, GET, "/account_info", nil, nil, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return &AccountInfo{
		Login:   raw.Login,
		Server:  raw.Server,
		Balance: convert.StrToFloat64(raw.Balance),
		Equity:  convert.StrToFloat64(raw.Equity),
	}, nil
}

// SymbolInfo returns nil without error when the symbol is unknown.
func (c *Client) SymbolInfo(ctx context.Context, symbol string) (*SymbolInfo, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	var info *SymbolInfo
	if err := c.request(ctx, GET, "/symbol_info", q, nil, &info); err != nil {
		return nil, err
	}
	return info, nil
}

func (c *Client) SymbolSelect(ctx context.Context, symbol string, enable bool) (bool, error) {
	in := struct {
		Symbol string `json:"symbol"`
		Enable bool   `json:"enable"`
	}{symbol, enable}
	var r responseSelect
	if err := c.request(ctx, POST, "/symbol_select", nil, in, &r); err != nil {
		return false, err
	}
	return r.Success, nil
}

// SymbolInfoTick returns nil without error when no quote is available.
func (c *Client) SymbolInfoTick(ctx context.Context, symbol string) (*Tick, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	var tick *Tick
	if err := c.request(ctx, GET, "/symbol_info_tick", q, nil, &tick); err != nil {
		return nil, err
	}
	return tick, nil
}

func (c *Client) OrderSend(ctx context.Context, req *OrderRequest) (*OrderResult, error) {
	var result OrderResult
	if err := c.request(ctx, POST, "/order_send", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) LastError(ctx context.Context) (*LastError, error) {
	var last LastError
	if err := c.request(ctx, GET, "/last_error", nil, nil, &last); err != nil {
		return nil, err
	}
	return &last, nil
}

func (c *Client) request(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	u := c.GatewayURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var body io.Reader
	if in != nil {
		b, err := sonic.Marshal(in)
		if err != nil {
			return errors.Wrapf(err, "encode %s request", path)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return errors.Wrapf(err, "build %s request", path)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "read %s response", path)
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(b, out); err != nil {
		return errors.Wrapf(err, "decode %s response", path)
	}
	return nil
}
