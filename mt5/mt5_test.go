package mt5

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, 5*time.Second)
}

func TestClient_Initialize(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/initialize", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	c := newTestClient(t, mux)
	require.NoError(t, c.Initialize(context.Background()))
}

func TestClient_InitializeRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/initialize", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"no terminal"}`))
	})
	mux.HandleFunc("/last_error", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":-10005,"message":"IPC timeout"}`))
	})
	c := newTestClient(t, mux)
	err := c.Initialize(context.Background())
	require.Error(t, err)

	last, err := c.LastError(context.Background())
	require.NoError(t, err)
	assert.Equal(t, -10005, last.Code)
	assert.Equal(t, "IPC timeout", last.Message)
}

func TestClient_AccountInfo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/account_info", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"login":5012345,"server":"Demo-Server","balance":"10000.50","equity":"9987.25"}`))
	})
	c := newTestClient(t, mux)
	acct, err := c.AccountInfo(context.Background())
	require.NoError(t, err)
	require.NotNil(t, acct)
	assert.Equal(t, int64(5012345), acct.Login)
	assert.Equal(t, "Demo-Server", acct.Server)
	assert.Equal(t, 10000.50, acct.Balance)
	assert.Equal(t, 9987.25, acct.Equity)
}

func TestClient_AccountInfo_NoSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/account_info", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})
	c := newTestClient(t, mux)
	acct, err := c.AccountInfo(context.Background())
	require.NoError(t, err)
	assert.Nil(t, acct)
}

func TestClient_SymbolInfo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/symbol_info", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("symbol") {
		case "EURUSD":
			_, _ = w.Write([]byte(`{"name":"EURUSD","visible":true,"digits":5,"point":0.00001}`))
		default:
			_, _ = w.Write([]byte(`null`))
		}
	})
	c := newTestClient(t, mux)

	info, err := c.SymbolInfo(context.Background(), "EURUSD")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.True(t, info.Visible)
	assert.Equal(t, 5, info.Digits)

	info, err = c.SymbolInfo(context.Background(), "NOSUCH")
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestClient_SymbolSelect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/symbol_select", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Symbol string `json:"symbol"`
			Enable bool   `json:"enable"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "EURUSD", in.Symbol)
		assert.True(t, in.Enable)
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	c := newTestClient(t, mux)
	ok, err := c.SymbolSelect(context.Background(), "EURUSD", true)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClient_SymbolInfoTick(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/symbol_info_tick", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "EURUSD", r.URL.Query().Get("symbol"))
		_, _ = w.Write([]byte(`{"bid":1.1000,"ask":1.1002,"time":1714060800}`))
	})
	c := newTestClient(t, mux)
	tick, err := c.SymbolInfoTick(context.Background(), "EURUSD")
	require.NoError(t, err)
	require.NotNil(t, tick)
	assert.Equal(t, 1.1000, tick.Bid)
	assert.Equal(t, 1.1002, tick.Ask)
}

func TestClient_OrderSend(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/order_send", func(w http.ResponseWriter, r *http.Request) {
		var req OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, TradeActionDeal, req.Action)
		assert.Equal(t, "EURUSD", req.Symbol)
		assert.Equal(t, 10, req.Deviation)
		assert.Equal(t, OrderTimeGTC, req.TypeTime)
		assert.Equal(t, OrderFillingIOC, req.TypeFilling)
		_, _ = w.Write([]byte(`{"retcode":10009,"order":123456,"volume":0.1,"price":1.1002,"comment":"done"}`))
	})
	c := newTestClient(t, mux)
	result, err := c.OrderSend(context.Background(), &OrderRequest{
		Action:      TradeActionDeal,
		Symbol:      "EURUSD",
		Volume:      0.1,
		Type:        OrderTypeBuy,
		Price:       1.1002,
		SL:          1.1,
		TP:          1.2,
		Deviation:   10,
		Magic:       202504,
		Comment:     "Teaka AutoExec",
		TypeTime:    OrderTimeGTC,
		TypeFilling: OrderFillingIOC,
	})
	require.NoError(t, err)
	assert.Equal(t, TradeRetcodeDone, result.Retcode)
	assert.Equal(t, uint64(123456), result.Order)
}

func TestClient_GatewayError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/account_info", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "terminal busy", http.StatusInternalServerError)
	})
	c := newTestClient(t, mux)
	_, err := c.AccountInfo(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
