package mt5

// Trade constants as defined by the MetaTrader 5 platform.
const (
	TradeActionDeal = 1

	OrderTypeBuy  = 0
	OrderTypeSell = 1

	OrderTimeGTC    = 0
	OrderFillingIOC = 1

	TradeRetcodeDone = 10009
)

type AccountInfo struct {
	Login   int64
	Server  string
	Balance float64
	Equity  float64
}

// the gateway serializes account doubles as strings
type rawAccountInfo struct {
	Login   int64  `json:"login"`
	Server  string `json:"server"`
	Balance string `json:"balance"`
	Equity  string `json:"equity"`
}

type SymbolInfo struct {
	Name    string  `json:"name"`
	Visible bool    `json:"visible"`
	Digits  int     `json:"digits"`
	Point   float64 `json:"point"`
}

type Tick struct {
	Bid  float64 `json:"bid"`
	Ask  float64 `json:"ask"`
	Time int64   `json:"time"`
}

type OrderRequest struct {
	Action      int     `json:"action"`
	Symbol      string  `json:"symbol"`
	Volume      float64 `json:"volume"`
	Type        int     `json:"type"`
	Price       float64 `json:"price"`
	SL          float64 `json:"sl"`
	TP          float64 `json:"tp"`
	Deviation   int     `json:"deviation"`
	Magic       int     `json:"magic"`
	Comment     string  `json:"comment"`
	TypeTime    int     `json:"type_time"`
	TypeFilling int     `json:"type_filling"`
}

type OrderResult struct {
	Retcode int     `json:"retcode"`
	Order   uint64  `json:"order"`
	Volume  float64 `json:"volume"`
	Price   float64 `json:"price"`
	Comment string  `json:"comment"`
}

type LastError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type responseInitialize struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type responseSelect struct {
	Success bool `json:"success"`
}
