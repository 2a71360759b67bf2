package executor

import (
	"context"

	"github.com/teaka-trade/mt5bridge/mt5"
	"go.uber.org/zap"
)

// Fixed order policy.
const (
	Deviation = 10 // points
	Magic     = 202504
	Comment   = "Teaka AutoExec"
)

const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
)

// Terminal is the slice of the gateway surface the executor needs.
type Terminal interface {
	SymbolInfo(ctx context.Context, symbol string) (*mt5.SymbolInfo, error)
	SymbolSelect(ctx context.Context, symbol string, enable bool) (bool, error)
	SymbolInfoTick(ctx context.Context, symbol string) (*mt5.Tick, error)
	OrderSend(ctx context.Context, req *mt5.OrderRequest) (*mt5.OrderResult, error)
}

type Executor struct {
	term  Terminal
	Sugar *zap.SugaredLogger
}

func New(term Terminal, sugar *zap.SugaredLogger) *Executor {
	return &Executor{term: term, Sugar: sugar}
}

// Execute validates the signal, resolves the instrument, fetches a quote
// and submits one market order. The returned *Error distinguishes
// validation failures from execution failures by Type.
func (e *Executor) Execute(ctx context.Context, raw RawSignal) (*Order, *Error) {
	signal, perr := raw.Signal()
	if perr != nil {
		return nil, perr
	}

	info, err := e.term.SymbolInfo(ctx, signal.Symbol)
	if err != nil {
		e.Sugar.Warnf("symbol_info %s: %s", signal.Symbol, err)
	}
	if err != nil || info == nil {
		return nil, validationErrf("Symbol %s not found", signal.Symbol)
	}
	if !info.Visible {
		ok, err := e.term.SymbolSelect(ctx, signal.Symbol, true)
		if err != nil {
			e.Sugar.Warnf("symbol_select %s: %s", signal.Symbol, err)
		}
		if err != nil || !ok {
			return nil, validationErrf("Symbol %s selection failed", signal.Symbol)
		}
	}

	tick, err := e.term.SymbolInfoTick(ctx, signal.Symbol)
	if err != nil {
		e.Sugar.Warnf("symbol_info_tick %s: %s", signal.Symbol, err)
	}
	if err != nil || tick == nil {
		return nil, validationErrf("Failed to get price for %s", signal.Symbol)
	}

	if signal.Action != ActionBuy && signal.Action != ActionSell {
		e.Sugar.Warnf("unrecognized action %q treated as sell", signal.Action)
	}
	req := buildRequest(signal, tick)

	result, err := e.term.OrderSend(ctx, req)
	if err != nil {
		return nil, executionErrf("Order failed: %s", err)
	}
	if result.Retcode != mt5.TradeRetcodeDone {
		return nil, executionErrf("Order failed: %s", result.Comment)
	}
	e.Sugar.Infof("order done, ticket %d, %s %s volume %v price %v",
		result.Order, signal.Action, signal.Symbol, result.Volume, result.Price)
	return &Order{
		Ticket:  result.Order,
		Volume:  result.Volume,
		Price:   result.Price,
		Comment: result.Comment,
	}, nil
}

// buildRequest picks side and reference price from the action: BUY takes
// the ask, anything else sells at the bid.
func buildRequest(s *Signal, tick *mt5.Tick) *mt5.OrderRequest {
	orderType := mt5.OrderTypeSell
	price := tick.Bid
	if s.Action == ActionBuy {
		orderType = mt5.OrderTypeBuy
		price = tick.Ask
	}
	volume, _ := s.Volume.Float64()
	sl, _ := s.SL.Float64()
	tp, _ := s.TP.Float64()
	return &mt5.OrderRequest{
		Action:      mt5.TradeActionDeal,
		Symbol:      s.Symbol,
		Volume:      volume,
		Type:        orderType,
		Price:       price,
		SL:          sl,
		TP:          tp,
		Deviation:   Deviation,
		Magic:       Magic,
		Comment:     Comment,
		TypeTime:    mt5.OrderTimeGTC,
		TypeFilling: mt5.OrderFillingIOC,
	}
}
