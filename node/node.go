package node

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"github.com/teaka-trade/mt5bridge/executor"
	"github.com/teaka-trade/mt5bridge/mt5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	collNameChecks = "checks"
	collNameOrders = "orders"
)

// Terminal is the full gateway surface the operations need. Satisfied by
// *mt5.Client.
type Terminal interface {
	executor.Terminal
	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
	AccountInfo(ctx context.Context) (*mt5.AccountInfo, error)
	LastError(ctx context.Context) (*mt5.LastError, error)
}

// Node wires one operation per process invocation: config, logger,
// terminal client and the optional mongo journal.
type Node struct {
	config Config
	Sugar  *zap.SugaredLogger
	term   Terminal
	client *mongo.Client
	db     *mongo.Database
	out    io.Writer
}

func (n *Node) Init(ctx context.Context, cfg Config) error {
	n.config = cfg
	sugar, err := newSugar(cfg.Log.Level)
	if err != nil {
		return err
	}
	n.Sugar = sugar
	n.term = mt5.New(cfg.Gateway.URL, cfg.Gateway.TimeoutDuration())
	n.out = os.Stdout
	if cfg.Mongo.URI != "" {
		n.initMongo(ctx, cfg.Mongo)
	}
	return nil
}

// journal is optional; a mongo failure must never change the emitted
// result or the exit code.
func (n *Node) initMongo(ctx context.Context, conf MongoConf) {
	clientOpts := options.Client().ApplyURI(conf.URI)
	if conf.AppName != "" {
		clientOpts.SetAppName(conf.AppName)
	}
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		n.Sugar.Warnf("connect to mongo: %s", err)
		return
	}
	if err = client.Ping(ctx, nil); err != nil {
		n.Sugar.Warnf("ping mongo: %s", err)
		return
	}
	n.client = client
	n.db = client.Database(conf.Database)
}

func (n *Node) Close(ctx context.Context) {
	if n.client != nil {
		if err := n.client.Disconnect(ctx); err != nil {
			n.Sugar.Warnf("disconnect mongo: %s", err)
		}
	}
	_ = n.Sugar.Sync()
}

// CheckConnection opens a session, reads the account identity and renders
// the result. The returned error is non-nil only when the session could
// not be opened.
func (n *Node) CheckConnection(ctx context.Context) error {
	if err := n.openSession(ctx); err != nil {
		return err
	}
	defer n.closeSession(ctx)

	acct, err := n.term.AccountInfo(ctx)
	if err != nil {
		n.render(executor.Response{
			Success: false,
			Error:   &executor.Error{Type: executor.ErrConnection, Message: err.Error()},
		})
		return nil
	}
	if acct == nil {
		n.render(checkResponse{Success: false, AccountInfo: nil})
		return nil
	}
	n.render(checkResponse{
		Success: true,
		AccountInfo: &accountOut{
			Login:   acct.Login,
			Server:  acct.Server,
			Balance: acct.Balance,
			Equity:  acct.Equity,
		},
	})
	n.journalCheck(ctx, acct)
	return nil
}

// ExecuteTrade reads one signal document from input and runs it through
// the executor. Every outcome except a failed session open is rendered as
// JSON with a zero exit.
func (n *Node) ExecuteTrade(ctx context.Context, input io.Reader) error {
	data, err := io.ReadAll(input)
	if err != nil {
		n.render(executor.Response{
			Success: false,
			Error:   &executor.Error{Type: executor.ErrInvalidJSON, Message: "Failed to parse signal data"},
		})
		return nil
	}
	raw, perr := executor.ParseSignal(data)
	if perr != nil {
		n.render(executor.Response{Success: false, Error: perr})
		return nil
	}

	if err := n.openSession(ctx); err != nil {
		return err
	}
	defer n.closeSession(ctx)

	exec := executor.New(n.term, n.Sugar)
	order, perr := exec.Execute(ctx, raw)
	if perr != nil {
		n.render(executor.Response{Success: false, Error: perr})
		n.journalOrder(ctx, data, nil, perr)
		return nil
	}
	n.render(executor.Response{Success: true, Order: order})
	n.journalOrder(ctx, data, order, nil)
	return nil
}

func (n *Node) openSession(ctx context.Context) error {
	err := n.term.Initialize(ctx)
	if err == nil {
		return nil
	}
	code := 0
	if last, lerr := n.term.LastError(ctx); lerr == nil && last != nil {
		code = last.Code
	}
	n.render(executor.Response{
		Success: false,
		Error:   &executor.Error{Code: code, Message: "MT5 initialization failed"},
	})
	n.closeSession(ctx)
	return errors.Wrap(err, "terminal initialization failed")
}

func (n *Node) closeSession(ctx context.Context) {
	if err := n.term.Shutdown(ctx); err != nil {
		n.Sugar.Warnf("shutdown terminal: %s", err)
	}
}

// render writes exactly one line of JSON to stdout.
func (n *Node) render(v interface{}) {
	b, err := sonic.Marshal(v)
	if err != nil {
		n.Sugar.Errorf("encode result: %s", err)
		return
	}
	_, _ = fmt.Fprintln(n.out, string(b))
}

func (n *Node) journalCheck(ctx context.Context, acct *mt5.AccountInfo) {
	if n.db == nil {
		return
	}
	record := CheckRecord{
		Login:   acct.Login,
		Server:  acct.Server,
		Balance: acct.Balance,
		Equity:  acct.Equity,
		Time:    time.Now(),
	}
	if _, err := n.db.Collection(collNameChecks).InsertOne(ctx, record); err != nil {
		n.Sugar.Warnf("journal check: %s", err)
	}
}

func (n *Node) journalOrder(ctx context.Context, signal []byte, order *executor.Order, perr *executor.Error) {
	if n.db == nil {
		return
	}
	record := OrderRecord{
		Signal:  string(signal),
		Success: perr == nil,
		Time:    time.Now(),
	}
	if order != nil {
		record.Ticket = order.Ticket
		record.Volume = order.Volume
		record.Price = order.Price
		record.Comment = order.Comment
	}
	if perr != nil {
		record.Error = perr.Message
	}
	if _, err := n.db.Collection(collNameOrders).InsertOne(ctx, record); err != nil {
		n.Sugar.Warnf("journal order: %s", err)
	}
}

func newSugar(level string) (*zap.SugaredLogger, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "bad log level %q", level)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(l)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
