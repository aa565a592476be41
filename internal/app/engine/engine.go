package engine

import (
	"context"
	"fmt"
	"sync"

	depthv1 "github.com/joaquinbejar/OrderBookEngine/internal/domain/depth/v1"
	matchpublisherv1 "github.com/joaquinbejar/OrderBookEngine/internal/domain/match-publisher/v1"
	orderreaderv1 "github.com/joaquinbejar/OrderBookEngine/internal/domain/order-reader/v1"
	orderbookv1 "github.com/joaquinbejar/OrderBookEngine/internal/domain/orderbook/v1"
	"github.com/joaquinbejar/OrderBookEngine/internal/usecase/matching"
	"github.com/joaquinbejar/OrderBookEngine/internal/usecase/orderbook"
	"github.com/joaquinbejar/OrderBookEngine/pkg/config"
	"github.com/joaquinbejar/OrderBookEngine/pkg/logger"
)

// Engine owns one book per configured symbol and serializes all access to
// it: each symbol gets a dedicated worker goroutine that processes requests
// strictly in arrival order, which is the time-priority basis for resting
// orders. Requests for different symbols proceed in parallel.
//
// The optional collaborators are the service edges: an order reader feeding
// submissions from the intake stream, a match publisher for the trade feed,
// and a depth store for the read-side cache. Each may be nil; the core works
// without them.
type Engine struct {
	logger     *logger.Logger
	config     *config.Config
	options    *Options
	workers    map[string]*worker
	reader     orderreaderv1.OrderReader
	publisher  matchpublisherv1.MatchPublisher
	depthStore depthv1.Store

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEngine creates an engine with default options.
func NewEngine(
	cfg *config.Config,
	log *logger.Logger,
	reader orderreaderv1.OrderReader,
	publisher matchpublisherv1.MatchPublisher,
	depthStore depthv1.Store,
) *Engine {
	return NewEngineWithOptions(cfg, log, reader, publisher, depthStore, OptionsFromConfig(cfg.EngineConfig))
}

// NewEngineWithOptions creates an engine with custom options.
func NewEngineWithOptions(
	cfg *config.Config,
	log *logger.Logger,
	reader orderreaderv1.OrderReader,
	publisher matchpublisherv1.MatchPublisher,
	depthStore depthv1.Store,
	options *Options,
) *Engine {
	e := &Engine{
		logger:     log,
		config:     cfg,
		options:    options,
		workers:    make(map[string]*worker),
		reader:     reader,
		publisher:  publisher,
		depthStore: depthStore,
	}

	for _, symbol := range cfg.Symbols {
		matcher := matching.NewEngine(
			orderbook.NewOrderBook(symbol),
			matching.WithClock(options.Clock),
		)
		e.workers[symbol] = newWorker(matcher, options.RequestBuffer)
	}
	return e
}

// Start spawns the per-symbol workers and, when a reader is wired, the order
// intake loop.
func (e *Engine) Start(ctx context.Context) error {
	e.ctx, e.cancel = context.WithCancel(ctx)

	for _, w := range e.workers {
		e.wg.Add(1)
		go e.runWorker(w)
	}
	if e.reader != nil {
		e.wg.Add(1)
		go e.runOrderIntake()
	}

	e.logger.Info("matching engine started",
		logger.Field{Key: "symbols", Value: e.config.Symbols},
	)
	return nil
}

// Stop shuts the engine down, waiting for workers until ctx expires.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("matching engine stopped")
		return nil
	case <-ctx.Done():
		e.logger.Warn("engine stop timeout exceeded")
		return ctx.Err()
	}
}

// Submit routes an order to its symbol's worker and waits for the result.
func (e *Engine) Submit(ctx context.Context, order *orderbookv1.Order) (*orderbookv1.SubmitResult, error) {
	if order == nil {
		return nil, orderbookv1.ErrNilOrder
	}
	resp, err := e.dispatch(ctx, order.Symbol, request{kind: reqSubmit, order: order})
	if err != nil {
		return nil, err
	}
	return resp.submit, resp.err
}

// Cancel routes a cancellation to its symbol's worker.
func (e *Engine) Cancel(ctx context.Context, symbol, orderID string) (*orderbookv1.CancelResult, error) {
	resp, err := e.dispatch(ctx, symbol, request{kind: reqCancel, orderID: orderID})
	if err != nil {
		return nil, err
	}
	return resp.cancel, resp.err
}

// OrderStatus returns the current view of an order on the symbol's book.
func (e *Engine) OrderStatus(ctx context.Context, symbol, orderID string) (*orderbookv1.OrderView, error) {
	resp, err := e.dispatch(ctx, symbol, request{kind: reqStatus, orderID: orderID})
	if err != nil {
		return nil, err
	}
	return resp.view, resp.err
}

// Snapshot returns the depth-limited view of the symbol's book.
func (e *Engine) Snapshot(ctx context.Context, symbol string, depth int) (*orderbookv1.BookSnapshot, error) {
	resp, err := e.dispatch(ctx, symbol, request{kind: reqSnapshot, depth: depth})
	if err != nil {
		return nil, err
	}
	return resp.snapshot, resp.err
}

func (e *Engine) dispatch(ctx context.Context, symbol string, req request) (response, error) {
	w, ok := e.workers[symbol]
	if !ok {
		return response{}, fmt.Errorf("%w: no book for %q", orderbookv1.ErrSymbolMismatch, symbol)
	}

	req.resp = make(chan response, 1)
	select {
	case w.requests <- req:
	case <-ctx.Done():
		return response{}, ctx.Err()
	}

	select {
	case resp := <-req.resp:
		return resp, nil
	case <-ctx.Done():
		return response{}, ctx.Err()
	}
}

// runOrderIntake reads order requests from the intake stream and feeds them
// to the workers. Malformed payloads and rejected orders are logged and
// skipped; the stream keeps flowing.
func (e *Engine) runOrderIntake() {
	defer e.wg.Done()

	e.logger.Info("starting order intake")

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("order intake shutting down")
			if err := e.reader.Close(); err != nil {
				e.logger.Error(err, logger.Field{Key: "action", Value: "close_order_reader"})
			}
			return
		default:
			msg, req, err := e.reader.ReadMessage(e.ctx)
			if err != nil {
				if e.ctx.Err() != nil {
					continue
				}
				e.logger.Error(err, logger.Field{Key: "action", Value: "read_order_request"})
				continue
			}

			e.handleRequest(req)

			if err := e.reader.CommitMessages(e.ctx, msg); err != nil {
				e.logger.Error(err, logger.Field{Key: "action", Value: "commit_order_request"})
			}
		}
	}
}

func (e *Engine) handleRequest(req *orderreaderv1.OrderRequest) {
	switch req.Action {
	case orderreaderv1.ActionCancel:
		result, err := e.Cancel(e.ctx, req.Symbol, req.OrderID)
		if err != nil {
			e.logger.Warn("cancel rejected",
				logger.Field{Key: "orderID", Value: req.OrderID},
				logger.Field{Key: "symbol", Value: req.Symbol},
				logger.Field{Key: "reason", Value: err.Error()},
			)
			return
		}
		e.logger.Info("order cancelled",
			logger.Field{Key: "orderID", Value: result.OrderID},
			logger.Field{Key: "cancelledQuantity", Value: result.CancelledQuantity},
		)
	case orderreaderv1.ActionPlace:
		result, err := e.Submit(e.ctx, req.ToOrder())
		if err != nil {
			e.logger.Warn("order rejected",
				logger.Field{Key: "orderID", Value: req.OrderID},
				logger.Field{Key: "symbol", Value: req.Symbol},
				logger.Field{Key: "reason", Value: err.Error()},
			)
			return
		}
		e.logger.Info("order processed",
			logger.Field{Key: "orderID", Value: result.OrderID},
			logger.Field{Key: "status", Value: result.Status},
			logger.Field{Key: "matches", Value: len(result.Matches)},
			logger.Field{Key: "remainingQuantity", Value: result.RemainingQuantity},
		)
	default:
		e.logger.Warn("unknown intake action",
			logger.Field{Key: "action", Value: req.Action},
			logger.Field{Key: "orderID", Value: req.OrderID},
		)
	}
}
