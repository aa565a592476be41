package engine

import (
	"context"
	"time"

	depthv1 "github.com/joaquinbejar/OrderBookEngine/internal/domain/depth/v1"
	matchpublisherv1 "github.com/joaquinbejar/OrderBookEngine/internal/domain/match-publisher/v1"
	orderbookv1 "github.com/joaquinbejar/OrderBookEngine/internal/domain/orderbook/v1"
	"github.com/joaquinbejar/OrderBookEngine/pkg/logger"
)

type reqKind int

const (
	reqSubmit reqKind = iota
	reqCancel
	reqStatus
	reqSnapshot
)

type request struct {
	kind    reqKind
	order   *orderbookv1.Order
	orderID string
	depth   int
	resp    chan response
}

type response struct {
	submit   *orderbookv1.SubmitResult
	cancel   *orderbookv1.CancelResult
	view     *orderbookv1.OrderView
	snapshot *orderbookv1.BookSnapshot
	err      error
}

// worker is the serialization point for one symbol: every mutation of the
// symbol's book happens on its goroutine, in mailbox order.
type worker struct {
	matcher  orderbookv1.Matcher
	requests chan request
}

func newWorker(matcher orderbookv1.Matcher, buffer int) *worker {
	return &worker{
		matcher:  matcher,
		requests: make(chan request, buffer),
	}
}

// runWorker processes one symbol's requests plus its periodic expiry sweep
// and depth publication.
func (e *Engine) runWorker(w *worker) {
	defer e.wg.Done()

	symbol := w.matcher.Symbol()
	log := e.logger.WithFields(logger.Field{Key: "symbol", Value: symbol})
	log.Info("worker started")

	sweep := time.NewTicker(e.options.ExpirySweepInterval)
	defer sweep.Stop()
	depth := time.NewTicker(e.options.DepthPublishInterval)
	defer depth.Stop()

	for {
		select {
		case <-e.ctx.Done():
			log.Info("worker shutting down")
			return
		case req := <-w.requests:
			req.resp <- e.serve(w, req)
		case <-sweep.C:
			expired := w.matcher.PurgeExpired(e.options.Clock())
			if len(expired) > 0 {
				log.Info("expired orders purged",
					logger.Field{Key: "count", Value: len(expired)},
				)
			}
		case <-depth.C:
			e.publishDepth(w, log)
		}
	}
}

func (e *Engine) serve(w *worker, req request) response {
	switch req.kind {
	case reqSubmit:
		result, err := w.matcher.Submit(req.order)
		if err == nil {
			e.publishMatches(result.Matches)
		}
		return response{submit: result, err: err}
	case reqCancel:
		result, err := w.matcher.Cancel(req.orderID)
		return response{cancel: result, err: err}
	case reqStatus:
		view, err := w.matcher.OrderStatus(req.orderID)
		return response{view: view, err: err}
	default:
		return response{snapshot: w.matcher.Snapshot(req.depth)}
	}
}

func (e *Engine) publishMatches(matches []orderbookv1.Match) {
	if e.publisher == nil {
		return
	}
	for i := range matches {
		event := matchpublisherv1.FromMatch(&matches[i])
		if err := e.publisher.PublishTradeEvent(e.ctx, event); err != nil {
			e.logger.Error(err,
				logger.Field{Key: "action", Value: "publish_trade_event"},
				logger.Field{Key: "tradeID", Value: event.TradeID},
			)
		}
	}
}

func (e *Engine) publishDepth(w *worker, log *logger.Logger) {
	if e.depthStore == nil {
		return
	}

	snapshot := w.matcher.Snapshot(e.options.DepthLevels)
	stamped := depthv1.FromBookSnapshot(snapshot, e.options.Clock())

	ctx, cancel := context.WithTimeout(e.ctx, e.options.DepthPublishInterval)
	defer cancel()

	if err := e.depthStore.StoreDepth(ctx, stamped); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "store_depth"})
	}
}
