// Package history builds the visitor's unified activity feed.
package history

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/enjoypark/companion/internal/domain"
	"github.com/enjoypark/companion/internal/logger"
)

// Source is the slice of the backend the aggregator reads.
// *parkapi.Client satisfies it.
type Source interface {
	Tickets(ctx context.Context) ([]domain.TicketRecord, error)
	Orders(ctx context.Context) ([]domain.OrderRecord, error)
}

// Aggregator merges tickets and orders into one chronological feed.
type Aggregator struct {
	source Source
	logger logger.Logger
}

// NewAggregator creates an aggregator over the given source.
func NewAggregator(source Source, log logger.Logger) *Aggregator {
	return &Aggregator{
		source: source,
		logger: log,
	}
}

// GetHistory fetches both resources, projects them into feed entries, and
// returns them most recent first.
//
// Fail-closed: if either fetch fails the whole feed is empty. A partial
// feed silently missing one resource would mislead more than no feed.
func (a *Aggregator) GetHistory(ctx context.Context) []domain.HistoryItem {
	var (
		tickets []domain.TicketRecord
		orders  []domain.OrderRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tickets, err = a.source.Tickets(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = a.source.Orders(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		a.logger.Warn("history fetch failed, returning empty feed", logger.Error(err))
		return []domain.HistoryItem{}
	}

	feed := make([]domain.HistoryItem, 0, len(tickets)+len(orders))
	for _, t := range tickets {
		feed = append(feed, domain.ProjectTicket(t))
	}
	for _, o := range orders {
		feed = append(feed, domain.ProjectOrder(o))
	}

	domain.SortFeed(feed)
	return feed
}
