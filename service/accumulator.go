package services

import (
	"context"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"reserve-assistant/models"
	"reserve-assistant/models/shop"
)

// AccumulationLimits bounds one accumulation run.
type AccumulationLimits struct {
	Quota    int
	PageSize int
	MaxLoops int
}

// AccumulationLoop pages through the directory until enough open shops that
// can seat the party are collected, the page ceiling is hit, or a page comes
// back empty.
type AccumulationLoop struct {
	fetcher  *MultiBudgetFetcher
	resolver *OpenStatusResolver
	pool     *Pool
	limits   AccumulationLimits
	logger   arbor.ILogger
}

func NewAccumulationLoop(fetcher *MultiBudgetFetcher, resolver *OpenStatusResolver, pool *Pool, limits AccumulationLimits, logger arbor.ILogger) *AccumulationLoop {
	return &AccumulationLoop{
		fetcher:  fetcher,
		resolver: resolver,
		pool:     pool,
		limits:   limits,
		logger:   logger,
	}
}

// Collect runs the loop from session.Start. After every fetched page the
// session's Start is advanced by one page so a later call resumes where this
// one stopped. The result never exceeds the quota.
func (l *AccumulationLoop) Collect(ctx context.Context, session *models.SearchSession, target time.Time) []shop.Shop {
	req := session.Request
	keyword := req.Keyword()
	budgets := req.BudgetFilters()

	var (
		mu        sync.Mutex
		collected []shop.Shop
	)
	session.PagesFetched = 0

	for loops := 0; ; loops++ {
		if len(collected) >= l.limits.Quota {
			break
		}
		if loops >= l.limits.MaxLoops {
			l.logger.Info().Int("loops", loops).Int("collected", len(collected)).Msg("[AccumulationLoop] Page ceiling reached")
			break
		}

		page := l.fetcher.FetchMerged(ctx, keyword, budgets, l.limits.PageSize, session.Start)
		if len(page) == 0 {
			l.logger.Info().Int("start", session.Start).Int("collected", len(collected)).Msg("[AccumulationLoop] Empty page, stopping")
			break
		}

		l.pool.Run(ctx, len(page), func(ctx context.Context, i int) {
			s := page[i]
			if !AcceptsCapacity(s, req.PartySize) {
				return
			}
			verdict := l.resolver.IsOpen(ctx, s, target, req.UseAI)
			if !verdict.Open {
				l.logger.Debug().Str("shop_id", s.ID).Str("reason", verdict.Reason).Msg("[AccumulationLoop] Shop closed at target time")
				return
			}
			mu.Lock()
			collected = append(collected, s)
			mu.Unlock()
		})

		session.Start += l.limits.PageSize
		session.PagesFetched = loops + 1
		l.logger.Debug().Int("page", loops+1).Int("fetched", len(page)).Int("collected", len(collected)).Int("next_start", session.Start).Msg("[AccumulationLoop] Page checked")
	}

	if len(collected) > l.limits.Quota {
		collected = collected[:l.limits.Quota]
	}
	return collected
}
