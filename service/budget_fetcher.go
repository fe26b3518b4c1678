package services

import (
	"context"
	"sync"

	"github.com/ternarybob/arbor"

	"reserve-assistant/models/shop"
)

// MultiBudgetFetcher fans one logical search out over several budget codes
// and merges the pages by shop id.
type MultiBudgetFetcher struct {
	directory *DirectoryService
	pool      *Pool
	logger    arbor.ILogger
}

func NewMultiBudgetFetcher(directory *DirectoryService, pool *Pool, logger arbor.ILogger) *MultiBudgetFetcher {
	return &MultiBudgetFetcher{
		directory: directory,
		pool:      pool,
		logger:    logger,
	}
}

// FetchMerged returns each shop id at most once. With no budget codes it
// makes exactly one unfiltered call. The first copy of an id to be merged
// wins; calls complete in any order.
func (f *MultiBudgetFetcher) FetchMerged(ctx context.Context, keyword string, budgetCodes []string, count, start int) []shop.Shop {
	if len(budgetCodes) == 0 {
		return dedupShops(nil, f.directory.Search(ctx, keyword, "", count, start), map[string]struct{}{})
	}

	var (
		mu     sync.Mutex
		merged []shop.Shop
		seen   = make(map[string]struct{})
	)
	f.pool.Run(ctx, len(budgetCodes), func(ctx context.Context, i int) {
		shops := f.directory.Search(ctx, keyword, budgetCodes[i], count, start)

		mu.Lock()
		defer mu.Unlock()
		merged = dedupShops(merged, shops, seen)
	})

	f.logger.Debug().Str("keyword", keyword).Int("budgets", len(budgetCodes)).Int("start", start).Int("merged", len(merged)).Msg("[MultiBudgetFetcher] Pages merged")
	return merged
}

// dedupShops appends shops whose id is not yet in seen.
func dedupShops(dst, shops []shop.Shop, seen map[string]struct{}) []shop.Shop {
	for _, s := range shops {
		if _, ok := seen[s.ID]; ok {
			continue
		}
		seen[s.ID] = struct{}{}
		dst = append(dst, s)
	}
	return dst
}
