package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ternarybob/arbor"

	"reserve-assistant/models"
	"reserve-assistant/models/shop"
)

func testLogger() arbor.ILogger {
	return arbor.NewLogger()
}

// fakeDirectory implements hotpepper.HotPepperAPI with a pluggable search func.
type fakeDirectory struct {
	mu     sync.Mutex
	calls  []models.ShopSearchParams
	search func(params models.ShopSearchParams) ([]shop.Shop, error)

	inFlight    int32
	maxInFlight int32
	delay       time.Duration
}

func (f *fakeDirectory) SearchShops(ctx context.Context, params models.ShopSearchParams) ([]shop.Shop, error) {
	f.mu.Lock()
	f.calls = append(f.calls, params)
	f.mu.Unlock()

	cur := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		max := atomic.LoadInt32(&f.maxInFlight)
		if cur <= max || atomic.CompareAndSwapInt32(&f.maxInFlight, max, cur) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.search(params)
}

func (f *fakeDirectory) Calls() []models.ShopSearchParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ShopSearchParams(nil), f.calls...)
}

// endlessDirectory serves count fresh shops for every offset, each seating 100.
func endlessDirectory() *fakeDirectory {
	return &fakeDirectory{search: func(p models.ShopSearchParams) ([]shop.Shop, error) {
		shops := make([]shop.Shop, 0, p.Count)
		for i := 0; i < p.Count; i++ {
			shops = append(shops, openShop(fmt.Sprintf("J%s-%04d", p.Budget, p.Start+i), "100"))
		}
		return shops, nil
	}}
}

// pagedDirectory serves the given pages, one per offset step of pageSize starting at 1.
func pagedDirectory(pageSize int, pages ...[]shop.Shop) *fakeDirectory {
	return &fakeDirectory{search: func(p models.ShopSearchParams) ([]shop.Shop, error) {
		idx := (p.Start - 1) / pageSize
		if idx < 0 || idx >= len(pages) {
			return nil, nil
		}
		return pages[idx], nil
	}}
}

func openShop(id, capacity string) shop.Shop {
	return shop.Shop{
		ID:            id,
		Name:          "店 " + id,
		Address:       "東京都千代田区大手町1-1",
		Close:         "無休",
		PartyCapacity: shop.Capacity(capacity),
	}
}

func shopPage(prefix string, n int, capacity string) []shop.Shop {
	shops := make([]shop.Shop, n)
	for i := range shops {
		shops[i] = openShop(fmt.Sprintf("%s-%02d", prefix, i), capacity)
	}
	return shops
}

// countingGenerator implements llm.TextGenerator and counts calls.
type countingGenerator struct {
	calls int32
	reply string
	err   error
}

func (g *countingGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	atomic.AddInt32(&g.calls, 1)
	return g.reply, g.err
}

func (g *countingGenerator) Calls() int {
	return int(atomic.LoadInt32(&g.calls))
}

// fakePlaces implements places.PlacesAPI with a pluggable lookup func.
type fakePlaces struct {
	mu      sync.Mutex
	queries []string
	lookup  func(query string) (*models.PlacesSearchResponse, error)
}

func (f *fakePlaces) TextSearch(ctx context.Context, query string) (*models.PlacesSearchResponse, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	return f.lookup(query)
}

func newLoop(t *testing.T, dir *fakeDirectory, gen *countingGenerator, limits AccumulationLimits) *AccumulationLoop {
	t.Helper()
	logger := testLogger()
	var resolver *OpenStatusResolver
	if gen != nil {
		resolver = NewOpenStatusResolver(gen, logger)
	} else {
		resolver = NewOpenStatusResolver(nil, logger)
	}
	fetcher := NewMultiBudgetFetcher(NewDirectoryService(dir, true, logger), NewPool(DIRECTORY_POOL, 5, logger), logger)
	return NewAccumulationLoop(fetcher, resolver, NewPool(VENUE_CHECK_POOL, 10, logger), limits, logger)
}

var defaultLimits = AccumulationLimits{Quota: 20, PageSize: 20, MaxLoops: 5}

// wednesday19 is 2026-10-21 19:00 JST, a Wednesday.
var wednesday19 = time.Date(2026, 10, 21, 19, 0, 0, 0, models.JST)
