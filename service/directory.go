package services

import (
	"context"
	"time"

	"github.com/ternarybob/arbor"

	"reserve-assistant/api/hotpepper"
	"reserve-assistant/models"
	"reserve-assistant/models/shop"
)

// DirectoryService runs single directory queries and never fails: any error
// from the directory is logged and turned into an empty result.
type DirectoryService struct {
	hotpepperApi hotpepper.HotPepperAPI
	internetOnly bool
	logger       arbor.ILogger
}

func NewDirectoryService(hotpepperApi hotpepper.HotPepperAPI, internetOnly bool, logger arbor.ILogger) *DirectoryService {
	return &DirectoryService{
		hotpepperApi: hotpepperApi,
		internetOnly: internetOnly,
		logger:       logger,
	}
}

// Search queries one page for one budget code. An empty budgetCode omits the
// budget parameter entirely.
func (ds *DirectoryService) Search(ctx context.Context, keyword, budgetCode string, count, start int) []shop.Shop {
	params := models.ShopSearchParams{
		Keyword:  keyword,
		Budget:   budgetCode,
		Count:    count,
		Start:    start,
		Internet: ds.internetOnly,
	}

	began := time.Now()
	shops, err := ds.hotpepperApi.SearchShops(ctx, params)
	if err != nil {
		ds.logger.Warn().Err(err).Str("keyword", keyword).Str("budget", budgetCode).Int("start", start).Msg("[DirectoryService] Directory search failed, treating as empty")
		return nil
	}

	ds.logger.Debug().Str("keyword", keyword).Str("budget", budgetCode).Int("start", start).Int("shops", len(shops)).Dur("elapsed", time.Since(began)).Msg("[DirectoryService] Directory page fetched")
	return shops
}
