package util

import (
	"fmt"
	"io"

	"reserve-assistant/models/shop"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

var tierOrder = []string{shop.TierHigh, shop.TierMid, shop.TierLow}

// VenueGeoPoints groups ranked shops into scatter points by rating tier.
// Shops without coordinates are left off the map.
func VenueGeoPoints(venues []shop.EnrichedShop) map[string][]opts.GeoData {
	points := make(map[string][]opts.GeoData, len(tierOrder))
	for _, v := range venues {
		if v.Lat == 0 && v.Lng == 0 {
			continue
		}
		tier := v.Tier
		if tier == "" {
			tier = shop.TierFor(v.Rating)
		}
		points[tier] = append(points[tier], opts.GeoData{
			Name:  fmt.Sprintf("%d. %s", v.Rank, v.Name),
			Value: []float64{v.Lng, v.Lat, v.Rating},
		})
	}
	return points
}

// RenderVenueMap writes an HTML page plotting the ranked shops, one series per tier.
func RenderVenueMap(w io.Writer, venues []shop.EnrichedShop, title string) error {
	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "900px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Formatter: "{b}"}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
	)

	points := VenueGeoPoints(venues)
	for _, tier := range tierOrder {
		if len(points[tier]) == 0 {
			continue
		}
		geo.AddSeries(tier, types.ChartScatter, points[tier],
			charts.WithItemStyleOpts(opts.ItemStyle{Color: shop.TierColor(tier)}),
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}",
			}),
		)
	}

	if err := geo.Render(w); err != nil {
		return fmt.Errorf("failed to render venue map: %w", err)
	}
	return nil
}
