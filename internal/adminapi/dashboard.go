package adminapi

import (
	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"

	"github.com/prayani09/ShriyashWork/internal/webserver"
)

// registerDashboardRoutes registers the admin dashboard summary
func registerDashboardRoutes() {
	webserver.ApiGET("/admin/api/dashboard", getDashboard)
}

type dashboardSummary struct {
	TotalProducts int            `json:"totalProducts"`
	Favorites     int            `json:"favorites"`
	TopBrands     int            `json:"topBrands"`
	BrokenLinks   int            `json:"brokenLinks"`
	PriceMean     float64        `json:"priceMean"`
	PriceMedian   float64        `json:"priceMedian"`
	RatingMean    float64        `json:"ratingMean"`
	ByCategory    map[string]int `json:"byCategory"`
}

func getDashboard(c echo.Context) error {
	entries := webserver.GetView(c).Entries()

	summary := dashboardSummary{
		TotalProducts: len(entries),
		ByCategory:    make(map[string]int),
	}
	prices := make([]float64, 0, len(entries))
	ratings := make([]float64, 0, len(entries))
	for _, e := range entries {
		p := e.Product
		prices = append(prices, p.Price)
		ratings = append(ratings, p.Rating)
		if p.Favorite {
			summary.Favorites++
		}
		if p.TopBrand {
			summary.TopBrands++
		}
		if p.LinkStatus == "broken" {
			summary.BrokenLinks++
		}
		cat := p.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		summary.ByCategory[cat]++
	}

	// stats errors only on empty input; an empty catalog reports zeros.
	if len(entries) > 0 {
		summary.PriceMean, _ = stats.Round(mustStat(stats.Mean(prices)), 2)
		summary.PriceMedian, _ = stats.Round(mustStat(stats.Median(prices)), 2)
		summary.RatingMean, _ = stats.Round(mustStat(stats.Mean(ratings)), 2)
	}
	return ok(c, summary)
}

func mustStat(v float64, err error) float64 {
	if err != nil {
		return 0
	}
	return v
}
