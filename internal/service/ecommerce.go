package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"monitoring-demo/internal/metrics"
	"monitoring-demo/internal/repository"
)

var (
	productCategories = []struct {
		name  string
		views IntRange
	}{
		{"electronics", IntRange{10, 50}},
		{"clothing", IntRange{5, 30}},
		{"books", IntRange{3, 15}},
	}
)

// EcommerceOverview is what the e-commerce dashboard shows.
type EcommerceOverview struct {
	ActiveUsers    int
	TotalSales     decimal.Decimal
	TotalOrders    int
	CartItems      float64
	ConversionRate float64
	ProductViews   int
	Activities     []repository.Activity
}

// SalesResult describes one simulated sales burst.
type SalesResult struct {
	Amount decimal.Decimal
	Orders int
}

func (r SalesResult) String() string {
	return fmt.Sprintf("✅ Sales simulation completed! Generated $%s with %d orders", r.Amount.StringFixed(2), r.Orders)
}

// Ecommerce simulates an online shop.
type Ecommerce struct {
	deps       Deps
	activities repository.Store

	activeUsers    *metrics.Gauge
	totalSales     *metrics.Gauge
	cartItems      *metrics.Gauge
	conversionRate *metrics.Gauge
	orders         *metrics.CounterVec
	productViews   *metrics.CounterVec
}

// NewEcommerce registers the shop instruments on deps.Registry.
func NewEcommerce(deps Deps, activities repository.Store) *Ecommerce {
	deps = deps.withDefaults()
	reg := deps.Registry
	return &Ecommerce{
		deps:           deps,
		activities:     activities,
		activeUsers:    reg.MustGaugeVec("ecommerce_active_users", "Number of active users").WithLabelValues(),
		totalSales:     reg.MustGaugeVec("ecommerce_total_sales_usd", "Total sales in USD").WithLabelValues(),
		cartItems:      reg.MustGaugeVec("ecommerce_cart_items_average", "Average items in cart").WithLabelValues(),
		conversionRate: reg.MustGaugeVec("ecommerce_conversion_rate_percent", "Conversion rate percentage").WithLabelValues(),
		orders:         reg.MustCounterVec("ecommerce_orders_total", "Total number of orders", "status"),
		productViews:   reg.MustCounterVec("ecommerce_product_views_total", "Total product views", "category"),
	}
}

// Overview draws a fresh set of shop figures and publishes the gauges among them.
func (e *Ecommerce) Overview(ctx context.Context) EcommerceOverview {
	s := e.deps.Sampler
	o := EcommerceOverview{
		ActiveUsers:    IntRange{50, 200}.draw(s),
		TotalSales:     money(Range{10000, 50000}.draw(s)),
		TotalOrders:    IntRange{100, 500}.draw(s),
		CartItems:      Range{2, 8}.draw(s),
		ConversionRate: Range{2, 8}.draw(s),
		ProductViews:   IntRange{1000, 5000}.draw(s),
	}
	e.activeUsers.Set(float64(o.ActiveUsers))
	e.totalSales.Set(o.TotalSales.InexactFloat64())
	e.cartItems.Set(o.CartItems)
	e.conversionRate.Set(o.ConversionRate)

	activities, err := e.activities.Recent(ctx, repository.DefaultCapacity)
	if err != nil {
		log.Warn().Err(err).Msg("load recent activity")
	}
	o.Activities = activities
	return o
}

// SimulateSales records a burst of completed orders and product views.
func (e *Ecommerce) SimulateSales(ctx context.Context) SalesResult {
	s := e.deps.Sampler
	res := SalesResult{
		Amount: money(Range{100, 1000}.draw(s)),
		Orders: IntRange{5, 20}.draw(s),
	}
	e.orders.WithLabelValues("completed").Add(float64(res.Orders))
	for _, c := range productCategories {
		e.productViews.WithLabelValues(c.name).Add(float64(c.views.draw(s)))
	}
	e.Record(ctx, fmt.Sprintf("Generated $%s in sales with %d orders", res.Amount.StringFixed(2), res.Orders))

	e.deps.pause(500*time.Millisecond, 1500*time.Millisecond)
	return res
}

// SimulateLoad sleeps for a random while and updates the active user gauge.
func (e *Ecommerce) SimulateLoad(ctx context.Context) string {
	d := e.deps.pause(500*time.Millisecond, 2*time.Second)
	e.activeUsers.Set(float64(IntRange{10, 100}.draw(e.deps.Sampler)))
	msg := loadMessage(d)
	e.Record(ctx, msg)
	return msg
}

// Refresh re-draws the gauges ahead of a scrape.
func (e *Ecommerce) Refresh() {
	s := e.deps.Sampler
	e.activeUsers.Set(float64(IntRange{30, 150}.draw(s)))
	e.totalSales.Set(money(Range{5000, 30000}.draw(s)).InexactFloat64())
	e.cartItems.Set(Range{1.5, 6}.draw(s))
	e.conversionRate.Set(Range{1.5, 7}.draw(s))
}

// Record appends msg to the activity feed. Feed failures are logged, never returned.
func (e *Ecommerce) Record(ctx context.Context, msg string) {
	a := repository.Activity{Time: e.deps.Now(), Message: msg}
	if err := e.activities.Add(ctx, a); err != nil {
		log.Warn().Err(err).Str("message", msg).Msg("record activity")
	}
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
