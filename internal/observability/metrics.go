package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const namespace = "samaan"

const (
	QuoteResultOK          = "ok"
	QuoteResultNotFound    = "not_found"
	QuoteResultUnavailable = "unavailable"
)

var (
	dailySavesCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "daily_saves_total",
		Help:      "Number of daily calorie records saved.",
	})
	goalUpdatesCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "goal_updates_total",
		Help:      "Number of weight loss goals stored.",
	})
	quoteLookupsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quote_lookups_total",
		Help:      "Stock quote lookups by result.",
	}, []string{"result"})
	periodNetGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "period_net_calories",
		Help:      "Net calories of the most recently digested period.",
	})
	periodDeltaGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "period_delta_calories",
		Help:      "Calories above (positive) or below the weekly target for the most recently digested period.",
	})
)

func init() {
	prometheus.MustRegister(dailySavesCounter, goalUpdatesCounter, quoteLookupsCounter, periodNetGauge, periodDeltaGauge)
}

func RecordDailySave() {
	dailySavesCounter.Inc()
}

func RecordGoalUpdate() {
	goalUpdatesCounter.Inc()
}

// RecordQuoteLookup counts one lookup under result.
func RecordQuoteLookup(result string) {
	quoteLookupsCounter.WithLabelValues(result).Inc()
}

// RecordPeriodDigest exposes the totals of the last digested period. A nil
// delta means no goal was configured and leaves the delta gauge untouched.
func RecordPeriodDigest(netCalories int, delta *decimal.Decimal) {
	periodNetGauge.Set(float64(netCalories))
	if delta == nil {
		return
	}
	periodDeltaGauge.Set(delta.InexactFloat64())
}
