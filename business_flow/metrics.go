package businessflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Quotes created partitioned by channel (staff, guest, public)
	quotesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ppp",
			Name:      "quotes_created_total",
			Help:      "Total number of quotes created",
		},
		[]string{"channel"},
	)

	// Duplicate numbers detected on insert partitioned by numbering stream
	numberingCollisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ppp",
			Name:      "quote_number_collisions_total",
			Help:      "Total number of numbering collisions detected and retried",
		},
		[]string{"stream"},
	)

	// Printable documents rendered partitioned by kind (quote, assessment)
	documentsRenderedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ppp",
			Name:      "documents_rendered_total",
			Help:      "Total number of HTML documents rendered",
		},
		[]string{"kind"},
	)

	// Lines rejected because no pricing tier covered the rental period
	noPricingTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ppp",
			Name:      "quote_lines_no_pricing_total",
			Help:      "Total number of quote lines rejected for missing pricing",
		},
	)
)

// Quote channels
const (
	channelStaff  = "staff"
	channelGuest  = "guest"
	channelPublic = "public"
)
