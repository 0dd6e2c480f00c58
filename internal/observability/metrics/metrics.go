package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var defaultHistogramBucketsSeconds = []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

// Collectors exist from package load so recording never depends on Init;
// Init only registers and serves them.
var (
	once          sync.Once
	metricsRouter *chi.Mux

	// add a counter for the number of errors from the fail to push message into queue
	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)

	httpRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of incoming http request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"route", "method", "status"},
	)

	settlementCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settlements_total",
			Help: "Number of settlement attempts split by outcome code",
		},
		[]string{"code"},
	)

	settledVolumeCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "settled_volume_total",
			Help: "Stable asset volume settled since process start",
		},
	)

	feesCollectedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fees_collected_total",
			Help: "Merchant fees moved into the pool since process start",
		},
	)

	rewardsPaidCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rewards_paid_total",
			Help: "Reward asset paid out of the treasury since process start",
		},
		[]string{"side"},
	)

	amountMovedGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_amount_moved",
			Help: "Cumulative settled volume stored in the ledger",
		},
	)

	rewardRateGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "reward_rate",
			Help: "Reward rate at the current ledger volume",
		},
	)

	accountBalanceGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "protocol_account_balance",
			Help: "Last polled balance of the protocol owned accounts",
		},
		[]string{"account"},
	)
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics registers the Prometheus metrics.
func registerMetrics() {
	prometheus.MustRegister(
		queueSendErrorCounter,
		pollerDurationHistogram,
		dbLatency,
		httpRequestDurationHistogram,
		settlementCounter,
		settledVolumeCounter,
		feesCollectedCounter,
		rewardsPaidCounter,
		amountMovedGauge,
		rewardRateGauge,
		accountBalanceGauge,
	)
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	dbLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

// StartHttpRequestDurationTimer starts a timer to measure an incoming request.
func StartHttpRequestDurationTimer(route, method string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		httpRequestDurationHistogram.WithLabelValues(
			route,
			method,
			strconv.Itoa(statusCode),
		).Observe(duration)
	}
}

// RecordSettlement counts one settlement attempt. code is empty on success.
func RecordSettlement(code string) {
	if code == "" {
		code = Success.String()
	}
	settlementCounter.WithLabelValues(code).Inc()
}

func RecordSettledAmounts(amount, fee, senderReward, recipientReward uint64) {
	settledVolumeCounter.Add(float64(amount))
	feesCollectedCounter.Add(float64(fee))
	rewardsPaidCounter.WithLabelValues("sender").Add(float64(senderReward))
	rewardsPaidCounter.WithLabelValues("recipient").Add(float64(recipientReward))
}

func RecordLedger(amountMoved, rewardRate uint64) {
	amountMovedGauge.Set(float64(amountMoved))
	rewardRateGauge.Set(float64(rewardRate))
}

func RecordAccountBalance(account string, balance uint64) {
	accountBalanceGauge.WithLabelValues(account).Set(float64(balance))
}

func RecordQueueSendError() {
	queueSendErrorCounter.Inc()
}
