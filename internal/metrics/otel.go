package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = "league-data-service"
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

type otelInstruments struct {
	ctx               context.Context
	meter             metric.Meter
	requests          metric.Int64Counter
	requestLatencyMs  metric.Float64Histogram
	upstreamAttempts  metric.Int64Counter
	upstreamErrors    metric.Int64Counter
	upstreamLatencyMs metric.Float64Histogram
	cacheEvents       metric.Int64Counter
	outcomes          metric.Int64Counter
	pacerWaitMs       metric.Float64Histogram
	warmCycles        metric.Int64Counter
	warmErrors        metric.Int64Counter
	warmLatencyMs     metric.Float64Histogram
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter("league-data-service")
	ctx := context.Background()

	requests, err := meter.Int64Counter("http_requests_total")
	if err != nil {
		return nil, err
	}
	requestLatency, err := meter.Float64Histogram("http_request_duration_ms")
	if err != nil {
		return nil, err
	}

	upstreamAttempts, err := meter.Int64Counter("upstream_attempts_total")
	if err != nil {
		return nil, err
	}
	upstreamErrors, err := meter.Int64Counter("upstream_errors_total")
	if err != nil {
		return nil, err
	}
	upstreamLatency, err := meter.Float64Histogram("upstream_duration_ms")
	if err != nil {
		return nil, err
	}
	cacheEvents, err := meter.Int64Counter("cache_events_total")
	if err != nil {
		return nil, err
	}
	outcomes, err := meter.Int64Counter("league_outcomes_total")
	if err != nil {
		return nil, err
	}
	pacerWait, err := meter.Float64Histogram("pacer_wait_duration_ms")
	if err != nil {
		return nil, err
	}
	warmCycles, err := meter.Int64Counter("warm_cycles_total")
	if err != nil {
		return nil, err
	}
	warmErrors, err := meter.Int64Counter("warm_errors_total")
	if err != nil {
		return nil, err
	}
	warmLatency, err := meter.Float64Histogram("warm_cycle_duration_ms")
	if err != nil {
		return nil, err
	}

	return &otelInstruments{
		ctx:               ctx,
		meter:             meter,
		requests:          requests,
		requestLatencyMs:  requestLatency,
		upstreamAttempts:  upstreamAttempts,
		upstreamErrors:    upstreamErrors,
		upstreamLatencyMs: upstreamLatency,
		cacheEvents:       cacheEvents,
		outcomes:          outcomes,
		pacerWaitMs:       pacerWait,
		warmCycles:        warmCycles,
		warmErrors:        warmErrors,
		warmLatencyMs:     warmLatency,
	}, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	}
	o.recordCounter(o.requests, 1, attrs...)
	o.recordHistogram(o.requestLatencyMs, float64(duration.Milliseconds()), attrs...)
}

func (o *otelInstruments) recordUpstreamAttempt(league, operation string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrLeague, league),
		attribute.String(AttrOperation, operation),
	}
	o.recordCounter(o.upstreamAttempts, 1, attrs...)
	o.recordHistogram(o.upstreamLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.upstreamErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordCache(operation, event string) {
	if o == nil {
		return
	}
	o.recordCounter(o.cacheEvents, 1,
		attribute.String(AttrOperation, operation),
		attribute.String("event", event),
	)
}

func (o *otelInstruments) recordOutcome(league, source string) {
	if o == nil {
		return
	}
	o.recordCounter(o.outcomes, 1,
		attribute.String(AttrLeague, league),
		attribute.String(AttrSource, source),
	)
}

func (o *otelInstruments) recordPacerWait(duration time.Duration) {
	if o == nil {
		return
	}
	o.recordHistogram(o.pacerWaitMs, float64(duration.Milliseconds()))
}

func (o *otelInstruments) recordWarmCycle(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.recordCounter(o.warmCycles, 1)
	o.recordHistogram(o.warmLatencyMs, float64(duration.Milliseconds()))
	if err != nil {
		o.recordCounter(o.warmErrors, 1)
	}
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
