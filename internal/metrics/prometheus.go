package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusProvider adapts Provider onto a prometheus.Registerer. The CLI
// selects it when --metrics-addr is set, serving the registry's gathered
// families over that address's /metrics endpoint.
type PrometheusProvider struct {
	reg prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	updowns    map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
}

// NewPrometheusProvider constructs a PrometheusProvider registered against reg.
func NewPrometheusProvider(reg prometheus.Registerer) *PrometheusProvider {
	return &PrometheusProvider{
		reg:        reg,
		counters:   make(map[string]*prometheus.CounterVec),
		updowns:    make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

func sanitize(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}

func (p *PrometheusProvider) Counter(name string, opts ...InstrumentOption) Counter {
	cfg := applyOptions(opts)
	labels := labelNames(cfg)

	p.mu.Lock()
	defer p.mu.Unlock()
	vec, ok := p.counters[name]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: sanitize(name),
			Help: cfg.Description,
		}, labels)
		p.reg.MustRegister(vec)
		p.counters[name] = vec
	}
	return counterAdapter{vec.With(cfg.Attributes)}
}

func (p *PrometheusProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	cfg := applyOptions(opts)
	labels := labelNames(cfg)

	p.mu.Lock()
	defer p.mu.Unlock()
	vec, ok := p.updowns[name]
	if !ok {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: sanitize(name),
			Help: cfg.Description,
		}, labels)
		p.reg.MustRegister(vec)
		p.updowns[name] = vec
	}
	return gaugeAdapter{vec.With(cfg.Attributes)}
}

func (p *PrometheusProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	cfg := applyOptions(opts)
	labels := labelNames(cfg)

	p.mu.Lock()
	defer p.mu.Unlock()
	vec, ok := p.histograms[name]
	if !ok {
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: sanitize(name),
			Help: cfg.Description,
		}, labels)
		p.reg.MustRegister(vec)
		p.histograms[name] = vec
	}
	return histogramAdapter{vec.With(cfg.Attributes)}
}

func labelNames(cfg InstrumentConfig) []string {
	if len(cfg.Attributes) == 0 {
		return nil
	}
	names := make([]string, 0, len(cfg.Attributes))
	for k := range cfg.Attributes {
		names = append(names, k)
	}
	return names
}

type counterAdapter struct{ c prometheus.Counter }

func (a counterAdapter) Add(n int64) { a.c.Add(float64(n)) }

type gaugeAdapter struct{ g prometheus.Gauge }

func (a gaugeAdapter) Add(n int64) { a.g.Add(float64(n)) }

type histogramAdapter struct{ h prometheus.Observer }

func (a histogramAdapter) Record(v float64) { a.h.Observe(v) }
