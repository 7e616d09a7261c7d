// Package prometheus wires application metrics onto a private registry and
// exposes them through a promhttp handler.
package prometheus

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector registers metric vectors and serves the scrape endpoint.
type MetricsCollector interface {
	RegisterCounter(name, help string, labels ...string) *prometheus.CounterVec
	RegisterGauge(name, help string, labels ...string) *prometheus.GaugeVec
	RegisterHistogram(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec
	Handler() http.Handler
}

// CollectorConfig holds collector settings.
type CollectorConfig struct {
	Namespace            string
	EnableGoMetrics      bool
	EnableProcessMetrics bool
}

type prometheusCollector struct {
	registry *prometheus.Registry
	cfg      CollectorConfig
	mu       sync.Mutex
	byName   map[string]prometheus.Collector
}

// NewCollector builds a collector over a private registry, optionally with
// the standard Go runtime and process collectors.
func NewCollector(cfg CollectorConfig) MetricsCollector {
	c := &prometheusCollector{
		registry: prometheus.NewRegistry(),
		cfg:      cfg,
		byName:   make(map[string]prometheus.Collector),
	}
	if cfg.EnableGoMetrics {
		c.registry.MustRegister(collectors.NewGoCollector())
	}
	if cfg.EnableProcessMetrics {
		c.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	return c
}

func (c *prometheusCollector) RegisterCounter(name, help string, labels ...string) *prometheus.CounterVec {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.byName[name]; ok {
		return existing.(*prometheus.CounterVec)
	}
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: c.cfg.Namespace,
		Name:      name,
		Help:      help,
	}, labels)
	c.registry.MustRegister(vec)
	c.byName[name] = vec
	return vec
}

func (c *prometheusCollector) RegisterGauge(name, help string, labels ...string) *prometheus.GaugeVec {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.byName[name]; ok {
		return existing.(*prometheus.GaugeVec)
	}
	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: c.cfg.Namespace,
		Name:      name,
		Help:      help,
	}, labels)
	c.registry.MustRegister(vec)
	c.byName[name] = vec
	return vec
}

func (c *prometheusCollector) RegisterHistogram(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.byName[name]; ok {
		return existing.(*prometheus.HistogramVec)
	}
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: c.cfg.Namespace,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}, labels)
	c.registry.MustRegister(vec)
	c.byName[name] = vec
	return vec
}

func (c *prometheusCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
