package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter wraps a labelled Prometheus counter vector.
type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

// Set groups the counters exported by the menu bar.
type Set struct {
	Registry    *prometheus.Registry
	Projections *Counter
	MenuShows   *Counter
	WidgetOpens *Counter
}

// Default is the process-wide set served on the metrics endpoint.
var Default = NewSet(prometheus.NewRegistry())

// NewSet registers a fresh counter set on reg.
func NewSet(reg *prometheus.Registry) *Set {
	return &Set{
		Registry:    reg,
		Projections: NewCounterWithRegistry(reg, "menubar_projections_total", "Menu projections by menu kind.", "kind"),
		MenuShows:   NewCounterWithRegistry(reg, "menubar_menu_shows_total", "Menus shown by menu id.", "menu"),
		WidgetOpens: NewCounterWithRegistry(reg, "menubar_widget_opens_total", "Widget open requests by handler and result.", "handler", "result"),
	}
}

func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// Handler returns an HTTP handler serving the set's registry.
func (s *Set) Handler() http.Handler {
	return promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})
}
