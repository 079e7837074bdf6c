package adapter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	scopeCell          = "cell"
	scopeSupplementary = "supplementary"

	resultUnregistered  = "unregistered"
	resultDequeued      = "dequeued"
	resultClassMismatch = "class_mismatch"
)

var (
	registrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carbon_reuse_registrations_total",
			Help: "Total number of reuse identifier registrations pushed into surface pools",
		},
		[]string{"scope"},
	)

	dequeuesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carbon_reuse_dequeues_total",
			Help: "Total number of dequeue attempts by outcome",
		},
		[]string{"scope", "result"},
	)

	trackedSurfaces = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "carbon_reuse_registry_surfaces",
			Help: "Number of surfaces with a live reuse registry record",
		},
	)
)
