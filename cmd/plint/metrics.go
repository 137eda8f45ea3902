package main

import "github.com/prometheus/client_golang/prometheus"

var (
	plintVersion = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "plint_version",
			Help: "Version information",
		},
		[]string{"version"},
	)
	checkIterationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "plint_check_iterations_total",
			Help: "Total number of completed check iterations since plint start",
		},
	)
	checkIterationChecks = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "plint_check_iteration_checks",
			Help: "Number of entries to check in the current iteration",
		},
	)
	checkIterationChecksDone = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "plint_check_iteration_checks_done",
			Help: "Number of entries already checked in the current iteration",
		},
	)
	checkDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "plint_check_duration_seconds",
			Help: "How long did a check took to complete",
		},
		[]string{"check"},
	)
	lastRunTime = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "plint_last_run_time_seconds",
			Help: "Last checks run completion time since unix epoch in seconds",
		},
	)
	lastRunDuration = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "plint_last_run_duration_seconds",
			Help: "Last checks run duration in seconds",
		},
	)
	panelsParsedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plint_panels_parsed_total",
			Help: "Total number of panels parsed since startup",
		},
		[]string{"kind"},
	)
)
