/*
Package monitoring provides Prometheus metrics for the gamifier client core.

# Overview

Each Metrics value owns a private registry, so independent client, audio and
theme instances (as created in tests) never collide on registration.

# Features

- API request counts by method and status class
- API request latency
- In-flight request gauge mirroring the loading indicator
- Audio cue, tone and failure counters
- Theme change counter

# Usage

	metrics := monitoring.NewMetrics()
	client := api.NewClient(api.Options{Metrics: metrics})

	timer := monitoring.NewTimer(metrics, "GET")
	// ... perform request ...
	timer.Stop(200)

	// Dump on exit
	metrics.WriteToFile("/var/tmp/gamifier.prom")
*/
package monitoring
