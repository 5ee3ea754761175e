// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics exposes Prometheus collectors for the HTTP surface and for
allocation runs.

	m := metrics.New()
	mux.HandleFunc("POST /cohorts", m.WrapHandler("create_cohort", handler))
	mux.Handle("GET /metrics", m.Handler())

Allocation outcomes are recorded by the allocate handler:

	m.RunRejected()      // validation failed, engine not run
	m.ObserveRun(result) // success or engine failure

All methods are safe on a nil *Metrics, which records nothing.
*/
package metrics
