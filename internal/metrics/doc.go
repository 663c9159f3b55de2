// Package metrics records render and build measurements.
//
// Renderers and the build command take a Recorder. NoopRecorder is the
// default; PrometheusRecorder backs the /metrics endpoint of serve mode.
package metrics
