// Package server hosts the network-facing servers: the HTTP transport over
// the facade operations, Kubernetes-style health probes and the dedicated
// Prometheus metrics listener.
package server
