// Package server wires the contacts runtime: SQL store, cache and rate
// limiter backends, mail delivery, the HTTP API, and the gRPC health
// endpoint used by container probes.
package server
