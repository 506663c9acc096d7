// Package timeouts defines shared timeout constants used by the contacts
// service boundaries. Keeping them together makes the durations discoverable.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing the gRPC health endpoint.
const GRPCDial = 2 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 10 * time.Second

// Cache caps a single cache round-trip made while serving a request.
const Cache = 500 * time.Millisecond

// MailSend caps a single SMTP delivery attempt.
const MailSend = 30 * time.Second

// AvatarUpload caps a single avatar upload to the image CDN.
const AvatarUpload = 30 * time.Second
