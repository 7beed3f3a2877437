// Package facade implements the transport-independent operations of the
// server. The stdio and HTTP transports are thin adapters over this package:
// each operation verifies the caller's credential, talks to the backend and
// shapes the response, so both transports behave identically.
package facade
