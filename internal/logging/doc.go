// Package logging provides structured logging utilities for taskly-mcp.
//
// It centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog, always directed to stderr
//   - PII sanitization (user identifiers are hashed before logging)
//   - Token and secret masking
//   - Consistent attribute naming across the codebase
//
// # Security Considerations
//
//   - User identifiers are hashed to allow correlation without exposure
//   - Tokens and secrets are never logged directly
package logging
