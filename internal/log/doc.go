// Package log provides slog loggers that never leak credentials and never
// dump whole documents.
//
// SecureHandler wraps any slog.Handler and rewrites attributes before they
// reach it:
//   - values of credential-like keys (authorization, cookie, token, ...)
//     are masked
//   - bearer/basic credentials, JWTs and private keys are masked wherever
//     they appear as a value
//   - user:password pairs embedded in URLs (proxy settings, error
//     messages) are masked while the rest of the URL stays readable
//   - long values are cut, with the dropped size noted
//
// Usage:
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log
