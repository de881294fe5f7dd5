// Package log builds the slog loggers used by telscan.
//
// Site configuration can carry cookies and authorization headers, and the
// fetcher logs request details at debug level. SecureHandler masks those
// values before they reach the output:
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("request", "cookie", "session=abc; lang=ja")
//	// cookie="session=***; lang=***"
//
// Phone numbers and URLs are logged unchanged.
package log
