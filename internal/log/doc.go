// Package log provides secure logging with automatic masking of sensitive
// information, built on top of the standard slog package.
//
// The SecureHandler masks the session fixture (both plaintexts and the key)
// along with common credential keys and token-shaped values. Even in verbose
// mode these values never reach the log output, so a debug log can be shared
// without revealing the messages a session is trying to recover.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("session created",
//	    "key", fixture.Key, // written as ***REDACTED***
//	    "ciphertext_bits", len(c1),
//	)
package log
