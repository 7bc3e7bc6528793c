// Package logging provides structured logging using uber/zap.
//
// Two modes are offered:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Output goes to stderr by default; the CLI reserves stdout for rendered
// views and raw PCM audio.
//
// Components receive named children so log lines carry their origin:
//
//	logger, _ := logging.New(logging.Config{Level: "info"})
//	apiLog := logger.Component("api")
//	apiLog.Warn("request failed", zap.Error(err))
package logging
