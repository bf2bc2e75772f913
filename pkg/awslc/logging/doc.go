// Package logging provides the logging facade awslc reports through.
//
// Two adapters ship with the package:
//
//	// log/slog; nil follows slog.Default()
//	logger := logging.New(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
//
//	// logrus; nil binds to logrus.StandardLogger()
//	logger := logging.NewLogrus(logrus.New())
//
// The library logs through Discard until awslc.Configure installs a Logger.
// It only ever logs operation names, algorithm names and numeric engine
// codes, never key material or plaintext.
package logging
