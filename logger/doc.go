// Package logger provides structured logging on top of zerolog.
//
// A Logger carries a service name and can be narrowed with WithComponent,
// WithFields and WithError. Level methods take optional field maps:
//
//	log := logger.NewDefault("moviesinfo").WithComponent("flux")
//	log.Info("subscribed", logger.Fields(logger.FieldStream, "names"))
//
// A process-wide logger is available through Init and the package-level
// functions.
package logger
