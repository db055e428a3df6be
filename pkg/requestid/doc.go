// Package requestid correlates log records of one HTTP request.
//
// Middleware assigns an id (client supplied when well-formed, otherwise a new
// UUID), and LoggerExtractor plugs it into pkg/logger:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
package requestid
