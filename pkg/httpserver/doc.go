// Package httpserver runs an http.Handler until its context is cancelled and
// then shuts it down gracefully.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithShutdownHook(func(ctx context.Context) error {
//			sessions.CloseAll()
//			return nil
//		}),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Signal handling is left to the caller. Shutdown hooks run after the
// listener stops, bounded by the shutdown timeout.
package httpserver
