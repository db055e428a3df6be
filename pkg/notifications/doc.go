// Package notifications implements toast notifications: short messages with
// a title, a description and a severity that appear after a user action and
// disappear on their own.
//
// Toaster tracks the toasts currently visible. Each toast with a positive
// Duration is dismissed automatically by a timer; dismissible toasts can also
// be closed early with Dismiss. Every appearance and dismissal is sent to a
// Deliverer as an Event so presenters can render it:
//
//   - NoOpDeliverer drops events (default).
//   - LogDeliverer writes them to slog.
//   - BroadcastDeliverer fans them out to in-process subscribers such as
//     server-sent event streams.
//   - MultiDeliverer combines several of the above.
//
// # Usage
//
//	stream := notifications.NewBroadcastDeliverer(16)
//	toaster := notifications.NewToaster(
//	    notifications.WithDeliverer(stream),
//	    notifications.WithLogger(log),
//	)
//	defer toaster.Close()
//
//	toaster.Notify(ctx, notifications.Success("Submitted!", "Account created."))
//
// Delivery is best effort. A failing deliverer is logged and never makes
// Notify fail, so the user-visible state stays consistent.
package notifications
