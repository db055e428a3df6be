// Package form holds typed form state and drives the submission lifecycle.
//
// A Schema[T] lists the fields of a record type T together with their
// validator rules. A Controller[T] owns one mounted form instance: the
// current values, the error entry of every field whose latest validation
// failed, the submission status, and the outcome of the last submission.
//
//	schema := form.NewSchema("login",
//		form.Field[Login]{Name: "email", Value: func(l Login) validator.Value { return validator.String(l.Email) }, Rules: emailRules},
//		form.Field[Login]{Name: "password", Value: func(l Login) validator.Value { return validator.String(l.Password) }, Rules: passwordRules},
//	)
//
//	ctrl := form.NewController(schema,
//		form.WithNotifier[Login](toaster),
//		form.WithLogger[Login](log),
//	)
//	defer ctrl.Close()
//
//	_ = ctrl.Update(func(l *Login) { l.Email = "a@b.com" }, "email")
//	sub := ctrl.Submit(ctx)
//	switch sub.Outcome {
//	case form.OutcomeInvalid:
//		// sub.Errors holds one entry per failing field
//	case form.OutcomeStarted:
//		result, err := sub.Wait(ctx)
//	case form.OutcomeIgnored:
//		// a submission is already in flight
//	}
//
// Status moves Idle -> Submitting -> Succeeded or Failed. A submit while
// Submitting is ignored. Close cancels the in-flight action and turns its
// completion into a no-op.
package form
