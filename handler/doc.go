// Package handler turns typed request handlers into http.HandlerFuncs.
//
// A HandlerFunc receives a Context and a request value that configured
// binders have already decoded, and returns a Response that renders itself:
//
//	type updateRequest struct {
//		Name string `json:"name"`
//	}
//
//	h := handler.HandlerFunc[handler.Context, updateRequest](
//		func(ctx handler.Context, req updateRequest) handler.Response {
//			if req.Name == "" {
//				return handler.JSONError(handler.ValidationError{"name": "Name is required"})
//			}
//			return handler.JSON(req)
//		},
//	)
//
//	r.Patch("/profile", handler.Wrap(h,
//		handler.WithBinder[handler.Context, updateRequest](bindJSON),
//		handler.WithErrorHandler[handler.Context, updateRequest](handler.NewErrorHandler(log)),
//	))
//
// Responses:
//   - JSON / JSONError write the {data, meta, error} envelope
//   - Empty / EmptyWithStatus write only a status code
//   - SSE streams signal patches over a datastar Server-Sent Events connection
//
// Errors returned by binders or Render go to the ErrorHandler, which maps
// HTTPError and ValidationError to status codes and logs by severity.
package handler
