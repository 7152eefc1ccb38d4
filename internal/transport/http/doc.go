// Package http adapts HTTP requests to use cases.
//
// A controller embeds BaseController, which binds a use case and a logger
// scoped with the controller's name, and implements ProcessRequest:
//
//	func (c *ThingController) ProcessRequest(w http.ResponseWriter, r *http.Request) error {
//	    result, err := c.UseCase().Execute(r.Context(), req)
//	    if err != nil {
//	        return err // unexpected: answered by the error handler
//	    }
//	    if result.IsError() {
//	        return c.DomainError(w, r, result.Err())
//	    }
//	    return c.OK(w, r, result.Value())
//	}
//
// RequestHandler turns a controller into an http.HandlerFunc. Returned errors
// and panics are forwarded once to the NextFunc it is given, normally
// (*errors.ErrorHandler).HandleError, so they never take the process down.
//
// # Response Helpers
//
//	OK / Created    200 / 201 with the JSON payload, status only when nil
//	Fail            500 {"message": err.Error()}
//	BadRequest      400 {"message": ...} default "bad requst"
//	Unauthorized    401 default "Unauthorized"
//	Forbidden       403 default "Forbidden"
//	NotFound        404 default "Not found"
//	JSONResponse    any status with a JSON payload
//
// Each helper writes exactly one response.
package http
