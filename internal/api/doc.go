// Package api implements the HTTP surface of the books service.
//
// Requests pass through an explicit, ordered list of interceptors before they
// reach a route handler:
//
//	CORS ─▶ LogRequests ─▶ ValidateParam("id") ─▶ handler ─▶ storage.Store
//	                       (only on /books/{id})
//
// An interceptor returns a Decision: proceed (possibly with an annotated
// request), or stop with a Reply that is written immediately. Either may carry
// an After hook, which runs once the response is complete; LogRequests uses it
// to log elapsed time and end the request span.
//
// Routes:
//
//	GET    /books?author=  list, optionally filtered by author substring
//	POST   /books          create with a generated id
//	PUT    /books/{id}     replace name and author
//	DELETE /books/{id}     remove
//	GET    /health         liveness and collection counts
//
// Unknown ids answer 400 {"error":"Book not found"}; malformed ids answer
// 400 {"error":"Invalid project ID."} on every method under /books/{id}.
// Anything unrouted answers 404 {"error":"Not found"}.
package api
