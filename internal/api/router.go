package api

import (
	"net/http"
	"strings"
)

// Reply is a response produced by an interceptor that stops the chain.
type Reply struct {
	Status int
	Body   any
}

// Decision is the outcome of one interceptor.
type Decision struct {
	// Request replaces the request seen by later stages; nil keeps the current one.
	Request *http.Request
	// Reply, when set, is written immediately and no later stage runs.
	Reply *Reply
	// After runs once the response has been written, with its status code.
	After func(status int)
}

// Interceptor runs before a route handler and decides whether it may proceed.
type Interceptor func(r *http.Request) Decision

// Proceed lets the request continue unchanged or annotated.
func Proceed(r *http.Request) Decision {
	return Decision{Request: r}
}

// Stop short-circuits the chain with a JSON response.
func Stop(status int, body any) Decision {
	return Decision{Reply: &Reply{Status: status, Body: body}}
}

// Router dispatches requests through an ordered list of interceptors to the
// handler registered for the route.
//
// Interceptors added with Use run for every request, matched or not. Those
// added with UseParam run only on routes whose pattern contains the named
// wildcard; they must be added before the routes are registered.
type Router struct {
	mux    *http.ServeMux
	global []Interceptor
	params []paramInterceptor
}

type paramInterceptor struct {
	segment     string
	interceptor Interceptor
}

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{mux: http.NewServeMux()}
}

// Use appends interceptors that run for every request.
func (rt *Router) Use(ics ...Interceptor) {
	rt.global = append(rt.global, ics...)
}

// UseParam appends an interceptor for routes with a {name} wildcard.
func (rt *Router) UseParam(name string, ic Interceptor) {
	rt.params = append(rt.params, paramInterceptor{segment: "{" + name + "}", interceptor: ic})
}

// Handle registers h for pattern (net/http ServeMux syntax, e.g. "PUT /books/{id}").
func (rt *Router) Handle(pattern string, h http.HandlerFunc) {
	var chain []Interceptor
	for _, p := range rt.params {
		if strings.Contains(pattern, p.segment) {
			chain = append(chain, p.interceptor)
		}
	}
	rt.mux.Handle(pattern, intercept(chain, h))
}

// ServeHTTP runs the global interceptors, then the route.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	intercept(rt.global, rt.mux).ServeHTTP(w, r)
}

// intercept runs chain in order, stopping at the first Reply, and then calls
// next. After hooks run in reverse order once the response is complete.
func intercept(chain []Interceptor, next http.Handler) http.Handler {
	if len(chain) == 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		var after []func(int)
		defer func() {
			for i := len(after) - 1; i >= 0; i-- {
				after[i](rec.status)
			}
		}()

		for _, ic := range chain {
			d := ic(r)
			if d.After != nil {
				after = append(after, d.After)
			}
			if d.Reply != nil {
				writeJSON(rec, d.Reply.Status, d.Reply.Body)
				return
			}
			if d.Request != nil {
				r = d.Request
			}
		}
		next.ServeHTTP(rec, r)
	})
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if !s.wroteHeader {
		s.status = code
		s.wroteHeader = true
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.wroteHeader = true
	return s.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
