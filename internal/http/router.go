package http

import (
	"net/http"
	"strings"
	"time"

	"jobmatch/internal/http/handlers"
	"jobmatch/internal/http/metrics"
	httpmw "jobmatch/internal/http/middleware"
	"jobmatch/internal/observability"
)

type RouterDependencies struct {
	PipelineHandler  *handlers.PipelineHandler
	ViewHandler      *handlers.ViewHandler
	SelectionHandler *handlers.SelectionHandler
	RecordHandler    *handlers.RecordHandler
	UserHandler      *handlers.UserHandler
	MetricsHandler   http.Handler
	Metrics          *metrics.Collector
	Logger           *observability.Logger
	AdminAPIKey      string
	Limiter          httpmw.Limiter
	BulkDeletePerMin int
	RequestTimeout   time.Duration
}

type Router struct {
	deps    RouterDependencies
	handler http.Handler
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	if deps.Logger == nil {
		deps.Logger = observability.NewNop()
	}
	r := &Router{deps: deps}
	r.handler = httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(deps.Logger),
		httpmw.BodyLimit(maxBodyBytes),
		httpmw.Recover(deps.Logger),
		httpmw.Metrics(deps.Metrics),
		httpmw.Timeout(deps.RequestTimeout),
	)
	return r
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	admin := httpmw.AdminAuth(r.deps.AdminAPIKey)(http.HandlerFunc(r.handleAdmin))
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics" && r.deps.MetricsHandler != nil:
			r.deps.MetricsHandler.ServeHTTP(w, req)
			return
		}

		if strings.HasPrefix(path, "/admin/") {
			admin.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleAdmin(w http.ResponseWriter, req *http.Request) {
	parts := strings.Split(strings.Trim(req.URL.Path, "/"), "/")
	method := req.Method

	switch {
	case len(parts) == 4 && parts[1] == "users" && parts[3] == "pipeline" && method == http.MethodPatch:
		r.deps.PipelineHandler.Update(w, req)
		return
	case len(parts) == 4 && parts[1] == "users" && parts[3] == "resume" && method == http.MethodGet:
		r.deps.UserHandler.Resume(w, req)
		return
	case len(parts) == 4 && parts[1] == "users" && parts[3] == "profile" && method == http.MethodPatch:
		r.deps.UserHandler.UpdateProfile(w, req)
		return
	case len(parts) == 3 && parts[1] == "users" && method == http.MethodDelete:
		r.deps.UserHandler.Delete(w, req)
		return
	case len(parts) == 3 && parts[1] == "views" && method == http.MethodGet:
		r.deps.ViewHandler.Get(w, req)
		return
	case len(parts) == 3 && parts[1] == "selections" && method == http.MethodGet:
		r.deps.SelectionHandler.Get(w, req)
		return
	case len(parts) == 3 && parts[1] == "selections" && method == http.MethodDelete:
		r.deps.SelectionHandler.Clear(w, req)
		return
	case len(parts) == 4 && parts[1] == "selections" && parts[3] == "select-all" && method == http.MethodPost:
		r.deps.SelectionHandler.SelectAll(w, req)
		return
	case len(parts) == 4 && parts[1] == "selections" && parts[3] == "toggle" && method == http.MethodPost:
		r.deps.SelectionHandler.Toggle(w, req)
		return
	case len(parts) == 4 && parts[1] == "selections" && parts[3] == "delete" && method == http.MethodPost:
		r.bulkDeleteLimit(http.HandlerFunc(r.deps.SelectionHandler.Delete)).ServeHTTP(w, req)
		return
	case len(parts) == 3 && parts[2] == "bulk-delete" && method == http.MethodPost:
		r.bulkDeleteLimit(http.HandlerFunc(r.deps.RecordHandler.BulkDelete)).ServeHTTP(w, req)
		return
	case len(parts) == 3 && method == http.MethodDelete:
		r.deps.RecordHandler.Delete(w, req)
		return
	}

	http.NotFound(w, req)
}

func (r *Router) bulkDeleteLimit(next http.Handler) http.Handler {
	if r.deps.Limiter == nil || r.deps.BulkDeletePerMin <= 0 {
		return next
	}
	return httpmw.RateLimit(r.deps.Limiter, httpmw.AdminKey("bulk-delete"), r.deps.BulkDeletePerMin, time.Minute)(next)
}
