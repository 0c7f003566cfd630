package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

type Collector struct {
	requests      uint64
	errors        uint64
	syncs         uint64
	reconstructed uint64
	deleted       uint64
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) IncRequests() {
	atomic.AddUint64(&c.requests, 1)
}

func (c *Collector) IncErrors() {
	atomic.AddUint64(&c.errors, 1)
}

// ObserveSync records one pipeline synchronization.
func (c *Collector) ObserveSync(reconstructed bool) {
	atomic.AddUint64(&c.syncs, 1)
	if reconstructed {
		atomic.AddUint64(&c.reconstructed, 1)
	}
}

func (c *Collector) AddDeleted(n int) {
	if n > 0 {
		atomic.AddUint64(&c.deleted, uint64(n))
	}
}

type Snapshot struct {
	Requests      uint64
	Errors        uint64
	Syncs         uint64
	Reconstructed uint64
	Deleted       uint64
}

func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Requests:      atomic.LoadUint64(&c.requests),
		Errors:        atomic.LoadUint64(&c.errors),
		Syncs:         atomic.LoadUint64(&c.syncs),
		Reconstructed: atomic.LoadUint64(&c.reconstructed),
		Deleted:       atomic.LoadUint64(&c.deleted),
	}
}

type Handler struct {
	collector *Collector
}

func NewHandler(collector *Collector) *Handler {
	return &Handler{collector: collector}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	var snap Snapshot
	if h.collector != nil {
		snap = h.collector.Snapshot()
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	writeCounter(w, "jobmatch_http_requests_total", "Total number of HTTP requests.", snap.Requests)
	writeCounter(w, "jobmatch_http_errors_total", "Total number of 5xx HTTP responses.", snap.Errors)
	writeCounter(w, "jobmatch_pipeline_syncs_total", "Pipeline state synchronizations.", snap.Syncs)
	writeCounter(w, "jobmatch_accounts_reconstructed_total", "Accounts rebuilt from application or proposal evidence.", snap.Reconstructed)
	writeCounter(w, "jobmatch_records_deleted_total", "Applications and proposals removed by the console.", snap.Deleted)
}

func writeCounter(w http.ResponseWriter, name, help string, value uint64) {
	_, _ = fmt.Fprintf(w, "# HELP %s %s\n", name, help)
	_, _ = fmt.Fprintf(w, "# TYPE %s counter\n", name)
	_, _ = fmt.Fprintf(w, "%s %d\n", name, value)
}
