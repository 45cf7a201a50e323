package metrics

import (
	"context"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Serve registers a Collector against its own prometheus.Registry (kept
// private rather than the global DefaultRegisterer so a process can run
// more than one Manager/Collector pair without a registration clash) and
// starts an HTTP server on addr exposing it at path. It returns
// immediately; call the returned shutdown function to stop serving.
func Serve(addr, path string, c *Collector) (shutdown func(context.Context) error, err error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(c)

	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{Handler: mux}
	go srv.Serve(ln)

	return srv.Shutdown, nil
}
