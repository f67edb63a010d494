// Package pprof mounts the runtime profiling endpoints on the site router
package pprof

import (
	"net/http"
	netpprof "net/http/pprof"
	"runtime"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// Prefix is where the endpoints are mounted
const Prefix = "/debug/pprof/"

// Options configures block and mutex sampling while the endpoints are mounted
type Options struct {
	BlockProfileRate     int // Sample 1/n events (default: 1)
	MutexProfileFraction int // Sample 1/n events (default: 1)
}

// Register mounts the profiling endpoints under Prefix on r
func Register(r *httprouter.Router, opts Options) {
	if opts.BlockProfileRate == 0 {
		opts.BlockProfileRate = 1
	}
	if opts.MutexProfileFraction == 0 {
		opts.MutexProfileFraction = 1
	}
	runtime.SetBlockProfileRate(opts.BlockProfileRate)
	runtime.SetMutexProfileFraction(opts.MutexProfileFraction)

	h := http.HandlerFunc(serve)
	r.Handler(http.MethodGet, Prefix+"*item", h)
	// the symbol endpoint accepts POSTed addresses
	r.Handler(http.MethodPost, Prefix+"*item", h)
}

func serve(w http.ResponseWriter, r *http.Request) {
	name := strings.Trim(httprouter.ParamsFromContext(r.Context()).ByName("item"), "/")

	switch name {
	case "":
		netpprof.Index(w, r)
	case "cmdline":
		netpprof.Cmdline(w, r)
	case "profile":
		netpprof.Profile(w, r)
	case "symbol":
		netpprof.Symbol(w, r)
	case "trace":
		netpprof.Trace(w, r)
	default:
		netpprof.Handler(name).ServeHTTP(w, r)
	}
}
