package cmd

import (
	"expvar"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/CraigKelly/bayesreg/sampler"
)

type monitor struct {
	info    *expvar.Map
	stopped chan struct{}
	server  *http.Server
	addr    string
	log     *slog.Logger
	start   time.Time

	Samples         *expvar.Int
	Thin            *expvar.Int
	BurnIn          *expvar.Int
	TotalIterations *expvar.Int
	Iterations      *expvar.Int
	RunTime         *expvar.Float
}

// Start begins the monitor, serving expvar at addr. Vars are published under
// the "bayesreg-progress" map.
func (m *monitor) Start(addr string, cfg sampler.Config) error {
	if m.info != nil {
		return errors.Errorf("BUG: You may only start the process monitor once")
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "Could not listen on %s", addr)
	}
	m.addr = ln.Addr().String()

	m.info = new(expvar.Map).Init()
	m.stopped = make(chan struct{})
	m.start = time.Now()

	// Help the user and redirect to the only thing currently available:
	// the handler from the expvar package
	mux := http.NewServeMux()
	mux.Handle("/debug/vars", expvar.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/debug/vars", http.StatusTemporaryRedirect)
	})
	m.server = &http.Server{Handler: mux}

	m.Samples = new(expvar.Int)
	m.Thin = new(expvar.Int)
	m.BurnIn = new(expvar.Int)
	m.TotalIterations = new(expvar.Int)
	m.Iterations = new(expvar.Int)
	m.RunTime = new(expvar.Float)

	m.info.Set("Samples", m.Samples)
	m.info.Set("Thin", m.Thin)
	m.info.Set("Burn-In", m.BurnIn)
	m.info.Set("Total-Iterations", m.TotalIterations)
	m.info.Set("Iterations", m.Iterations)
	m.info.Set("Run-Time", m.RunTime)
	publishOnce(m.info)

	m.Samples.Set(int64(cfg.Samples))
	m.Thin.Set(int64(cfg.Thin))
	m.BurnIn.Set(int64(cfg.BurnIn))
	m.TotalIterations.Set(int64(cfg.Total()))

	// Actual server that will close the stopped channel on exit
	started := make(chan struct{})
	go func() {
		m.logger().Info("HTTP now available (see /debug/vars)", "addr", m.addr)
		close(started)
		m.serve(ln)
	}()

	<-started
	return nil
}

// serve blocks until the server stops. Anything other than a Stop is logged.
func (m *monitor) serve(ln net.Listener) {
	defer close(m.stopped)
	if err := m.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		m.logger().Warn("HTTP monitor failed", "addr", m.addr, "err", err)
	}
}

// Progress records chain progress - suitable for use as a sampler.ProgressFunc
func (m *monitor) Progress(iter int, total int) {
	if m.info == nil {
		return
	}
	m.Iterations.Set(int64(iter))
	m.RunTime.Set(time.Since(m.start).Seconds())
}

func (m *monitor) Stop() {
	if m.info == nil {
		return
	}

	m.server.Close()

	select {
	case <-m.stopped:
		m.logger().Info("HTTP Info Stopped")
	case <-time.After(2 * time.Second):
		m.logger().Warn("HTTP would NOT stop: just continuing on")
	}
}

func (m *monitor) logger() *slog.Logger {
	if m.log == nil {
		return slog.Default()
	}
	return m.log
}

// expvar panics on duplicate names, so the progress map is published once per
// process and later monitors swap their vars in.
var published *expvar.Map

func publishOnce(info *expvar.Map) {
	if published == nil {
		published = new(expvar.Map).Init()
		expvar.Publish("bayesreg-progress", published)
	}
	info.Do(func(kv expvar.KeyValue) {
		published.Set(kv.Key, kv.Value)
	})
}
