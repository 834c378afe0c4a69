package cli

import (
	"github.com/premkumr/ybmetrics/internal/config"
	"github.com/premkumr/ybmetrics/internal/lock"
	"github.com/premkumr/ybmetrics/internal/logger"
	"github.com/premkumr/ybmetrics/internal/monitor"
	"github.com/premkumr/ybmetrics/internal/store"
)

// Session holds the store-backed state shared by monitor and clean.
type Session struct {
	Config  *config.Config
	Hosts   []string
	Lock    *lock.Lock
	Store   store.KV
	History *monitor.History
	Log     logger.Logger
}

// OpenSession takes the instance lock, opens the snapshot store and loads
// the retained history. The caller must Close the session.
func OpenSession(cfg *config.Config, command string, log logger.Logger) (*Session, error) {
	if log == nil {
		log = logger.Noop()
	}
	s := &Session{
		Config: cfg,
		Hosts:  config.ExpandHosts(cfg.Hosts, cfg.Fetch.DefaultPort),
		Log:    log,
	}

	lk, err := lock.Acquire(lock.PathFor(cfg.Store.Path), command)
	if err != nil {
		return nil, err
	}
	s.Lock = lk
	log.Debug("acquired lock %s", lk.Path)

	kv, err := store.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Store = kv
	log.Debug("opened %s store %s", cfg.Store.Backend, cfg.Store.Path)

	h, err := monitor.NewHistory(kv, log)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.History = h

	return s, nil
}

// Close releases session resources.
func (s *Session) Close() {
	if s.Store != nil {
		if err := s.Store.Close(); err != nil {
			s.Log.Warn("closing store: %v", err)
		}
		s.Store = nil
	}
	if s.Lock != nil {
		s.Lock.Release() //nolint:errcheck // Lock release errors are non-fatal
		s.Lock = nil
	}
}

// newCollector builds a collector over HTTP using the configured timeout
// and normalization filter. history may be nil.
func newCollector(cfg *config.Config, history *monitor.History, log logger.Logger) *monitor.Collector {
	c := monitor.NewCollector(monitor.NewHTTPFetcher(cfg.Fetch.Timeout), history, log)
	c.SetFilter(monitor.Filter{
		SystemNamespace: cfg.Filter.SystemNamespace,
		TestTable:       cfg.Filter.TestTable,
	})
	return c
}
