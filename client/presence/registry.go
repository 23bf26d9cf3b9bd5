package presence

import (
	"sync"

	"github.com/rs/zerolog"
)

type (
	// Listener is notified after every roster swap.
	Listener func(roster []string)

	Config struct {
		Logger   *zerolog.Logger
		OnChange Listener
	}

	// Registry holds the latest peer roster received from the server.
	// Rosters are replaced wholesale, never merged.
	Registry struct {
		logger   zerolog.Logger
		onChange Listener
		mx       *sync.RWMutex
		roster   []string
	}
)

func NewRegistry(cfg Config) *Registry {
	return &Registry{
		logger:   cfg.Logger.With().Str("component", "presence").Logger(),
		onChange: cfg.OnChange,
		mx:       &sync.RWMutex{},
		roster:   []string{},
	}
}

// Replace swaps the held roster for a copy of roster and notifies
// the listener, even if nothing changed.
func (r *Registry) Replace(roster []string) {
	next := make([]string, len(roster))
	copy(next, roster)

	r.mx.Lock()
	r.roster = next
	r.mx.Unlock()

	r.logger.Debug().Int("peers", len(next)).Msg("roster replaced")

	if r.onChange != nil {
		r.onChange(clone(next))
	}
}

func (r *Registry) Current() []string {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return clone(r.roster)
}

func (r *Registry) Clear() {
	r.Replace(nil)
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
