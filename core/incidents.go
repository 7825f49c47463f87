package core

import "sync"

// An IncidentHandler is notified about failures which have been absorbed by
// a conservative default instead of being returned to a caller: a table that
// could not be read, a speller that is not ready, a platform version without
// an exact table. Incidents are application errors created with Error or
// WrapError; handlers will usually switch on Code(err).
type IncidentHandler interface {
	Incident(err error)
}

// IncidentFunc adapts a function to the IncidentHandler interface.
type IncidentFunc func(err error)

// Incident calls f(err).
func (f IncidentFunc) Incident(err error) {
	f(err)
}

// Discard is an IncidentHandler which drops every incident.
var Discard IncidentHandler = IncidentFunc(func(error) {})

// IncidentCounter counts incidents per error code.
// It is safe for concurrent use.
type IncidentCounter struct {
	mx     sync.Mutex
	counts map[int]int
	last   error
}

// Incident records err.
func (c *IncidentCounter) Incident(err error) {
	c.mx.Lock()
	defer c.mx.Unlock()
	if c.counts == nil {
		c.counts = make(map[int]int)
	}
	c.counts[Code(err)]++
	c.last = err
}

// Count returns the number of incidents recorded for an error code.
func (c *IncidentCounter) Count(code int) int {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.counts[code]
}

// Total returns the number of incidents recorded.
func (c *IncidentCounter) Total() (n int) {
	c.mx.Lock()
	defer c.mx.Unlock()
	for _, cnt := range c.counts {
		n += cnt
	}
	return
}

// Last returns the most recent incident, or nil.
func (c *IncidentCounter) Last() error {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.last
}

// Fanout returns an IncidentHandler which forwards every incident to all
// non-nil handlers.
func Fanout(handlers ...IncidentHandler) IncidentHandler {
	hh := make([]IncidentHandler, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			hh = append(hh, h)
		}
	}
	return IncidentFunc(func(err error) {
		for _, h := range hh {
			h.Incident(err)
		}
	})
}

var _ IncidentHandler = &IncidentCounter{}
