package dispatch

import "maps"

// Stats counts what happened during a session.
type Stats struct {
	Hits         map[string]int64 // pad ID -> successful triggers
	Triggers     int64
	PowerToggles int64
}

func newStats() Stats {
	return Stats{Hits: map[string]int64{}}
}

func (s *Stats) record(padID string) {
	s.Hits[padID]++
	s.Triggers++
}

func (s Stats) clone() Stats {
	s.Hits = maps.Clone(s.Hits)
	return s
}
