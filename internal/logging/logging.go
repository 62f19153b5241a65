// vi: sw=4 ts=4:

/*

	Mnemonic:	logging
	Abstract:	A small leveled, prefixed, hierarchically-muted logger in the
				shape of the bleater package that tegu's managers use
				(Mk_bleater/Set_prefix/Add_child/Baa), backed by zerolog
				rather than a hand rolled writer.
	Date:		31 July 2026
	Author:		rendez contributors
*/

package logging

import (
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// Sheep is a leveled logger that can be muted/unmuted as a tree: setting
// the level on a parent recurses to every child that was attached with
// AddChild, exactly as tegu's bleaters do for its manager goroutines.
type Sheep struct {
	mu       sync.Mutex
	level    uint
	prefix   string
	logger   zerolog.Logger
	children []*Sheep
}

// New allocates a sheep bleating at the given level to w.
func New(level uint, w io.Writer) *Sheep {
	return &Sheep{
		level:  level,
		logger: zerolog.New(w).With().Timestamp().Logger(),
	}
}

// SetPrefix tags every subsequent bleat with the given component name, the
// way tegu's managers call sheep.Set_prefix("agentmgr").
func (s *Sheep) SetPrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefix = prefix
}

// AddChild registers a child sheep whose level follows this one's, the way
// tegu_sheep.Add_child(am_sheep) lets -v turn up every manager's chatter.
func (s *Sheep) AddChild(child *Sheep) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.children = append(s.children, child)
	child.SetLevel(s.level)
}

// SetLevel changes this sheep's bleat threshold and recurses to children.
func (s *Sheep) SetLevel(level uint) {
	s.mu.Lock()
	s.level = level
	children := append([]*Sheep(nil), s.children...)
	s.mu.Unlock()

	for _, c := range children {
		c.SetLevel(level)
	}
}

// Baa emits a message at the given level if the sheep's current level
// permits it; level 0 always bleats (matches tegu's convention that 0 is
// "always show", used for warnings/errors).
func (s *Sheep) Baa(level uint, format string, args ...interface{}) {
	s.mu.Lock()
	cur := s.level
	prefix := s.prefix
	s.mu.Unlock()

	if level > cur {
		return
	}

	ev := s.logger.Info()
	if prefix != "" {
		ev = ev.Str("component", prefix)
	}
	ev.Msgf(format, args...)
}
