// vi: sw=4 ts=4:

/*

	Mnemonic:	ss
	Abstract:	The Synchronisation Server's single dispatch goroutine:
				owns a *gizmos.Registry, reads *ipc.Chmsg off one channel,
				and answers each of the four request kinds the way
				Agent_mgr's run loop answers REQ_* messages -- a big
				switch on Msg_type, Response_data/State filled in, then
				req.Reply(). A time.Ticker drives a periodic stale-process
				sweep, the same recurring-tickle role tklr.Add_spot plays
				for managers/agent.go, but here handled in the same select
				loop that reads the request channel so the registry is still
				only ever touched from this one goroutine.
	Date:		31 July 2026
	Author:		rendez contributors
*/

package ss

import (
	"context"
	"time"

	"github.com/att/rendez/internal/gizmos"
	"github.com/att/rendez/internal/ipc"
	"github.com/att/rendez/internal/logging"
	"github.com/att/rendez/internal/notify"
	"github.com/att/rendez/internal/transport"
)

// Message types accepted on a Server's request channel, the SS-domain
// analogue of tegu's REQ_GETIP/REQ_ADD/... constants. Order must track
// transport.Kind's -- transport.Server reuses the wire Kind as the
// ipc.Chmsg.MsgType directly rather than re-declaring the same mapping.
const (
	ReqAlphabet = iota
	ReqSensitivity
	ReqSynchronise
	ReqDelete
	reqStaleSweep
)

// staleSweepInterval is how often the server checks for registered
// processes whose notification FIFO has gone stale (peer gone, never
// draining), matching spec.md sec 7's "operators are expected to restart
// affected clients" -- this sweep only logs, it never deletes on the
// operator's behalf.
const staleSweepInterval = 30 * time.Second

// Server is the single owner of a *gizmos.Registry. Every exported
// behavior is reached only by sending a *ipc.Chmsg to ReqCh; Run is the
// only goroutine that ever touches Registry directly.
type Server struct {
	ReqCh chan *ipc.Chmsg

	registry *gizmos.Registry
	log      *logging.Sheep

	// staleRounds counts, per endpoint, the consecutive sweeps at which the
	// process still owed a sensitivity update. There is no lock, so this
	// bookkeeping is only ever read/written from Run's own goroutine too.
	staleRounds map[string]int
}

// NewServer builds a Server with its own registry and request channel,
// ready for Run.
func NewServer(log *logging.Sheep) *Server {
	return &Server{
		ReqCh:       make(chan *ipc.Chmsg, 64),
		registry:    gizmos.NewRegistry(),
		log:         log,
		staleRounds: make(map[string]int),
	}
}

// Run is the dispatch loop. It blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(staleSweepInterval)
	defer ticker.Stop()

	s.log.Baa(1, "synchronisation server dispatch loop starting")
	for {
		select {
		case <-ctx.Done():
			s.log.Baa(1, "synchronisation server dispatch loop stopping")
			return

		case <-ticker.C:
			s.sweepStale()

		case req := <-s.ReqCh:
			s.handle(req)
			req.Reply()
		}
	}
}

func (s *Server) handle(req *ipc.Chmsg) {
	switch req.MsgType {
	case ReqAlphabet:
		s.handleAlphabet(req)
	case ReqSensitivity:
		s.handleSensitivity(req)
	case ReqSynchronise:
		s.handleSynchronise(req)
	case ReqDelete:
		s.handleDelete(req)
	default:
		req.State = ErrUnknownRequest
	}
}

func (s *Server) handleAlphabet(req *ipc.Chmsg) {
	r, _ := req.ReqData.(*transport.AlphabetRequest)
	if r == nil {
		req.State = gizmos.ErrMalformedRequest
		return
	}
	indices, err := s.registry.AddAlphabet(r.Endpoint, r.Prefix, r.Actions, r.FifoPath)
	if err != nil {
		req.State = err
		return
	}
	s.log.Baa(2, "registered alphabet for %s: %d actions", r.Endpoint, len(r.Actions))
	req.RespData = &transport.AlphabetReply{Indices: indices}
}

func (s *Server) handleSensitivity(req *ipc.Chmsg) {
	r, _ := req.ReqData.(*transport.SensitivityRequest)
	if r == nil {
		req.State = gizmos.ErrMalformedRequest
		return
	}
	if err := s.registry.UpdateSensitivities(r.Endpoint, r.Vector); err != nil {
		req.State = err
		return
	}
	req.RespData = &transport.Ack{}
}

func (s *Server) handleSynchronise(req *ipc.Chmsg) {
	r, _ := req.ReqData.(*transport.SynchroniseRequest)
	if r == nil {
		req.State = gizmos.ErrMalformedRequest
		return
	}
	err := s.registry.Synchronise(r.TransitionIndex, func(p *gizmos.Process, idx int) error {
		return notify.Send(p.FifoPath, idx)
	})
	if err != nil {
		req.State = err
		return
	}
	s.log.Baa(2, "fired transition %d", r.TransitionIndex)
	req.RespData = &transport.Ack{}
}

func (s *Server) handleDelete(req *ipc.Chmsg) {
	r, _ := req.ReqData.(*transport.DeleteRequest)
	if r == nil {
		req.State = gizmos.ErrMalformedRequest
		return
	}
	if err := s.registry.DeleteProcess(r.Endpoint); err != nil {
		req.State = err
		return
	}
	delete(s.staleRounds, r.Endpoint)
	s.log.Baa(2, "deleted process %s", r.Endpoint)
	req.RespData = &transport.Ack{}
}

// sweepStale logs (never deletes) every process that has owed an update
// for more than one sweep interval -- a signal to operators, not an
// automatic reap, per spec.md sec 7.
func (s *Server) sweepStale() {
	seen := make(map[string]bool)
	for _, ts := range s.registry.TransitionStrings() {
		t := s.registry.Transition(ts.Index)
		if t == nil {
			continue
		}
		for _, p := range t.Participants {
			ep := p.Process.Endpoint
			if seen[ep] {
				continue
			}
			seen[ep] = true
			if p.Process.WaitingForUpdate {
				s.staleRounds[ep]++
				if s.staleRounds[ep] >= 2 {
					s.log.Baa(0, "process %s has owed a sensitivity update for %d sweeps", ep, s.staleRounds[ep])
				}
			} else {
				delete(s.staleRounds, ep)
			}
		}
	}
}
