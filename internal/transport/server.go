// vi: sw=4 ts=4:

/*

	Mnemonic:	server
	Abstract:	Accepts connections on a Unix domain socket, decodes one
				gob Request per connection, bridges it into an *ipc.Chmsg
				sent to the registry's dispatch channel, and gob-encodes
				the Envelope reply -- the same role http_api.go plays
				turning HTTP requests into ipc.Chmsg sends against
				rmgr_ch/nw_ch/osif_ch, just over a Unix socket instead of
				net/http.
	Date:		31 July 2026
	Author:		rendez contributors
*/

package transport

import (
	"encoding/gob"
	"net"

	"github.com/att/rendez/internal/ipc"
	"github.com/att/rendez/internal/logging"
)

// ErrKindFunc translates a handler error into the wire ErrKind tag; the
// server is given this function rather than importing internal/ss itself,
// so transport never needs to know about the registry's error sentinels
// (avoids a transport<->ss import cycle, since ss already imports
// transport for the wire payload types).
type ErrKindFunc func(error) ErrKind

// Server bridges a Unix domain socket listener to a registry dispatch
// channel.
type Server struct {
	Listener net.Listener
	ReqCh    chan *ipc.Chmsg
	ErrKind  ErrKindFunc
	Log      *logging.Sheep
}

// Serve accepts connections until the listener is closed.
func (s *Server) Serve() error {
	for {
		conn, err := s.Listener.Accept()
		if err != nil {
			return err
		}
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	dec := gob.NewDecoder(conn)
	enc := gob.NewEncoder(conn)

	var req Request
	if err := dec.Decode(&req); err != nil {
		if s.Log != nil {
			s.Log.Baa(1, "decode request failed: %v", err)
		}
		return
	}

	env := s.dispatch(&req)
	if err := enc.Encode(env); err != nil && s.Log != nil {
		s.Log.Baa(1, "encode reply failed: %v", err)
	}
}

func (s *Server) dispatch(req *Request) Envelope {
	msg := ipc.MkChmsg()
	respCh := make(chan *ipc.Chmsg)

	var reqData interface{}
	switch req.Kind {
	case KindAlphabet:
		if req.Alphabet == nil {
			return Envelope{Ok: false, Err: "alphabet request missing payload", ErrKind: ErrKindMalformed}
		}
		reqData = req.Alphabet
	case KindSensitivity:
		if req.Sensitivity == nil {
			return Envelope{Ok: false, Err: "sensitivity request missing payload", ErrKind: ErrKindMalformed}
		}
		reqData = req.Sensitivity
	case KindSynchronise:
		if req.Synchronise == nil {
			return Envelope{Ok: false, Err: "synchronise request missing payload", ErrKind: ErrKindMalformed}
		}
		reqData = req.Synchronise
	case KindDelete:
		if req.Delete == nil {
			return Envelope{Ok: false, Err: "delete request missing payload", ErrKind: ErrKindMalformed}
		}
		reqData = req.Delete
	default:
		return Envelope{Ok: false, Err: "unrecognised request kind", ErrKind: ErrKindMalformed}
	}

	// internal/ss's Req* message-type constants are declared in the same
	// order as Kind's, so the wire Kind doubles as the dispatch loop's
	// Msg_type without transport needing to import internal/ss.
	msg.SendReq(s.ReqCh, respCh, int(req.Kind), reqData, nil)
	reply := <-respCh

	if reply.State != nil {
		kind := ErrKindInternal
		if s.ErrKind != nil {
			kind = s.ErrKind(reply.State)
		}
		return Envelope{Ok: false, Err: reply.State.Error(), ErrKind: kind}
	}

	env := Envelope{Ok: true}
	switch resp := reply.RespData.(type) {
	case *AlphabetReply:
		env.AlphabetReply = resp
	case *Ack:
		env.Ack = resp
	}
	return env
}
