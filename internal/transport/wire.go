// vi: sw=4 ts=4:

/*

	Mnemonic:	wire
	Abstract:	The four request/reply shapes exchanged between cmd/gfsp
				and cmd/ssd (spec.md sec 6), plus the error envelope they
				ride home in. encoding/gob carries them: the message set is
				small, fixed, and entirely internal to this module, so no
				generated-code codec from the pack earns its schema-step
				overhead here (see DESIGN.md).
	Date:		31 July 2026
	Author:		rendez contributors
*/

package transport

// Kind tags which of the four requests a Request carries.
type Kind int

const (
	KindAlphabet Kind = iota
	KindSensitivity
	KindSynchronise
	KindDelete
)

// AlphabetRequest registers a process's prefix, ordered action list, and
// notification FIFO path (spec.md sec 4.1.1 / GFSP's ss_add_alphabet).
type AlphabetRequest struct {
	Endpoint string
	Prefix   string
	Actions  []string
	FifoPath string
}

// AlphabetReply carries the dense global transition index assigned to each
// of AlphabetRequest.Actions, in the same order.
type AlphabetReply struct {
	Indices []int
}

// SensitivityRequest replaces the caller's whole sensitivity vector (spec.md
// sec 4.1.2 / ss_update_sensitivities).
type SensitivityRequest struct {
	Endpoint string
	Vector   []bool
}

// SynchroniseRequest asks the server to fire one transition (spec.md sec
// 4.1.3).
type SynchroniseRequest struct {
	TransitionIndex int
}

// DeleteRequest removes the caller's registration (spec.md sec 4.1.4 /
// ss_delete_process).
type DeleteRequest struct {
	Endpoint string
}

// Ack is the reply payload for requests with nothing to return beyond
// success.
type Ack struct{}

// ErrKind is the typed tag carried alongside Envelope.Err, an explicit
// version of spec.md sec 7's "type field" that a caller can switch on
// without matching error prose.
type ErrKind string

const (
	ErrKindNone         ErrKind = ""
	ErrKindMalformed    ErrKind = "malformed"
	ErrKindInvalidArg   ErrKind = "invalid_argument"
	ErrKindPrecondition ErrKind = "precondition"
	ErrKindIO           ErrKind = "io"
	ErrKindInternal     ErrKind = "internal"
)

// Request is what crosses the wire from client to server: a Kind tag plus
// exactly one non-nil payload pointer, the one Kind names; the receiver
// switches on Kind to pick it (gob requires the receiving Decode call to
// know the concrete type, so Envelope and Request are decoded as concrete
// structs, never as bare interface{} -- see server.go/client.go).
type Request struct {
	Kind        Kind
	Alphabet    *AlphabetRequest
	Sensitivity *SensitivityRequest
	Synchronise *SynchroniseRequest
	Delete      *DeleteRequest
}

// Envelope is what crosses the wire from server to client: success plus
// payload, or failure plus a message and typed kind (spec.md sec 6's
// "code; ... filled in caller buffer" / "code" reply shapes, and sec 7's
// error propagation policy).
type Envelope struct {
	Ok      bool
	Err     string
	ErrKind ErrKind

	AlphabetReply *AlphabetReply
	Ack           *Ack
}
