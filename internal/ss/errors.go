// vi: sw=4 ts=4:

package ss

import (
	"github.com/cockroachdb/errors"

	"github.com/att/rendez/internal/gizmos"
	"github.com/att/rendez/internal/transport"
)

// ErrUnknownRequest covers a Chmsg with a MsgType none of the four SS
// handlers recognise -- a defensive case transport.Server's own Kind
// switch should make unreachable in practice.
var ErrUnknownRequest = errors.New("unknown request type")

// KindOf maps a registry/dispatch error to the wire-level ErrKind tag
// transport.Server attaches to its Envelope, the typed counterpart to
// spec.md sec 7's "type field".
func KindOf(err error) transport.ErrKind {
	switch {
	case err == nil:
		return transport.ErrKindNone
	case errors.Is(err, gizmos.ErrMalformedRequest):
		return transport.ErrKindMalformed
	case errors.Is(err, gizmos.ErrInvalidArgument):
		return transport.ErrKindInvalidArg
	case errors.Is(err, gizmos.ErrPreconditionViolated):
		return transport.ErrKindPrecondition
	case errors.Is(err, gizmos.ErrTransientIO):
		return transport.ErrKindIO
	default:
		return transport.ErrKindInternal
	}
}
