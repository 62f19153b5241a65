// vi: sw=4 ts=4:

/*

	Mnemonic:	errors
	Abstract:	Sentinel error kinds for the registry's four request
				handlers, matching the error taxonomy in the design (malformed
				request, invalid argument, precondition violated, transient
				I/O, fatal). Built with cockroachdb/errors so callers can
				still errors.Is/As through the transport layer's envelope
				translation.
	Date:		31 July 2026
	Author:		rendez contributors
*/

package gizmos

import "github.com/cockroachdb/errors"

var (
	// ErrMalformedRequest covers missing fields, unknown endpoints, and
	// length mismatches -- no state is ever mutated before this is returned.
	ErrMalformedRequest = errors.New("malformed request")

	// ErrInvalidArgument covers an unknown transition index on synchronise,
	// duplicate participation within one alphabet call, and re-announcing
	// an alphabet without first deleting the process.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPreconditionViolated covers synchronise while non-quiescent, and
	// synchronise where some participant is not sensitive.
	ErrPreconditionViolated = errors.New("precondition violated")

	// ErrTransientIO covers a FIFO open/write failure mid-dispatch; any
	// participants already notified remain marked waiting-for-update.
	ErrTransientIO = errors.New("transient I/O failure")
)
