// vi: sw=4 ts=4:

/*

	Mnemonic:	notify
	Abstract:	The server->client notification channel: one named FIFO per
				registered process, carrying exactly one 4-byte host-order
				transition index per firing, with no framing. Replaces
				GFSP/main.c's raw mkfifo(2)/open(2)/read(2) sequence and the
				SS side's (unmodeled in original_source) write half, using
				golang.org/x/sys/unix the way
				joeycumines-go-utilpkg/eventloop's wakeup_linux.go opens a
				platform pipe instead of going through os.Pipe.
	Date:		31 July 2026
	Author:		rendez contributors
*/

package notify

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"golang.org/x/sys/unix"
)

// wireSize is the fixed, unframed width of one notification: a single
// native-endian int32, matching spec.md sec 4.2.3/4.3 and GFSP/main.c's
// read(fifo_fd, &transition_index, sizeof(transition_index)).
const wireSize = 4

// Path returns a unique FIFO path under dir for a newly registering
// process, replacing GFSP/main.c's sprintf(fifo_filename, "/tmp/%d.fifo",
// getpid()) -- a random suffix instead of a pid, since one ssd may outlive
// many short-lived clients reusing the same pid.
func Path(dir string) string {
	return dir + "/" + uuid.NewString() + ".fifo"
}

// Create makes the named pipe at path with mode 0666, the Go equivalent of
// mkfifo(fifo_filename, 0666).
func Create(path string) error {
	if err := unix.Mkfifo(path, 0666); err != nil {
		return errors.Wrapf(err, "mkfifo %s", path)
	}
	return nil
}

// Send delivers one firing: open path write-only, write transitionIndex as
// a native-endian int32, close. Opening a FIFO write-only blocks until a
// reader is present, exactly as the kernel contract requires. Send attaches
// no deadline: a client that never opens its end of the FIFO blocks the
// caller (on the server, the single dispatch goroutine) indefinitely.
func Send(path string, transitionIndex int) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return errors.Wrapf(err, "open fifo %s for write", path)
	}
	defer f.Close()

	buf := make([]byte, wireSize)
	binary.NativeEndian.PutUint32(buf, uint32(transitionIndex))
	if _, err := f.Write(buf); err != nil {
		return errors.Wrapf(err, "write fifo %s", path)
	}
	return nil
}

// Receive blocks on path until one firing arrives, the Go equivalent of
// GFSP/main.c's run() loop body: open read-only, read exactly 4 bytes,
// close, return the decoded transition index.
func Receive(path string) (int, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return 0, errors.Wrapf(err, "open fifo %s for read", path)
	}
	defer f.Close()

	buf := make([]byte, wireSize)
	if _, err := io.ReadFull(f, buf); err != nil {
		return 0, errors.Wrapf(err, "read fifo %s", path)
	}
	return int(binary.NativeEndian.Uint32(buf)), nil
}

// Remove deletes the FIFO at path, the equivalent of GFSP/main.c's
// handle_sigint calling unlink(fifo_filename). Missing files are not an
// error -- cleanup is best-effort on an already-dying client.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove fifo %s", path)
	}
	return nil
}
