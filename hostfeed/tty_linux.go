package hostfeed

import (
	"github.com/juju/errors"
	"golang.org/x/sys/unix"
)

// makeRaw disables echo and line discipline on terminal devices.
// Not a terminal (pipe, regular file) is not an error.
func makeRaw(fd uintptr) error {
	t, err := unix.IoctlGetTermios(int(fd), unix.TCGETS)
	if err == unix.ENOTTY || err == unix.EINVAL {
		return nil
	}
	if err != nil {
		return errors.Annotate(err, "TCGETS")
	}
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB
	t.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0
	if err = unix.IoctlSetTermios(int(fd), unix.TCSETS, t); err != nil {
		return errors.Annotate(err, "TCSETS")
	}
	return nil
}
