// Package hostfeed receives status records from companion program on the PC.
// Records are newline separated JSON objects, e.g.
// {"media":"Song - Artist","mic":"MUTED"}
package hostfeed

import (
	"bytes"
	"encoding/json"
	"io"
	"io/ioutil"
	"os"
	"sync"
	"syscall"

	"github.com/juju/errors"
	"github.com/temoto/macropad/log2"
)

const (
	Tag = "host-feed"
	// Stdin is device name for reading records from standard input.
	Stdin = "-"

	DefaultMedia = "No Media"
	DefaultMic   = "LIVE"

	// Incomplete line longer than this is dropped.
	MaxBuffer = 256
	ReadChunk = 128
	// Media title runes shown on status line.
	MediaWidth = 10
)

type Record struct {
	Media string `json:"media"`
	Mic   string `json:"mic"`
}

// Line formats record for status screen: "<mic> | <media[:10]>".
func (self Record) Line() string {
	status := self.Mic
	if status == "" {
		status = "???"
	}
	media := []rune(self.Media)
	if len(media) > MediaWidth {
		media = media[:MediaWidth]
	}
	return status + " | " + string(media)
}

// Feed is io.Writer splitting input into lines and keeping last valid record.
// Write from reader goroutine, Line from display tick.
type Feed struct {
	Log     *log2.Log
	mu      sync.Mutex
	buf     []byte
	rec     Record
	version uint64
}

func New(log *log2.Log) *Feed {
	return &Feed{
		Log: log,
		buf: make([]byte, 0, MaxBuffer+ReadChunk),
		rec: Record{Media: DefaultMedia, Mic: DefaultMic},
	}
}

// Record returns last received record and number of records received.
func (self *Feed) Record() (Record, uint64) {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.rec, self.version
}

// Line is Record().Line() with change counter.
func (self *Feed) Line() (string, uint64) {
	r, v := self.Record()
	return r.Line(), v
}

// Write never fails. Input is consumed in ReadChunk pieces, same as
// serial reads in Run.
func (self *Feed) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		chunk := p
		if len(chunk) > ReadChunk {
			chunk = chunk[:ReadChunk]
		}
		p = p[len(chunk):]
		self.feed(chunk)
	}
	return n, nil
}

func (self *Feed) feed(chunk []byte) {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.buf = append(self.buf, chunk...)
	if len(self.buf) > MaxBuffer {
		self.Log.Debugf("%s overflow, dropped %d bytes", Tag, len(self.buf))
		self.buf = self.buf[:0]
		return
	}
	end := bytes.LastIndexByte(self.buf, '\n')
	if end < 0 {
		return
	}
	for _, line := range bytes.Split(self.buf[:end], []byte{'\n'}) {
		self.parse(line)
	}
	rest := copy(self.buf, self.buf[end+1:])
	self.buf = self.buf[:rest]
}

func (self *Feed) parse(line []byte) {
	line = bytes.TrimSpace(line)
	if len(line) < 2 || line[0] != '{' || line[len(line)-1] != '}' {
		return
	}
	r := Record{Media: DefaultMedia, Mic: DefaultMic}
	if err := json.Unmarshal(line, &r); err != nil {
		self.Log.Errorf("%s line='%s' err=%v", Tag, line, err)
		return
	}
	self.rec = r
	self.version++
	self.Log.Debugf("%s mic=%s media=%s", Tag, r.Mic, r.Media)
}

// Run copies r into feed until read error.
// EOF and errors after stop are not reported.
func (self *Feed) Run(r io.Reader, stop <-chan struct{}) error {
	buf := make([]byte, ReadChunk)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			_, _ = self.Write(buf[:n])
		}
		if err != nil {
			select {
			case <-stop:
				return nil
			default:
			}
			if err == io.EOF {
				return nil
			}
			return errors.Annotate(err, Tag)
		}
	}
}

// Open returns reader of device, e.g. USB serial gadget /dev/ttyGS0, or
// standard input for Stdin. Terminal devices are switched to raw mode.
func Open(device string) (io.ReadCloser, error) {
	if device == Stdin {
		return ioutil.NopCloser(os.Stdin), nil
	}
	f, err := os.OpenFile(device, os.O_RDWR|syscall.O_NOCTTY, 0)
	if err != nil {
		return nil, errors.Annotate(err, Tag)
	}
	if err = makeRaw(f.Fd()); err != nil {
		f.Close()
		return nil, errors.Annotatef(err, "%s device=%s", Tag, device)
	}
	return f, nil
}
