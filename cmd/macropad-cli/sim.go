package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/macropad/hardware/hid"
	"github.com/temoto/macropad/hardware/input"
	"github.com/temoto/macropad/helpers/cli"
	"github.com/temoto/macropad/keycode"
	"github.com/temoto/macropad/layer"
	"github.com/temoto/macropad/state"
)

const simSource = "cli"

type action func(*sim) error

// sim drives Global by text commands instead of switches.
type sim struct {
	g    *state.Global
	out  io.Writer
	sent *hid.Recorder
}

func newSim(g *state.Global, out io.Writer) *sim {
	return &sim{g: g, out: out, sent: &hid.Recorder{}}
}

func (self *sim) Exec(line string) error {
	actions, loopn, err := parseLine(line)
	if err != nil {
		return err
	}
	for i := uint(0); i < loopn; i++ {
		for _, a := range actions {
			if err := a(self); err != nil {
				return errors.Annotatef(err, "line=%s", line)
			}
		}
	}
	return nil
}

func parseLine(line string) ([]action, uint, error) {
	words := cli.Words(line)
	loopn := uint(0)
	actions := make([]action, 0, len(words))
	for _, word := range words {
		if strings.HasPrefix(word, "loop=") {
			if loopn != 0 {
				return nil, 0, errors.Errorf("multiple loop commands, expected at most one")
			}
			i, err := strconv.ParseUint(word[5:], 10, 32)
			if err != nil {
				return nil, 0, errors.Annotatef(err, "word=%s", word)
			}
			loopn = uint(i)
			continue
		}
		a, err := parseCommand(word)
		if err != nil {
			return nil, 0, err
		}
		actions = append(actions, a)
	}
	if loopn == 0 {
		loopn = 1
	}
	return actions, loopn, nil
}

func parseCommand(word string) (action, error) {
	switch word {
	case "help":
		return func(self *sim) error { _, err := io.WriteString(self.out, usage); return err }, nil
	case "cw":
		return knob(input.EncoderCW), nil
	case "ccw":
		return knob(input.EncoderCCW), nil
	case "tick":
		return func(self *sim) error { self.g.Tick(); return nil }, nil
	case "show":
		return func(self *sim) error {
			_, err := fmt.Fprintf(self.out, "%s\n", self.g.Hardware.Framebuffer.String())
			return err
		}, nil
	case "layer":
		return func(self *sim) error {
			i := self.g.Layers.Current()
			_, err := fmt.Fprintf(self.out, "layer=%d %s\n", i, layer.Default.Get(i).Label)
			return err
		}, nil
	case "errors":
		return func(self *sim) error {
			_, err := fmt.Fprintf(self.out, "errors=%d\n", self.g.ErrorCount())
			return err
		}, nil
	case "sent":
		return func(self *sim) error {
			_, err := fmt.Fprintf(self.out, "sent: %s\n", self.sent.String())
			self.sent.Reset()
			return err
		}, nil
	}

	if len(word) >= 2 {
		switch word[0] {
		case 'k', '+', '-':
			if n, err := strconv.ParseUint(word[1:], 10, 8); err == nil {
				pos := input.Key(n)
				switch word[0] {
				case '+':
					return switchEvent(pos, false), nil
				case '-':
					return switchEvent(pos, true), nil
				}
				return func(self *sim) error {
					if err := switchEvent(pos, false)(self); err != nil {
						return err
					}
					return switchEvent(pos, true)(self)
				}, nil
			}
		case 's':
			if n, err := strconv.ParseUint(word[1:], 10, 32); err == nil {
				d := time.Duration(n) * time.Millisecond
				return func(*sim) error { time.Sleep(d); return nil }, nil
			}
		}
	}

	c, err := keycode.Parse(word)
	if err != nil {
		return nil, errors.Annotatef(err, "word=%s", word)
	}
	return func(self *sim) error {
		self.g.Host.Tap(c)
		return nil
	}, nil
}

func switchEvent(pos input.Key, up bool) action {
	return func(self *sim) error {
		self.g.Host.Handle(input.Event{Source: simSource, Key: pos, Up: up})
		return nil
	}
}

func knob(k input.Key) action {
	return func(self *sim) error {
		self.g.Host.Handle(input.Event{Source: input.EncoderTag, Key: k})
		return nil
	}
}
