package main

import (
	"flag"
	"os"

	prompt "github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/temoto/macropad/hardware/hid"
	"github.com/temoto/macropad/helpers/cli"
	"github.com/temoto/macropad/log2"
	"github.com/temoto/macropad/state"
)

const usage = `syntax: commands separated by whitespace
(keys)
- kN       tap switch at position N
- +N -N    press, release switch at position N
- cw ccw   turn knob one detent
- NAME     tap keycode by name, e.g. KC_A LCTL(KC_C)

(screen)
- tick     run display task once
- show     print framebuffer
- layer    print current layer

(meta)
- sent     print and forget keys sent to host
- errors   print number of logged errors
- sN       pause N milliseconds
- loop=N   repeat N times all commands on this line
`

var log = log2.NewStderr(log2.LDebug)

func main() {
	cmdline := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	configPath := cmdline.String("config", "", "optional, only display and hid sections are used")
	cmdline.Parse(os.Args[1:])

	log.SetFlags(log2.LInteractiveFlags)

	var config *state.Config
	if *configPath == "" {
		fs := state.NewMockFullReader(map[string]string{"inline": defaultConfig})
		config = state.MustReadConfig(log, fs, "inline")
	} else {
		config = state.MustReadConfig(log, state.NewOsFullReader(), *configPath)
	}
	config.Input.DevInputEvent.Enable = false
	config.Input.Encoder.Enable = false

	g := state.NewGlobal(log)
	sim := newSim(g, os.Stdout)
	if config.Hid.Device == "" {
		g.Hardware.HID = hid.Multi{sim.sent, hid.LogReporter{Log: log.Component("hid")}}
	}
	g.MustInit(config)

	cli.MainLoop("macropad-cli", newExecutor(sim), newCompleter(), func(os.Signal) {
		if err := g.Close(); err != nil {
			log.Error(errors.ErrorStack(err))
		}
	})
	if err := g.Close(); err != nil {
		log.Error(errors.ErrorStack(err))
	}
}

const defaultConfig = `
log_level = "debug"
mascot { enable = true }
`

func newCompleter() func(d prompt.Document) []prompt.Suggest {
	suggests := []prompt.Suggest{
		{Text: "kN", Description: "tap switch N"},
		{Text: "+N", Description: "press switch N"},
		{Text: "-N", Description: "release switch N"},
		{Text: "cw", Description: "knob clockwise"},
		{Text: "ccw", Description: "knob counter-clockwise"},
		{Text: "tick", Description: "run display task"},
		{Text: "show", Description: "print framebuffer"},
		{Text: "layer", Description: "print current layer"},
		{Text: "sent", Description: "print keys sent to host"},
		{Text: "errors", Description: "print number of logged errors"},
		{Text: "sN", Description: "pause for N ms"},
		{Text: "loop=N", Description: "repeat line N times"},
	}

	return func(d prompt.Document) []prompt.Suggest {
		return prompt.FilterFuzzy(suggests, d.GetWordBeforeCursor(), true)
	}
}

func newExecutor(sim *sim) func(string) {
	return func(line string) {
		if err := sim.Exec(line); err != nil {
			log.Errorf(errors.ErrorStack(err))
		}
	}
}
