package cli

import (
	"bytes"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/c-bata/go-prompt"
	"github.com/mattn/go-isatty"
)

// MainLoop feeds exec with lines from interactive prompt or, when stdin is not a terminal, from stdin.
// onSignal is called once on first interrupt, nil means exit immediately.
func MainLoop(tag string, exec func(line string), complete func(d prompt.Document) []prompt.Suggest, onSignal func(os.Signal)) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	go func() {
		s := <-signalCh
		if onSignal != nil {
			onSignal(s)
		}
		os.Exit(1)
	}()

	if isatty.IsTerminal(os.Stdin.Fd()) {
		prompt.New(exec, complete,
			prompt.OptionTitle(tag),
			prompt.OptionPrefix(tag+"> "),
		).Run()
	} else {
		stdinAll, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal(err)
		}
		for _, line := range Lines(stdinAll) {
			exec(line)
		}
	}
}

// Lines splits input into trimmed lines, dropping empty ones.
func Lines(b []byte) []string {
	linesb := bytes.Split(b, []byte{'\n'})
	lines := make([]string, 0, len(linesb))
	for _, lineb := range linesb {
		line := string(bytes.TrimSpace(lineb))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Words splits command line by whitespace.
func Words(line string) []string { return strings.Fields(line) }
