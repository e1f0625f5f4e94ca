package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"
	"github.com/temoto/macropad/log2"
	"github.com/temoto/macropad/state"
)

var log = log2.NewStderr(log2.LDebug)

func main() {
	flagConfig := flag.String("config", "macropad.hcl", "")
	flag.Parse()

	if sdnotify("start") {
		// we're under systemd, assume systemd journal logging, remove timestamp
		log.SetFlags(log2.LServiceFlags)
	} else {
		log.SetFlags(log2.LInteractiveFlags)
	}
	log.Infof("hello")

	config := state.MustReadConfig(log, state.NewOsFullReader(), *flagConfig)
	log.Debugf("config=%+v", config)
	g := state.NewGlobal(log)
	g.MustInit(config)

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigch
		log.Infof("signal=%v stopping", s)
		g.Alive.Stop()
	}()

	sdnotify(daemon.SdNotifyReady)
	log.Infof("init complete, running")
	g.Run()

	sdnotify(daemon.SdNotifyStopping)
	if err := g.Close(); err != nil {
		log.Error(errors.ErrorStack(err))
	}
	g.Alive.Wait()
	log.Infof("stopped errors=%d", g.ErrorCount())
}

func sdnotify(s string) bool {
	ok, err := daemon.SdNotify(false, s)
	if err != nil {
		log.Fatal("sdnotify: ", errors.ErrorStack(err))
	}
	return ok
}
