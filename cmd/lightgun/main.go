package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/openlightgun/go-lightgun/internal/config"
	"github.com/openlightgun/go-lightgun/internal/log"
	"github.com/openlightgun/go-lightgun/pkg/bridge"
	"github.com/openlightgun/go-lightgun/pkg/sink"
	"github.com/openlightgun/go-lightgun/pkg/source"
	"github.com/openlightgun/go-lightgun/pkg/web"
)

type options struct {
	trackerURL string
	uinputPath string
	webAddr    string
	cfg        bridge.Config
}

func main() {
	defaults := bridge.DefaultConfig()
	defaultWidth, defaultHeight := config.ScreenSize(defaults.Width, defaults.Height)

	var opts options
	flag.StringVar(&opts.trackerURL, "tracker", config.TrackerURL(config.DefaultTrackerURL), "Tracker sidecar WebSocket URL")
	flag.StringVar(&opts.uinputPath, "uinput", config.UinputPath(), "uinput device path")
	flag.StringVar(&opts.webAddr, "web", "", "Status dashboard address (e.g. 127.0.0.1:8808); empty disables it")
	flag.IntVar(&opts.cfg.Width, "width", defaultWidth, "Target screen width in pixels")
	flag.IntVar(&opts.cfg.Height, "height", defaultHeight, "Target screen height in pixels")
	flag.DurationVar(&opts.cfg.PollInterval, "poll", defaults.PollInterval, "Sleep between ticks")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*logLevel)

	if err := run(opts); err != nil {
		log.Error("bridge stopped", "error", err)
		os.Exit(1)
	}
}

// run wires the source, sink and loop together. All acquired resources are
// released here, on every exit path, before the error reaches main.
func run(opts options) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("signal received, shutting down")
		cancel()
	}()

	tracker := source.NewTracker(opts.trackerURL, log.L())
	if err := tracker.Connect(ctx); err != nil {
		return err
	}
	defer tracker.Close()

	device, err := sink.NewUinput(opts.uinputPath, opts.cfg.Width, opts.cfg.Height)
	if err != nil {
		return err
	}
	defer device.Close()

	b, err := bridge.New(opts.cfg, tracker, device, log.L())
	if err != nil {
		return err
	}

	if opts.webAddr != "" {
		server := web.NewServer(opts.webAddr)
		b.OnState = server.Publish
		go func() {
			if err := server.Start(); err != nil {
				log.Error("dashboard server failed", "error", err)
			}
		}()
		defer server.Shutdown()
		log.Info("status dashboard listening", "addr", opts.webAddr)
	}

	err = b.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
