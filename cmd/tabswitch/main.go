package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/b/tabswitch/pkg/colors"
	"github.com/b/tabswitch/pkg/config"
	"github.com/b/tabswitch/pkg/daemon"
	"github.com/b/tabswitch/pkg/logging"
	"github.com/b/tabswitch/pkg/paths"
)

var (
	configPath  = flag.String("config", "", "config file (default ~/.config/tabswitch/config.yaml)")
	listOnly    = flag.Bool("list", false, "print the tabs and exit")
	debug       = flag.Bool("debug", false, "Enable debug logging")
	session     = flag.String("session", "", "control socket name, one per running tabswitch")
	noControl   = flag.Bool("no-control", false, "do not serve the control socket")
	metricsAddr = flag.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9464")
)

// newLogger writes to a file under the state dir unless one is configured;
// stderr would draw over the TUI.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	out := cfg.Log.File
	if out == "" {
		if _, err := paths.EnsureStateDir(); err != nil {
			return nil, err
		}
		out = paths.StatePath("tabswitch.log")
	}
	level := cfg.Log.Level
	if *debug {
		level = "debug"
	}
	return logging.New(logging.Config{
		Level:       level,
		Development: cfg.Log.Development || *debug,
		OutputPaths: []string{out},
	})
}

func main() {
	flag.Parse()

	if flag.Arg(0) == "ctl" {
		if err := runCtl(os.Stdout, daemon.SocketPath(*session), flag.Args()[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	path := *configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	switch flag.Arg(0) {
	case "themes", "group":
		var err error
		if flag.Arg(0) == "themes" {
			err = runThemes(os.Stdout, path)
		} else {
			err = runGroup(os.Stdout, path, flag.Args()[1:])
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	profile := termenv.EnvColorProfile()
	lipgloss.SetColorProfile(profile)
	dark := colors.NewBackgroundDetector(colors.ThemeMode(cfg.ThemeMode)).IsDarkBackground()

	a, err := newApp(cfg, dark, logger, appDeps{profile: profile})
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if *listOnly || !term.IsTerminal(int(os.Stdout.Fd())) {
		printTabs(os.Stdout, a.sw)
		return
	}

	p := tea.NewProgram(newModel(a), tea.WithAltScreen(), tea.WithMouseCellMotion())

	stop, err := config.Watch(path, func(c *config.Config, err error) {
		p.Send(configMsg{cfg: c, err: err})
	})
	if err != nil {
		logger.Warn("config watch disabled", zap.String("path", path), zap.Error(err))
	} else {
		defer stop()
	}

	if !*noControl {
		srv, err := serveControl(a, *session, p.Send)
		if err != nil {
			logger.Warn("control socket disabled", zap.Error(err))
		} else {
			defer srv.Stop()
			a.metrics.WatchClients(srv)
		}
	}

	if *metricsAddr != "" {
		ms := &http.Server{Addr: *metricsAddr, Handler: a.metrics.Handler()}
		go func() {
			if err := ms.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warn("metrics server stopped", zap.Error(err))
			}
		}()
		defer ms.Close()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGUSR1)
	go func() {
		for range sigChan {
			p.Send(reloadMsg{})
		}
	}()

	logger.Info("tabswitch started",
		zap.String("config", path),
		zap.String("source", cfg.Discovery.Source),
		zap.Int("tabs", a.sw.Len()),
		zap.Bool("dark", dark))

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
