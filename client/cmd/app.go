package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/adwski/chatsession/client/config"
	"github.com/adwski/chatsession/client/identity"
	"github.com/adwski/chatsession/client/metrics"
	debugServer "github.com/adwski/chatsession/client/server/http"
	"github.com/adwski/chatsession/client/session"
	wsTransport "github.com/adwski/chatsession/client/transport/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	fs := pflag.NewFlagSet("main", pflag.ContinueOnError)
	fs.StringVarP(&cfg.ServerAddr, "server", "s", cfg.ServerAddr, "messaging server websocket address")
	fs.StringVarP(&cfg.PublicKey, "public-key", "k", cfg.PublicKey, "public key identifier, generated when empty")
	fs.StringVarP(&cfg.LogLevel, "log-level", "l", cfg.LogLevel, "log level")
	fs.StringVarP(&cfg.DebugListenAddr, "debug-listen-addr", "d", cfg.DebugListenAddr, "debug http listen address, disabled when empty")
	fs.Int64Var(&cfg.MaxFileSize, "max-file-size", cfg.MaxFileSize, "maximum upload size in bytes, 0 for unlimited")
	fs.DurationVar(&cfg.HandshakeTimeout, "handshake-timeout", cfg.HandshakeTimeout, "websocket handshake timeout")
	fs.DurationVar(&cfg.PingInterval, "ping-interval", cfg.PingInterval, "keepalive ping interval, 0 disables")
	fs.DurationVar(&cfg.PongWait, "pong-wait", cfg.PongWait, "how long to wait for server activity before dropping the connection")
	if err = fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logger.Fatal().Err(err).Msg("failed to parse command line arguments")
	}
	if err = config.Validate(cfg); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse loglevel")
	}
	logger = logger.Level(lvl)

	id, err := loadIdentity(cfg.PublicKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare identity")
	}
	logger.Info().
		Str("fingerprint", id.Fingerprint()).
		Bool("generated", id.HasPrivateKey()).
		Msg("identity loaded")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	dialer := wsTransport.NewDialer(wsTransport.Config{
		Logger:           &logger,
		HandshakeTimeout: cfg.HandshakeTimeout,
		WriteTimeout:     cfg.WriteTimeout,
		MaxMessageSize:   cfg.MaxMessageSize,
		PingInterval:     cfg.PingInterval,
		PongWait:         cfg.PongWait,
	})
	mgr := session.NewManager(session.Config{
		Logger: &logger,
		Dial: func(ctx context.Context, addr string) (session.Conn, error) {
			conn, dErr := dialer.Dial(ctx, addr)
			if dErr != nil {
				return nil, dErr
			}
			return conn, nil
		},
		MaxFileSize: cfg.MaxFileSize,
		EventBuffer: cfg.EventBuffer,
		Metrics:     metrics.New(reg),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var (
		wg   = &sync.WaitGroup{}
		errc = make(chan error, 1)
		term = newTerminal(os.Stdout, mgr, cfg.ServerAddr, id.PublicKey())
	)
	renderCtx, stopRender := context.WithCancel(context.Background())
	defer stopRender()
	go session.Render(renderCtx, mgr.Events(), term)

	if cfg.DebugListenAddr != "" {
		srv := debugServer.NewServer(debugServer.Config{
			Logger:     &logger,
			Inspector:  mgr,
			Gatherer:   reg,
			ListenAddr: cfg.DebugListenAddr,
		})
		wg.Add(1)
		go srv.Run(ctx, wg, errc)
	}

	if err = mgr.Connect(ctx, cfg.ServerAddr, id.PublicKey()); err != nil {
		logger.Error().Err(err).Str("server", cfg.ServerAddr).Msg("failed to connect")
		cancel()
		wg.Wait()
		stopRender()
		os.Exit(1)
	}
	fmt.Println(helpText)

	lines := make(chan string)
	go func() {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

InputLoop:
	for {
		select {
		case <-ctx.Done():
			logger.Warn().Msg("interrupted")
			break InputLoop
		case err = <-errc:
			logger.Error().Err(err).Msg("unexpected server error, shutting down")
			break InputLoop
		case line, ok := <-lines:
			if !ok || term.handle(ctx, line) {
				break InputLoop
			}
		}
	}

	if err = mgr.Disconnect(); err != nil {
		logger.Error().Err(err).Msg("disconnect failed")
	}
	cancel()
	wg.Wait()
}

func loadIdentity(publicKey string) (identity.Identity, error) {
	if publicKey != "" {
		return identity.Parse(publicKey)
	}
	return identity.Generate()
}
