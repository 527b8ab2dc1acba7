package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"chorddht/internal/bootstrap"
	"chorddht/internal/chordspace"
	"chorddht/internal/config"
	"chorddht/internal/logger"
	zapfactory "chorddht/internal/logger/zap"
	"chorddht/internal/ring"
	"chorddht/internal/rpc/grpcpeer"
	"chorddht/internal/rpcpool"
	"chorddht/internal/server"
	"chorddht/internal/telemetry"
	"chorddht/internal/telemetry/lookuptrace"
)

var defaultConfigPath = "config/node/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %q: %v", *configPath, err)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.ValidateConfig(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	var lgr logger.Logger
	if cfg.Logger.Active {
		zapLog, err := zapfactory.New(cfg.Logger)
		if err != nil {
			log.Fatalf("failed to initialize logger: %v", err)
		}
		defer func() { _ = zapLog.Sync() }()
		lgr = zapfactory.NewZapAdapter(zapLog)
	} else {
		lgr = &logger.NopLogger{}
	}
	cfg.LogConfig(lgr)

	lis, advertised, err := server.Listen(cfg.DHT.Mode, cfg.Node.Bind, cfg.Node.Host, cfg.Node.Port)
	if err != nil {
		lgr.Error("fatal: failed to initialize listener", logger.F("err", err))
		os.Exit(1)
	}
	defer func() { _ = lis.Close() }()
	lgr.Debug("created listener", logger.F("addr", lis.Addr().String()))

	sp, err := chordspace.NewSpace(uint(cfg.DHT.IDBits))
	if err != nil {
		lgr.Error("failed to initialize identifier space", logger.F("err", err))
		os.Exit(1)
	}
	lgr.Debug("identifier space initialized", logger.F("bits", sp.Bits))

	id := cfg.Node.Id
	if id == "" {
		id = advertised
	}
	self := chordspace.NodeHandle{ID: id, Key: sp.Hash([]byte(id)), Endpoint: advertised}
	lgr = lgr.Named("node").WithNode(self)
	lgr.Info("node initializing")

	shutdown := telemetry.InitTracer(cfg.Telemetry, "chorddht-node", self)
	defer func() { _ = shutdown(context.Background()) }()

	pool := rpcpool.New(cfg.DHT.FaultTolerance.FailureTimeout, lgr.Named("rpcpool"))
	defer pool.CloseAll()
	dialer := grpcpeer.New(pool)

	n := ring.New(ring.Config{
		Space:             sp,
		Self:              self,
		SuccessorListSize: cfg.DHT.FaultTolerance.SuccessorListSize,
		Dialer:            dialer,
		Logger:            lgr,
	})

	var grpcOpts []grpc.ServerOption
	if cfg.Telemetry.Tracing.Enabled {
		grpcOpts = append(grpcOpts, grpc.ChainUnaryInterceptor(lookuptrace.ServerInterceptor()))
		lgr.Debug("gRPC lookup tracing enabled")
	}

	s, err := server.New(lis, n, grpcOpts, server.WithLogger(lgr.Named("server")))
	if err != nil {
		lgr.Error("failed to initialize gRPC server", logger.F("err", err))
		os.Exit(1)
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- s.Start() }()
	lgr.Debug("server started")

	boot, err := bootstrap.New(cfg.DHT.Bootstrap)
	if err != nil {
		lgr.Error("failed to initialize bootstrap", logger.F("err", err))
		s.Stop()
		os.Exit(1)
	}

	discoverCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	peers, err := boot.Discover(discoverCtx)
	cancel()
	if err != nil {
		lgr.Error("failed to resolve bootstrap peers", logger.F("err", err))
		s.Stop()
		os.Exit(1)
	}
	lgr.Info("resolved bootstrap peers", logger.F("peers", peers))

	if len(peers) == 0 {
		n.CreateRing()
		lgr.Debug("created new ring")
	} else if err := joinVia(n, dialer, peers, self); err != nil {
		lgr.Error("failed to join ring", logger.F("err", err))
		s.Stop()
		os.Exit(1)
	} else {
		lgr.Debug("joined ring")
	}

	registerCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := boot.Register(registerCtx, self); err != nil {
		lgr.Warn("failed to register node", logger.F("err", err))
	} else {
		lgr.Info("node registered")
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := boot.Deregister(ctx, self); err != nil {
				lgr.Warn("failed to deregister node", logger.F("err", err))
			}
		}()
	}
	cancel()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	n.StartMaintenance(ctx, ring.MaintenanceIntervals{
		Stabilize:        cfg.DHT.FaultTolerance.StabilizationInterval,
		FixFingers:       cfg.DHT.Finger.FixInterval,
		CheckPredecessor: cfg.DHT.FaultTolerance.CheckPredecessorInterval,
	})
	lgr.Debug("maintenance loop started")

	select {
	case <-ctx.Done():
		lgr.Info("shutdown signal received, stopping gracefully")
		stop()

		if err := n.Leave(context.Background()); err != nil {
			lgr.Warn("failed to leave ring cleanly", logger.F("err", err))
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		done := make(chan struct{})
		go func() {
			s.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
			lgr.Info("server stopped gracefully")
		case <-shutdownCtx.Done():
			lgr.Warn("graceful stop timed out, forcing shutdown")
			s.Stop()
		}

	case err := <-serveErr:
		lgr.Error("gRPC server terminated unexpectedly", logger.F("err", err))
		stop()
		os.Exit(1)
	}
}

// joinVia tries each discovered peer in turn until one accepts a Ping,
// then joins the ring through it.
func joinVia(n *ring.Node, dialer *grpcpeer.Dialer, peers []string, self chordspace.NodeHandle) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var lastErr error
	for _, addr := range peers {
		peer, err := dialer.Dial(ctx, chordspace.NodeHandle{Endpoint: addr})
		if err != nil {
			lastErr = err
			continue
		}
		result, err := peer.Ping(ctx)
		if err != nil {
			lastErr = err
			continue
		}
		if err := n.Join(ctx, result.Handle); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
