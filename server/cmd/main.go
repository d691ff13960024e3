package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arena/server"
	"arena/server/api"
	"arena/server/application"
	"arena/server/config"
	"arena/server/domain"
	"arena/server/game"
	"arena/server/notify"
	"arena/server/script"
	"arena/server/script/luahost"
	"arena/server/spatial"
	"arena/server/telemetry"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(cfg.Logger())

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Error("tracer shutdown failed", "err", err)
		}
	}()

	gameMap, err := loadMap(cfg)
	if err != nil {
		return err
	}
	items, err := loadItems(cfg)
	if err != nil {
		return err
	}

	pubsub := domain.NewSimplePubSub()
	roomID := domain.RoomID(cfg.RoomID)
	room := domain.NewRoom(roomID, pubsub, cfg.TickInterval())

	g := game.NewGame(gameMap, items, notify.NewPacketNotifier(room))
	facade := spatial.NewFacade(gameMap)
	ops := api.NewOperations(g, facade, api.Options{ClampGoldAtZero: cfg.GoldClampAtZero})

	builder := script.NewBuilder()
	ops.Register(builder)
	registry, err := builder.Build()
	if err != nil {
		return err
	}
	host := luahost.NewHost(registry)
	if err := host.LoadDir(ctx, cfg.ScriptDir); err != nil {
		return err
	}

	sim := application.NewSimulation(g, facade, host, application.Config{
		MaxPlayers:    cfg.MaxPlayers,
		ChampionModel: cfg.ChampionModel,
		MoveSpeed:     cfg.MoveSpeed,
	})
	go func() {
		if err := room.Run(ctx, sim); err != nil {
			slog.ErrorContext(ctx, "room error", "err", err)
		}
	}()

	handler := server.Route(pubsub, roomID, domain.EndpointConfig{
		HeartbeatInterval: cfg.HeartbeatInterval,
		IdleTimeout:       cfg.IdleTimeout,
	})
	s := server.NewServer(cfg.ListenAddr(), handler)

	serveErr := make(chan error, 1)
	go func() {
		if err := s.Serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	slog.InfoContext(ctx, "server listening", "addr", s.Addr(), "room", roomID, "operations", len(registry.Names()))

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		return err
	}
	slog.InfoContext(ctx, "shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(ctx, "graceful shutdown failed", "error", err)
		if err := s.Close(); err != nil {
			slog.ErrorContext(ctx, "forced close failed", "error", err)
		}
	}
	slog.InfoContext(ctx, "server shutdown complete")
	return nil
}

func loadMap(cfg *config.Config) (*game.Map, error) {
	if cfg.NavGrid == "" {
		return game.NewMap(cfg.MapWidth, cfg.MapHeight, nil), nil
	}
	grid, err := game.LoadGridMeshFile(cfg.NavGrid)
	if err != nil {
		return nil, err
	}
	return game.NewMap(grid.Width(), grid.Height(), grid), nil
}

func loadItems(cfg *config.Config) (*game.ItemCatalog, error) {
	if cfg.ItemCatalog == "" {
		return game.DefaultItemCatalog(), nil
	}
	return game.LoadItemCatalogFile(cfg.ItemCatalog)
}
