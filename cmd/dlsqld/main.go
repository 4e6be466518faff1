// Command dlsqld is the process entrypoint that wires the compiler,
// catalog, engine, and runtime dispatcher together from a config file and
// registers the resulting dispatcher for database/sql callers.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dlsql/dlsql/catalog"
	"github.com/dlsql/dlsql/client"
	"github.com/dlsql/dlsql/compiler"
	"github.com/dlsql/dlsql/config"
	"github.com/dlsql/dlsql/engine/fake"
	"github.com/dlsql/dlsql/runtime"
	"github.com/dlsql/dlsql/sqlast"
)

func main() {
	configPath := flag.String("config", "dlsqld.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		slog.Error("failed to resolve log level", "err", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("dlsqld exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ddl, err := cfg.LoadDDL()
	if err != nil {
		return err
	}

	tctx := compiler.NewContext()
	for _, stmt := range ddl {
		parsed, err := sqlast.ParseDDL(stmt)
		if err != nil {
			return err
		}
		if err := compiler.TranslateDDL(tctx, parsed); err != nil {
			return err
		}
	}

	cat, err := catalog.Load(ctx, ddl)
	if err != nil {
		return err
	}

	// The deductive engine itself is an external collaborator this repo
	// only consumes through engine.Engine; no real engine process ships in
	// this module. engine/fake stands in as the runnable
	// default so dlsqld starts end to end — a deployment with a real
	// engine at cfg.Engine.Address replaces this construction with a
	// client dialing that address, leaving everything below unchanged.
	logger.Warn("no real engine client configured, running against the in-memory fake engine", "engine_address", cfg.Engine.Address)
	eng := fake.New()
	for _, tbl := range tctx.Tables() {
		eng.Register(tbl.RelationName)
	}
	for _, v := range tctx.Views() {
		eng.Register(v.RelationName)
	}

	dispatcher := runtime.NewDispatcher(eng, cat, tctx.Tables(), tctx.Views(), logger)
	if err := client.Register(cfg.ListenName, dispatcher); err != nil {
		return err
	}
	defer client.Deregister(cfg.ListenName)

	logger.Info("dlsqld ready", "listen_name", cfg.ListenName, "tables", len(tctx.Tables()), "views", len(tctx.Views()))
	<-ctx.Done()
	logger.Info("dlsqld shutting down")
	return nil
}
