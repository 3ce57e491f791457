// Command contentvfs is a CLI front end over a content directory
// overlay: it scans one or more search directories for Content.inf
// definitions and lets an operator list, enable, disable, resolve
// against, and inspect them.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mwantia/contentvfs/cmd"
	"github.com/mwantia/contentvfs/cmd/builtin"
	"github.com/mwantia/contentvfs/config"
	"github.com/mwantia/contentvfs/content"
	"github.com/mwantia/contentvfs/content/consulsync"
	"github.com/mwantia/contentvfs/content/remote"
	"github.com/mwantia/contentvfs/content/store"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, remaining, err := config.ParseFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := cfg.Logger("contentvfs")
	manager := content.NewManager(logger)

	if cfg.StoreDriver != "" {
		backingStore, err := openStore(cfg)
		if err != nil {
			logger.Error("failed to open activation store: %v", err)
			return 1
		}
		manager.SetStore(backingStore)
	}

	if cfg.ConsulAddr != "" {
		syncer, err := consulsync.NewSyncer(consulsync.Config{
			Address: cfg.ConsulAddr,
			Token:   cfg.ConsulToken,
			KVKey:   cfg.ConsulKVPrefix,
		}, logger.Named("consulsync"))
		if err != nil {
			logger.Error("failed to connect to consul: %v", err)
			return 1
		}
		manager.SetEnabledSync(syncer)
	}

	if cfg.RemoteBucket != "" {
		bundle, err := remote.NewBundle(
			cfg.RemoteEndpoint, cfg.RemoteBucket, cfg.RemotePrefix,
			cfg.RemoteAccessKey, cfg.RemoteSecretKey, cfg.RemoteUseSSL,
			cfg.RemoteCacheDir, logger.Named("remote"),
		)
		if err != nil {
			logger.Error("failed to configure remote content bundle: %v", err)
			return 1
		}

		cacheDir, err := bundle.Sync(context.Background())
		if err != nil {
			logger.Error("failed to sync remote content bundle: %v", err)
			return 1
		}
		manager.AddSearchDir(cacheDir)
	}

	for _, dir := range cfg.SearchDirs {
		manager.AddSearchDir(dir)
	}

	api := &cmd.ManagerAPI{Manager: manager}
	commands := cmd.NewManager(api)
	for _, command := range builtinCommands() {
		if err := commands.Register(command); err != nil {
			logger.Error("failed to register command: %v", err)
			return 1
		}
	}

	if len(remaining) == 0 {
		fmt.Fprintln(os.Stderr, "usage: contentvfs [flags] <command> [args]")
		return 1
	}

	code, err := commands.Execute(context.Background(), os.Stdout, remaining...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return code
}

func builtinCommands() []cmd.Command {
	return []cmd.Command{
		&builtin.ListCommand{},
		&builtin.EnableCommand{},
		&builtin.DisableCommand{},
		&builtin.ResolveCommand{},
		&builtin.ScanCommand{},
		&builtin.DescribeCommand{},
	}
}

func openStore(cfg *config.Config) (content.ActivationRecorder, error) {
	switch cfg.StoreDriver {
	case "sqlite":
		return store.NewSQLiteStore(cfg.StoreDSN)
	case "postgres":
		return store.NewPostgresStore(context.Background(), cfg.StoreDSN)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
