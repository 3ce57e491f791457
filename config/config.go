// Package config defines contentvfs's runtime configuration: the set
// of search directories to scan for content directories, logging
// options, and the optional cluster/remote/store integrations. Values
// may come from command-line flags or an INI file.
package config

import (
	"strings"

	"gopkg.in/ini.v1"

	"github.com/mwantia/contentvfs/cmd"
	"github.com/mwantia/contentvfs/log"
)

// Config is the fully resolved runtime configuration.
type Config struct {
	// SearchDirs are scanned, in order, for Content.inf definitions.
	SearchDirs []string

	// LogLevel controls verbosity ("debug", "info", "warn", "error").
	LogLevel string
	// LogFile, if set, additionally writes rotated logs to this path.
	LogFile string
	// LogJSON switches the log encoding to structured JSON lines.
	LogJSON bool
	// LogNoColor disables ANSI color codes in terminal output.
	LogNoColor bool

	// MemoSize holds the --memo-size flag value. No component reads
	// it: the node manager's normalization memo table always uses
	// path.DefaultMemoSize.
	MemoSize int

	// ConsulAddr, if set, enables cluster-wide enabled-label sync
	// against this Consul HTTP address.
	ConsulAddr string
	// ConsulToken is the ACL token used for the Consul KV session, if any.
	ConsulToken string
	// ConsulKVPrefix is the single Consul KV key the enabled-label set
	// is published under (passed as consulsync.Config.KVKey).
	ConsulKVPrefix string

	// StoreDriver selects the activation-history backend: "" (none),
	// "sqlite", or "postgres".
	StoreDriver string
	// StoreDSN is the driver-specific connection string or file path.
	StoreDSN string

	// RemoteBucket, if set, enables syncing a content bundle from S3
	// (or an S3-compatible endpoint) before the search dirs are
	// scanned.
	RemoteEndpoint  string
	RemoteBucket    string
	RemotePrefix    string
	RemoteCacheDir  string
	RemoteAccessKey string
	RemoteSecretKey string
	RemoteUseSSL    bool
}

// Logger builds a *log.Logger from the Log* fields.
func (c *Config) Logger(name string) *log.Logger {
	logger := log.NewLogger(name, log.Parse(c.LogLevel), c.LogFile, false)
	logger.JSON = c.LogJSON
	logger.NoColor = c.LogNoColor
	return logger
}

// flagSet describes contentvfs's top-level flags using the same
// cmd.CommandFlagSet model its subcommands parse their own flags with,
// so the binary has exactly one hand-rolled flag parser, not two.
func flagSet() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"search-dir":         {Name: "search-dir", Type: "string", Description: "comma-separated directories to scan for content directories"},
			"log-level":          {Name: "log-level", Type: "string", Default: "info", Description: "log level: debug, info, warn, error"},
			"log-file":           {Name: "log-file", Type: "string", Description: "rotated log file path"},
			"log-json":           {Name: "log-json", Type: "bool", Description: "emit logs as JSON lines"},
			"log-no-color":       {Name: "log-no-color", Type: "bool", Description: "disable ANSI color in log output"},
			"memo-size":          {Name: "memo-size", Type: "int", Description: "path normalization memo table size"},
			"consul-addr":        {Name: "consul-addr", Type: "string", Description: "Consul HTTP address for enabled-label sync"},
			"consul-token":       {Name: "consul-token", Type: "string", Description: "Consul ACL token for enabled-label sync"},
			"consul-kv-prefix":   {Name: "consul-kv-prefix", Type: "string", Default: "contentvfs/enabled", Description: "Consul KV prefix for enabled-label sync"},
			"store-driver":       {Name: "store-driver", Type: "string", Description: "activation history store: sqlite, postgres"},
			"store-dsn":          {Name: "store-dsn", Type: "string", Description: "activation history store DSN or file path"},
			"remote-endpoint":    {Name: "remote-endpoint", Type: "string", Description: "S3-compatible endpoint for remote content bundles"},
			"remote-bucket":      {Name: "remote-bucket", Type: "string", Description: "S3 bucket holding remote content bundles"},
			"remote-prefix":      {Name: "remote-prefix", Type: "string", Description: "S3 key prefix for remote content bundles"},
			"remote-cache-dir":   {Name: "remote-cache-dir", Type: "string", Description: "local cache directory for synced remote bundles"},
			"remote-access-key":  {Name: "remote-access-key", Type: "string", Description: "access key for the remote content bucket"},
			"remote-secret-key":  {Name: "remote-secret-key", Type: "string", Description: "secret key for the remote content bucket"},
			"remote-no-ssl":      {Name: "remote-no-ssl", Type: "bool", Description: "disable TLS when connecting to the remote content bucket"},
		},
	}
}

// ParseFlags builds a Config from a command-line argument slice, using
// the same cmd.CommandFlagSet/cmd.Parser flag-coercion model the cmd
// package's subcommands parse their own flags with. It returns the
// unconsumed positional arguments (the subcommand and its own
// arguments) alongside the Config.
func ParseFlags(args []string) (*Config, []string, error) {
	parsed, err := cmd.NewParser(flagSet()).Parse(args)
	if err != nil {
		return nil, nil, err
	}

	cfg := &Config{
		LogLevel:       stringFlag(parsed, "log-level"),
		LogFile:        stringFlag(parsed, "log-file"),
		LogJSON:        boolFlag(parsed, "log-json"),
		LogNoColor:     boolFlag(parsed, "log-no-color"),
		MemoSize:       int(intFlag(parsed, "memo-size")),
		ConsulAddr:     stringFlag(parsed, "consul-addr"),
		ConsulToken:    stringFlag(parsed, "consul-token"),
		ConsulKVPrefix: stringFlag(parsed, "consul-kv-prefix"),
		StoreDriver:     stringFlag(parsed, "store-driver"),
		StoreDSN:        stringFlag(parsed, "store-dsn"),
		RemoteEndpoint:  stringFlag(parsed, "remote-endpoint"),
		RemoteBucket:    stringFlag(parsed, "remote-bucket"),
		RemotePrefix:    stringFlag(parsed, "remote-prefix"),
		RemoteCacheDir:  stringFlag(parsed, "remote-cache-dir"),
		RemoteAccessKey: stringFlag(parsed, "remote-access-key"),
		RemoteSecretKey: stringFlag(parsed, "remote-secret-key"),
		RemoteUseSSL:    !boolFlag(parsed, "remote-no-ssl"),
	}

	if dirs := stringFlag(parsed, "search-dir"); dirs != "" {
		for _, d := range strings.Split(dirs, ",") {
			if d = strings.TrimSpace(d); d != "" {
				cfg.SearchDirs = append(cfg.SearchDirs, d)
			}
		}
	}

	return cfg, parsed.Args, nil
}

func stringFlag(args *cmd.CommandArgs, name string) string {
	v, _ := args.Flags[name].(string)
	return v
}

func boolFlag(args *cmd.CommandArgs, name string) bool {
	v, _ := args.Flags[name].(bool)
	return v
}

func intFlag(args *cmd.CommandArgs, name string) int64 {
	v, _ := args.Flags[name].(int64)
	return v
}

// LoadFile merges settings from an INI file into cfg. Fields already
// set by flags are not overwritten; LoadFile is meant to supply
// defaults, with flags taking precedence when both are provided.
func LoadFile(cfg *Config, path string) error {
	file, err := ini.Load(path)
	if err != nil {
		return err
	}

	section := file.Section("contentvfs")

	if cfg.LogLevel == "" || cfg.LogLevel == "info" {
		if v := section.Key("log_level").String(); v != "" {
			cfg.LogLevel = v
		}
	}
	if cfg.LogFile == "" {
		cfg.LogFile = section.Key("log_file").String()
	}
	if !cfg.LogJSON {
		cfg.LogJSON, _ = section.Key("log_json").Bool()
	}
	if cfg.ConsulAddr == "" {
		cfg.ConsulAddr = section.Key("consul_addr").String()
	}
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = section.Key("store_driver").String()
	}
	if cfg.StoreDSN == "" {
		cfg.StoreDSN = section.Key("store_dsn").String()
	}
	if cfg.RemoteBucket == "" {
		cfg.RemoteBucket = section.Key("remote_bucket").String()
	}

	if dirs := section.Key("search_dirs").String(); dirs != "" && len(cfg.SearchDirs) == 0 {
		for _, d := range strings.Split(dirs, ",") {
			d = strings.TrimSpace(d)
			if d != "" {
				cfg.SearchDirs = append(cfg.SearchDirs, d)
			}
		}
	}

	return nil
}
