package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/always-cache/conditional"
	"github.com/always-cache/conditional/cache"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// CLI flags
	portFlag           int
	configFlag         string
	dirFlag            string
	providerFlag       string
	verbosityTraceFlag bool
	logFilenameFlag    string

	// this is set by goreleaser
	version string
)

func init() {
	flag.IntVar(&portFlag, "port", 8080, "Port to listen on")
	flag.StringVar(&configFlag, "config", "", "Config file (default conditional-cache.yml, if present)")
	flag.StringVar(&dirFlag, "dir", "", "Directory to serve (overrides config)")
	flag.StringVar(&providerFlag, "provider", "", "Result storage: memory, sqlite or redis (overrides config)")
	flag.BoolVar(&verbosityTraceFlag, "vv", false, "Verbosity: trace logging")
	flag.StringVar(&logFilenameFlag, "log-file", "", "Log file to use (in addition to stdout)")

	if version == "" {
		version = "DEV"
	}
}

func main() {
	flag.Parse()

	// set log level
	logLevel := zerolog.DebugLevel
	if verbosityTraceFlag {
		logLevel = zerolog.TraceLevel
	}

	// set up log output to stdout
	// also output to logfile if specified
	logOutputs := make([]io.Writer, 0)
	logOutputs = append(logOutputs, zerolog.ConsoleWriter{Out: os.Stdout})
	if logFilenameFlag != "" {
		if logFileOutput, err := os.OpenFile(logFilenameFlag, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644); err != nil {
			log.Fatal().Err(err).Msg("Cannot open log file")
		} else {
			logOutputs = append(logOutputs, logFileOutput)
		}
	}
	multiWriter := zerolog.MultiLevelWriter(logOutputs...)
	log.Logger = log.Level(logLevel).Output(multiWriter).
		With().Str("version", version).Logger()

	// config file, then environment (including .env), then flags
	configFilename := configFlag
	if configFilename == "" {
		configFilename = "conditional-cache.yml"
	}
	config, err := getConfig(configFilename, configFlag != "")
	if err != nil {
		log.Fatal().Err(err).Str("file", configFilename).Msg("Could not read config")
	}
	applyEnv(&config)
	if dirFlag != "" {
		config.Dir = dirFlag
	}
	if providerFlag != "" {
		config.Provider = providerFlag
	}

	provider, closeProvider, err := newProvider(config)
	if err != nil {
		log.Fatal().Err(err).Str("provider", config.Provider).Msg("Could not set up storage")
	}
	defer closeProvider()

	purger, err := cache.NewPurger(provider, config.PurgeSchedule, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", config.PurgeSchedule).Msg("Invalid purge schedule")
	}
	purger.Start()
	defer purger.Stop()

	router := newRouter(config, conditional.NewMemo(provider))
	log.Info().Msgf("Serving %s on port %v (storage: %s)", config.Dir, portFlag, config.Provider)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", portFlag), router); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

// newProvider creates the configured storage, returning a function to close it.
func newProvider(config Config) (cache.CacheProvider, func() error, error) {
	switch config.Provider {
	case "memory":
		return cache.NewMemCache(), func() error { return nil }, nil
	case "sqlite":
		c, err := cache.NewSQLiteCache(config.DB)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	case "redis":
		c, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:      config.Redis.Addr,
			Password:  config.Redis.Password,
			DB:        config.Redis.DB,
			Namespace: config.Name + ":",
			Timeout:   config.Redis.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown provider %q", config.Provider)
}
