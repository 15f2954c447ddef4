package cli

import (
	"github.com/rs/zerolog"

	"github.com/rshade/holocron/internal/cache"
	"github.com/rshade/holocron/internal/config"
	"github.com/rshade/holocron/internal/loader"
	"github.com/rshade/holocron/internal/logging"
	"github.com/rshade/holocron/internal/swapi"
)

// newClient builds the SWAPI client described by cfg. A cache directory that cannot be
// created disables caching with a warning instead of failing the command.
func newClient(cfg *config.Config, log zerolog.Logger) *swapi.Client {
	opts := []swapi.Option{
		swapi.WithBaseURL(cfg.API.BaseURL),
		swapi.WithHTTPClient(swapi.NewHTTPClient(cfg.HTTPOptions())),
		swapi.WithLogger(logging.ComponentLogger(log, "swapi")),
	}

	if cfg.Cache.Enabled {
		store, err := cache.NewFileStore(cfg.Cache.Directory, true, cfg.Cache.TTLSeconds)
		if err != nil {
			log.Warn().Err(err).Str("directory", cfg.Cache.Directory).Msg("response cache disabled")
		} else {
			opts = append(opts, swapi.WithCache(store))
		}
	}

	return swapi.NewClient(opts...)
}

// newLoader builds a loader over a fresh client.
func newLoader(cfg *config.Config, log zerolog.Logger, extra ...loader.Option) *loader.Loader {
	opts := append([]loader.Option{
		loader.WithMaxConcurrency(cfg.Fetch.MaxConcurrency),
		loader.WithLogger(log),
	}, extra...)
	return loader.New(newClient(cfg, log), opts...)
}

// openCacheStore opens the configured cache directory for maintenance, even when
// caching is disabled for fetches.
func openCacheStore(cfg *config.Config) (*cache.FileStore, error) {
	return cache.NewFileStore(cfg.Cache.Directory, true, cfg.Cache.TTLSeconds)
}
