// Package source builds the league loader selected by configuration.
package source

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/kenzliang/leeger/internal/archive"
	"github.com/kenzliang/leeger/internal/config"
	"github.com/kenzliang/leeger/internal/fetch"
	"github.com/kenzliang/leeger/internal/loader"
	"github.com/kenzliang/leeger/internal/loader/file"
	"github.com/kenzliang/leeger/internal/loader/sleeper"
	"github.com/kenzliang/leeger/internal/logger"
	"github.com/kenzliang/leeger/internal/model"
	"github.com/kenzliang/leeger/internal/store"
)

// Source is an opened loader together with whatever it holds open.
type Source struct {
	Loader loader.Loader
	close  func() error
}

// Close releases the archive database, if any.
func (s *Source) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Settings derives the common loader settings from configuration.
func Settings(cfg *config.Config) loader.Settings {
	return loader.Settings{
		LeagueID:     cfg.SleeperLeagueID,
		Years:        cfg.Years,
		OwnerAliases: cfg.AliasMap(),
	}
}

// Open builds the loader for cfg.Source. Live Sleeper responses are cached under
// cfg.CacheDir when it is set.
func Open(cfg *config.Config) (*Source, error) {
	settings := Settings(cfg)
	log := logger.WithSource(cfg.Source)

	switch cfg.Source {
	case config.SourceFile:
		log.WithField("path", cfg.LeaguePath).Debug("Opening league file")
		return &Source{Loader: file.New(cfg.LeaguePath, settings)}, nil

	case config.SourceSQLite:
		a, err := archive.Open(cfg.ArchivePath)
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{"path": cfg.ArchivePath, "key": cfg.ArchiveKey}).Debug("Opened archive")
		return &Source{Loader: archive.NewLoader(a, cfg.ArchiveKey, settings), close: a.Close}, nil

	case config.SourceSleeper:
		var st *store.JSONStore
		if cfg.CacheDir != "" {
			st = store.NewJSONStore(filepath.Clean(cfg.CacheDir))
		}
		client := fetch.NewClient(st, cfg.SleeperBaseURL, cfg.RequestsPerSecond)
		if cfg.HTTPTimeout > 0 {
			client.HTTP.Timeout = cfg.HTTPTimeout
		}
		if cfg.UserAgent != "" {
			client.UserAgent = cfg.UserAgent
		}
		log.WithFields(logrus.Fields{"league_id": cfg.SleeperLeagueID, "cache": cfg.CacheDir}).Debug("Using Sleeper API")
		return &Source{Loader: sleeper.New(client, settings)}, nil
	}
	return nil, fmt.Errorf("%w: unknown source %q", model.ErrLeagueLoader, cfg.Source)
}

// Load opens the configured source, loads the league and closes the source again.
func Load(ctx context.Context, cfg *config.Config) (*model.League, error) {
	src, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return src.Loader.LoadLeague(ctx)
}
