package archive

import (
	"context"
	"fmt"

	"github.com/kenzliang/leeger/internal/loader"
	"github.com/kenzliang/leeger/internal/logger"
	"github.com/kenzliang/leeger/internal/model"
	"github.com/kenzliang/leeger/internal/validate"
)

// Loader serves a saved league. With no years in Settings every saved year is returned.
type Loader struct {
	Archive  *Archive
	Key      string
	Settings loader.Settings
}

var _ loader.Loader = (*Loader)(nil)

func NewLoader(a *Archive, key string, settings loader.Settings) *Loader {
	return &Loader{Archive: a, Key: key, Settings: settings}
}

func (l *Loader) LoadLeague(ctx context.Context) (*model.League, error) {
	league, err := l.Archive.Load(ctx, l.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrLeagueLoader, err)
	}
	if len(l.Settings.Years) > 0 {
		base, err := loader.NewBase(l.Settings)
		if err != nil {
			return nil, err
		}
		var years []model.Year
		for _, y := range base.Years {
			if year, ok := league.YearByNumber(y); ok {
				years = append(years, *year)
			}
		}
		if err := base.CheckRetrieved(len(years)); err != nil {
			return nil, err
		}
		league.Years = years
	}
	if l.Settings.LeagueName != "" {
		league.Name = l.Settings.LeagueName
	}
	if !l.Settings.SkipValidation {
		if err := validate.League(league); err != nil {
			return nil, err
		}
	}
	logger.WithSource("sqlite").WithField("key", l.Key).WithField("years", len(league.Years)).Info("Loaded league")
	return league, nil
}

func (l *Loader) OwnerNames(ctx context.Context) (map[int][]string, error) {
	league, err := l.LoadLeague(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(league.Owners))
	for _, o := range league.Owners {
		names[o.ID] = o.Name
	}
	out := make(map[int][]string, len(league.Years))
	for _, y := range league.Years {
		for _, t := range y.Teams {
			out[y.YearNumber] = append(out[y.YearNumber], names[t.OwnerID])
		}
	}
	return out, nil
}
