package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/kenzliang/leeger/internal/archive"
	"github.com/kenzliang/leeger/internal/config"
	"github.com/kenzliang/leeger/internal/export"
	"github.com/kenzliang/leeger/internal/filter"
	"github.com/kenzliang/leeger/internal/headtohead"
	"github.com/kenzliang/leeger/internal/loader/file"
	"github.com/kenzliang/leeger/internal/logger"
	"github.com/kenzliang/leeger/internal/model"
	"github.com/kenzliang/leeger/internal/navigator"
	"github.com/kenzliang/leeger/internal/reconcile"
	"github.com/kenzliang/leeger/internal/source"
	"github.com/kenzliang/leeger/internal/statsheet"
)

const usage = `usage: leeger [flags] <command>

commands:
  validate   load the league and check its structure
  owners     list owner names seen in each year
  stats      print the stat sheet of -year, or the all-time sheet, as JSON
  h2h        print the head-to-head record between -owner-a and -owner-b
  export     write an Excel workbook to -out
  archive    save the league into the SQLite archive under -key
  reconcile  compare the league with the copy archived under -key
  save       write the league to -out as YAML or JSON
`

type options struct {
	configPath string
	year       int
	out        string
	key        string
	ownerA     string
	ownerB     string
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "config file (default ./leeger.yaml if present)")
	flag.IntVar(&o.year, "year", 0, "year for stats (0 = all time)")
	flag.StringVar(&o.out, "out", "", "output path for export and save (default output_path from config)")
	flag.StringVar(&o.key, "key", "", "archive key for the archive command (default archive_key from config)")
	flag.StringVar(&o.ownerA, "owner-a", "", "first owner name or alias for h2h")
	flag.StringVar(&o.ownerB, "owner-b", "", "second owner name or alias for h2h")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.InitLogger(cfg.LogLevel, cfg.Development)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, flag.Arg(0), cfg, o, os.Stdout); err != nil {
		log.WithError(err).WithField("command", flag.Arg(0)).Error("Command failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, cfg *config.Config, o options, stdout io.Writer) error {
	opts, warnings, err := cfg.FilterOptions()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.GetLogger().Warn(w)
	}

	if command == "owners" {
		src, err := source.Open(cfg)
		if err != nil {
			return err
		}
		defer src.Close()
		names, err := src.Loader.OwnerNames(ctx)
		if err != nil {
			return err
		}
		return writeJSON(stdout, names)
	}

	league, err := source.Load(ctx, cfg)
	if err != nil {
		return err
	}
	log := logger.WithLeague(league.Name)

	switch command {
	case "validate":
		log.WithFields(logrus.Fields{"years": len(league.Years), "owners": len(league.Owners)}).Info("League is valid")
		return nil

	case "stats":
		if o.year != 0 {
			return yearStats(stdout, league, o.year, opts)
		}
		return allTimeStats(stdout, league, opts)

	case "h2h":
		out, err := headtohead.Build(league, o.ownerA, o.ownerB, opts)
		if err != nil {
			return err
		}
		return writeJSON(stdout, out)

	case "export":
		path := outputPath(o.out, cfg.OutputPath, "leeger.xlsx")
		return export.Save(path, league, opts)

	case "archive", "reconcile":
		key := o.key
		if key == "" {
			key = cfg.ArchiveKey
		}
		a, err := archive.Open(cfg.ArchivePath)
		if err != nil {
			return err
		}
		defer a.Close()
		if command == "reconcile" {
			return reconcileArchive(ctx, stdout, league, a, key)
		}
		return a.Save(ctx, key, league)

	case "save":
		path := outputPath(o.out, cfg.OutputPath, "league.yaml")
		if err := file.Save(path, league); err != nil {
			return err
		}
		log.WithField("path", path).Info("Saved league")
		return nil
	}
	return fmt.Errorf("unknown command %q", command)
}

func reconcileArchive(ctx context.Context, w io.Writer, league *model.League, a *archive.Archive, key string) error {
	archived, err := a.Load(ctx, key)
	if err != nil {
		return err
	}
	report, err := reconcile.BuildReport(league, archived)
	if err != nil {
		return err
	}
	entry := logger.WithLeague(league.Name).WithFields(logrus.Fields{"key": key, "mismatches": len(report.Mismatches)})
	if report.Clean() {
		entry.Info("Archive matches source")
	} else {
		entry.Warn("Archive differs from source")
	}
	return writeJSON(w, report)
}

func outputPath(flagValue string, configured string, fallback string) string {
	switch {
	case flagValue != "":
		return flagValue
	case configured != "":
		return configured
	}
	return fallback
}

// sheetOutput is a stat sheet with the row names resolved.
type sheetOutput struct {
	League  string            `json:"league"`
	Year    int               `json:"year,omitempty"`
	Filters map[string]any    `json:"filters,omitempty"`
	Names   map[string]string `json:"names"`
	Stats   []statsheet.Stat  `json:"stats"`
}

func yearStats(w io.Writer, league *model.League, yearNumber int, opts filter.Options) error {
	year, err := navigator.YearByNumber(league, yearNumber)
	if err != nil {
		return err
	}
	stats, err := statsheet.ForYear(year, opts)
	if err != nil {
		return err
	}
	names := make(map[string]string, len(year.Teams))
	for _, t := range year.Teams {
		names[t.ID] = t.Name
	}
	return writeJSON(w, sheetOutput{League: league.Name, Year: yearNumber, Names: names, Stats: stats})
}

func allTimeStats(w io.Writer, league *model.League, opts filter.Options) error {
	f, err := filter.ForLeague(league, opts)
	if err != nil {
		return err
	}
	stats, err := statsheet.AllTime(league, opts)
	if err != nil {
		return err
	}
	idx := navigator.NewOwnerIndex(league)
	names := make(map[string]string)
	for _, id := range idx.CanonicalIDs() {
		owner, err := idx.Owner(id)
		if err != nil {
			return err
		}
		names[id] = owner.Name
	}
	return writeJSON(w, sheetOutput{League: league.Name, Filters: f.AsMap(), Names: names, Stats: stats})
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
