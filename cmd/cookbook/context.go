package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/hammamikhairi/cookbook/internal/config"
	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
	"github.com/hammamikhairi/cookbook/internal/recipe"
	"github.com/hammamikhairi/cookbook/internal/storage"
)

// commandContext carries the persistent flags and lazily built shared
// resources for every subcommand.
type commandContext struct {
	configFlag *string
	logFlag    *string
	verbose    *bool
	quiet      *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logOnce sync.Once
	log     *logger.Logger
	logFile io.Closer
}

func newCommandContext(configFlag, logFlag *string, verbose, quiet *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		logFlag:    logFlag,
		verbose:    verbose,
		quiet:      quiet,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger returns the shared logger. Logs go to the configured file so the
// terminal UI stays clean; "-" or "stderr" logs to the console.
func (c *commandContext) logger() *logger.Logger {
	c.logOnce.Do(func() {
		level := logger.LevelNormal
		dest := "-"
		if cfg, err := c.ensureConfig(); err == nil {
			if l, ok := logger.ParseLevel(cfg.Logging.Level); ok {
				level = l
			}
			dest = cfg.Logging.File
		}
		if c.verbose != nil && *c.verbose {
			level = logger.LevelVerbose
		}
		if c.quiet != nil && *c.quiet {
			level = logger.LevelOff
		}
		if c.logFlag != nil && strings.TrimSpace(*c.logFlag) != "" {
			dest = strings.TrimSpace(*c.logFlag)
		}

		var out io.Writer = os.Stderr
		if dest != "-" && dest != "stderr" {
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not create log directory for %s: %v (falling back to stderr)\n", dest, err)
			} else {
				rotating := &lumberjack.Logger{
					Filename:   dest,
					MaxSize:    5, // megabytes
					MaxBackups: 3,
					MaxAge:     28, // days
				}
				out = rotating
				c.logFile = rotating
			}
		}

		// Third-party packages that use the standard logger write to the
		// same place.
		stdlog.SetOutput(out)
		stdlog.SetFlags(stdlog.Ltime)

		c.log = logger.New(level, out)
	})
	return c.log
}

func (c *commandContext) close() {
	if c.log != nil {
		_ = c.log.Sync()
	}
	if c.logFile != nil {
		_ = c.logFile.Close()
		c.logFile = nil
	}
}

// recipes builds the recipe source: the built-ins plus the configured file.
func (c *commandContext) recipes() (*recipe.MemorySource, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	log := c.logger()

	src := recipe.NewMemorySource(log)
	if cfg.Paths.RecipesFile != "" {
		n, err := src.LoadFile(cfg.Paths.RecipesFile)
		if err != nil {
			return nil, fmt.Errorf("load recipes: %w", err)
		}
		log.Info("loaded %d recipes from %s", n, cfg.Paths.RecipesFile)
	}
	return src, nil
}

// openHistory opens the SQLite history database. Callers close it.
func (c *commandContext) openHistory(ctx context.Context) (*storage.SQLiteHistory, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(ctx, cfg.Paths.HistoryDB, c.logger())
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return store, nil
}

// cookRecorder opens the history for a cooking page. When the database
// cannot be opened the page still runs and the finished session is kept in
// memory only. persistent reports which one the caller got.
func (c *commandContext) cookRecorder(ctx context.Context) (rec domain.HistoryRecorder, persistent bool, closeFn func()) {
	store, err := c.openHistory(ctx)
	if err != nil {
		c.logger().Warn("%v; history for this session stays in memory", err)
		return storage.NewMemoryHistory(c.logger()), false, func() {}
	}
	return store, true, func() {
		if err := store.Close(); err != nil {
			c.logger().Warn("close history: %v", err)
		}
	}
}

// resolveRecipe finds a recipe by ID, falling back to a search that must
// match exactly one recipe.
func resolveRecipe(ctx context.Context, src domain.RecipeSource, ref string) (*domain.Recipe, error) {
	ref = strings.TrimSpace(ref)
	r, err := src.Get(ctx, ref)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	matches, err := src.Search(ctx, ref)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("recipe %q: %w (try `cookbook list`)", ref, domain.ErrNotFound)
	case 1:
		return src.Get(ctx, matches[0].ID)
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		return nil, fmt.Errorf("recipe %q is ambiguous: %s", ref, strings.Join(ids, ", "))
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
