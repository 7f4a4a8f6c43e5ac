package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fragmede/threadtree/internal/api"
	"github.com/fragmede/threadtree/internal/cache"
	"github.com/fragmede/threadtree/internal/config"
)

type ctxKey string

const appKey ctxKey = "app"

// app holds what the subcommands share for one invocation.
type app struct {
	cfg     config.Config
	client  *api.Client
	db      *cache.DB // nil when caching is off
	logFile *os.File
}

func (a *app) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Printf("closing cache: %v", err)
		}
	}
	if a.logFile != nil {
		log.SetOutput(io.Discard)
		a.logFile.Close()
	}
}

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command using the public HN endpoints.
func NewRootCmd() *cobra.Command {
	return newRootCmd(api.NewClient())
}

func newRootCmd(client *api.Client) *cobra.Command {
	var (
		cfgPath string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:           "threadtree",
		Short:         "Render threaded discussions as a tree in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			flags := cmd.Flags()
			for _, name := range []string{"width", "color", "pager", "source"} {
				if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
					return fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
			if noCache {
				v.Set("cache", false)
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			a, err := newApp(cfg, client)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, a))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a, ok := cmd.Context().Value(appKey).(*app); ok {
				a.close()
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (yaml|toml)")
	pf.Int("width", 0, "wrap against this many columns instead of the terminal width")
	pf.String("color", config.Default().Color, "color output: auto, always or never")
	pf.Bool("pager", false, "page the output on an interactive terminal")
	pf.String("source", config.SourceFirebase, "HN backend for item: firebase or algolia")
	pf.BoolVar(&noCache, "no-cache", false, "bypass the local item cache")

	cmd.AddCommand(newFileCmd())
	cmd.AddCommand(newItemCmd())
	cmd.AddCommand(newUserCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

// newApp prepares the cache directory, the debug log and the item cache.
func newApp(cfg config.Config, client *api.Client) (*app, error) {
	if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	a := &app{cfg: cfg, client: client}

	f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
	} else {
		log.SetOutput(f)
		a.logFile = f
	}

	if cfg.UseCache {
		db, err := cache.Open(cfg.DBPath)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("opening cache: %w", err)
		}
		a.db = db
	}
	return a, nil
}

func getApp(cmd *cobra.Command) *app {
	v := cmd.Context().Value(appKey)
	if v == nil {
		fmt.Fprintln(os.Stderr, "internal error: app not initialized")
		os.Exit(1)
	}
	return v.(*app)
}
