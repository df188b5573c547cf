/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Seednode/memebattle/games"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind              string
	catalog           string
	countdownInterval time.Duration
	joinDelay         time.Duration
	loadDelay         time.Duration
	port              int
	prefix            string
	profile           bool
	revealDelay       time.Duration
	sessionTimeout    time.Duration
	tlsCert           string
	tlsKey            string
	verbose           bool
	version           bool

	provider games.Provider
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	for name, d := range map[string]time.Duration{
		"--countdown-interval": c.countdownInterval,
		"--join-delay":         c.joinDelay,
		"--load-delay":         c.loadDelay,
		"--reveal-delay":       c.revealDelay,
		"--session-timeout":    c.sessionTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive: %s", name, d)
		}
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

// loadCatalog reads images, swipe cards and prompts from the --catalog file.
// Keys that are missing or empty keep the built-in mock data.
func loadCatalog(path string) (*games.MockProvider, error) {
	p := &games.MockProvider{}
	if path == "" {
		return p, nil
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	if err := v.UnmarshalKey("images", &p.Images); err != nil {
		return nil, fmt.Errorf("parsing images in %s: %w", path, err)
	}
	if err := v.UnmarshalKey("swipe", &p.Swipe); err != nil {
		return nil, fmt.Errorf("parsing swipe in %s: %w", path, err)
	}
	p.Prompts = v.GetStringSlice("prompts")

	for _, img := range append(append([]games.Image(nil), p.Images...), p.Swipe...) {
		if img.ID == "" || img.URL == "" {
			return nil, fmt.Errorf("catalog %s: every image needs an id and a url", path)
		}
	}

	return p, nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("MEMEBATTLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "memebattle",
		Short:         "A meme battle party game prototype, served as a single webapp.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}

			provider, err := loadCatalog(cfg.catalog)
			if err != nil {
				return err
			}
			cfg.provider = provider

			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: MEMEBATTLE_BIND)")
	fs.StringVar(&cfg.catalog, "catalog", "", "yaml/toml/json file with images, swipe and prompts to use instead of the built-in set (env: MEMEBATTLE_CATALOG)")
	fs.DurationVar(&cfg.countdownInterval, "countdown-interval", time.Second, "time between lobby countdown steps (env: MEMEBATTLE_COUNTDOWN_INTERVAL)")
	fs.DurationVar(&cfg.joinDelay, "join-delay", time.Second, "simulated invite code lookup time (env: MEMEBATTLE_JOIN_DELAY)")
	fs.DurationVar(&cfg.loadDelay, "load-delay", time.Second, "simulated image catalog load time (env: MEMEBATTLE_LOAD_DELAY)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: MEMEBATTLE_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: MEMEBATTLE_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: MEMEBATTLE_PROFILE)")
	fs.DurationVar(&cfg.revealDelay, "reveal-delay", 500*time.Millisecond, "time between submission card reveals (env: MEMEBATTLE_REVEAL_DELAY)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before idle browser sessions are dropped (env: MEMEBATTLE_SESSION_TIMEOUT)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: MEMEBATTLE_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: MEMEBATTLE_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: MEMEBATTLE_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: MEMEBATTLE_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("memebattle v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
