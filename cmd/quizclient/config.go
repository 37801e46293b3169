package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	endpoint string
	name     string
	verbose  bool
}

func (c *Config) validate() error {
	if c.endpoint == "" {
		return errors.New("--endpoint must not be empty")
	}
	if !strings.HasPrefix(c.endpoint, "ws://") && !strings.HasPrefix(c.endpoint, "wss://") {
		return fmt.Errorf("endpoint must be a ws:// or wss:// URL: %q", c.endpoint)
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("QUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "quizclient",
		Short:         "Terminal client for the multiplayer quiz server.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.endpoint, "endpoint", "e", "ws://localhost:9002", "websocket endpoint of the quiz server (env: QUIZ_ENDPOINT)")
	fs.StringVarP(&cfg.name, "name", "n", "", "default display name for 'join <pin>' (env: QUIZ_NAME)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display debug output (env: QUIZ_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("quizclient v{{.Version}}\n")

	cmd.SilenceUsage = true

	return cmd
}
