package main

import (
	"context"
	"encoding"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/go-deliberation/config"
	"github.com/spacemeshos/go-deliberation/config/presets"
	"github.com/spacemeshos/go-deliberation/filesystem"
	"github.com/spacemeshos/go-deliberation/metrics"
)

func newRootCmd() *cobra.Command {
	conf := config.DefaultConfig()
	var path string
	root := &cobra.Command{
		Use:          "deliberate",
		Short:        "run evidence disclosure protocols between agents",
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return configure(c, path, &conf)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&path, "config", "c", "", "load configuration from file")
	flags.StringVarP(&conf.Preset, "preset", "p", "",
		fmt.Sprintf("preset overwrites default values of the config. options %+s", presets.Options()))
	flags.StringVar(&conf.LOGGING.Level, "log-level", conf.LOGGING.Level, "logging level")
	flags.StringVar(&conf.LOGGING.Encoding, "log-encoding", conf.LOGGING.Encoding, "console or json")
	flags.StringVar(&conf.Metrics.Listen, "metrics-listen", conf.Metrics.Listen,
		"serve metrics on this address while running")
	flags.StringVar(&conf.Metrics.Push, "metrics-push", conf.Metrics.Push,
		"push metrics to this pushgateway url when done")
	flags.StringVar(&conf.Metrics.PushJob, "metrics-push-job", conf.Metrics.PushJob, "pushgateway job name")

	root.AddCommand(newRunCmd(&conf), newSweepCmd(&conf))
	return root
}

// configure loads the preset, then the config file over it, then flags given
// on the command line over both.
func configure(c *cobra.Command, path string, conf *config.Config) error {
	changed := map[string]string{}
	c.Flags().Visit(func(f *pflag.Flag) {
		changed[f.Name] = f.Value.String()
	})

	vip := viper.New()
	if err := config.LoadConfig(path, vip); err != nil {
		return err
	}
	preset := conf.Preset
	if len(preset) == 0 && vip.IsSet("preset") {
		preset = vip.GetString("preset")
	}
	base := config.DefaultConfig()
	if len(preset) > 0 {
		p, err := presets.Get(preset)
		if err != nil {
			return err
		}
		base = p
	}
	*conf = base
	if err := config.Decode(vip, conf); err != nil {
		return err
	}
	for name, value := range changed {
		if err := c.Flags().Set(name, value); err != nil {
			return fmt.Errorf("apply flag %s: %w", name, err)
		}
	}
	conf.Transcripts = filesystem.GetCanonicalPath(conf.Transcripts)
	conf.Output = filesystem.GetCanonicalPath(conf.Output)
	conf.ProfileFile = filesystem.GetCanonicalPath(conf.ProfileFile)
	return conf.Validate()
}

type textFlag interface {
	encoding.TextMarshaler
	encoding.TextUnmarshaler
}

// textValue exposes enums with text encoding as flags.
type textValue struct {
	value textFlag
	typ   string
}

var _ pflag.Value = textValue{}

func newTextValue(value textFlag, typ string) textValue {
	return textValue{value: value, typ: typ}
}

func (v textValue) String() string {
	text, err := v.value.MarshalText()
	if err != nil {
		return ""
	}
	return string(text)
}

func (v textValue) Set(s string) error {
	return v.value.UnmarshalText([]byte(s))
}

func (v textValue) Type() string {
	return v.typ
}

// execute runs work with a metrics server alongside when one is configured and
// pushes metrics once work succeeds.
func execute(
	parent context.Context,
	logger *zap.Logger,
	cfg config.MetricsConfig,
	work func(context.Context) error,
) error {
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	eg, ctx := errgroup.WithContext(ctx)
	serveCtx, stop := context.WithCancel(ctx)
	defer stop()
	if len(cfg.Listen) > 0 {
		eg.Go(func() error {
			return metrics.Serve(serveCtx, logger.Named("metrics"), cfg.Listen)
		})
	}
	eg.Go(func() error {
		defer stop()
		return work(ctx)
	})
	if err := eg.Wait(); err != nil {
		return err
	}
	if len(cfg.Push) > 0 {
		if err := metrics.Push(parent, cfg.Push, cfg.PushJob, nil); err != nil {
			return fmt.Errorf("push metrics: %w", err)
		}
		logger.Info("pushed metrics", zap.String("url", cfg.Push), zap.String("job", cfg.PushJob))
	}
	return nil
}
