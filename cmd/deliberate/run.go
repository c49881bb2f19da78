package main

import (
	"context"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-deliberation/config"
	"github.com/spacemeshos/go-deliberation/deliberation"
	"github.com/spacemeshos/go-deliberation/log"
	"github.com/spacemeshos/go-deliberation/transcript"
)

func newRunCmd(conf *config.Config) *cobra.Command {
	c := &cobra.Command{
		Use:   "run",
		Short: "deliberate over the configured profile and print the transcript",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			logger, err := log.New(conf.LOGGING)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return execute(c.Context(), logger, conf.Metrics, func(context.Context) error {
				return deliberate(c.OutOrStdout(), afero.NewOsFs(), logger, conf)
			})
		},
	}
	flags := c.Flags()
	flags.Var(newTextValue(&conf.Deliberation.Protocol, "protocol"), "protocol",
		"simultaneous or sequential")
	flags.Var(newTextValue(&conf.Deliberation.Disclosure, "policy"), "disclosure",
		"disclose one item or all eligible items per round")
	flags.BoolVar(&conf.Deliberation.LogRounds, "log-rounds", conf.Deliberation.LogRounds,
		"log every round with INFO level")
	flags.StringVar(&conf.ProfileFile, "profile", conf.ProfileFile,
		"json profile document to deliberate over instead of the configured agents")
	flags.StringVar(&conf.Transcripts, "transcripts", conf.Transcripts,
		"store the transcript in this directory")
	return c
}

func deliberate(w io.Writer, fs afero.Fs, logger *zap.Logger, conf *config.Config) error {
	if len(conf.ProfileFile) > 0 {
		if err := conf.LoadProfile(fs, conf.ProfileFile); err != nil {
			return err
		}
	}
	p, err := conf.Profile()
	if err != nil {
		return err
	}
	d := deliberation.New(
		deliberation.WithConfig(conf.Deliberation),
		deliberation.WithLogger(logger.Named("deliberation")),
	)
	rst, err := d.Run(p)
	if err != nil {
		return err
	}
	logger.Info("deliberation completed",
		zap.Inline(rst),
		log.ZShortStringer("fingerprint", rst.History.Fingerprint()),
	)
	if err := transcript.Write(w, rst.History); err != nil {
		return err
	}
	if len(conf.Transcripts) == 0 {
		return nil
	}
	store := transcript.NewStore(fs, conf.Transcripts, transcript.WithLogger(logger.Named("transcripts")))
	_, err = store.Save(rst)
	return err
}
