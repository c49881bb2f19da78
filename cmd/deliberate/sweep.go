package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-deliberation/config"
	"github.com/spacemeshos/go-deliberation/experiment"
	"github.com/spacemeshos/go-deliberation/log"
)

func newSweepCmd(conf *config.Config) *cobra.Command {
	c := &cobra.Command{
		Use:   "sweep",
		Short: "run trials over random profiles and report how often the target wins",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			logger, err := log.New(conf.LOGGING)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return execute(c.Context(), logger, conf.Metrics, func(ctx context.Context) error {
				s, err := experiment.New(conf.Sweep, experiment.WithLogger(logger.Named("sweep")))
				if err != nil {
					return err
				}
				points, err := s.Run(ctx)
				if err != nil {
					return err
				}
				if len(conf.Output) == 0 {
					return experiment.WriteCSV(c.OutOrStdout(), points)
				}
				if err := experiment.Save(conf.Output, points); err != nil {
					return err
				}
				logger.Info("saved sweep", zap.String("path", conf.Output), zap.Int("points", len(points)))
				return nil
			})
		},
	}
	flags := c.Flags()
	flags.IntVar(&conf.Sweep.Trials, "trials", conf.Sweep.Trials, "trials per point")
	flags.Int64Var(&conf.Sweep.Seed, "seed", conf.Sweep.Seed, "seed of the sweep")
	flags.IntVar(&conf.Sweep.Workers, "workers", conf.Sweep.Workers, "concurrent trials, 0 uses every cpu")
	flags.IntVar(&conf.Sweep.TargetFrom, "target-from", conf.Sweep.TargetFrom, "smallest amount of target evidence")
	flags.IntVar(&conf.Sweep.TargetTo, "target-to", conf.Sweep.TargetTo, "largest amount of target evidence")
	flags.IntVar(&conf.Sweep.RivalEvidence, "rival-evidence", conf.Sweep.RivalEvidence, "amount of rival evidence")
	flags.Var(newTextValue(&conf.Sweep.Algorithm, "algorithm"), "algorithm",
		"slicing, constrained, increment or deviate")
	flags.Var(newTextValue(&conf.Sweep.Disclosure, "policy"), "disclosure",
		"disclose one item or all eligible items per round")
	flags.StringVarP(&conf.Output, "output", "o", conf.Output, "write csv to this file instead of stdout")
	return c
}
