package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const version = "v0.1.0"

const usage = `Applies the ops to a self-balancing tree and prints it.

Ops:
  +k | k   insert the key k
  -k       delete the key k
  ?k       search the key k
  popmin   delete the first key, the greatest one with --desc

Put the ops after "--" so "-k" is not taken as a flag.`

func newRootCmd() *cobra.Command {
	cfg := &appConfig{}
	var scriptPath string

	cmd := &cobra.Command{
		Use:           "xtree [flags] -- [ops...]",
		Short:         "Self-balancing binary search trees playground",
		Long:          usage,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Kind = strings.ToLower(strings.TrimSpace(cfg.Kind))
			cfg.Metrics = strings.ToLower(strings.TrimSpace(cfg.Metrics))
			cfg.Ops = lo.Filter(args, func(arg string, _ int) bool {
				return len(strings.TrimSpace(arg)) > 0
			})
			if scriptPath != "" {
				s, err := loadScript(scriptPath)
				if err != nil {
					return err
				}
				s.merge(cfg, cmd.Flags().Changed)
			}
			if err := cfg.validate(); err != nil {
				return err
			}
			cfg.Out = cmd.OutOrStdout()
			return runApp(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.Kind, "kind", "k", kindAVL, "tree kind, avl or rb")
	flags.BoolVar(&cfg.Desc, "desc", false, "order the keys descending")
	flags.BoolVar(&cfg.BorrowPred, "borrow-pred", false, "delete by borrowing the in-order predecessor")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "log level, debug traces every rotation and recolor")
	flags.StringVar(&cfg.Encoder, "log-encoder", "text", "log encoder, json or text")
	flags.StringVar(&cfg.Metrics, "metrics", metricsNone, "metrics exporter, none, stdout or prometheus")
	flags.StringVar(&cfg.MetricsAddr, "metrics-addr", ":9464", "prometheus scrape address")
	flags.StringVarP(&scriptPath, "script", "f", "", "YAML script of the run")
	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "xtree:", err)
		os.Exit(1)
	}
}
