package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/netsync"
	logzap "github.com/unkn0wn-root/netsync/log/zap"
)

type app struct {
	cfgFile string
	cfg     Config
	zl      *zap.Logger
	log     netsync.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "netsyncctl",
		Short:         "Inspect and drive netsync MTC/MMC payloads",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(a.cfgFile)
			if err != nil {
				return err
			}
			zl, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			a.cfg, a.zl, a.log = cfg, zl, logzap.New(zl)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.zl != nil {
				_ = a.zl.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Path to a netsyncctl TOML config file")

	root.AddCommand(
		a.encodeCmd(),
		a.decodeCmd(),
		a.fromMidiCmd(),
		a.toMidiCmd(),
		a.publishCmd(),
		a.resyncCmd(),
	)
	return root
}
