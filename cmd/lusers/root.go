package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hnrobert/lusers/internal/config"
	"github.com/hnrobert/lusers/internal/fixture"
	"github.com/hnrobert/lusers/internal/logger"
	"github.com/hnrobert/lusers/internal/users"
	"github.com/hnrobert/lusers/internal/users/hostusers"
)

// errNotFound is returned by lookups that matched nothing. The message has
// already been printed.
var errNotFound = errors.New("not found")

type app struct {
	cfg     config.Config
	fixture *fixture.Fixture
	src     users.Source
}

// newRootCommand builds the command tree. cfg supplies flag defaults.
func newRootCommand(cfg config.Config) *cobra.Command {
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:           "lusers",
		Short:         "Mockable users and groups.",
		Long:          "Look up users and groups in passwd-style files or in a YAML fixture.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.Fixture, "fixture", cfg.Fixture, "YAML fixture to use instead of the files under --root")
	flags.StringVar(&a.cfg.Root, "root", cfg.Root, "directory holding etc/passwd and etc/group")
	flags.StringVar(&a.cfg.LogDir, "log-dir", cfg.LogDir, "write daily log files below this directory")
	flags.BoolVar(&a.cfg.Debug, "debug", cfg.Debug, "enable debug logging")

	root.AddCommand(
		a.newUserCommand(),
		a.newGroupCommand(),
		a.newWhoamiCommand(),
		a.newReportCommand(),
		a.newDumpCommand(),
		a.newMaterializeCommand(),
		a.newVerifyCommand(),
	)
	return root
}

func (a *app) setup() error {
	logger.SetDebug(a.cfg.Debug)
	if err := logger.Init(a.cfg.LogDir); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	if a.cfg.Fixture == "" {
		logger.Debug("using host files under %s", a.cfg.Root)
		a.src = hostusers.New(a.cfg.Root)
		return nil
	}
	f, err := fixture.Load(a.cfg.Fixture)
	if err != nil {
		return err
	}
	logger.Debug("using fixture %s", a.cfg.Fixture)
	a.fixture = f
	a.src = f.Build()
	return nil
}
