package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hnrobert/lusers/internal/fixture"
	"github.com/hnrobert/lusers/internal/report"
)

func (a *app) newReportCommand() *cobra.Command {
	var html bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print every user and group as Markdown or HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !html {
				_, err := io.WriteString(cmd.OutOrStdout(), report.Markdown(a.src))
				return err
			}
			out, err := report.HTML(a.src)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&html, "html", false, "render HTML instead of Markdown")
	return cmd
}

func (a *app) newDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the selected source as a YAML fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := fixture.FromSource(a.src).Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}

func (a *app) newMaterializeCommand() *cobra.Command {
	var (
		out  string
		opts fixture.MaterializeOptions
	)
	cmd := &cobra.Command{
		Use:   "materialize",
		Short: "Write the fixture as etc/passwd, etc/group and etc/shadow below --out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.fixture == nil {
				return errors.New("materialize needs --fixture")
			}
			if out == "" {
				return errors.New("--out is required")
			}
			return a.fixture.Materialize(out, opts)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "root directory to write")
	cmd.Flags().BoolVar(&opts.CreateHome, "create-home", false, "create home directories")
	return cmd
}

func (a *app) newVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <user>",
		Short: "Check a password read from stdin against etc/shadow below --root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("read password: %w", err)
			}
			password := strings.TrimRight(line, "\r\n")
			if err := fixture.VerifyPassword(a.cfg.Root, args[0], password); err != nil {
				return errors.New(fixture.HumanAuthError(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
