package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hnrobert/lusers/internal/users"
)

func printUser(w io.Writer, u users.User) {
	fmt.Fprintf(w, "uid=%d name=%s group=%d home=%s shell=%s\n", u.UID, u.Name, u.PrimaryGroup, u.HomeDir, u.Shell)
}

func printGroup(w io.Writer, g users.Group) {
	fmt.Fprintf(w, "gid=%d name=%s members=%s\n", g.GID, g.Name, strings.Join(g.Members, ","))
}

func (a *app) newUserCommand() *cobra.Command {
	var uid int
	cmd := &cobra.Command{
		Use:   "user [name]",
		Short: "Look up a user by name or by --uid",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				u   users.User
				ok  bool
				key string
			)
			switch {
			case cmd.Flags().Changed("uid"):
				u, ok = a.src.UserByUID(uid)
				key = fmt.Sprintf("uid %d", uid)
			case len(args) == 1:
				u, ok = a.src.UserByName(args[0])
				key = fmt.Sprintf("user %q", args[0])
			default:
				return fmt.Errorf("a name or --uid is required")
			}
			if !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "no such %s\n", key)
				return errNotFound
			}
			printUser(cmd.OutOrStdout(), u)
			return nil
		},
	}
	cmd.Flags().IntVar(&uid, "uid", 0, "look up by user id")
	return cmd
}

func (a *app) newGroupCommand() *cobra.Command {
	var gid int
	cmd := &cobra.Command{
		Use:   "group [name]",
		Short: "Look up a group by name or by --gid",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				g   users.Group
				ok  bool
				key string
			)
			switch {
			case cmd.Flags().Changed("gid"):
				g, ok = a.src.GroupByGID(gid)
				key = fmt.Sprintf("gid %d", gid)
			case len(args) == 1:
				g, ok = a.src.GroupByName(args[0])
				key = fmt.Sprintf("group %q", args[0])
			default:
				return fmt.Errorf("a name or --gid is required")
			}
			if !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "no such %s\n", key)
				return errNotFound
			}
			printGroup(cmd.OutOrStdout(), g)
			return nil
		},
	}
	cmd.Flags().IntVar(&gid, "gid", 0, "look up by group id")
	return cmd
}

func (a *app) newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the current and effective identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			printIdentity(w, "current", a.src.CurrentUID(), a.src.CurrentUsername, a.src.CurrentGID(), a.src.CurrentGroupname)
			printIdentity(w, "effective", a.src.EffectiveUID(), a.src.EffectiveUsername, a.src.EffectiveGID(), a.src.EffectiveGroupname)
			return nil
		},
	}
}

func printIdentity(w io.Writer, label string, uid int, user func() (string, bool), gid int, group func() (string, bool)) {
	uname, ok := user()
	if !ok {
		uname = "?"
	}
	gname, ok := group()
	if !ok {
		gname = "?"
	}
	fmt.Fprintf(w, "%s: uid=%d(%s) gid=%d(%s)\n", label, uid, uname, gid, gname)
}
