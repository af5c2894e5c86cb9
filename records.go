package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"loan-eligibility/app"
	"loan-eligibility/domain"
	"loan-eligibility/format"
	"loan-eligibility/repository"
)

const adminPasswordEnv = "LOANCALC_ADMIN_PASSWORD"

var adminPassword string

func recordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Manage stored applications (admin)",
		Long: `Admin commands over stored applications. The admin password is read from
--password, then $LOANCALC_ADMIN_PASSWORD, then prompted for.`,
	}
	cmd.PersistentFlags().StringVar(&adminPassword, "password", "", "admin password")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List stored applications",
			Args:  cobra.NoArgs,
			RunE: withAdmin(func(ctx context.Context, cmd *cobra.Command, a *app.App, s domain.Session, _ []string) error {
				records, err := a.Admin.ListRecords(ctx, s)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No records stored.")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), format.RecordsTable(records))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Show totals, average loan and loan distribution",
			Args:  cobra.NoArgs,
			RunE: withAdmin(func(ctx context.Context, cmd *cobra.Command, a *app.App, s domain.Session, _ []string) error {
				m, err := a.Admin.Metrics(ctx, s)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), format.MetricsTable(m))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete one stored application",
			Args:  cobra.ExactArgs(1),
			RunE: withAdmin(func(ctx context.Context, cmd *cobra.Command, a *app.App, s domain.Session, args []string) error {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil || id <= 0 {
					return fmt.Errorf("invalid record id %q", args[0])
				}
				err = a.Admin.DeleteRecord(ctx, s, id)
				if errors.Is(err, repository.ErrRecordNotFound) {
					fmt.Fprintln(cmd.OutOrStdout(), format.WarningStyle.Render(fmt.Sprintf("No record with id %d.", id)))
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), format.SuccessStyle.Render(fmt.Sprintf("Deleted record %d.", id)))
				return nil
			}),
		},
		purgeCmd(),
	)
	return cmd
}

func purgeCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete ALL stored applications",
		Long:  "Purge removes every stored application. This cannot be undone.",
		Args:  cobra.NoArgs,
		RunE: withAdmin(func(ctx context.Context, cmd *cobra.Command, a *app.App, s domain.Session, _ []string) error {
			out := cmd.OutOrStdout()

			confirmed := force
			if !confirmed {
				records, err := a.Admin.ListRecords(ctx, s)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					fmt.Fprintln(out, "No records stored. Nothing to purge.")
					return nil
				}
				confirmed, err = confirm(cmd.InOrStdin(), out,
					fmt.Sprintf("This will delete %d records.\nAre you sure you want to continue? [y/N]: ", len(records)))
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(out, "Purge canceled.")
					return nil
				}
			}

			n, err := a.Admin.DeleteAllRecords(ctx, s, confirmed)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, format.SuccessStyle.Render(fmt.Sprintf("Deleted %d records.", n)))
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	return cmd
}

type adminRunFunc func(ctx context.Context, cmd *cobra.Command, a *app.App, s domain.Session, args []string) error

// withAdmin opens the app, logs in and hands the session to fn. The session
// is revoked when fn returns.
func withAdmin(fn adminRunFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		password, err := readAdminPassword(cmd)
		if err != nil {
			return err
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		session, err := a.Admin.Login(ctx, password)
		if err != nil {
			return fmt.Errorf("admin login: %w", err)
		}
		defer func() { _ = a.Admin.Logout(context.WithoutCancel(ctx), session) }()

		return fn(ctx, cmd, a, session, args)
	}
}

func readAdminPassword(cmd *cobra.Command) (string, error) {
	if adminPassword != "" {
		return adminPassword, nil
	}
	if v := os.Getenv(adminPasswordEnv); v != "" {
		return v, nil
	}
	return promptSecret(cmd.ErrOrStderr(), "Admin password: ")
}

func promptSecret(out io.Writer, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no password given and stdin is not a terminal; use --password or $%s", adminPasswordEnv)
	}
	fmt.Fprint(out, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}

func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read input: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
