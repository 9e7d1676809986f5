package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"eventmod/internal/config"
	"eventmod/internal/domain"
	"eventmod/internal/history"
	"eventmod/internal/moderation"
)

func newInitCommand(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := configService(opts)
			if _, err := os.Stat(svc.Path()); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", svc.Path())
			}

			cfg := config.DefaultConfig()
			if opts.view != "" {
				cfg.View = opts.view
			}
			if opts.baseURL != "" {
				cfg.Service.BaseURL = opts.baseURL
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := svc.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", svc.Path())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")
	return cmd
}

func newHistoryCommand(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently performed bulk actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if !cfg.History.Enabled || cfg.History.Path == "" {
				return fmt.Errorf("history is disabled")
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printHistory(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show, -1 for all")
	return cmd
}

func printHistory(out io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No actions recorded yet")
		return
	}

	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = true
	table.AddRow("WHEN", "ACTION", "VIEW", "EVENTS", "RESULT")
	for _, e := range entries {
		result := color.GreenString(e.Outcome)
		if !e.OK {
			result = color.RedString("failed: %s", e.Error)
		}
		table.AddRow(
			e.At.Local().Format("2006-01-02 15:04:05"),
			e.Action.Label(),
			string(e.View),
			strings.Join(e.EventIDs, ", "),
			result,
		)
	}
	fmt.Fprintln(out, table)
}

func newCheckCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <event-id>...",
		Short: "Ask the service which bulk actions are allowed for events",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			client, _, err := newClient(cfg, opts)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout(cfg.Service.RequestTimeout.Duration))
			defer cancel()

			verdict, err := client.CheckActions(ctx, args)
			if err != nil {
				return err
			}
			printVerdict(cmd.OutOrStdout(), verdict)
			return nil
		},
	}
}

func checkTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 10 * time.Second
	}
	return d
}

func printVerdict(out io.Writer, v moderation.Verdict) {
	valid := make(map[domain.Action]bool, len(v.Valid))
	for _, a := range v.Valid {
		valid[a] = true
	}

	table := uitable.New()
	table.AddRow("ACTION", "ALLOWED")
	for _, a := range domain.AllActions {
		allowed := color.RedString("no")
		if valid[a] {
			allowed = color.GreenString("yes")
		}
		table.AddRow(a.Label(), allowed)
	}
	fmt.Fprintln(out, table)

	if len(v.Unknown) > 0 {
		fmt.Fprintln(out, color.YellowString("Unknown actions ignored: %s", strings.Join(v.Unknown, ", ")))
	}
}
