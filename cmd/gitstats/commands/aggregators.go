package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/builtin"
	"github.com/Sumatoshi-tech/gitstats/pkg/pipeline"
)

// AggregatorsCommand lists registered aggregators and their options.
type AggregatorsCommand struct {
	registry *analyze.Registry
}

// NewAggregatorsCommand creates the aggregators command.
func NewAggregatorsCommand() *cobra.Command {
	return newAggregatorsCommandWithRegistry(builtin.Registry())
}

func newAggregatorsCommandWithRegistry(registry *analyze.Registry) *cobra.Command {
	ac := &AggregatorsCommand{registry: registry}

	return &cobra.Command{
		Use:   "aggregators [flag]",
		Short: "List available aggregators",
		Long: `Without arguments, list every aggregator in finalize order.
With an aggregator flag, show its description and options.

Examples:
  gitstats aggregators
  gitstats aggregators cochange`,
		Args: cobra.MaximumNArgs(1),
		RunE: ac.run,
	}
}

func (ac *AggregatorsCommand) run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return ac.writeList(cmd.OutOrStdout())
	}

	return ac.writeDetail(cmd.OutOrStdout(), args[0])
}

func (ac *AggregatorsCommand) writeList(writer io.Writer) error {
	tbl := newListTable("Flag", "Name", "Default", "Description")

	for _, d := range ac.registry.All() {
		tbl.AppendRow(table.Row{d.Flag, d.Name, yesNo(d.Default), d.Description})
	}

	_, err := fmt.Fprintln(writer, tbl.Render())
	if err != nil {
		return fmt.Errorf("write aggregator list: %w", err)
	}

	return nil
}

func (ac *AggregatorsCommand) writeDetail(writer io.Writer, flag string) error {
	d, ok := ac.registry.Descriptor(flag)
	if !ok {
		return fmt.Errorf("%w: %s", analyze.ErrUnknownAggregator, flag)
	}

	set, err := ac.registry.Select([]string{d.Flag})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(writer, "%s (%s)\n%s\nIn default set: %s\n", d.Name, d.Flag, d.Description, yesNo(d.Default))
	if err != nil {
		return fmt.Errorf("write aggregator detail: %w", err)
	}

	options := set.ConfigurationOptions()
	if len(options) == 0 {
		return nil
	}

	_, err = fmt.Fprintf(writer, "\n%s\n", optionsTable(options).Render())
	if err != nil {
		return fmt.Errorf("write aggregator options: %w", err)
	}

	return nil
}

func optionsTable(options []pipeline.ConfigurationOption) table.Writer {
	tbl := newListTable("Option", "Type", "Default", "Description")

	for _, opt := range options {
		tbl.AppendRow(table.Row{"--" + opt.Flag, opt.Type.String(), opt.FormatDefault(), opt.Description})
	}

	return tbl
}

func newListTable(header ...any) table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false
	tbl.AppendHeader(header)

	return tbl
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}

	return "no"
}
