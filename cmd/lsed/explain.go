package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/praetorian-inc/lsed/pkg/script"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain [SCRIPT]",
	Short: "Show how a script compiles",
	Long:  "Compile a script (inline or with --file) and list its commands with their locations, actions and source positions",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	if scriptFile != "" && len(args) > 0 {
		return fmt.Errorf("pass either SCRIPT or --file, not both")
	}

	enabled, err := colorEnabled(colorMode)
	if err != nil {
		return err
	}

	editor, _, err := compileEditor(cmd, args, editorOptions(cmd)...)
	if err != nil {
		return err
	}

	s := newStyles(enabled)
	out := cmd.OutOrStdout()
	sc := editor.Script()

	if sc.Name != "" {
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Script:"), sc.Name)
	}
	if sc.Description != "" {
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Description:"), sc.Description)
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "At", "Location", "Kind", "Command", "Source"})
	for i, c := range sc.Commands {
		tw.AppendRow(table.Row{
			i + 1,
			c.Position.String(),
			s.location.Sprint(describeLocation(&c.Location)),
			c.Location.Kind.String(),
			s.command.Sprint(c.Transformer.String()),
			c.Source,
		})
	}
	tw.Render()

	fmt.Fprintf(out, "%s %d\n", s.heading.Sprint("Commands:"), sc.Len())

	keywords := editor.PrefilterKeywords()
	fmt.Fprintf(out, "%s %d keyword(s)\n", s.heading.Sprint("Prefilter:"), len(keywords))
	if len(keywords) > 0 {
		quoted := make([]string, len(keywords))
		for i, k := range keywords {
			quoted[i] = s.keyword.Sprintf("%q", k)
		}
		fmt.Fprintf(out, "  %s\n", strings.Join(quoted, ", "))
	}
	if editor.Quiet() {
		fmt.Fprintln(out, "Auto-print: off")
	} else {
		fmt.Fprintln(out, "Auto-print: on")
	}
	return nil
}

func describeLocation(loc *script.Location) string {
	if loc.Kind == script.LocationGlobal {
		return "(every line)"
	}
	return loc.String()
}
