package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/praetorian-inc/lsed"
	"github.com/praetorian-inc/lsed/pkg/source"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	scriptFile   string
	regexEngine  string
	matchTimeout time.Duration
	usePrefilter bool
	gitRev       string
	gitRepo      string
	colorMode    string
)

var rootCmd = &cobra.Command{
	Use:   "lsed [flags] SCRIPT [FILE...]",
	Short: "lsed - streaming line editor",
	Long: `lsed applies a script of line-addressed commands to every line of its input.

Commands are p (print), d (delete), q (quit) and s/find/replace/[g], each
optionally prefixed by a location: a line number, $ for the last line, a
/regex/, or two of those joined by ',' for an inclusive range. Commands are
separated by ';' or whitespace.

Input is read from the FILE arguments in order, or from stdin when none are
given.`,
	Example: `  lsed '/^#/d; s/foo/bar/g' config.txt
  lsed -n '/BEGIN/,/END/p' notes.txt
  lsed 10q < big.log
  lsed -f tidy.yaml --git-rev HEAD~1 README.md`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "n", false, "Suppress the automatic print of every line")
	rootCmd.PersistentFlags().StringVarP(&scriptFile, "file", "f", "", "Read the script from a file (.yml/.yaml is parsed as YAML)")
	rootCmd.PersistentFlags().StringVar(&regexEngine, "regexp-engine", string(lsed.EngineRE2), "Regex engine: re2, regexp2")
	rootCmd.PersistentFlags().DurationVar(&matchTimeout, "match-timeout", 5*time.Second, "Timeout for a single regexp2 match")
	rootCmd.PersistentFlags().BoolVar(&usePrefilter, "prefilter", true, "Answer literal /regex/ locations with one keyword scan per line")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "Color diagnostics: auto, always, never")

	rootCmd.Flags().StringVar(&gitRev, "git-rev", "", "Read FILE arguments from this git revision instead of the working tree")
	rootCmd.Flags().StringVar(&gitRepo, "git-repo", ".", "Repository used with --git-rev")

	// Add subcommands
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func runRoot(cmd *cobra.Command, args []string) error {
	editor, inputs, err := compileEditor(cmd, args, editorOptions(cmd)...)
	if err != nil {
		return err
	}
	debugf(cmd, "compiled %d command(s): %s", editor.Script().Len(), editor.Script())
	if keywords := editor.PrefilterKeywords(); len(keywords) > 0 {
		debugf(cmd, "prefilter keywords: %q", keywords)
	}

	src, err := openInputs(cmd, inputs)
	if err != nil {
		return err
	}
	defer src.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	res, err := editor.Run(ctx, src, out)
	if ferr := out.Flush(); err == nil && ferr != nil {
		err = fmt.Errorf("writing output: %w", ferr)
	}
	if err != nil {
		return err
	}

	debugf(cmd, "processed %d line(s), quit=%t", res.Lines, res.Quit)
	return nil
}

// editorOptions maps command-line flags to editor options.
func editorOptions(cmd *cobra.Command) []lsed.Option {
	opts := []lsed.Option{
		lsed.WithEngine(lsed.Engine(regexEngine)),
		lsed.WithMatchTimeout(matchTimeout),
		lsed.WithWarnings(cmd.ErrOrStderr()),
	}
	if quiet {
		opts = append(opts, lsed.WithQuiet())
	}
	if !usePrefilter {
		opts = append(opts, lsed.WithoutPrefilter())
	}
	return opts
}

// compileEditor builds an editor from --file or the first argument and
// returns the remaining arguments as inputs. Inline parse errors are
// rendered with a caret under the failing column.
func compileEditor(cmd *cobra.Command, args []string, opts ...lsed.Option) (*lsed.Editor, []string, error) {
	if scriptFile != "" {
		debugf(cmd, "loading script from %s", scriptFile)
		editor, err := lsed.NewFromFile(scriptFile, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("loading script: %w", err)
		}
		return editor, args, nil
	}

	if len(args) == 0 {
		return nil, nil, errors.New("missing script: pass SCRIPT or --file")
	}

	editor, err := lsed.New(args[0], opts...)
	if err != nil {
		var pe *lsed.ParseError
		if errors.As(err, &pe) {
			enabled, cerr := colorEnabled(colorMode)
			if cerr != nil {
				return nil, nil, cerr
			}
			fmt.Fprint(cmd.ErrOrStderr(), renderParseError(args[0], pe, enabled))
		}
		return nil, nil, err
	}
	return editor, args[1:], nil
}

// openInputs picks the line source: stdin, files, or files at a git revision.
func openInputs(cmd *cobra.Command, inputs []string) (source.Source, error) {
	if gitRev != "" {
		if len(inputs) == 0 {
			return nil, errors.New("--git-rev requires at least one FILE")
		}
		debugf(cmd, "reading %d file(s) from %s at %s", len(inputs), gitRepo, gitRev)
		return source.OpenGitFiles(gitRepo, gitRev, inputs)
	}

	if len(inputs) == 0 {
		return source.NewReader(cmd.InOrStdin(), "<stdin>"), nil
	}

	debugf(cmd, "reading %d file(s)", len(inputs))
	return source.OpenFiles(inputs)
}

func debugf(cmd *cobra.Command, format string, args ...any) {
	if !verbose {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "[debug] "+format+"\n", args...)
}
