package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kamusis/tagsheet/internal/decode"
	"github.com/kamusis/tagsheet/internal/render"
	"github.com/kamusis/tagsheet/internal/session"
)

const prompt = "tagsheet> "

var sessionCmd = &cobra.Command{
	Use:   "session [file...]",
	Short: "Start an interactive tagging session",
	Long: `Start an in-memory tagging session. Files given on the command line are
imported as the first batch; further commands are read one per line from
stdin, or from --script.

Type 'help' inside the session for the command list. The session ends on
'quit', 'exit' or end of input, and nothing is saved except exported CSVs.`,
	RunE: runSession,
}

var flagScript string

func init() {
	sessionCmd.Flags().StringVar(&flagScript, "script", "", "Read session commands from this file; stop at the first failing command")
	rootCmd.AddCommand(sessionCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s := newSession(cfg)
	ctx := cmd.Context()

	if len(args) > 0 {
		out, err := s.Dispatch(ctx, session.ImportFiles{Paths: args})
		if err != nil {
			return err
		}
		present(s, out)
	}

	if flagScript != "" {
		f, err := os.Open(flagScript)
		if err != nil {
			return fmt.Errorf("cannot open script: %w", err)
		}
		defer f.Close()
		return runLines(ctx, s, f, flagScript, false)
	}

	interactive := false
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	if interactive {
		fmt.Fprintf(stdout, "Session %s. Type 'help' for commands, 'quit' to leave.\n", s.ID()[:8])
	}
	return runLines(ctx, s, cmd.InOrStdin(), "", interactive)
}

// runLines feeds each line of in to the session. Interactive sessions report
// a failing command and carry on; scripts (name set) stop at the first one.
func runLines(ctx context.Context, s *session.Session, in io.Reader, name string, interactive bool) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineNo := 1; ; lineNo++ {
		if interactive {
			fmt.Fprint(stdout, prompt)
		}
		if !sc.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		quit, err := runLine(ctx, s, sc.Text())
		if err != nil {
			if name != "" {
				return fmt.Errorf("%s:%d: %w", name, lineNo, err)
			}
			printErr("", err.Error())
			continue
		}
		if quit {
			return nil
		}
	}
	if interactive {
		fmt.Fprintln(stdout)
	}
	return sc.Err()
}

func runLine(ctx context.Context, s *session.Session, line string) (bool, error) {
	c, err := session.ParseCommand(line)
	if err != nil || c == nil {
		return false, err
	}
	out, err := s.Dispatch(ctx, c)
	if err != nil {
		return false, err
	}
	present(s, out)
	return out.Quit, nil
}

// present prints what a command produced.
func present(s *session.Session, out *session.Outcome) {
	if out.Import != nil {
		printImport(out.Import)
	}
	for _, w := range out.Warnings {
		printWarn("", w)
	}
	if out.ShowTable {
		fmt.Fprintln(stdout, render.Table(out.Rows, tableOptions(s)))
	}
	if out.ShowTags {
		fmt.Fprintln(stdout, render.TagList(s.Registry()))
	}

	switch {
	case out.Message == "":
	case strings.Contains(out.Message, "\n"):
		fmt.Fprintln(stdout, out.Message)
	case out.Import != nil && out.Import.NoNewData,
		out.Export != nil && out.Export.Unchanged:
		printSkip("", out.Message)
	case out.Import != nil, out.Export != nil:
		printOK("", out.Message)
	default:
		printInfo("", out.Message)
	}
}

func printImport(rep *session.ImportReport) {
	printSection("Import")
	for _, f := range rep.Files {
		name := filepath.Base(f.Path)
		if f.NoData {
			printSkip(name, "no data rows")
		} else {
			printOK(name, fmt.Sprintf("%d row(s)", f.Records))
		}
		for _, w := range f.Warnings {
			printWarn(name, w)
		}
	}
	for _, err := range rep.Failures {
		var fe *decode.FileError
		if errors.As(err, &fe) {
			printErr(filepath.Base(fe.Path), fe.Err.Error())
			continue
		}
		printErr("", err.Error())
	}
}

func tableOptions(s *session.Session) render.TableOptions {
	return render.TableOptions{Headers: s.Headers(), Sort: s.Sort(), Selected: s.IsSelected}
}
