// Package cli is the interactive command shell. It owns prompting, retry
// loops and rendering; all budget state lives in the session it drives.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"budgetbook/internal/core"
	"budgetbook/internal/importer"
	"budgetbook/internal/log"
	"budgetbook/internal/report"
	"budgetbook/internal/session"
)

const helpText = `Commands:
  create <name>        create a new budget (prompts for description and period)
  load <name>          load a stored budget
  save                 save the active budget
  budgets              list stored budgets
  enter <planned|actual>  add one entry (prompts for the fields)
  report [start end]   variance report, MM/DD/YY range (default: whole period)
  export <file.xlsx>   write the whole-period report to an Excel workbook
  upload <file>        bulk import entries from a .xlsx or .csv file
  print                show the active budget and its entries
  help                 this text
  quit                 exit`

// Shell runs the interactive command loop against a session.
type Shell struct {
	session *session.Session
	in      *bufio.Scanner
	out     io.Writer
	logger  *log.Logger
}

func New(sess *session.Session, in io.Reader, out io.Writer, logger *log.Logger) *Shell {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Shell{
		session: sess,
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  logger.WithComponent("shell"),
	}
}

// Run reads commands until quit or end of input. Commands are matched on
// their first word; "q" and anything starting with it quits.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "budgetbook - type 'help' for commands")
	for {
		line, ok := s.prompt("> ")
		if !ok {
			return nil
		}
		if line == "" {
			continue
		}
		cmd, arg := splitCommand(line)
		switch {
		case cmd == "create":
			s.cmdCreate(arg)
		case cmd == "load":
			s.cmdLoad(ctx, arg)
		case cmd == "save":
			s.cmdSave(ctx)
		case cmd == "budgets":
			s.cmdBudgets(ctx)
		case cmd == "enter":
			s.cmdEnter(arg)
		case cmd == "report":
			s.cmdReport(arg)
		case cmd == "export":
			s.cmdExport(arg)
		case cmd == "upload":
			s.cmdUpload(ctx, arg)
		case cmd == "print":
			s.cmdPrint()
		case cmd == "help":
			fmt.Fprintln(s.out, helpText)
		case strings.HasPrefix(cmd, "q"):
			fmt.Fprintln(s.out, "Bye!")
			return nil
		default:
			fmt.Fprintf(s.out, "Unknown command %q. Type 'help' for commands.\n", cmd)
		}
	}
}

func splitCommand(line string) (cmd, arg string) {
	parts := strings.SplitN(line, " ", 2)
	cmd = strings.ToLower(strings.TrimSpace(parts[0]))
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg
}

// prompt prints a label and reads one trimmed line. ok is false at end of
// input.
func (s *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// promptValid re-prompts until validate accepts the input or the user
// enters a blank line to cancel. The retry loop lives here so the core can
// stay a pure reject-invalid-input contract.
func (s *Shell) promptValid(label string, validate func(string) error) (string, bool) {
	for {
		v, ok := s.prompt(label)
		if !ok || v == "" {
			return "", false
		}
		if err := validate(v); err != nil {
			fmt.Fprintf(s.out, "%v - try again (blank line cancels)\n", err)
			continue
		}
		return v, true
	}
}

func (s *Shell) cmdCreate(name string) {
	if name == "" {
		fmt.Fprintln(s.out, "Usage: create <name>")
		return
	}
	description, ok := s.prompt("Description: ")
	if !ok {
		return
	}
	dateOK := func(v string) error {
		_, err := core.ParseDate(v)
		return err
	}
	start, ok := s.promptValid("Start date (MM/DD/YY): ", dateOK)
	if !ok {
		fmt.Fprintln(s.out, "Cancelled.")
		return
	}
	for {
		end, ok := s.promptValid("End date (MM/DD/YY): ", dateOK)
		if !ok {
			fmt.Fprintln(s.out, "Cancelled.")
			return
		}
		b, err := s.session.Create(name, description, start, end)
		if err != nil {
			fmt.Fprintf(s.out, "%v - try again (blank line cancels)\n", err)
			continue
		}
		fmt.Fprintf(s.out, "Created budget %q (%s to %s).\n", b.Name, b.Start, b.End)
		return
	}
}

func (s *Shell) cmdLoad(ctx context.Context, name string) {
	if name == "" {
		fmt.Fprintln(s.out, "Usage: load <name>")
		return
	}
	b, err := s.session.Load(ctx, name)
	if err != nil {
		fmt.Fprintf(s.out, "%v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Loaded budget %q with %d entries.\n", b.Name, len(b.Entries))
}

func (s *Shell) cmdSave(ctx context.Context) {
	if err := s.session.Save(ctx); err != nil {
		fmt.Fprintf(s.out, "%v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Saved budget %q.\n", s.session.Budget().Name)
}

func (s *Shell) cmdBudgets(ctx context.Context) {
	names, err := s.session.Names(ctx)
	if err != nil {
		fmt.Fprintf(s.out, "%v\n", err)
		return
	}
	if len(names) == 0 {
		fmt.Fprintln(s.out, "No stored budgets.")
		return
	}
	for _, name := range names {
		fmt.Fprintln(s.out, name)
	}
}

func (s *Shell) cmdEnter(entryType string) {
	if s.session.Budget() == nil {
		fmt.Fprintln(s.out, "Make a budget first!")
		return
	}
	if entryType == "" {
		fmt.Fprintln(s.out, "Usage: enter <planned|actual>")
		return
	}
	if _, err := core.ParseEntryType(entryType); err != nil {
		fmt.Fprintf(s.out, "%v\n", err)
		return
	}
	kind, ok := s.prompt("Kind (income/expense): ")
	if !ok {
		return
	}
	category, ok := s.prompt("Category: ")
	if !ok {
		return
	}
	b := s.session.Budget()
	date, ok := s.promptValid(fmt.Sprintf("Date (%s to %s): ", b.Start, b.End), func(v string) error {
		d, err := core.ParseDate(v)
		if err != nil {
			return err
		}
		if !d.Within(b.Start, b.End) {
			return fmt.Errorf("%w: %s outside [%s, %s]", core.ErrDateOutOfRange, d, b.Start, b.End)
		}
		return nil
	})
	if !ok {
		fmt.Fprintln(s.out, "Cancelled.")
		return
	}
	amount, ok := s.promptValid("Amount: ", func(v string) error {
		_, err := core.ParseAmount(v)
		return err
	})
	if !ok {
		fmt.Fprintln(s.out, "Cancelled.")
		return
	}
	e, err := s.session.AddEntry(entryType, kind, category, date, amount)
	if err != nil {
		fmt.Fprintf(s.out, "%v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Added %s %s entry: %s %s on %s.\n",
		e.Type, e.Kind, e.Category, e.Amount, e.Date)
}

func (s *Shell) cmdReport(arg string) {
	var (
		r   report.Report
		err error
	)
	if arg == "" {
		r, err = s.session.ReportFull()
	} else {
		fields := strings.Fields(arg)
		if len(fields) != 2 {
			fmt.Fprintln(s.out, "Usage: report [start end]")
			return
		}
		r, err = s.session.Report(fields[0], fields[1])
	}
	if err != nil {
		fmt.Fprintf(s.out, "%v\n", err)
		return
	}
	RenderReport(s.out, r)
}

func (s *Shell) cmdExport(path string) {
	if path == "" {
		fmt.Fprintln(s.out, "Usage: export <file.xlsx>")
		return
	}
	r, err := s.session.ReportFull()
	if err != nil {
		fmt.Fprintf(s.out, "%v\n", err)
		return
	}
	if err := report.WriteXLSX(r, path); err != nil {
		fmt.Fprintf(s.out, "%v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Wrote report to %s.\n", path)
}

func (s *Shell) cmdUpload(ctx context.Context, path string) {
	if s.session.Budget() == nil {
		fmt.Fprintln(s.out, "Make a budget first!")
		return
	}
	if path == "" {
		fmt.Fprintln(s.out, "Usage: upload <file.xlsx|file.csv>")
		return
	}
	var src importer.RowSource
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		src = importer.NewXLSXSource(path, "")
	case ".csv":
		src = importer.NewCSVSource(path)
	default:
		fmt.Fprintln(s.out, "Unsupported file type; use .xlsx or .csv.")
		return
	}
	result, err := importer.Import(ctx, s.session.Budget(), src, s.logger)
	if err != nil {
		fmt.Fprintf(s.out, "%v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Imported %d entries from %s.\n", result.Added, result.Source)
	for _, f := range result.Failed {
		fmt.Fprintf(s.out, "  skipped %v\n", f)
	}
}

func (s *Shell) cmdPrint() {
	b := s.session.Budget()
	if b == nil {
		fmt.Fprintln(s.out, "Make a budget first!")
		return
	}
	RenderBudget(s.out, b)
}
