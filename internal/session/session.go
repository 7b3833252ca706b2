// Package session is the controller that owns one in-memory tagging session:
// the record set, the tag registry, the sort state and the row selection.
// All mutations go through Dispatch.
package session

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kamusis/tagsheet/internal/decode"
	"github.com/kamusis/tagsheet/internal/export"
	"github.com/kamusis/tagsheet/internal/record"
	"github.com/kamusis/tagsheet/internal/tags"
	"github.com/kamusis/tagsheet/internal/view"
)

// Options configures a new Session.
type Options struct {
	AmountColumn     string
	BuiltinTags      []string
	ExportDir        string
	OverwriteExports bool
	DecodeWorkers    int
	Logger           *zap.Logger
}

// Session is not safe for concurrent use; one event loop drives it.
type Session struct {
	id       string
	opts     Options
	log      *zap.Logger
	decoder  *decode.Decoder
	store    *record.Store
	registry *tags.Registry
	sort     view.SortState
	selected map[int]bool
}

// Outcome is what a command produced, for the caller to present.
type Outcome struct {
	Message  string
	Warnings []string

	Import *ImportReport
	Export *ExportReport

	Rows      []view.Row // set when the command wants the table shown
	ShowTable bool
	ShowTags  bool
	Quit      bool
}

// FileReport is the per-file part of an import.
type FileReport struct {
	Path           string
	Records        int
	NoData         bool
	HeaderMismatch bool
	Warnings       []string
}

// ImportReport summarises one ImportFiles command.
type ImportReport struct {
	BatchID   string
	Files     []FileReport // successfully decoded files, in selection order
	Failures  []error      // *decode.FileError, in selection order
	Added     int
	NoNewData bool // nothing was added and nothing failed
}

// ExportReport summarises one Export command.
type ExportReport struct {
	Tag       string
	FileName  string
	Path      string
	Rows      int
	Unchanged bool
	Renamed   bool
}

// New returns an empty session.
func New(opts Options) *Session {
	if opts.AmountColumn == "" {
		opts.AmountColumn = "Amount"
	}
	if opts.BuiltinTags == nil {
		opts.BuiltinTags = tags.DefaultBuiltins
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.NewString()
	log = log.With(zap.String("session", id))
	return &Session{
		id:       id,
		opts:     opts,
		log:      log,
		decoder:  decode.New(log),
		store:    record.NewStore(opts.AmountColumn),
		registry: tags.NewRegistry(opts.BuiltinTags),
		selected: make(map[int]bool),
	}
}

// ID returns the session's unique id (used to correlate log lines).
func (s *Session) ID() string { return s.id }

// Headers returns the established header set.
func (s *Session) Headers() []string { return s.store.Headers() }

// Sort returns the current sort state.
func (s *Session) Sort() view.SortState { return s.sort }

// Registry exposes the tag registry for read-only presentation.
func (s *Session) Registry() *tags.Registry { return s.registry }

// Len returns the number of records in the session.
func (s *Session) Len() int { return s.store.Len() }

// Selected returns the marked record ids, ascending.
func (s *Session) Selected() []int {
	ids := make([]int, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// IsSelected reports whether the record is marked.
func (s *Session) IsSelected(id int) bool { return s.selected[id] }

// Records returns the records in display order.
func (s *Session) Records() []record.Record {
	return view.Sorted(s.store.Records(), s.sort, s.store.AmountColumn())
}

// Rows returns the display projection in display order.
func (s *Session) Rows() []view.Row {
	return view.Project(s.Records(), s.store.Headers(), s.store.AmountColumn(), s.registry)
}

// Dispatch runs one command. On error the session is unchanged.
func (s *Session) Dispatch(ctx context.Context, cmd Command) (*Outcome, error) {
	s.log.Debug("dispatch", zap.String("command", cmd.commandName()))
	switch c := cmd.(type) {
	case ImportFiles:
		return s.importFiles(ctx, c)
	case ListTags:
		return &Outcome{ShowTags: true}, nil
	case AddTag:
		name, err := s.registry.AddTag(c.Name)
		if err != nil {
			return nil, err
		}
		return &Outcome{Message: fmt.Sprintf("added tag %q", name), ShowTags: true}, nil
	case AssignTag:
		return s.assign(c)
	case UnassignTag:
		return s.unassign(c)
	case Select:
		return s.selectRows(c)
	case SelectAll:
		return s.selectAll(c), nil
	case BulkAssign:
		return s.bulkAssign(c)
	case ToggleSort:
		return s.toggleSort(c), nil
	case Show:
		return &Outcome{Rows: s.Rows(), ShowTable: true}, nil
	case Find:
		rows := view.Find(s.Rows(), c.Query)
		return &Outcome{
			Message:   fmt.Sprintf("%d of %d row(s) match", len(rows), s.store.Len()),
			Rows:      rows,
			ShowTable: true,
		}, nil
	case Export:
		return s.export(c)
	case Help:
		return &Outcome{Message: HelpText}, nil
	case Quit:
		return &Outcome{Quit: true}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
}

func (s *Session) importFiles(ctx context.Context, c ImportFiles) (*Outcome, error) {
	if len(c.Paths) == 0 {
		return nil, ErrNoFilesSelected
	}

	rep := &ImportReport{BatchID: uuid.NewString()}
	log := s.log.With(zap.String("batch", rep.BatchID))
	log.Info("import started", zap.Int("files", len(c.Paths)))

	out := &Outcome{Import: rep}
	for _, res := range s.decoder.DecodeAll(ctx, c.Paths, s.opts.DecodeWorkers) {
		if res.Err != nil {
			rep.Failures = append(rep.Failures, res.Err)
			continue
		}
		b := res.Batch
		fr := FileReport{Path: b.Path, Warnings: b.Warnings}
		ir := s.store.ImportBatch(b.Records, b.Headers)
		switch {
		case ir.NoData:
			fr.NoData = true
			log.Warn("file contained no data", zap.String("file", b.Path))
		default:
			fr.Records = len(ir.Records)
			fr.HeaderMismatch = ir.HeaderMismatch
			rep.Added += fr.Records
		}
		if fr.HeaderMismatch {
			log.Warn("header mismatch",
				zap.String("file", b.Path),
				zap.Strings("established", s.store.Headers()),
				zap.Strings("file_headers", b.Headers))
			out.Warnings = append(out.Warnings, fmt.Sprintf(
				"headers in %s differ from existing data; using the original headers", filepath.Base(b.Path)))
		}
		rep.Files = append(rep.Files, fr)
	}

	if rep.Added > 0 {
		s.sort = view.SortState{}
		clear(s.selected)
		out.Rows = s.Rows()
		out.ShowTable = true
		out.Message = fmt.Sprintf("imported %d row(s); %d in session", rep.Added, s.store.Len())
	} else if len(rep.Failures) == 0 {
		rep.NoNewData = true
		out.Message = "no new data found in the selected files"
	}
	log.Info("import finished",
		zap.Int("added", rep.Added),
		zap.Int("failed", len(rep.Failures)),
		zap.Int("total", s.store.Len()))
	return out, nil
}

func (s *Session) requireRecord(id int) error {
	if _, ok := s.store.Lookup(id); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownRecord, id)
	}
	return nil
}

func (s *Session) assign(c AssignTag) (*Outcome, error) {
	if err := s.requireRecord(c.Record); err != nil {
		return nil, err
	}
	changed, err := s.registry.Assign(c.Record, c.Tag)
	if err != nil {
		return nil, err
	}
	msg := fmt.Sprintf("row %d tagged %q", c.Record, c.Tag)
	if !changed {
		msg = fmt.Sprintf("row %d already tagged %q", c.Record, c.Tag)
	}
	return &Outcome{Message: msg}, nil
}

func (s *Session) unassign(c UnassignTag) (*Outcome, error) {
	if err := s.requireRecord(c.Record); err != nil {
		return nil, err
	}
	msg := fmt.Sprintf("removed %q from row %d", c.Tag, c.Record)
	if !s.registry.Unassign(c.Record, c.Tag) {
		msg = fmt.Sprintf("row %d does not carry %q", c.Record, c.Tag)
	}
	return &Outcome{Message: msg}, nil
}

func (s *Session) selectRows(c Select) (*Outcome, error) {
	if len(c.IDs) == 0 {
		return nil, fmt.Errorf("%w: select <id>...", ErrUsage)
	}
	for _, id := range c.IDs {
		if err := s.requireRecord(id); err != nil {
			return nil, err
		}
	}
	for _, id := range c.IDs {
		if c.On {
			s.selected[id] = true
		} else {
			delete(s.selected, id)
		}
	}
	return &Outcome{Message: fmt.Sprintf("%d row(s) selected", len(s.selected))}, nil
}

func (s *Session) selectAll(c SelectAll) *Outcome {
	clear(s.selected)
	if c.On {
		for _, r := range s.store.Records() {
			s.selected[r.Index] = true
		}
	}
	return &Outcome{Message: fmt.Sprintf("%d row(s) selected", len(s.selected))}
}

func (s *Session) bulkAssign(c BulkAssign) (*Outcome, error) {
	if c.Tag == "" {
		return nil, tags.ErrNoTagSelected
	}
	ids := c.IDs
	if len(ids) == 0 {
		ids = s.Selected()
	}
	if len(ids) == 0 {
		return nil, tags.ErrNoRowsSelected
	}
	for _, id := range ids {
		if err := s.requireRecord(id); err != nil {
			return nil, err
		}
	}
	n, err := s.registry.BulkAssign(ids, c.Tag)
	if err != nil {
		return nil, err
	}
	return &Outcome{Message: fmt.Sprintf("tagged %d row(s) %q (%d already had it)", n, c.Tag, len(ids)-n)}, nil
}

func (s *Session) toggleSort(c ToggleSort) *Outcome {
	next, ok := s.sort.Toggle(s.store.Headers(), c.Column)
	if !ok {
		return &Outcome{Message: fmt.Sprintf("%q is not a data column; sort unchanged", c.Column)}
	}
	s.sort = next
	clear(s.selected)
	return &Outcome{
		Message:   fmt.Sprintf("sorted by %s (%s)", next.Column, next.Direction),
		Rows:      s.Rows(),
		ShowTable: true,
	}
}

func (s *Session) export(c Export) (*Outcome, error) {
	exp, err := view.BuildExport(s.Records(), s.store.Headers(), s.store.AmountColumn(), s.registry, c.Tag)
	if err != nil {
		return nil, err
	}
	data, err := exp.Bytes()
	if err != nil {
		return nil, fmt.Errorf("cannot encode export: %w", err)
	}
	dir := c.Dir
	if strings.TrimSpace(dir) == "" {
		dir = s.opts.ExportDir
	}
	res, err := export.Write(dir, exp.FileName, data, export.Options{Overwrite: s.opts.OverwriteExports})
	if err != nil {
		return nil, err
	}
	s.log.Info("export written",
		zap.String("tag", c.Tag),
		zap.String("path", res.Path),
		zap.Int("rows", len(exp.Rows)),
		zap.Bool("unchanged", res.Unchanged))

	rep := &ExportReport{
		Tag:       c.Tag,
		FileName:  exp.FileName,
		Path:      res.Path,
		Rows:      len(exp.Rows),
		Unchanged: res.Unchanged,
		Renamed:   res.Renamed,
	}
	msg := fmt.Sprintf("exported %d row(s) tagged %q to %s", rep.Rows, c.Tag, res.Path)
	if res.Unchanged {
		msg = fmt.Sprintf("%s is already up to date (%d row(s))", res.Path, rep.Rows)
	}
	return &Outcome{Message: msg, Export: rep}, nil
}
