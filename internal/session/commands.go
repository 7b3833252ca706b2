package session

// Command is a typed request against the session. Every user action (a line
// typed at the prompt, a flag on a one-shot command) becomes one of these.
type Command interface {
	commandName() string
}

// ImportFiles decodes and merges files, in the given order.
type ImportFiles struct{ Paths []string }

// ListTags shows the tag universe.
type ListTags struct{}

// AddTag adds a tag to the universe.
type AddTag struct{ Name string }

// AssignTag puts Tag on one record.
type AssignTag struct {
	Record int
	Tag    string
}

// UnassignTag removes Tag from one record.
type UnassignTag struct {
	Record int
	Tag    string
}

// Select marks (On) or unmarks records for bulk tagging.
type Select struct {
	IDs []int
	On  bool
}

// SelectAll marks or unmarks every record.
type SelectAll struct{ On bool }

// BulkAssign puts Tag on IDs, or on the current selection when IDs is empty.
type BulkAssign struct {
	Tag string
	IDs []int
}

// ToggleSort is a click on a column header.
type ToggleSort struct{ Column string }

// Show renders the current view.
type Show struct{}

// Find renders the rows matching every word of Query.
type Find struct{ Query string }

// Export writes the rows carrying Tag to a CSV file in Dir (the configured
// export directory when empty).
type Export struct {
	Tag string
	Dir string
}

// Help lists the command language.
type Help struct{}

// Quit ends the session.
type Quit struct{}

func (ImportFiles) commandName() string { return "import" }
func (ListTags) commandName() string    { return "tags" }
func (AddTag) commandName() string      { return "addtag" }
func (AssignTag) commandName() string   { return "tag" }
func (UnassignTag) commandName() string { return "untag" }
func (Select) commandName() string      { return "select" }
func (SelectAll) commandName() string   { return "select" }
func (BulkAssign) commandName() string  { return "bulk" }
func (ToggleSort) commandName() string  { return "sort" }
func (Show) commandName() string        { return "show" }
func (Find) commandName() string        { return "find" }
func (Export) commandName() string      { return "export" }
func (Help) commandName() string        { return "help" }
func (Quit) commandName() string        { return "quit" }

// HelpText is the command summary printed by Help.
const HelpText = `Commands:
  import <file>...        add CSV/XLSX files to the session
  show                    print the table
  sort <column>           sort by column; repeat to flip direction
  find <words>...         print rows containing every word
  tags                    list available tags (* = custom)
  addtag <name>           create a tag
  tag <id> <tag>          tag one row
  untag <id> <tag>        remove a tag from one row
  select <id>...|all|none mark rows for bulk tagging
  deselect <id>...        unmark rows
  bulk <tag> [id...]      tag the given rows, or the marked rows
  export <tag> [dir]      write rows carrying <tag> to CSV
  help                    this text
  quit                    end the session
Quote words that contain spaces or ; & | < >: addtag "Home Office"`
