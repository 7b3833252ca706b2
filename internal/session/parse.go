package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"
)

// ParseCommand turns one line of the session language into a Command.
// Blank lines and lines starting with '#' yield (nil, nil).
func ParseCommand(line string) (Command, error) {
	words, err := splitWords(line)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 || strings.HasPrefix(words[0], "#") {
		return nil, nil
	}
	verb, args := strings.ToLower(words[0]), words[1:]

	switch verb {
	case "import", "open":
		if len(args) == 0 {
			return nil, usage("import <file>...")
		}
		return ImportFiles{Paths: args}, nil
	case "tags":
		return ListTags{}, nil
	case "addtag":
		if len(args) != 1 {
			return nil, usage(`addtag <name>   (quote names with spaces)`)
		}
		return AddTag{Name: args[0]}, nil
	case "tag", "untag":
		if len(args) != 2 {
			return nil, usage(verb + " <id> <tag>")
		}
		id, err := parseID(args[0])
		if err != nil {
			return nil, err
		}
		if verb == "tag" {
			return AssignTag{Record: id, Tag: args[1]}, nil
		}
		return UnassignTag{Record: id, Tag: args[1]}, nil
	case "select", "deselect":
		if verb == "select" && len(args) == 1 {
			switch strings.ToLower(args[0]) {
			case "all":
				return SelectAll{On: true}, nil
			case "none":
				return SelectAll{On: false}, nil
			}
		}
		if len(args) == 0 {
			return nil, usage(verb + " <id>...")
		}
		ids, err := parseIDs(args)
		if err != nil {
			return nil, err
		}
		return Select{IDs: ids, On: verb == "select"}, nil
	case "bulk":
		if len(args) == 0 {
			return nil, usage("bulk <tag> [id...]")
		}
		ids, err := parseIDs(args[1:])
		if err != nil {
			return nil, err
		}
		return BulkAssign{Tag: args[0], IDs: ids}, nil
	case "sort":
		if len(args) != 1 {
			return nil, usage("sort <column>")
		}
		return ToggleSort{Column: args[0]}, nil
	case "show", "ls":
		return Show{}, nil
	case "find":
		return Find{Query: strings.Join(args, " ")}, nil
	case "export":
		switch len(args) {
		case 1:
			return Export{Tag: args[0]}, nil
		case 2:
			return Export{Tag: args[0], Dir: args[1]}, nil
		}
		return nil, usage("export <tag> [dir]")
	case "help", "?":
		return Help{}, nil
	case "quit", "exit":
		return Quit{}, nil
	}
	return nil, fmt.Errorf("%w %q (try 'help')", ErrUnknownCommand, words[0])
}

func usage(s string) error {
	return fmt.Errorf("%w: %s", ErrUsage, s)
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: %q is not a row id", ErrUsage, s)
	}
	return id, nil
}

func parseIDs(args []string) ([]int, error) {
	var ids []int
	for _, a := range args {
		for _, part := range strings.Split(a, ",") {
			if part == "" {
				continue
			}
			id, err := parseID(part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// splitWords splits line with POSIX shell quoting rules. Shell operators
// (; & | < >) must be quoted; nothing is expanded or executed.
func splitWords(line string) ([]string, error) {
	p := shellwords.NewParser()
	words, err := p.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("%w: unbalanced quotes or parentheses", ErrUsage)
	}
	if p.Position >= 0 {
		return nil, fmt.Errorf("%w: quote words containing ; & | < or >", ErrUsage)
	}
	return words, nil
}
