package tags

import "errors"

var (
	// ErrDuplicateTag indicates the tag name already exists in the registry.
	ErrDuplicateTag = errors.New("tag already exists")
	// ErrEmptyTag indicates the tag name is empty after trimming whitespace.
	ErrEmptyTag = errors.New("tag name is empty")
	// ErrUnknownTag indicates the tag is not in the registry.
	ErrUnknownTag = errors.New("unknown tag")
	// ErrNoTagSelected indicates an operation needed a tag and got none.
	ErrNoTagSelected = errors.New("no tag selected")
	// ErrNoRowsSelected indicates a bulk operation was given no rows.
	ErrNoRowsSelected = errors.New("no rows selected")
)
