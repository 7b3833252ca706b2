package view

import "errors"

var (
	// ErrNoData indicates there are no records to export.
	ErrNoData = errors.New("no data available")
	// ErrNoMatchingRows indicates no record carries the export tag.
	ErrNoMatchingRows = errors.New("no rows carry the tag")
)
