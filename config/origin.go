package config

import (
	"strconv"
)

// Origin describes where a value came from.
type Origin struct {
	description string
	filename    string
	line        int
}

// NewOrigin returns an origin with a free-form description, e.g. "env var HOME".
func NewOrigin(description string) *Origin {
	return &Origin{description: description}
}

// NewFileOrigin returns an origin pointing at a line of a file. A line below 1 means unknown.
func NewFileOrigin(filename string, line int) *Origin {
	return &Origin{filename: filename, line: line}
}

// WithLine returns a copy of the origin pointing at another line.
func (o *Origin) WithLine(line int) *Origin {
	if o == nil {
		return &Origin{line: line}
	}

	out := *o
	out.line = line

	return &out
}

// Filename returns the source file name, empty for synthetic origins.
func (o *Origin) Filename() string {
	if o == nil {
		return ""
	}

	return o.filename
}

// Line returns the line number, or -1 when unknown.
func (o *Origin) Line() int {
	if o == nil || o.line < 1 {
		return -1
	}

	return o.line
}

// Description renders the origin for diagnostics.
func (o *Origin) Description() string {
	if o == nil {
		return "unknown origin"
	}

	name := o.description
	if name == "" {
		name = o.filename
	}

	if name == "" {
		name = "unknown origin"
	}

	if o.line > 0 {
		return name + ": " + strconv.Itoa(o.line)
	}

	return name
}

func (o *Origin) String() string {
	return o.Description()
}
