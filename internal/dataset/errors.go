package dataset

import (
	"errors"
	"fmt"
)

// ErrNoSubjects indicates that the dataset directory holds no subject directories.
var ErrNoSubjects = errors.New("no subject directories found")

// MissingDataFileError reports a subject directory without its data file.
type MissingDataFileError struct {
	Subject string
	Path    string
}

func (err *MissingDataFileError) Error() string {
	return fmt.Sprintf("subject %s: data file missing at %q", err.Subject, err.Path)
}

// MalformedRowError reports a data row with fewer fields than the configured columns need.
type MalformedRowError struct {
	Path   string
	Line   int
	Fields int
	Want   int
}

func (err *MalformedRowError) Error() string {
	return fmt.Sprintf("%s:%d: row has %d fields, need at least %d", err.Path, err.Line, err.Fields, err.Want)
}

// DecodeError reports bytes that do not decode cleanly in the configured encoding.
type DecodeError struct {
	Path     string
	Line     int
	Encoding string
}

func (err *DecodeError) Error() string {
	return fmt.Sprintf("%s:%d: content is not valid %s", err.Path, err.Line, err.Encoding)
}
