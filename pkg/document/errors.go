package document

import "errors"

var (
	// ErrParse indicates a document could not be read or failed validation
	ErrParse = errors.New("parse error")

	// ErrWrite indicates a document could not be serialized or written
	ErrWrite = errors.New("write error")

	// ErrUnsupportedConversion indicates no mapping exists between two kinds
	ErrUnsupportedConversion = errors.New("unsupported conversion")

	// ErrUnknownKind indicates a document kind could not be determined
	ErrUnknownKind = errors.New("unknown document kind")
)
