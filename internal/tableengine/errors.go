package tableengine

import "errors"

var (
	ErrNotEditable      = errors.New("column is not editable")
	ErrNotHideable      = errors.New("column cannot be hidden")
	ErrInvalidNumber    = errors.New("invalid number")
	ErrInvalidOption    = errors.New("value is not one of the column options")
	ErrRecordOutOfRange = errors.New("record index out of range")
	ErrUnknownColumn    = errors.New("unknown column")
)
