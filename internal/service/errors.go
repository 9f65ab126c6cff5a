package service

import "errors"

var (
	ErrUnknownTemplate  = errors.New("unknown message template")
	ErrEmptyRecipients  = errors.New("bulk send selected no recipients")
	ErrInvalidFilter    = errors.New("invalid bulk recipient selection")
	ErrInvalidLead      = errors.New("invalid lead")
	ErrInvalidSequence  = errors.New("invalid sequence")
	ErrSequenceInactive = errors.New("sequence is not active")
)
