package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	NoSuchCommand ErrorKind = iota
	InsufficientArgs
	BadEnumArg
	ArgParseError
)

// ParseError describes why command text was rejected. Which fields are set
// depends on Kind:
//
//   - NoSuchCommand: Command
//   - InsufficientArgs: Command, Hint (may be empty)
//   - BadEnumArg: Arg, Accept, Optional
//   - ArgParseError: Arg, Message
type ParseError struct {
	Kind     ErrorKind
	Command  string
	Hint     string
	Arg      string
	Accept   []string
	Optional bool
	Message  string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case NoSuchCommand:
		return fmt.Sprintf(`No such command "%s"`, e.Command)
	case InsufficientArgs:
		if e.Hint == "" {
			return fmt.Sprintf(`"%s" requires additional arguments`, e.Command)
		}
		return fmt.Sprintf(`"%s" requires additional arguments: %s`, e.Command, e.Hint)
	case BadEnumArg:
		accept := strings.Join(e.Accept, "|")
		if e.Optional {
			return fmt.Sprintf(`Argument "%s" should be one of %s or be omitted`, e.Arg, accept)
		}
		return fmt.Sprintf(`Argument "%s" should be one of %s`, e.Arg, accept)
	case ArgParseError:
		return fmt.Sprintf(`Error with argument "%s": %s`, e.Arg, e.Message)
	default:
		return "invalid command"
	}
}

func errNoSuchCommand(name string) *ParseError {
	return &ParseError{Kind: NoSuchCommand, Command: name}
}

func errInsufficientArgs(name, hint string) *ParseError {
	return &ParseError{Kind: InsufficientArgs, Command: name, Hint: hint}
}

func errBadEnum(arg string, optional bool, accept ...string) *ParseError {
	return &ParseError{Kind: BadEnumArg, Arg: arg, Accept: accept, Optional: optional}
}

func errArgParse(arg string, err error) *ParseError {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		err = numErr.Err
	}
	return &ParseError{Kind: ArgParseError, Arg: arg, Message: err.Error()}
}
