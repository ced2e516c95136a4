package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"todolist/internal/exitcode"
)

// ErrItemRefRequired indicates no item number was provided.
var ErrItemRefRequired = errors.New("item number required")

// ParseItemRef parses the item number from the first argument.
// Item numbers are 1-based positions in the whole list, as printed in the
// first column of the page.
func ParseItemRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrItemRefRequired
	}

	ref := args[0]
	if !isAllDigits(ref) {
		return 0, fmt.Errorf("invalid item number: %s", ref)
	}
	num, err := strconv.Atoi(ref)
	if err != nil || num < 1 {
		return 0, fmt.Errorf("invalid item number: %s", ref)
	}
	return num, nil
}

// parseItemArg parses the item number and reports a failure on errOut.
func parseItemArg(args []string, errOut io.Writer) (int, int) {
	num, err := ParseItemRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return 0, exitcode.UserError
	}
	return num, exitcode.Success
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
