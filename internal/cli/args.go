package cli

import (
	"fmt"
	"strconv"
)

// parseIndex parses a list index argument.
func parseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, WrapExitError(ExitCommandError, ErrCodeUsage, fmt.Sprintf("invalid index %q", arg), err)
	}
	return i, nil
}
