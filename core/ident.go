package core

import (
	"strconv"
	"strings"
)

// NextID allocates the next identifier of the form PREFIX_N.
//
// N is one greater than the highest suffix among existing identifiers that
// carry the prefix. Allocation starts at 1 when no identifier exists and
// resets to 1 when any existing identifier with the prefix is malformed.
// Identifiers belonging to other prefixes and blank entries are ignored.
func NextID(prefix string, existing []string) string {
	highest := 0
	for _, id := range existing {
		if id == "" {
			continue
		}
		prefixPart, suffix, ok := strings.Cut(id, "_")
		if !ok {
			return formatID(prefix, 1)
		}
		if prefixPart != prefix {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil || n < 0 {
			return formatID(prefix, 1)
		}
		if n > highest {
			highest = n
		}
	}
	return formatID(prefix, highest+1)
}

func formatID(prefix string, n int) string {
	return prefix + "_" + strconv.Itoa(n)
}
