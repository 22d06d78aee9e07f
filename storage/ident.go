package storage

import (
	"strconv"
	"strings"

	"github.com/poiesic/helpmatch/core"
)

// NextFreeID allocates an identity with core.NextID and steps past any
// identity that is already taken. core.NextID restarts at 1 when a malformed
// identity is present, so without the step a store holding both "VOL_x" and
// "VOL_1" would hand out a duplicate.
func NextFreeID(prefix string, existing []string) string {
	taken := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		taken[id] = struct{}{}
	}

	id := core.NextID(prefix, existing)
	n, _ := strconv.Atoi(strings.TrimPrefix(id, prefix+"_"))
	for {
		if _, ok := taken[id]; !ok {
			return id
		}
		n++
		id = prefix + "_" + strconv.Itoa(n)
	}
}
