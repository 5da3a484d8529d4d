package layout

import (
	"hash/fnv"
	"strings"
)

// OrdinalSuffix returns the part of id after its last '-', or id itself.
func OrdinalSuffix(id string) string {
	if i := strings.LastIndexByte(id, '-'); i >= 0 && i < len(id)-1 {
		return id[i+1:]
	}
	return id
}

// AccentIndex maps id onto one of n palette slots. The result only depends
// on the id, never on the position of the descriptor.
func AccentIndex(id string, n int) int {
	if n <= 0 {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(OrdinalSuffix(id)))
	return int(h.Sum32() % uint32(n))
}
