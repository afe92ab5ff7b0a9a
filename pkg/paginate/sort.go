package paginate

import (
	"fmt"
	"strings"
)

// CreatedAtField is the store's creation-timestamp field. The sort key
// "date" is remapped to it.
const CreatedAtField = "createdAt"

// SortField is one key of a multi-key sort, in priority order.
type SortField struct {
	Key        string
	Descending bool
}

// ParseSort parses a comma-separated list of key:direction pairs. Direction
// "desc" sorts descending; anything else, including absent, sorts ascending.
// An empty key is a malformed directive and rejected before any I/O.
func ParseSort(spec string) ([]SortField, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}
	var fields []SortField
	for _, pair := range strings.Split(spec, ",") {
		key, direction, _ := strings.Cut(pair, ":")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("malformed sort directive %q: empty key", spec)
		}
		if key == "date" {
			key = CreatedAtField
		}
		fields = append(fields, SortField{
			Key:        key,
			Descending: strings.TrimSpace(direction) == "desc",
		})
	}
	return fields, nil
}
