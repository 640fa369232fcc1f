package utils

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
)

// HashFilters derives a short stable cache-key suffix from a filter struct.
// Filters marshal deterministically (struct field order), so equal filters
// always land on the same key.
func HashFilters(filters interface{}) string {
	data, err := json.Marshal(filters)
	if err != nil {
		return "default"
	}
	h := fnv.New64a()
	h.Write(data)
	return fmt.Sprintf("%x", h.Sum64())
}
