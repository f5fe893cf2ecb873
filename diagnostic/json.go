package diagnostic

import (
	jsonv2 "github.com/go-json-experiment/json"
)

// MarshalJSON renders the collected diagnostics as a JSON array, using the
// experimental json/v2 API in place of encoding/json so arbitrary future
// fields added to Diagnostic round-trip without bespoke struct tags.
func (c *Collector) MarshalJSON() ([]byte, error) {
	return jsonv2.Marshal(c.All())
}
