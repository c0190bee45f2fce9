package render

import (
	"encoding/json"
	"strconv"
	"strings"
)

// IsCircular reads borderRadius (or border_radius) from a block style and
// reports whether it describes a fully rounded image.
func IsCircular(style []byte) bool {
	if len(style) == 0 {
		return false
	}
	var m map[string]any
	if err := json.Unmarshal(style, &m); err != nil {
		return false
	}
	v, ok := m["borderRadius"]
	if !ok {
		v = m["border_radius"]
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t >= 9999
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		switch s {
		case "50%", "100%", "full", "true", "circle":
			return true
		}
		if strings.HasSuffix(s, "px") {
			n, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
			return err == nil && n >= 9999
		}
	}
	return false
}
