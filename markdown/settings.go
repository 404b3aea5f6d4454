package markdown

import (
	"strings"
)

// parseSettings parses directive settings of the form `key=value` separated
// by spaces. Values may be single- or double-quoted to contain spaces, e.g.
// `tests="suite.a suite.b"`. Tokens without '=' are ignored.
func parseSettings(raw string) map[string]string {
	settings := make(map[string]string)

	i := 0
	for i < len(raw) {
		// skip leading spaces
		for i < len(raw) && raw[i] == ' ' {
			i++
		}
		if i >= len(raw) {
			break
		}

		eq := strings.IndexByte(raw[i:], '=')
		sp := strings.IndexByte(raw[i:], ' ')
		if eq < 0 || (sp >= 0 && sp < eq) {
			// bare token, skip it
			if sp < 0 {
				break
			}
			i += sp + 1
			continue
		}

		key := raw[i : i+eq]
		i += eq + 1

		var value string
		if i < len(raw) && (raw[i] == '"' || raw[i] == '\'') {
			quote := raw[i]
			i++
			end := strings.IndexByte(raw[i:], quote)
			if end < 0 {
				value = raw[i:]
				i = len(raw)
			} else {
				value = raw[i : i+end]
				i += end + 1
			}
		} else {
			end := strings.IndexByte(raw[i:], ' ')
			if end < 0 {
				value = raw[i:]
				i = len(raw)
			} else {
				value = raw[i : i+end]
				i += end + 1
			}
		}

		settings[key] = value
	}

	return settings
}

// settingOr returns the named setting or fallback when absent/empty
func settingOr(settings map[string]string, key, fallback string) string {
	if v := settings[key]; v != "" {
		return v
	}
	return fallback
}
