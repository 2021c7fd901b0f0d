package app

import (
	"net/url"
	"strings"
)

// withApplicationName tags connections so they show up by service in
// pg_stat_activity. An explicit application_name is kept.
func withApplicationName(raw, name string) string {
	name = strings.TrimSpace(name)
	trimmed := strings.TrimSpace(raw)
	if name == "" || trimmed == "" {
		return raw
	}

	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		query := parsed.Query()
		if query.Get("application_name") != "" {
			return raw
		}
		query.Set("application_name", name)
		parsed.RawQuery = query.Encode()
		return parsed.String()
	}

	for _, token := range strings.Fields(trimmed) {
		if strings.HasPrefix(token, "application_name=") {
			return raw
		}
	}
	return trimmed + " application_name=" + name
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(token, "dbname="))
		name = strings.Trim(name, `"'`)
		if name != "" {
			return name
		}
	}

	return ""
}
