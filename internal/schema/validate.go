package schema

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var recognizedKeys = map[string]bool{
	"name":        true,
	"type":        true,
	"category":    true,
	"tags":        true,
	"status":      true,
	"version":     true,
	"related":     true,
	"scripts":     true,
	"aliases":     true,
	"moc":         true,
	"description": true,
	"title":       true,
	"phase":       true,
}

// Validate parses one document into a Record. It never panics and
// never returns an error: input defects become warnings (coercions)
// or errors recorded on the result, and the record is emitted either
// way. Result.HasHeader is false when the text carries no metadata
// block at all.
func Validate(sourcePath, text string) Result {
	header, body, hasHeader := ExtractHeader(text)
	stem := FileStem(sourcePath)

	result := Result{
		HasHeader: hasHeader,
		Record: Record{
			DisplayName: stem,
			ID:          stem,
			Kind:        KindSkill,
			Status:      StatusStable,
			FileStem:    stem,
			SourcePath:  sourcePath,
			Body:        body,
		},
	}
	if !hasHeader {
		return result
	}

	fields := map[string]any{}
	if err := yaml.Unmarshal([]byte(header), &fields); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("malformed header: %v", err))
		result.Record.WikiLinks = wikiLinkTargets(body)
		return result
	}

	record := &result.Record
	warn := func(format string, args ...any) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(format, args...))
	}

	if name, ok := coerceString(fields["name"], warn, "name"); ok && strings.TrimSpace(name) != "" {
		record.DisplayName = strings.TrimSpace(name)
		record.ID = NormalizeID(record.DisplayName)
	} else {
		result.Errors = append(result.Errors, "name is required")
	}

	if raw, present := fields["type"]; present {
		kind, _ := coerceString(raw, warn, "type")
		kind = asciiLower(strings.TrimSpace(kind))
		if knownKinds[kind] {
			record.Kind = kind
		} else {
			warn("unrecognized type %q, using %q", kind, KindSkill)
			record.Kind = KindSkill
		}
	}

	if raw, present := fields["status"]; present {
		status, _ := coerceString(raw, warn, "status")
		status = asciiLower(strings.TrimSpace(status))
		if knownStatuses[status] {
			record.Status = status
		} else {
			warn("unrecognized status %q, using %q", status, StatusStable)
			record.Status = StatusStable
		}
	}

	if raw, present := fields["category"]; present {
		category, _ := coerceString(raw, warn, "category")
		record.Category = strings.TrimSpace(category)
	}

	if raw, present := fields["version"]; present {
		record.Version, _ = coerceString(raw, warn, "version")
	}

	record.Tags = coerceTags(fields["tags"], warn)
	record.Related = coerceStringList(fields["related"], warn, "related")
	record.Scripts = coerceStringList(fields["scripts"], warn, "scripts")
	record.Aliases = coerceStringList(fields["aliases"], warn, "aliases")

	if raw, present := fields["moc"]; present && coerceBool(raw, warn, "moc") {
		record.Kind = KindMOC
	}

	for key, value := range fields {
		if recognizedKeys[key] {
			continue
		}
		if record.Extra == nil {
			record.Extra = map[string]any{}
		}
		record.Extra[key] = value
	}

	record.WikiLinks = wikiLinkTargets(body)
	result.Valid = len(result.Errors) == 0
	return result
}

func wikiLinkTargets(body string) []string {
	links := ExtractWikiLinks(body)
	if len(links) == 0 {
		return nil
	}
	targets := make([]string, 0, len(links))
	for _, link := range links {
		targets = append(targets, link.Target)
	}
	return targets
}

// coerceString accepts strings directly and converts scalars (numbers,
// booleans) with a warning. Anything else yields ("", false).
func coerceString(value any, warn func(string, ...any), key string) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case int:
		warn("coerced %s from number to string", key)
		return strconv.Itoa(v), true
	case int64:
		warn("coerced %s from number to string", key)
		return strconv.FormatInt(v, 10), true
	case float64:
		warn("coerced %s from number to string", key)
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		warn("coerced %s from bool to string", key)
		return strconv.FormatBool(v), true
	default:
		warn("ignored %s: unsupported value of type %T", key, value)
		return "", false
	}
}

// coerceStringList accepts a list of strings or a single string, which
// wraps to a list of one.
func coerceStringList(value any, warn func(string, ...any), key string) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := coerceString(item, warn, key); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		warn("coerced %s from string to list", key)
		return []string{v}
	default:
		if s, ok := coerceString(value, warn, key); ok {
			warn("coerced %s from string to list", key)
			return []string{s}
		}
		return nil
	}
}

// coerceTags is coerceStringList plus comma splitting: a single string
// containing commas becomes one tag per comma-separated segment.
func coerceTags(value any, warn func(string, ...any)) []string {
	s, isString := value.(string)
	if !isString || !strings.Contains(s, ",") {
		return coerceStringList(value, warn, "tags")
	}
	warn("coerced tags from comma-separated string to list")
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.TrimSpace(part))
	}
	return out
}

func coerceBool(value any, warn func(string, ...any), key string) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		switch asciiLower(strings.TrimSpace(v)) {
		case "true":
			warn("coerced %s from string to bool", key)
			return true
		case "false":
			warn("coerced %s from string to bool", key)
			return false
		}
	}
	warn("ignored %s: not a boolean", key)
	return false
}
