package config

import (
	"fmt"
	"sort"
	"strings"
)

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	top, sections, order := splitSections(GetConfigOptions())
	lines := []string{"# Fire Sale configuration (TOML)"}
	for _, o := range top {
		lines = append(lines, optionLines(o)...)
	}
	for _, section := range order {
		lines = append(lines, "["+section+"]")
		for _, o := range sections[section] {
			lines = append(lines, optionLines(o)...)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// UpdateTOML merges defaults into an existing TOML string and comments out
// unknown keys. Missing keys of an existing table are added to that table.
// It reports whether anything changed.
func UpdateTOML(existing string) (string, bool) {
	opts := GetConfigOptions()
	known := make(map[string]bool, len(opts))
	for _, o := range opts {
		known[o.Key] = true
	}

	seen := make(map[string]bool)
	// ends holds, per table, the index in out just past its last line.
	ends := map[string]int{}
	section := ""
	lines := strings.Split(existing, "\n")
	out := make([]string, 0, len(lines))
	changed := false
	for _, line := range lines {
		trim := strings.TrimSpace(line)
		switch {
		case trim == "" || strings.HasPrefix(trim, "#") || strings.HasPrefix(trim, ";"):
		case strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]"):
			section = strings.TrimSpace(trim[1 : len(trim)-1])
		default:
			key, ok := parseTOMLKey(line)
			if !ok {
				break
			}
			if section != "" {
				key = section + "." + key
			}
			seen[key] = true
			if known[key] {
				break
			}
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			out = append(out,
				indent+"# OUTDATED: option removed from config schema",
				indent+"# "+strings.TrimLeft(line, " \t"))
			ends[section] = len(out)
			changed = true
			continue
		}
		out = append(out, line)
		if trim != "" {
			ends[section] = len(out)
		}
	}

	missing := make([]ConfigOption, 0)
	for _, o := range opts {
		if !seen[o.Key] {
			missing = append(missing, o)
		}
	}
	if len(missing) == 0 {
		return strings.Join(out, "\n"), changed
	}

	top, sections, order := splitSections(missing)
	inserts := map[int][]string{}
	for _, o := range top {
		inserts[ends[""]] = append(inserts[ends[""]], optionLines(o)...)
	}
	var fresh []string
	for _, s := range order {
		at, exists := ends[s]
		if !exists {
			fresh = append(fresh, "["+s+"]")
		}
		for _, o := range sections[s] {
			if exists {
				inserts[at] = append(inserts[at], optionLines(o)...)
			} else {
				fresh = append(fresh, optionLines(o)...)
			}
		}
	}

	merged := make([]string, 0, len(out)+len(fresh)+8)
	for i := 0; i <= len(out); i++ {
		merged = append(merged, inserts[i]...)
		if i < len(out) {
			merged = append(merged, out[i])
		}
	}
	if len(fresh) > 0 {
		merged = append(merged, "", "# Added by config update")
		merged = append(merged, fresh...)
	}
	return strings.Join(merged, "\n"), true
}

// splitSections groups dotted keys by their first segment, keeping order.
func splitSections(opts []ConfigOption) (top []ConfigOption, sections map[string][]ConfigOption, order []string) {
	sections = make(map[string][]ConfigOption)
	for _, o := range opts {
		section, key, ok := strings.Cut(o.Key, ".")
		if !ok {
			top = append(top, o)
			continue
		}
		if _, exists := sections[section]; !exists {
			order = append(order, section)
		}
		sections[section] = append(sections[section], ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}
	return top, sections, order
}

func parseTOMLKey(line string) (string, bool) {
	key, _, ok := strings.Cut(line, "=")
	if !ok {
		return "", false
	}
	key = strings.TrimSpace(key)
	if key == "" || strings.HasPrefix(key, "[") || strings.HasPrefix(key, "\"") || strings.HasPrefix(key, "'") {
		return "", false
	}
	return key, true
}

// optionLines renders one option with its comment and a trailing blank line.
func optionLines(o ConfigOption) []string {
	var lines []string
	if o.Comment != "" {
		lines = append(lines, "# "+o.Comment)
	}
	return append(lines, o.Key+" = "+tomlValue(o.Default), "")
}

func tomlValue(value any) string {
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case bool, int, int64, float64:
		return fmt.Sprintf("%v", v)
	case []string:
		quoted := make([]string, 0, len(v))
		for _, s := range v {
			quoted = append(quoted, fmt.Sprintf("%q", s))
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s = %q", k, fmt.Sprint(v[k])))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%q", fmt.Sprint(v))
	}
}
