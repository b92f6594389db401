// Package trackerrule rewrites tracker announce URLs according to a
// configured list of regex replacements.
package trackerrule

import (
	"regexp"

	"gopkg.in/yaml.v3"
)

// Rule replaces an announce URL matching From with To, using regex capture
// group substitution (e.g. "$1"). An empty substitution result signals that
// the announce URL should be removed entirely.
type Rule struct {
	From *regexp.Regexp `yaml:"from"`
	To   string         `yaml:"to"`
}

// UnmarshalYAML compiles the "from" pattern while decoding.
func (r *Rule) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		From string `yaml:"from"`
		To   string `yaml:"to"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	re, err := regexp.Compile(raw.From)
	if err != nil {
		return err
	}
	r.From = re
	r.To = raw.To
	return nil
}

// Matches always reports true: Rule has exactly one variant today
// (regex replace), but the signature is kept in case other rule kinds are
// ever added alongside it.
func (r Rule) Matches(announce string) bool {
	return true
}

// Apply substitutes the rule's pattern into announce. An empty returned
// string (with ok false) means the announce URL should be dropped.
func (r Rule) Apply(announce string) (result string, ok bool) {
	out := r.From.ReplaceAllString(announce, r.To)
	return out, out != ""
}

// ApplyOne runs every rule in rules against announce in order, stopping
// (and reporting removed=true) as soon as a rule empties the result.
func ApplyOne(announce string, rules []Rule) (result string, removed bool) {
	current := announce
	for _, rule := range rules {
		if !rule.Matches(current) {
			continue
		}
		next, ok := rule.Apply(current)
		if !ok {
			return "", true
		}
		current = next
	}
	return current, false
}

// ApplyList runs ApplyOne over every entry of list, dropping entries that
// get removed.
func ApplyList(list []string, rules []Rule) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if result, removed := ApplyOne(item, rules); !removed {
			out = append(out, result)
		}
	}
	return out
}
