// Package parser converts command strings into Command structs.
// Intentionally dumb: no NLP, just an alias table.
package parser

import (
	"strings"

	"github.com/nathoo/spinwheel/types"
)

var verbAliases = map[string]string{
	// Spin
	"s":    "spin",
	"go":   "spin",
	"roll": "spin",
	"pick": "spin",

	// Add
	"a":   "add",
	"+":   "add",
	"new": "add",
	"put": "add",

	// Remove
	"rm":     "remove",
	"del":    "remove",
	"delete": "remove",
	"drop":   "remove",
	"-":      "remove",

	// List
	"ls":    "list",
	"l":     "list",
	"items": "list",
	"show":  "list",

	// Clear
	"reset": "clear",
	"empty": "clear",

	// Presets
	"preset": "load",
	"use":    "load",

	// Geometry
	"geometry": "layout",
	"geo":      "layout",

	// Cancel
	"stop":  "cancel",
	"abort": "cancel",

	// Status
	"state":  "status",
	"result": "status",
	"st":     "status",
}

// Parse converts a raw command string into a Command. The verb is
// lower-cased; the argument keeps its original case and inner spacing.
func Parse(input string) types.Command {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Command{}
	}

	verb, arg := splitVerb(input)
	verb = strings.ToLower(verb)

	if alias, ok := verbAliases[verb]; ok {
		verb = alias
	}

	return types.Command{Verb: verb, Arg: arg}
}

// splitVerb separates the first word from the rest. "+" and "-" may be
// glued to their argument ("+Titanic").
func splitVerb(input string) (verb, arg string) {
	if (input[0] == '+' || input[0] == '-') && len(input) > 1 && input[1] != ' ' {
		return input[:1], strings.TrimSpace(input[1:])
	}
	idx := strings.IndexAny(input, " \t")
	if idx < 0 {
		return input, ""
	}
	return input[:idx], strings.TrimSpace(input[idx+1:])
}
