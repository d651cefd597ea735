// Package resolve maps user references ("3", "item-4", "matrix") to item IDs.
package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/spinwheel/types"
)

// AmbiguityError indicates multiple items matched a reference.
type AmbiguityError struct {
	Ref        string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Ref, names)
}

// NotFoundError indicates no item matched a reference.
type NotFoundError struct {
	Ref string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no item matches %q", e.Ref)
}

// Item resolves ref against items, trying in order: 1-based position,
// exact ID, case-insensitive exact label, then a unique label word or
// prefix match.
func Item(items []types.WheelItem, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", &NotFoundError{Ref: ref}
	}

	// 1. Position.
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(items) {
			return items[n-1].ID, nil
		}
		return "", &NotFoundError{Ref: ref}
	}

	// 2. Exact ID.
	for _, it := range items {
		if it.ID == ref {
			return it.ID, nil
		}
	}

	refLower := strings.ToLower(ref)

	// 3. Exact label. Duplicate labels are ambiguous.
	var exact []types.WheelItem
	for _, it := range items {
		if strings.ToLower(it.Label) == refLower {
			exact = append(exact, it)
		}
	}
	if id, err := pick(ref, exact); len(exact) > 0 {
		return id, err
	}

	// 4. Word or prefix match.
	var partial []types.WheelItem
	for _, it := range items {
		if matchesLabel(it.Label, refLower) {
			partial = append(partial, it)
		}
	}
	return pick(ref, partial)
}

func pick(ref string, matches []types.WheelItem) (string, error) {
	switch len(matches) {
	case 0:
		return "", &NotFoundError{Ref: ref}
	case 1:
		return matches[0].ID, nil
	default:
		candidates := make([]string, len(matches))
		for i, m := range matches {
			candidates[i] = fmt.Sprintf("%s %q", m.ID, m.Label)
		}
		return "", &AmbiguityError{Ref: ref, Candidates: candidates}
	}
}

// matchesLabel reports whether the lower-cased query is a prefix of the
// label or equals one of its words ("matrix" matches "Movie: The Matrix").
func matchesLabel(label, refLower string) bool {
	labelLower := strings.ToLower(label)
	if strings.HasPrefix(labelLower, refLower) {
		return true
	}
	for _, word := range strings.Fields(labelLower) {
		if strings.Trim(word, ":,.!?") == refLower {
			return true
		}
	}
	return false
}
