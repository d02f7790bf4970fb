package worktree

import (
	"context"

	"github.com/sahilm/fuzzy"
)

const maxSuggestions = 3

// Suggest returns up to three registered names that fuzzy-match name, best
// match first.
func (r *Registry) Suggest(ctx context.Context, name string) []string {
	names, err := r.Names(ctx)
	if err != nil || name == "" {
		return nil
	}
	return SuggestFrom(name, names)
}

// SuggestFrom ranks candidates against name.
func SuggestFrom(name string, candidates []string) []string {
	matches := fuzzy.Find(name, candidates)
	var result []string
	for _, m := range matches {
		if m.Str == name {
			continue
		}
		result = append(result, m.Str)
		if len(result) == maxSuggestions {
			break
		}
	}
	return result
}
