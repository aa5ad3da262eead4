package recipe

import (
	"context"
	"errors"
	"strings"
)

var errBlankName = errors.New("name is blank")

// Resolver maps a free-text ingredient name or type label to its master row id,
// creating the row the first time the name is seen.
type Resolver interface {
	ResolveIngredient(ctx context.Context, name string) (uint, error)
	ResolveType(ctx context.Context, label string) (uint, error)
}

type nameResolver struct {
	ingredients NameTable
	types       NameTable
}

func NewResolver(ingredients, types NameTable) Resolver {
	return &nameResolver{ingredients: ingredients, types: types}
}

// NormalizeName is the uniqueness key of a master row: trimmed and lower-cased.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *nameResolver) ResolveIngredient(ctx context.Context, name string) (uint, error) {
	return resolve(ctx, r.ingredients, name)
}

func (r *nameResolver) ResolveType(ctx context.Context, label string) (uint, error) {
	return resolve(ctx, r.types, label)
}

func resolve(ctx context.Context, table NameTable, name string) (uint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errBlankName
	}
	key := NormalizeName(name)

	id, found, err := table.FindByNormalized(ctx, key)
	if err != nil {
		return 0, err
	}
	if found {
		return id, nil
	}

	id, insertErr := table.Insert(ctx, name, key)
	if insertErr == nil {
		return id, nil
	}

	// A concurrent resolution may have inserted the same key first.
	id, found, err = table.FindByNormalized(ctx, key)
	if err != nil {
		return 0, err
	}
	if found {
		return id, nil
	}
	return 0, insertErr
}

// uniqueNames trims names, drops blanks and keeps the first spelling of each normalized key.
func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := NormalizeName(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, name)
	}
	return result
}
