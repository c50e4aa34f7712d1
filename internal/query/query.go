// Package query filters, sorts and pages small in-memory record lists.
package query

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection maps user input to a direction, defaulting to ascending.
func ParseDirection(raw string) Direction {
	if strings.EqualFold(strings.TrimSpace(raw), string(Desc)) {
		return Desc
	}
	return Asc
}

// Predicate reports whether a record passes one filter.
type Predicate[T any] func(T) bool

// Key is a sortable field. Exactly one of Text or Number is set.
type Key[T any] struct {
	Text   func(T) string
	Number func(T) float64
}

func TextKey[T any](f func(T) string) Key[T] {
	return Key[T]{Text: f}
}

func NumberKey[T any](f func(T) float64) Key[T] {
	return Key[T]{Number: f}
}

type Page[T any] struct {
	Items      []T  `json:"items"`
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalPages int  `json:"total_pages"`
	Empty      bool `json:"empty"`
}

// Filter returns the records passing every non-nil predicate, in input order.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		keep := true
		for _, p := range active {
			if !p(item) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}

// Sort orders items in place by key. Text keys use locale-aware collation.
// The sort is stable, so applying it twice gives the same order.
func Sort[T any](items []T, key Key[T], dir Direction) {
	var compare func(a, b T) int
	switch {
	case key.Text != nil:
		col := collate.New(language.English)
		compare = func(a, b T) int {
			return col.CompareString(key.Text(a), key.Text(b))
		}
	case key.Number != nil:
		compare = func(a, b T) int {
			return cmp.Compare(key.Number(a), key.Number(b))
		}
	default:
		return
	}

	if dir == Desc {
		asc := compare
		compare = func(a, b T) int { return asc(b, a) }
	}
	slices.SortStableFunc(items, compare)
}

// Paginate slices items into 1-based pages. Out-of-range pages clamp to the
// nearest valid page, so a page is never empty while earlier pages exist.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	return Page[T]{
		Items:      slices.Clone(items[start:end]),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Empty:      total == 0,
	}
}

// Run filters, sorts by key when one is given, then paginates. items is not
// modified.
func Run[T any](items []T, preds []Predicate[T], key *Key[T], dir Direction, page, pageSize int) Page[T] {
	filtered := Filter(items, preds...)
	if key != nil {
		Sort(filtered, *key, dir)
	}
	return Paginate(filtered, page, pageSize)
}
