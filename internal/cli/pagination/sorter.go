package pagination

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/rshade/planetprint/internal/batch"
)

// Sorter sorts a list by a named field.
type Sorter[T any] interface {
	// Sort returns a sorted copy of items. An invalid field returns items unchanged.
	Sort(items []T, field, order string) []T
	// IsValidField checks if the given field name is valid for sorting.
	IsValidField(field string) bool
	// GetValidFields returns the valid field names in a stable order.
	GetValidFields() []string
}

// EntrySorter implements Sorter for scored batch entries.
type EntrySorter struct {
	compare map[string]func(a, b batch.Entry) int
}

// NewEntrySorter creates an EntrySorter. Categories sort from excellent
// to critical.
func NewEntrySorter() *EntrySorter {
	return &EntrySorter{
		compare: map[string]func(a, b batch.Entry) int{
			"index": func(a, b batch.Entry) int { return cmp.Compare(a.Index, b.Index) },
			"score": func(a, b batch.Entry) int { return cmp.Compare(a.Result.TotalScore, b.Result.TotalScore) },
			"planets": func(a, b batch.Entry) int {
				return cmp.Compare(a.Result.PlanetsNeeded, b.Result.PlanetsNeeded)
			},
			"co2": func(a, b batch.Entry) int { return cmp.Compare(a.CO2Kg, b.CO2Kg) },
			"category": func(a, b batch.Entry) int {
				return cmp.Compare(a.Result.Category.Rank(), b.Result.Category.Rank())
			},
		},
	}
}

// IsValidField checks if the field is valid for sorting.
func (s *EntrySorter) IsValidField(field string) bool {
	_, ok := s.compare[field]
	return ok
}

// GetValidFields returns all valid sort fields.
func (s *EntrySorter) GetValidFields() []string {
	fields := make([]string, 0, len(s.compare))
	for field := range s.compare {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return fields
}

// Sort sorts entries by field. The sort is stable, so ties keep their
// input order in both directions.
func (s *EntrySorter) Sort(entries []batch.Entry, field, order string) []batch.Entry {
	compare, ok := s.compare[field]
	if !ok {
		return entries
	}

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b batch.Entry) int {
		if order == SortOrderDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return sorted
}

// ValidateSortField returns ErrInvalidSortField, listing the accepted
// names, when s cannot sort by field. An empty field is valid.
func ValidateSortField[T any](s Sorter[T], field string) error {
	if field == "" || s.IsValidField(field) {
		return nil
	}
	return fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field, strings.Join(s.GetValidFields(), ", "))
}
