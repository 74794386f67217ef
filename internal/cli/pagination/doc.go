// Package pagination sorts and pages the scored entries listed by the
// batch command.
//
//   - PaginationParams: --limit/--offset or --page/--page-size, validated
//   - PaginationMeta: page metadata printed with structured output
//   - EntrySorter: field validation and stable sorting of batch entries
package pagination
