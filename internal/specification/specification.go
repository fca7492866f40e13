// Package specification describes queries declaratively: a filter, related
// data to eagerly load, ordering and paging. Evaluation against a store is
// the persistence layer's job.
package specification

// Condition is an equality filter on a single column.
type Condition struct {
	Column string
	Value  any
}

// Query is a reusable query descriptor for entities of type T. The type
// parameter carries no data; it ties a descriptor to the repository it is
// evaluated by.
type Query[T any] struct {
	conditions []Condition
	includes   []string
	orderBy    string
	descending bool
	skip       int
	take       int
	paged      bool
}

func New[T any]() *Query[T] {
	return &Query[T]{}
}

func (q *Query[T]) Where(column string, value any) *Query[T] {
	q.conditions = append(q.conditions, Condition{Column: column, Value: value})
	return q
}

// Include names a relation to load eagerly with the results. Includes never
// affect filtering.
func (q *Query[T]) Include(relation string) *Query[T] {
	q.includes = append(q.includes, relation)
	return q
}

func (q *Query[T]) OrderBy(column string) *Query[T] {
	q.orderBy = column
	q.descending = false
	return q
}

func (q *Query[T]) OrderByDescending(column string) *Query[T] {
	q.orderBy = column
	q.descending = true
	return q
}

// Paginate skips the first skip rows and returns at most take. Paging is
// applied after ordering.
func (q *Query[T]) Paginate(skip, take int) *Query[T] {
	q.skip = skip
	q.take = take
	q.paged = true
	return q
}

func (q *Query[T]) Conditions() []Condition { return q.conditions }
func (q *Query[T]) Includes() []string      { return q.includes }

func (q *Query[T]) Ordering() (column string, descending, ok bool) {
	return q.orderBy, q.descending, q.orderBy != ""
}

func (q *Query[T]) Paging() (skip, take int, ok bool) {
	return q.skip, q.take, q.paged
}
