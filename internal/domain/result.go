package domain

// ResultState is what a listing currently shows. Exactly one applies.
type ResultState int

const (
	ResultLoading ResultState = iota
	ResultEmpty
	ResultPopulated
)

func (s ResultState) String() string {
	switch s {
	case ResultLoading:
		return "loading"
	case ResultEmpty:
		return "empty"
	default:
		return "populated"
	}
}

// ListResult is a fetched collection plus its completion state. A result is
// Loading until Done is set, regardless of how many items it holds.
type ListResult[T any] struct {
	Items  []T
	Done   bool
	Notice string // non-blocking message when the fetch failed
}

// Pending is a result whose fetch has not completed.
func Pending[T any]() ListResult[T] {
	return ListResult[T]{}
}

// Loaded wraps a completed fetch.
func Loaded[T any](items []T) ListResult[T] {
	if items == nil {
		items = []T{}
	}
	return ListResult[T]{Items: items, Done: true}
}

// Failed is a completed fetch that produced nothing but a notice.
func Failed[T any](notice string) ListResult[T] {
	return ListResult[T]{Items: []T{}, Done: true, Notice: notice}
}

func (r ListResult[T]) State() ResultState {
	switch {
	case !r.Done:
		return ResultLoading
	case len(r.Items) == 0:
		return ResultEmpty
	default:
		return ResultPopulated
	}
}

func (r ListResult[T]) IsLoading() bool   { return r.State() == ResultLoading }
func (r ListResult[T]) IsEmpty() bool     { return r.State() == ResultEmpty }
func (r ListResult[T]) IsPopulated() bool { return r.State() == ResultPopulated }
func (r ListResult[T]) Count() int        { return len(r.Items) }
