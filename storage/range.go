package storage

import "fmt"

// Range is a half-open span [From, From+Length) in a storage's domain.
// A Range with Length 0 is empty regardless of From.
type Range struct {
	From   int
	Length int
}

// End returns the exclusive upper bound of the range.
func (r Range) End() int {
	return r.From + r.Length
}

// Empty reports whether the range covers nothing.
func (r Range) Empty() bool {
	return r.Length <= 0
}

// Union returns the smallest range covering both r and o.
//
// Disjoint ranges merge into their covering superset, which may include
// bytes neither range touched. An empty operand is ignored.
func (r Range) Union(o Range) Range {
	switch {
	case o.Empty():
		return r
	case r.Empty():
		return o
	}
	from := min(r.From, o.From)
	end := max(r.End(), o.End())
	return Range{From: from, Length: end - from}
}

// Clamp restricts r to [0, limit). The result is empty if nothing remains.
func (r Range) Clamp(limit int) Range {
	from := max(r.From, 0)
	end := min(r.End(), limit)
	if end <= from {
		return Range{}
	}
	return Range{From: from, Length: end - from}
}

// String returns the range in interval notation.
func (r Range) String() string {
	if r.Empty() {
		return "[)"
	}
	return fmt.Sprintf("[%d,%d)", r.From, r.End())
}
