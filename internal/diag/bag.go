package diag

import (
	"cmp"
	"slices"
)

// Bag collects the diagnostics of one file. A limit of 0 means unlimited;
// once full, Add drops further diagnostics.
type Bag struct {
	items []Diagnostic
	limit int
}

func NewBag(limit int) *Bag {
	return &Bag{limit: max(limit, 0)}
}

// Add stores d unless the bag is full and reports whether it was kept.
func (b *Bag) Add(d Diagnostic) bool {
	if b.Full() {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Full() bool { return b.limit > 0 && len(b.items) >= b.limit }

// Cap is the limit the bag was created with (0 for unlimited).
func (b *Bag) Cap() int { return b.limit }

func (b *Bag) Len() int { return len(b.items) }

// Items exposes the stored diagnostics; callers must not modify the slice.
func (b *Bag) Items() []Diagnostic { return b.items }

// Count returns how many diagnostics are at least as severe as sev.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for _, d := range b.items {
		if d.Severity >= sev {
			n++
		}
	}
	return n
}

func (b *Bag) HasErrors() bool { return b.Count(SevError) > 0 }

func (b *Bag) HasWarnings() bool { return b.Count(SevWarning) > 0 }

// Filter copies the diagnostics matching keep into a new bag with the same
// limit.
func (b *Bag) Filter(keep func(Diagnostic) bool) *Bag {
	out := NewBag(b.limit)
	for _, d := range b.items {
		if keep(d) {
			out.items = append(out.items, d)
		}
	}
	return out
}

// Merge appends everything from other, raising the limit when needed so that
// nothing is lost.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
	if b.limit > 0 {
		b.limit = max(b.limit, len(b.items))
	}
}

// Sort orders by file and position; at the same span errors come first.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup keeps the first diagnostic for each code and primary span.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span [3]uint32
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, [3]uint32{uint32(d.Primary.File), d.Primary.Start, d.Primary.End}}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
