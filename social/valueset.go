// Copyright (c) 2024 The Pocketnet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package social

import "github.com/jrick/bitset"

// valueSetOffset and valueSetSize fix a small, dense domain over the score
// values this engine ever needs to test membership in: comment scores in
// {-1, +1} and post scores in {1..5}. ValueSet packs that domain into a
// bitset.Bytes rather than a map[int]bool or a slice scan, mirroring the
// reference chain's own preference for a fixed-domain bitset over a
// dynamic set for this kind of small, hot membership test.
const (
	valueSetOffset = 1 // value -1 maps to bit index 0
	valueSetSize   = 7 // covers values -1..5
)

// ValueSet is a compact membership set over the score value domain used by
// allow_over_post / allow_over_comment to decide which score_content_count
// call to make (spec.md §4.5).
type ValueSet struct {
	bits bitset.Bytes
}

// NewValueSet builds a ValueSet containing exactly the given values.
func NewValueSet(values ...int) *ValueSet {
	vs := &ValueSet{bits: bitset.NewBytes(valueSetSize)}
	for _, v := range values {
		vs.bits.Set(v + valueSetOffset)
	}
	return vs
}

// Contains reports whether v is a member of the set.
func (vs *ValueSet) Contains(v int) bool {
	idx := v + valueSetOffset
	if idx < 0 || idx >= valueSetSize {
		return false
	}
	return vs.bits.Get(idx)
}

// Values returns the sorted members of the set, chiefly for logging and
// tests.
func (vs *ValueSet) Values() []int {
	var out []int
	for idx := 0; idx < valueSetSize; idx++ {
		if vs.bits.Get(idx) {
			out = append(out, idx-valueSetOffset)
		}
	}
	return out
}

// Score value sets named after the reference chain's lottery/non-lottery
// distinction (spec.md §4.5).
var (
	valueSetPostLottery    = NewValueSet(4, 5)
	valueSetPostAll        = NewValueSet(1, 2, 3, 4, 5)
	valueSetCommentLottery = NewValueSet(1)
	valueSetCommentAll     = NewValueSet(-1, 1)
)
