// Copyright (c) 2024 The Pocketnet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package social

import "testing"

// TestHashDeterminism covers spec.md §8's Hash determinism property: two
// materializations of payloads that agree on the canonical-field subset
// produce byte-identical hashes, even when a field outside the canonical
// subset (Time, the block time, here) differs.
func TestHashDeterminism(t *testing.T) {
	base := &Transaction{
		Kind: ActionScoreComment,
		Time: 1000,
		ScoreComment: &ScoreComment{
			ScoreAddress:  "A",
			CommentTxHash: hashCanonicalString("comment-1"),
			Value:         1,
		},
	}
	other := &Transaction{
		Kind: ActionScoreComment,
		Time: 999999, // differs: not a canonical field, must not affect the hash
		ScoreComment: &ScoreComment{
			ScoreAddress:  "A",
			CommentTxHash: base.ScoreComment.CommentTxHash,
			Value:         1,
		},
	}

	h1 := CanonicalHash(base)
	h2 := CanonicalHash(other)
	if h1 != h2 {
		t.Fatalf("CanonicalHash differs for payloads agreeing on canonical fields: %s vs %s", h1, h2)
	}
}

// TestHashDiffersOnCanonicalField ensures the hash is sensitive to the
// fields it is actually defined over.
func TestHashDiffersOnCanonicalField(t *testing.T) {
	a := &Transaction{Kind: ActionScoreComment, ScoreComment: &ScoreComment{
		ScoreAddress: "A", CommentTxHash: hashCanonicalString("c1"), Value: 1,
	}}
	b := &Transaction{Kind: ActionScoreComment, ScoreComment: &ScoreComment{
		ScoreAddress: "A", CommentTxHash: hashCanonicalString("c1"), Value: -1,
	}}
	if CanonicalHash(a) == CanonicalHash(b) {
		t.Fatal("hashes for differing canonical field (Value) must differ")
	}
}

// TestHashIdempotent covers the "re-materialization is idempotent"
// invariant of spec.md §3.
func TestHashIdempotent(t *testing.T) {
	tx := &Transaction{Kind: ActionScorePost, ScorePost: &ScorePost{
		ScoreAddress: "A", ContentAddress: "B",
		ContentTxHash: hashCanonicalString("post-1"), Value: 5,
	}}
	h1 := CanonicalHash(tx)
	h2 := CanonicalHash(tx)
	if h1 != h2 {
		t.Fatal("CanonicalHash is not idempotent")
	}
}

func TestContentHashFromHexRoundTrip(t *testing.T) {
	want := hashCanonicalString("round-trip-me")
	got, err := ContentHashFromHex(want.String())
	if err != nil {
		t.Fatalf("ContentHashFromHex: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %s want %s", got, want)
	}
}

func TestContentHashFromHexRejectsWrongLength(t *testing.T) {
	if _, err := ContentHashFromHex("deadbeef"); err == nil {
		t.Fatal("expected error for a hex string shorter than ContentHashSize")
	}
}

func TestPostIsEdit(t *testing.T) {
	self := hashCanonicalString("post-self")
	original := &Post{Address: "A"}
	if original.IsEdit(self) {
		t.Fatal("a post with no root hash is never an edit")
	}

	edit := &Post{Address: "A", RootTxHash: optionalHash{Valid: true, Value: hashCanonicalString("post-original")}}
	if !edit.IsEdit(self) {
		t.Fatal("a post whose root hash differs from its self hash is an edit")
	}

	nonEdit := &Post{Address: "A", RootTxHash: optionalHash{Valid: true, Value: self}}
	if nonEdit.IsEdit(self) {
		t.Fatal("a post whose root hash equals its self hash is the original, not an edit")
	}
}
