// Copyright (c) 2024 The Pocketnet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package social

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// TestClassifyOpReturnCommentScore covers spec.md §8 scenario 7.
func TestClassifyOpReturnCommentScore(t *testing.T) {
	tx := &ChainTx{Outputs: []TxOut{{Script: "OP_RETURN OR_COMMENT_SCORE deadbeef"}}}
	if kind := ClassifyFromChain(tx); kind != ActionScoreComment {
		t.Fatalf("ClassifyFromChain = %s, want ACTION_SCORE_COMMENT", kind)
	}
}

// TestClassificationTotality covers spec.md §8's Classification totality
// property: ClassifyFromChain never fails, and returns NotSupported for
// anything it doesn't recognize.
func TestClassificationTotality(t *testing.T) {
	cases := []*ChainTx{
		nil,
		{},
		{Outputs: []TxOut{{Script: ""}}},
		{Outputs: []TxOut{{Script: "OP_RETURN"}}},
		{Outputs: []TxOut{{Script: "OP_RETURN OR_TOTALLY_UNKNOWN abc"}}},
		{Outputs: []TxOut{{Script: "garbage not even op return"}}},
	}
	for i, tx := range cases {
		if got := ClassifyFromChain(tx); got != NotSupported {
			t.Fatalf("case %d: ClassifyFromChain = %s, want NOT_SUPPORTED", i, got)
		}
	}
}

// TestClassifyLegacySubscribePrivate covers spec.md §8 scenario 8.
func TestClassifyLegacySubscribePrivate(t *testing.T) {
	payload := []byte(`{"unsubscribe": false, "private": true}`)
	if kind := ClassifyFromLegacy("Subscribes", payload); kind != ActionSubscribePrivate {
		t.Fatalf("ClassifyFromLegacy = %s, want ACTION_SUBSCRIBE_PRIVATE", kind)
	}
}

func TestClassifyLegacyTables(t *testing.T) {
	cases := []struct {
		table   string
		payload string
		want    Kind
	}{
		{"Users", `{}`, AccountUser},
		{"Posts", `{}`, ContentPost},
		{"Comment", `{}`, ContentComment},
		{"Scores", `{}`, ActionScorePost},
		{"CommentScores", `{}`, ActionScoreComment},
		{"Complains", `{}`, ActionComplain},
		{"Blocking", `{"unblocking": true}`, ActionBlockingCancel},
		{"Blocking", `{"unblocking": false}`, ActionBlocking},
		{"Subscribes", `{"unsubscribe": true}`, ActionSubscribeCancel},
		{"Subscribes", `{}`, ActionSubscribe},
		{"NotARealTable", `{}`, NotSupported},
	}
	for _, tc := range cases {
		got := ClassifyFromLegacy(tc.table, []byte(tc.payload))
		if got != tc.want {
			t.Fatalf("ClassifyFromLegacy(%q, %q) = %s, want %s", tc.table, tc.payload, got, tc.want)
		}
	}
}

func encodeEnvelope(t *testing.T, tag string, payload interface{}) []byte {
	t.Helper()
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	env := envelope{T: tag, D: base64.StdEncoding.EncodeToString(payloadJSON)}
	raw, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return raw
}

func TestBuildScoreComment(t *testing.T) {
	commentHash := hashCanonicalString("some-comment-seed")
	raw := encodeEnvelope(t, "CommentScores", map[string]interface{}{
		"address":   "PAddress1",
		"commentid": commentHash.String(),
		"value":     1,
	})

	tx, err := Build(raw)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if tx.Kind != ActionScoreComment {
		t.Fatalf("Kind = %s, want ACTION_SCORE_COMMENT", tx.Kind)
	}
	if tx.ScoreComment.Value != 1 {
		t.Fatalf("Value = %d, want 1", tx.ScoreComment.Value)
	}
	if tx.ScoreComment.CommentTxHash != commentHash {
		t.Fatalf("CommentTxHash mismatch")
	}

	wantHash := hashCanonicalString(joinFields(commentHash.String(), "1"))
	if tx.Hash != wantHash {
		t.Fatalf("canonical hash mismatch: got %s want %s", tx.Hash, wantHash)
	}
}

func TestBuildRejectsUnknownTag(t *testing.T) {
	raw := encodeEnvelope(t, "NotARealTable", map[string]interface{}{})
	_, err := Build(raw)
	if err == nil {
		t.Fatal("expected error for unrecognized tag")
	}
	var e Error
	if !asError(err, &e) || e.Err != ErrUnknownKind {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

// asError is a small errors.As helper kept local to the test file to avoid
// importing the "errors" package solely for this one assertion.
func asError(err error, target *Error) bool {
	e, ok := err.(Error)
	if ok {
		*target = e
	}
	return ok
}

func TestDeserializeBlockSkipsUnsupported(t *testing.T) {
	good := encodeEnvelope(t, "Posts", postRaw{Address: "PAddr", Caption: "hi"})
	bad := encodeEnvelope(t, "NotARealTable", map[string]interface{}{})

	block := map[string]string{
		"txid-good": base64.StdEncoding.EncodeToString(good),
		"txid-bad":  base64.StdEncoding.EncodeToString(bad),
	}
	blob, err := json.Marshal(block)
	if err != nil {
		t.Fatalf("marshal block: %v", err)
	}

	txs, err := DeserializeBlock(blob)
	if err != nil {
		t.Fatalf("DeserializeBlock: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("len(txs) = %d, want 1", len(txs))
	}
	if txs[0].Kind != ContentPost {
		t.Fatalf("Kind = %s, want CONTENT_POST", txs[0].Kind)
	}
}

func TestBuildAndSerializeRoundTrip(t *testing.T) {
	raw := encodeEnvelope(t, "Posts", postRaw{
		Address: "PAddr", Language: "en", Caption: "hello", Message: "world",
		Tags: []string{"a", "b"}, Images: []string{"i1"}, URL: "u", Settings: "s",
	})
	tx, err := Build(raw)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	payload, err := Serialize(tx)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	tx2, err := deserialize(ContentPost, payload)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	tx2.Hash = CanonicalHash(tx2)

	if tx2.Hash != tx.Hash {
		t.Fatal("materialize(serialize(m)) != m: canonical hash changed across round trip")
	}
	if tx2.Post.Caption != tx.Post.Caption || tx2.Post.Message != tx.Post.Message {
		t.Fatal("materialize(serialize(m)) != m: payload fields changed across round trip")
	}

	// Compare the full payload structs, not just the two fields checked
	// above: spew.Sdump renders nested slices (Tags, Images) and the
	// optionalHash fields field-by-field, so a dump diff catches a
	// regression in any Post field the round trip should preserve. The
	// structs are dumped by value, since a pointer dump includes its
	// address.
	if got, want := spew.Sdump(*tx2.Post), spew.Sdump(*tx.Post); got != want {
		t.Fatalf("materialize(serialize(m)) != m: payload dump differs\ngot:\n%s\nwant:\n%s", got, want)
	}
}
