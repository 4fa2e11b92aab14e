// Copyright (c) 2024 The Pocketnet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package social

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// ContentHashSize is the size, in bytes, of a ContentHash: SHA-256
// truncated to 20 bytes, per spec.md §3. This is a domain-computed digest,
// distinct from (and unrelated to) the base chain's 32-byte txid.
const ContentHashSize = 20

// ContentHash is the canonical content hash of a social transaction: a
// pure function of an ordered subset of its payload fields. Grounded on
// exccutil.Hash160's "hash of a canonical byte string, truncated" shape,
// truncation-only (the spec fixes a SHA-256 truncation, not a ripemd160
// step).
type ContentHash [ContentHashSize]byte

// ZeroContentHash is the zero-value hash, used as a sentinel for "absent".
var ZeroContentHash ContentHash

// String returns the hex encoding of the hash, matching the reference
// chain's hex-encoded digest representation.
func (h ContentHash) String() string {
	return hex.EncodeToString(h[:])
}

// ContentHashFromHex decodes a hex string into a ContentHash. It returns
// ErrDecode if the string is not exactly ContentHashSize bytes of hex.
func ContentHashFromHex(s string) (ContentHash, error) {
	var h ContentHash
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, decodeErrorf("invalid content hash hex %q: %v", s, err)
	}
	if len(b) != ContentHashSize {
		return h, decodeErrorf("content hash %q has %d bytes, want %d", s, len(b), ContentHashSize)
	}
	copy(h[:], b)
	return h, nil
}

// hashCanonicalString computes the domain canonical hash over a raw byte
// string assembled by a kind's canonical-field concatenation.
func hashCanonicalString(s string) ContentHash {
	sum := sha256.Sum256([]byte(s))
	var h ContentHash
	copy(h[:], sum[:ContentHashSize])
	return h
}

// joinFields concatenates canonical field values with no separator,
// matching the reference chain's flat concatenation (e.g. ScoreComment
// concatenates comment_tx_hash || decimal(value) verbatim, per spec.md
// §3). Absent optional fields contribute nothing to the string.
func joinFields(parts ...string) string {
	return strings.Join(parts, "")
}

// CanonicalHash computes the canonical content hash for a materialized
// transaction given its kind-specific payload. It is the sole producer of
// Transaction.Hash; re-materializing the same payload is idempotent
// (spec.md §3 invariant, §8 Hash determinism property).
func CanonicalHash(tx *Transaction) ContentHash {
	switch tx.Kind {
	case ContentPost, ContentVideo, ContentTranslate:
		p := tx.Post
		root := ""
		if p.RootTxHash.Valid {
			root = p.RootTxHash.Value.String()
		}
		return hashCanonicalString(joinFields(
			p.Address, root, p.Language, p.Caption, p.Message,
			strings.Join(p.Tags, ","), strings.Join(p.Images, ","),
			p.URL, p.Settings,
		))

	case ContentComment:
		c := tx.Comment
		root := ""
		if c.RootTxHash.Valid {
			root = c.RootTxHash.Value.String()
		}
		return hashCanonicalString(joinFields(
			c.Address, root, c.Language, c.Message, c.ContentTxHash.String(),
		))

	case ContentCommentDelete:
		d := tx.CommentDelete
		return hashCanonicalString(joinFields(d.Address, d.CommentTxHash.String()))

	case ActionScorePost:
		s := tx.ScorePost
		return hashCanonicalString(joinFields(
			s.ScoreAddress, s.ContentAddress, s.ContentTxHash.String(),
			strconv.Itoa(s.Value),
		))

	case ActionScoreComment:
		s := tx.ScoreComment
		// CommentScore concatenates comment_tx_hash || decimal(value),
		// verbatim per spec.md §3.
		return hashCanonicalString(joinFields(s.CommentTxHash.String(), strconv.Itoa(s.Value)))

	case ActionSubscribe, ActionSubscribePrivate, ActionSubscribeCancel:
		s := tx.Subscribe
		lang := ""
		if s.Language.Valid {
			lang = s.Language.Value
		}
		return hashCanonicalString(joinFields(s.Address, s.AddressTo, lang))

	case ActionBlocking, ActionBlockingCancel:
		b := tx.Blocking
		return hashCanonicalString(joinFields(b.Address, b.AddressTo))

	case ActionComplain:
		c := tx.Complain
		return hashCanonicalString(joinFields(c.Address, c.ContentTxHash.String(), strconv.Itoa(c.Reason)))

	case AccountUser:
		u := tx.User
		ref := ""
		if u.Referrer.Valid {
			ref = u.Referrer.Value
		}
		return hashCanonicalString(joinFields(u.Address, ref, u.Name, u.Language, u.Avatar, u.About, u.URL))

	case AccountVideoServer:
		v := tx.VideoServer
		return hashCanonicalString(joinFields(v.Address, v.Name, v.URL))

	case AccountMessageServer:
		m := tx.MessageServer
		return hashCanonicalString(joinFields(m.Address, m.Name, m.URL))

	case ContentServerPing:
		return hashCanonicalString(tx.ServerPing.Address)

	default:
		return ZeroContentHash
	}
}
