// Copyright (c) 2024 The Pocketnet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package social

import "github.com/decred/dcrd/chaincfg/chainhash"

// RatingsStore is the pure read interface the reputation consensus engine
// consumes, per spec.md §4.4/§6. Implementations must be snapshot-
// consistent with the chain state strictly below the height being
// validated: a query made while validating height h must reflect exactly
// the committed chain prefix of heights < h (spec.md §9, reorg Open
// Question). The host's SQLite-backed index implements this interface;
// this package defines only the contract.
type RatingsStore interface {
	// UserReputation returns the cached reputation score of an address id
	// as of the given height. ok=false indicates absence, treated by
	// callers as "below threshold."
	UserReputation(addressID int64, asOfHeight int64) (ok bool, reputation int64)

	// UserLikersCount returns the cached likers count of an address id as
	// of the given height.
	UserLikersCount(addressID int64, asOfHeight int64) (ok bool, count int64)

	// ScoreContentCount counts prior score transactions of scoreKind from
	// fromAddressHash to toAddressHash whose value is in valueSet, within
	// the trailing windowSeconds ending at asOfHeight, excluding the
	// transaction identified by excludingTx (the one currently being
	// validated).
	ScoreContentCount(scoreKind Kind, fromAddressHash, toAddressHash string,
		asOfHeight int64, excludingTx chainhash.Hash, valueSet *ValueSet,
		windowSeconds int64) (ok bool, count int64)
}

// NullRatingsStore is a RatingsStore that reports every query as
// unavailable. It exercises the Conservatism property of spec.md §8:
// whenever any ratings query returns ok=false, reputation modification
// must be denied.
type NullRatingsStore struct{}

// UserReputation always reports ok=false.
func (NullRatingsStore) UserReputation(int64, int64) (bool, int64) { return false, 0 }

// UserLikersCount always reports ok=false.
func (NullRatingsStore) UserLikersCount(int64, int64) (bool, int64) { return false, 0 }

// ScoreContentCount always reports ok=false.
func (NullRatingsStore) ScoreContentCount(Kind, string, string, int64, chainhash.Hash, *ValueSet, int64) (bool, int64) {
	return false, 0
}
