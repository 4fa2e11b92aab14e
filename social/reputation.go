// Copyright (c) 2024 The Pocketnet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package social

import "github.com/decred/dcrd/chaincfg/chainhash"

// selectAddressForPostScoreHeight is the activation height of the
// select_address_for_post_score policy change: at and after this height
// the counted address for a post score is always the rater, regardless of
// lottery status (spec.md §4.3, checkpoint 151600).
const selectAddressForPostScoreHeight = 151600

// AllowModifyReputation decides whether score may modify the reputation
// of its target, dispatching on score.ScoreKind (spec.md §4.5). tx is the
// chain txid of the transaction being validated (excluded from any
// score_content_count lookup). Every decision is a pure function of its
// arguments and the rules/store snapshot they carry; it performs no I/O of
// its own beyond calling store's read-only methods.
func AllowModifyReputation(store RatingsStore, rules *RuleTable, score *ScoreData, tx chainhash.Hash, height int64, lottery bool) bool {
	switch score.ScoreKind {
	case ActionScorePost:
		return allowOverPost(store, rules, score, tx, height, lottery)
	case ActionScoreComment:
		return allowOverComment(store, rules, score, tx, height, lottery)
	default:
		return false
	}
}

// countedAddress is the address id/hash pair select_address_for_post_score
// resolves to: whichever side of the score the active policy counts
// against.
type countedAddress struct {
	id   int64
	hash string
}

// selectAddressForPostScore implements the version-151600 override named
// in spec.md §4.3/§4.5: before that height, a non-lottery score counted
// against the content author rather than the rater.
func selectAddressForPostScore(score *ScoreData, height int64, lottery bool) countedAddress {
	if height >= selectAddressForPostScoreHeight {
		return countedAddress{score.ScoreAddressID, score.ScoreAddressHash}
	}
	if lottery {
		return countedAddress{score.ScoreAddressID, score.ScoreAddressHash}
	}
	return countedAddress{score.ContentAddressID, score.ContentAddressHash}
}

// allowModifyReputationOf gates a counted address on both of its cached
// thresholds at height h: reputation and likers count must each meet the
// active rule's minimum. A store miss on either query is conservative
// rejection (spec.md §4.5 step 2, §8 Conservatism property).
func allowModifyReputationOf(store RatingsStore, rules *RuleTable, scoreKind Kind, addressID int64, height int64) bool {
	rule := rules.Active(scoreKind, height)

	repOK, reputation := store.UserReputation(addressID, height)
	if !repOK {
		log.Tracef("social: reject %s at height %d: no reputation snapshot for address id %d", scoreKind, height, addressID)
		return false
	}
	if reputation < rule.Limits.ThresholdReputationScore {
		log.Tracef("social: reject %s at height %d: address id %d reputation %d below threshold %d",
			scoreKind, height, addressID, reputation, rule.Limits.ThresholdReputationScore)
		return false
	}

	likersOK, likers := store.UserLikersCount(addressID, height)
	if !likersOK {
		log.Tracef("social: reject %s at height %d: no likers count for address id %d", scoreKind, height, addressID)
		return false
	}
	if likers < rule.Limits.ThresholdLikersCount {
		log.Tracef("social: reject %s at height %d: address id %d likers %d below threshold %d",
			scoreKind, height, addressID, likers, rule.Limits.ThresholdLikersCount)
		return false
	}
	return true
}

// allowOverPost is allow_over_post of spec.md §4.5.
func allowOverPost(store RatingsStore, rules *RuleTable, score *ScoreData, tx chainhash.Hash, height int64, lottery bool) bool {
	counted := selectAddressForPostScore(score, height, lottery)

	if !allowModifyReputationOf(store, rules, ActionScorePost, counted.id, height) {
		return false
	}

	rule := rules.Active(ActionScorePost, height)

	valueSet := valueSetPostAll
	if lottery {
		valueSet = valueSetPostLottery
	}

	ok, count := store.ScoreContentCount(ActionScorePost, counted.hash, score.ContentAddressHash,
		height, tx, valueSet, rule.Limits.ScoresOneToOneDepth)
	if !ok {
		log.Tracef("social: reject ACTION_SCORE_POST at height %d: score_content_count lookup missed for %s", height, counted.hash)
		return false
	}
	if count >= rule.Limits.ScoresOneToOne {
		log.Tracef("social: reject ACTION_SCORE_POST at height %d: %s already has %d one-to-one scores, limit %d",
			height, counted.hash, count, rule.Limits.ScoresOneToOne)
		return false
	}
	return true
}

// allowOverComment is allow_over_comment of spec.md §4.5.
func allowOverComment(store RatingsStore, rules *RuleTable, score *ScoreData, tx chainhash.Hash, height int64, lottery bool) bool {
	if !allowModifyReputationOf(store, rules, ActionScoreComment, score.ScoreAddressID, height) {
		return false
	}

	rule := rules.Active(ActionScoreComment, height)

	valueSet := valueSetCommentAll
	if lottery {
		valueSet = valueSetCommentLottery
	}

	ok, count := store.ScoreContentCount(ActionScoreComment, score.ScoreAddressHash, score.ContentAddressHash,
		height, tx, valueSet, rule.Limits.ScoresOneToOneDepth)
	if !ok {
		log.Tracef("social: reject ACTION_SCORE_COMMENT at height %d: score_content_count lookup missed for %s", height, score.ScoreAddressHash)
		return false
	}
	if count >= rule.Limits.ScoresOneToOneOverComment {
		log.Tracef("social: reject ACTION_SCORE_COMMENT at height %d: %s already has %d one-to-one scores over this comment, limit %d",
			height, score.ScoreAddressHash, count, rule.Limits.ScoresOneToOneOverComment)
		return false
	}
	return true
}

// AllowModifyOldPosts is allow_modify_old_posts of spec.md §4.5: for
// CONTENT_POST, a score may modify reputation only if it arrives within
// the active scores_to_post_modify_reputation_depth window of the
// content's own block time. Other content kinds are currently
// unconditionally accepted, reserved for future tightening.
func AllowModifyOldPosts(rules *RuleTable, height int64, scoreTime, contentTime int64, contentKind Kind) bool {
	if contentKind != ContentPost {
		return true
	}
	rule := rules.Active(ActionScorePost, height)
	return scoreTime-contentTime < rule.Limits.ScoresToPostModifyReputationDepth
}
