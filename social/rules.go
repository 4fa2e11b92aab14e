// Copyright (c) 2024 The Pocketnet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package social

import "sort"

// ReputationLimits holds the numeric limits that gate reputation
// modification, per spec.md §4.3. Fields are named after the reference
// chain's own limit names so a reviewer can cross-reference history
// directly against this table.
type ReputationLimits struct {
	ThresholdReputationScore           int64
	ThresholdLikersCount               int64
	ScoresOneToOne                     int64
	ScoresOneToOneOverComment          int64
	ScoresOneToOneDepth                int64 // seconds
	ScoresToPostModifyReputationDepth  int64 // seconds
	BadReputation                      bool
}

// Rule is a single checkpoint: a tuple {kind, activation_height, limits,
// policies}, immutable once constructed. The active rule at height h is
// the rule with the largest activation_height <= h (spec.md §3).
type Rule struct {
	Kind             Kind
	ActivationHeight int64
	Limits           ReputationLimits
}

// ruleSeries is the totally-ordered, descending-by-height list of
// checkpoints declared for one kind.
type ruleSeries struct {
	rules []Rule // sorted by ActivationHeight, descending
}

// active returns the rule with the largest ActivationHeight <= h. It
// panics if no such rule exists; NewRuleTable's self-check guarantees
// every declared kind carries a height-0 entry, so this is unreachable in
// practice (spec.md §9, "do not replicate the undefined fallthrough").
func (s *ruleSeries) active(h int64) Rule {
	// rules is sorted descending, so the first entry with
	// ActivationHeight <= h is the active one. sort.Search requires an
	// ascending predicate, so search over the reversed comparison.
	idx := sort.Search(len(s.rules), func(i int) bool {
		return s.rules[i].ActivationHeight <= h
	})
	if idx == len(s.rules) {
		panic(makeError(ErrRuleUnresolved, "no active rule resolved: rule table missing height-0 entry"))
	}
	return s.rules[idx]
}

// RuleTable is the immutable, process-lifetime collection of rules for
// every kind, built once at startup and passed explicitly into consensus
// calls (spec.md §9, "avoid globals"). Construct it with NewRuleTable.
type RuleTable struct {
	series map[Kind]*ruleSeries
}

// Active returns the active Rule for kind at height h: the rule with the
// largest ActivationHeight <= h. It is a total function for any
// (kind, h >= 0): every kind NewRuleTable declares carries a height-0
// rule (spec.md §3 invariant).
func (t *RuleTable) Active(kind Kind, h int64) Rule {
	s, ok := t.series[kind]
	if !ok {
		panic(makeError(ErrRuleUnresolved, "no rule series declared for kind "+kind.String()))
	}
	return s.active(h)
}

// GetLimit exposes a named numeric limit to callers outside reputation
// consensus (spec.md §6), notably nothing in this package today but kept
// for hosts that want to report the active threshold for a kind/height
// without depending on ReputationLimits' field layout.
func (t *RuleTable) GetLimit(kind Kind, name string, h int64) (int64, bool) {
	r := t.Active(kind, h)
	switch name {
	case "threshold_reputation_score":
		return r.Limits.ThresholdReputationScore, true
	case "threshold_likers_count":
		return r.Limits.ThresholdLikersCount, true
	case "scores_one_to_one":
		return r.Limits.ScoresOneToOne, true
	case "scores_one_to_one_over_comment":
		return r.Limits.ScoresOneToOneOverComment, true
	case "scores_one_to_one_depth":
		return r.Limits.ScoresOneToOneDepth, true
	case "scores_to_post_modify_reputation_depth":
		return r.Limits.ScoresToPostModifyReputationDepth, true
	default:
		return 0, false
	}
}

// GetPolicy exposes a named boolean policy toggle, e.g. the feed filter's
// "bad_reputation" read (spec.md §6).
func (t *RuleTable) GetPolicy(kind Kind, name string, h int64) (bool, bool) {
	r := t.Active(kind, h)
	switch name {
	case "bad_reputation":
		return r.Limits.BadReputation, true
	default:
		return false, false
	}
}

const (
	day   = 24 * 3600
	week  = 7 * day
)

// NewRuleTable builds the canonical rule table from the checkpoints fixed
// by chain history (spec.md §4.3). It is typically called once at process
// start; the result is an immutable value safe to share across goroutines
// and across the lifetime of the process.
//
// NewRuleTable panics if any declared kind's series lacks an
// activation_height=0 entry: this is the startup self-check named in
// spec.md §7 (RuleUnresolved is "treated as a programming error"), and it
// can only fail as a result of a mistake in this function itself.
func NewRuleTable() *RuleTable {
	t := &RuleTable{series: make(map[Kind]*ruleSeries)}

	// Reputation rules apply identically to ACTION_SCORE_POST and
	// ACTION_SCORE_COMMENT: both consult the same threshold/rate-limit
	// checkpoints, so the series is declared once and shared.
	reputationRules := []Rule{
		{ActivationHeight: 0, Limits: ReputationLimits{
			ThresholdReputationScore:          -10000,
			ThresholdLikersCount:              0,
			ScoresOneToOne:                    99999,
			ScoresOneToOneOverComment:         20,
			ScoresOneToOneDepth:               336 * day,
			ScoresToPostModifyReputationDepth: 336 * day,
		}},
		{ActivationHeight: 108300, Limits: ReputationLimits{
			ThresholdReputationScore:          500,
			ThresholdLikersCount:              0,
			ScoresOneToOne:                    99999,
			ScoresOneToOneOverComment:         20,
			ScoresOneToOneDepth:               336 * day,
			ScoresToPostModifyReputationDepth: 336 * day,
		}},
		{ActivationHeight: 225000, Limits: ReputationLimits{
			ThresholdReputationScore:          500,
			ThresholdLikersCount:              0,
			ScoresOneToOne:                    2,
			ScoresOneToOneOverComment:         20,
			ScoresOneToOneDepth:               1 * day,
			ScoresToPostModifyReputationDepth: 336 * day,
		}},
		{ActivationHeight: 292800, Limits: ReputationLimits{
			ThresholdReputationScore:          1000,
			ThresholdLikersCount:              0,
			ScoresOneToOne:                    2,
			ScoresOneToOneOverComment:         20,
			ScoresOneToOneDepth:               week,
			ScoresToPostModifyReputationDepth: 336 * day,
		}},
		{ActivationHeight: 322700, Limits: ReputationLimits{
			ThresholdReputationScore:          1000,
			ThresholdLikersCount:              0,
			ScoresOneToOne:                    2,
			ScoresOneToOneOverComment:         20,
			ScoresOneToOneDepth:               2 * day,
			ScoresToPostModifyReputationDepth: 30 * day,
		}},
		{ActivationHeight: 889524, Limits: ReputationLimits{
			ThresholdReputationScore:          1000,
			ThresholdLikersCount:              100,
			ScoresOneToOne:                    2,
			ScoresOneToOneOverComment:         20,
			ScoresOneToOneDepth:               2 * day,
			ScoresToPostModifyReputationDepth: 30 * day,
		}},
	}
	t.declare(ActionScorePost, reputationRules)
	t.declare(ActionScoreComment, reputationRules)

	// BlockingCancel carries a small analogous two-checkpoint scheme
	// reserved for future policy; no limits are defined yet.
	t.declare(ActionBlockingCancel, []Rule{
		{ActivationHeight: 0, Limits: ReputationLimits{}},
		{ActivationHeight: 1, Limits: ReputationLimits{}},
	})

	t.selfCheck()
	log.Infof("social: rule table self-check passed for %d kinds", len(t.series))
	return t
}

// declare installs a checkpoint series for kind, sorted descending by
// ActivationHeight so Active can binary-search it.
func (t *RuleTable) declare(kind Kind, rules []Rule) {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	for i := range sorted {
		sorted[i].Kind = kind
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ActivationHeight > sorted[j].ActivationHeight
	})
	t.series[kind] = &ruleSeries{rules: sorted}
}

// selfCheck validates that every declared kind's series carries an
// activation_height=0 entry, the invariant that makes Active total. It
// panics on failure, per spec.md §7's "fatal... rule-table self-check
// failure at startup."
func (t *RuleTable) selfCheck() {
	for kind, s := range t.series {
		found := false
		for _, r := range s.rules {
			if r.ActivationHeight == 0 {
				found = true
				break
			}
		}
		if !found {
			panic(makeError(ErrRuleUnresolved, "kind "+kind.String()+" has no activation_height=0 rule"))
		}
	}
}
