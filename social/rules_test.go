// Copyright (c) 2024 The Pocketnet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package social

import "testing"

// TestSelectorExactBoundary covers spec.md §8 scenario 1: the threshold
// reputation score flips exactly at the 108300 checkpoint boundary.
func TestSelectorExactBoundary(t *testing.T) {
	rules := NewRuleTable()

	got := rules.Active(ActionScorePost, 108299).Limits.ThresholdReputationScore
	if got != -10000 {
		t.Fatalf("at height 108299: got %d, want -10000", got)
	}

	got = rules.Active(ActionScorePost, 108300).Limits.ThresholdReputationScore
	if got != 500 {
		t.Fatalf("at height 108300: got %d, want 500", got)
	}
}

// TestSelectorAboveAllCheckpoints covers spec.md §8 scenario 2: heights
// far beyond the last checkpoint resolve to the last checkpoint's rule.
func TestSelectorAboveAllCheckpoints(t *testing.T) {
	rules := NewRuleTable()

	far := rules.Active(ActionScorePost, 10_000_000)
	last := rules.Active(ActionScorePost, 889524)
	if far != last {
		t.Fatalf("active(10_000_000) = %+v, want active(889524) = %+v", far, last)
	}
	if far.Limits.ThresholdLikersCount != 100 {
		t.Fatalf("threshold_likers_count = %d, want 100", far.Limits.ThresholdLikersCount)
	}
}

// TestSelectorMonotonicity is the property-based invariant of spec.md §8:
// for h1 <= h2, the activation height of active(kind, h2) is >= that of
// active(kind, h1).
func TestSelectorMonotonicity(t *testing.T) {
	rules := NewRuleTable()
	heights := []int64{0, 1, 100, 108299, 108300, 150000, 151600, 225000,
		292799, 292800, 322700, 889523, 889524, 2_000_000}

	for _, kind := range []Kind{ActionScorePost, ActionScoreComment} {
		for i := 0; i < len(heights); i++ {
			for j := i; j < len(heights); j++ {
				h1, h2 := heights[i], heights[j]
				a1 := rules.Active(kind, h1).ActivationHeight
				a2 := rules.Active(kind, h2).ActivationHeight
				if a2 < a1 {
					t.Fatalf("kind %s: active(%d).height=%d > active(%d).height=%d", kind, h1, a1, h2, a2)
				}
			}
		}
	}
}

// TestBlockingCancelCheckpoints exercises the small two-entry scheme
// reserved for future policy.
func TestBlockingCancelCheckpoints(t *testing.T) {
	rules := NewRuleTable()
	if h := rules.Active(ActionBlockingCancel, 0).ActivationHeight; h != 0 {
		t.Fatalf("active(0).ActivationHeight = %d, want 0", h)
	}
	if h := rules.Active(ActionBlockingCancel, 1).ActivationHeight; h != 1 {
		t.Fatalf("active(1).ActivationHeight = %d, want 1", h)
	}
	if h := rules.Active(ActionBlockingCancel, 1000).ActivationHeight; h != 1 {
		t.Fatalf("active(1000).ActivationHeight = %d, want 1", h)
	}
}

// TestRuleUnresolvedPanicsOnMissingZeroHeight covers the startup
// self-check of spec.md §7/§9.
func TestRuleUnresolvedPanicsOnMissingZeroHeight(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for rule table missing an activation_height=0 entry")
		}
	}()

	t2 := &RuleTable{series: make(map[Kind]*ruleSeries)}
	t2.declare(ActionComplain, []Rule{{ActivationHeight: 5}})
	t2.selfCheck()
}

func TestGetLimitAndPolicy(t *testing.T) {
	rules := NewRuleTable()

	v, ok := rules.GetLimit(ActionScorePost, "threshold_reputation_score", 108300)
	if !ok || v != 500 {
		t.Fatalf("GetLimit = (%d, %v), want (500, true)", v, ok)
	}

	if _, ok := rules.GetLimit(ActionScorePost, "not_a_real_limit", 0); ok {
		t.Fatal("GetLimit for unknown name should report ok=false")
	}

	if _, ok := rules.GetPolicy(ActionScorePost, "bad_reputation", 0); !ok {
		t.Fatal("GetPolicy for bad_reputation should report ok=true")
	}
}
