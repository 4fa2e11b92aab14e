// Copyright (c) 2024 The Pocketnet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package social implements the social-consensus engine and transaction
// materializer for Pocketnet's social transaction layer: typed models for
// posts, comments, scores, subscriptions, blockings and complaints; a
// height-parameterized rule table; and the reputation-modification checks
// that gate score transactions.
//
// The package owns no storage and performs no I/O of its own. Hosts supply
// a RatingsStore implementation backed by their indexed store and a
// RuleTable built once at startup; every decision here is a pure function
// of its explicit inputs.
package social
