// Copyright (c) 2024 The Pocketnet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package social

import "github.com/decred/dcrd/chaincfg/chainhash"

// TxOut is the minimal structural stand-in for a chain output this package
// needs: its disassembled script string. Grounded on wire.TxOut's field
// shape (PkScript) but carrying the already-disassembled ASCII form, since
// spec.md §4.2 operates on a tokenized disassembly rather than raw script
// bytes (no script VM is in scope here — see SPEC_FULL.md DOMAIN STACK).
type TxOut struct {
	Script string
}

// ChainTx is the minimal structural stand-in for a chain transaction this
// package classifies: its txid and its outputs. Hosts adapt their real
// wire.MsgTx (or equivalent) into this shape before calling
// ClassifyFromChain/Build.
type ChainTx struct {
	Txid    chainhash.Hash
	Outputs []TxOut
}
