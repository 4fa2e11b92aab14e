// Copyright (c) 2024 The Pocketnet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package social

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// opReturnKinds maps the second whitespace-separated token of a
// disassembled OP_RETURN script to a Kind, per spec.md §4.2.
var opReturnKinds = map[string]Kind{
	"OR_POST":            ContentPost,
	"OR_POSTEDIT":        ContentPost,
	"OR_VIDEO":           ContentVideo,
	"OR_SERVER_PING":     ContentServerPing,
	"OR_SCORE":           ActionScorePost,
	"OR_COMPLAIN":        ActionComplain,
	"OR_SUBSCRIBE":       ActionSubscribe,
	"OR_SUBSCRIBEPRIVATE": ActionSubscribePrivate,
	"OR_UNSUBSCRIBE":     ActionSubscribeCancel,
	"OR_USERINFO":        AccountUser,
	"OR_VIDEO_SERVER":    AccountVideoServer,
	"OR_MESSAGE_SERVER":  AccountMessageServer,
	"OR_BLOCKING":        ActionBlocking,
	"OR_UNBLOCKING":      ActionBlockingCancel,
	"OR_COMMENT":         ContentComment,
	"OR_COMMENT_EDIT":    ContentComment,
	"OR_COMMENT_DELETE":  ContentCommentDelete,
	"OR_COMMENT_SCORE":   ActionScoreComment,
}

// legacyTableKinds maps a historical table name to its Kind, for the
// tables whose classification does not depend on payload contents
// (spec.md §4.2).
var legacyTableKinds = map[string]Kind{
	"Users":         AccountUser,
	"Posts":         ContentPost,
	"Comment":       ContentComment,
	"Scores":        ActionScorePost,
	"CommentScores": ActionScoreComment,
	"Complains":     ActionComplain,
}

// ClassifyFromChain inspects the first output's disassembled script and
// resolves it to a Kind, per spec.md §4.2. It returns NotSupported for any
// input it does not recognize rather than failing (spec.md §8,
// Classification totality property) — including when tx has no outputs or
// the script does not begin with OP_RETURN.
func ClassifyFromChain(tx *ChainTx) Kind {
	if tx == nil || len(tx.Outputs) == 0 {
		return NotSupported
	}
	script := tx.Outputs[0].Script
	tokens := strings.Fields(script)
	if len(tokens) < 2 || tokens[0] != "OP_RETURN" {
		return NotSupported
	}
	if kind, ok := opReturnKinds[tokens[1]]; ok {
		return kind
	}
	return NotSupported
}

// legacyBoolPayload is the minimal shape ClassifyFromLegacy reads to
// disambiguate the Blocking and Subscribes tables (spec.md §4.2).
type legacyBoolPayload struct {
	Unblocking  bool `json:"unblocking"`
	Unsubscribe bool `json:"unsubscribe"`
	Private     bool `json:"private"`
}

// ClassifyFromLegacy resolves a historical table name (plus, for Blocking
// and Subscribes, a payload field) to a Kind, per spec.md §4.2.
func ClassifyFromLegacy(table string, payload []byte) Kind {
	if kind, ok := legacyTableKinds[table]; ok {
		return kind
	}

	switch table {
	case "Blocking":
		var p legacyBoolPayload
		_ = json.Unmarshal(payload, &p) // lenient: malformed payload classifies as the non-cancel default
		if p.Unblocking {
			return ActionBlockingCancel
		}
		return ActionBlocking

	case "Subscribes":
		var p legacyBoolPayload
		_ = json.Unmarshal(payload, &p)
		if p.Unsubscribe {
			return ActionSubscribeCancel
		}
		if p.Private {
			return ActionSubscribePrivate
		}
		return ActionSubscribe

	default:
		return NotSupported
	}
}

// envelope is the wire shape of one transaction entry within a block
// payload blob, per spec.md §6: {"t": "<table-name>", "d":
// "<base64(payload-json)>"}.
type envelope struct {
	T string `json:"t"`
	D string `json:"d"`
}

// Build classifies and materializes a single transaction envelope
// (table/kind tag plus base64-encoded payload JSON) into a Transaction.
// It returns UnknownKind if the envelope's tag does not classify to a
// supported kind, and ErrDecode if the envelope or payload is malformed.
func Build(rawEnvelope []byte) (*Transaction, error) {
	var env envelope
	if err := json.Unmarshal(rawEnvelope, &env); err != nil {
		return nil, decodeErrorf("malformed transaction envelope: %v", err)
	}

	payload, err := base64.StdEncoding.DecodeString(env.D)
	if err != nil {
		return nil, decodeErrorf("malformed base64 payload for tag %q: %v", env.T, err)
	}

	kind := ClassifyFromLegacy(env.T, payload)
	if kind == NotSupported {
		log.Debugf("social: skipping transaction with unsupported tag %q", env.T)
		return nil, makeError(ErrUnknownKind, "unrecognized tag: "+env.T)
	}

	tx, err := deserialize(kind, payload)
	if err != nil {
		return nil, err
	}
	tx.Hash = CanonicalHash(tx)
	return tx, nil
}

// DeserializeBlock decodes a full block payload blob — a JSON object
// keyed by chain txid, whose values are base64-encoded envelope JSON
// blobs (spec.md §4.2/§6) — into the Transactions it materializes.
// Entries that classify to unsupported kinds, or that fail to decode, are
// skipped rather than failing the whole block (spec.md §4.2, "non-fatal").
func DeserializeBlock(blob []byte) ([]*Transaction, error) {
	var raw map[string]string
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, decodeErrorf("malformed block payload: %v", err)
	}

	txs := make([]*Transaction, 0, len(raw))
	for txid, encoded := range raw {
		entryJSON, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			log.Debugf("social: skipping block entry %s: bad base64: %v", txid, err)
			continue
		}
		tx, err := Build(entryJSON)
		if err != nil {
			log.Debugf("social: skipping block entry %s: %v", txid, err)
			continue
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// deserialize dispatches to the kind-specific payload decoder. There is no
// separate post-processing step after decoding; Build computes the
// canonical hash on the result.
func deserialize(kind Kind, payload []byte) (*Transaction, error) {
	tx := &Transaction{Kind: kind}

	switch kind {
	case AccountUser:
		var raw struct {
			Address  string `json:"address"`
			Referrer string `json:"referrer"`
			Name     string `json:"name"`
			Language string `json:"lang"`
			Avatar   string `json:"avatar"`
			About    string `json:"about"`
			URL      string `json:"url"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, decodeErrorf("ACCOUNT_USER: %v", err)
		}
		tx.User = &User{
			Address:  raw.Address,
			Referrer: newOptionalString(raw.Referrer),
			Name:     raw.Name,
			Language: raw.Language,
			Avatar:   raw.Avatar,
			About:    raw.About,
			URL:      raw.URL,
		}

	case AccountVideoServer:
		var raw struct {
			Address string `json:"address"`
			Name    string `json:"name"`
			URL     string `json:"url"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, decodeErrorf("ACCOUNT_VIDEO_SERVER: %v", err)
		}
		tx.VideoServer = &VideoServer{Address: raw.Address, Name: raw.Name, URL: raw.URL}

	case AccountMessageServer:
		var raw struct {
			Address string `json:"address"`
			Name    string `json:"name"`
			URL     string `json:"url"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, decodeErrorf("ACCOUNT_MESSAGE_SERVER: %v", err)
		}
		tx.MessageServer = &MessageServer{Address: raw.Address, Name: raw.Name, URL: raw.URL}

	case ContentPost, ContentVideo, ContentTranslate:
		p, err := deserializePost(payload)
		if err != nil {
			return nil, err
		}
		tx.Post = p

	case ContentServerPing:
		var raw struct {
			Address string `json:"address"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, decodeErrorf("CONTENT_SERVERPING: %v", err)
		}
		tx.ServerPing = &ServerPing{Address: raw.Address}

	case ContentComment:
		c, err := deserializeComment(payload)
		if err != nil {
			return nil, err
		}
		tx.Comment = c

	case ContentCommentDelete:
		var raw struct {
			Address   string `json:"address"`
			CommentID string `json:"commentid"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, decodeErrorf("CONTENT_COMMENT_DELETE: %v", err)
		}
		h, err := ContentHashFromHex(raw.CommentID)
		if err != nil {
			return nil, err
		}
		tx.CommentDelete = &CommentDelete{Address: raw.Address, CommentTxHash: h}

	case ActionScorePost:
		var raw struct {
			Address string `json:"address"`
			Share   string `json:"share"` // content tx hash being scored
			Value   int    `json:"value"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, decodeErrorf("ACTION_SCORE_POST: %v", err)
		}
		h, err := ContentHashFromHex(raw.Share)
		if err != nil {
			return nil, err
		}
		if raw.Value < 1 || raw.Value > 5 {
			return nil, decodeErrorf("ACTION_SCORE_POST: value %d out of range [1,5]", raw.Value)
		}
		tx.ScorePost = &ScorePost{ScoreAddress: raw.Address, ContentTxHash: h, Value: raw.Value}

	case ActionScoreComment:
		var raw struct {
			Address   string `json:"address"`
			CommentID string `json:"commentid"`
			Value     int    `json:"value"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, decodeErrorf("ACTION_SCORE_COMMENT: %v", err)
		}
		h, err := ContentHashFromHex(raw.CommentID)
		if err != nil {
			return nil, err
		}
		if raw.Value != -1 && raw.Value != 1 {
			return nil, decodeErrorf("ACTION_SCORE_COMMENT: value %d out of range {-1,1}", raw.Value)
		}
		tx.ScoreComment = &ScoreComment{ScoreAddress: raw.Address, CommentTxHash: h, Value: raw.Value}

	case ActionSubscribe, ActionSubscribePrivate, ActionSubscribeCancel:
		var raw struct {
			Address   string `json:"address"`
			AddressTo string `json:"address_to"`
			Language  string `json:"lang"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, decodeErrorf("%s: %v", kind, err)
		}
		tx.Subscribe = &Subscribe{Address: raw.Address, AddressTo: raw.AddressTo, Language: newOptionalString(raw.Language)}

	case ActionBlocking, ActionBlockingCancel:
		var raw struct {
			Address   string `json:"address"`
			AddressTo string `json:"address_to"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, decodeErrorf("%s: %v", kind, err)
		}
		tx.Blocking = &Blocking{Address: raw.Address, AddressTo: raw.AddressTo}

	case ActionComplain:
		var raw struct {
			Address string `json:"address"`
			Share   string `json:"share"`
			Reason  int    `json:"reason"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, decodeErrorf("ACTION_COMPLAIN: %v", err)
		}
		h, err := ContentHashFromHex(raw.Share)
		if err != nil {
			return nil, err
		}
		tx.Complain = &Complain{Address: raw.Address, ContentTxHash: h, Reason: raw.Reason}

	default:
		return nil, makeError(ErrUnknownKind, "unrecognized kind: "+kind.String())
	}

	return tx, nil
}

// postRaw is the JSON shape shared by Post, Video and Translate payloads.
type postRaw struct {
	Address  string   `json:"address"`
	TxidEdit string   `json:"txidedit"`
	TxidRepost string `json:"txidrepost"`
	Language string   `json:"lang"`
	Caption  string   `json:"caption"`
	Message  string   `json:"message"`
	Tags     []string `json:"tags"`
	Images   []string `json:"images"`
	URL      string   `json:"url"`
	Settings string   `json:"settings"`
}

func deserializePost(payload []byte) (*Post, error) {
	var raw postRaw
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, decodeErrorf("CONTENT_POST: %v", err)
	}
	p := &Post{
		Address:  raw.Address,
		Language: raw.Language,
		Caption:  raw.Caption,
		Message:  raw.Message,
		Tags:     raw.Tags,
		Images:   raw.Images,
		URL:      raw.URL,
		Settings: raw.Settings,
	}
	if raw.TxidEdit != "" {
		h, err := ContentHashFromHex(raw.TxidEdit)
		if err != nil {
			return nil, err
		}
		p.RootTxHash = optionalHash{Valid: true, Value: h}
	}
	if raw.TxidRepost != "" {
		h, err := ContentHashFromHex(raw.TxidRepost)
		if err != nil {
			return nil, err
		}
		p.RelayTxHash = optionalHash{Valid: true, Value: h}
	}
	return p, nil
}

type commentRaw struct {
	Address    string `json:"address"`
	OTxid      string `json:"otxid"` // post/content being commented on
	TxidEdit   string `json:"txidedit"`
	TxidRepost string `json:"txidrepost"`
	Language   string `json:"lang"`
	Message    string `json:"message"`
}

func deserializeComment(payload []byte) (*Comment, error) {
	var raw commentRaw
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, decodeErrorf("CONTENT_COMMENT: %v", err)
	}
	contentHash, err := ContentHashFromHex(raw.OTxid)
	if err != nil {
		return nil, err
	}
	c := &Comment{
		Address:       raw.Address,
		Language:      raw.Language,
		Message:       raw.Message,
		ContentTxHash: contentHash,
	}
	if raw.TxidEdit != "" {
		h, err := ContentHashFromHex(raw.TxidEdit)
		if err != nil {
			return nil, err
		}
		c.RootTxHash = optionalHash{Valid: true, Value: h}
	}
	if raw.TxidRepost != "" {
		h, err := ContentHashFromHex(raw.TxidRepost)
		if err != nil {
			return nil, err
		}
		c.RelayTxHash = optionalHash{Valid: true, Value: h}
	}
	return c, nil
}

// Serialize re-encodes a Transaction's payload back to the JSON shape
// deserialize reads, per spec.md §4.1's serialize(model) -> payload. Only
// the canonical fields are written; presentation-only fields never
// existed on the model to begin with. CONTENT_COMMENT_DELETE,
// CONTENT_SERVERPING, ACCOUNT_VIDEO_SERVER and ACCOUNT_MESSAGE_SERVER are
// not encoded: for those kinds, as for NOT_SUPPORTED, Serialize returns an
// ErrUnknownKind error.
func Serialize(tx *Transaction) ([]byte, error) {
	switch tx.Kind {
	case AccountUser:
		u := tx.User
		referrer := ""
		if u.Referrer.Valid {
			referrer = u.Referrer.Value
		}
		return json.Marshal(struct {
			Address  string `json:"address"`
			Referrer string `json:"referrer"`
			Name     string `json:"name"`
			Language string `json:"lang"`
			Avatar   string `json:"avatar"`
			About    string `json:"about"`
			URL      string `json:"url"`
		}{u.Address, referrer, u.Name, u.Language, u.Avatar, u.About, u.URL})

	case ContentPost, ContentVideo, ContentTranslate:
		p := tx.Post
		raw := postRaw{
			Address: p.Address, Language: p.Language, Caption: p.Caption,
			Message: p.Message, Tags: p.Tags, Images: p.Images, URL: p.URL,
			Settings: p.Settings,
		}
		if p.RootTxHash.Valid {
			raw.TxidEdit = p.RootTxHash.Value.String()
		}
		if p.RelayTxHash.Valid {
			raw.TxidRepost = p.RelayTxHash.Value.String()
		}
		return json.Marshal(raw)

	case ContentComment:
		c := tx.Comment
		raw := commentRaw{
			Address: c.Address, OTxid: c.ContentTxHash.String(),
			Language: c.Language, Message: c.Message,
		}
		if c.RootTxHash.Valid {
			raw.TxidEdit = c.RootTxHash.Value.String()
		}
		if c.RelayTxHash.Valid {
			raw.TxidRepost = c.RelayTxHash.Value.String()
		}
		return json.Marshal(raw)

	case ActionScorePost:
		s := tx.ScorePost
		return json.Marshal(struct {
			Address string `json:"address"`
			Share   string `json:"share"`
			Value   int    `json:"value"`
		}{s.ScoreAddress, s.ContentTxHash.String(), s.Value})

	case ActionScoreComment:
		s := tx.ScoreComment
		return json.Marshal(struct {
			Address   string `json:"address"`
			CommentID string `json:"commentid"`
			Value     int    `json:"value"`
		}{s.ScoreAddress, s.CommentTxHash.String(), s.Value})

	case ActionSubscribe, ActionSubscribePrivate, ActionSubscribeCancel:
		s := tx.Subscribe
		lang := ""
		if s.Language.Valid {
			lang = s.Language.Value
		}
		return json.Marshal(struct {
			Address   string `json:"address"`
			AddressTo string `json:"address_to"`
			Language  string `json:"lang"`
		}{s.Address, s.AddressTo, lang})

	case ActionBlocking, ActionBlockingCancel:
		b := tx.Blocking
		return json.Marshal(struct {
			Address   string `json:"address"`
			AddressTo string `json:"address_to"`
		}{b.Address, b.AddressTo})

	case ActionComplain:
		c := tx.Complain
		return json.Marshal(struct {
			Address string `json:"address"`
			Share   string `json:"share"`
			Reason  int    `json:"reason"`
		}{c.Address, c.ContentTxHash.String(), c.Reason})

	default:
		return nil, makeError(ErrUnknownKind, "unrecognized kind: "+tx.Kind.String())
	}
}
