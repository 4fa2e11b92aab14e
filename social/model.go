// Copyright (c) 2024 The Pocketnet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package social

// Transaction is the canonical in-memory representation of a materialized
// social transaction. It is a tagged sum: Kind selects which of the
// kind-specific payload pointers is populated. Consumers pattern-match on
// Kind rather than type-asserting or virtual-dispatching, per the
// "polymorphic transaction dispatch" re-architecture in spec.md §9.
//
// Hash is the domain-computed canonical content hash (ContentHash), never
// the chain txid. Time is the block time carried by the transaction,
// presentation-only fields (e.g. a human display time) never enter it.
type Transaction struct {
	Kind Kind
	Hash ContentHash
	Time int64

	Post          *Post
	Comment       *Comment
	CommentDelete *CommentDelete
	ScorePost     *ScorePost
	ScoreComment  *ScoreComment
	Subscribe     *Subscribe
	Blocking      *Blocking
	Complain      *Complain
	User          *User
	VideoServer   *VideoServer
	MessageServer *MessageServer
	ServerPing    *ServerPing
}

// optionalString is a nullable string payload field: present/absent
// without manual lifetime management, replacing the source's owning
// std::string* per spec.md §9.
type optionalString struct {
	Valid bool
	Value string
}

// newOptionalString builds a present optionalString, or an absent one if
// the input is empty.
func newOptionalString(s string) optionalString {
	if s == "" {
		return optionalString{}
	}
	return optionalString{Valid: true, Value: s}
}

// optionalHash is a nullable ContentHash payload field.
type optionalHash struct {
	Valid bool
	Value ContentHash
}

// Post is the payload of a CONTENT_POST (and, sharing its shape per
// original_source/models/dto/Post.h, CONTENT_VIDEO / CONTENT_TRANSLATE)
// transaction.
type Post struct {
	Address  string
	RootTxHash optionalHash
	RelayTxHash optionalHash
	Language string
	Caption  string
	Message  string
	Tags     []string
	Images   []string
	URL      string
	Settings string
}

// IsEdit reports whether this post is an edit of an earlier post: its
// RootTxHash, when present, differs from the post's own canonical self
// hash. Callers pass the post's own computed hash (the model's Hash field
// after CanonicalHash) since Post itself does not carry it.
func (p *Post) IsEdit(selfHash ContentHash) bool {
	return p.RootTxHash.Valid && p.RootTxHash.Value != selfHash
}

// Comment is the payload of a CONTENT_COMMENT transaction.
type Comment struct {
	Address     string
	RootTxHash  optionalHash
	RelayTxHash optionalHash
	Language    string
	Message     string
	ContentTxHash ContentHash // tx hash of the post/content being commented on
}

// IsEdit reports whether this comment is an edit of an earlier comment.
func (c *Comment) IsEdit(selfHash ContentHash) bool {
	return c.RootTxHash.Valid && c.RootTxHash.Value != selfHash
}

// CommentDelete is the payload of a CONTENT_COMMENT_DELETE transaction.
type CommentDelete struct {
	Address       string
	CommentTxHash ContentHash
}

// ScorePost is the payload of an ACTION_SCORE_POST transaction: a rating
// in {1..5} from ScoreAddress to the post identified by ContentTxHash,
// authored by ContentAddress.
type ScorePost struct {
	ScoreAddress   string
	ContentAddress string
	ContentTxHash  ContentHash
	Value          int
}

// ScoreComment is the payload of an ACTION_SCORE_COMMENT transaction: a
// vote in {-1, +1} from ScoreAddress on the comment identified by
// CommentTxHash.
type ScoreComment struct {
	ScoreAddress  string
	CommentTxHash ContentHash
	Value         int
}

// Subscribe is the shared payload shape of ACTION_SUBSCRIBE,
// ACTION_SUBSCRIBE_PRIVATE and ACTION_SUBSCRIBE_CANCEL.
type Subscribe struct {
	Address       string
	AddressTo     string
	Language      optionalString
}

// Blocking is the shared payload shape of ACTION_BLOCKING and
// ACTION_BLOCKING_CANCEL.
type Blocking struct {
	Address   string
	AddressTo string
}

// Complain is the payload of an ACTION_COMPLAIN transaction.
type Complain struct {
	Address       string
	ContentTxHash ContentHash
	Reason        int
}

// User is the payload of an ACCOUNT_USER transaction.
type User struct {
	Address  string
	Referrer optionalString
	Name     string
	Language string
	Avatar   string
	About    string
	URL      string
}

// VideoServer is the payload of an ACCOUNT_VIDEO_SERVER transaction.
type VideoServer struct {
	Address string
	Name    string
	URL     string
}

// MessageServer is the payload of an ACCOUNT_MESSAGE_SERVER transaction.
type MessageServer struct {
	Address string
	Name    string
	URL     string
}

// ServerPing is the payload of a CONTENT_SERVERPING transaction.
type ServerPing struct {
	Address string
}

// ScoreData is the normalized score tuple consensus checks operate on,
// per spec.md §3. Both numeric address ids and textual address hashes are
// carried because different historical checkpoints count by one or the
// other.
type ScoreData struct {
	ScoreKind         Kind
	ScoreAddressID    int64
	ScoreAddressHash  string
	ContentAddressID  int64
	ContentAddressHash string
	ContentTxHash     ContentHash
	Value             int
}

// NewScoreDataFromScorePost builds the ScoreData tuple for an
// ACTION_SCORE_POST transaction. scoreAddressID/contentAddressID are the
// store's numeric surrogates for ScoreAddress/ContentAddress; hosts look
// these up when indexing the transaction.
func NewScoreDataFromScorePost(s *ScorePost, scoreAddressID, contentAddressID int64) *ScoreData {
	return &ScoreData{
		ScoreKind:          ActionScorePost,
		ScoreAddressID:     scoreAddressID,
		ScoreAddressHash:   s.ScoreAddress,
		ContentAddressID:   contentAddressID,
		ContentAddressHash: s.ContentAddress,
		ContentTxHash:      s.ContentTxHash,
		Value:              s.Value,
	}
}

// NewScoreDataFromScoreComment builds the ScoreData tuple for an
// ACTION_SCORE_COMMENT transaction. contentAddressID/contentAddressHash
// identify the comment's author, resolved by the host from
// s.CommentTxHash.
func NewScoreDataFromScoreComment(s *ScoreComment, scoreAddressID, contentAddressID int64, contentAddressHash string) *ScoreData {
	return &ScoreData{
		ScoreKind:          ActionScoreComment,
		ScoreAddressID:     scoreAddressID,
		ScoreAddressHash:   s.ScoreAddress,
		ContentAddressID:   contentAddressID,
		ContentAddressHash: contentAddressHash,
		ContentTxHash:      s.CommentTxHash,
		Value:              s.Value,
	}
}
