// Copyright (c) 2024 The Pocketnet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package social

// Kind identifies the tagged kind of a social transaction. The set is
// closed: every social transaction materializes to exactly one of these,
// with NotSupported standing in for any discriminator the engine does not
// recognize.
type Kind int

// The full closed set of social transaction kinds.
const (
	NotSupported Kind = iota

	AccountUser
	AccountVideoServer
	AccountMessageServer

	ContentPost
	ContentVideo
	ContentTranslate
	ContentServerPing
	ContentComment
	ContentCommentDelete

	ActionScorePost
	ActionScoreComment

	ActionSubscribe
	ActionSubscribePrivate
	ActionSubscribeCancel

	ActionBlocking
	ActionBlockingCancel

	ActionComplain
)

// kindNames is used by Kind.String for human-readable logging; it is not
// consensus-visible and never feeds the canonical hash or any chain rule.
var kindNames = map[Kind]string{
	NotSupported:         "NOT_SUPPORTED",
	AccountUser:          "ACCOUNT_USER",
	AccountVideoServer:   "ACCOUNT_VIDEO_SERVER",
	AccountMessageServer: "ACCOUNT_MESSAGE_SERVER",
	ContentPost:          "CONTENT_POST",
	ContentVideo:         "CONTENT_VIDEO",
	ContentTranslate:     "CONTENT_TRANSLATE",
	ContentServerPing:    "CONTENT_SERVERPING",
	ContentComment:       "CONTENT_COMMENT",
	ContentCommentDelete: "CONTENT_COMMENT_DELETE",
	ActionScorePost:      "ACTION_SCORE_POST",
	ActionScoreComment:   "ACTION_SCORE_COMMENT",
	ActionSubscribe:      "ACTION_SUBSCRIBE",
	ActionSubscribePrivate: "ACTION_SUBSCRIBE_PRIVATE",
	ActionSubscribeCancel:  "ACTION_SUBSCRIBE_CANCEL",
	ActionBlocking:         "ACTION_BLOCKING",
	ActionBlockingCancel:   "ACTION_BLOCKING_CANCEL",
	ActionComplain:         "ACTION_COMPLAIN",
}

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN_KIND"
}
