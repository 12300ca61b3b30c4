package core

import (
	"errors"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

const (
	MsgMissingFeedURL = "feed url is not configured"
	MsgMissingFeedKey = "feed api key is not configured"
)

func missingCredential(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(msg)
}

// IsMissingCredential reports whether err was raised because a push was
// requested without a feed url or key.
func IsMissingCredential(err error) bool {
	if errbuilder.CodeOf(err) != errbuilder.CodeFailedPrecondition {
		return false
	}
	var builder *errbuilder.ErrBuilder
	if !errors.As(err, &builder) {
		return false
	}
	return builder.Msg == MsgMissingFeedURL || builder.Msg == MsgMissingFeedKey
}
