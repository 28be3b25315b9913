package pagination

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostCursorRoundTrip(t *testing.T) {
	orig := PostCursor{HotScore: 1.4475, ID: "post-42"}
	got, err := DecodePostCursor(EncodePostCursor(orig))
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}

func TestCommentCursorRoundTrip(t *testing.T) {
	orig := CommentCursor{Priority: 2, EngagementScore: 17, ID: "comment-9"}
	got, err := DecodeCommentCursor(EncodeCommentCursor(orig))
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}

func TestReplyCursorRoundTrip(t *testing.T) {
	orig := ReplyCursor{ID: "reply-3"}
	got, err := DecodeReplyCursor(EncodeReplyCursor(orig))
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}

func TestDecodeRejectsMalformedToken(t *testing.T) {
	cases := []string{
		"not-base64!!!",
		base64.RawURLEncoding.EncodeToString([]byte("not json")),
		base64.RawURLEncoding.EncodeToString([]byte(`{"v":1,"k":"post","hs":"high","id":"x"}`)), // 字段类型不对
		base64.RawURLEncoding.EncodeToString([]byte(`{"v":1,"k":"post","hs":1,"id":"x","extra":true}`)),
		base64.RawURLEncoding.EncodeToString([]byte(`{"v":2,"k":"post","hs":1,"id":"x"}`)), // 未知版本
		base64.RawURLEncoding.EncodeToString([]byte(`{"v":1,"k":"post","hs":1,"id":""}`)),  // 空 id
	}
	for _, token := range cases {
		_, err := DecodePostCursor(token)
		assert.ErrorIs(t, err, ErrInvalidCursor, "token: %s", token)
	}
}

func TestDecodeRejectsKindMismatch(t *testing.T) {
	// 帖子游标不能冒充评论/回复游标
	token := EncodePostCursor(PostCursor{HotScore: 1, ID: "x"})
	_, err := DecodeReplyCursor(token)
	assert.ErrorIs(t, err, ErrInvalidCursor)

	_, err = DecodeCommentCursor(EncodeReplyCursor(ReplyCursor{ID: "x"}))
	assert.ErrorIs(t, err, ErrInvalidCursor)
}
