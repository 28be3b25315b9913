package pagination

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// 游标是 base64url(JSON) 的不透明 token，自描述、无服务端状态。
// 每个端点一种强类型游标，payload 带版本号和类型标记，解码时严格校验，
// 避免两套实现之间字段名漂移的问题。

var ErrInvalidCursor = errors.New("invalid cursor")

const cursorVersion = 1

const (
	kindPost    = "post"
	kindComment = "comment"
	kindReply   = "reply"
)

// PostCursor 信息流边界：上一页最后一条的 (hotScore, id)
type PostCursor struct {
	HotScore float64
	ID       string
}

// CommentCursor 根评论边界：(priority, engagementScore, id)
type CommentCursor struct {
	Priority        int
	EngagementScore int64
	ID              string
}

// ReplyCursor 回复边界；回复按 id 升序翻页，只需边界 id
type ReplyCursor struct {
	ID string
}

type postCursorPayload struct {
	V        int     `json:"v"`
	Kind     string  `json:"k"`
	HotScore float64 `json:"hs"`
	ID       string  `json:"id"`
}

type commentCursorPayload struct {
	V               int    `json:"v"`
	Kind            string `json:"k"`
	Priority        int    `json:"p"`
	EngagementScore int64  `json:"e"`
	ID              string `json:"id"`
}

type replyCursorPayload struct {
	V    int    `json:"v"`
	Kind string `json:"k"`
	ID   string `json:"id"`
}

func EncodePostCursor(c PostCursor) string {
	return encode(postCursorPayload{V: cursorVersion, Kind: kindPost, HotScore: c.HotScore, ID: c.ID})
}

func DecodePostCursor(token string) (PostCursor, error) {
	var p postCursorPayload
	if err := decode(token, &p); err != nil {
		return PostCursor{}, err
	}
	if err := checkHeader(p.V, p.Kind, kindPost, p.ID); err != nil {
		return PostCursor{}, err
	}
	return PostCursor{HotScore: p.HotScore, ID: p.ID}, nil
}

func EncodeCommentCursor(c CommentCursor) string {
	return encode(commentCursorPayload{V: cursorVersion, Kind: kindComment, Priority: c.Priority, EngagementScore: c.EngagementScore, ID: c.ID})
}

func DecodeCommentCursor(token string) (CommentCursor, error) {
	var p commentCursorPayload
	if err := decode(token, &p); err != nil {
		return CommentCursor{}, err
	}
	if err := checkHeader(p.V, p.Kind, kindComment, p.ID); err != nil {
		return CommentCursor{}, err
	}
	return CommentCursor{Priority: p.Priority, EngagementScore: p.EngagementScore, ID: p.ID}, nil
}

func EncodeReplyCursor(c ReplyCursor) string {
	return encode(replyCursorPayload{V: cursorVersion, Kind: kindReply, ID: c.ID})
}

func DecodeReplyCursor(token string) (ReplyCursor, error) {
	var p replyCursorPayload
	if err := decode(token, &p); err != nil {
		return ReplyCursor{}, err
	}
	if err := checkHeader(p.V, p.Kind, kindReply, p.ID); err != nil {
		return ReplyCursor{}, err
	}
	return ReplyCursor{ID: p.ID}, nil
}

func encode(payload any) string {
	b, _ := json.Marshal(payload)
	return base64.RawURLEncoding.EncodeToString(b)
}

func decode(token string, out any) error {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return fmt.Errorf("%w: bad encoding: %v", ErrInvalidCursor, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: bad payload: %v", ErrInvalidCursor, err)
	}
	return nil
}

func checkHeader(v int, kind, wantKind, id string) error {
	if v != cursorVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidCursor, v)
	}
	if kind != wantKind {
		return fmt.Errorf("%w: kind %q, want %q", ErrInvalidCursor, kind, wantKind)
	}
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidCursor)
	}
	return nil
}
