package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const viewerKey = "viewer_id"

// ViewerIdentity 从 Bearer token 里取 viewer 身份（sub claim）。
// 鉴权本身由外部服务负责；这里 token 缺失或无效一律按匿名处理，
// 不拦截请求——排序只会退化成无个人优先级的公共视角。
func ViewerIdentity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err == nil && parsed.Valid {
				if sub, err := parsed.Claims.GetSubject(); err == nil && sub != "" {
					c.Set(viewerKey, sub)
				}
			}
		}
		c.Next()
	}
}

// ViewerID 当前请求的 viewer，匿名时为空串
func ViewerID(c *gin.Context) string { return c.GetString(viewerKey) }
