package middleware

import (
	"bytes"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/momoplay/rank-server/internal/apierr"
	"github.com/momoplay/rank-server/internal/registry"
	"github.com/momoplay/rank-server/pkg/signing"
)

// Signature verifies the body signature on the scoring routes. The client
// sends its tenant ID and the signature as headers; the expected value is
// md5_hex(base64(strip_whitespace(body || app_secret))) with the secret
// resolved from the registry. The body is buffered and restored so the
// handler can still bind it.
//
// Every rejection — missing headers, unknown tenant, unreadable body,
// mismatch — maps to the same signature error; clients learn nothing
// about which step failed.
func Signature(log *zap.Logger, reg *registry.Registry) gin.HandlerFunc {
	log = log.Named("signature")
	return func(c *gin.Context) {
		appid := c.GetHeader("appid")
		sig := c.GetHeader("signature")
		if appid == "" || sig == "" {
			reject(c, log, appid, "missing appid or signature header")
			return
		}

		secret, ok := reg.Secret(appid)
		if !ok {
			reject(c, log, appid, "unknown appid")
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			reject(c, log, appid, "unreadable body")
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if !signing.Verify(body, secret, sig) {
			reject(c, log, appid, "signature mismatch")
			return
		}

		c.Next()
	}
}

func reject(c *gin.Context, log *zap.Logger, appid, reason string) {
	log.Warn("request rejected",
		zap.String("appid", appid),
		zap.String("path", c.Request.URL.Path),
		zap.String("reason", reason))

	e := apierr.SignatureInvalid()
	c.Error(e)
	c.AbortWithStatusJSON(e.Status, gin.H{"code": e.Code, "msg": e.Msg})
}

// AdminToken gates the admin surface behind a static bearer token.
func AdminToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const prefix = "Bearer "
		auth := c.GetHeader("Authorization")

		var e *apierr.Error
		switch {
		case auth == "" || len(auth) <= len(prefix) || auth[:len(prefix)] != prefix:
			e = apierr.MissingToken()
		case auth[len(prefix):] != token:
			e = apierr.InvalidToken()
		default:
			c.Next()
			return
		}

		c.Error(e)
		c.AbortWithStatusJSON(e.Status, gin.H{"code": e.Code, "msg": e.Msg})
	}
}
