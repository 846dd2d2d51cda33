package server

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"io"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
)

const rawBodyKey = "interaction_raw_body"

// VerifySignature: Discord 인터랙션 요청의 Ed25519 서명을 검증하는 미들웨어.
// 서명은 timestamp || body 에 대해 계산되며, 실패 시 401로 즉시 종료한다.
// 검증된 원문은 컨텍스트에 저장되어 핸들러가 재사용한다.
func VerifySignature(publicKey ed25519.PublicKey, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		signature := c.GetHeader("X-Signature-Ed25519")
		timestamp := c.GetHeader("X-Signature-Timestamp")
		if signature == "" || timestamp == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		sig, err := hex.DecodeString(signature)
		if err != nil || len(sig) != ed25519.SignatureSize {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		message := append([]byte(timestamp), body...)
		if !ed25519.Verify(publicKey, message, sig) {
			logger.Warn("signature_verification_failed", slog.String("ip", c.ClientIP()))
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(rawBodyKey, body)
		c.Next()
	}
}

// RawBody: 검증 미들웨어가 저장한 요청 원문을 돌려준다.
func RawBody(c *gin.Context) ([]byte, bool) {
	value, ok := c.Get(rawBodyKey)
	if !ok {
		return nil, false
	}
	body, ok := value.([]byte)
	return body, ok
}
