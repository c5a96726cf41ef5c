package middleware

import (
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func webhookRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/payment/webhook", PaymentWebhookAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func postForm(r *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/payment/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sign(secret string, form url.Values) string {
	parts := []string{secret}
	for _, f := range []string{"session_ref", "cart_id", "status", "amount", "currency"} {
		parts = append(parts, strings.TrimSpace(form.Get(f)))
	}
	h := sha1.Sum([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(h[:])
}

func webhookForm() url.Values {
	return url.Values{
		"session_ref": {"sess-1"},
		"cart_id":     {"cart-1"},
		"status":      {"A"},
		"amount":      {"49.90"},
		"currency":    {"EUR"},
	}
}

func TestWebhookAcceptsValidSignature(t *testing.T) {
	t.Setenv("PAYMENT_WEBHOOK_SECRET", "s3cret")
	t.Setenv("PAYMENT_MODE", "live")
	r := webhookRouter()

	form := webhookForm()
	form.Set("check", sign("s3cret", form))

	w := postForm(r, form)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhookRejectsBadOrMissingSignature(t *testing.T) {
	t.Setenv("PAYMENT_WEBHOOK_SECRET", "s3cret")
	t.Setenv("PAYMENT_MODE", "live")
	r := webhookRouter()

	form := webhookForm()
	form.Set("check", "deadbeef")
	assert.Equal(t, http.StatusForbidden, postForm(r, form).Code)

	form.Del("check")
	assert.Equal(t, http.StatusForbidden, postForm(r, form).Code)
}

func TestWebhookTamperedFieldBreaksSignature(t *testing.T) {
	t.Setenv("PAYMENT_WEBHOOK_SECRET", "s3cret")
	t.Setenv("PAYMENT_MODE", "live")
	r := webhookRouter()

	form := webhookForm()
	form.Set("check", sign("s3cret", form))
	form.Set("amount", "1.00")

	assert.Equal(t, http.StatusForbidden, postForm(r, form).Code)
}

func TestWebhookSandboxSkipsVerification(t *testing.T) {
	t.Setenv("PAYMENT_WEBHOOK_SECRET", "s3cret")
	t.Setenv("PAYMENT_MODE", "sandbox")
	r := webhookRouter()

	w := postForm(r, webhookForm())
	assert.Equal(t, http.StatusOK, w.Code)
}
