package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-predictive-analytics/pkg/helpers"
)

type fakeGen struct {
	reply string
	err   error
	got   string
}

func (f *fakeGen) Generate(_ context.Context, prompt string) (string, error) {
	f.got = prompt
	return f.reply, f.err
}

func serveChat(h *ChatHandler, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/chat", h.Chat)
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestChat(t *testing.T) {
	logger := helpers.NewDiscardLogger()

	gen := &fakeGen{reply: "Sales usually peak in December."}
	rec := serveChat(NewChatHandler(gen, logger), `{"prompt":"When do sales peak?"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"response":"Sales usually peak in December."}`, rec.Body.String())
	assert.Equal(t, "When do sales peak?", gen.got)

	rec = serveChat(NewChatHandler(&fakeGen{err: errors.New("quota")}, logger), `{"prompt":"hi"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"upstream_failure"`)
	assert.NotContains(t, rec.Body.String(), "quota")

	rec = serveChat(NewChatHandler(nil, logger), `{"prompt":"hi"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = serveChat(NewChatHandler(gen, logger), `{"prompt":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
