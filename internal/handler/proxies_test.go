package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floppahub-rest-api/internal/upstream/chat"
)

type stubResolver struct {
	url string
	err error
}

func (s *stubResolver) Resolve(ctx context.Context, target string) (string, error) {
	return s.url, s.err
}

type stubCompleter struct {
	text string
	err  error
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return s.text, s.err
}

func textFrom(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	env := decodeEnvelope(t, rec)
	var data struct {
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Text
}

func TestDownloaderGeneral(t *testing.T) {
	h := NewDownloaderHandler(&stubResolver{url: "https://cdn.example/video.mp4"})

	req := httptest.NewRequest(http.MethodGet, "/downloader/geral?input=https://social.example/post/1", nil)
	rec := httptest.NewRecorder()
	h.General(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://cdn.example/video.mp4", textFrom(t, rec))
}

func TestDownloaderGeneral_MissingInput(t *testing.T) {
	h := NewDownloaderHandler(&stubResolver{})

	req := httptest.NewRequest(http.MethodGet, "/downloader/geral", nil)
	rec := httptest.NewRecorder()
	h.General(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloaderGeneral_UpstreamFailureIs502(t *testing.T) {
	h := NewDownloaderHandler(&stubResolver{err: errors.New("boom")})

	req := httptest.NewRequest(http.MethodGet, "/downloader/geral?input=x", nil)
	rec := httptest.NewRecorder()
	h.General(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "UPSTREAM_ERROR", decodeEnvelope(t, rec).Error.Code)
}

func TestChatComplete(t *testing.T) {
	h := NewChatHandler(&stubCompleter{text: "the answer"})

	req := httptest.NewRequest(http.MethodGet, "/ai/gpt4?input=question", nil)
	rec := httptest.NewRecorder()
	h.Complete(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "the answer", textFrom(t, rec))
}

func TestChatComplete_FailureDegradesToFallbackText(t *testing.T) {
	h := NewChatHandler(&stubCompleter{err: errors.New("backend down")})

	req := httptest.NewRequest(http.MethodGet, "/ai/gpt4?input=question", nil)
	rec := httptest.NewRecorder()
	h.Complete(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, chat.FallbackText, textFrom(t, rec))
}

func TestChatComplete_MissingInput(t *testing.T) {
	h := NewChatHandler(&stubCompleter{})

	req := httptest.NewRequest(http.MethodGet, "/ai/gpt4", nil)
	rec := httptest.NewRecorder()
	h.Complete(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
