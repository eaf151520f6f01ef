package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearchat/nearchat-backend/internal/delivery/http/handler"
	"github.com/nearchat/nearchat-backend/internal/domain"
	"github.com/nearchat/nearchat-backend/internal/repository/catalog"
	"github.com/nearchat/nearchat-backend/internal/repository/memory"
	"github.com/nearchat/nearchat-backend/internal/usecase/conversation"
	"github.com/nearchat/nearchat-backend/internal/usecase/feed"
	"github.com/nearchat/nearchat-backend/internal/usecase/profile"
	"github.com/nearchat/nearchat-backend/internal/usecase/reply"
)

type cannedGenerator struct {
	text string
}

func (g *cannedGenerator) GenerateReply(context.Context, *domain.ChatConversation, *domain.UserProfile) (string, error) {
	return g.text, nil
}

type testApp struct {
	engine   *gin.Engine
	pipeline *reply.Pipeline
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewMessageStore()
	presence := memory.NewPresenceStore()
	manager := conversation.NewManager(store, catalog.NewStaticCatalog())
	pipeline := reply.NewPipeline(store, presence, manager, &cannedGenerator{text: "So nice to hear from you!"})
	profileUseCase := profile.NewUseCase(store)
	feedUseCase := feed.NewFeedUseCase(catalog.NewStaticCatalog())

	router := NewRouter(
		handler.NewProfileHandler(profileUseCase),
		handler.NewFeedHandler(feedUseCase),
		handler.NewChatHandler(manager, pipeline, profileUseCase),
		handler.NewSessionHandler(manager, profileUseCase),
	)
	return &testApp{engine: router.Setup(), pipeline: pipeline}
}

func (a *testApp) request(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) createProfile(t *testing.T) {
	t.Helper()
	w := a.request(t, http.MethodPost, "/api/v1/profile", `{
		"nickname": "Sky",
		"gender": "Female",
		"age": "20s",
		"language": "English",
		"interests": ["Coffee"],
		"agree_terms": true,
		"agree_privacy": true
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	w := app.request(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.request(t, http.MethodHead, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfileLifecycle(t *testing.T) {
	app := newTestApp(t)

	w := app.request(t, http.MethodGet, "/api/v1/profile", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	app.createProfile(t)

	w = app.request(t, http.MethodGet, "/api/v1/profile", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.UserProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Sky", got.Nickname)
	assert.NotEmpty(t, got.ID)

	// One-time setup: a second create conflicts.
	w = app.request(t, http.MethodPost, "/api/v1/profile", `{
		"nickname": "Luna",
		"gender": "Male",
		"agree_terms": true,
		"agree_privacy": true
	}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateProfileRequiresConsent(t *testing.T) {
	app := newTestApp(t)

	w := app.request(t, http.MethodPost, "/api/v1/profile", `{
		"nickname": "Sky",
		"gender": "Female",
		"agree_terms": true,
		"agree_privacy": false
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRandomProfile(t *testing.T) {
	app := newTestApp(t)

	w := app.request(t, http.MethodGet, "/api/v1/profile/random", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got domain.UserProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotEmpty(t, got.Nickname)
	assert.Len(t, got.Interests, 3)
}

func TestFeedEndpoints(t *testing.T) {
	app := newTestApp(t)

	w := app.request(t, http.MethodGet, "/api/v1/feed", "")
	require.Equal(t, http.StatusOK, w.Code)
	var matches []domain.MatchProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &matches))
	require.Len(t, matches, 4)
	assert.Equal(t, "Ji-won", matches[0].Nickname)

	w = app.request(t, http.MethodGet, "/api/v1/feed/3", "")
	require.Equal(t, http.StatusOK, w.Code)
	var match domain.MatchProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &match))
	assert.Equal(t, "Yuna", match.Nickname)

	w = app.request(t, http.MethodGet, "/api/v1/feed/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOpenConversation(t *testing.T) {
	app := newTestApp(t)

	w := app.request(t, http.MethodPost, "/api/v1/chats", `{"match_id": "1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var conv domain.ChatConversation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conv))
	assert.Equal(t, "chat-1", conv.ID)
	assert.Equal(t, domain.PlaceholderLastMessage, conv.LastMessage)

	// Reopening returns the same conversation.
	w = app.request(t, http.MethodPost, "/api/v1/chats", `{"match_id": "1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.request(t, http.MethodGet, "/api/v1/chats", "")
	require.Equal(t, http.StatusOK, w.Code)
	var summaries []handler.ConversationSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	assert.Len(t, summaries, 1)
}

func TestOpenConversationErrors(t *testing.T) {
	app := newTestApp(t)

	w := app.request(t, http.MethodPost, "/api/v1/chats", `{"match_id": "999"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.request(t, http.MethodPost, "/api/v1/chats", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendMessage(t *testing.T) {
	app := newTestApp(t)
	app.createProfile(t)

	w := app.request(t, http.MethodPost, "/api/v1/chats", `{"match_id": "1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.request(t, http.MethodPost, "/api/v1/chats/chat-1/messages", `{"text": "hi there"}`)
	assert.Equal(t, http.StatusAccepted, w.Code)

	app.pipeline.Wait()

	w = app.request(t, http.MethodGet, "/api/v1/chats/chat-1/typing", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"typing": false}`, w.Body.String())
}

func TestSendMessageErrors(t *testing.T) {
	app := newTestApp(t)

	// No profile yet.
	w := app.request(t, http.MethodPost, "/api/v1/chats/chat-1/messages", `{"text": "hi"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	app.createProfile(t)

	// Unknown conversation.
	w = app.request(t, http.MethodPost, "/api/v1/chats/chat-404/messages", `{"text": "hi"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Missing and whitespace-only text.
	opened := app.request(t, http.MethodPost, "/api/v1/chats", `{"match_id": "1"}`)
	require.Equal(t, http.StatusOK, opened.Code)

	w = app.request(t, http.MethodPost, "/api/v1/chats/chat-1/messages", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.request(t, http.MethodPost, "/api/v1/chats/chat-1/messages", `{"text": "   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	app.pipeline.Wait()
}

func TestSessionReset(t *testing.T) {
	app := newTestApp(t)
	app.createProfile(t)

	w := app.request(t, http.MethodPost, "/api/v1/chats", `{"match_id": "1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.request(t, http.MethodPost, "/api/v1/session/reset", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.request(t, http.MethodGet, "/api/v1/profile", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.request(t, http.MethodGet, "/api/v1/chats", "")
	require.Equal(t, http.StatusOK, w.Code)
	var summaries []handler.ConversationSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	assert.Empty(t, summaries)
}
