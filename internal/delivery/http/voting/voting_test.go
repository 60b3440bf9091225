package http_voting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	http_room "github.com/leiven89/BUJIN-YUGI/internal/delivery/http/room"
	"github.com/leiven89/BUJIN-YUGI/internal/model"
	storage_room "github.com/leiven89/BUJIN-YUGI/internal/storage/room"
	usecase_game "github.com/leiven89/BUJIN-YUGI/internal/usecase/game"
	usecase_room "github.com/leiven89/BUJIN-YUGI/internal/usecase/room"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	registry := storage_room.New()
	roomUC := usecase_room.New(registry, 24)
	gameUC := usecase_game.New(registry, 200, model.WinnerSet)

	engine := gin.New()
	rg := engine.Group("/")
	http_room.New(roomUC).RegisterRoutes(rg)
	New(gameUC).RegisterRoutes(rg)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

type roomResponse struct {
	RoomCode      string   `json:"roomCode"`
	Phase         string   `json:"phase"`
	ResultSummary string   `json:"resultSummary"`
	WinnerIDs     []string `json:"winnerIds"`
	Members       []struct {
		ID        string `json:"id"`
		Technique string `json:"technique"`
	} `json:"members"`
	AllSubmitted bool `json:"allSubmitted"`
	AllVoted     bool `json:"allVoted"`
}

func decodeRoom(t *testing.T, w *httptest.ResponseRecorder) roomResponse {
	t.Helper()

	var resp roomResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// bookRoom creates a room hosted by "a" with members "b" and "c".
func bookRoom(t *testing.T, engine *gin.Engine) string {
	t.Helper()

	w := doJSON(t, engine, http.MethodPost, "/rooms", `{"displayName": "A", "callerId": "a"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	code := decodeRoom(t, w).RoomCode

	for _, m := range []struct{ id, name string }{{"b", "B"}, {"c", "C"}} {
		w = doJSON(t, engine, http.MethodPost, "/rooms/"+code+"/join",
			fmt.Sprintf(`{"displayName": %q, "callerId": %q}`, m.name, m.id))
		require.Equal(t, http.StatusOK, w.Code)
	}
	return code
}

func TestStartRequiresHost(t *testing.T) {
	engine := setupRouter()
	code := bookRoom(t, engine)

	w := doJSON(t, engine, http.MethodPost, "/rooms/"+code+"/start", `{"callerId": "b"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error": "host only"}`, w.Body.String())
}

func TestFullRound(t *testing.T) {
	engine := setupRouter()
	code := bookRoom(t, engine)

	w := doJSON(t, engine, http.MethodPost, "/rooms/"+code+"/start", `{"callerId": "a"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "building", decodeRoom(t, w).Phase)

	// Techniques stay hidden until all have submitted.
	for i, m := range []struct{ id, technique string }{
		{"a", "Dragon Strike"},
		{"b", "Iron Wall"},
		{"c", "Flame Kick"},
	} {
		w = doJSON(t, engine, http.MethodPost, "/rooms/"+code+"/technique",
			fmt.Sprintf(`{"callerId": %q, "text": %q}`, m.id, m.technique))
		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeRoom(t, w)
		if i < 2 {
			assert.False(t, resp.AllSubmitted)
			assert.Equal(t, "building", resp.Phase)
			for _, member := range resp.Members {
				assert.Empty(t, member.Technique)
			}
		} else {
			assert.True(t, resp.AllSubmitted)
			assert.Equal(t, "voting", resp.Phase)
			assert.Equal(t, "Dragon Strike", resp.Members[0].Technique)
		}
	}

	w = doJSON(t, engine, http.MethodPost, "/rooms/"+code+"/vote", `{"callerId": "a", "targetId": "a"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, v := range []struct{ voter, target string }{{"a", "b"}, {"b", "c"}} {
		w = doJSON(t, engine, http.MethodPost, "/rooms/"+code+"/vote",
			fmt.Sprintf(`{"callerId": %q, "targetId": %q}`, v.voter, v.target))
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, decodeRoom(t, w).AllVoted)
	}

	w = doJSON(t, engine, http.MethodPost, "/rooms/"+code+"/vote", `{"callerId": "c", "targetId": "b"}`)
	require.Equal(t, http.StatusOK, w.Code)
	final := decodeRoom(t, w)
	assert.True(t, final.AllVoted)
	assert.Equal(t, "result", final.Phase)
	assert.Equal(t, []string{"b"}, final.WinnerIDs)
	assert.Contains(t, final.ResultSummary, "Winner: B (Iron Wall)")
}

func TestTechniqueWrongPhase(t *testing.T) {
	engine := setupRouter()
	code := bookRoom(t, engine)

	w := doJSON(t, engine, http.MethodPost, "/rooms/"+code+"/technique",
		`{"callerId": "a", "text": "Dragon Strike"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "wrong phase"}`, w.Body.String())
}

func TestVoteUnknownRoom(t *testing.T) {
	engine := setupRouter()

	w := doJSON(t, engine, http.MethodPost, "/rooms/000000/vote", `{"callerId": "a", "targetId": "b"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
