package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/manusiele/therapyflow-sub000/src/daily"
	"github.com/manusiele/therapyflow-sub000/src/schemas"
	"github.com/manusiele/therapyflow-sub000/src/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakeDailyAPI serves a minimal rooms API: the first create succeeds, a
// repeat create answers 400 "already exists", and GET returns the room.
func newFakeDailyAPI(t *testing.T) *httptest.Server {
	t.Helper()

	rooms := make(map[string]bool)

	mux := http.NewServeMux()
	mux.HandleFunc("/rooms", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if rooms[req.Name] {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, `{"error":"invalid-request-error","info":"a room named %s already exists"}`, req.Name)
			return
		}
		rooms[req.Name] = true
		fmt.Fprintf(w, `{"id":"id-%s","name":"%s","url":"https://example.daily.co/%s"}`, req.Name, req.Name, req.Name)
	})
	mux.HandleFunc("/rooms/", func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/rooms/")
		if !rooms[name] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"id":"id-%s","name":"%s","url":"https://example.daily.co/%s"}`, name, name, name)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newRoomTestRouter(provider service.RoomProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logrus.New()

	roomController := NewRoomController(service.NewRoomService(provider), log)

	r := gin.New()
	r.POST("/api/daily/create-room", roomController.CreateRoom)
	return r
}

func TestCreateRoomMissingName(t *testing.T) {
	r := newRoomTestRouter(daily.NewClient("test-key", newFakeDailyAPI(t).URL))

	w := postJSON(t, r, "/api/daily/create-room", schemas.CreateRoomRequest{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRoomWithoutCredentials(t *testing.T) {
	r := newRoomTestRouter(nil)

	w := postJSON(t, r, "/api/daily/create-room", schemas.CreateRoomRequest{RoomName: "some-room"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCreateRoomSuccess(t *testing.T) {
	r := newRoomTestRouter(daily.NewClient("test-key", newFakeDailyAPI(t).URL))

	w := postJSON(t, r, "/api/daily/create-room", schemas.CreateRoomRequest{RoomName: "t1p1-room"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp schemas.CreateRoomResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.False(t, resp.Exists)
	assert.Equal(t, "t1p1-room", resp.Room.Name)
	assert.NotEmpty(t, resp.Room.URL)
}

// Both participants resolve the room name independently, both create it, and
// the second create reports the room as already existing.
func TestCreateRoomEndToEndIdempotent(t *testing.T) {
	r := newRoomTestRouter(daily.NewClient("test-key", newFakeDailyAPI(t).URL))

	therapistResolved := service.ResolveRoomName("T1", "P1", "2025-01-01")
	patientResolved := service.ResolveRoomName("T1", "P1", "2025-01-01")
	require.Equal(t, therapistResolved, patientResolved)

	first := postJSON(t, r, "/api/daily/create-room", schemas.CreateRoomRequest{RoomName: therapistResolved})
	require.Equal(t, http.StatusOK, first.Code)

	var firstResp schemas.CreateRoomResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &firstResp))
	assert.False(t, firstResp.Exists)

	second := postJSON(t, r, "/api/daily/create-room", schemas.CreateRoomRequest{RoomName: patientResolved})
	require.Equal(t, http.StatusOK, second.Code)

	var secondResp schemas.CreateRoomResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &secondResp))
	assert.True(t, secondResp.Success)
	assert.True(t, secondResp.Exists)
	assert.Equal(t, firstResp.Room.URL, secondResp.Room.URL)
}
