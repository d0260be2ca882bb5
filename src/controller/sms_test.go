package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/manusiele/therapyflow-sub000/src/schemas"
	"github.com/manusiele/therapyflow-sub000/src/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSMSTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logrus.New()

	smsController := NewSMSController(service.NewSMSService(nil), log)

	r := gin.New()
	r.POST("/api/notifications/sms", smsController.SendSMS)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSendSMSInvalidPhone(t *testing.T) {
	r := newSMSTestRouter()

	w := postJSON(t, r, "/api/notifications/sms", schemas.SendSMSRequest{
		To:      "notanumber",
		Message: "hi",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp schemas.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, http.StatusBadRequest, errResp.Status)
	assert.NotEmpty(t, errResp.Detail)
}

func TestSendSMSDemoDelivery(t *testing.T) {
	r := newSMSTestRouter()

	w := postJSON(t, r, "/api/notifications/sms", schemas.SendSMSRequest{
		To:      "+15551234567",
		Message: "hi",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp schemas.SendSMSResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Demo)
}

func TestSendSMSMalformedBody(t *testing.T) {
	r := newSMSTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/notifications/sms", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
