package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisionLabels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/vision/labels", VisionLabels)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/vision/labels", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Available bool     `json:"available"`
		Labels    []string `json:"labels"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Available)
	assert.Len(t, body.Labels, 101)
	assert.Contains(t, body.Labels, "Grilled Salmon")
}
