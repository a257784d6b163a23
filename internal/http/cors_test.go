package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"single origin", "https://example.com", []string{"https://example.com"}},
		{
			"multiple origins",
			"https://example.com,https://app.example.com",
			[]string{"https://example.com", "https://app.example.com"},
		},
		{
			"whitespace trimmed",
			" https://example.com , https://app.example.com ",
			[]string{"https://example.com", "https://app.example.com"},
		},
		{"empty entries skipped", "https://example.com,,", []string{"https://example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseOrigins(tt.input))
		})
	}
}

func TestCreateCORSMiddleware_Disabled(t *testing.T) {
	assert.Nil(t, createCORSMiddleware(false, "https://example.com", testLogger()))
}

func TestCreateCORSMiddleware_NoOrigins(t *testing.T) {
	assert.Nil(t, createCORSMiddleware(true, "", testLogger()))
}

func TestCreateCORSMiddleware_AllowsConfiguredOrigin(t *testing.T) {
	middleware := createCORSMiddleware(true, "https://example.com", testLogger())
	require.NotNil(t, middleware)

	router := gin.New()
	router.Use(middleware)
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "http://api.internal/test", nil)
	r.Header.Set("Origin", "https://example.com")
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCreateCORSMiddleware_RejectsUnknownOrigin(t *testing.T) {
	middleware := createCORSMiddleware(true, "https://example.com", testLogger())
	require.NotNil(t, middleware)

	router := gin.New()
	router.Use(middleware)
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.Header.Set("Origin", "https://evil.example.org")
	router.ServeHTTP(w, r)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
