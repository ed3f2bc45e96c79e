package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MohamedHARBILI/appMoviesBackend/models"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGenerateToken(t *testing.T) {
	user := &models.User{
		Model:    gorm.Model{ID: 1},
		Username: "testuser",
	}

	token, err := GenerateToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Test token validation
	parsedToken, err := jwt.ParseWithClaims(token, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return mySigningKey, nil
	})
	require.NoError(t, err)
	assert.True(t, parsedToken.Valid)

	claims, ok := parsedToken.Claims.(*CustomClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, "app-movies-backend", claims.Issuer)
}

func TestParseAndValidateToken(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		user := &models.User{Model: gorm.Model{ID: 7}, Username: "alice"}
		token, err := GenerateToken(user)
		require.NoError(t, err)

		claims, err := ParseAndValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, "alice", claims.Username)
	})

	t.Run("Malformed token", func(t *testing.T) {
		_, err := ParseAndValidateToken("not-a-token")
		require.Error(t, err)
		assert.Equal(t, "malformed token", err.Error())
	})

	t.Run("Wrong signature", func(t *testing.T) {
		otherKey := []byte("some-other-secret")
		claims := &CustomClaims{UserID: 1, Username: "alice"}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString(otherKey)
		require.NoError(t, err)

		_, err = ParseAndValidateToken(signed)
		require.Error(t, err)
		assert.Equal(t, "invalid token signature", err.Error())
	})
}

// newProtectedService mounts a trivial route behind the AuthFilter.
func newProtectedService() *restful.Container {
	ws := new(restful.WebService)
	ws.Path("/protected")
	ws.Route(ws.GET("").Filter(AuthFilter()).To(func(req *restful.Request, resp *restful.Response) {
		username, _ := req.Attribute("username").(string)
		_ = resp.WriteHeaderAndJson(http.StatusOK, map[string]string{"username": username}, restful.MIME_JSON)
	}))

	container := restful.NewContainer()
	container.Add(ws)
	return container
}

func TestAuthFilter(t *testing.T) {
	t.Run("No token", func(t *testing.T) {
		container := newProtectedService()

		req := httptest.NewRequest("GET", "/protected", nil)
		w := httptest.NewRecorder()
		container.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Bad header format", func(t *testing.T) {
		container := newProtectedService()

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Basic abc123")
		w := httptest.NewRecorder()
		container.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Invalid token", func(t *testing.T) {
		container := newProtectedService()

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()
		container.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid token passes user attributes along", func(t *testing.T) {
		container := newProtectedService()

		user := &models.User{Model: gorm.Model{ID: 42}, Username: "alice"}
		token, err := GenerateToken(user)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		container.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alice")
	})
}
