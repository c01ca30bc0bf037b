package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/peermart/marketplace-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func protectedRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.GET("/me", Authenticate(db), func(c *gin.Context) {
		user := c.MustGet("user").(models.User)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	r.GET("/admin", Authenticate(db), RequireAdmin, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func signToken(t *testing.T, userID string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func seedUser(t *testing.T, db *gorm.DB, id string, role models.Role, banned bool) models.User {
	t.Helper()
	user := models.User{ID: id, Name: "User " + id, Email: id + "@example.com", Role: role, Banned: banned}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestAuthenticateMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	db := setupTestDB(t)
	r := protectedRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateBearerToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	db := setupTestDB(t)
	seedUser(t, db, "u1", models.RoleUser, false)
	r := protectedRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", time.Hour))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticateSessionCookie(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	db := setupTestDB(t)
	seedUser(t, db, "u1", models.RoleUser, false)
	r := protectedRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: signToken(t, "u1", time.Hour)})
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticateCookieWinsOverHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	db := setupTestDB(t)
	seedUser(t, db, "cookie-user", models.RoleUser, false)
	seedUser(t, db, "header-user", models.RoleUser, false)
	r := protectedRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: signToken(t, "cookie-user", time.Hour)})
	req.Header.Set("Authorization", "Bearer "+signToken(t, "header-user", time.Hour))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cookie-user")
}

func TestAuthenticateExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	db := setupTestDB(t)
	seedUser(t, db, "u1", models.RoleUser, false)
	r := protectedRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", -time.Hour))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	db := setupTestDB(t)
	r := protectedRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "ghost", time.Hour))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateBannedUser(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	db := setupTestDB(t)
	seedUser(t, db, "u1", models.RoleUser, true)
	r := protectedRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", time.Hour))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	db := setupTestDB(t)
	seedUser(t, db, "plain", models.RoleUser, false)
	seedUser(t, db, "boss", models.RoleAdmin, false)
	r := protectedRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "plain", time.Hour))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "boss", time.Hour))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
