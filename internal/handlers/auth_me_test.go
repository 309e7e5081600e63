package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/parthbuilds/Shubha-Kuteer/internal/middleware"
	"github.com/parthbuilds/Shubha-Kuteer/internal/models"
)

const testJWTSecret = "test-secret"

func setupCustomerDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func authedGet(t *testing.T, router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCustomerMe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupCustomerDB(t)

	customer := models.Customer{
		Name:         "Asha",
		Email:        "a@x.com",
		Phone:        "9900112233",
		PasswordHash: "irrelevant",
		IsActive:     true,
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}

	token, err := issueCustomerToken(customer.ID, customer.Email, testJWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	router := gin.New()
	router.GET("/api/auth/me", middleware.UserAuth(testJWTSecret), Me(db))

	w := authedGet(t, router, "/api/auth/me", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	user, ok := body["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected user object, got %v", body)
	}
	if user["email"] != "a@x.com" || user["name"] != "Asha" {
		t.Fatalf("profile does not match the registered customer: %v", user)
	}
}

func TestCustomerMeRejectsMissingAndBadTokens(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupCustomerDB(t)

	router := gin.New()
	router.GET("/api/auth/me", middleware.UserAuth(testJWTSecret), Me(db))

	if w := authedGet(t, router, "/api/auth/me", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", w.Code)
	}

	wrongKey, err := issueCustomerToken(1, "a@x.com", "some-other-secret", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if w := authedGet(t, router, "/api/auth/me", wrongKey); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong signing key: expected 401, got %d", w.Code)
	}
}

func TestCustomerMeDeletedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupCustomerDB(t)

	token, err := issueCustomerToken(42, "gone@x.com", testJWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	router := gin.New()
	router.GET("/api/auth/me", middleware.UserAuth(testJWTSecret), Me(db))

	if w := authedGet(t, router, "/api/auth/me", token); w.Code != http.StatusNotFound {
		t.Fatalf("valid token for deleted user: expected 404, got %d", w.Code)
	}
}

func signAdminToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAdminMe(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/api/admin/auth/me", middleware.AdminAuth(testJWTSecret), AdminMe())

	token := signAdminToken(t, jwt.MapClaims{
		"sub":   "7",
		"role":  "admin",
		"email": "admin@x.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	w := authedGet(t, router, "/api/admin/auth/me", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	admin, ok := body["admin"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected admin object, got %v", body)
	}
	if admin["id"] != "7" || admin["email"] != "admin@x.com" || admin["role"] != "admin" {
		t.Fatalf("identity does not match the token claims: %v", admin)
	}
}

func TestAdminMeRejectsNonAdminToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/api/admin/auth/me", middleware.AdminAuth(testJWTSecret), AdminMe())

	token := signAdminToken(t, jwt.MapClaims{
		"userId": "3",
		"email":  "a@x.com",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	if w := authedGet(t, router, "/api/admin/auth/me", token); w.Code != http.StatusForbidden {
		t.Fatalf("customer token on admin route: expected 403, got %d", w.Code)
	}
}
