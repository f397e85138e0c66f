package handlers

import (
	"errors"
	"net/http"
	"testing"

	"fundpitch-backend/shared/clients"
	"fundpitch-backend/shared/database/models"
	"fundpitch-backend/shared/utils/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type stubOTPNotifier struct {
	emails  []clients.OTPEmailRequest
	sendErr error
}

func (s *stubOTPNotifier) SendOTPEmail(req clients.OTPEmailRequest) error {
	s.emails = append(s.emails, req)
	return s.sendErr
}

// setupOTPCache points the global cache manager at an embedded Redis
// that lives for the duration of the test.
func setupOTPCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	cache.InitCacheManagerWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return mr
}

func newOTPRouter(db *gorm.DB, notifier *stubOTPNotifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	otpHandler := NewOTPHandler(db, notifier)
	otp := router.Group("/api/auth/otp")
	{
		otp.POST("/request", otpHandler.RequestOTP)
		otp.POST("/verify", otpHandler.VerifyOTP)
	}
	return router
}

func TestRequestOTPEmail(t *testing.T) {
	db := openTestDB(t)
	mr := setupOTPCache(t)
	notifier := &stubOTPNotifier{}
	router := newOTPRouter(db, notifier)

	w := doJSON(t, router, http.MethodPost, "/api/auth/otp/request",
		map[string]string{"email": "founder@acme.example"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if len(notifier.emails) != 1 {
		t.Fatalf("expected 1 OTP email, got %d", len(notifier.emails))
	}
	sent := notifier.emails[0]
	if sent.Email != "founder@acme.example" {
		t.Fatalf("email dispatched to %q", sent.Email)
	}
	if len(sent.Code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", sent.Code)
	}

	stored, err := mr.Get("otp:email:founder@acme.example")
	if err != nil {
		t.Fatalf("code not stored: %v", err)
	}
	if stored != sent.Code {
		t.Fatalf("stored code %q does not match dispatched code %q", stored, sent.Code)
	}
}

func TestRequestOTPPhone(t *testing.T) {
	db := openTestDB(t)
	mr := setupOTPCache(t)
	notifier := &stubOTPNotifier{}
	router := newOTPRouter(db, notifier)

	w := doJSON(t, router, http.MethodPost, "/api/auth/otp/request",
		map[string]string{"phone": "9876543210"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if len(notifier.emails) != 0 {
		t.Fatal("phone OTP must not dispatch an email")
	}
	if _, err := mr.Get("otp:phone:9876543210"); err != nil {
		t.Fatalf("phone code not stored: %v", err)
	}
}

func TestRequestOTPValidation(t *testing.T) {
	db := openTestDB(t)
	setupOTPCache(t)
	router := newOTPRouter(db, &stubOTPNotifier{})

	cases := []struct {
		name string
		body map[string]string
	}{
		{"no identity", map[string]string{}},
		{"bad email", map[string]string{"email": "not-an-email"}},
		{"bad phone", map[string]string{"phone": "12345"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/auth/otp/request", tc.body, nil)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestRequestOTPEmailDispatchFailure(t *testing.T) {
	db := openTestDB(t)
	setupOTPCache(t)
	notifier := &stubOTPNotifier{sendErr: errors.New("smtp relay unreachable")}
	router := newOTPRouter(db, notifier)

	w := doJSON(t, router, http.MethodPost, "/api/auth/otp/request",
		map[string]string{"email": "founder@acme.example"}, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
}

// requestCode runs the request flow and reads the stored code back out
// of the embedded Redis.
func requestCode(t *testing.T, router *gin.Engine, mr *miniredis.Miniredis, channel, identity string) string {
	t.Helper()

	body := map[string]string{channel: identity}
	w := doJSON(t, router, http.MethodPost, "/api/auth/otp/request", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("OTP request failed: %d: %s", w.Code, w.Body.String())
	}

	code, err := mr.Get("otp:" + channel + ":" + identity)
	if err != nil {
		t.Fatalf("code not stored: %v", err)
	}
	return code
}

func TestVerifyOTPExistingUser(t *testing.T) {
	db := openTestDB(t)
	mr := setupOTPCache(t)
	router := newOTPRouter(db, &stubOTPNotifier{})

	user := createUser(t, db, "founder@acme.example", models.UserTypeFounder)
	code := requestCode(t, router, mr, "email", "founder@acme.example")

	w := doJSON(t, router, http.MethodPost, "/api/auth/otp/verify",
		map[string]string{"email": "founder@acme.example", "code": code}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["token"] == nil || body["token"] == "" {
		t.Fatal("expected a session token")
	}
	respUser, ok := body["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected user object, got %v", body["user"])
	}
	if respUser["id"] != user.ID.String() {
		t.Fatalf("expected user %s, got %v", user.ID, respUser["id"])
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("login must not create users, found %d", count)
	}
}

func TestVerifyOTPRegistersNewUser(t *testing.T) {
	db := openTestDB(t)
	mr := setupOTPCache(t)
	router := newOTPRouter(db, &stubOTPNotifier{})

	code := requestCode(t, router, mr, "email", "new@acme.example")

	w := doJSON(t, router, http.MethodPost, "/api/auth/otp/verify",
		map[string]string{"email": "new@acme.example", "code": code, "user_type": "investor"}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var user models.User
	if err := db.Where("email = ?", "new@acme.example").First(&user).Error; err != nil {
		t.Fatalf("registered user not found: %v", err)
	}
	if user.UserType != models.UserTypeInvestor {
		t.Fatalf("expected investor, got %s", user.UserType)
	}

	// The code was consumed on the first verify.
	w = doJSON(t, router, http.MethodPost, "/api/auth/otp/verify",
		map[string]string{"email": "new@acme.example", "code": code}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 on replay, got %d: %s", w.Code, w.Body.String())
	}
}

func TestVerifyOTPRejections(t *testing.T) {
	db := openTestDB(t)
	mr := setupOTPCache(t)
	router := newOTPRouter(db, &stubOTPNotifier{})

	code := requestCode(t, router, mr, "email", "new@acme.example")

	t.Run("wrong code", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/auth/otp/verify",
			map[string]string{"email": "new@acme.example", "code": "999999"}, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown user without type", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/auth/otp/verify",
			map[string]string{"email": "new@acme.example", "code": code}, nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("invalid user types", func(t *testing.T) {
		for _, userType := range []string{"superhero", "admin"} {
			code := requestCode(t, router, mr, "email", "typed@acme.example")
			w := doJSON(t, router, http.MethodPost, "/api/auth/otp/verify",
				map[string]string{"email": "typed@acme.example", "code": code, "user_type": userType}, nil)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("user_type %q: expected 400, got %d: %s", userType, w.Code, w.Body.String())
			}
		}
	})
}

func TestVerifyOTPDuplicateIdentity(t *testing.T) {
	db := openTestDB(t)
	mr := setupOTPCache(t)
	router := newOTPRouter(db, &stubOTPNotifier{})

	existing := models.User{Email: "taken@acme.example", Phone: "9876543210", UserType: models.UserTypeFounder}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	// Fresh email, but the phone in the registration payload is taken.
	code := requestCode(t, router, mr, "email", "new@acme.example")
	w := doJSON(t, router, http.MethodPost, "/api/auth/otp/verify",
		map[string]string{
			"email":     "new@acme.example",
			"phone":     "9876543210",
			"code":      code,
			"user_type": "investor",
		}, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["error"] != "Email or Phone Number already exists" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
}

func TestVerifyOTPBypassCode(t *testing.T) {
	db := openTestDB(t)
	setupOTPCache(t)
	router := newOTPRouter(db, &stubOTPNotifier{})

	createUser(t, db, "founder@acme.example", models.UserTypeFounder)

	// No prior request; the development bypass code logs straight in.
	w := doJSON(t, router, http.MethodPost, "/api/auth/otp/verify",
		map[string]string{"email": "founder@acme.example", "code": "000000"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
