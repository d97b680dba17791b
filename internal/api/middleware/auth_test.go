package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matiasleandrokruk/agentrelay/internal/api/ctxkeys"
	pkgauth "github.com/matiasleandrokruk/agentrelay/pkg/auth"
)

var testSecret = []byte("middleware-secret")

func authProtected(t *testing.T, secret []byte) (http.Handler, *string) {
	t.Helper()
	var seenSubject string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenSubject = ctxkeys.Value(r.Context(), ctxkeys.Subject)
		w.WriteHeader(http.StatusOK)
	})
	return AuthMiddleware(secret)(next), &seenSubject
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	handler, subject := authProtected(t, testSecret)

	token, err := pkgauth.GenerateToken(testSecret, "caller-7", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/invocations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", rr.Code, rr.Body.String())
	}
	if *subject != "caller-7" {
		t.Errorf("subject in context = %q, want caller-7", *subject)
	}
}

func TestAuthMiddleware_MissingOrMalformedHeader(t *testing.T) {
	handler, _ := authProtected(t, testSecret)

	for _, header := range []string{"", "Basic abc", "Bearer", "bearer lowercase"} {
		req := httptest.NewRequest(http.MethodPost, "/invocations", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, rr.Code)
		}
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	handler, _ := authProtected(t, testSecret)

	token, err := pkgauth.GenerateToken([]byte("other-secret"), "caller", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/invocations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	if body := rr.Body.String(); body == "" || body[0] != '{' {
		t.Errorf("401 body not JSON: %q", body)
	}
}

func TestAuthMiddleware_DisabledWithoutSecret(t *testing.T) {
	handler, _ := authProtected(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/invocations", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 when auth disabled", rr.Code)
	}
}
