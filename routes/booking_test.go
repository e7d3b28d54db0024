package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"boat-rental-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// buildBookingTestApp assembles a minimal Iris app with the booking routes and a
// JWT verifier, mirroring the production wiring.
func buildBookingTestApp() *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	booking := app.Party("/api/booking", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		booking.Post("/", CreateBooking)
		booking.Patch("/cancel/{id}", CancelBooking)
	}

	app.Build()
	return app
}

func signBookingTestToken() string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(utils.AccessToken{ID: 1})
	return string(token)
}

func TestCreateBookingRequiresAuth(t *testing.T) {
	app := buildBookingTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/booking", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code == http.StatusOK || resp.Code == http.StatusCreated {
		t.Fatalf("expected rejection without token, got %d", resp.Code)
	}
}

func TestCreateBookingRejectsMalformedDates(t *testing.T) {
	app := buildBookingTestApp()

	body := `{"boatID": 1, "startDate": "June 1st", "endDate": "2024-06-05"}`
	req := httptest.NewRequest(http.MethodPost, "/api/booking", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signBookingTestToken())
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed start date, got %d", resp.Code)
	}
}

func TestCreateBookingRejectsInvertedRange(t *testing.T) {
	app := buildBookingTestApp()

	body := `{"boatID": 1, "startDate": "2024-06-10", "endDate": "2024-06-05"}`
	req := httptest.NewRequest(http.MethodPost, "/api/booking", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signBookingTestToken())
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for end date before start date, got %d", resp.Code)
	}
}

func TestCancelBookingRejectsInvalidID(t *testing.T) {
	app := buildBookingTestApp()

	req := httptest.NewRequest(http.MethodPatch, "/api/booking/cancel/notanumber", nil)
	req.Header.Set("Authorization", "Bearer "+signBookingTestToken())
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest && resp.Code != http.StatusNotFound {
		t.Fatalf("expected 400/404 for non-numeric booking id, got %d", resp.Code)
	}
}
