package apperror

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestContext(method string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("response has no error object: %v", body)
	}
	return errObj
}

func TestHTTPErrorHandler_AppError(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := HTTPErrorHandler(log)

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "conflict",
			err:         NewConflict("User already exists"),
			wantStatus:  http.StatusConflict,
			wantCode:    "conflict",
			wantMessage: "User already exists",
		},
		{
			name:        "unauthorized",
			err:         ErrUnauthorized,
			wantStatus:  http.StatusUnauthorized,
			wantCode:    "unauthorized",
			wantMessage: "Authentication required",
		},
		{
			name:        "bad request with custom message",
			err:         NewBadRequest("Prompt is required"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "bad_request",
			wantMessage: "Prompt is required",
		},
		{
			name:        "internal hides details",
			err:         NewInternal(io.ErrUnexpectedEOF),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "internal_error",
			wantMessage: "Something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodGet)
			handler(tt.err, c)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			errObj := decodeError(t, rec)
			if errObj["code"] != tt.wantCode {
				t.Errorf("code = %v, want %q", errObj["code"], tt.wantCode)
			}
			if errObj["message"] != tt.wantMessage {
				t.Errorf("message = %v, want %q", errObj["message"], tt.wantMessage)
			}
		})
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := HTTPErrorHandler(log)

	c, rec := newTestContext(http.MethodGet)
	handler(echo.NewHTTPError(http.StatusNotFound, "Not Found"), c)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	errObj := decodeError(t, rec)
	if errObj["code"] != "not_found" {
		t.Errorf("code = %v, want %q", errObj["code"], "not_found")
	}
}

func TestHTTPErrorHandler_UnknownError(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := HTTPErrorHandler(log)

	c, rec := newTestContext(http.MethodGet)
	handler(io.ErrClosedPipe, c)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	errObj := decodeError(t, rec)
	if errObj["message"] != "Something went wrong" {
		t.Errorf("unknown errors must map to a generic message, got %v", errObj["message"])
	}
}

func TestHTTPErrorHandler_HeadRequest(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := HTTPErrorHandler(log)

	c, rec := newTestContext(http.MethodHead)
	handler(ErrNotFound, c)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("HEAD response must have no body, got %q", rec.Body.String())
	}
}
