package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/AutoCareServices/carcare-scheduler/internal/models"
)

func postBlockedDate(r *gin.Engine, date string) *httptest.ResponseRecorder {
	body := strings.NewReader(`{"date":"` + date + `","reason":"maintenance"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/blocked-dates", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBlockDate_DuplicateIsValidationErrorNot500(t *testing.T) {
	gdb := newTestDB(t)
	h := NewBlockedDateHandler(gdb)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/blocked-dates", h.Create)

	if w := postBlockedDate(r, "2025-04-01"); w.Code != http.StatusCreated {
		t.Fatalf("first block: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// The duplicate hits the unique index on insert; it must surface as a
	// validation error, not a storage failure.
	w := postBlockedDate(r, "2025-04-01")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate block: expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Code string `json:"error_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != "validation_error" {
		t.Errorf("expected validation_error, got %q", resp.Code)
	}

	var count int64
	gdb.Model(&models.BlockedDate{}).Count(&count)
	if count != 1 {
		t.Errorf("expected a single blocked date row, got %d", count)
	}
}
