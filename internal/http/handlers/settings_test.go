package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/xelyqor/xelyqor-backend/internal/domain"
)

type fakeSettingsRepo struct {
	byUser map[string]*domain.UserSettings
}

func (r *fakeSettingsRepo) GetByUserID(_ context.Context, _ *gorm.DB, userID string) (*domain.UserSettings, error) {
	settings, ok := r.byUser[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return settings, nil
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, _ *gorm.DB, settings *domain.UserSettings) (*domain.UserSettings, error) {
	if r.byUser == nil {
		r.byUser = map[string]*domain.UserSettings{}
	}
	r.byUser[settings.UserID] = settings
	return settings, nil
}

func settingsRouter(t *testing.T, repo *fakeSettingsRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewSettingsHandler(handlerLogger(t), repo)
	router := gin.New()
	router.GET("/settings/:user_id", h.Get)
	router.POST("/settings", h.Save)
	return router
}

func TestSettingsGetDefaultsWhenAbsent(t *testing.T) {
	router := settingsRouter(t, &fakeSettingsRepo{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/settings/user-9", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["chatbot_name"] != domain.DefaultChatbotName || body["chatbot_tone"] != domain.ToneFriendly {
		t.Fatalf("defaults not returned: %v", body)
	}
	if body["avatar_colour"] != domain.DefaultAvatarColour {
		t.Fatalf("default colour missing: %v", body)
	}
}

func TestSettingsSaveThenGet(t *testing.T) {
	repo := &fakeSettingsRepo{}
	router := settingsRouter(t, repo)

	payload := `{"user_id":"user-9","display_name":"Sam","chatbot_name":"Ada","chatbot_tone":"socratic"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/settings", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("save: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	stored := repo.byUser["user-9"]
	if stored == nil || stored.ChatbotName != "Ada" || stored.ChatbotTone != domain.ToneSocratic {
		t.Fatalf("not stored: %+v", stored)
	}
	if stored.AvatarColour != domain.DefaultAvatarColour {
		t.Fatalf("colour default not applied: %q", stored.AvatarColour)
	}
}

func TestSettingsSaveRejectsUnknownTone(t *testing.T) {
	router := settingsRouter(t, &fakeSettingsRepo{})

	payload := `{"user_id":"user-9","chatbot_tone":"sarcastic"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/settings", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
