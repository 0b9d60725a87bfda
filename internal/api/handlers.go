// Файл: internal/api/handlers.go
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"spkbot/internal/db"
	"spkbot/internal/models"
)

func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("writeJSON: ошибка кодирования ответа: %v", err)
	}
}

// Healthz — проверка живости для балансировщика.
func (deps ApiDependencies) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetStats отдает агрегированную статистику программы лояльности.
func (deps ApiDependencies) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := deps.Store.AggregateStats()
	if err != nil {
		log.Printf("GetStats: ошибка агрегации: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to aggregate stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type userDTO struct {
	ChatID        int64  `json:"chat_id"`
	Name          string `json:"name"`
	Phone         string `json:"phone,omitempty"`
	Locale        string `json:"locale"`
	Balance       int64  `json:"balance"`
	ReferralCount int    `json:"referral_count"`
	CreatedAt     string `json:"created_at"`
}

func toUserDTO(user models.User) userDTO {
	return userDTO{
		ChatID:        user.ChatID,
		Name:          user.DisplayName(),
		Phone:         user.Phone.String,
		Locale:        user.Locale,
		Balance:       user.Balance,
		ReferralCount: user.ReferralCount,
		CreatedAt:     user.CreatedAt.Format(time.RFC3339),
	}
}

// GetUsers отдает список зарегистрированных пользователей.
func (deps ApiDependencies) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := deps.Store.ListRegistered()
	if err != nil {
		log.Printf("GetUsers: ошибка чтения пользователей: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	dtos := make([]userDTO, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, toUserDTO(user))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetUserHistory отдает проводки конкретного пользователя.
func (deps ApiDependencies) GetUserHistory(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if _, err := deps.Store.GetAccount(chatID); err != nil {
		if errors.Is(err, db.ErrAccountNotFound) {
			writeJSONError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("GetUserHistory: ошибка чтения аккаунта %d: %v", chatID, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	entries, err := deps.Store.History(chatID)
	if err != nil {
		log.Printf("GetUserHistory: ошибка чтения истории %d: %v", chatID, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
