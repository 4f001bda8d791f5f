package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"restaurant-api/internal/api/dto"
	"restaurant-api/internal/api/utils"
	"restaurant-api/internal/db"
)

const healthTimeout = 3 * time.Second

func NewHealthHandler(dbConn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := db.Ping(ctx, dbConn); err != nil {
			utils.WriteError(w, http.StatusServiceUnavailable, "Database connection failed", "DB_UNAVAILABLE", nil)
			return
		}

		utils.WriteJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok", Database: "ok"})
	}
}
