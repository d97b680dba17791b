package handlers

import (
	"net/http"
	"time"
)

// PingHandler serves the liveness probe. It has no dependencies and no
// failure path: as long as the process is listening it answers Healthy.
type PingHandler struct{}

func NewPingHandler() *PingHandler {
	return &PingHandler{}
}

type pingResponse struct {
	Status           string `json:"status"`
	TimeOfLastUpdate int64  `json:"time_of_last_update"`
}

// Ping always returns 200 with the current unix time.
func (h *PingHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pingResponse{
		Status:           "Healthy",
		TimeOfLastUpdate: time.Now().Unix(),
	})
}
