package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// CountResponse mirrors the shape of a bulk update/delete result. A
// cross-owner write lands here with Count 0 instead of an error.
type CountResponse struct {
	Count int64 `json:"count"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("Failed to encode response:", err)
	}
}
