package httpapi

import (
	"net/http"

	json "github.com/goccy/go-json"
)

// writeJSON encodes v via goccy/go-json, the pack's fast-JSON dependency,
// instead of encoding/json.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Encoding failure here means v itself is malformed; nothing the
		// client can do about it, so just stop writing.
		return
	}
}

// errorResponse is the structured-reason shape spec.md 7 calls for on
// input-out-of-range errors: "surfaced as an empty result with a
// structured reason; never a thrown failure".
type errorResponse struct {
	Journeys []any  `json:"journeys"`
	Reason   string `json:"reason"`
}

func writeEmptyWithReason(w http.ResponseWriter, reason string) {
	writeJSON(w, http.StatusOK, errorResponse{Journeys: []any{}, Reason: reason})
}
