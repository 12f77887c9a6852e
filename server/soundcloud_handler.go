package server

import (
	"net/http"

	"SndHop/core/soundcloud"
)

// SoundcloudHandler exposes the resolve-and-upload pipeline over HTTP.
type SoundcloudHandler struct {
	pipeline *soundcloud.Pipeline
}

// NewSoundcloudHandler creates the handler.
func NewSoundcloudHandler(pipeline *soundcloud.Pipeline) *SoundcloudHandler {
	return &SoundcloudHandler{pipeline: pipeline}
}

// outcomeStatus maps symbolic pipeline outcomes onto HTTP statuses.
var outcomeStatus = map[soundcloud.Outcome]int{
	soundcloud.OutcomeFetchFail:            http.StatusBadGateway,
	soundcloud.OutcomeCountryBlock:         http.StatusUnavailableForLegalReasons,
	soundcloud.OutcomePaidContent:          http.StatusPaymentRequired,
	soundcloud.OutcomeNoMP3:                http.StatusBadGateway,
	soundcloud.OutcomeNoMP3Stream:          http.StatusBadGateway,
	soundcloud.OutcomeNoSegments:           http.StatusBadGateway,
	soundcloud.OutcomeNoSegmentsDownloaded: http.StatusBadGateway,
	soundcloud.OutcomeInternalError:        http.StatusInternalServerError,
}

// HandleResolve handles GET /api/soundcloud?url=<track url>.
func (h *SoundcloudHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	trackURL := r.URL.Query().Get("url")
	if trackURL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "No URL provided. Please add a 'url' query to your request.",
		})
		return
	}

	result := h.pipeline.ResolveAndUpload(r.Context(), trackURL)
	if result.OK {
		writeJSON(w, http.StatusOK, result)
		return
	}

	status, ok := outcomeStatus[result.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, result)
}
