package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ecoperks/ecosort/internal/adapters/oracle"
	"github.com/ecoperks/ecosort/internal/domain/category"
	"github.com/ecoperks/ecosort/internal/domain/round"
)

// maxImageBytes bounds the decoded upload size (8 MiB).
const maxImageBytes = 8 << 20

// RoundsHandler handles round submissions.
type RoundsHandler struct {
	deps Dependencies
}

// NewRoundsHandler creates a new rounds handler.
func NewRoundsHandler(deps Dependencies) *RoundsHandler {
	return &RoundsHandler{deps: deps}
}

// roundRequest is the POST /rounds payload. Exactly one of ImageB64
// and OracleText must be set: the former plays a round against the
// classifier oracle, the latter scores caller-provided oracle text.
type roundRequest struct {
	RoundID    string   `json:"round_id"`
	Player     string   `json:"player"`
	Predicted  []string `json:"predicted"`
	ImageB64   string   `json:"image_b64"`
	OracleText string   `json:"oracle_text"`
}

func (r roundRequest) validate() error {
	switch {
	case strings.TrimSpace(r.Player) == "":
		return errors.New("missing player")
	case len(r.Predicted) == 0:
		return errors.New("missing predicted categories")
	case r.ImageB64 == "" && r.OracleText == "":
		return errors.New("one of image_b64 or oracle_text is required")
	case r.ImageB64 != "" && r.OracleText != "":
		return errors.New("image_b64 and oracle_text are mutually exclusive")
	}
	return nil
}

// roundResponse is the scored-round payload returned to the player.
type roundResponse struct {
	RoundID   string   `json:"round_id"`
	Player    string   `json:"player"`
	Score     int      `json:"score"`
	Predicted []string `json:"predicted"`
	Actual    []string `json:"actual"`
	Correct   []string `json:"correct"`
	Missed    []string `json:"missed"`
	Wrong     []string `json:"wrong"`
	Analysis  string   `json:"analysis"`
}

type ackResponse struct {
	Status    string `json:"status"`
	RoundID   string `json:"round_id"`
	Duplicate bool   `json:"duplicate"`
}

// HandlePostRound handles POST /rounds requests.
func (h *RoundsHandler) HandlePostRound(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_round"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req roundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}

	predicted, err := category.ParseSet(req.Predicted)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}

	var imageBytes []byte
	if req.ImageB64 != "" {
		imageBytes, err = base64.StdEncoding.DecodeString(req.ImageB64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: invalid image_b64: %w", op, err))
			return
		}
		if len(imageBytes) > maxImageBytes {
			writeError(w, http.StatusRequestEntityTooLarge, "image_too_large", ErrImageTooLarge)
			return
		}
	}

	roundID := strings.TrimSpace(req.RoundID)
	if roundID == "" {
		roundID = uuid.NewString()
	}

	// Idempotency check: mark as seen first, roll back on failure so a
	// failed round can be retried with the same id.
	if h.deps.SeenAndRecord(r.Context(), roundID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", RoundID: roundID, Duplicate: true})
		return
	}

	var result round.Result
	if req.OracleText != "" {
		result, err = h.deps.SubmitRound(r.Context(), roundID, req.Player, predicted, req.OracleText)
	} else {
		result, err = h.deps.PlayRound(r.Context(), roundID, req.Player, predicted, imageBytes)
	}
	if err != nil {
		h.deps.Unrecord(r.Context(), roundID)
		switch {
		case errors.Is(err, round.ErrValidation):
			writeError(w, http.StatusBadRequest, "bad_request", err)
		case errors.Is(err, oracle.ErrBadImage):
			writeError(w, http.StatusBadRequest, "bad_image", err)
		case oracle.IsOracle(err):
			writeError(w, http.StatusBadGateway, "oracle_error", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, roundResponse{
		RoundID:   result.RoundID,
		Player:    result.Player,
		Score:     result.Score,
		Predicted: result.Predicted.Strings(),
		Actual:    result.Actual.Strings(),
		Correct:   result.Correct.Strings(),
		Missed:    result.Missed.Strings(),
		Wrong:     result.Wrong.Strings(),
		Analysis:  result.OracleText,
	})
}
