package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/rdietrick/nhl-props/internal/platform/logging"
	"github.com/rdietrick/nhl-props/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	trackerService   *usecase.TrackerService
	directoryService *usecase.DirectoryService
	statsService     *usecase.StatsService
	refreshService   *usecase.RefreshService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	trackerService *usecase.TrackerService,
	directoryService *usecase.DirectoryService,
	statsService *usecase.StatsService,
	refreshService *usecase.RefreshService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		trackerService:   trackerService,
		directoryService: directoryService,
		statsService:     statsService,
		refreshService:   refreshService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, payload any) error {
	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	defer func() {
		_, _ = io.Copy(io.Discard, body)
	}()

	if err := sonic.ConfigDefault.NewDecoder(body).Decode(payload); err != nil {
		return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
