package travel

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/tripster-api/internal/api"
	"github.com/FACorreiaa/tripster-api/internal/types"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) startSpan(r *http.Request, name, route string) (*http.Request, trace.Span) {
	ctx, span := otel.Tracer("TravelHandler").Start(r.Context(), name, trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String(route),
	))
	return r.WithContext(ctx), span
}

// GetPlace godoc
// @Summary      Get place
// @Description  Resolves a place name and returns it with address, photos and Tripadvisor details.
// @Tags         Places
// @Produce      json
// @Param        query query string true "Place name"
// @Success      200 {object} types.PlaceResponse
// @Failure      400 {object} api.ErrorBody "Missing query"
// @Failure      404 {object} api.ErrorBody "Place not found"
// @Failure      500 {object} api.ErrorBody "Internal Server Error"
// @Router       /places [get]
func (h *Handler) GetPlace(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "GetPlace", "/api/places")
	defer span.End()
	l := h.logger.With(slog.String("handler", "GetPlace"))

	resp, err := h.service.GetPlace(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		api.HandleError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// GetHotels godoc
// @Summary      Get hotels
// @Description  Hotels matching the place name followed by hotels near it.
// @Tags         Places
// @Produce      json
// @Param        place query string true "Place name"
// @Success      200 {object} types.HotelsResponse
// @Failure      400 {object} api.ErrorBody "Missing place"
// @Failure      500 {object} api.ErrorBody "Internal Server Error"
// @Router       /hotels [get]
func (h *Handler) GetHotels(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "GetHotels", "/api/hotels")
	defer span.End()
	l := h.logger.With(slog.String("handler", "GetHotels"))

	resp, err := h.service.GetHotels(r.Context(), r.URL.Query().Get("place"))
	if err != nil {
		api.HandleError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// GetReviews godoc
// @Summary      Get reviews
// @Description  Web review snippets followed by Tripadvisor reviews of the place.
// @Tags         Places
// @Produce      json
// @Param        place query string true "Place name"
// @Success      200 {object} types.ReviewsResponse
// @Failure      400 {object} api.ErrorBody "Missing place"
// @Failure      500 {object} api.ErrorBody "Internal Server Error"
// @Router       /reviews [get]
func (h *Handler) GetReviews(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "GetReviews", "/api/reviews")
	defer span.End()
	l := h.logger.With(slog.String("handler", "GetReviews"))

	resp, err := h.service.GetReviews(r.Context(), r.URL.Query().Get("place"))
	if err != nil {
		api.HandleError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// GetNearbyAttractions godoc
// @Summary      Get nearby attractions
// @Description  Attractions around the resolved place.
// @Tags         Places
// @Produce      json
// @Param        place query string true "Place name"
// @Success      200 {object} types.NearbyResponse
// @Failure      400 {object} api.ErrorBody "Missing place"
// @Failure      404 {object} api.ErrorBody "Place not found"
// @Failure      500 {object} api.ErrorBody "Internal Server Error"
// @Router       /nearby [get]
func (h *Handler) GetNearbyAttractions(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "GetNearbyAttractions", "/api/nearby")
	defer span.End()
	l := h.logger.With(slog.String("handler", "GetNearbyAttractions"))

	resp, err := h.service.GetNearbyAttractions(r.Context(), r.URL.Query().Get("place"))
	if err != nil {
		api.HandleError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// CreatePlan godoc
// @Summary      Create travel plan
// @Description  Generates an itinerary and enriches it with photos, landmarks, reviews and nearby attractions.
// @Tags         Plan
// @Accept       json
// @Produce      json
// @Param        plan body types.PlanRequest true "Plan request"
// @Success      200 {object} types.AggregatedPlanResponse
// @Failure      400 {object} api.ErrorBody "Missing required fields"
// @Failure      500 {object} api.ErrorBody "System error"
// @Router       /plan [post]
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "CreatePlan", "/api/plan")
	defer span.End()
	l := h.logger.With(slog.String("handler", "CreatePlan"))

	var req types.PlanRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		if errors.Is(err, api.ErrEmptyBody) {
			api.HandleError(w, r, l, api.MissingParameter(api.MsgMissingPlanField))
			return
		}
		l.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.CreatePlan(r.Context(), req)
	if err != nil {
		api.HandleError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}
