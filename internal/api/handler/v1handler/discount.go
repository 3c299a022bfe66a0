package v1handler

import (
	"net/http"
	"strconv"
	"time"

	"discounts/internal/discount"
	"discounts/pkg/domain"
	"discounts/pkg/serrors"
)

// publishDiscountRequest is the wire shape of a single discount to publish.
type publishDiscountRequest struct {
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	DiscountPercentage int       `json:"discountPercentage"`
	StoreName          string    `json:"storeName"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	ValidUntil         time.Time `json:"validUntil"`
}

// discountResponse is a domain.Discount with the store coordinates flattened
// back in; the domain type keeps its Location out of JSON.
type discountResponse struct {
	domain.Discount

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// discountListResponse wraps a list of discounts.
type discountListResponse struct {
	Items []discountResponse `json:"items"`
}

func toDiscountResponses(in []domain.Discount) []discountResponse {
	out := make([]discountResponse, 0, len(in))
	for _, d := range in {
		out = append(out, discountResponse{
			Discount:  d,
			Latitude:  d.StoreLocation.Latitude(),
			Longitude: d.StoreLocation.Longitude(),
		})
	}

	return out
}

// floatQueryParam parses a required float query parameter.
func floatQueryParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, serrors.With(serrors.ErrBadRequest, "missing query parameter %q", name)
	}

	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, serrors.With(serrors.ErrBadRequest, "query parameter %q must be a number", name)
	}

	return parsed, nil
}

// NearbyDiscounts returns the active discounts within radiusKm of a point.
func (h *Handler) NearbyDiscounts(w http.ResponseWriter, r *http.Request) {
	latitude, err := floatQueryParam(r, "latitude")
	if err != nil {
		writeError(w, r, err)

		return
	}
	longitude, err := floatQueryParam(r, "longitude")
	if err != nil {
		writeError(w, r, err)

		return
	}
	radiusKm, err := floatQueryParam(r, "radiusKm")
	if err != nil {
		writeError(w, r, err)

		return
	}

	found, err := h.deps.Discounts.Nearby(r.Context(), latitude, longitude, radiusKm)
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusOK, discountListResponse{Items: toDiscountResponses(found)})
}

// PublishDiscounts stores a batch of discounts.
func (h *Handler) PublishDiscounts(w http.ResponseWriter, r *http.Request) {
	var reqs []publishDiscountRequest
	if err := decodeJSON(r, &reqs); err != nil {
		writeError(w, r, err)

		return
	}

	inputs := make([]discount.NewDiscount, 0, len(reqs))
	for _, req := range reqs {
		inputs = append(inputs, discount.NewDiscount{
			Title:              req.Title,
			Description:        req.Description,
			DiscountPercentage: req.DiscountPercentage,
			StoreName:          req.StoreName,
			Latitude:           req.Latitude,
			Longitude:          req.Longitude,
			ValidUntil:         req.ValidUntil,
		})
	}

	stored, err := h.deps.Discounts.Publish(r.Context(), inputs...)
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusCreated, discountListResponse{Items: toDiscountResponses(stored)})
}
