package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"motorbikes/pkg/browse"
	"motorbikes/pkg/catalog"
	"motorbikes/pkg/checkout"
	"motorbikes/pkg/otel"
	"motorbikes/pkg/session"
)

const (
	sessionCookie = "session_id"
	sessionHeader = "X-Session-ID"
	noResults     = "No results found"
)

var errBadRequest = errors.New("bad request")

type sessionKey struct{}

// sessionMiddleware loads the caller's session into the request context.
// An explicit X-Session-ID header wins over the session cookie.
func sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(sessionHeader)
		if id == "" {
			if c, err := r.Cookie(sessionCookie); err == nil {
				id = c.Value
			}
		}
		if id == "" {
			http.Error(w, "missing session", http.StatusUnauthorized)
			return
		}
		s, err := sessions.Get(r.Context(), id)
		if err != nil {
			writeError(r.Context(), w, "load session", err)
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey{}, s)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentSession(ctx context.Context) session.Session {
	s, _ := ctx.Value(sessionKey{}).(session.Session)
	return s
}

// mutate applies fn to the session's view and saves the resulting state.
func mutate(ctx context.Context, fn func(v *browse.View) error) (*browse.View, error) {
	s := currentSession(ctx)
	v := browse.NewView(store, s.State)
	if err := fn(v); err != nil {
		return nil, err
	}
	s.State = v.State()
	if err := sessions.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		http.Error(w, "unknown or expired session", http.StatusUnauthorized)
	case errors.Is(err, catalog.ErrUnknownListing):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, browse.ErrInvalidSelection), errors.Is(err, catalog.ErrInvalidListing), errors.Is(err, errBadRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error(ctx, op, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

type optionsResponse struct {
	Makes    []string          `json:"makes"`
	Years    []int             `json:"years"`
	Terrains []catalog.Terrain `json:"terrains"`
	Sorts    []browse.SortKey  `json:"sorts"`
}

// listCatalogHandler returns every listing.
// @Summary List the full catalog
// @Produce json
// @Success 200 {array} catalog.Listing
// @Router /catalog [get]
func listCatalogHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "listCatalogHandler")
	defer span.End()

	writeJSON(w, http.StatusOK, store.All())
}

// catalogOptionsHandler returns the filter and sort choices.
// @Summary Filter and sort options
// @Produce json
// @Success 200 {object} optionsResponse
// @Router /catalog/options [get]
func catalogOptionsHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "catalogOptionsHandler")
	defer span.End()

	writeJSON(w, http.StatusOK, optionsResponse{
		Makes:    store.Makes(),
		Years:    store.Years(),
		Terrains: catalog.Terrains,
		Sorts:    browse.SortKeys,
	})
}

type sessionResponse struct {
	ID string `json:"id"`
}

// createSessionHandler mounts a new view.
// @Summary Start a browse session
// @Produce json
// @Success 201 {object} sessionResponse
// @Router /sessions [post]
func createSessionHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createSessionHandler")
	defer span.End()

	s := session.New()
	if err := sessions.Create(ctx, s); err != nil {
		writeError(ctx, w, "create session", err)
		return
	}
	log.Info(ctx, "session created", "session", s.ID)
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: s.ID, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	writeJSON(w, http.StatusCreated, sessionResponse{ID: s.ID})
}

// deleteSessionHandler unmounts the view and discards its state.
// @Summary End the browse session
// @Success 204
// @Router /session [delete]
func deleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteSessionHandler")
	defer span.End()

	s := currentSession(ctx)
	if err := sessions.Delete(ctx, s.ID); err != nil {
		writeError(ctx, w, "delete session", err)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}

type card struct {
	catalog.Listing
	Flipped bool `json:"flipped"`
}

type viewResponse struct {
	Selection    browse.Selection `json:"selection"`
	Listings     []card           `json:"listings"`
	Message      string           `json:"message,omitempty"`
	CartCount    int              `json:"cartCount"`
	ShowCheckout bool             `json:"showCheckout"`
}

func renderView(v *browse.View) viewResponse {
	visible := v.Visible()
	resp := viewResponse{
		Selection:    v.Selection(),
		Listings:     make([]card, 0, len(visible)),
		CartCount:    v.CartCount(),
		ShowCheckout: v.CheckoutVisible(),
	}
	for _, l := range visible {
		resp.Listings = append(resp.Listings, card{Listing: l, Flipped: v.IsFlipped(l.ID)})
	}
	if len(visible) == 0 {
		resp.Message = noResults
	}
	return resp
}

// viewHandler renders the visible listings.
// @Summary Visible listings for the current selection
// @Produce json
// @Success 200 {object} viewResponse
// @Router /session/view [get]
func viewHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "viewHandler")
	defer span.End()

	v := browse.NewView(store, currentSession(ctx).State)
	writeJSON(w, http.StatusOK, renderView(v))
}

type selectionRequest struct {
	Make    *string `json:"make"`
	Terrain *string `json:"terrain"`
	Year    *string `json:"year"`
	Sort    *string `json:"sort"`
	Search  *string `json:"search"`
}

// updateSelectionHandler sets the supplied selection fields.
// @Summary Set filter, sort and search fields
// @Accept json
// @Produce json
// @Param selection body selectionRequest true "Fields to set"
// @Success 200 {object} viewResponse
// @Router /session/selection [patch]
func updateSelectionHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "updateSelectionHandler")
	defer span.End()

	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, "decode selection", fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	var sortKey browse.SortKey
	if req.Sort != nil {
		k, err := browse.ParseSortKey(*req.Sort)
		if err != nil {
			writeError(ctx, w, "parse sort", err)
			return
		}
		sortKey = k
	}
	var terrain string
	if req.Terrain != nil && *req.Terrain != "" {
		t, err := catalog.ParseTerrain(*req.Terrain)
		if err != nil {
			writeError(ctx, w, "parse terrain", fmt.Errorf("%w: %v", browse.ErrInvalidSelection, err))
			return
		}
		terrain = string(t)
	}

	v, err := mutate(ctx, func(v *browse.View) error {
		if req.Make != nil {
			v.SetMake(*req.Make)
		}
		if req.Terrain != nil {
			v.SetTerrain(terrain)
		}
		if req.Year != nil {
			v.SetYear(*req.Year)
		}
		if req.Sort != nil {
			v.SetSort(sortKey)
		}
		if req.Search != nil {
			v.SetSearch(*req.Search)
		}
		return nil
	})
	if err != nil {
		writeError(ctx, w, "update selection", err)
		return
	}
	writeJSON(w, http.StatusOK, renderView(v))
}

// clearSelectionHandler clears one selection field.
// @Summary Clear one selection field
// @Produce json
// @Param field path string true "make, terrain, year, sort or search"
// @Success 200 {object} viewResponse
// @Router /session/selection/{field} [delete]
func clearSelectionHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "clearSelectionHandler")
	defer span.End()

	f, err := browse.ParseField(mux.Vars(r)["field"])
	if err != nil {
		writeError(ctx, w, "parse field", err)
		return
	}
	v, err := mutate(ctx, func(v *browse.View) error {
		v.Clear(f)
		return nil
	})
	if err != nil {
		writeError(ctx, w, "clear selection", err)
		return
	}
	writeJSON(w, http.StatusOK, renderView(v))
}

type flipResponse struct {
	ID      string `json:"id"`
	Flipped bool   `json:"flipped"`
}

// flipCardHandler toggles between a card's front and its description.
// @Summary Flip a listing card
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} flipResponse
// @Router /session/cards/{id}/flip [post]
func flipCardHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "flipCardHandler")
	defer span.End()

	id := mux.Vars(r)["id"]
	var flipped bool
	_, err := mutate(ctx, func(v *browse.View) error {
		var err error
		flipped, err = v.ToggleFlip(id)
		return err
	})
	if err != nil {
		writeError(ctx, w, "flip card", err)
		return
	}
	writeJSON(w, http.StatusOK, flipResponse{ID: id, Flipped: flipped})
}

type addToCartRequest struct {
	ListingID string `json:"listingId"`
}

type cartResponse struct {
	Count int               `json:"count"`
	Items []catalog.Listing `json:"items"`
}

// addToCartHandler appends a listing to the cart.
// @Summary Add a listing to the cart
// @Accept json
// @Produce json
// @Param item body addToCartRequest true "Listing"
// @Success 201 {object} cartResponse
// @Router /session/cart [post]
func addToCartHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "addToCartHandler")
	defer span.End()

	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ListingID == "" {
		writeError(ctx, w, "decode cart item", fmt.Errorf("%w: listingId is required", errBadRequest))
		return
	}
	v, err := mutate(ctx, func(v *browse.View) error {
		_, err := v.AddToCart(req.ListingID)
		return err
	})
	if err != nil {
		writeError(ctx, w, "add to cart", err)
		return
	}
	writeJSON(w, http.StatusCreated, cartResponse{Count: v.CartCount(), Items: v.Cart()})
}

// cartHandler returns the cart contents.
// @Summary Cart contents
// @Produce json
// @Success 200 {object} cartResponse
// @Router /session/cart [get]
func cartHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "cartHandler")
	defer span.End()

	v := browse.NewView(store, currentSession(ctx).State)
	writeJSON(w, http.StatusOK, cartResponse{Count: v.CartCount(), Items: v.Cart()})
}

type checkoutResponse struct {
	Visible bool `json:"visible"`
	checkout.Summary
}

// checkoutHandler returns the checkout summary of the cart.
// @Summary Checkout summary
// @Produce json
// @Produce plain
// @Param format query string false "json or text"
// @Success 200 {object} checkoutResponse
// @Router /session/checkout [get]
func checkoutHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "checkoutHandler")
	defer span.End()

	v := browse.NewView(store, currentSession(ctx).State)
	summary := checkout.Summarize(v.Cart())
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := summary.WriteText(w); err != nil {
			log.Error(ctx, "write checkout", "error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{Visible: v.CheckoutVisible(), Summary: summary})
}

// toggleCheckoutHandler opens or closes the checkout summary.
// @Summary Show or hide the checkout summary
// @Produce json
// @Success 200 {object} checkoutResponse
// @Router /session/checkout/toggle [post]
func toggleCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "toggleCheckoutHandler")
	defer span.End()

	v, err := mutate(ctx, func(v *browse.View) error {
		v.ToggleCheckout()
		return nil
	})
	if err != nil {
		writeError(ctx, w, "toggle checkout", err)
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{Visible: v.CheckoutVisible(), Summary: checkout.Summarize(v.Cart())})
}
