package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"delish/account-svc/internal/domain"
	"delish/account-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Addresses service.AddressServiceInterface
	Favorites service.FavoriteServiceInterface
}

func NewHandler(addrSvc service.AddressServiceInterface, favSvc service.FavoriteServiceInterface) *Handler {
	return &Handler{Addresses: addrSvc, Favorites: favSvc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/users/addresses", h.createAddress).Methods("POST")
	r.HandleFunc("/api/users/addresses", h.listAddresses).Methods("GET")
	r.HandleFunc("/api/users/addresses/{id}", h.updateAddress).Methods("PUT")
	r.HandleFunc("/api/users/addresses/{id}", h.deleteAddress).Methods("DELETE")
	r.HandleFunc("/api/users/addresses/{id}/default", h.setDefaultAddress).Methods("PUT")

	r.HandleFunc("/api/users/favorites", h.listFavorites).Methods("GET")
	r.HandleFunc("/api/users/favorites/{restaurantId}", h.addFavorite).Methods("PUT")
	r.HandleFunc("/api/users/favorites/{restaurantId}", h.removeFavorite).Methods("DELETE")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "account-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func requireActor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	id, err := strconv.Atoi(r.Header.Get("X-User-ID"))
	if err != nil || id <= 0 {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return domain.Actor{}, false
	}
	role := domain.ActorRole(r.Header.Get("X-User-Role"))
	switch role {
	case domain.RoleCustomer, domain.RoleProvider, domain.RoleAdmin:
	default:
		role = domain.RoleCustomer
	}
	return domain.Actor{ID: id, Role: role, Email: r.Header.Get("X-User-Email")}, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrAddressNotFound),
		errors.Is(err, domain.ErrFavoriteNotFound),
		errors.Is(err, domain.ErrRestaurantNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrAccessDenied):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrDuplicateFavorite),
		errors.Is(err, service.ErrInvalidPayload):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "Service temporarily unavailable", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (h *Handler) createAddress(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var addr domain.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Addresses.Create(actor, &addr); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, addr)
}

func (h *Handler) listAddresses(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	addresses, err := h.Addresses.List(actor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, addresses)
}

func (h *Handler) updateAddress(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var addr domain.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	addr.ID = id
	if err := h.Addresses.Update(actor, &addr); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, addr)
}

func (h *Handler) deleteAddress(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Addresses.Delete(actor, id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setDefaultAddress(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Addresses.SetDefault(actor, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Default address updated"})
}

func (h *Handler) listFavorites(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	favorites, err := h.Favorites.List(actor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, favorites)
}

func (h *Handler) addFavorite(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["restaurantId"])

	fav, err := h.Favorites.Add(actor, restaurantID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, fav)
}

func (h *Handler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["restaurantId"])

	if err := h.Favorites.Remove(actor, restaurantID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
