package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"delish/order-svc/internal/domain"
	"delish/order-svc/internal/pricing"
	"delish/order-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Orders        service.OrderServiceInterface
	Subscriptions service.SubscriptionServiceInterface
}

func NewHandler(orderSvc service.OrderServiceInterface, subSvc service.SubscriptionServiceInterface) *Handler {
	return &Handler{
		Orders:        orderSvc,
		Subscriptions: subSvc,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/status", h.updateOrderStatus).Methods("PUT")
	r.HandleFunc("/api/orders/{id}/cancel", h.cancelOrder).Methods("PUT")
	r.HandleFunc("/api/orders/{id}/track", h.trackOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/api/subscriptions", h.subscribe).Methods("POST")
	r.HandleFunc("/api/subscriptions", h.listSubscriptions).Methods("GET")
	r.HandleFunc("/api/subscriptions/{id}/pause", h.pauseSubscription).Methods("PUT")
	r.HandleFunc("/api/subscriptions/{id}/resume", h.resumeSubscription).Methods("PUT")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// actorFromRequest reads the identity headers injected by the gateway's auth
// layer. Token verification happens upstream.
func actorFromRequest(r *http.Request) (domain.Actor, bool) {
	id, err := strconv.Atoi(r.Header.Get("X-User-ID"))
	if err != nil || id <= 0 {
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

func requireActor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, ok := actorFromRequest(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
	}
	return actor, ok
}

func writeServiceError(w http.ResponseWriter, err error) {
	var minErr *pricing.BelowMinimumError
	switch {
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrSubscriptionNotFound),
		errors.Is(err, domain.ErrProviderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrAccessDenied):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrStatusConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &minErr),
		errors.Is(err, pricing.ErrEmptyCart),
		errors.Is(err, pricing.ErrInvalidLineItem),
		errors.Is(err, service.ErrInvalidPayload),
		errors.Is(err, service.ErrPlanUnavailable),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrCancellationWindowExpired),
		errors.Is(err, domain.ErrTerminalState):
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

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req service.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Orders.Create(r.Context(), actor, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	filter := domain.OrderFilter{
		Status:    domain.OrderStatus(q.Get("status")),
		OrderType: domain.OrderType(q.Get("order_type")),
		Page:      page,
		Limit:     limit,
	}

	orders, pagination, err := h.Orders.List(actor, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":       orders,
		"pagination": pagination,
	})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])

	order, err := h.Orders.Get(actor, orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var payload struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Orders.UpdateStatus(r.Context(), actor, orderID, payload.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])

	order, err := h.Orders.Cancel(r.Context(), actor, orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) trackOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])

	view, err := h.Orders.Track(actor, orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])

	qrCode, err := h.Orders.QRCode(actor, orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req service.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	sub, order, err := h.Subscriptions.Subscribe(r.Context(), actor, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"subscription": sub,
		"order":        order,
	})
}

func (h *Handler) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	subs, err := h.Subscriptions.List(actor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func (h *Handler) pauseSubscription(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	sub, err := h.Subscriptions.Pause(actor, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *Handler) resumeSubscription(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	sub, err := h.Subscriptions.Resume(actor, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}
