package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"overcooked-pos/pos-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SessionStore resolves the session cookie to the user that owns it.
type SessionStore interface {
	Create(ctx context.Context, userID int) (string, error)
	UserID(ctx context.Context, sessionID string) (int, error)
	Destroy(ctx context.Context, sessionID string) error
}

type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type Handler struct {
	Bills    service.BillLedgerInterface
	Orders   service.OrderBookInterface
	Menu     service.MenuServiceInterface
	Users    service.UserServiceInterface
	Sessions SessionStore
	Cookie   CookieConfig
	Logger   *zap.Logger
}

func NewHandler(
	bills service.BillLedgerInterface,
	orders service.OrderBookInterface,
	menu service.MenuServiceInterface,
	users service.UserServiceInterface,
	sessions SessionStore,
	cookie CookieConfig,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Bills:    bills,
		Orders:   orders,
		Menu:     menu,
		Users:    users,
		Sessions: sessions,
		Cookie:   cookie,
		Logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(h.accessLog)

	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/users/register", h.register).Methods("POST")
	r.HandleFunc("/api/users/login", h.login).Methods("POST")
	r.HandleFunc("/api/users/logout", h.logout).Methods("POST")
	r.HandleFunc("/api/users/confirm", h.confirmUser).Methods("POST")
	r.HandleFunc("/api/users/forgot-password", h.forgotPassword).Methods("POST")
	r.HandleFunc("/api/users/change-password", h.changePassword).Methods("POST")
	r.HandleFunc("/api/users/me", h.me).Methods("GET")
	r.HandleFunc("/api/users/logged-in", h.isLoggedIn).Methods("GET")
	r.HandleFunc("/api/users/resend-code", h.requireAuth(h.resendCode)).Methods("POST")

	r.HandleFunc("/api/categories", h.requireAuth(h.createCategory)).Methods("POST")
	r.HandleFunc("/api/categories", h.requireAuth(h.getCategories)).Methods("GET")

	r.HandleFunc("/api/items", h.requireAuth(h.createItem)).Methods("POST")
	r.HandleFunc("/api/items", h.requireAuth(h.getItems)).Methods("GET")
	r.HandleFunc("/api/items/{id:[0-9]+}", h.requireAuth(h.updateItem)).Methods("PUT")
	r.HandleFunc("/api/items/{id:[0-9]+}", h.requireAuth(h.deleteItem)).Methods("DELETE")

	r.HandleFunc("/api/bills", h.requireAuth(h.createBill)).Methods("POST")
	r.HandleFunc("/api/bills", h.requireAuth(h.getUnsettledBills)).Methods("GET")
	r.HandleFunc("/api/bills/{id:[0-9]+}", h.requireAuth(h.getBill)).Methods("GET")
	r.HandleFunc("/api/bills/{id:[0-9]+}", h.requireAuth(h.deleteBill)).Methods("DELETE")
	r.HandleFunc("/api/bills/{id:[0-9]+}/settle", h.requireAuth(h.settleBill)).Methods("POST")
	r.HandleFunc("/api/bills/{id:[0-9]+}/discount", h.requireAuth(h.applyDiscount)).Methods("POST")
	r.HandleFunc("/api/bills/{id:[0-9]+}/qrcode", h.requireAuth(h.getBillQRCode)).Methods("GET")

	r.HandleFunc("/api/bills/{id:[0-9]+}/orders", h.requireAuth(h.addOrder)).Methods("POST")
	r.HandleFunc("/api/bills/{id:[0-9]+}/orders/{itemId:[0-9]+}", h.requireAuth(h.updateOrder)).Methods("PUT")
	r.HandleFunc("/api/bills/{id:[0-9]+}/orders/{itemId:[0-9]+}", h.requireAuth(h.deleteOrder)).Methods("DELETE")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "pos-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	category, err := h.Menu.CreateCategory(r.Context(), req.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Menu.ListCategories(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var input service.ItemInput
	if !decodeJSON(w, r, &input) {
		return
	}
	item, err := h.Menu.CreateItem(r.Context(), input, ownerID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) getItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.ListItems(r.Context(), ownerID(r), r.URL.Query().Get("search"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	itemID, _ := strconv.Atoi(mux.Vars(r)["id"])
	var input service.ItemInput
	if !decodeJSON(w, r, &input) {
		return
	}
	item, err := h.Menu.UpdateItem(r.Context(), itemID, input, ownerID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, _ := strconv.Atoi(mux.Vars(r)["id"])
	ok, err := h.Menu.DeleteItem(r.Context(), itemID, ownerID(r))
	h.writeResult(w, ok, err)
}

func (h *Handler) createBill(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TableNo int `json:"table_no"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	bill, err := h.Bills.CreateBill(r.Context(), req.TableNo, ownerID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bill)
}

func (h *Handler) getUnsettledBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.Bills.ListUnsettledBills(r.Context(), ownerID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

func (h *Handler) getBill(w http.ResponseWriter, r *http.Request) {
	billID, _ := strconv.Atoi(mux.Vars(r)["id"])
	bill, err := h.Bills.GetBill(r.Context(), billID, ownerID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if bill == nil {
		http.Error(w, "Bill not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

func (h *Handler) deleteBill(w http.ResponseWriter, r *http.Request) {
	billID, _ := strconv.Atoi(mux.Vars(r)["id"])
	ok, err := h.Bills.DeleteBill(r.Context(), billID, ownerID(r))
	h.writeResult(w, ok, err)
}

func (h *Handler) settleBill(w http.ResponseWriter, r *http.Request) {
	billID, _ := strconv.Atoi(mux.Vars(r)["id"])
	ok, err := h.Bills.SettleBill(r.Context(), billID, ownerID(r))
	h.writeResult(w, ok, err)
}

func (h *Handler) applyDiscount(w http.ResponseWriter, r *http.Request) {
	billID, _ := strconv.Atoi(mux.Vars(r)["id"])
	var req struct {
		Discount decimal.Decimal `json:"discount"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	ok, err := h.Bills.ApplyDiscount(r.Context(), billID, ownerID(r), req.Discount)
	h.writeResult(w, ok, err)
}

func (h *Handler) getBillQRCode(w http.ResponseWriter, r *http.Request) {
	billID, _ := strconv.Atoi(mux.Vars(r)["id"])
	qrCode, err := h.Bills.ReceiptQR(r.Context(), billID, ownerID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if len(qrCode) == 0 {
		http.Error(w, "Bill not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

func (h *Handler) addOrder(w http.ResponseWriter, r *http.Request) {
	billID, _ := strconv.Atoi(mux.Vars(r)["id"])
	var req struct {
		ItemID   int `json:"item_id"`
		Quantity int `json:"quantity"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	ok, err := h.Orders.AddOrder(r.Context(), billID, req.ItemID, req.Quantity, ownerID(r))
	h.writeResult(w, ok, err)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	billID, _ := strconv.Atoi(vars["id"])
	itemID, _ := strconv.Atoi(vars["itemId"])
	var req struct {
		Quantity int `json:"quantity"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	ok, err := h.Orders.UpdateOrder(r.Context(), billID, itemID, req.Quantity, ownerID(r))
	h.writeResult(w, ok, err)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	billID, _ := strconv.Atoi(vars["id"])
	itemID, _ := strconv.Atoi(vars["itemId"])
	ok, err := h.Orders.DeleteOrder(r.Context(), billID, itemID, ownerID(r))
	h.writeResult(w, ok, err)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeResult(w http.ResponseWriter, ok bool, err error) {
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": ok})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidState), errors.Is(err, service.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.Logger.Error("request failed", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
