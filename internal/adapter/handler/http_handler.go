package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/chenayan/InventoryTrackerSkill/internal/adapter/storage"
	"github.com/chenayan/InventoryTrackerSkill/internal/core/domain"
	"github.com/chenayan/InventoryTrackerSkill/internal/core/service"
)

// defaultOwnerID identifies requests that carry no ownerId at all.
const defaultOwnerID = "default-user"

type HTTPHandler struct {
	inventory *service.InventoryService
	store     *storage.Failover
}

type mutateRequest struct {
	Item     string           `json:"item"`
	Quantity *domain.Quantity `json:"quantity"`
	Location string           `json:"location"`
}

type mutateResponse struct {
	Message string            `json:"message"`
	Item    *domain.ItemEntry `json:"item,omitempty"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func NewHTTPHandler(inventory *service.InventoryService, store *storage.Failover) *HTTPHandler {
	return &HTTPHandler{inventory: inventory, store: store}
}

// Register wires every REST route onto the mux. /inventory/add and
// /inventory/remove are registered exactly, so the /inventory/ subtree is
// left for single-item reads.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/inventory", h.GetInventory)
	mux.HandleFunc("/inventory/add", h.Add)
	mux.HandleFunc("/inventory/remove", h.Remove)
	mux.HandleFunc("/inventory/", h.GetItem)
	mux.HandleFunc("/admin/owners", h.ListOwners)
	mux.HandleFunc("/admin/owners/", h.DeleteOwner)
	mux.HandleFunc("/admin/reconnect", h.Reconnect)
	mux.HandleFunc("/health", h.HealthCheck)
}

func (h *HTTPHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	rec, err := h.inventory.Record(r.Context(), resolveOwner(r))
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *HTTPHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req mutateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Item == "" || req.Quantity == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "item and quantity are required"})
		return
	}

	msg, entry, err := h.inventory.Add(r.Context(), resolveOwner(r), req.Item, int(*req.Quantity), req.Location)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mutateResponse{Message: msg, Item: &entry})
}

func (h *HTTPHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req mutateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Item == "" || req.Quantity == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "item and quantity are required"})
		return
	}

	msg, err := h.inventory.Remove(r.Context(), resolveOwner(r), req.Item, int(*req.Quantity), req.Location)
	if errors.Is(err, service.ErrItemNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msg})
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mutateResponse{Message: msg})
}

func (h *HTTPHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	item := strings.TrimPrefix(r.URL.Path, "/inventory/")
	if item == "" || strings.Contains(item, "/") {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "item name is required"})
		return
	}
	location := r.URL.Query().Get("location")

	entry, ok, err := h.inventory.Item(r.Context(), resolveOwner(r), item, location)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if !ok {
		// Absence is not exceptional for reads: report a zero-quantity entry.
		if location == "" {
			location = domain.DefaultLocation
		}
		entry = domain.ItemEntry{Name: item, Quantity: 0, Location: location}
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *HTTPHandler) ListOwners(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	owners, err := h.inventory.Owners(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if owners == nil {
		owners = []domain.OwnerInfo{}
	}
	writeJSON(w, http.StatusOK, owners)
}

func (h *HTTPHandler) DeleteOwner(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// Owner ids are arbitrary strings; ones with path-hostile characters are
	// addressed via the ownerId query parameter instead of the URL path.
	ownerID := r.URL.Query().Get("ownerId")
	if ownerID == "" {
		ownerID = strings.TrimPrefix(r.URL.Path, "/admin/owners/")
	}
	if ownerID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "owner id is required"})
		return
	}

	deleted, err := h.inventory.DeleteOwner(r.Context(), ownerID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "owner not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Reconnect retries the primary store connection. The connect error surfaces
// here and nowhere else; ordinary request paths never see it.
func (h *HTTPHandler) Reconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	err := h.store.Connect(r.Context())
	resp := map[string]string{"backend": h.store.CurrentBackend().String()}
	if err != nil {
		resp["error"] = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck always reports 200: a degraded process is still serving.
func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"backend": h.store.CurrentBackend().String(),
	})
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := uuid.NewString()
	log.Printf("request %s %s failed (id %s): %v", r.Method, r.URL.Path, requestID, err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", RequestID: requestID})
}

// resolveOwner maps a request to its owner identifier: the ownerId query
// parameter, or the fixed default. The id is opaque; no validation.
func resolveOwner(r *http.Request) string {
	if id := r.URL.Query().Get("ownerId"); id != "" {
		return id
	}
	return defaultOwnerID
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
