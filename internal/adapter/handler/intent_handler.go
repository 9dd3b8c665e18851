package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/chenayan/InventoryTrackerSkill/internal/core/domain"
	"github.com/chenayan/InventoryTrackerSkill/internal/core/service"
)

// Canned speech lines shared across intents.
const (
	welcomeSpeech  = "Welcome to your inventory tracker. You can add, remove, or ask about items."
	helpSpeech     = "Try saying: add three eggs to the fridge, or, how many eggs do I have."
	goodbyeSpeech  = "Goodbye."
	fallbackSpeech = "Sorry, I don't know how to do that yet."
	errorSpeech    = "Sorry, something went wrong. Please try again."
)

// IntentRequest is the inbound voice envelope.
type IntentRequest struct {
	Version string `json:"version"`
	Session struct {
		User struct {
			UserID string `json:"userId"`
		} `json:"user"`
	} `json:"session"`
	Request struct {
		Type   string `json:"type"`
		Intent struct {
			Name  string          `json:"name"`
			Slots map[string]Slot `json:"slots"`
		} `json:"intent"`
	} `json:"request"`
}

type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// IntentResponse is the outbound envelope: always a speakable PlainText body.
type IntentResponse struct {
	Version  string `json:"version"`
	Response struct {
		OutputSpeech struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"outputSpeech"`
		ShouldEndSession bool `json:"shouldEndSession"`
	} `json:"response"`
}

type intentFunc func(ctx context.Context, ownerID string, slots map[string]string) (speech string, endSession bool)

// IntentHandler dispatches named intents through a single table shared by
// every entry point, rather than one handler clone per deployment target.
type IntentHandler struct {
	inventory *service.InventoryService
	intents   map[string]intentFunc
}

func NewIntentHandler(inventory *service.InventoryService) *IntentHandler {
	h := &IntentHandler{inventory: inventory}
	h.intents = map[string]intentFunc{
		"AddItemIntent":       h.addItem,
		"RemoveItemIntent":    h.removeItem,
		"QueryItemIntent":     h.queryItem,
		"AMAZON.HelpIntent":   h.help,
		"AMAZON.StopIntent":   h.goodbye,
		"AMAZON.CancelIntent": h.goodbye,
	}
	return h
}

// ServeHTTP answers every well-formed envelope with HTTP 200 and a spoken
// response; only undecodable bodies get a 400.
func (h *IntentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req IntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid intent envelope"})
		return
	}

	ownerID := req.Session.User.UserID
	if ownerID == "" {
		ownerID = defaultOwnerID
	}

	speech, endSession := h.dispatch(r.Context(), ownerID, req)
	writeJSON(w, http.StatusOK, speak(speech, endSession))
}

func (h *IntentHandler) dispatch(ctx context.Context, ownerID string, req IntentRequest) (string, bool) {
	switch req.Request.Type {
	case "Launch":
		return welcomeSpeech, false
	case "Intent":
		fn, ok := h.intents[req.Request.Intent.Name]
		if !ok {
			return fallbackSpeech, false
		}
		return fn(ctx, ownerID, slotValues(req.Request.Intent.Slots))
	default:
		return fallbackSpeech, false
	}
}

func (h *IntentHandler) addItem(ctx context.Context, ownerID string, slots map[string]string) (string, bool) {
	item := slots["Item"]
	if item == "" {
		return "I didn't catch which item to add.", false
	}

	msg, _, err := h.inventory.Add(ctx, ownerID, item, domain.ParseQuantity(slots["Quantity"]), slots["Location"])
	if err != nil {
		log.Printf("intent add failed for owner %q: %v", ownerID, err)
		return errorSpeech, false
	}
	return msg, false
}

func (h *IntentHandler) removeItem(ctx context.Context, ownerID string, slots map[string]string) (string, bool) {
	item := slots["Item"]
	if item == "" {
		return "I didn't catch which item to remove.", false
	}

	msg, err := h.inventory.Remove(ctx, ownerID, item, domain.ParseQuantity(slots["Quantity"]), slots["Location"])
	if err != nil && msg == "" {
		log.Printf("intent remove failed for owner %q: %v", ownerID, err)
		return errorSpeech, false
	}
	// ErrItemNotFound still carries the "already empty" message; speak it.
	return msg, false
}

func (h *IntentHandler) queryItem(ctx context.Context, ownerID string, slots map[string]string) (string, bool) {
	item := slots["Item"]
	if item == "" {
		return "I didn't catch which item you asked about.", false
	}
	location := slots["Location"]
	if location == "" {
		location = domain.DefaultLocation
	}

	qty, err := h.inventory.Quantity(ctx, ownerID, item, location)
	if err != nil {
		log.Printf("intent query failed for owner %q: %v", ownerID, err)
		return errorSpeech, false
	}
	if qty == 0 {
		return fmt.Sprintf("You don't have any %s in the %s.", item, location), false
	}
	return speechForQuantity(item, qty, location), false
}

func (h *IntentHandler) help(ctx context.Context, ownerID string, slots map[string]string) (string, bool) {
	return helpSpeech, false
}

func (h *IntentHandler) goodbye(ctx context.Context, ownerID string, slots map[string]string) (string, bool) {
	return goodbyeSpeech, true
}

func speechForQuantity(item string, qty int, location string) string {
	if display := domain.DisplayName(item); display != "" {
		item = fmt.Sprintf("%s (%s)", item, display)
	}
	return fmt.Sprintf("You have %d %s in the %s.", qty, item, location)
}

func slotValues(slots map[string]Slot) map[string]string {
	out := make(map[string]string, len(slots))
	for name, slot := range slots {
		out[name] = slot.Value
	}
	return out
}

func speak(text string, endSession bool) IntentResponse {
	var resp IntentResponse
	resp.Version = "1.0"
	resp.Response.OutputSpeech.Type = "PlainText"
	resp.Response.OutputSpeech.Text = text
	resp.Response.ShouldEndSession = endSession
	return resp
}
