package errors

import (
	"sync"
	"time"
)

// TUIHandler keeps messages for display as dismissible toasts.
type TUIHandler struct {
	mu        sync.RWMutex
	messages  []Message
	dismissed bool
	onMessage func(msg Message)
	now       func() time.Time
}

// Message is one toast.
type Message struct {
	Text      string
	Type      MessageType
	Timestamp time.Time
}

// MessageType classifies a toast for styling.
type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
)

// String returns the lowercase name used in logs and prefixes.
func (t MessageType) String() string {
	switch t {
	case MessageTypeError:
		return "error"
	case MessageTypeWarning:
		return "warning"
	case MessageTypeInfo:
		return "info"
	case MessageTypeSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// NewTUIHandler returns a handler that calls onMessage for every new
// message. onMessage may be nil.
func NewTUIHandler(onMessage func(msg Message)) *TUIHandler {
	return &TUIHandler{onMessage: onMessage, now: time.Now}
}

func (h *TUIHandler) Error(msg string)   { h.addMessage(msg, MessageTypeError) }
func (h *TUIHandler) Warning(msg string) { h.addMessage(msg, MessageTypeWarning) }
func (h *TUIHandler) Info(msg string)    { h.addMessage(msg, MessageTypeInfo) }
func (h *TUIHandler) Success(msg string) { h.addMessage(msg, MessageTypeSuccess) }

func (h *TUIHandler) addMessage(text string, msgType MessageType) {
	h.mu.Lock()
	message := Message{Text: text, Type: msgType, Timestamp: h.now()}
	h.messages = append(h.messages, message)
	h.dismissed = false
	cb := h.onMessage
	h.mu.Unlock()

	if cb != nil {
		cb(message)
	}
}

// Latest returns the newest message unless it has been dismissed.
func (h *TUIHandler) Latest() (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.messages) == 0 || h.dismissed {
		return Message{}, false
	}
	return h.messages[len(h.messages)-1], true
}

// Dismiss hides the current toast. The history is kept.
func (h *TUIHandler) Dismiss() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dismissed = true
}

// All returns a copy of every message received.
func (h *TUIHandler) All() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	copied := make([]Message, len(h.messages))
	copy(copied, h.messages)
	return copied
}

// Clear drops the message history.
func (h *TUIHandler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
	h.dismissed = false
}
