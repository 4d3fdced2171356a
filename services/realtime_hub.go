package services

import (
	"sync"

	"bmicalc/utils"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// PageCommand is one display operation sent to a live page.
type PageCommand struct {
	Op    string `json:"op"`
	ID    string `json:"id"`
	Value string `json:"value,omitempty"`
}

const (
	OpWriteText = "writeText"
	OpSetState  = "setState"
	OpExpand    = "expand"
	OpFocus     = "focus"
)

type wsConn interface {
	WriteJSON(v any) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type WSClient struct {
	UserID uint
	Conn   wsConn

	mu sync.Mutex // gorilla connections allow one writer at a time
}

func (c *WSClient) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteJSON(v)
}

func (c *WSClient) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(websocket.PingMessage, nil)
}

type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

func (h *RealtimeHub) ClientCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Broadcast sends payload to every open page of userID. Failed writes are
// logged; the read loop owning the connection unregisters it.
func (h *RealtimeHub) Broadcast(userID uint, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		if err := c.Send(payload); err != nil {
			utils.Log.WithFields(logrus.Fields{"component": "realtime", "user": userID}).WithError(err).Warn("send failed")
		}
	}
}

// RemotePage reads inputs from a submitted snapshot and streams every
// display operation to emit.
type RemotePage struct {
	Values     map[string]string
	Validators map[string]FieldValidator
	emit       func(PageCommand)
}

func NewRemotePage(values map[string]string, validators map[string]FieldValidator, emit func(PageCommand)) *RemotePage {
	return &RemotePage{Values: values, Validators: validators, emit: emit}
}

func (p *RemotePage) ReadField(id string) string { return p.Values[id] }

func (p *RemotePage) WriteText(id, text string) {
	p.emit(PageCommand{Op: OpWriteText, ID: id, Value: text})
}

func (p *RemotePage) SetState(id, state string) {
	p.emit(PageCommand{Op: OpSetState, ID: id, Value: state})
}

func (p *RemotePage) Expand(id string) { p.emit(PageCommand{Op: OpExpand, ID: id}) }

func (p *RemotePage) Focus(id string) { p.emit(PageCommand{Op: OpFocus, ID: id}) }

func (p *RemotePage) IsFieldValid(id string) bool {
	v, ok := p.Validators[id]
	return !ok || v(p.Values[id])
}
