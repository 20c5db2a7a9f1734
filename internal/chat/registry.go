// Package chat owns the live-connection registry for the in-app chat
// channel. Delivery is fire-and-forget, at-most-once: messages are
// persisted first, then pushed to the recipient only if they are connected.
package chat

import (
	"sync"

	"github.com/google/uuid"
)

// Conn is the write side of one user's socket. *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Registry maps a user to their single active connection. A new connection
// for the same user replaces (and closes) the previous one.
type Registry struct {
	mu    sync.RWMutex
	conns map[uuid.UUID]Conn
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[uuid.UUID]Conn)}
}

func (r *Registry) Register(userID uuid.UUID, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.conns[userID]; ok {
		_ = existing.Close()
	}
	r.conns[userID] = conn
}

// Unregister removes the mapping only if it still points at this connection,
// so a reconnect that already replaced the entry is left alone.
func (r *Registry) Unregister(userID uuid.UUID, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.conns[userID]; ok && current == conn {
		delete(r.conns, userID)
	}
}

func (r *Registry) IsConnected(userID uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.conns[userID]
	return ok
}

// Send pushes a payload to the user's connection if present. Returns false
// when the user is offline; there is no offline queue.
func (r *Registry) Send(userID uuid.UUID, payload interface{}) bool {
	r.mu.RLock()
	conn, ok := r.conns[userID]
	r.mu.RUnlock()

	if !ok {
		return false
	}
	if err := conn.WriteJSON(payload); err != nil {
		r.Unregister(userID, conn)
		return false
	}
	return true
}
