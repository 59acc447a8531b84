package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-bizmanager/internal/model"
	"go-bizmanager/internal/storage"
)

type publishedEvent struct {
	Type    string
	Action  string
	Data    interface{}
	Message string
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (r *recordingBroadcaster) Publish(eventType, action string, data interface{}, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, publishedEvent{eventType, action, data, message})
}

func (r *recordingBroadcaster) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Action
	}
	return out
}

type memStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{files: make(map[string][]byte)}
}

func (m *memStore) Save(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = append([]byte(nil), data...)
	return nil
}

func (m *memStore) Open(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[name]
	if !ok {
		return nil, storage.ErrNotExist
	}
	return data, nil
}

var (
	admin    = model.Principal{UserID: uuid.New(), Email: "admin@example.com", Name: "Admin", Role: model.RoleAdmin}
	employee = model.Principal{UserID: uuid.New(), Email: "clerk@example.com", Name: "Clerk", Role: model.RoleEmployee}
)

func quantityOf(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var p model.Product
	if err := db.First(&p, "id = ?", id).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	return p.Quantity
}

func intPtr(v int) *int { return &v }
