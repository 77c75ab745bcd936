// Package storage tracks metadata for files the user has chosen.
//
// Nothing is written to disk: the page only ever needs a file's display name
// and size, so the registry keeps FileInfo records in memory and discards
// them with the process.
package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bulk-report-generator/backend/internal/models"
	"github.com/google/uuid"
)

// Registry defines the interface for file metadata tracking.
type Registry interface {
	Register(name string, size int64, slot models.Slot) *models.FileInfo
	Get(id string) (*models.FileInfo, error)
	List(limit int) []*models.FileInfo
}

// MemoryRegistry implements Registry with an in-memory map.
type MemoryRegistry struct {
	mu    sync.RWMutex
	files map[string]*models.FileInfo
}

// NewMemoryRegistry creates an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		files: make(map[string]*models.FileInfo),
	}
}

// Register records metadata for a newly chosen file and assigns it an ID.
func (r *MemoryRegistry) Register(name string, size int64, slot models.Slot) *models.FileInfo {
	info := &models.FileInfo{
		ID:         uuid.New().String(),
		Name:       name,
		Size:       size,
		Slot:       slot,
		UploadedAt: time.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[info.ID] = info

	return info
}

// Get retrieves file metadata by ID.
func (r *MemoryRegistry) Get(id string) (*models.FileInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.files[id]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", id)
	}

	return info, nil
}

// List returns the most recently chosen files, newest first.
func (r *MemoryRegistry) List(limit int) []*models.FileInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*models.FileInfo, 0, len(r.files))
	for _, info := range r.files {
		list = append(list, info)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].UploadedAt.After(list[j].UploadedAt)
	})

	if len(list) > limit {
		list = list[:limit]
	}

	return list
}
