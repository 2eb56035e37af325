package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/retail-labels/labelgen/internal/models"
)

type UploadStore struct {
	uploads map[string]*models.UploadSession
	mu      sync.RWMutex
}

func New() *UploadStore {
	return &UploadStore{
		uploads: make(map[string]*models.UploadSession),
	}
}

// Create stores records under a fresh random ID.
func (s *UploadStore) Create(filename string, records models.RecordList) *models.UploadSession {
	upload := &models.UploadSession{
		ID:        uuid.NewString(),
		Filename:  filename,
		Records:   records,
		Count:     len(records),
		CreatedAt: time.Now(),
	}
	s.Set(upload.ID, upload)
	return upload
}

func (s *UploadStore) Get(id string) (*models.UploadSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	upload, exists := s.uploads[id]
	return upload, exists
}

func (s *UploadStore) Set(id string, upload *models.UploadSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads[id] = upload
}

func (s *UploadStore) GetAll() map[string]*models.UploadSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*models.UploadSession, len(s.uploads))
	for k, v := range s.uploads {
		result[k] = v
	}
	return result
}

func (s *UploadStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.uploads, id)
}
