package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jhoicas/tienda-contable/internal/domain"
	"github.com/jhoicas/tienda-contable/internal/domain/draft"
	"github.com/jhoicas/tienda-contable/internal/domain/repository"
)

var _ repository.DraftStore = (*DraftStore)(nil)

type draftEntry struct {
	payload   []byte
	expiresAt time.Time
}

// DraftStore formularios abiertos en memoria con vencimiento. Guarda la sesión
// serializada para que el llamador nunca comparta slices con el store.
type DraftStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]draftEntry
}

// NewDraftStore ttl <= 0 = sin vencimiento.
func NewDraftStore(ttl time.Duration) *DraftStore {
	return &DraftStore{ttl: ttl, now: time.Now, entries: make(map[string]draftEntry)}
}

func (s *DraftStore) Save(_ context.Context, sess *draft.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e := draftEntry{payload: b}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.entries[sess.ID] = e
	return nil
}

func (s *DraftStore) Get(_ context.Context, id string) (*draft.Session, error) {
	return s.load(id, false)
}

// Take saca la sesión del store bajo el mismo candado que la lee.
func (s *DraftStore) Take(_ context.Context, id string) (*draft.Session, error) {
	return s.load(id, true)
}

func (s *DraftStore) load(id string, remove bool) (*draft.Session, error) {
	s.mu.Lock()
	e, ok := s.entries[id]
	if ok && !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		ok = false
	}
	if remove || !ok {
		delete(s.entries, id)
	}
	s.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	var sess draft.Session
	if err := json.Unmarshal(e.payload, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *DraftStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
