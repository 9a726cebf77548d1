package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"docvault-api/internal/application/ports"
	"docvault-api/internal/domain/document"
	"docvault-api/internal/domain/user"
	"docvault-api/internal/infrastructure/mq"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
)

// memStore is an in-memory ObjectStore that records every call and fails on demand.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	puts    []string
	deletes []string

	// putErr fails the n-th Put (0-based) of the store's lifetime.
	putErr map[int]error
	// putBlock makes the n-th Put wait for its context.
	putBlock map[int]bool
	// deleteErr fails every Delete of the key.
	deleteErr map[string]error
	getErr    error
}

func newMemStore() *memStore {
	return &memStore{
		objects:   map[string][]byte{},
		types:     map[string]string{},
		putErr:    map[int]error{},
		putBlock:  map[int]bool{},
		deleteErr: map[string]error{},
	}
}

func (s *memStore) seed(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	s.types[key] = "image/png"
}

func (s *memStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	idx := len(s.puts)
	s.puts = append(s.puts, key)
	block := s.putBlock[idx]
	err := s.putErr[idx]
	s.mu.Unlock()

	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = append([]byte(nil), data...)
	s.types[key] = contentType
	return nil
}

func (s *memStore) Get(_ context.Context, key string) (*ports.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	data, ok := s.objects[key]
	if !ok {
		return nil, ports.ErrObjectNotFound
	}
	return &ports.Object{
		Body:        io.NopCloser(bytes.NewReader(data)),
		ContentType: s.types[key],
		Size:        int64(len(data)),
	}, nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, key)
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.deleteErr[key]; err != nil {
		return err
	}
	if _, ok := s.objects[key]; !ok {
		return ports.ErrObjectNotFound
	}
	delete(s.objects, key)
	delete(s.types, key)
	return nil
}

func (s *memStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}

func (s *memStore) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.objects))
	for k := range s.objects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// memRepo is an in-memory document.Repository with a unique (user, category) pair.
type memRepo struct {
	mu     sync.Mutex
	docs   map[document.ID]*document.Document
	nextID document.ID
	calls  []string

	lookupErr  error
	createErr  error
	updateErr  error
	updateRows *int64
	// beforeCreate runs once, just before the first insert is applied.
	beforeCreate func(r *memRepo)
	// lookupBlock makes lookups wait for their context.
	lookupBlock bool
}

func newMemRepo() *memRepo {
	return &memRepo{docs: map[document.ID]*document.Document{}, nextID: 1}
}

func (r *memRepo) seedLocked(doc document.Document) *document.Document {
	doc.ID = r.nextID
	r.nextID++
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	r.docs[doc.ID] = &doc
	cp := doc
	return &cp
}

func (r *memRepo) seed(doc document.Document) *document.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seedLocked(doc)
}

func (r *memRepo) FetchDocumentByID(_ context.Context, id document.ID) (*document.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "fetch_by_id")
	d, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *memRepo) FetchByUserAndCategory(ctx context.Context, userID user.ID, category document.Category) (*document.Document, error) {
	r.mu.Lock()
	r.calls = append(r.calls, "lookup")
	block := r.lookupBlock
	err := r.lookupErr
	r.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(userID, category), nil
}

func (r *memRepo) findLocked(userID user.ID, category document.Category) *document.Document {
	for _, d := range r.docs {
		if d.UserID == userID && d.Category == category {
			cp := *d
			return &cp
		}
	}
	return nil
}

func (r *memRepo) CreateDocument(_ context.Context, req *document.Document) (*document.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "insert")

	if r.beforeCreate != nil {
		hook := r.beforeCreate
		r.beforeCreate = nil
		hook(r)
	}
	if r.createErr != nil {
		return nil, r.createErr
	}
	if r.findLocked(req.UserID, req.Category) != nil {
		return nil, document.ErrDocumentExists
	}
	return r.seedLocked(*req), nil
}

func (r *memRepo) UpdateFileReference(_ context.Context, id document.ID, ref document.FileReference) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "update")

	if r.updateErr != nil {
		return 0, r.updateErr
	}
	if r.updateRows != nil {
		return *r.updateRows, nil
	}
	d, ok := r.docs[id]
	if !ok {
		return 0, nil
	}
	d.FileReference = ref
	now := time.Now().UTC()
	d.UpdatedAt = &now
	return 1, nil
}

func (r *memRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}

func (r *memRepo) only(userID user.ID, category document.Category) *document.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(userID, category)
}

// seqKeys returns deterministic object keys: k1.<ext>, k2.<ext>, ...
func seqKeys() func(ext string) string {
	var (
		mu sync.Mutex
		n  int
	)
	return func(ext string) string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("k%d.%s", n, ext)
	}
}

func strPtr(s string) *string { return &s }

func frontAsset() *document.FileAsset {
	return &document.FileAsset{Side: document.SideFront, Data: pngBytes, ContentType: "image/png"}
}

func backAsset() *document.FileAsset {
	return &document.FileAsset{Side: document.SideBack, Data: jpegBytes, ContentType: "image/jpeg"}
}

type fakePublisher struct {
	ch chan mq.Event
}

func newFakePublisher(size int) *fakePublisher {
	return &fakePublisher{ch: make(chan mq.Event, size)}
}

func (p *fakePublisher) GetInputChan() chan mq.Event { return p.ch }
