/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package stub provides an in-memory courier service speaking the same
// contract as the real one, so that the suites and their helpers can run
// without network access.
package stub

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrLoginTaken = errors.New("login is already in use")
	ErrNotFound   = errors.New("courier not found")
)

// Courier is a stored courier account.
type Courier struct {
	ID        int64
	Login     string
	Password  string
	FirstName string
	LastName  string
}

//go:generate mockgen -source=store.go -destination=mock/store.go -package=mock
type Store interface {
	// Create stores the courier and returns its new identifier.
	Create(ctx context.Context, courier *Courier) (int64, error)
	// Delete removes a courier by identifier.
	Delete(ctx context.Context, id int64) error
	// FindByLogin looks a courier up by login.
	FindByLogin(ctx context.Context, login string) (*Courier, error)
}

// MemoryStore is a Store backed by maps.  Identifiers are never reused.
type MemoryStore struct {
	lock    sync.Mutex
	nextID  int64
	byID    map[int64]*Courier
	byLogin map[string]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    map[int64]*Courier{},
		byLogin: map[string]int64{},
	}
}

func (s *MemoryStore) Create(_ context.Context, courier *Courier) (int64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.byLogin[courier.Login]; ok {
		return 0, ErrLoginTaken
	}

	s.nextID++

	stored := *courier
	stored.ID = s.nextID

	s.byID[stored.ID] = &stored
	s.byLogin[stored.Login] = stored.ID

	return stored.ID, nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	courier, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}

	delete(s.byID, id)
	delete(s.byLogin, courier.Login)

	return nil
}

func (s *MemoryStore) FindByLogin(_ context.Context, login string) (*Courier, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	id, ok := s.byLogin[login]
	if !ok {
		return nil, ErrNotFound
	}

	courier := *s.byID[id]

	return &courier, nil
}

// Len returns the number of stored couriers.
func (s *MemoryStore) Len() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return len(s.byID)
}
