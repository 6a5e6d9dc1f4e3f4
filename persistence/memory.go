// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package persistence

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/atomic"
)

// MemoryStoreID is the extension ID of the MemoryStore in the actor system
const MemoryStoreID = "MemoryStore"

// ErrNotConnected is returned when the store is used before Connect or after Disconnect
var ErrNotConnected = errors.New("store is not connected")

// Snapshot is the last known state of an account actor
type Snapshot struct {
	Email   string
	Balance decimal.Decimal
	// References holds the state of every command reference seen by the account
	References map[string]string
}

func (s *Snapshot) clone() *Snapshot {
	copied := *s
	copied.References = maps.Clone(s.References)
	return &copied
}

// Store keeps account snapshots so an account actor can recover its state
// when it is restarted. It is registered as an actor system extension.
type Store interface {
	ID() string
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	WriteState(ctx context.Context, persistenceID string, state *Snapshot) error
	GetLatestState(ctx context.Context, persistenceID string) (*Snapshot, error)
}

// MemoryStore keeps snapshots in process memory. Nothing survives the process.
type MemoryStore struct {
	db        *sync.Map
	connected *atomic.Bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an instance of MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		db:        &sync.Map{},
		connected: atomic.NewBool(false),
	}
}

// ID returns the extension ID
func (d *MemoryStore) ID() string {
	return MemoryStoreID
}

// Connect connects the store
func (d *MemoryStore) Connect(context.Context) error {
	d.connected.Store(true)
	return nil
}

// Disconnect disconnects the store and drops every snapshot
func (d *MemoryStore) Disconnect(context.Context) error {
	if !d.connected.CompareAndSwap(true, false) {
		return nil
	}
	d.db.Range(func(key, _ any) bool {
		d.db.Delete(key)
		return true
	})
	return nil
}

// WriteState stores a copy of state under persistenceID
func (d *MemoryStore) WriteState(_ context.Context, persistenceID string, state *Snapshot) error {
	if !d.connected.Load() {
		return ErrNotConnected
	}
	if state == nil {
		return errors.New("nil snapshot")
	}
	d.db.Store(persistenceID, state.clone())
	return nil
}

// GetLatestState returns the snapshot stored under persistenceID, or nil when
// nothing was written yet
func (d *MemoryStore) GetLatestState(_ context.Context, persistenceID string) (*Snapshot, error) {
	if !d.connected.Load() {
		return nil, ErrNotConnected
	}
	value, ok := d.db.Load(persistenceID)
	if !ok {
		return nil, nil
	}
	return value.(*Snapshot).clone(), nil
}
