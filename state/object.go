package state

import (
	"github.com/vkngwrapper/validation/diag"
	"github.com/vkngwrapper/validation/internal/utils"
	"sync/atomic"
)

var nextObjectID atomic.Uint64

func newObjectID() uint64 {
	return nextObjectID.Add(1)
}

// Object is implemented by every tracked state object
type Object interface {
	diag.Named

	// ID is unique for the life of the process and is never reused, even when the handle is
	ID() uint64
	Handle() Handle
	Destroyed() bool
	SubStates() *SubStateRegistry

	markDestroyed()
}

type objectState struct {
	id         uint64
	handle     Handle
	objectType diag.ObjectType
	destroyed  atomic.Bool
	subStates  SubStateRegistry
}

func (o *objectState) init(objectType diag.ObjectType, handle Handle, useMutex bool) {
	o.id = newObjectID()
	o.handle = handle
	o.objectType = objectType
	o.subStates.mutex.UseMutex = useMutex
}

func (o *objectState) ID() uint64 {
	return o.id
}

func (o *objectState) Handle() Handle {
	return o.handle
}

func (o *objectState) Object() diag.Object {
	return diag.Object{Type: o.objectType, Handle: uint64(o.handle)}
}

func (o *objectState) Destroyed() bool {
	return o.destroyed.Load()
}

func (o *objectState) SubStates() *SubStateRegistry {
	return &o.subStates
}

func (o *objectState) markDestroyed() {
	if o.destroyed.Swap(true) {
		return
	}
	o.subStates.notifyDestroyed()
}

// SubStateKind tags one family of extension state that optional validation features attach to
// state objects
type SubStateKind int32

// SubState is per-object state owned by an optional validation feature
type SubState interface {
	// ObjectDestroyed is called once, when the owning object is destroyed
	ObjectDestroyed()
}

// SubStateRegistry holds the extension records attached to a single state object, at most one per kind
type SubStateRegistry struct {
	mutex   utils.OptionalRWMutex
	entries map[SubStateKind]SubState
}

// Attach registers state under kind, replacing any record already attached with that kind
func (r *SubStateRegistry) Attach(kind SubStateKind, state SubState) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.entries == nil {
		r.entries = make(map[SubStateKind]SubState)
	}
	r.entries[kind] = state
}

func (r *SubStateRegistry) Detach(kind SubStateKind) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.entries, kind)
}

func (r *SubStateRegistry) Get(kind SubStateKind) (SubState, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	state, ok := r.entries[kind]
	return state, ok
}

func (r *SubStateRegistry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.entries)
}

func (r *SubStateRegistry) notifyDestroyed() {
	r.mutex.RLock()
	entries := make([]SubState, 0, len(r.entries))
	for _, state := range r.entries {
		entries = append(entries, state)
	}
	r.mutex.RUnlock()

	for _, state := range entries {
		state.ObjectDestroyed()
	}
}

// GetSubState returns the record attached under kind if it is present and has type T
func GetSubState[T SubState](r *SubStateRegistry, kind SubStateKind) (T, bool) {
	var zero T
	state, ok := r.Get(kind)
	if !ok {
		return zero, false
	}

	typed, ok := state.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
