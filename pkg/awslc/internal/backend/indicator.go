package backend

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// Indicator events are recorded per goroutine: a scope only observes
// services run by the goroutine that opened it.
type indicatorScope struct {
	approved   bool
	unapproved bool
}

var (
	scopeMu    sync.RWMutex
	scopes     = make(map[int64]*indicatorScope)
	openScopes atomic.Int32
)

func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	idField := strings.Fields(strings.TrimPrefix(string(buf[:n]), "goroutine "))[0]
	id, _ := strconv.ParseInt(idField, 10, 64)
	return id
}

// OpenIndicatorScope starts recording indicator events for the calling
// goroutine. The returned func ends the scope and reports whether any
// approved and any non-approved service ran inside it. Scopes do not nest.
func OpenIndicatorScope() func() (approved, unapproved bool) {
	id := goroutineID()
	s := &indicatorScope{}
	scopeMu.Lock()
	scopes[id] = s
	scopeMu.Unlock()
	openScopes.Add(1)
	return func() (bool, bool) {
		scopeMu.Lock()
		delete(scopes, id)
		scopeMu.Unlock()
		openScopes.Add(-1)
		return s.approved, s.unapproved
	}
}

// indicate records that an indicator-setting service just completed on the
// calling goroutine.
func indicate(ok bool) {
	if openScopes.Load() == 0 {
		return
	}
	id := goroutineID()
	scopeMu.RLock()
	s := scopes[id]
	scopeMu.RUnlock()
	if s == nil {
		return
	}
	if ok {
		s.approved = true
	} else {
		s.unapproved = true
	}
}
