package metrics

import (
	"sync"
	"testing"
)

func TestInMemoryRecorder_Snapshot(t *testing.T) {
	rec := NewInMemory()

	rec.IncUserRegistered()
	rec.IncLoginFailed()
	rec.IncLoginFailed()
	rec.IncSessionIssued()
	rec.IncSessionRevoked()
	rec.IncTodoCreated()
	rec.IncTodoCompleted()
	rec.IncTodoDeleted()
	rec.IncAuthCacheHit()
	rec.IncAuthCacheMiss()

	snap := rec.Snapshot()
	if snap.UsersRegistered != 1 {
		t.Errorf("UsersRegistered = %d, want 1", snap.UsersRegistered)
	}
	if snap.LoginsFailed != 2 {
		t.Errorf("LoginsFailed = %d, want 2", snap.LoginsFailed)
	}
	if snap.SessionsIssued != 1 || snap.SessionsRevoked != 1 {
		t.Errorf("sessions: issued %d revoked %d, want 1/1", snap.SessionsIssued, snap.SessionsRevoked)
	}
	if snap.TodosCreated != 1 || snap.TodosCompleted != 1 || snap.TodosDeleted != 1 {
		t.Errorf("todos: %d/%d/%d, want 1/1/1", snap.TodosCreated, snap.TodosCompleted, snap.TodosDeleted)
	}
	if snap.AuthCacheHits != 1 || snap.AuthCacheMisses != 1 {
		t.Errorf("cache: hits %d misses %d, want 1/1", snap.AuthCacheHits, snap.AuthCacheMisses)
	}
}

func TestInMemoryRecorder_Concurrent(t *testing.T) {
	rec := NewInMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.IncTodoCreated()
		}()
	}
	wg.Wait()

	if got := rec.Snapshot().TodosCreated; got != 50 {
		t.Errorf("TodosCreated = %d, want 50", got)
	}
}
