package store

import (
	"sync"
	"testing"

	"github.com/simchap123/Work-orders-for-PM/internal/workorder"
)

func TestNewSortsSeedDescending(t *testing.T) {
	s := New([]workorder.WorkOrder{{ID: 2024001}, {ID: 2024003}, {ID: 2024002}}, testRoles)
	snap := s.Snapshot()
	want := []int{2024003, 2024002, 2024001}
	for i := range want {
		if snap[i].ID != want[i] {
			t.Fatalf("seed order = %v..., want %v", snap[i].ID, want)
		}
	}
}

func TestNextID(t *testing.T) {
	s := New(nil, testRoles)
	if got := s.NextID(); got != 2024001 {
		t.Fatalf("empty store NextID = %d, want 2024001", got)
	}
	s = New([]workorder.WorkOrder{
		{ID: 2024001}, {ID: 2024002}, {ID: 2024003},
		{ID: 2024004}, {ID: 2024005}, {ID: 2024006},
	}, testRoles)
	if got := s.NextID(); got != 2024007 {
		t.Fatalf("NextID = %d, want 2024007", got)
	}
}

func TestDispatchBatchIsAtomicSnapshot(t *testing.T) {
	s := New(testState(), testRoles)
	next := s.Dispatch(
		AssignWorkOrder{WorkOrderID: 2024001, AssigneeID: 5},
		AddActivity{WorkOrderID: 2024001, Activity: workorder.Activity{ID: 2, Type: workorder.ActivityAssignment}},
		AddActivity{WorkOrderID: 2024001, Activity: workorder.Activity{ID: 3, Type: workorder.ActivityStatusChange}},
	)
	wo := findOrder(t, next, 2024001)
	if wo.Status != workorder.StatusAssigned {
		t.Fatalf("status = %s, want Assigned", wo.Status)
	}
	if len(wo.Activity) != 3 {
		t.Fatalf("activity entries = %d, want 3", len(wo.Activity))
	}
	if wo.Activity[0].Type != workorder.ActivityStatusChange || wo.Activity[1].Type != workorder.ActivityAssignment {
		t.Fatalf("newest-first order wrong: %v then %v", wo.Activity[0].Type, wo.Activity[1].Type)
	}
	stored, ok := s.Find(2024001)
	if !ok || len(stored.Activity) != 3 {
		t.Fatalf("store did not retain dispatched snapshot")
	}
}

func TestFindMiss(t *testing.T) {
	s := New(testState(), testRoles)
	if _, ok := s.Find(12345); ok {
		t.Fatalf("Find must miss for unknown id")
	}
}

func TestConcurrentDispatches(t *testing.T) {
	s := New(testState(), testRoles)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Dispatch(AddActivity{
				WorkOrderID: 2024001,
				Activity:    workorder.Activity{ID: n + 2, Type: workorder.ActivityNote},
			})
		}(i)
	}
	wg.Wait()
	wo, _ := s.Find(2024001)
	if len(wo.Activity) != 17 {
		t.Fatalf("lost updates: %d activity entries, want 17", len(wo.Activity))
	}
}
