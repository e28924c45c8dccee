package workorder

import (
	"testing"
	"time"
)

func TestStatusTransitions(t *testing.T) {
	allowed := map[Status][]Status{
		StatusNew:        {StatusOnHold},
		StatusAssigned:   {StatusInProgress, StatusOnHold, StatusCompleted},
		StatusInProgress: {StatusCompleted},
		StatusOnHold:     {},
		StatusCompleted:  {StatusClosed},
		StatusClosed:     {},
	}
	for from, nexts := range allowed {
		want := map[Status]bool{}
		for _, next := range nexts {
			want[next] = true
		}
		for _, to := range Statuses {
			if got := from.CanChangeTo(to); got != want[to] {
				t.Errorf("%s -> %s: got %v, want %v", from, to, got, want[to])
			}
		}
	}
}

func TestAssignedIsNotReachableByDirectEdit(t *testing.T) {
	for _, from := range Statuses {
		if from.CanChangeTo(StatusAssigned) {
			t.Fatalf("%s must not reach Assigned without an assignment", from)
		}
	}
}

func TestAssignableStates(t *testing.T) {
	for _, s := range Statuses {
		want := s == StatusNew || s == StatusOnHold
		if got := s.Assignable(); got != want {
			t.Errorf("Assignable(%s) = %v, want %v", s, got, want)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	tech := 5
	original := WorkOrder{
		ID:           2024001,
		Title:        "Leaky faucet",
		Status:       StatusAssigned,
		Priority:     PriorityHigh,
		PropertyID:   101,
		Tenant:       &Tenant{Name: "John Doe"},
		AssignedToID: &tech,
		Tags:         []string{"Plumbing"},
		Media: []Media{
			{ID: 1, URL: "https://example.com/a.jpg", Kind: MediaImage},
		},
		Activity: []Activity{
			{ID: 2, Type: ActivityAssignment, Details: ActivityDetails{AssignedToID: &tech}},
			{ID: 1, Type: ActivityCreated, Timestamp: time.Date(2023, 10, 27, 10, 0, 0, 0, time.UTC)},
		},
	}

	clone := original.Clone()
	clone.Tenant.Name = "changed"
	*clone.AssignedToID = 99
	clone.Tags[0] = "changed"
	clone.Media[0].URL = "changed"
	clone.Activity[0].Details.Content = "changed"
	*clone.Activity[0].Details.AssignedToID = 42

	if original.Tenant.Name != "John Doe" {
		t.Errorf("tenant mutated through clone")
	}
	if *original.AssignedToID != 5 {
		t.Errorf("assignee mutated through clone")
	}
	if original.Tags[0] != "Plumbing" {
		t.Errorf("tags mutated through clone")
	}
	if original.Media[0].URL != "https://example.com/a.jpg" {
		t.Errorf("media mutated through clone")
	}
	if original.Activity[0].Details.Content != "" || *original.Activity[0].Details.AssignedToID != 5 {
		t.Errorf("activity mutated through clone")
	}
}

func TestNextIDs(t *testing.T) {
	wo := WorkOrder{}
	if got := wo.NextActivityID(); got != 1 {
		t.Fatalf("empty feed: next activity id = %d, want 1", got)
	}
	if got := wo.NextMediaID(); got != 1 {
		t.Fatalf("empty media: next media id = %d, want 1", got)
	}
	wo.Activity = []Activity{{ID: 2}, {ID: 1}}
	wo.Media = []Media{{ID: 1}, {ID: 4}}
	if got := wo.NextActivityID(); got != 3 {
		t.Fatalf("next activity id = %d, want 3", got)
	}
	if got := wo.NextMediaID(); got != 5 {
		t.Fatalf("next media id = %d, want 5", got)
	}
}

func TestAssigneeMutualExclusion(t *testing.T) {
	tech, vendor := 5, 7
	wo := WorkOrder{AssignedToID: &tech}
	if id, ok := wo.Assignee(); !ok || id != 5 {
		t.Fatalf("Assignee() = %d, %v; want 5, true", id, ok)
	}
	wo = WorkOrder{VendorID: &vendor}
	if id, ok := wo.Assignee(); !ok || id != 7 {
		t.Fatalf("Assignee() = %d, %v; want 7, true", id, ok)
	}
	if !wo.IsAssignedTo(7) || wo.IsAssignedTo(5) {
		t.Fatalf("IsAssignedTo mismatch for vendor assignment")
	}
	wo = WorkOrder{}
	if _, ok := wo.Assignee(); ok {
		t.Fatalf("unassigned order must report no assignee")
	}
}
