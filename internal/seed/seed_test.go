package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/simchap123/Work-orders-for-PM/internal/workorder"
)

func TestDefaultDatasetIsWellFormed(t *testing.T) {
	data := Default()

	if len(data.Users) != 8 {
		t.Errorf("users = %d, want 8", len(data.Users))
	}
	if len(data.Properties) != 3 {
		t.Errorf("properties = %d, want 3", len(data.Properties))
	}
	if len(data.WorkOrders) != 6 {
		t.Errorf("work orders = %d, want 6", len(data.WorkOrders))
	}
	if len(data.AvailableTags) == 0 {
		t.Error("no available tags")
	}
}

func TestDefaultDatasetCoversLifecycle(t *testing.T) {
	seen := map[workorder.Status]bool{}
	for _, wo := range Default().WorkOrders {
		seen[wo.Status] = true
	}
	for _, status := range workorder.Statuses {
		if !seen[status] {
			t.Errorf("no demo order in status %s", status)
		}
	}
}

func TestDefaultActivityIsNewestFirst(t *testing.T) {
	for _, wo := range Default().WorkOrders {
		for i := 1; i < len(wo.Activity); i++ {
			prev, cur := wo.Activity[i-1], wo.Activity[i]
			if cur.Timestamp.After(prev.Timestamp) {
				t.Errorf("WO-%d activity[%d] is newer than activity[%d]", wo.ID, i, i-1)
			}
		}
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	data, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(data.WorkOrders) != 6 {
		t.Errorf("work orders = %d, want built-in 6", len(data.WorkOrders))
	}
}

func TestLoadCustomDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	custom := `users:
  - id: 1
    name: Solo PM
    role: Property Manager
properties:
  - id: 200
    name: Test Block
    address: 1 Test Rd
work_orders:
  - id: 3000001
    title: Door hinge
    description: Squeaky hinge on unit 1 door
    status: New
    priority: Low
    property_id: 200
`
	if err := os.WriteFile(path, []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(data.WorkOrders) != 1 || data.WorkOrders[0].ID != 3000001 {
		t.Fatalf("work orders = %+v", data.WorkOrders)
	}
}

func TestLoadRejectsBrokenReferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	broken := `users:
  - id: 1
    name: Solo PM
    role: Property Manager
properties:
  - id: 200
    name: Test Block
    address: 1 Test Rd
work_orders:
  - id: 3000001
    title: Door hinge
    description: Squeaky hinge
    status: New
    priority: Low
    property_id: 999
`
	if err := os.WriteFile(path, []byte(broken), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("want error for unknown property reference")
	}
}
