// Package seed ships the built-in demo dataset and loads user-provided
// datasets off disk. The application always starts from a full dataset;
// a seed file in the config directory replaces the built-in one wholesale.
package seed

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/simchap123/Work-orders-for-PM/internal/directory"
	"github.com/simchap123/Work-orders-for-PM/internal/workorder"
)

const defaultSeedYAML = `# built-in demo dataset
users:
  - id: 1
    name: Alice (Master)
    role: Master Admin
    avatar_url: https://picsum.photos/seed/alice/100
  - id: 2
    name: Bob (Admin)
    role: Admin
    avatar_url: https://picsum.photos/seed/bob/100
  - id: 3
    name: Charlie (PM)
    role: Property Manager
    avatar_url: https://picsum.photos/seed/charlie/100
  - id: 4
    name: Diana (Supervisor)
    role: Supervisor
    avatar_url: https://picsum.photos/seed/diana/100
  - id: 5
    name: Eve (Tech)
    role: Technician
    avatar_url: https://picsum.photos/seed/eve/100
  - id: 6
    name: Frank (Owner)
    role: Owner
    avatar_url: https://picsum.photos/seed/frank/100
  - id: 7
    name: Grace (Vendor)
    role: Vendor
    avatar_url: https://picsum.photos/seed/grace/100
  - id: 8
    name: Heidi (Tech)
    role: Technician
    avatar_url: https://picsum.photos/seed/heidi/100

properties:
  - id: 101
    name: Gateway Apartments
    address: 123 Main St, Anytown, USA
  - id: 102
    name: Riverbend Lofts
    address: 456 Oak Ave, Anytown, USA
  - id: 103
    name: Crestview Towers
    address: 789 Pine Ln, Anytown, USA

available_tags:
  - Plumbing
  - Electrical
  - HVAC
  - Carpentry
  - Painting
  - Cleaning
  - Landscaping
  - Appliance
  - Safety
  - Inspection
  - Key
  - Lock

work_orders:
  - id: 2024001
    title: Leaky Faucet in Unit 2B
    description: Tenant in unit 2B reported a persistent drip from the kitchen sink faucet. Needs immediate attention to prevent water damage.
    status: New
    priority: High
    property_id: 101
    unit_number: 2B
    tenant:
      name: John Doe
      phone: 555-123-4567
      email: john.doe@example.com
    tags: [Plumbing]
    activity:
      - {id: 1, user_id: 3, type: CREATED, timestamp: 2023-10-27T10:00:00Z}

  - id: 2024002
    title: HVAC Filter Replacement
    description: Scheduled quarterly HVAC filter replacement for all units in Building A.
    status: Assigned
    priority: Medium
    property_id: 101
    assigned_to_id: 5
    tags: [HVAC, Inspection]
    activity:
      - {id: 4, user_id: 4, type: NOTE, timestamp: 2023-10-26T14:35:00Z, details: {content: "Eve, please complete by EOD Friday."}}
      - {id: 3, user_id: 4, type: STATUS_CHANGE, timestamp: 2023-10-26T14:31:00Z, details: {old_status: New, new_status: Assigned}}
      - {id: 2, user_id: 4, type: ASSIGNMENT, timestamp: 2023-10-26T14:31:00Z, details: {assigned_to_id: 5}}
      - {id: 1, user_id: 4, type: CREATED, timestamp: 2023-10-26T14:30:00Z}

  - id: 2024003
    title: Broken window in lobby
    description: The main lobby window was cracked. Awaiting quote from vendor.
    status: On Hold
    priority: High
    property_id: 102
    vendor_id: 7
    tags: [Carpentry, Safety]
    media:
      - {id: 1, url: https://picsum.photos/seed/window/400/300, kind: image, uploaded_by: 3, timestamp: 2023-10-25T09:13:00Z}
    activity:
      - {id: 4, user_id: 3, type: NOTE, timestamp: 2023-10-25T09:15:00Z, details: {content: Contacted Grace for a quote. Waiting for response.}}
      - {id: 3, user_id: 3, type: STATUS_CHANGE, timestamp: 2023-10-25T09:14:00Z, details: {old_status: New, new_status: On Hold}}
      - {id: 2, user_id: 3, type: ASSIGNMENT, timestamp: 2023-10-25T09:14:00Z, details: {assigned_to_id: 7}}
      - {id: 1, user_id: 3, type: CREATED, timestamp: 2023-10-25T09:12:00Z}

  - id: 2024004
    title: Paint touch-up in common hallway
    description: Scuff marks on the 3rd-floor hallway walls need to be touched up.
    status: In Progress
    priority: Low
    property_id: 103
    assigned_to_id: 8
    tags: [Painting]
    activity:
      - {id: 4, user_id: 8, type: STATUS_CHANGE, timestamp: 2023-10-24T13:00:00Z, details: {old_status: Assigned, new_status: In Progress}}
      - {id: 3, user_id: 4, type: STATUS_CHANGE, timestamp: 2023-10-24T11:01:00Z, details: {old_status: New, new_status: Assigned}}
      - {id: 2, user_id: 4, type: ASSIGNMENT, timestamp: 2023-10-24T11:01:00Z, details: {assigned_to_id: 8}}
      - {id: 1, user_id: 4, type: CREATED, timestamp: 2023-10-24T11:00:00Z}

  - id: 2024005
    title: Annual Fire Extinguisher Inspection
    description: Completed the annual fire extinguisher inspection for all buildings.
    status: Completed
    priority: Medium
    property_id: 101
    assigned_to_id: 5
    tags: [Safety, Inspection]
    activity:
      - {id: 5, user_id: 5, type: NOTE, timestamp: 2023-10-20T15:45:00Z, details: {content: All extinguishers passed inspection. Tags updated.}}
      - {id: 4, user_id: 5, type: STATUS_CHANGE, timestamp: 2023-10-20T15:45:00Z, details: {old_status: In Progress, new_status: Completed}}
      - {id: 3, user_id: 4, type: STATUS_CHANGE, timestamp: 2023-10-20T08:01:00Z, details: {old_status: New, new_status: Assigned}}
      - {id: 2, user_id: 4, type: ASSIGNMENT, timestamp: 2023-10-20T08:01:00Z, details: {assigned_to_id: 5}}
      - {id: 1, user_id: 4, type: CREATED, timestamp: 2023-10-20T08:00:00Z}

  - id: 2024006
    title: Landscaping Mulch Refresh
    description: Mulch in all garden beds was refreshed. Project is closed.
    status: Closed
    priority: Low
    property_id: 102
    vendor_id: 7
    tags: [Landscaping]
    activity:
      - {id: 2, user_id: 3, type: STATUS_CHANGE, timestamp: 2023-09-20T16:00:00Z, details: {old_status: Completed, new_status: Closed}}
      - {id: 1, user_id: 3, type: CREATED, timestamp: 2023-09-15T09:00:00Z}
`

// Data is one complete dataset: the reference directory, the work order
// collection, and the tag vocabulary offered by the create form.
type Data struct {
	Users         []directory.User      `yaml:"users"`
	Properties    []directory.Property  `yaml:"properties"`
	AvailableTags []string              `yaml:"available_tags"`
	WorkOrders    []workorder.WorkOrder `yaml:"work_orders"`
}

// Default returns the built-in demo dataset.
func Default() Data {
	data, err := parse([]byte(defaultSeedYAML))
	if err != nil {
		// The embedded dataset is validated by tests; a parse failure here
		// is a programming error.
		panic(fmt.Sprintf("seed: built-in dataset: %v", err))
	}
	return data
}

// Load reads a dataset from path, falling back to the built-in one when
// the file does not exist or path is empty.
func Load(path string) (Data, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Data{}, fmt.Errorf("seed: read %s: %w", path, err)
	}
	data, err := parse(raw)
	if err != nil {
		return Data{}, fmt.Errorf("seed: parse %s: %w", path, err)
	}
	return data, nil
}

func parse(raw []byte) (Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Data{}, err
	}
	if err := data.validate(); err != nil {
		return Data{}, err
	}
	return data, nil
}

func (d Data) validate() error {
	if len(d.Users) == 0 {
		return fmt.Errorf("dataset has no users")
	}
	users := make(map[int]bool, len(d.Users))
	for _, u := range d.Users {
		if users[u.ID] {
			return fmt.Errorf("duplicate user id %d", u.ID)
		}
		users[u.ID] = true
	}
	properties := make(map[int]bool, len(d.Properties))
	for _, p := range d.Properties {
		if properties[p.ID] {
			return fmt.Errorf("duplicate property id %d", p.ID)
		}
		properties[p.ID] = true
	}
	orders := make(map[int]bool, len(d.WorkOrders))
	for _, wo := range d.WorkOrders {
		if orders[wo.ID] {
			return fmt.Errorf("duplicate work order id %d", wo.ID)
		}
		orders[wo.ID] = true
		if !wo.Status.Valid() {
			return fmt.Errorf("work order %d: unknown status %q", wo.ID, wo.Status)
		}
		if !properties[wo.PropertyID] {
			return fmt.Errorf("work order %d: unknown property %d", wo.ID, wo.PropertyID)
		}
		if wo.AssignedToID != nil && !users[*wo.AssignedToID] {
			return fmt.Errorf("work order %d: unknown assignee %d", wo.ID, *wo.AssignedToID)
		}
		if wo.VendorID != nil && !users[*wo.VendorID] {
			return fmt.Errorf("work order %d: unknown vendor %d", wo.ID, *wo.VendorID)
		}
	}
	return nil
}
