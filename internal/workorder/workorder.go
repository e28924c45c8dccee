// Package workorder defines the maintenance work-order entities and the
// lifecycle rules that govern them. Everything here is plain data; state
// ownership and mutation live in internal/store and internal/ops.
package workorder

import "time"

// Status enumerates the work-order lifecycle states.
type Status string

const (
	StatusNew        Status = "New"
	StatusAssigned   Status = "Assigned"
	StatusInProgress Status = "In Progress"
	StatusOnHold     Status = "On Hold"
	StatusCompleted  Status = "Completed"
	StatusClosed     Status = "Closed"
)

// Statuses lists every lifecycle state in display order.
var Statuses = []Status{
	StatusNew,
	StatusAssigned,
	StatusInProgress,
	StatusOnHold,
	StatusCompleted,
	StatusClosed,
}

// Priority ranks how urgently a work order needs attention.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ActivityType tags entries in a work order's activity feed.
type ActivityType string

const (
	ActivityCreated      ActivityType = "CREATED"
	ActivityNote         ActivityType = "NOTE"
	ActivityStatusChange ActivityType = "STATUS_CHANGE"
	ActivityAssignment   ActivityType = "ASSIGNMENT"
	ActivityMediaUpload  ActivityType = "MEDIA_UPLOAD"
)

// MediaKind distinguishes photo evidence from video.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Tenant is the occupant contact attached to a work order, when known.
type Tenant struct {
	Name  string `yaml:"name"`
	Phone string `yaml:"phone,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// ActivityDetails is the per-type payload of an activity entry. Only the
// fields relevant to the entry's type are set.
type ActivityDetails struct {
	Content      string `yaml:"content,omitempty"`
	OldStatus    Status `yaml:"old_status,omitempty"`
	NewStatus    Status `yaml:"new_status,omitempty"`
	AssignedToID *int   `yaml:"assigned_to_id,omitempty"`
	MediaURL     string `yaml:"media_url,omitempty"`
}

// Activity is one append-only entry in a work order's feed. IDs are
// sequence-local: 1-based and unique within their work order.
type Activity struct {
	ID        int             `yaml:"id"`
	UserID    int             `yaml:"user_id"`
	Type      ActivityType    `yaml:"type"`
	Timestamp time.Time       `yaml:"timestamp"`
	Details   ActivityDetails `yaml:"details,omitempty"`
}

// Media is a photo or video attached to a work order. IDs are
// sequence-local, like activity IDs.
type Media struct {
	ID         int       `yaml:"id"`
	URL        string    `yaml:"url"`
	Kind       MediaKind `yaml:"kind"`
	UploadedBy int       `yaml:"uploaded_by"`
	Timestamp  time.Time `yaml:"timestamp"`
}

// WorkOrder is the central record. The activity feed is ordered
// newest-first; media is ordered oldest-first. At most one of
// AssignedToID (internal staff) and VendorID is ever set.
type WorkOrder struct {
	ID           int        `yaml:"id"`
	Title        string     `yaml:"title"`
	Description  string     `yaml:"description"`
	Status       Status     `yaml:"status"`
	Priority     Priority   `yaml:"priority"`
	PropertyID   int        `yaml:"property_id"`
	UnitNumber   string     `yaml:"unit_number,omitempty"`
	Tenant       *Tenant    `yaml:"tenant,omitempty"`
	AssignedToID *int       `yaml:"assigned_to_id,omitempty"`
	VendorID     *int       `yaml:"vendor_id,omitempty"`
	Tags         []string   `yaml:"tags,omitempty"`
	Media        []Media    `yaml:"media,omitempty"`
	Activity     []Activity `yaml:"activity,omitempty"`
}

// Clone returns a deep copy. The reducer clones before touching an entry
// so earlier snapshots stay valid for readers.
func (w WorkOrder) Clone() WorkOrder {
	out := w
	out.Tenant = cloneTenant(w.Tenant)
	out.AssignedToID = cloneInt(w.AssignedToID)
	out.VendorID = cloneInt(w.VendorID)
	out.Tags = cloneStrings(w.Tags)
	if len(w.Media) > 0 {
		out.Media = make([]Media, len(w.Media))
		copy(out.Media, w.Media)
	}
	if len(w.Activity) > 0 {
		out.Activity = make([]Activity, len(w.Activity))
		for i, act := range w.Activity {
			act.Details.AssignedToID = cloneInt(act.Details.AssignedToID)
			out.Activity[i] = act
		}
	}
	return out
}

// Assignee returns the id of whoever holds the order, staff or vendor.
func (w WorkOrder) Assignee() (int, bool) {
	if w.AssignedToID != nil {
		return *w.AssignedToID, true
	}
	if w.VendorID != nil {
		return *w.VendorID, true
	}
	return 0, false
}

// IsAssignedTo reports whether the given user holds the order.
func (w WorkOrder) IsAssignedTo(userID int) bool {
	id, ok := w.Assignee()
	return ok && id == userID
}

// NextActivityID allocates the next sequence-local activity id.
func (w WorkOrder) NextActivityID() int {
	return len(w.Activity) + 1
}

// NextMediaID allocates the next sequence-local media id.
func (w WorkOrder) NextMediaID() int {
	next := 1
	for _, m := range w.Media {
		if m.ID >= next {
			next = m.ID + 1
		}
	}
	return next
}

// Open reports whether the order still needs work.
func (w WorkOrder) Open() bool {
	return w.Status != StatusCompleted && w.Status != StatusClosed
}

func cloneTenant(t *Tenant) *Tenant {
	if t == nil {
		return nil
	}
	out := *t
	return &out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
