// Package ops is the workflow operations layer. Every lifecycle change
// flows through here: an operation reads the current snapshot, checks role
// and status preconditions, derives the activity entries it owes the audit
// trail, and dispatches one atomic action batch to the store. Nothing is
// dispatched when a precondition fails.
package ops

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/simchap123/Work-orders-for-PM/internal/directory"
	"github.com/simchap123/Work-orders-for-PM/internal/logbook"
	"github.com/simchap123/Work-orders-for-PM/internal/store"
	"github.com/simchap123/Work-orders-for-PM/internal/workorder"
)

var (
	// ErrNotFound marks operations addressed to a work order that is not
	// in the collection. The reducer below us would silently ignore such
	// an action; the operations layer refuses it out loud instead.
	ErrNotFound = errors.New("work order not found")

	// ErrValidation marks input the operation rejects before dispatch.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden marks operations the acting user's role does not allow
	// in the order's current status.
	ErrForbidden = errors.New("operation not permitted")
)

// completionNotePrefix marks notes recorded by CompleteWithEvidence.
const completionNotePrefix = "Completion Note: "

// Service executes workflow operations against the store.
type Service struct {
	store *store.Store
	dir   *directory.Directory
	log   *logbook.Logbook
	now   func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock injects a deterministic clock (primarily for tests).
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// New wires the operations layer to its collaborators.
func New(st *store.Store, dir *directory.Directory, log *logbook.Logbook, opts ...Option) *Service {
	s := &Service{
		store: st,
		dir:   dir,
		log:   log,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest carries the fields for a new work order.
type CreateRequest struct {
	Title       string
	Description string
	PropertyID  int
	UnitNumber  string
	Tenant      *workorder.Tenant
	Priority    workorder.Priority
	Tags        []string
	AuthorID    int
}

// Create validates and inserts a new work order in status New, with a
// single CREATED activity entry authored by the caller.
func (s *Service) Create(req CreateRequest) (workorder.WorkOrder, error) {
	author, err := s.author(req.AuthorID)
	if err != nil {
		return workorder.WorkOrder{}, err
	}
	if !CanCreate(author.Role) {
		return workorder.WorkOrder{}, fmt.Errorf("%w: %s cannot create work orders", ErrForbidden, author.Role)
	}
	if strings.TrimSpace(req.Title) == "" {
		return workorder.WorkOrder{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(req.Description) == "" {
		return workorder.WorkOrder{}, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if _, ok := s.dir.PropertyByID(req.PropertyID); !ok {
		return workorder.WorkOrder{}, fmt.Errorf("%w: unknown property %d", ErrValidation, req.PropertyID)
	}
	priority := req.Priority
	if priority == "" {
		priority = workorder.PriorityMedium
	}

	order := workorder.WorkOrder{
		ID:          s.store.NextID(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Status:      workorder.StatusNew,
		Priority:    priority,
		PropertyID:  req.PropertyID,
		UnitNumber:  req.UnitNumber,
		Tenant:      req.Tenant,
		Tags:        req.Tags,
		Activity: []workorder.Activity{
			{
				ID:        1,
				UserID:    author.ID,
				Type:      workorder.ActivityCreated,
				Timestamp: s.now(),
			},
		},
	}
	s.store.Dispatch(store.AddWorkOrder{Order: order})
	s.log.Op(author.Name, "created WO-%d · %s", order.ID, order.Title)
	return order, nil
}

// AddNote appends a NOTE activity with the given content.
func (s *Service) AddNote(workOrderID, authorID int, content string) (workorder.WorkOrder, error) {
	author, err := s.author(authorID)
	if err != nil {
		return workorder.WorkOrder{}, err
	}
	if strings.TrimSpace(content) == "" {
		return workorder.WorkOrder{}, fmt.Errorf("%w: note content is required", ErrValidation)
	}
	wo, err := s.find(workOrderID)
	if err != nil {
		return workorder.WorkOrder{}, err
	}
	next := s.store.Dispatch(store.AddActivity{
		WorkOrderID: wo.ID,
		Activity: workorder.Activity{
			ID:        wo.NextActivityID(),
			UserID:    author.ID,
			Type:      workorder.ActivityNote,
			Timestamp: s.now(),
			Details:   workorder.ActivityDetails{Content: content},
		},
	})
	s.log.Op(author.Name, "commented on WO-%d", wo.ID)
	return pick(next, wo.ID)
}

// AddMedia appends a media record and its MEDIA_UPLOAD activity entry.
func (s *Service) AddMedia(workOrderID, authorID int, url string, kind workorder.MediaKind) (workorder.WorkOrder, error) {
	author, err := s.author(authorID)
	if err != nil {
		return workorder.WorkOrder{}, err
	}
	if strings.TrimSpace(url) == "" {
		return workorder.WorkOrder{}, fmt.Errorf("%w: media url is required", ErrValidation)
	}
	if kind != workorder.MediaImage && kind != workorder.MediaVideo {
		return workorder.WorkOrder{}, fmt.Errorf("%w: unknown media kind %q", ErrValidation, kind)
	}
	wo, err := s.find(workOrderID)
	if err != nil {
		return workorder.WorkOrder{}, err
	}
	ts := s.now()
	next := s.store.Dispatch(
		store.AddMedia{
			WorkOrderID: wo.ID,
			Media: workorder.Media{
				ID:         wo.NextMediaID(),
				URL:        url,
				Kind:       kind,
				UploadedBy: author.ID,
				Timestamp:  ts,
			},
		},
		store.AddActivity{
			WorkOrderID: wo.ID,
			Activity: workorder.Activity{
				ID:        wo.NextActivityID(),
				UserID:    author.ID,
				Type:      workorder.ActivityMediaUpload,
				Timestamp: ts,
				Details:   workorder.ActivityDetails{MediaURL: url},
			},
		},
	)
	s.log.Op(author.Name, "uploaded media to WO-%d", wo.ID)
	return pick(next, wo.ID)
}

// Assign hands a work order to a technician or vendor. The engine fuses
// the field update with the move to Assigned; this layer contributes the
// ASSIGNMENT and STATUS_CHANGE entries, in that order.
func (s *Service) Assign(workOrderID, assigneeID, authorID int) (workorder.WorkOrder, error) {
	author, err := s.author(authorID)
	if err != nil {
		return workorder.WorkOrder{}, err
	}
	wo, err := s.find(workOrderID)
	if err != nil {
		return workorder.WorkOrder{}, err
	}
	if !CanAssign(author.Role, wo.Status) {
		return workorder.WorkOrder{}, fmt.Errorf("%w: %s cannot assign a work order in status %s", ErrForbidden, author.Role, wo.Status)
	}
	assignee, ok := s.dir.UserByID(assigneeID)
	if !ok {
		return workorder.WorkOrder{}, fmt.Errorf("%w: unknown assignee %d", ErrValidation, assigneeID)
	}

	ts := s.now()
	n := wo.NextActivityID()
	next := s.store.Dispatch(
		store.AssignWorkOrder{WorkOrderID: wo.ID, AssigneeID: assignee.ID},
		store.AddActivity{
			WorkOrderID: wo.ID,
			Activity: workorder.Activity{
				ID:        n,
				UserID:    author.ID,
				Type:      workorder.ActivityAssignment,
				Timestamp: ts,
				Details:   workorder.ActivityDetails{AssignedToID: &assignee.ID},
			},
		},
		store.AddActivity{
			WorkOrderID: wo.ID,
			Activity: workorder.Activity{
				ID:        n + 1,
				UserID:    author.ID,
				Type:      workorder.ActivityStatusChange,
				Timestamp: ts,
				Details:   workorder.ActivityDetails{OldStatus: wo.Status, NewStatus: workorder.StatusAssigned},
			},
		},
	)
	s.log.Op(author.Name, "assigned WO-%d to %s", wo.ID, assignee.Name)
	return pick(next, wo.ID)
}

// ChangeStatus moves a work order along the lifecycle. Requesting the
// current status is a no-op: no activity entry, no error.
func (s *Service) ChangeStatus(workOrderID int, newStatus workorder.Status, authorID int) (workorder.WorkOrder, error) {
	author, err := s.author(authorID)
	if err != nil {
		return workorder.WorkOrder{}, err
	}
	wo, err := s.find(workOrderID)
	if err != nil {
		return workorder.WorkOrder{}, err
	}
	if wo.Status == newStatus {
		return wo, nil
	}
	if !newStatus.Valid() {
		return workorder.WorkOrder{}, fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}
	if !wo.Status.CanChangeTo(newStatus) {
		return workorder.WorkOrder{}, fmt.Errorf("%w: %s -> %s is not a lifecycle move", ErrForbidden, wo.Status, newStatus)
	}
	if err := s.checkStatusRole(author, wo, newStatus); err != nil {
		return workorder.WorkOrder{}, err
	}

	next := s.store.Dispatch(
		store.UpdateStatus{WorkOrderID: wo.ID, NewStatus: newStatus},
		store.AddActivity{
			WorkOrderID: wo.ID,
			Activity: workorder.Activity{
				ID:        wo.NextActivityID(),
				UserID:    author.ID,
				Type:      workorder.ActivityStatusChange,
				Timestamp: s.now(),
				Details:   workorder.ActivityDetails{OldStatus: wo.Status, NewStatus: newStatus},
			},
		},
	)
	s.log.Op(author.Name, "moved WO-%d from %s to %s", wo.ID, wo.Status, newStatus)
	return pick(next, wo.ID)
}

// CompleteWithEvidence is the technician completion composite: photo
// evidence, a completion note, then the move to Completed, as one batch.
// The audit trail depends on this exact order, so the three steps are
// never dispatched separately.
func (s *Service) CompleteWithEvidence(workOrderID, authorID int, note, mediaURL string) (workorder.WorkOrder, error) {
	author, err := s.author(authorID)
	if err != nil {
		return workorder.WorkOrder{}, err
	}
	if strings.TrimSpace(note) == "" {
		return workorder.WorkOrder{}, fmt.Errorf("%w: completion note is required", ErrValidation)
	}
	if strings.TrimSpace(mediaURL) == "" {
		return workorder.WorkOrder{}, fmt.Errorf("%w: completion photo is required", ErrValidation)
	}
	wo, err := s.find(workOrderID)
	if err != nil {
		return workorder.WorkOrder{}, err
	}
	if author.Role != directory.RoleTechnician || !wo.IsAssignedTo(author.ID) || wo.Status != workorder.StatusInProgress {
		return workorder.WorkOrder{}, fmt.Errorf("%w: completion with evidence needs the assigned technician on an in-progress order", ErrForbidden)
	}

	ts := s.now()
	n := wo.NextActivityID()
	next := s.store.Dispatch(
		store.AddMedia{
			WorkOrderID: wo.ID,
			Media: workorder.Media{
				ID:         wo.NextMediaID(),
				URL:        mediaURL,
				Kind:       workorder.MediaImage,
				UploadedBy: author.ID,
				Timestamp:  ts,
			},
		},
		store.AddActivity{
			WorkOrderID: wo.ID,
			Activity: workorder.Activity{
				ID:        n,
				UserID:    author.ID,
				Type:      workorder.ActivityMediaUpload,
				Timestamp: ts,
				Details:   workorder.ActivityDetails{MediaURL: mediaURL},
			},
		},
		store.AddActivity{
			WorkOrderID: wo.ID,
			Activity: workorder.Activity{
				ID:        n + 1,
				UserID:    author.ID,
				Type:      workorder.ActivityNote,
				Timestamp: ts,
				Details:   workorder.ActivityDetails{Content: completionNotePrefix + note},
			},
		},
		store.UpdateStatus{WorkOrderID: wo.ID, NewStatus: workorder.StatusCompleted},
		store.AddActivity{
			WorkOrderID: wo.ID,
			Activity: workorder.Activity{
				ID:        n + 2,
				UserID:    author.ID,
				Type:      workorder.ActivityStatusChange,
				Timestamp: ts,
				Details:   workorder.ActivityDetails{OldStatus: wo.Status, NewStatus: workorder.StatusCompleted},
			},
		},
	)
	s.log.Op(author.Name, "completed WO-%d with evidence", wo.ID)
	return pick(next, wo.ID)
}

// checkStatusRole applies the role gates on direct status moves.
func (s *Service) checkStatusRole(author directory.User, wo workorder.WorkOrder, newStatus workorder.Status) error {
	switch newStatus {
	case workorder.StatusInProgress:
		if author.Role != directory.RoleTechnician || !wo.IsAssignedTo(author.ID) {
			return fmt.Errorf("%w: only the assigned technician can start progress", ErrForbidden)
		}
	case workorder.StatusCompleted:
		supervisor := author.Role == directory.RoleSupervisor
		assignedTech := author.Role == directory.RoleTechnician &&
			wo.IsAssignedTo(author.ID) && wo.Status == workorder.StatusInProgress
		if !supervisor && !assignedTech {
			return fmt.Errorf("%w: completion needs a supervisor or the assigned technician", ErrForbidden)
		}
	case workorder.StatusOnHold, workorder.StatusClosed:
		if !managingRole(author.Role) {
			return fmt.Errorf("%w: %s cannot move a work order to %s", ErrForbidden, author.Role, newStatus)
		}
	}
	return nil
}

func (s *Service) author(id int) (directory.User, error) {
	u, ok := s.dir.UserByID(id)
	if !ok {
		return directory.User{}, fmt.Errorf("%w: unknown user %d", ErrForbidden, id)
	}
	return u, nil
}

func (s *Service) find(id int) (workorder.WorkOrder, error) {
	wo, ok := s.store.Find(id)
	if !ok {
		return workorder.WorkOrder{}, fmt.Errorf("%w: WO-%d", ErrNotFound, id)
	}
	return wo, nil
}

func pick(state []workorder.WorkOrder, id int) (workorder.WorkOrder, error) {
	for _, wo := range state {
		if wo.ID == id {
			return wo, nil
		}
	}
	return workorder.WorkOrder{}, fmt.Errorf("%w: WO-%d", ErrNotFound, id)
}
