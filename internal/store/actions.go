package store

import "github.com/simchap123/Work-orders-for-PM/internal/workorder"

// Action is a member of the closed set of state transitions the engine
// understands. The marker method keeps the set closed at compile time.
type Action interface {
	isAction()
}

// AddWorkOrder inserts a fully built work order. The collection is kept
// sorted by id descending, so new orders surface at the head.
type AddWorkOrder struct {
	Order workorder.WorkOrder
}

// AddActivity prepends an entry to a work order's activity feed.
type AddActivity struct {
	WorkOrderID int
	Activity    workorder.Activity
}

// AddMedia appends a media record; media displays oldest-first.
type AddMedia struct {
	WorkOrderID int
	Media       workorder.Media
}

// UpdateStatus sets the status field as-is. Transition legality is the
// operations layer's job, not the engine's.
type UpdateStatus struct {
	WorkOrderID int
	NewStatus   workorder.Status
}

// AssignWorkOrder hands the order to a user and moves it to Assigned in
// one fused transition. A vendor assignee fills VendorID and clears
// AssignedToID; anyone else fills AssignedToID and clears VendorID.
type AssignWorkOrder struct {
	WorkOrderID int
	AssigneeID  int
}

func (AddWorkOrder) isAction()    {}
func (AddActivity) isAction()     {}
func (AddMedia) isAction()        {}
func (UpdateStatus) isAction()    {}
func (AssignWorkOrder) isAction() {}
