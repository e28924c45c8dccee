// Package store is the state-transition core: a reducer that folds tagged
// actions into a fresh work-order collection, and the Store that owns the
// live snapshot. The reducer never mutates its input; untouched entries
// are shared between snapshots, touched entries are deep-cloned first.
package store

import (
	"sort"

	"github.com/simchap123/Work-orders-for-PM/internal/directory"
	"github.com/simchap123/Work-orders-for-PM/internal/workorder"
)

// RoleLookup resolves a user's role for assignment handling.
type RoleLookup func(userID int) (directory.Role, bool)

// Engine applies actions to work-order collections. It carries the role
// lookup so assignment can route between staff and vendor without reaching
// for ambient state.
type Engine struct {
	roles RoleLookup
}

// NewEngine builds an engine around the given role lookup. A nil lookup
// treats every assignee as internal staff.
func NewEngine(roles RoleLookup) Engine {
	return Engine{roles: roles}
}

// Apply folds a single action into a new collection. The input slice and
// its entries are left untouched. An action addressed to a work order id
// that does not exist returns the state unchanged; the operations layer
// screens for missing ids before dispatching, so hitting that path means
// a caller bug, and tests pin the behavior.
func (e Engine) Apply(state []workorder.WorkOrder, action Action) []workorder.WorkOrder {
	switch act := action.(type) {
	case AddWorkOrder:
		next := make([]workorder.WorkOrder, 0, len(state)+1)
		next = append(next, act.Order)
		next = append(next, state...)
		sort.SliceStable(next, func(i, j int) bool { return next[i].ID > next[j].ID })
		return next

	case AddActivity:
		return e.replace(state, act.WorkOrderID, func(wo workorder.WorkOrder) workorder.WorkOrder {
			wo.Activity = append([]workorder.Activity{act.Activity}, wo.Activity...)
			return wo
		})

	case AddMedia:
		return e.replace(state, act.WorkOrderID, func(wo workorder.WorkOrder) workorder.WorkOrder {
			wo.Media = append(wo.Media, act.Media)
			return wo
		})

	case UpdateStatus:
		return e.replace(state, act.WorkOrderID, func(wo workorder.WorkOrder) workorder.WorkOrder {
			wo.Status = act.NewStatus
			return wo
		})

	case AssignWorkOrder:
		return e.replace(state, act.WorkOrderID, func(wo workorder.WorkOrder) workorder.WorkOrder {
			assignee := act.AssigneeID
			if e.isVendor(assignee) {
				wo.VendorID = &assignee
				wo.AssignedToID = nil
			} else {
				wo.AssignedToID = &assignee
				wo.VendorID = nil
			}
			wo.Status = workorder.StatusAssigned
			return wo
		})
	}
	return state
}

// replace rebuilds the slice with the matching entry cloned and mutated.
// When the id is absent the original slice is returned as-is.
func (e Engine) replace(state []workorder.WorkOrder, id int, mutate func(workorder.WorkOrder) workorder.WorkOrder) []workorder.WorkOrder {
	idx := -1
	for i := range state {
		if state[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return state
	}
	next := make([]workorder.WorkOrder, len(state))
	copy(next, state)
	next[idx] = mutate(state[idx].Clone())
	return next
}

func (e Engine) isVendor(userID int) bool {
	if e.roles == nil {
		return false
	}
	role, ok := e.roles(userID)
	return ok && role == directory.RoleVendor
}
