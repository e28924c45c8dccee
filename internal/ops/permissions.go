package ops

import (
	"github.com/simchap123/Work-orders-for-PM/internal/directory"
	"github.com/simchap123/Work-orders-for-PM/internal/workorder"
)

// managingRole reports whether a role sits on the management side of the
// workflow: the roles that create, assign, hold, and close work orders.
func managingRole(role directory.Role) bool {
	switch role {
	case directory.RoleMasterAdmin, directory.RoleAdmin, directory.RolePropertyManager, directory.RoleSupervisor:
		return true
	}
	return false
}

// CanCreate reports whether the role may create work orders.
func CanCreate(role directory.Role) bool {
	return managingRole(role)
}

// CanAssign reports whether the role may assign a work order in the given
// status. Assignment doubles as the only route out of On Hold.
func CanAssign(role directory.Role, status workorder.Status) bool {
	return managingRole(role) && status.Assignable()
}

// CanStartProgress reports whether the user may move the order to
// In Progress: the assigned technician, from Assigned.
func CanStartProgress(user directory.User, wo workorder.WorkOrder) bool {
	return user.Role == directory.RoleTechnician &&
		wo.IsAssignedTo(user.ID) &&
		wo.Status == workorder.StatusAssigned
}

// CanCompleteWithEvidence reports whether the user may run the evidence
// completion flow: the assigned technician, from In Progress.
func CanCompleteWithEvidence(user directory.User, wo workorder.WorkOrder) bool {
	return user.Role == directory.RoleTechnician &&
		wo.IsAssignedTo(user.ID) &&
		wo.Status == workorder.StatusInProgress
}

// CanCompleteDirect reports whether the user may mark the order Completed
// without evidence: supervisors, from Assigned or In Progress.
func CanCompleteDirect(user directory.User, wo workorder.WorkOrder) bool {
	return user.Role == directory.RoleSupervisor &&
		wo.Status.CanChangeTo(workorder.StatusCompleted)
}

// CanHold reports whether the user may park the order On Hold.
func CanHold(user directory.User, wo workorder.WorkOrder) bool {
	return managingRole(user.Role) && wo.Status.CanChangeTo(workorder.StatusOnHold)
}

// CanClose reports whether the user may close a completed order.
func CanClose(user directory.User, wo workorder.WorkOrder) bool {
	return managingRole(user.Role) && wo.Status == workorder.StatusCompleted
}
