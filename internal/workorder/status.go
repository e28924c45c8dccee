package workorder

// CanChangeTo reports whether a direct status edit from s to next is part
// of the lifecycle. Moves into Assigned are excluded on purpose: they only
// happen through assignment, which the engine fuses with the field update.
//
//	New         -> On Hold
//	Assigned    -> In Progress, On Hold, Completed (supervisor path)
//	In Progress -> Completed
//	Completed   -> Closed
//	On Hold     -> (re-assignment only)
//	Closed      -> terminal
func (s Status) CanChangeTo(next Status) bool {
	switch s {
	case StatusNew:
		return next == StatusOnHold
	case StatusAssigned:
		return next == StatusInProgress || next == StatusOnHold || next == StatusCompleted
	case StatusInProgress:
		return next == StatusCompleted
	case StatusCompleted:
		return next == StatusClosed
	}
	return false
}

// Assignable reports whether an order in this state may be (re-)assigned.
func (s Status) Assignable() bool {
	return s == StatusNew || s == StatusOnHold
}

// Terminal reports whether the lifecycle ends here.
func (s Status) Terminal() bool {
	return s == StatusClosed
}

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}
