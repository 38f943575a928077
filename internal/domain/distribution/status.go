package distribution

// Status is the lifecycle state of a distribution event.
type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var statusTransitions = map[Status][]Status{
	StatusPlanned: {
		StatusInProgress,
		StatusCancelled,
	},
	StatusInProgress: {
		StatusCompleted,
		StatusCancelled,
	},
	StatusCompleted: {},
	StatusCancelled: {},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// RecordStatus is the field outcome of a distribution record.
type RecordStatus string

const (
	RecordStatusPending     RecordStatus = "pending"
	RecordStatusDistributed RecordStatus = "distributed"
	RecordStatusPartial     RecordStatus = "partial"
	RecordStatusMissed      RecordStatus = "missed"
)

var validRecordStatuses = map[RecordStatus]bool{
	RecordStatusPending:     true,
	RecordStatusDistributed: true,
	RecordStatusPartial:     true,
	RecordStatusMissed:      true,
}

func (s RecordStatus) String() string {
	return string(s)
}

func (s RecordStatus) IsValid() bool {
	return validRecordStatuses[s]
}

// MovesLedger reports whether confirming with s draws on the entitlement.
func (s RecordStatus) MovesLedger() bool {
	return s == RecordStatusDistributed || s == RecordStatusPartial
}
