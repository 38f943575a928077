package household

// Status is the enrolment state of a household.
type Status string

const (
	StatusRegistered Status = "registered"
	StatusEnrolled   Status = "enrolled"
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
)

var statusTransitions = map[Status][]Status{
	StatusRegistered: {StatusEnrolled, StatusInactive},
	StatusEnrolled:   {StatusActive, StatusInactive},
	StatusActive:     {StatusInactive},
	StatusInactive:   {},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Gender of a household member. Empty means not recorded.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, "":
		return true
	default:
		return false
	}
}
