package models

// SubjectCategory partitions subjects on the courses page.
type SubjectCategory string

const (
	CategoryProgramming SubjectCategory = "Programming"
	CategoryDatabase    SubjectCategory = "Database"
	CategoryNetworking  SubjectCategory = "Networking"
	CategorySecurity    SubjectCategory = "Security"
	CategoryElectives   SubjectCategory = "Electives"
)

// SubjectCategories lists every category in display order. Grouped mirrors
// iterate this slice so empty categories still render as empty groups.
var SubjectCategories = []SubjectCategory{
	CategoryProgramming,
	CategoryDatabase,
	CategoryNetworking,
	CategorySecurity,
	CategoryElectives,
}

// SubjectStatus tracks progress through a subject.
type SubjectStatus string

const (
	SubjectPending   SubjectStatus = "Pending"
	SubjectOngoing   SubjectStatus = "Ongoing"
	SubjectCompleted SubjectStatus = "Completed"
)

// SubjectPriority ranks subjects on the guide page.
type SubjectPriority string

const (
	PriorityLow      SubjectPriority = "LOW"
	PriorityModerate SubjectPriority = "MODERATE"
	PriorityHigh     SubjectPriority = "HIGH"
)

// SubjectPriorities lists priorities in guide display order (highest first).
var SubjectPriorities = []SubjectPriority{PriorityHigh, PriorityModerate, PriorityLow}

// Subject represents a tracked course.
type Subject struct {
	ID          int64           `json:"id"`
	SubjectName string          `json:"subject_name"`
	Category    SubjectCategory `json:"category"`
	Status      SubjectStatus   `json:"status"`
	Priority    SubjectPriority `json:"priority"`
	Grade       *string         `json:"grade,omitempty"`
	Semester    *string         `json:"semester,omitempty"`
	SchoolYear  *string         `json:"school_year,omitempty"`
	Description *string         `json:"description,omitempty"`
}

// ValidCategory reports whether the value is a known category.
func ValidCategory(c SubjectCategory) bool {
	for _, known := range SubjectCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ValidSubjectStatus reports whether the value is a known subject status.
func ValidSubjectStatus(s SubjectStatus) bool {
	switch s {
	case SubjectPending, SubjectOngoing, SubjectCompleted:
		return true
	}
	return false
}

// ValidPriority reports whether the value is a known priority.
func ValidPriority(p SubjectPriority) bool {
	switch p {
	case PriorityLow, PriorityModerate, PriorityHigh:
		return true
	}
	return false
}
