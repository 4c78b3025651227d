package domain

type StoryStatus string

const (
	StoryPlanned    StoryStatus = "planned"
	StoryInProgress StoryStatus = "in_progress"
	StoryDone       StoryStatus = "done"
	StoryAtRisk     StoryStatus = "at_risk"
	StoryCancelled  StoryStatus = "cancelled"
)

// ValidStoryStatuses is the canonical set of accepted story status strings.
var ValidStoryStatuses = map[string]bool{
	"planned": true, "in_progress": true, "done": true,
	"at_risk": true, "cancelled": true,
}

// FieldRole tells date consumers whether a value belongs to a span's
// start or its end. A bare month token collapses to the first or the last
// day of its month depending on the role.
type FieldRole string

const (
	RoleStart FieldRole = "start"
	RoleEnd   FieldRole = "end"
)

// AnnotationKind distinguishes the secondary box types rendered next to a
// story bar.
type AnnotationKind string

const (
	AnnotationStatus         AnnotationKind = "status"
	AnnotationTimelineChange AnnotationKind = "timeline_change"
)
