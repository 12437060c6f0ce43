// Package status is the registry of application workflow statuses: the
// status set itself, display metadata for each status, and the per-role
// transition rules that gate every status write.
package status

// Application statuses in lifecycle order. Several values are misspelled;
// they are wire values external consumers depend on and must not be fixed.
const (
	Pending             = "PENDING"
	UnderReview         = "UNDER_REVIEW"
	RMRecommendation    = "RM_RECCOMENDATION"
	Conditional         = "CONDITIONAL"
	SupervisorReviewing = "SUPERVISOR_REVIEWING"
	Supervised          = "SUPERVISED"
	FinalAnalysis       = "FINAL_ANALYSIS"
	MemberReview        = "MEMBER_REVIEW"
	CommitteeReview     = "COMMITTEE_REVIEW"
	Approved            = "APPROVED"
	Rejected            = "REJECTED"
	CommitteReversed    = "COMMITTE_REVERSED"
)

// Badge is the display metadata for a status.
type Badge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var registry = map[string]Badge{
	Pending:             {Label: "Pending", Color: "gray"},
	UnderReview:         {Label: "Under Review", Color: "blue"},
	RMRecommendation:    {Label: "RM Recommendation", Color: "blue"},
	Conditional:         {Label: "Conditional", Color: "yellow"},
	SupervisorReviewing: {Label: "Supervisor Reviewing", Color: "blue"},
	Supervised:          {Label: "Supervised", Color: "purple"},
	FinalAnalysis:       {Label: "Final Analysis", Color: "orange"},
	MemberReview:        {Label: "Member Review", Color: "orange"},
	CommitteeReview:     {Label: "Committee Review", Color: "orange"},
	Approved:            {Label: "Approved", Color: "green"},
	Rejected:            {Label: "Rejected", Color: "red"},
	CommitteReversed:    {Label: "Committee Reversed", Color: "red"},
}

// All returns every registered status.
func All() []string {
	return []string{
		Pending, UnderReview, RMRecommendation, Conditional,
		SupervisorReviewing, Supervised, FinalAnalysis,
		MemberReview, CommitteeReview, Approved, Rejected,
		CommitteReversed,
	}
}

// Valid reports whether s is a registered status.
func Valid(s string) bool {
	_, ok := registry[s]
	return ok
}

// BadgeFor returns the display badge for a status. Unknown statuses get a
// gray badge labeled with the raw string so the mapping stays total.
func BadgeFor(s string) Badge {
	if b, ok := registry[s]; ok {
		return b
	}
	return Badge{Label: s, Color: "gray"}
}

// Terminal reports whether s ends the workflow.
func Terminal(s string) bool {
	return s == Approved || s == Rejected
}

// ReasonRequired reports whether a transition into s must carry a
// non-empty decision reason.
func ReasonRequired(s string) bool {
	return s == Rejected || s == CommitteReversed
}
