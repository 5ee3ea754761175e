package models

// DefaultCapacity is used for resources whose capacity is unspecified
const DefaultCapacity = 4

// Allocation engine input types

type Participant struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Preferences []string `json:"preferences"` // resource ids, index 0 = rank 1
}

type Resource struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Capacity int    `json:"capacity"` // 0 means unspecified
}

// EffectiveCapacity returns the capacity, falling back to DefaultCapacity
func (r Resource) EffectiveCapacity() int {
	if r.Capacity <= 0 {
		return DefaultCapacity
	}
	return r.Capacity
}

// PreferenceTuple is one candidate (participant, resource, rank) claim.
// It only lives inside a single allocation pass.
type PreferenceTuple struct {
	ParticipantIndex int
	ResourceIndex    int
	Rank             int
	TieBreakKey      float64
}

// Allocation engine output types

type Assignment struct {
	ParticipantID   string `json:"participant_id"`
	ParticipantName string `json:"participant_name"`
	ResourceID      string `json:"resource_id"`
	ResourceTitle   string `json:"resource_title"`
	Rank            int    `json:"rank"`
}

type GroupMember struct {
	ParticipantID   string `json:"participant_id"`
	ParticipantName string `json:"participant_name"`
	Rank            int    `json:"rank"`
}

type Group struct {
	ResourceID    string        `json:"resource_id"`
	ResourceTitle string        `json:"resource_title"`
	Members       []GroupMember `json:"members"`
}

type Statistics struct {
	TotalParticipants           int     `json:"total_participants"`
	ParticipantsWithPreferences int     `json:"participants_with_preferences"`
	Assigned                    int     `json:"assigned"`
	Unassigned                  int     `json:"unassigned"`
	FirstChoice                 int     `json:"first_choice"`
	SecondChoice                int     `json:"second_choice"`
	ThirdChoice                 int     `json:"third_choice"`
	OtherChoice                 int     `json:"other_choice"`
	SatisfactionScore           float64 `json:"satisfaction_score"`
}

type AlgorithmResult struct {
	Success     bool         `json:"success"`
	Error       string       `json:"error,omitempty"`
	Assignments []Assignment `json:"assignments"`
	Groups      []Group      `json:"groups"`
	Stats       Statistics   `json:"stats"`
}

// ValidationResult is the pre-flight outcome over a snapshot
type ValidationResult struct {
	Valid                       bool     `json:"valid"`
	Errors                      []string `json:"errors"`
	ParticipantsWithPreferences int      `json:"participants_with_preferences"`
	TotalCapacity               int      `json:"total_capacity"`
}
