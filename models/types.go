package models

import "time"

// Cohort status constants
const (
	StatusOpen      = "open"
	StatusAllocated = "allocated"
)

// DefaultMaxPreferences caps a participant's preference list unless the cohort overrides it
const DefaultMaxPreferences = 3

// Request types

type CreateCohortRequest struct {
	Title          string `json:"title" validate:"required,max=200"`
	Description    string `json:"description" validate:"max=2000"`
	MaxPreferences int    `json:"max_preferences" validate:"gte=0,lte=20"`
}

type AddResourceRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Capacity int    `json:"capacity" validate:"gte=0"`
}

type JoinCohortRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// ordered resource ids, first = most preferred
type SubmitPreferencesRequest struct {
	Preferences []string `json:"preferences" validate:"dive,required"`
}

// Response types

type CreateCohortResponse struct {
	CohortID  string `json:"cohort_id"`
	AdminKey  string `json:"admin_key"`
	ShareSlug string `json:"share_slug"`
}

type AddResourceResponse struct {
	ResourceID string `json:"resource_id"`
	Capacity   int    `json:"capacity"`
}

type JoinCohortResponse struct {
	ParticipantID    string `json:"participant_id"`
	ParticipantToken string `json:"participant_token"`
}

type SubmitPreferencesResponse struct {
	ParticipantID string   `json:"participant_id"`
	Preferences   []string `json:"preferences"`
	Message       string   `json:"message"`
}

type AllocateResponse struct {
	RunID  string          `json:"run_id"`
	Seed   int64           `json:"seed"`
	Result AlgorithmResult `json:"result"`
}

type PreflightResponse struct {
	ValidationResult
	TotalParticipants int `json:"total_participants"`
	ResourceCount     int `json:"resource_count"`
}

// Domain types

type Cohort struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	ShareSlug      string    `json:"share_slug"`
	MaxPreferences int       `json:"max_preferences"`
	CreatedAt      time.Time `json:"created_at"`
}

type CohortWithResources struct {
	Cohort    Cohort     `json:"cohort"`
	Resources []Resource `json:"resources"`
}

type CohortAdminView struct {
	Cohort       Cohort        `json:"cohort"`
	Resources    []Resource    `json:"resources"`
	Participants []Participant `json:"participants"`
}

// AllocationRun records one persisted engine invocation
type AllocationRun struct {
	ID         string     `json:"id"`
	CohortID   string     `json:"cohort_id"`
	Seed       int64      `json:"seed"`
	Stats      Statistics `json:"stats"`
	ComputedAt time.Time  `json:"computed_at"`
}

type GroupMemberView struct {
	GroupMember
	Choice string `json:"choice"` // e.g. "1st choice"
}

type GroupView struct {
	ResourceID    string            `json:"resource_id"`
	ResourceTitle string            `json:"resource_title"`
	Capacity      int               `json:"capacity"`
	Members       []GroupMemberView `json:"members"`
}

type GroupsResponse struct {
	Run    AllocationRun `json:"run"`
	Groups []GroupView   `json:"groups"`
}

// Error response

type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Details []string `json:"details,omitempty"`
}
