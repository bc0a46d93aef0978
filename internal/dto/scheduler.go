package dto

// RunScheduleRequest is the payload for POST /scheduler/generate.
// Generations, PopulationSize and MutationRate only apply to the
// genetic algorithm; zero values fall back to server defaults. Seed
// pins the random source so runs become reproducible.
type RunScheduleRequest struct {
	Algorithm      string  `json:"algorithm" validate:"required,oneof=greedy genetic"`
	Generations    int     `json:"generations" validate:"omitempty,min=1,max=5000"`
	PopulationSize int     `json:"populationSize" validate:"omitempty,min=2,max=1000"`
	MutationRate   float64 `json:"mutationRate" validate:"omitempty,gt=0,lt=1"`
	Seed           *int64  `json:"seed"`
}

// ScheduleEntryPayload is one placed session in a run result.
type ScheduleEntryPayload struct {
	Day           string  `json:"day"`
	TimeRange     string  `json:"timeRange"`
	CourseID      string  `json:"courseId"`
	ClassroomID   string  `json:"classroomId"`
	Duration      float64 `json:"duration"`
	CapacityRatio float64 `json:"capacityRatio"`
}

// UnscheduledCourse reports one session that could not be placed.
type UnscheduledCourse struct {
	CourseID string `json:"courseId"`
	Reason   string `json:"reason"`
}

// RunResult is the response for POST /scheduler/generate. Perfect is
// only present for genetic runs.
type RunResult struct {
	Success            bool                   `json:"success"`
	Message            string                 `json:"message"`
	Algorithm          string                 `json:"algorithm"`
	Seed               int64                  `json:"seed"`
	ScheduledCount     int                    `json:"scheduledCount"`
	UnscheduledCount   int                    `json:"unscheduledCount"`
	SuccessRatePercent float64                `json:"successRatePercent"`
	Entries            []ScheduleEntryPayload `json:"entries"`
	Unscheduled        []UnscheduledCourse    `json:"unscheduled"`
	Perfect            *bool                  `json:"perfect,omitempty"`
}

// ScheduleStatus is the response for GET /scheduler/status: how much of
// the required session load the persisted schedule currently covers.
type ScheduleStatus struct {
	TotalActiveCourses int     `json:"totalActiveCourses"`
	TotalSessions      int     `json:"totalSessions"`
	ScheduledSessions  int     `json:"scheduledSessions"`
	CompletionPercent  float64 `json:"completionPercent"`
}

// ScheduleListQuery captures the filters for GET /schedules.
type ScheduleListQuery struct {
	Day      string `form:"day"`
	CourseID string `form:"courseId"`
}
