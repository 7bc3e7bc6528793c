package gamifier

import "time"

// CaptureMethod records how an action entered the system.
type CaptureMethod string

const (
	CaptureUI     CaptureMethod = "UI"
	CaptureImport CaptureMethod = "IMPORT"
)

// ReporterType identifies who logged an action.
type ReporterType string

const (
	ReporterSelf    ReporterType = "SELF"
	ReporterPeer    ReporterType = "PEER"
	ReporterManager ReporterType = "MANAGER"
)

// ActionStatus is the approval state of a captured action.
type ActionStatus string

const (
	StatusPendingApproval ActionStatus = "PENDING_APPROVAL"
	StatusApproved        ActionStatus = "APPROVED"
	StatusRejected        ActionStatus = "REJECTED"
)

// Role is a user's permission level.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// EventType classifies activity feed entries.
type EventType string

const (
	EventUserRegistered   EventType = "USER_REGISTERED"
	EventActionCaptured   EventType = "ACTION_CAPTURED"
	EventActionApproved   EventType = "ACTION_APPROVED"
	EventActionRejected   EventType = "ACTION_REJECTED"
	EventMissionCompleted EventType = "MISSION_COMPLETED"
	EventRankPromoted     EventType = "RANK_PROMOTED"
	EventPointsAwarded    EventType = "POINTS_AWARDED"
)

// Period selects the leaderboard window.
type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodAllTime Period = "all-time"
)

// Page is a server-side page of results.
type Page[T any] struct {
	Content       []T  `json:"content"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	Size          int  `json:"size"`
	Number        int  `json:"number"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
	Empty         bool `json:"empty"`
}

// User is an employee account.
type User struct {
	ID                string            `json:"id"`
	OrganizationID    string            `json:"organizationId"`
	EmployeeID        string            `json:"employeeId"`
	Name              string            `json:"name"`
	Surname           string            `json:"surname"`
	ManagerEmployeeID string            `json:"managerEmployeeId,omitempty"`
	Role              Role              `json:"role"`
	TotalPoints       int               `json:"totalPoints"`
	CurrentRankID     string            `json:"currentRankId,omitempty"`
	MissionProgress   []MissionProgress `json:"missionProgress,omitempty"`
	LastLogin         *time.Time        `json:"lastLogin,omitempty"`
	CreatedAt         *time.Time        `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time        `json:"updatedAt,omitempty"`
}

// FullName joins name and surname.
func (u User) FullName() string {
	switch {
	case u.Surname == "":
		return u.Name
	case u.Name == "":
		return u.Surname
	}
	return u.Name + " " + u.Surname
}

// MissionProgress tracks one mission on a user record.
type MissionProgress struct {
	MissionTypeID  string `json:"missionTypeId"`
	Completed      bool   `json:"completed"`
	CompletionDate string `json:"completionDate,omitempty"`
}

// UpdateUserRequest edits a user's profile.
type UpdateUserRequest struct {
	Name              string `json:"name"`
	Surname           string `json:"surname"`
	ManagerEmployeeID string `json:"managerEmployeeId,omitempty"`
}

// Dashboard is the per-user summary shown on the home screen.
type Dashboard struct {
	UserID              string                   `json:"userId"`
	Name                string                   `json:"name"`
	Surname             string                   `json:"surname"`
	EmployeeID          string                   `json:"employeeId"`
	TotalPoints         int                      `json:"totalPoints"`
	CurrentRank         string                   `json:"currentRank"`
	CurrentRankInsignia string                   `json:"currentRankInsignia"`
	NextRank            string                   `json:"nextRank"`
	PointsToNextRank    int                      `json:"pointsToNextRank"`
	MissionProgress     []MissionProgressSummary `json:"missionProgress"`
	AvailableActions    []ActionTypeSummary      `json:"availableActions"`
	RecentEvents        []RecentEvent            `json:"recentEvents"`
}

// MissionProgressSummary is a compact mission status.
type MissionProgressSummary struct {
	MissionID        string `json:"missionId"`
	MissionName      string `json:"missionName"`
	Badge            string `json:"badge"`
	CompletedActions int    `json:"completedActions"`
	TotalActions     int    `json:"totalActions"`
	Completed        bool   `json:"completed"`
	BonusPoints      int    `json:"bonusPoints"`
}

// Percent returns completion in [0, 100].
func (m MissionProgressSummary) Percent() int {
	if m.Completed {
		return 100
	}
	if m.TotalActions <= 0 {
		return 0
	}
	p := m.CompletedActions * 100 / m.TotalActions
	if p > 100 {
		return 100
	}
	return p
}

// ActionTypeSummary lists an action the user may capture.
type ActionTypeSummary struct {
	ActionTypeID string `json:"actionTypeId"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Points       int    `json:"points"`
	Category     string `json:"category"`
	CanCapture   bool   `json:"canCapture"`
}

// RecentEvent is a dashboard feed line.
type RecentEvent struct {
	EventType   string `json:"eventType"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

// MissionProgressResponse is a user's detailed progress on one mission.
type MissionProgressResponse struct {
	MissionID      string           `json:"missionId"`
	MissionName    string           `json:"missionName"`
	Description    string           `json:"description"`
	Badge          string           `json:"badge"`
	Category       string           `json:"category"`
	Completed      bool             `json:"completed"`
	ActionProgress []ActionProgress `json:"actionProgress"`
	BonusPoints    int              `json:"bonusPoints"`
}

// ActionProgress marks one required action of a mission.
type ActionProgress struct {
	ActionTypeID   string `json:"actionTypeId"`
	ActionName     string `json:"actionName"`
	Completed      bool   `json:"completed"`
	CompletionDate string `json:"completionDate,omitempty"`
}

// MissionDetails is the mission view from the missions endpoints.
type MissionDetails struct {
	MissionID             string           `json:"missionId"`
	MissionName           string           `json:"missionName"`
	Description           string           `json:"description"`
	Badge                 string           `json:"badge"`
	Category              string           `json:"category"`
	BonusPoints           int              `json:"bonusPoints"`
	TotalRequiredActions  int              `json:"totalRequiredActions"`
	CompletedActionsCount int              `json:"completedActionsCount"`
	Completed             bool             `json:"completed"`
	CompletionDate        string           `json:"completionDate,omitempty"`
	ActionProgress        []ActionProgress `json:"actionProgress"`
}

// Badge is an earned mission badge.
type Badge struct {
	MissionID   string `json:"missionId"`
	MissionName string `json:"missionName"`
	Badge       string `json:"badge"`
	Category    string `json:"category"`
	Description string `json:"description"`
	BonusPoints int    `json:"bonusPoints"`
	EarnedDate  string `json:"earnedDate,omitempty"`
}

// Action is a captured work action.
type Action struct {
	ID              string        `json:"id"`
	OrganizationID  string        `json:"organizationId"`
	UserID          string        `json:"userId"`
	ActionTypeID    string        `json:"actionTypeId"`
	ActionDate      string        `json:"actionDate"`
	CaptureMethod   CaptureMethod `json:"captureMethod"`
	ReporterUserID  string        `json:"reporterUserId,omitempty"`
	Status          ActionStatus  `json:"status"`
	Evidence        string        `json:"evidence,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	RejectionReason string        `json:"rejectionReason,omitempty"`
	ApprovedAt      *time.Time    `json:"approvedAt,omitempty"`
	ApprovedBy      string        `json:"approvedBy,omitempty"`
	CreatedAt       *time.Time    `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time    `json:"updatedAt,omitempty"`
}

// CaptureActionRequest logs a new action. Date is YYYY-MM-DD.
type CaptureActionRequest struct {
	OrganizationID string       `json:"organizationId"`
	UserID         string       `json:"userId"`
	ActionTypeID   string       `json:"actionTypeId"`
	Date           string       `json:"date"`
	ReporterType   ReporterType `json:"reporterType"`
	ReporterID     string       `json:"reporterId"`
	Evidence       string       `json:"evidence,omitempty"`
}

// RejectActionRequest carries the reason for a rejection.
type RejectActionRequest struct {
	RejectionReason string `json:"rejectionReason"`
}

// ImportResult summarizes a CSV import.
type ImportResult struct {
	TotalRecords      int      `json:"totalRecords"`
	SuccessfulImports int      `json:"successfulImports"`
	FailedImports     int      `json:"failedImports"`
	Errors            []string `json:"errors"`
}

// LeaderboardEntry is one ranked user.
type LeaderboardEntry struct {
	UserID        string `json:"userId"`
	Name          string `json:"name"`
	Surname       string `json:"surname"`
	EmployeeID    string `json:"employeeId"`
	TotalPoints   int    `json:"totalPoints"`
	MonthlyPoints int    `json:"monthlyPoints"`
	CurrentRank   string `json:"currentRank"`
	Insignia      string `json:"insignia"`
	Position      int    `json:"position"`
	Department    string `json:"department,omitempty"`
}

// UserPosition is a user's place on a leaderboard with neighbours.
type UserPosition struct {
	UserID      string             `json:"userId"`
	Position    int                `json:"position"`
	TotalUsers  int                `json:"totalUsers"`
	TotalPoints int                `json:"totalPoints"`
	CurrentRank string             `json:"currentRank"`
	NearbyUsers []LeaderboardEntry `json:"nearbyUsers"`
}

// LeaderboardStatistics aggregates an organization's leaderboard.
type LeaderboardStatistics struct {
	TotalUsers      int               `json:"totalUsers"`
	ActiveUsers     int               `json:"activeUsers"`
	AveragePoints   float64           `json:"averagePoints"`
	TopUserPoints   int               `json:"topUserPoints"`
	TopUserName     string            `json:"topUserName"`
	DepartmentStats []DepartmentStats `json:"departmentStats"`
}

// DepartmentStats aggregates one department.
type DepartmentStats struct {
	Department    string  `json:"department"`
	UserCount     int     `json:"userCount"`
	AveragePoints float64 `json:"averagePoints"`
	TotalPoints   int     `json:"totalPoints"`
}

// UserRankSummary is a row of the rankings leaderboard.
type UserRankSummary struct {
	UserID              string `json:"userId"`
	EmployeeID          string `json:"employeeId"`
	Name                string `json:"name"`
	TotalPoints         int    `json:"totalPoints"`
	CurrentRankID       string `json:"currentRankId"`
	CurrentRankName     string `json:"currentRankName"`
	CurrentRankInsignia string `json:"currentRankInsignia"`
}

// RankStatistics shows how users distribute over ranks.
type RankStatistics struct {
	OrganizationID   string             `json:"organizationId"`
	TotalUsers       int                `json:"totalUsers"`
	AveragePoints    int                `json:"averagePoints"`
	RankDistribution []RankDistribution `json:"rankDistribution"`
}

// RankDistribution counts users at one rank.
type RankDistribution struct {
	RankID    string `json:"rankId"`
	RankName  string `json:"rankName"`
	Insignia  string `json:"insignia"`
	UserCount int    `json:"userCount"`
}

// UserRank describes a user's current and next rank.
type UserRank struct {
	UserID               string `json:"userId"`
	CurrentRankID        string `json:"currentRankId"`
	CurrentRankName      string `json:"currentRankName"`
	CurrentRankInsignia  string `json:"currentRankInsignia"`
	CurrentPoints        int    `json:"currentPoints"`
	CurrentRankThreshold int    `json:"currentRankThreshold"`
	NextRankID           string `json:"nextRankId,omitempty"`
	NextRankName         string `json:"nextRankName,omitempty"`
	NextRankInsignia     string `json:"nextRankInsignia,omitempty"`
	NextRankThreshold    int    `json:"nextRankThreshold,omitempty"`
	PointsToNextRank     int    `json:"pointsToNextRank"`
}

// RankInfo is a rank available in an organization.
type RankInfo struct {
	RankID          string `json:"rankId"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	PointsThreshold int    `json:"pointsThreshold"`
	Insignia        string `json:"insignia"`
	Order           int    `json:"order"`
}

// Organization is a tenant with its gamification catalogue.
type Organization struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	FederationID       string              `json:"federationId"`
	Description        string              `json:"description,omitempty"`
	Active             bool                `json:"active"`
	ActionTypes        []ActionType        `json:"actionTypes,omitempty"`
	MissionTypes       []MissionType       `json:"missionTypes,omitempty"`
	RankConfigurations []RankConfiguration `json:"rankConfigurations,omitempty"`
	CreatedAt          *time.Time          `json:"createdAt,omitempty"`
	UpdatedAt          *time.Time          `json:"updatedAt,omitempty"`
}

// ActionType is a kind of action users can capture for points.
type ActionType struct {
	ID                      string          `json:"id,omitempty"`
	Name                    string          `json:"name"`
	Description             string          `json:"description"`
	Points                  int             `json:"points"`
	Category                string          `json:"category,omitempty"`
	CaptureMethods          []CaptureMethod `json:"captureMethods"`
	AllowedReporters        []ReporterType  `json:"allowedReporters"`
	RequiresManagerApproval bool            `json:"requiresManagerApproval"`
	Active                  bool            `json:"active,omitempty"`
}

// MissionType groups action types into a badge-earning mission.
type MissionType struct {
	ID                    string   `json:"id,omitempty"`
	Name                  string   `json:"name"`
	Description           string   `json:"description"`
	Badge                 string   `json:"badge"`
	RequiredActionTypeIDs []string `json:"requiredActionTypeIds"`
	BonusPoints           int      `json:"bonusPoints"`
	Category              string   `json:"category,omitempty"`
	Active                bool     `json:"active,omitempty"`
}

// RankConfiguration is a points threshold with insignia.
type RankConfiguration struct {
	ID              string `json:"id,omitempty"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	PointsThreshold int    `json:"pointsThreshold"`
	Insignia        string `json:"insignia"`
	Order           int    `json:"order"`
	Active          bool   `json:"active,omitempty"`
}

// CreateOrganizationRequest registers an organization.
type CreateOrganizationRequest struct {
	Name         string `json:"name"`
	FederationID string `json:"federationId"`
	Description  string `json:"description,omitempty"`
}

// UpdateOrganizationRequest edits an organization.
type UpdateOrganizationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Event is an activity record.
type Event struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organizationId"`
	UserID         string     `json:"userId"`
	EventType      EventType  `json:"eventType"`
	Data           string     `json:"data,omitempty"`
	Timestamp      *time.Time `json:"timestamp,omitempty"`
}

// EventStatistics counts events over rolling windows.
type EventStatistics struct {
	TotalEvents int64 `json:"totalEvents"`
	TodayEvents int64 `json:"todayEvents"`
	WeekEvents  int64 `json:"weekEvents"`
	MonthEvents int64 `json:"monthEvents"`
}

// UserStats is the dashboard headline block.
type UserStats struct {
	TotalPoints         int    `json:"totalPoints"`
	Rank                string `json:"rank"`
	MissionsCompleted   int    `json:"missionsCompleted"`
	ActiveMissions      int    `json:"activeMissions"`
	LeaderboardPosition int    `json:"leaderboardPosition"`
	WeeklyProgress      int    `json:"weeklyProgress"`
}

// Activity is a line of the recent activity panel.
type Activity struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	Points      int        `json:"points"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Icon        string     `json:"icon,omitempty"`
}
