package manteca

import "sort"

// User statuses.
const (
	UserActive     = "ACTIVE"
	UserInactive   = "INACTIVE"
	UserOnboarding = "ONBOARDING"
)

// Onboarding task statuses.
const (
	TaskPending    = "PENDING"
	TaskInProgress = "IN_PROGRESS"
	TaskCompleted  = "COMPLETED"
)

// Identity image sides accepted by the upload endpoint.
const (
	SideFront = "FRONT"
	SideBack  = "BACK"
)

type OnboardingTask struct {
	Required bool   `json:"required"`
	Status   string `json:"status"`
}

type User struct {
	NumberID   string                    `json:"numberId"`
	ExternalID string                    `json:"externalId"`
	Email      string                    `json:"email"`
	LegalID    string                    `json:"cuit"`
	Exchange   string                    `json:"exchange"`
	Status     string                    `json:"status"`
	Onboarding map[string]OnboardingTask `json:"onboarding"`
}

// HasPendingRequired reports whether a required task has not been started.
func (u *User) HasPendingRequired() bool {
	for _, task := range u.Onboarding {
		if task.Required && task.Status == TaskPending {
			return true
		}
	}
	return false
}

// PendingTasks lists the required tasks that are not completed, sorted by name.
func (u *User) PendingTasks() []string {
	tasks := []string{}
	for name, task := range u.Onboarding {
		if task.Required && task.Status != TaskCompleted {
			tasks = append(tasks, name)
		}
	}
	sort.Strings(tasks)
	return tasks
}

// Limit is the remaining operating amount for one direction.
type Limit struct {
	Exchange  string `json:"exchangeCountry"`
	Asset     string `json:"asset"`
	Type      string `json:"type"`
	Available string `json:"availableLimit"`
}

// Limit types.
const (
	LimitDeposit  = "DEPOSIT"
	LimitWithdraw = "WITHDRAW"
)

type PersonalData struct {
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	Sex            string `json:"sex,omitempty"`
	WorkPhone      string `json:"workPhone,omitempty"`
	BirthDate      string `json:"birthDate"`
	Nationality    string `json:"nationality"`
	Phone          string `json:"phoneNumber,omitempty"`
	Address        string `json:"address"`
	City           string `json:"city,omitempty"`
	PostalCode     string `json:"postalCode,omitempty"`
	MaritalStatus  string `json:"maritalStatus,omitempty"`
	IsPep          bool   `json:"isPep"`
	IsFatca        bool   `json:"isFatca"`
	IsFep          bool   `json:"isFep"`
	DocumentNumber string `json:"documentNumber,omitempty"`
}

type InitialOnboardingRequest struct {
	ExternalID   string       `json:"externalId"`
	Email        string       `json:"email"`
	LegalID      string       `json:"legalId"`
	Type         string       `json:"type"`
	Exchange     string       `json:"exchange"`
	PersonalData PersonalData `json:"personalData"`
}

type InitialOnboardingResponse struct {
	User User `json:"user"`
}

type UploadIdentityImageRequest struct {
	UserAnyID   string `json:"userAnyId"`
	Side        string `json:"side"`
	FileName    string `json:"fileName"`
	FileContent string `json:"fileContent"`
}

type AcceptTermsRequest struct {
	UserAnyID string `json:"userAnyId"`
}
