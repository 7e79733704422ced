package models

import "time"

// AshaWorker covers both ASHA workers and supervisors. A supervisor has no
// supervisor of its own (SupervisorID nil).
type AshaWorker struct {
	AshaID       uint64    `gorm:"column:asha_id;primaryKey" json:"asha_id"`
	UserID       uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	SupervisorID *uint64   `gorm:"column:supervisor_id;index" json:"supervisor_id"`
	AshaName     string    `gorm:"column:asha_name;size:100;not null" json:"asha_name"`
	Village      string    `gorm:"size:100;index" json:"village"`
	District     string    `gorm:"size:100" json:"district"`
	Taluka       string    `gorm:"size:100" json:"taluka"`
	ProfilePic   string    `gorm:"size:255" json:"profile_pic"`
	CreatedAt    time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (AshaWorker) TableName() string { return "asha_workers" }

func (a AshaWorker) IsSupervisor() bool { return a.SupervisorID == nil }

// SupervisorDetails is where a supervisor's village for fan-out lives
type SupervisorDetails struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	UserID   uint64 `gorm:"uniqueIndex;not null" json:"user_id"`
	PHCName  string `gorm:"column:phc_name;size:100" json:"phc_name"`
	Village  string `gorm:"size:100;index" json:"village"`
	District string `gorm:"size:100" json:"district"`
	Taluka   string `gorm:"size:100" json:"taluka"`
}

func (SupervisorDetails) TableName() string { return "supervisor_details" }

// LHVDetails belongs to an LHV user
type LHVDetails struct {
	ID             uint64 `gorm:"primaryKey" json:"id"`
	UserID         uint64 `gorm:"uniqueIndex;not null" json:"user_id"`
	PHCName        string `gorm:"column:phc_name;size:100" json:"phc_name"`
	Village        string `gorm:"size:100;index" json:"village"`
	District       string `gorm:"size:100" json:"district"`
	Taluka         string `gorm:"size:100" json:"taluka"`
	SupervisorName string `gorm:"size:100" json:"supervisor_name"`
}

func (LHVDetails) TableName() string { return "lhv_details" }

// RegisterWorkerInput is used for both supervisor and ASHA registration
type RegisterWorkerInput struct {
	Name     string `json:"asha_name" binding:"required"`
	Phone    string `json:"phone" binding:"required,min=10,max=15"`
	Password string `json:"password" binding:"required,min=6"`
	Village  string `json:"village" binding:"required"`
	District string `json:"district" binding:"required"`
	Taluka   string `json:"taluka" binding:"required"`
	PHCName  string `json:"phc_name"`
}

// UpdateAshaProfileInput only allows phone, password and picture changes
type UpdateAshaProfileInput struct {
	Phone      string `json:"phone" binding:"omitempty,min=10,max=15"`
	Password   string `json:"password" binding:"omitempty,min=6"`
	ProfilePic string `json:"profile_pic" binding:"omitempty,url"`
}

func (in UpdateAshaProfileInput) Empty() bool {
	return in.Phone == "" && in.Password == "" && in.ProfilePic == ""
}

// RegisterLHVInput for the LHV registration route
type RegisterLHVInput struct {
	Name           string `json:"user_name" binding:"required"`
	Phone          string `json:"phone" binding:"required,min=10,max=15"`
	Password       string `json:"password" binding:"required,min=6"`
	PHCName        string `json:"phc_name"`
	Village        string `json:"village" binding:"required"`
	District       string `json:"district" binding:"required"`
	Taluka         string `json:"taluka" binding:"required"`
	SupervisorName string `json:"supervisor_name"`
}

// AshaProfile is the GET /asha/profile response
type AshaProfile struct {
	AshaWorker
	Role Role `json:"role"`
}
