package leaverequest

type CreateLeaveRequestRequest struct {
	LeaveTypeID string `json:"leave_type_id" binding:"required"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	HoursPerDay int    `json:"hours_per_day" binding:"omitempty,gte=1,lte=8"`
	Notes       string `json:"notes"`
}

type ReviewLeaveRequestRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

type ListLeaveRequestsFilter struct {
	Status     string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type LeaveRequestResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	EmployeeName       string  `json:"employee_name"`
	OrgID              string  `json:"org_id"`
	LeaveTypeID        string  `json:"leave_type_id"`
	LeaveTypeName      string  `json:"leave_type_name"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	DayCount           int     `json:"day_count"`
	HoursPerDay        int     `json:"hours_per_day"`
	Notes              string  `json:"notes"`
	Status             string  `json:"status"`
	ReviewedBy         *string `json:"reviewed_by,omitempty"`
	ReviewedAt         *string `json:"reviewed_at,omitempty"`
	ClosureID          *string `json:"closure_id,omitempty"`
	IsClosureGenerated bool    `json:"is_closure_generated,omitempty"`
	CreatedAt          string  `json:"created_at"`
}
