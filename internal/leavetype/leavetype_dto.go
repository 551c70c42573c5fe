package leavetype

type CreateLeaveTypeRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=80"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
	DaysPerYear int    `json:"days_per_year" binding:"omitempty,gte=0,lte=366"`
}

type UpdateLeaveTypeRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=80"`
	Color       *string `json:"color" binding:"omitempty,hexcolor"`
	DaysPerYear *int    `json:"days_per_year" binding:"omitempty,gte=0,lte=366"`
}

type LeaveTypeResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	DaysPerYear int     `json:"days_per_year"`
	OrgID       *string `json:"org_id,omitempty"`
	IsCustom    bool    `json:"is_custom"`
}
