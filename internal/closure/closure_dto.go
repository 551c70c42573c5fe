package closure

type CreateClosureRequest struct {
	StartDate       string `json:"start_date" binding:"required"`
	EndDate         string `json:"end_date"`
	Reason          string `json:"reason"`
	Kind            string `json:"kind" binding:"omitempty,oneof=holiday shutdown"`
	AutoEnroll      bool   `json:"auto_enroll"`
	AllowExceptions *bool  `json:"allow_exceptions"`
}

type ListClosuresFilter struct {
	Year int `form:"year" binding:"omitempty,gte=2000,lte=2100"`
}

type ClosureResponse struct {
	ID              string  `json:"id"`
	OrgID           *string `json:"org_id"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Reason          string  `json:"reason"`
	Kind            string  `json:"kind"`
	AutoEnroll      bool    `json:"auto_enroll"`
	AllowExceptions bool    `json:"allow_exceptions"`
	CreatedBy       string  `json:"created_by"`
	CreatedAt       string  `json:"created_at"`
}

type RequestExceptionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ReviewExceptionRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

type ExceptionResponse struct {
	ID           string  `json:"id"`
	ClosureID    string  `json:"closure_id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	OrgID        string  `json:"org_id"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	ReviewedBy   *string `json:"reviewed_by,omitempty"`
	ReviewedAt   *string `json:"reviewed_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}
