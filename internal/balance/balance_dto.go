package balance

type ProvisionBalancesRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Year       int    `json:"year" binding:"omitempty,gte=2000,lte=2200"`
}

type BalanceResponse struct {
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name"`
	OrgID          string `json:"org_id"`
	LeaveTypeID    string `json:"leave_type_id"`
	LeaveTypeName  string `json:"leave_type_name"`
	LeaveTypeColor string `json:"leave_type_color"`
	Year           int    `json:"year"`
	TotalDays      int    `json:"total_days"`
	UsedDays       string `json:"used_days"`
	RemainingDays  string `json:"remaining_days"`
}
