package auth

type LoginRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,max=32"`
	Password   string `json:"password" validate:"required,max=128"`
}

type LoginResponse struct {
	AccessToken      string          `json:"access_token"`
	ExpiresAt        int64           `json:"expires_at"`
	ExpiresInMinutes float64         `json:"expires_in_minutes"`
	Employee         EmployeeProfile `json:"employee"`
}

type EmployeeProfile struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Department string `json:"department,omitempty"`
	Manager    string `json:"manager,omitempty"`
}
