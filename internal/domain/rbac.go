package domain

// EnforceRequest is the authorization question asked by both the rbac
// endpoints and the route middleware. It lives here so middleware can
// depend on it without importing the rbac package.
type EnforceRequest struct {
	EmployeeID string `json:"employee_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
