package services

// Messages returned to API clients for expected failures.
const (
	MsgUserExists           = "Username or email already exists"
	MsgInvalidCredentials   = "Invalid Username and password"
	MsgEmployeeExists       = "Employee with this email already exists"
	MsgEmployeeNotFound     = "Employee not found"
	MsgInvalidEmployeeID    = "Invalid employee ID"
	MsgEmployeeIDRequired   = "Employee ID is required"
	MsgNoUpdateData         = "No update data provided"
	MsgSearchFilterRequired = "Please provide a department or position to search by"
)
