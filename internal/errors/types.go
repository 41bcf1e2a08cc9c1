package errors

// standardized error body shared by every handler and middleware
type ErrorResponse struct {
	Status  string `json:"status"`            // always "error"
	Message string `json:"message"`           // user-friendly message
	Details string `json:"details,omitempty"` // optional details (sanitized in production)
}

type ErrorInfo struct {
	category  string
	sanitized string
}

const StatusError = "error"
