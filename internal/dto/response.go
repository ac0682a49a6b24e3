package dto

// Response is the envelope every endpoint returns.
type Response struct {
	Status  string       `json:"status"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func Success(data interface{}) Response {
	return Response{Status: "success", Data: data}
}

func SuccessMessage(message string, data interface{}) Response {
	return Response{Status: "success", Message: message, Data: data}
}

func Error(message string) Response {
	return Response{Status: "error", Message: message}
}

func ValidationError(message string, errors []FieldError) Response {
	return Response{Status: "error", Message: message, Errors: errors}
}

// Paginated wraps a list payload with its paging window.
type Paginated struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
