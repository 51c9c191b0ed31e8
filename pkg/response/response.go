package response

// Response is the envelope every endpoint returns.
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Warnings   []string    `json:"warnings,omitempty"`
}

// Page wraps one page of a listing.
type Page struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"total_pages"`
}

func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// SuccessWithWarnings is a success that carries soft signals such as NEGATIVE_NET_PAY.
func SuccessWithWarnings(statusCode int, data interface{}, warnings []string) Response {
	r := Success(statusCode, data)
	r.Warnings = warnings
	return r
}

func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}

// Paged builds a page. limit must be positive.
func Paged(items interface{}, total int64, page, limit int) Page {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Page{Items: items, Total: total, Page: page, Limit: limit, TotalPages: pages}
}
