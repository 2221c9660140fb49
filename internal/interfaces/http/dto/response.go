package dto

// Response is the envelope of every JSON body. Exactly one of Data and
// Error is set.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo is the error half of the envelope. Details carries machine
// readable context such as the stock available after a rejected order.
type ErrorInfo struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

func NewErrorResponse(code, message string) Response {
	return Response{Error: &ErrorInfo{Code: code, Message: message}}
}

// WithDetails attaches details to an error response. Empty details and
// success responses are returned unchanged.
func (r Response) WithDetails(details map[string]any) Response {
	if r.Error == nil || len(details) == 0 {
		return r
	}
	info := *r.Error
	info.Details = details
	r.Error = &info
	return r
}
