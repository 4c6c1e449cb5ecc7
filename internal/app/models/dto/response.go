package dto

import "time"

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Success   bool         `json:"success"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewSuccessResponse wraps data in a successful envelope.
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewFailureResponse wraps an error detail in a failed envelope.
func NewFailureResponse(detail *ErrorDetail) APIResponse {
	return APIResponse{
		Success:   false,
		Error:     detail,
		Timestamp: time.Now(),
	}
}

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// PaginationInfo describes one page of a list.
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
	HasNext     bool  `json:"hasNext"`
}

// ListResponse is a page of display items.
type ListResponse[T any] struct {
	Items      []T            `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// NewListResponse never returns a nil Items slice so clients always see an array.
func NewListResponse[T any](items []T, pagination PaginationInfo) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Pagination: pagination}
}

// SequencedResponse carries the request sequence back to the client.
type SequencedResponse struct {
	Sequence   uint64      `json:"sequence"`
	Superseded bool        `json:"superseded"`
	Payload    interface{} `json:"payload,omitempty"`
}

// SessionResponse is the current session, or null when signed out.
type SessionResponse struct {
	Session    interface{} `json:"session"`
	RedirectTo string      `json:"redirectTo,omitempty"`
}

// DownloadResponse is the download counter after a recorded download.
type DownloadResponse struct {
	ResourceID string `json:"resourceId"`
	Downloads  int    `json:"downloads"`
}
