package models

import "time"

type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusProcessing RequestStatus = "processing"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusRejected   RequestStatus = "rejected"
	RequestStatusCancelled  RequestStatus = "cancelled"
)

// Terminal reports whether no further status transition is allowed.
func (s RequestStatus) Terminal() bool {
	switch s {
	case RequestStatusCompleted, RequestStatusRejected, RequestStatusCancelled:
		return true
	}
	return false
}

type UploadedFile struct {
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	URL      string `json:"url"`
	FileID   string `json:"fileId"`
}

type ServiceRequest struct {
	ID             string         `json:"id"`
	Service        string         `json:"service"`
	SubServiceName string         `json:"subServiceName,omitempty"`
	Status         RequestStatus  `json:"status"`
	FormData       map[string]any `json:"formData,omitempty"`
	Documents      []UploadedFile `json:"documents,omitempty"`
	Outputs        []UploadedFile `json:"outputs,omitempty"`
	RejectedReason string         `json:"rejectedReason,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	CompletedAt    *time.Time     `json:"completedAt,omitempty"`
}
