package jobqueue

import (
	"encoding/json"
	"time"
)

// JobType defines the type of job
type JobType string

const (
	// JobTypeAuroraDesignSync reconciles an Aurora design webhook in the
	// background after the endpoint already answered 200.
	JobTypeAuroraDesignSync JobType = "aurora_design_sync"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// Job represents a background job
type Job struct {
	ID          string                 `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	ErrorMsg    string                 `json:"error_msg,omitempty"`
	RetryCount  int                    `json:"retry_count"`
	MaxRetries  int                    `json:"max_retries"`
}

// MarkAsProcessing flags the job as picked up by a worker.
func (j *Job) MarkAsProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.ProcessedAt = &now
	j.UpdatedAt = now
}

// MarkAsCompleted flags the job as finished.
func (j *Job) MarkAsCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// MarkAsFailed records the failure message.
func (j *Job) MarkAsFailed(errMsg string) {
	j.Status = JobStatusFailed
	j.ErrorMsg = errMsg
	j.UpdatedAt = time.Now()
}

// MarkAsRetrying bumps the retry counter.
func (j *Job) MarkAsRetrying() {
	j.RetryCount++
	j.Status = JobStatusRetrying
	j.UpdatedAt = time.Now()
}

// IsRetryable reports whether the job may be attempted again.
func (j *Job) IsRetryable() bool {
	return j.RetryCount < j.MaxRetries
}

// AuroraDesignJobPayload carries an owned copy of everything the background
// reconciliation needs. The job deliberately holds no reference back to the
// request that spawned it.
type AuroraDesignJobPayload struct {
	EventID         uint   `json:"event_id"`
	DesignRequestID string `json:"design_request_id"`
	Status          string `json:"status"`
	Reason          string `json:"reason"`
}

// ToMap converts the payload to a map for storage
func (p AuroraDesignJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"event_id":          p.EventID,
		"design_request_id": p.DesignRequestID,
		"status":            p.Status,
		"reason":            p.Reason,
	}
}

// AuroraDesignJobPayloadFromMap creates a payload from a stored job map.
func AuroraDesignJobPayloadFromMap(data map[string]interface{}) (*AuroraDesignJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var p AuroraDesignJobPayload
	if err := json.Unmarshal(jsonData, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
