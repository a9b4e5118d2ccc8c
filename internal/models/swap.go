package models

import (
	"time"
)

// SwapStatus represents the lifecycle state of a swap request
type SwapStatus string

const (
	SwapStatusPending  SwapStatus = "pending"
	SwapStatusAccepted SwapStatus = "accepted"
	SwapStatusRejected SwapStatus = "rejected"
)

// SwapStatuses are the states a ledger entry can hold
var SwapStatuses = map[SwapStatus]bool{
	SwapStatusPending:  true,
	SwapStatusAccepted: true,
	SwapStatusRejected: true,
}

// ResponseStatuses are the states a target user may move a pending request into
var ResponseStatuses = map[SwapStatus]bool{
	SwapStatusAccepted: true,
	SwapStatusRejected: true,
}

// SwapRequest represents a proposed exchange between two users
type SwapRequest struct {
	ID             string     `json:"id" yaml:"id"`
	FromUserID     string     `json:"from_user_id" yaml:"from_user_id"`
	ToUserID       string     `json:"to_user_id" yaml:"to_user_id"`
	SkillOffered   string     `json:"skill_offered" yaml:"skill_offered"`
	SkillRequested string     `json:"skill_requested" yaml:"skill_requested"`
	Message        string     `json:"message,omitempty" yaml:"message"`
	Status         SwapStatus `json:"status" yaml:"status"`
	CreatedAt      time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" yaml:"updated_at"`
}

// Involves reports whether userID is either side of the request
func (r *SwapRequest) Involves(userID string) bool {
	return r.FromUserID == userID || r.ToUserID == userID
}

// SwapSubmission is the payload of a new swap request
type SwapSubmission struct {
	FromUserID     string `json:"from_user_id"`
	ToUserID       string `json:"to_user_id" binding:"required"`
	SkillOffered   string `json:"skill_offered"`
	SkillRequested string `json:"skill_requested"`
	Message        string `json:"message"`
}

// SwapView is a swap request joined with the display names of both users
type SwapView struct {
	SwapRequest
	FromUserName string `json:"from_user_name"`
	ToUserName   string `json:"to_user_name"`
}
