package models

import (
	"time"
)

// ReportStatus represents the moderation state of a reported skill
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusApproved ReportStatus = "approved"
	ReportStatusRejected ReportStatus = "rejected"
)

// ReportStatuses are the valid moderation states
var ReportStatuses = map[ReportStatus]bool{
	ReportStatusPending:  true,
	ReportStatusApproved: true,
	ReportStatusRejected: true,
}

// ReportedSkill is a skill entry flagged for moderation
type ReportedSkill struct {
	ID           string       `json:"id" yaml:"id"`
	UserID       string       `json:"user_id" yaml:"user_id"`
	UserName     string       `json:"user_name" yaml:"user_name"`
	Skill        string       `json:"skill" yaml:"skill"`
	Type         SkillList    `json:"type" yaml:"type"` // offered or wanted
	ReportReason string       `json:"report_reason" yaml:"report_reason"`
	ReportedAt   time.Time    `json:"reported_at" yaml:"reported_at"`
	Status       ReportStatus `json:"status" yaml:"status"`
}

// Overview holds the admin dashboard counters
type Overview struct {
	TotalUsers     int `json:"total_users"`
	PendingSwaps   int `json:"pending_swaps"`
	PendingReports int `json:"pending_reports"`
	BannedUsers    int `json:"banned_users"`
}
