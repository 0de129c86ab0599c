package model

import (
	"time"

	"github.com/google/uuid"
)

// Row types are flat results of membership-scoped joins. Columns coming from
// LEFT JOINs are pointers and stay nil when nothing matched.

type ProjectNameRow struct {
	ProjectName string `gorm:"column:project_name" json:"ProjectName"`
}

type OverviewRow struct {
	ProjectID          uuid.UUID  `gorm:"column:project_id" json:"ProjectId"`
	ProjectName        string     `gorm:"column:project_name" json:"ProjectName"`
	ProjectDescription string     `gorm:"column:project_description" json:"ProjectDescription"`
	ProjectStatus      string     `gorm:"column:project_status" json:"ProjectStatus"`
	ProjectTarget      *time.Time `gorm:"column:project_target" json:"ProjectTarget"`
	ProjectStart       *time.Time `gorm:"column:project_start" json:"ProjectStart"`
	MilestoneID        *uuid.UUID `gorm:"column:milestone_id" json:"MilestoneId"`
	MilestoneName      *string    `gorm:"column:milestone_name" json:"MilestoneName"`
	MilestoneTarget    *time.Time `gorm:"column:milestone_target" json:"MilestoneTarget"`
	LinkID             *uuid.UUID `gorm:"column:link_id" json:"LinkId"`
	InfoLink           *string    `gorm:"column:info_link" json:"InfoLink"`
}

type IssueRow struct {
	IssueID       uuid.UUID  `gorm:"column:issue_id" json:"IssueId"`
	IssueName     string     `gorm:"column:issue_name" json:"IssueName"`
	IssueStatus   string     `gorm:"column:issue_status" json:"IssueStatus"`
	IssueLabel    string     `gorm:"column:issue_label" json:"IssueLabel"`
	MilestoneName *string    `gorm:"column:milestone_name" json:"MilestoneName"`
	MilestoneID   *uuid.UUID `gorm:"column:milestone_id" json:"MilestoneId"`
	Assigned      string     `gorm:"column:assigned" json:"Assigned"`
	SubIssueOf    *uuid.UUID `gorm:"column:sub_issue_of" json:"SubIssueOf"`
}

type IssueDetailRow struct {
	IssueRow
	ActivityID       uuid.UUID  `gorm:"column:activity_id" json:"ActivityId"`
	ActivityDesc     string     `gorm:"column:activity_desc" json:"ActivityDesc"`
	ReplyTo          *uuid.UUID `gorm:"column:reply_to" json:"ReplyTo"`
	MemberID         uuid.UUID  `gorm:"column:member_id" json:"MemberId"`
	ActivityTime     time.Time  `gorm:"column:activity_time" json:"ActivityTime"`
	ActivityUserName string     `gorm:"column:activity_user_name" json:"ActivityUserName"`
}
