package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Loại hình làm việc của thành viên trong tổ chức.
// Quyết định thành viên thuộc tier nào khi ca mở rộng hiển thị.
const (
	EmploymentFullTime = "full_time"
	EmploymentPartTime = "part_time"
	EmploymentLocum    = "locum"
	EmploymentCasual   = "casual"
)

// Vai trò của thành viên trong tổ chức.
const (
	OrgRoleOwner   = "owner"
	OrgRoleManager = "manager"
	OrgRoleStaff   = "staff"
)

// OrgMember lưu quan hệ thành viên - tổ chức (org_members).
// Unique theo (organizationId, userId).
type OrgMember struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	OrganizationID primitive.ObjectID `json:"organizationId" bson:"organizationId" validate:"required"`
	UserID         primitive.ObjectID `json:"userId" bson:"userId" validate:"required"`
	EmploymentType string             `json:"employmentType" bson:"employmentType" default:"casual"`
	Role           string             `json:"role" bson:"role" default:"staff"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
