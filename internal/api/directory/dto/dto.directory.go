// Package dto - input DTO cho domain directory.
// DTO và model dùng chung bson tag: base handler chuyển DTO sang model
// qua vòng marshal/unmarshal BSON.
package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrganizationCreateInput là input tạo tổ chức mới.
type OrganizationCreateInput struct {
	Name       string             `json:"name" bson:"name" validate:"required"`
	Type       string             `json:"type" bson:"type" validate:"omitempty,oneof=pharmacy chain network"`
	ParentID   primitive.ObjectID `json:"parentId,omitempty" bson:"parentId,omitempty"`
	OrgClaimed bool               `json:"orgClaimed" bson:"orgClaimed"`
}

// OrganizationUpdateInput là input cập nhật tổ chức.
// ParentID không cập nhật qua đường này: đổi cây directory làm thay đổi
// allowedLevels của các ca đã tạo, phải xử lý riêng.
type OrganizationUpdateInput struct {
	Name       string `json:"name,omitempty" bson:"name,omitempty"`
	Type       string `json:"type,omitempty" bson:"type,omitempty" validate:"omitempty,oneof=pharmacy chain network"`
	OrgClaimed bool   `json:"orgClaimed,omitempty" bson:"orgClaimed,omitempty"`
}

// OrgMemberCreateInput là input thêm thành viên vào tổ chức.
type OrgMemberCreateInput struct {
	OrganizationID primitive.ObjectID `json:"organizationId" bson:"organizationId" validate:"required"`
	UserID         primitive.ObjectID `json:"userId" bson:"userId" validate:"required"`
	EmploymentType string             `json:"employmentType" bson:"employmentType" validate:"omitempty,oneof=full_time part_time locum casual"`
	Role           string             `json:"role" bson:"role" validate:"omitempty,oneof=owner manager staff"`
}

// OrgMemberUpdateInput là input cập nhật thành viên.
type OrgMemberUpdateInput struct {
	EmploymentType string `json:"employmentType,omitempty" bson:"employmentType,omitempty" validate:"omitempty,oneof=full_time part_time locum casual"`
	Role           string `json:"role,omitempty" bson:"role,omitempty" validate:"omitempty,oneof=owner manager staff"`
}
