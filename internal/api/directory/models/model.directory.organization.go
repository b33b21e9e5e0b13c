// Package models - domain directory (tổ chức và thành viên).
// Directory cung cấp đầu vào cho engine: allowedEscalationLevels của ca
// và danh sách thành viên đủ điều kiện theo từng tier.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Loại tổ chức trong directory.
const (
	OrgTypePharmacy = "pharmacy" // Nhà thuốc đơn lẻ
	OrgTypeChain    = "chain"    // Chuỗi nhà thuốc cùng chủ
	OrgTypeNetwork  = "network"  // Mạng lưới tổ chức đã claim (liên chuỗi)
)

// Organization lưu tổ chức đăng ca (organizations).
// ParentID trỏ lên chain/network cha; nhà thuốc độc lập có ParentID rỗng.
type Organization struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Name     string             `json:"name" bson:"name"`
	Type     string             `json:"type" bson:"type" default:"pharmacy"`
	ParentID primitive.ObjectID `json:"parentId,omitempty" bson:"parentId,omitempty"`

	// OrgClaimed đánh dấu tổ chức đã được claim, điều kiện để mở tier mạng lưới tổ chức.
	OrgClaimed bool `json:"orgClaimed" bson:"orgClaimed"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
