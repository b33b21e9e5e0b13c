// Package dto - input DTO cho domain profile.
// DTO và model dùng chung bson tag: base handler chuyển DTO sang model
// qua vòng marshal/unmarshal BSON.
package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileCreateInput là input tạo hồ sơ dược sĩ.
type ProfileCreateInput struct {
	UserID         primitive.ObjectID `json:"userId" bson:"userId" validate:"required"`
	FullName       string             `json:"fullName" bson:"fullName" validate:"required"`
	Phone          string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Email          string             `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	LicenseNumber  string             `json:"licenseNumber,omitempty" bson:"licenseNumber,omitempty"`
	YearsExp       int                `json:"yearsExp,omitempty" bson:"yearsExp,omitempty" validate:"omitempty,min=0"`
	Bio            string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Resume         string             `json:"resume,omitempty" bson:"resume,omitempty"`
	RatePreference float64            `json:"ratePreference,omitempty" bson:"ratePreference,omitempty" validate:"omitempty,min=0"`
}

// ProfileUpdateInput là input cập nhật hồ sơ.
// UserID và rating không cập nhật qua đường này: rating chỉ tích lũy từ các ca đã làm.
type ProfileUpdateInput struct {
	FullName       string  `json:"fullName,omitempty" bson:"fullName,omitempty"`
	Phone          string  `json:"phone,omitempty" bson:"phone,omitempty"`
	Email          string  `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	LicenseNumber  string  `json:"licenseNumber,omitempty" bson:"licenseNumber,omitempty"`
	YearsExp       int     `json:"yearsExp,omitempty" bson:"yearsExp,omitempty" validate:"omitempty,min=0"`
	Bio            string  `json:"bio,omitempty" bson:"bio,omitempty"`
	Resume         string  `json:"resume,omitempty" bson:"resume,omitempty"`
	RatePreference float64 `json:"ratePreference,omitempty" bson:"ratePreference,omitempty" validate:"omitempty,min=0"`
}
