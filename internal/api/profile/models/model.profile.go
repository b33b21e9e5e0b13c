// Package models - Profile thuộc domain profile (profiles).
// Hồ sơ dược sĩ: thông tin hành nghề, rating tích lũy từ các ca đã làm.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile lưu hồ sơ dược sĩ (profiles). Mỗi user một hồ sơ (unique userId).
type Profile struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	UserID        primitive.ObjectID `json:"userId" bson:"userId"`
	FullName      string             `json:"fullName" bson:"fullName"`
	Phone         string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Email         string             `json:"email,omitempty" bson:"email,omitempty"`
	LicenseNumber string             `json:"licenseNumber,omitempty" bson:"licenseNumber,omitempty"`
	YearsExp      int                `json:"yearsExp,omitempty" bson:"yearsExp,omitempty"`
	Bio           string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Resume        string             `json:"resume,omitempty" bson:"resume,omitempty"`

	// RatePreference là mức lương giờ mong muốn, 0 = chưa khai báo.
	RatePreference float64 `json:"ratePreference,omitempty" bson:"ratePreference,omitempty"`

	// Rating tích lũy. RatingAvg nil = chưa có đánh giá nào.
	RatingAvg   *float64 `json:"ratingAvg,omitempty" bson:"ratingAvg,omitempty"`
	RatingCount int      `json:"ratingCount" bson:"ratingCount"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// ProfileSnapshot là phần hồ sơ được trả về khi poster reveal một ứng viên blind-interest.
// Không chứa contact cho tới khi reveal; sau reveal trả đầy đủ.
type ProfileSnapshot struct {
	UserID         primitive.ObjectID `json:"userId"`
	FullName       string             `json:"fullName"`
	Phone          string             `json:"phone,omitempty"`
	Email          string             `json:"email,omitempty"`
	LicenseNumber  string             `json:"licenseNumber,omitempty"`
	YearsExp       int                `json:"yearsExp,omitempty"`
	Bio            string             `json:"bio,omitempty"`
	Resume         string             `json:"resume,omitempty"`
	RatePreference float64            `json:"ratePreference,omitempty"`
	RatingAvg      *float64           `json:"ratingAvg,omitempty"`
	RatingCount    int                `json:"ratingCount"`
}
