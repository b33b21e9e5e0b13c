package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShiftInterest là một dòng quan tâm blind ở tier PLATFORM (shift_interests).
// Unique theo (shiftId, slotKey, userId); slotKey = "whole" cho quan tâm cả ca.
// Một user có thể giữ đồng thời một dòng whole-shift và một dòng per-slot, độc lập nhau.
type ShiftInterest struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	ShiftID primitive.ObjectID `json:"shiftId" bson:"shiftId"`
	SlotKey string             `json:"slotKey" bson:"slotKey"`
	UserID  primitive.ObjectID `json:"userId" bson:"userId"`

	Status string `json:"status" bson:"status" default:"open"`

	// Revealed chỉ chuyển false→true đúng một lần, không bao giờ quay ngược.
	// Trước khi revealed, dòng này không được gắn bất kỳ định danh cá nhân nào
	// trong view của poster.
	Revealed   bool               `json:"revealed" bson:"revealed"`
	RevealedAt int64              `json:"revealedAt,omitempty" bson:"revealedAt,omitempty"`
	RevealedBy primitive.ObjectID `json:"revealedBy,omitempty" bson:"revealedBy,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
