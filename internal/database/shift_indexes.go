// Package database - Index cho staffing (unique compound) không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"pharmastaff/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateShiftIndexes tạo các index cho các collection staffing.
// Hai unique index đầu tiên là ràng buộc nghiệp vụ cứng:
// một người chỉ được ghi quan tâm một lần cho mỗi slot, và một slot chỉ có một assignment.
// Gọi một lần khi khởi động server, sau khi đăng ký collections.
func CreateShiftIndexes(ctx context.Context, db *mongo.Database) error {
	// shift_interests: unique (shiftId, slotKey, userId) — chặn duplicate interest ở tầng DB
	interests := db.Collection(global.MongoDB_ColNames.ShiftInterests)
	if _, err := interests.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "shiftId", Value: 1},
			{Key: "slotKey", Value: 1},
			{Key: "userId", Value: 1},
		},
		Options: options.Index().SetName("shift_interest_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// shift_interests: (shiftId, status) — liệt kê interest đang mở theo ca
	if _, err := interests.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "shiftId", Value: 1},
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("shift_interest_shift_status"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// shift_assignments: unique (shiftId, slotKey) — mỗi slot chỉ một assignment
	assignments := db.Collection(global.MongoDB_ColNames.ShiftAssignments)
	if _, err := assignments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "shiftId", Value: 1},
			{Key: "slotKey", Value: 1},
		},
		Options: options.Index().SetName("shift_assignment_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// shift_assignments: (assigneeId, createdAt) — lịch sử ca đã nhận của một người
	if _, err := assignments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "assigneeId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("shift_assignment_assignee"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// shift_member_statuses: unique (shiftId, slotKey, userId, sourceLevel)
	// Một dòng trạng thái cho mỗi (ứng viên, slot) tại mỗi tier; escalate giữ nguyên dòng tier thấp.
	statuses := db.Collection(global.MongoDB_ColNames.ShiftMemberStatuses)
	if _, err := statuses.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "shiftId", Value: 1},
			{Key: "slotKey", Value: 1},
			{Key: "userId", Value: 1},
			{Key: "sourceLevel", Value: 1},
		},
		Options: options.Index().SetName("shift_member_status_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// shifts: unique sparse shareToken — tra cứu public theo token
	shifts := db.Collection(global.MongoDB_ColNames.Shifts)
	if _, err := shifts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "shareToken", Value: 1},
		},
		Options: options.Index().SetName("shift_share_token").SetUnique(true).SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// shifts: (ownerOrganizationId, startTime) — danh sách ca theo tổ chức
	if _, err := shifts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerOrganizationId", Value: 1},
			{Key: "startTime", Value: -1},
		},
		Options: options.Index().SetName("shift_org_start"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// shifts: (currentLevel, status) — quét các ca đang mở theo mức visibility
	if _, err := shifts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "currentLevel", Value: 1},
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("shift_level_status"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// shift_audit: (shiftId, createdAt) — tra cứu audit theo ca, worker dọn theo createdAt
	audit := db.Collection(global.MongoDB_ColNames.ShiftAudit)
	if _, err := audit.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "shiftId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("shift_audit_shift_time"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	if _, err := audit.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "createdAt", Value: 1},
		},
		Options: options.Index().SetName("shift_audit_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// org_members: unique (organizationId, userId) — mỗi người một membership trong tổ chức
	members := db.Collection(global.MongoDB_ColNames.OrgMembers)
	if _, err := members.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "organizationId", Value: 1},
			{Key: "userId", Value: 1},
		},
		Options: options.Index().SetName("org_member_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// profiles: unique userId — mỗi user một hồ sơ
	profiles := db.Collection(global.MongoDB_ColNames.Profiles)
	if _, err := profiles.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
		},
		Options: options.Index().SetName("profile_user_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
