package shiftsvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "pharmastaff/internal/api/base/service"
	profilemodels "pharmastaff/internal/api/profile/models"
	profilesvc "pharmastaff/internal/api/profile/service"
	"pharmastaff/internal/api/shift/models"
)

// Các seam hẹp giữa service ledger/resolver và tầng lưu trữ.
// InterestService, AssignmentService và ShareLinkService phụ thuộc vào các
// interface này thay vì trực tiếp vào BaseServiceMongoImpl, để test chạy trên
// fake in-memory mà không cần Mongo. Production vẫn dùng các base service
// của ShiftService qua các constructor NewXService.

// shiftStore là phần thao tác trên collection shifts mà các service con cần.
type shiftStore interface {
	FindOneById(ctx context.Context, id primitive.ObjectID) (models.Shift, error)
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (models.Shift, error)
	UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (models.Shift, error)
}

// interestStore là phần thao tác trên sổ quan tâm.
type interestStore interface {
	InsertOne(ctx context.Context, data models.ShiftInterest) (models.ShiftInterest, error)
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (models.ShiftInterest, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (models.ShiftInterest, error)
	UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (models.ShiftInterest, error)
	UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (int64, error)
}

// statusStore là phần thao tác trên dòng trạng thái thành viên.
type statusStore interface {
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.ShiftMemberStatus, error)
	UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (int64, error)
}

// assignmentStore là phần thao tác trên collection gán ca.
type assignmentStore interface {
	InsertOne(ctx context.Context, data models.ShiftAssignment) (models.ShiftAssignment, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.ShiftAssignment, error)
	DocumentExists(ctx context.Context, filter interface{}) (bool, error)
}

// profileReader trả snapshot hồ sơ cho luồng reveal.
type profileReader interface {
	Snapshot(ctx context.Context, userID primitive.ObjectID) profilemodels.ProfileSnapshot
}

// auditRecorder ghi audit trail của ca.
type auditRecorder interface {
	Record(ctx context.Context, shiftID, actorID primitive.ObjectID, action string, details map[string]interface{})
}

// Các triển khai production phải khớp seam.
var (
	_ shiftStore      = (*ShiftService)(nil)
	_ interestStore   = (*basesvc.BaseServiceMongoImpl[models.ShiftInterest])(nil)
	_ statusStore     = (*basesvc.BaseServiceMongoImpl[models.ShiftMemberStatus])(nil)
	_ assignmentStore = (*basesvc.BaseServiceMongoImpl[models.ShiftAssignment])(nil)
	_ profileReader   = (*profilesvc.ProfileService)(nil)
	_ auditRecorder   = (*AuditService)(nil)
)
