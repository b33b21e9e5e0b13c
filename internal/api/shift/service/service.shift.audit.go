package shiftsvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "pharmastaff/internal/api/base/service"
	"pharmastaff/internal/api/shift/models"
	"pharmastaff/internal/global"
	"pharmastaff/internal/logger"
)

// AuditService ghi lịch sử thao tác trên ca (shift_audit, append-only).
type AuditService struct {
	*basesvc.BaseServiceMongoImpl[models.ShiftAudit]
}

// NewAuditService tạo mới AuditService.
func NewAuditService() (*AuditService, error) {
	col, err := getCollection(global.MongoDB_ColNames.ShiftAudit)
	if err != nil {
		return nil, err
	}
	return &AuditService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.ShiftAudit](col),
	}, nil
}

// Record ghi một dòng audit. Lỗi ghi audit chỉ log, không làm fail nghiệp vụ
// (nghiệp vụ đã commit trước khi audit được ghi).
func (s *AuditService) Record(ctx context.Context, shiftID, actorID primitive.ObjectID, action string, details map[string]interface{}) {
	_, err := s.InsertOne(ctx, models.ShiftAudit{
		ShiftID: shiftID,
		ActorID: actorID,
		Action:  action,
		Details: details,
	})
	if err != nil {
		logger.GetErrorLogger().WithField("shift_id", shiftID.Hex()).
			WithField("action", action).
			WithError(err).Error("Không ghi được audit record")
	}

	fields := map[string]interface{}{
		"shift_id": shiftID.Hex(),
		"actor_id": actorID.Hex(),
	}
	for k, v := range details {
		fields[k] = v
	}
	logger.GetAuditLogger().WithFields(fields).Info(action)
}

// ListByShift trả về lịch sử thao tác của một ca, mới nhất trước.
func (s *AuditService) ListByShift(ctx context.Context, shiftID primitive.ObjectID) ([]models.ShiftAudit, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.Find(ctx, bson.M{"shiftId": shiftID}, opts)
}
