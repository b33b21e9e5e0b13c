package shiftsvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "pharmastaff/internal/api/base/service"
	directorysvc "pharmastaff/internal/api/directory/service"
	profilesvc "pharmastaff/internal/api/profile/service"
	"pharmastaff/internal/api/shift/dto"
	"pharmastaff/internal/api/shift/models"
	"pharmastaff/internal/common"
	"pharmastaff/internal/global"
	"pharmastaff/internal/logger"
)

// ShiftService quản lý aggregate Shift: tạo ca với slot, truy vấn, đóng ca,
// và ghi nhận phản hồi của thành viên tier nội bộ.
type ShiftService struct {
	*basesvc.BaseServiceMongoImpl[models.Shift]

	directory *directorysvc.DirectoryService
	profile   *profilesvc.ProfileService
	audit     *AuditService

	statusService     *basesvc.BaseServiceMongoImpl[models.ShiftMemberStatus]
	interestService   *basesvc.BaseServiceMongoImpl[models.ShiftInterest]
	assignmentService *basesvc.BaseServiceMongoImpl[models.ShiftAssignment]
}

// NewShiftService tạo mới ShiftService cùng các collaborator của nó.
func NewShiftService() (*ShiftService, error) {
	shiftCol, err := getCollection(global.MongoDB_ColNames.Shifts)
	if err != nil {
		return nil, err
	}
	statusCol, err := getCollection(global.MongoDB_ColNames.ShiftMemberStatuses)
	if err != nil {
		return nil, err
	}
	interestCol, err := getCollection(global.MongoDB_ColNames.ShiftInterests)
	if err != nil {
		return nil, err
	}
	assignmentCol, err := getCollection(global.MongoDB_ColNames.ShiftAssignments)
	if err != nil {
		return nil, err
	}

	directory, err := directorysvc.NewDirectoryService()
	if err != nil {
		return nil, err
	}
	profile, err := profilesvc.NewProfileService()
	if err != nil {
		return nil, err
	}
	audit, err := NewAuditService()
	if err != nil {
		return nil, err
	}

	return &ShiftService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Shift](shiftCol),
		directory:            directory,
		profile:              profile,
		audit:                audit,
		statusService:        basesvc.NewBaseServiceMongo[models.ShiftMemberStatus](statusCol),
		interestService:      basesvc.NewBaseServiceMongo[models.ShiftInterest](interestCol),
		assignmentService:    basesvc.NewBaseServiceMongo[models.ShiftAssignment](assignmentCol),
	}, nil
}

// Create tạo ca mới cho tổ chức orgID.
// AllowedLevels do directory suy ra tại đây và lưu cố định trên ca;
// CurrentLevel khởi tạo ở tier thấp nhất được phép.
func (s *ShiftService) Create(ctx context.Context, input *dto.ShiftCreateInput, orgID, posterID primitive.ObjectID) (models.Shift, error) {
	var zero models.Shift

	slots := make([]models.Slot, 0, len(input.Slots))
	var minStart, maxEnd int64
	for _, in := range input.Slots {
		if in.EndTime <= in.StartTime {
			return zero, common.WithDetails(common.ErrInvalidInput, map[string]interface{}{
				"field":  "slots",
				"reason": "endTime phải sau startTime",
			})
		}
		slots = append(slots, models.Slot{
			SlotID:    primitive.NewObjectID().Hex(),
			Date:      in.Date,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
			Note:      in.Note,
		})
		if minStart == 0 || in.StartTime < minStart {
			minStart = in.StartTime
		}
		if in.EndTime > maxEnd {
			maxEnd = in.EndTime
		}
	}

	allowed, err := s.directory.AllowedLevelsFor(ctx, orgID)
	if err != nil {
		return zero, err
	}

	shift := models.Shift{
		OwnerOrganizationID: orgID,
		PostedBy:            posterID,
		Title:               input.Title,
		Slots:               slots,
		StartTime:           minStart,
		EndTime:             maxEnd,
		CurrentLevel:        allowed[0],
		AllowedLevels:       allowed,
		SingleUserOnly:      input.SingleUserOnly,
		Status:              models.ShiftStatusOpen,
		HourlyRate:          input.HourlyRate,
		Note:                input.Note,
	}

	created, err := s.InsertOne(ctx, shift)
	if err != nil {
		return zero, err
	}

	// Gieo dòng no_response cho các thành viên đủ điều kiện ở tier khởi tạo
	s.seedMemberStatuses(ctx, created, created.CurrentLevel)

	s.audit.Record(ctx, created.ID, posterID, models.AuditActionCreate, map[string]interface{}{
		"level":     created.CurrentLevel,
		"slotCount": len(created.Slots),
	})
	return created, nil
}

// seedMemberStatuses tạo dòng no_response cho mỗi (thành viên đủ điều kiện, slot)
// tại tier level. Duplicate bị index chặn và bỏ qua; lỗi khác chỉ log.
// Gọi khi tạo ca và sau mỗi lần escalate tới tier nội bộ.
func (s *ShiftService) seedMemberStatuses(ctx context.Context, shift models.Shift, level string) {
	if level == models.LevelPlatform {
		// PLATFORM không có danh sách thành viên, ứng viên đi qua sổ interest
		return
	}

	members, err := s.directory.EligibleMembers(ctx, shift.OwnerOrganizationID, level)
	if err != nil {
		logger.GetErrorLogger().WithField("shift_id", shift.ID.Hex()).
			WithField("level", level).
			WithError(err).Error("Không lấy được danh sách thành viên đủ điều kiện")
		return
	}

	for _, member := range members {
		rating := s.profile.RatingOf(ctx, member.UserID)
		for _, slot := range shift.Slots {
			_, err := s.statusService.InsertOne(ctx, models.ShiftMemberStatus{
				ShiftID:     shift.ID,
				SlotKey:     slot.SlotID,
				UserID:      member.UserID,
				SourceLevel: level,
				SourceOrgID: member.OrganizationID,
				Status:      models.MemberStatusNoResponse,
				Rating:      rating,
			})
			if err != nil && !common.IsDuplicateKey(err) {
				logger.GetErrorLogger().WithField("shift_id", shift.ID.Hex()).
					WithError(err).Error("Không gieo được dòng trạng thái thành viên")
			}
		}
	}
}

// RespondMemberStatus ghi nhận phản hồi của một thành viên tier nội bộ trên một slot.
// Upsert theo (shiftId, slotKey, userId, sourceLevel) với sourceLevel là tier hiện tại.
func (s *ShiftService) RespondMemberStatus(ctx context.Context, shiftID primitive.ObjectID, userID primitive.ObjectID, slotID string, status string) (models.ShiftMemberStatus, error) {
	var zero models.ShiftMemberStatus

	unlock := LockShift(shiftID)
	defer unlock()

	shift, err := s.FindOneById(ctx, shiftID)
	if err != nil {
		return zero, err
	}
	if shift.Status != models.ShiftStatusOpen {
		return zero, common.WithDetails(common.ErrSlotClosed, map[string]interface{}{
			"shiftId": shiftID.Hex(),
			"action":  "respond",
		})
	}
	if _, ok := shift.SlotByID(slotID); !ok {
		return zero, common.WithDetails(common.ErrNotFound, map[string]interface{}{
			"shiftId": shiftID.Hex(),
			"slotId":  slotID,
		})
	}

	// Slot đã có assignment terminal thì không nhận thêm phản hồi
	assigned, err := s.assignmentService.DocumentExists(ctx, bson.M{
		"shiftId": shiftID,
		"slotKey": bson.M{"$in": []string{slotID, models.WholeShiftSlotKey}},
	})
	if err != nil {
		return zero, err
	}
	if assigned {
		return zero, common.WithDetails(common.ErrSlotClosed, map[string]interface{}{
			"shiftId": shiftID.Hex(),
			"slotId":  slotID,
			"action":  "respond",
		})
	}

	rating := s.profile.RatingOf(ctx, userID)
	update := bson.M{
		"status": status,
	}
	if rating != nil {
		update["rating"] = *rating
	}
	return s.statusService.Upsert(ctx, bson.M{
		"shiftId":     shiftID,
		"slotKey":     slotID,
		"userId":      userID,
		"sourceLevel": shift.CurrentLevel,
	}, update)
}

// Close đóng ca (poster chủ động đóng/xóa). Ledger không bị xóa ngay:
// interest đang mở chuyển sang closed, dòng trạng thái đánh dấu closed,
// worker retention dọn sau theo cửa sổ lưu trữ.
func (s *ShiftService) Close(ctx context.Context, shiftID, actorID primitive.ObjectID) (models.Shift, error) {
	var zero models.Shift

	unlock := LockShift(shiftID)
	defer unlock()

	shift, err := s.FindOneById(ctx, shiftID)
	if err != nil {
		return zero, err
	}
	if shift.Status == models.ShiftStatusClosed {
		return shift, nil
	}

	updated, err := s.UpdateById(ctx, shiftID, bson.M{"status": models.ShiftStatusClosed})
	if err != nil {
		return zero, err
	}

	if _, err := s.interestService.UpdateMany(ctx,
		bson.M{"shiftId": shiftID, "status": models.InterestStatusOpen},
		bson.M{"status": models.InterestStatusClosed}, nil); err != nil {
		logger.GetErrorLogger().WithField("shift_id", shiftID.Hex()).
			WithError(err).Error("Không đóng được các dòng interest khi đóng ca")
	}
	if _, err := s.statusService.UpdateMany(ctx,
		bson.M{"shiftId": shiftID, "closed": false},
		bson.M{"closed": true}, nil); err != nil {
		logger.GetErrorLogger().WithField("shift_id", shiftID.Hex()).
			WithError(err).Error("Không đóng được các dòng trạng thái khi đóng ca")
	}

	s.audit.Record(ctx, shiftID, actorID, models.AuditActionClose, nil)
	return updated, nil
}

// IsPoster kiểm tra caller có quyền thao tác poster trên ca không:
// là người đăng ca, hoặc là thành viên của tổ chức sở hữu ca.
func (s *ShiftService) IsPoster(ctx context.Context, shift models.Shift, userID primitive.ObjectID) bool {
	if shift.PostedBy == userID {
		return true
	}
	isMember, err := s.directory.IsMemberOf(ctx, userID, shift.OwnerOrganizationID)
	if err != nil {
		return false
	}
	return isMember
}

// Directory trả về directory collaborator (dùng bởi aggregate service).
func (s *ShiftService) Directory() *directorysvc.DirectoryService {
	return s.directory
}

// Profile trả về profile collaborator.
func (s *ShiftService) Profile() *profilesvc.ProfileService {
	return s.profile
}

// Audit trả về audit service của domain.
func (s *ShiftService) Audit() *AuditService {
	return s.audit
}

// StatusService trả về service dòng trạng thái thành viên.
func (s *ShiftService) StatusService() *basesvc.BaseServiceMongoImpl[models.ShiftMemberStatus] {
	return s.statusService
}

// InterestService trả về service sổ quan tâm.
func (s *ShiftService) Interests() *basesvc.BaseServiceMongoImpl[models.ShiftInterest] {
	return s.interestService
}

// Assignments trả về service gán ca.
func (s *ShiftService) Assignments() *basesvc.BaseServiceMongoImpl[models.ShiftAssignment] {
	return s.assignmentService
}
