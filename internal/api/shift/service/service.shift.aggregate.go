package shiftsvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	directorymodels "pharmastaff/internal/api/directory/models"
	"pharmastaff/internal/api/shift/models"
	"pharmastaff/internal/common"
)

// StatusAggregateService hợp nhất các dòng trạng thái thô thành view ứng viên.
// Mọi phép tính là hàm thuần túy của dữ liệu đã lưu: cùng input cho cùng output
// bất kể thứ tự, không cache trung gian.
type StatusAggregateService struct {
	shiftService *ShiftService
}

// NewStatusAggregateService tạo mới StatusAggregateService.
func NewStatusAggregateService(shiftService *ShiftService) *StatusAggregateService {
	return &StatusAggregateService{shiftService: shiftService}
}

// ratingValue quy đổi rating cho tie-break: thiếu rating xếp thấp nhất (-1).
func ratingValue(r *float64) float64 {
	if r == nil {
		return -1
	}
	return *r
}

// ConsolidateStatuses dedupe các dòng trạng thái của từng ứng viên theo priority.
// Quy tắc: giữ dòng có priority cao nhất (rejected=0 < no_response=1 < interested=2
// < accepted=3); hòa priority thì giữ dòng có rating cao hơn (thiếu rating = -1).
// Dòng closed bị loại trước khi xét. Hàm thuần túy, bất biến với thứ tự input.
func ConsolidateStatuses(rows []models.ShiftMemberStatus) map[primitive.ObjectID]models.CandidateView {
	out := make(map[primitive.ObjectID]models.CandidateView)

	for _, row := range rows {
		if row.Closed {
			continue
		}
		prio, known := models.StatusPriority[row.Status]
		if !known {
			continue
		}

		view, exists := out[row.UserID]
		if !exists {
			out[row.UserID] = models.CandidateView{
				UserID:       row.UserID,
				Status:       row.Status,
				Rating:       row.Rating,
				SlotStatuses: map[string]string{row.SlotKey: row.Status},
			}
			continue
		}

		// Trạng thái per-slot: mỗi slot giữ trạng thái priority cao nhất của slot đó
		if cur, ok := view.SlotStatuses[row.SlotKey]; !ok || models.StatusPriority[row.Status] > models.StatusPriority[cur] {
			view.SlotStatuses[row.SlotKey] = row.Status
		}

		// Trạng thái hợp nhất: priority cao hơn thắng, hòa thì rating cao hơn thắng
		curPrio := models.StatusPriority[view.Status]
		if prio > curPrio || (prio == curPrio && ratingValue(row.Rating) > ratingValue(view.Rating)) {
			view.Status = row.Status
			view.Rating = row.Rating
		}
		out[row.UserID] = view
	}

	return out
}

// WholeShiftBuckets lọc các ứng viên có trạng thái ĐỒNG NHẤT trên mọi slot của ca.
// Ứng viên interested 2/3 slot chỉ được báo per-slot, không vào bucket whole-shift.
func WholeShiftBuckets(shift models.Shift, views map[primitive.ObjectID]models.CandidateView) (interested, rejected []models.CandidateView) {
	interested = []models.CandidateView{}
	rejected = []models.CandidateView{}

	for _, view := range views {
		uniform := uniformStatusAcrossSlots(shift, view)
		switch uniform {
		case models.MemberStatusInterested:
			interested = append(interested, view)
		case models.MemberStatusRejected:
			rejected = append(rejected, view)
		}
	}
	return interested, rejected
}

// uniformStatusAcrossSlots trả về trạng thái chung nếu ứng viên có cùng một trạng thái
// trên TẤT CẢ slot của ca, chuỗi rỗng nếu thiếu slot nào đó hoặc không đồng nhất.
func uniformStatusAcrossSlots(shift models.Shift, view models.CandidateView) string {
	if len(shift.Slots) == 0 {
		return ""
	}
	var uniform string
	for _, slot := range shift.Slots {
		status, ok := view.SlotStatuses[slot.SlotID]
		if !ok {
			return ""
		}
		if uniform == "" {
			uniform = status
		} else if status != uniform {
			return ""
		}
	}
	return uniform
}

// CandidateBoard dựng view ứng viên đầy đủ cho poster.
// Dưới PLATFORM: chỉ các dòng MemberStatus. Tại PLATFORM: thêm các dòng interest
// blind — ca lên PLATFORM vẫn đồng thời hiển thị với mọi người đã thấy nó ở tier thấp,
// nên các dòng tier thấp vẫn được hợp nhất đầy đủ.
func (s *StatusAggregateService) CandidateBoard(ctx context.Context, shiftID primitive.ObjectID) (*models.CandidateBoard, error) {
	shift, err := s.shiftService.FindOneById(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	rows, err := s.shiftService.statusService.Find(ctx, bson.M{"shiftId": shiftID}, nil)
	if err != nil {
		return nil, err
	}

	views := ConsolidateStatuses(rows)

	board := &models.CandidateBoard{
		ShiftID:      shiftID,
		CurrentLevel: shift.CurrentLevel,
		Members: map[string][]models.CandidateView{
			models.MemberStatusAccepted:   {},
			models.MemberStatusInterested: {},
			models.MemberStatusNoResponse: {},
			models.MemberStatusRejected:   {},
		},
	}
	for _, view := range views {
		board.Members[view.Status] = append(board.Members[view.Status], view)
	}
	board.WholeShiftInterested, board.WholeShiftRejected = WholeShiftBuckets(shift, views)

	if shift.CurrentLevel == models.LevelPlatform {
		entries, err := s.platformInterestEntries(ctx, shiftID)
		if err != nil {
			return nil, err
		}
		board.PlatformInterests = entries
	}

	return board, nil
}

// platformInterestEntries liệt kê sổ interest cho view của poster.
// Dòng chưa reveal KHÔNG kèm userId hay hồ sơ: reveal là cổng một chiều
// trước khi bất kỳ định danh cá nhân nào được gắn vào.
func (s *StatusAggregateService) platformInterestEntries(ctx context.Context, shiftID primitive.ObjectID) ([]models.PlatformInterestEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	interests, err := s.shiftService.interestService.Find(ctx, bson.M{
		"shiftId": shiftID,
		"status":  models.InterestStatusOpen,
	}, opts)
	if err != nil {
		return nil, err
	}

	entries := make([]models.PlatformInterestEntry, 0, len(interests))
	for _, interest := range interests {
		entry := models.PlatformInterestEntry{
			InterestID: interest.ID,
			SlotKey:    interest.SlotKey,
			Revealed:   interest.Revealed,
			CreatedAt:  interest.CreatedAt,
		}
		if interest.Revealed {
			userID := interest.UserID
			entry.UserID = &userID
			entry.Profile = s.shiftService.profile.Snapshot(ctx, userID)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// MemberStatusAtLevel trả về các ứng viên đủ điều kiện tại tier level cho một slot,
// kèm trạng thái hiện tại của từng người (mặc định no_response nếu chưa có dòng).
func (s *StatusAggregateService) MemberStatusAtLevel(ctx context.Context, shiftID primitive.ObjectID, slotID string, level string) ([]models.ShiftMemberStatus, error) {
	if !models.IsValidLevel(level) {
		return nil, common.WithDetails(common.ErrInvalidInput, map[string]interface{}{
			"field": "level",
			"value": level,
		})
	}

	shift, err := s.shiftService.FindOneById(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if _, ok := shift.SlotByID(slotID); !ok {
		return nil, common.WithDetails(common.ErrNotFound, map[string]interface{}{
			"shiftId": shiftID.Hex(),
			"slotId":  slotID,
		})
	}

	members, err := s.shiftService.directory.EligibleMembers(ctx, shift.OwnerOrganizationID, level)
	if err != nil {
		return nil, err
	}

	rows, err := s.shiftService.statusService.Find(ctx, bson.M{
		"shiftId":     shiftID,
		"slotKey":     slotID,
		"sourceLevel": level,
	}, nil)
	if err != nil {
		return nil, err
	}
	byUser := make(map[primitive.ObjectID]models.ShiftMemberStatus, len(rows))
	for _, row := range rows {
		byUser[row.UserID] = row
	}

	out := make([]models.ShiftMemberStatus, 0, len(members))
	seen := make(map[primitive.ObjectID]bool, len(members))
	for _, member := range members {
		if seen[member.UserID] {
			continue
		}
		seen[member.UserID] = true
		if row, ok := byUser[member.UserID]; ok {
			out = append(out, row)
			continue
		}
		out = append(out, defaultStatusRow(shiftID, slotID, level, member))
	}
	return out, nil
}

// defaultStatusRow dựng dòng no_response ảo cho thành viên chưa phản hồi.
func defaultStatusRow(shiftID primitive.ObjectID, slotID, level string, member directorymodels.OrgMember) models.ShiftMemberStatus {
	return models.ShiftMemberStatus{
		ShiftID:     shiftID,
		SlotKey:     slotID,
		UserID:      member.UserID,
		SourceLevel: level,
		SourceOrgID: member.OrganizationID,
		Status:      models.MemberStatusNoResponse,
	}
}
