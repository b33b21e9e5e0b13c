// Package shiftsvc - Test consolidation: dedupe theo priority, tie-break theo rating,
// bucket whole-shift chỉ nhận trạng thái đồng nhất trên mọi slot.
package shiftsvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pharmastaff/internal/api/shift/models"
)

func TestConsolidateStatuses_HighestPriorityWins(t *testing.T) {
	userID := primitive.NewObjectID()
	rows := []models.ShiftMemberStatus{
		statusRow(userID, "s1", models.LevelFullPartTime, models.MemberStatusRejected, nil),
		statusRow(userID, "s1", models.LevelLocumCasual, models.MemberStatusInterested, nil),
		statusRow(userID, "s1", models.LevelOwnerChain, models.MemberStatusNoResponse, nil),
	}

	views := ConsolidateStatuses(rows)
	view, ok := views[userID]
	if !ok {
		t.Fatal("ConsolidateStatuses không trả về view cho ứng viên")
	}
	if view.Status != models.MemberStatusInterested {
		t.Errorf("trạng thái hợp nhất phải là interested (priority cao nhất), nhận được %s", view.Status)
	}
}

func TestConsolidateStatuses_OrderInvariant(t *testing.T) {
	userID := primitive.NewObjectID()
	rows := []models.ShiftMemberStatus{
		statusRow(userID, "s1", models.LevelFullPartTime, models.MemberStatusRejected, nil),
		statusRow(userID, "s1", models.LevelLocumCasual, models.MemberStatusAccepted, floatPtr(3.0)),
		statusRow(userID, "s2", models.LevelFullPartTime, models.MemberStatusInterested, nil),
	}
	reversed := []models.ShiftMemberStatus{rows[2], rows[1], rows[0]}

	a := ConsolidateStatuses(rows)[userID]
	b := ConsolidateStatuses(reversed)[userID]

	if a.Status != b.Status {
		t.Errorf("kết quả phải bất biến với thứ tự input: %s vs %s", a.Status, b.Status)
	}
	if ratingValue(a.Rating) != ratingValue(b.Rating) {
		t.Errorf("rating hợp nhất phải bất biến với thứ tự input: %v vs %v", a.Rating, b.Rating)
	}
	if a.Status != models.MemberStatusAccepted {
		t.Errorf("trạng thái hợp nhất phải là accepted, nhận được %s", a.Status)
	}
}

func TestConsolidateStatuses_RatingBreaksTie(t *testing.T) {
	userID := primitive.NewObjectID()
	rows := []models.ShiftMemberStatus{
		statusRow(userID, "s1", models.LevelFullPartTime, models.MemberStatusInterested, nil),
		statusRow(userID, "s2", models.LevelFullPartTime, models.MemberStatusInterested, floatPtr(4.5)),
	}

	view := ConsolidateStatuses(rows)[userID]
	if view.Rating == nil || *view.Rating != 4.5 {
		t.Errorf("hòa priority thì dòng có rating cao hơn thắng (thiếu rating = -1), nhận được %v", view.Rating)
	}

	// Đảo thứ tự cho cùng kết quả
	view = ConsolidateStatuses([]models.ShiftMemberStatus{rows[1], rows[0]})[userID]
	if view.Rating == nil || *view.Rating != 4.5 {
		t.Errorf("tie-break rating phải bất biến với thứ tự input, nhận được %v", view.Rating)
	}
}

func TestConsolidateStatuses_SkipsClosedAndUnknownRows(t *testing.T) {
	userID := primitive.NewObjectID()
	closed := statusRow(userID, "s1", models.LevelFullPartTime, models.MemberStatusAccepted, nil)
	closed.Closed = true
	rows := []models.ShiftMemberStatus{
		closed,
		statusRow(userID, "s1", models.LevelFullPartTime, "weird_status", nil),
		statusRow(userID, "s1", models.LevelLocumCasual, models.MemberStatusInterested, nil),
	}

	view, ok := ConsolidateStatuses(rows)[userID]
	if !ok {
		t.Fatal("ConsolidateStatuses không trả về view cho ứng viên")
	}
	if view.Status != models.MemberStatusInterested {
		t.Errorf("dòng closed và trạng thái lạ phải bị loại, trạng thái hợp nhất là %s", view.Status)
	}
}

func TestConsolidateStatuses_PerSlotStatuses(t *testing.T) {
	userID := primitive.NewObjectID()
	rows := []models.ShiftMemberStatus{
		statusRow(userID, "s1", models.LevelFullPartTime, models.MemberStatusNoResponse, nil),
		statusRow(userID, "s1", models.LevelLocumCasual, models.MemberStatusInterested, nil),
		statusRow(userID, "s2", models.LevelFullPartTime, models.MemberStatusRejected, nil),
	}

	view := ConsolidateStatuses(rows)[userID]
	if view.SlotStatuses["s1"] != models.MemberStatusInterested {
		t.Errorf("slot s1 phải giữ trạng thái priority cao nhất của slot, nhận được %s", view.SlotStatuses["s1"])
	}
	if view.SlotStatuses["s2"] != models.MemberStatusRejected {
		t.Errorf("slot s2 phải là rejected, nhận được %s", view.SlotStatuses["s2"])
	}
}

func TestWholeShiftBuckets_OnlyUniformCandidates(t *testing.T) {
	shift := shiftWithSlots("s1", "s2", "s3")

	allInterested := primitive.NewObjectID()
	partial := primitive.NewObjectID()
	mixed := primitive.NewObjectID()
	allRejected := primitive.NewObjectID()

	rows := []models.ShiftMemberStatus{
		statusRow(allInterested, "s1", models.LevelFullPartTime, models.MemberStatusInterested, nil),
		statusRow(allInterested, "s2", models.LevelFullPartTime, models.MemberStatusInterested, nil),
		statusRow(allInterested, "s3", models.LevelFullPartTime, models.MemberStatusInterested, nil),

		// Interested 2/3 slot: chỉ báo per-slot, không vào bucket whole-shift
		statusRow(partial, "s1", models.LevelFullPartTime, models.MemberStatusInterested, nil),
		statusRow(partial, "s2", models.LevelFullPartTime, models.MemberStatusInterested, nil),

		statusRow(mixed, "s1", models.LevelFullPartTime, models.MemberStatusInterested, nil),
		statusRow(mixed, "s2", models.LevelFullPartTime, models.MemberStatusRejected, nil),
		statusRow(mixed, "s3", models.LevelFullPartTime, models.MemberStatusInterested, nil),

		statusRow(allRejected, "s1", models.LevelFullPartTime, models.MemberStatusRejected, nil),
		statusRow(allRejected, "s2", models.LevelFullPartTime, models.MemberStatusRejected, nil),
		statusRow(allRejected, "s3", models.LevelFullPartTime, models.MemberStatusRejected, nil),
	}

	interested, rejected := WholeShiftBuckets(shift, ConsolidateStatuses(rows))

	if len(interested) != 1 || interested[0].UserID != allInterested {
		t.Errorf("bucket interested whole-shift phải chứa đúng ứng viên đồng nhất interested, có %d phần tử", len(interested))
	}
	if len(rejected) != 1 || rejected[0].UserID != allRejected {
		t.Errorf("bucket rejected whole-shift phải chứa đúng ứng viên đồng nhất rejected, có %d phần tử", len(rejected))
	}
}

func TestWholeShiftBuckets_NoResponseNeverBucketed(t *testing.T) {
	shift := shiftWithSlots("s1", "s2")
	userID := primitive.NewObjectID()
	rows := []models.ShiftMemberStatus{
		statusRow(userID, "s1", models.LevelFullPartTime, models.MemberStatusNoResponse, nil),
		statusRow(userID, "s2", models.LevelFullPartTime, models.MemberStatusNoResponse, nil),
	}

	interested, rejected := WholeShiftBuckets(shift, ConsolidateStatuses(rows))
	if len(interested) != 0 || len(rejected) != 0 {
		t.Error("no_response đồng nhất không được vào bucket whole-shift nào")
	}
}

// --- helpers ---

func statusRow(userID primitive.ObjectID, slotKey, level, status string, rating *float64) models.ShiftMemberStatus {
	return models.ShiftMemberStatus{
		ShiftID:     primitive.NilObjectID,
		SlotKey:     slotKey,
		UserID:      userID,
		SourceLevel: level,
		Status:      status,
		Rating:      rating,
	}
}

func shiftWithSlots(slotIDs ...string) models.Shift {
	slots := make([]models.Slot, 0, len(slotIDs))
	for _, id := range slotIDs {
		slots = append(slots, models.Slot{SlotID: id, Date: "2026-09-01", StartTime: 1, EndTime: 2})
	}
	return models.Shift{
		ID:     primitive.NewObjectID(),
		Slots:  slots,
		Status: models.ShiftStatusOpen,
	}
}

func floatPtr(f float64) *float64 {
	return &f
}
