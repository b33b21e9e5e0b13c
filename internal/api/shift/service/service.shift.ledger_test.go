package shiftsvc

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	profilemodels "pharmastaff/internal/api/profile/models"
	"pharmastaff/internal/api/shift/models"
	"pharmastaff/internal/common"
)

// Các test dưới đây chạy InterestService, AssignmentService và ShareLinkService
// trên fake in-memory qua seam store, không cần Mongo. Fake mô phỏng đúng các
// ràng buộc mà index thật đảm bảo: unique (shiftId, slotKey, userId) cho interest
// và unique (shiftId, slotKey) cho assignment.

func TestExpressInterest_RequiresPlatformTier(t *testing.T) {
	shift := platformShift("s1")
	shift.CurrentLevel = models.LevelLocumCasual
	f := newLedgerFixture(shift)

	_, err := f.interest.ExpressInterest(context.Background(), shift.ID, "", primitive.NewObjectID())
	if !errors.Is(err, common.ErrShiftNotPublic) {
		t.Fatalf("Ca chưa ở PLATFORM phải trả về ErrShiftNotPublic, nhận: %v", err)
	}
}

func TestExpressInterest_DuplicateIsIdempotent(t *testing.T) {
	shift := platformShift("s1")
	f := newLedgerFixture(shift)
	userID := primitive.NewObjectID()

	first, err := f.interest.ExpressInterest(context.Background(), shift.ID, "s1", userID)
	if err != nil {
		t.Fatalf("Lần quan tâm đầu tiên phải thành công, nhận lỗi: %v", err)
	}

	second, err := f.interest.ExpressInterest(context.Background(), shift.ID, "s1", userID)
	if !errors.Is(err, common.ErrDuplicateInterest) {
		t.Fatalf("Quan tâm trùng phải trả về ErrDuplicateInterest, nhận: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Quan tâm trùng phải trả về đúng dòng đã có, muốn %s nhận %s", first.ID.Hex(), second.ID.Hex())
	}
	if got := len(f.interests.rows); got != 1 {
		t.Errorf("Sổ quan tâm phải giữ đúng 1 dòng, nhận %d", got)
	}
}

func TestExpressInterest_AuditIsBlind(t *testing.T) {
	shift := platformShift("s1")
	f := newLedgerFixture(shift)

	if _, err := f.interest.ExpressInterest(context.Background(), shift.ID, "s1", primitive.NewObjectID()); err != nil {
		t.Fatalf("ExpressInterest phải thành công, nhận lỗi: %v", err)
	}

	entries := f.audit.byAction(models.AuditActionInterest)
	if len(entries) != 1 {
		t.Fatalf("Phải có đúng 1 dòng audit interest, nhận %d", len(entries))
	}
	if entries[0].actorID != primitive.NilObjectID {
		t.Error("Audit của interest không được ghi actor: interest là blind")
	}
	if _, hasUser := entries[0].details["userId"]; hasUser {
		t.Error("Audit của interest không được chứa userId trước khi reveal")
	}
}

func TestExpressInterest_AssignedSlotIsClosed(t *testing.T) {
	shift := platformShift("s1", "s2")
	f := newLedgerFixture(shift)
	f.assignments.rows = append(f.assignments.rows, models.ShiftAssignment{
		ID:      primitive.NewObjectID(),
		ShiftID: shift.ID,
		SlotKey: "s1",
	})

	_, err := f.interest.ExpressInterest(context.Background(), shift.ID, "s1", primitive.NewObjectID())
	if !errors.Is(err, common.ErrSlotClosed) {
		t.Fatalf("Slot đã gán phải trả về ErrSlotClosed, nhận: %v", err)
	}

	if _, err := f.interest.ExpressInterest(context.Background(), shift.ID, "s2", primitive.NewObjectID()); err != nil {
		t.Fatalf("Slot chưa gán vẫn phải nhận quan tâm, nhận lỗi: %v", err)
	}
}

func TestExpressInterest_WholeShiftAssignmentBlocksAllSlots(t *testing.T) {
	shift := platformShift("s1", "s2")
	f := newLedgerFixture(shift)
	f.assignments.rows = append(f.assignments.rows, models.ShiftAssignment{
		ID:      primitive.NewObjectID(),
		ShiftID: shift.ID,
		SlotKey: models.WholeShiftSlotKey,
	})

	for _, slotID := range []string{"", "s1", "s2"} {
		_, err := f.interest.ExpressInterest(context.Background(), shift.ID, slotID, primitive.NewObjectID())
		if !errors.Is(err, common.ErrSlotClosed) {
			t.Errorf("Assignment whole-shift phải đóng slot %q với interest mới, nhận: %v", slotID, err)
		}
	}
}

func TestExpressInterest_WholeShiftAndSlotCoexist(t *testing.T) {
	shift := platformShift("s1")
	f := newLedgerFixture(shift)
	userID := primitive.NewObjectID()

	whole, err := f.interest.ExpressInterest(context.Background(), shift.ID, "", userID)
	if err != nil {
		t.Fatalf("Quan tâm cả ca phải thành công, nhận lỗi: %v", err)
	}
	perSlot, err := f.interest.ExpressInterest(context.Background(), shift.ID, "s1", userID)
	if err != nil {
		t.Fatalf("Quan tâm per-slot song song với cả-ca phải thành công, nhận lỗi: %v", err)
	}

	if whole.SlotKey != models.WholeShiftSlotKey {
		t.Errorf("Dòng cả-ca phải có slotKey %q, nhận %q", models.WholeShiftSlotKey, whole.SlotKey)
	}
	if perSlot.SlotKey != "s1" {
		t.Errorf("Dòng per-slot phải có slotKey s1, nhận %q", perSlot.SlotKey)
	}
	if got := len(f.interests.rows); got != 2 {
		t.Errorf("Hai dòng quan tâm độc lập phải cùng tồn tại, nhận %d dòng", got)
	}
}

func TestReveal_SecondCallIsNoOp(t *testing.T) {
	shift := platformShift("s1")
	f := newLedgerFixture(shift)
	userID := primitive.NewObjectID()
	firstActor := primitive.NewObjectID()
	secondActor := primitive.NewObjectID()

	row, err := f.interest.ExpressInterest(context.Background(), shift.ID, "s1", userID)
	if err != nil {
		t.Fatalf("ExpressInterest phải thành công, nhận lỗi: %v", err)
	}

	revealed, snapshot, err := f.interest.Reveal(context.Background(), shift.ID, row.ID, firstActor)
	if err != nil {
		t.Fatalf("Reveal lần đầu phải thành công, nhận lỗi: %v", err)
	}
	if !revealed.Revealed {
		t.Fatal("Sau reveal, dòng interest phải có revealed=true")
	}
	if revealed.RevealedBy != firstActor {
		t.Errorf("RevealedBy phải là actor đầu tiên %s, nhận %s", firstActor.Hex(), revealed.RevealedBy.Hex())
	}
	if snapshot.UserID != userID {
		t.Errorf("Snapshot phải thuộc về ứng viên %s, nhận %s", userID.Hex(), snapshot.UserID.Hex())
	}

	again, snapshotAgain, err := f.interest.Reveal(context.Background(), shift.ID, row.ID, secondActor)
	if err != nil {
		t.Fatalf("Reveal lần hai phải là no-op thành công, nhận lỗi: %v", err)
	}
	if !again.Revealed {
		t.Error("Revealed không bao giờ quay về false")
	}
	if again.RevealedBy != firstActor {
		t.Errorf("Reveal lần hai không được ghi đè RevealedBy, muốn %s nhận %s", firstActor.Hex(), again.RevealedBy.Hex())
	}
	if snapshotAgain.UserID != userID {
		t.Errorf("Reveal lần hai phải trả về cùng snapshot, nhận userId %s", snapshotAgain.UserID.Hex())
	}
	if got := len(f.audit.byAction(models.AuditActionReveal)); got != 1 {
		t.Errorf("Reveal lần hai không được ghi thêm audit, muốn 1 dòng nhận %d", got)
	}
}

func TestReveal_InterestFromOtherShift(t *testing.T) {
	shift := platformShift("s1")
	other := platformShift("s1")
	f := newLedgerFixture(shift)
	f.shifts.shifts[other.ID] = other

	row, err := f.interest.ExpressInterest(context.Background(), shift.ID, "s1", primitive.NewObjectID())
	if err != nil {
		t.Fatalf("ExpressInterest phải thành công, nhận lỗi: %v", err)
	}

	_, _, err = f.interest.Reveal(context.Background(), other.ID, row.ID, primitive.NewObjectID())
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("Reveal interest của ca khác phải trả về ErrNotFound, nhận: %v", err)
	}
}

func TestIssueLink_TokenIsStable(t *testing.T) {
	shift := platformShift("s1")
	f := newLedgerFixture(shift)
	actorID := primitive.NewObjectID()

	first, err := f.shareLink.IssueLink(context.Background(), shift.ID, actorID)
	if err != nil {
		t.Fatalf("Phát hành link lần đầu phải thành công, nhận lỗi: %v", err)
	}
	if first == "" {
		t.Fatal("Token phát hành không được rỗng")
	}

	second, err := f.shareLink.IssueLink(context.Background(), shift.ID, actorID)
	if err != nil {
		t.Fatalf("Phát hành lại phải thành công, nhận lỗi: %v", err)
	}
	if second != first {
		t.Errorf("Token phải ổn định suốt đời ca, lần đầu %q lần hai %q", first, second)
	}
	if got := len(f.audit.byAction(models.AuditActionShare)); got != 1 {
		t.Errorf("Phát hành lại không ghi thêm audit, muốn 1 dòng nhận %d", got)
	}
}

func TestIssueLink_RequiresPlatformTier(t *testing.T) {
	shift := platformShift("s1")
	shift.CurrentLevel = models.LevelOwnerChain
	f := newLedgerFixture(shift)

	_, err := f.shareLink.IssueLink(context.Background(), shift.ID, primitive.NewObjectID())
	if !errors.Is(err, common.ErrShiftNotPublic) {
		t.Fatalf("Ca chưa ở PLATFORM không được phát hành link, muốn ErrShiftNotPublic nhận: %v", err)
	}
}

func TestAssign_TerminalAndClosesCompetingRows(t *testing.T) {
	shift := platformShift("s1")
	f := newLedgerFixture(shift)
	winner := primitive.NewObjectID()
	actorID := primitive.NewObjectID()

	if _, err := f.interest.ExpressInterest(context.Background(), shift.ID, "s1", primitive.NewObjectID()); err != nil {
		t.Fatalf("Seed interest phải thành công, nhận lỗi: %v", err)
	}

	created, err := f.assignment.Assign(context.Background(), shift.ID, "s1", winner, actorID)
	if err != nil {
		t.Fatalf("Assign phải thành công, nhận lỗi: %v", err)
	}
	if created.SourceLevel != models.LevelPlatform {
		t.Errorf("Assignment phải ghi lại tier tại thời điểm gán, muốn %s nhận %s", models.LevelPlatform, created.SourceLevel)
	}

	for _, row := range f.interests.rows {
		if row.SlotKey == "s1" && row.Status != models.InterestStatusClosed {
			t.Errorf("Interest đang chờ của slot vừa gán phải chuyển sang closed, nhận %q", row.Status)
		}
	}
	if got := f.shifts.shifts[shift.ID].Status; got != models.ShiftStatusFilled {
		t.Errorf("Mọi slot đã gán thì ca phải chuyển sang filled, nhận %q", got)
	}

	_, err = f.assignment.Assign(context.Background(), shift.ID, "s1", primitive.NewObjectID(), actorID)
	if !errors.Is(err, common.ErrSlotAlreadyFilled) {
		t.Fatalf("Assign lần hai trên cùng slot phải trả về ErrSlotAlreadyFilled, nhận: %v", err)
	}
}

func TestAssign_WholeShiftClosesSlotRows(t *testing.T) {
	shift := platformShift("s1", "s2")
	f := newLedgerFixture(shift)

	if _, err := f.interest.ExpressInterest(context.Background(), shift.ID, "s1", primitive.NewObjectID()); err != nil {
		t.Fatalf("Seed interest per-slot phải thành công, nhận lỗi: %v", err)
	}
	if _, err := f.interest.ExpressInterest(context.Background(), shift.ID, "", primitive.NewObjectID()); err != nil {
		t.Fatalf("Seed interest cả-ca phải thành công, nhận lỗi: %v", err)
	}

	if _, err := f.assignment.Assign(context.Background(), shift.ID, "", primitive.NewObjectID(), primitive.NewObjectID()); err != nil {
		t.Fatalf("Assign cả ca phải thành công, nhận lỗi: %v", err)
	}

	for _, row := range f.interests.rows {
		if row.Status != models.InterestStatusClosed {
			t.Errorf("Gán whole-shift phải đóng mọi interest đang chờ, dòng slotKey=%q còn %q", row.SlotKey, row.Status)
		}
	}
	if got := f.shifts.shifts[shift.ID].Status; got != models.ShiftStatusFilled {
		t.Errorf("Gán whole-shift thì ca phải chuyển sang filled, nhận %q", got)
	}
}

// ====================================
// FAKE STORES VÀ FIXTURE
// ====================================

type ledgerFixture struct {
	shifts      *fakeShiftStore
	interests   *fakeInterestStore
	statuses    *fakeStatusStore
	assignments *fakeAssignmentStore
	audit       *fakeAuditRecorder

	interest   *InterestService
	assignment *AssignmentService
	shareLink  *ShareLinkService
}

func newLedgerFixture(shift models.Shift) *ledgerFixture {
	shifts := &fakeShiftStore{shifts: map[primitive.ObjectID]models.Shift{shift.ID: shift}}
	interests := &fakeInterestStore{rows: make(map[primitive.ObjectID]models.ShiftInterest)}
	statuses := &fakeStatusStore{}
	assignments := &fakeAssignmentStore{}
	profile := &fakeProfileReader{}
	audit := &fakeAuditRecorder{}

	return &ledgerFixture{
		shifts:      shifts,
		interests:   interests,
		statuses:    statuses,
		assignments: assignments,
		audit:       audit,
		interest: &InterestService{
			shifts:      shifts,
			interests:   interests,
			assignments: assignments,
			profile:     profile,
			audit:       audit,
		},
		assignment: &AssignmentService{
			shifts:      shifts,
			statuses:    statuses,
			interests:   interests,
			assignments: assignments,
			audit:       audit,
		},
		shareLink: &ShareLinkService{
			shifts: shifts,
			audit:  audit,
		},
	}
}

func platformShift(slotIDs ...string) models.Shift {
	shift := shiftWithSlots(slotIDs...)
	shift.CurrentLevel = models.LevelPlatform
	return shift
}

type fakeShiftStore struct {
	shifts map[primitive.ObjectID]models.Shift
}

func (f *fakeShiftStore) FindOneById(_ context.Context, id primitive.ObjectID) (models.Shift, error) {
	shift, ok := f.shifts[id]
	if !ok {
		return models.Shift{}, common.ErrNotFound
	}
	return shift, nil
}

func (f *fakeShiftStore) FindOne(_ context.Context, filter interface{}, _ *options.FindOneOptions) (models.Shift, error) {
	m := filter.(bson.M)
	for _, shift := range f.shifts {
		if shift.ShareToken != "" && shift.ShareToken == m["shareToken"] {
			return shift, nil
		}
	}
	return models.Shift{}, common.ErrNotFound
}

func (f *fakeShiftStore) UpdateById(_ context.Context, id primitive.ObjectID, data interface{}) (models.Shift, error) {
	shift, ok := f.shifts[id]
	if !ok {
		return models.Shift{}, common.ErrNotFound
	}
	m := data.(bson.M)
	if v, ok := m["shareToken"].(string); ok {
		shift.ShareToken = v
	}
	if v, ok := m["status"].(string); ok {
		shift.Status = v
	}
	f.shifts[id] = shift
	return shift, nil
}

type fakeInterestStore struct {
	rows map[primitive.ObjectID]models.ShiftInterest
}

func (f *fakeInterestStore) InsertOne(_ context.Context, data models.ShiftInterest) (models.ShiftInterest, error) {
	for _, row := range f.rows {
		if row.ShiftID == data.ShiftID && row.SlotKey == data.SlotKey && row.UserID == data.UserID {
			return models.ShiftInterest{}, common.ErrDuplicate
		}
	}
	data.ID = primitive.NewObjectID()
	f.rows[data.ID] = data
	return data, nil
}

func (f *fakeInterestStore) FindOne(_ context.Context, filter interface{}, _ *options.FindOneOptions) (models.ShiftInterest, error) {
	m := filter.(bson.M)
	for _, row := range f.rows {
		if row.ShiftID == m["shiftId"] && row.SlotKey == m["slotKey"] && row.UserID == m["userId"] {
			return row, nil
		}
	}
	return models.ShiftInterest{}, common.ErrNotFound
}

func (f *fakeInterestStore) FindOneById(_ context.Context, id primitive.ObjectID) (models.ShiftInterest, error) {
	row, ok := f.rows[id]
	if !ok {
		return models.ShiftInterest{}, common.ErrNotFound
	}
	return row, nil
}

func (f *fakeInterestStore) UpdateById(_ context.Context, id primitive.ObjectID, data interface{}) (models.ShiftInterest, error) {
	row, ok := f.rows[id]
	if !ok {
		return models.ShiftInterest{}, common.ErrNotFound
	}
	m := data.(bson.M)
	if v, ok := m["revealed"].(bool); ok {
		row.Revealed = v
	}
	if v, ok := m["revealedAt"].(int64); ok {
		row.RevealedAt = v
	}
	if v, ok := m["revealedBy"].(primitive.ObjectID); ok {
		row.RevealedBy = v
	}
	if v, ok := m["status"].(string); ok {
		row.Status = v
	}
	f.rows[id] = row
	return row, nil
}

func (f *fakeInterestStore) UpdateMany(_ context.Context, filter, update interface{}, _ *options.UpdateOptions) (int64, error) {
	m := filter.(bson.M)
	u := update.(bson.M)
	var count int64
	for id, row := range f.rows {
		if row.ShiftID != m["shiftId"] {
			continue
		}
		if status, ok := m["status"]; ok && row.Status != status {
			continue
		}
		if slotKey, ok := m["slotKey"]; ok && row.SlotKey != slotKey {
			continue
		}
		if v, ok := u["status"].(string); ok {
			row.Status = v
		}
		f.rows[id] = row
		count++
	}
	return count, nil
}

type fakeStatusStore struct {
	rows []models.ShiftMemberStatus
}

func (f *fakeStatusStore) Find(_ context.Context, filter interface{}, _ *options.FindOptions) ([]models.ShiftMemberStatus, error) {
	m := filter.(bson.M)
	var out []models.ShiftMemberStatus
	for _, row := range f.rows {
		if row.ShiftID == m["shiftId"] {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeStatusStore) UpdateMany(_ context.Context, filter, update interface{}, _ *options.UpdateOptions) (int64, error) {
	m := filter.(bson.M)
	u := update.(bson.M)
	var count int64
	for i, row := range f.rows {
		if row.ShiftID != m["shiftId"] {
			continue
		}
		if closed, ok := m["closed"].(bool); ok && row.Closed != closed {
			continue
		}
		if slotKey, ok := m["slotKey"]; ok && row.SlotKey != slotKey {
			continue
		}
		if v, ok := u["closed"].(bool); ok {
			f.rows[i].Closed = v
		}
		count++
	}
	return count, nil
}

type fakeAssignmentStore struct {
	rows []models.ShiftAssignment
}

func (f *fakeAssignmentStore) InsertOne(_ context.Context, data models.ShiftAssignment) (models.ShiftAssignment, error) {
	for _, row := range f.rows {
		if row.ShiftID == data.ShiftID && row.SlotKey == data.SlotKey {
			return models.ShiftAssignment{}, common.ErrDuplicate
		}
	}
	data.ID = primitive.NewObjectID()
	f.rows = append(f.rows, data)
	return data, nil
}

func (f *fakeAssignmentStore) Find(_ context.Context, filter interface{}, _ *options.FindOptions) ([]models.ShiftAssignment, error) {
	m := filter.(bson.M)
	var out []models.ShiftAssignment
	for _, row := range f.rows {
		if row.ShiftID == m["shiftId"] {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeAssignmentStore) DocumentExists(_ context.Context, filter interface{}) (bool, error) {
	m := filter.(bson.M)
	keys := make(map[string]bool)
	switch v := m["slotKey"].(type) {
	case string:
		keys[v] = true
	case bson.M:
		if in, ok := v["$in"].([]string); ok {
			for _, k := range in {
				keys[k] = true
			}
		}
	}
	for _, row := range f.rows {
		if row.ShiftID == m["shiftId"] && keys[row.SlotKey] {
			return true, nil
		}
	}
	return false, nil
}

type fakeProfileReader struct{}

func (f *fakeProfileReader) Snapshot(_ context.Context, userID primitive.ObjectID) profilemodels.ProfileSnapshot {
	return profilemodels.ProfileSnapshot{UserID: userID, FullName: "Dược sĩ Test"}
}

type auditEntry struct {
	actorID primitive.ObjectID
	action  string
	details map[string]interface{}
}

type fakeAuditRecorder struct {
	entries []auditEntry
}

func (f *fakeAuditRecorder) Record(_ context.Context, _, actorID primitive.ObjectID, action string, details map[string]interface{}) {
	f.entries = append(f.entries, auditEntry{actorID: actorID, action: action, details: details})
}

func (f *fakeAuditRecorder) byAction(action string) []auditEntry {
	var out []auditEntry
	for _, e := range f.entries {
		if e.action == action {
			out = append(out, e)
		}
	}
	return out
}
