// Package worker chứa các background worker của hệ thống staffing.
package worker

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"pharmastaff/internal/api/shift/models"
	shiftsvc "pharmastaff/internal/api/shift/service"
	"pharmastaff/internal/logger"
)

// LedgerRetentionWorker dọn ledger của các ca đã đóng/filled:
// xóa các dòng interest/status đã closed và audit record cũ hơn cửa sổ lưu trữ.
// Ledger của ca đang mở KHÔNG bao giờ bị đụng tới — chỉ dữ liệu đã đóng
// (garbage-eligible sau khi ca bị xóa hoặc gán xong) mới được dọn.
type LedgerRetentionWorker struct {
	shiftService  *shiftsvc.ShiftService
	interval      time.Duration // Khoảng thời gian giữa các lần chạy
	retentionDays int           // Số ngày giữ lại dòng đã closed
}

// NewLedgerRetentionWorker tạo mới LedgerRetentionWorker.
func NewLedgerRetentionWorker(interval time.Duration, retentionDays int) (*LedgerRetentionWorker, error) {
	shiftService, err := shiftsvc.NewShiftService()
	if err != nil {
		return nil, err
	}
	if interval < time.Minute {
		interval = time.Hour
	}
	if retentionDays <= 0 {
		retentionDays = 90
	}
	return &LedgerRetentionWorker{
		shiftService:  shiftService,
		interval:      interval,
		retentionDays: retentionDays,
	}, nil
}

// Start chạy worker trong vòng lặp tới khi ctx bị hủy.
func (w *LedgerRetentionWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval":      w.interval.String(),
		"retentionDays": w.retentionDays,
	}).Info("🧹 [LEDGER_RETENTION] Starting Ledger Retention Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🧹 [LEDGER_RETENTION] Ledger Retention Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("🧹 [LEDGER_RETENTION] Panic khi dọn ledger, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()
				w.runOnce(ctx)
			}()
		}
	}
}

// runOnce thực hiện một lượt dọn.
func (w *LedgerRetentionWorker) runOnce(ctx context.Context) {
	log := logger.GetAppLogger()
	cutoff := time.Now().AddDate(0, 0, -w.retentionDays).UnixMilli()

	// Chỉ xét các ca đã đóng/filled và không còn cập nhật trong cửa sổ lưu trữ
	doneShifts, err := w.shiftService.Find(ctx, bson.M{
		"status":    bson.M{"$in": []string{models.ShiftStatusClosed, models.ShiftStatusFilled}},
		"updatedAt": bson.M{"$lt": cutoff},
	}, nil)
	if err != nil {
		log.WithError(err).Error("🧹 [LEDGER_RETENTION] Lỗi lấy danh sách ca đã đóng")
		return
	}
	if len(doneShifts) == 0 {
		return
	}

	var interests, statuses, audits int64
	for _, shift := range doneShifts {
		n, err := w.shiftService.Interests().DeleteMany(ctx, bson.M{
			"shiftId": shift.ID,
			"status":  models.InterestStatusClosed,
			"updatedAt": bson.M{"$lt": cutoff},
		})
		if err != nil {
			log.WithError(err).WithField("shift_id", shift.ID.Hex()).
				Warn("🧹 [LEDGER_RETENTION] Lỗi dọn interest, bỏ qua ca này")
			continue
		}
		interests += n

		n, err = w.shiftService.StatusService().DeleteMany(ctx, bson.M{
			"shiftId":   shift.ID,
			"closed":    true,
			"updatedAt": bson.M{"$lt": cutoff},
		})
		if err != nil {
			log.WithError(err).WithField("shift_id", shift.ID.Hex()).
				Warn("🧹 [LEDGER_RETENTION] Lỗi dọn dòng trạng thái")
			continue
		}
		statuses += n

		n, err = w.shiftService.Audit().DeleteMany(ctx, bson.M{
			"shiftId":   shift.ID,
			"createdAt": bson.M{"$lt": cutoff},
		})
		if err != nil {
			log.WithError(err).WithField("shift_id", shift.ID.Hex()).
				Warn("🧹 [LEDGER_RETENTION] Lỗi dọn audit record")
			continue
		}
		audits += n
	}

	if interests+statuses+audits > 0 {
		log.WithFields(map[string]interface{}{
			"shifts":    len(doneShifts),
			"interests": interests,
			"statuses":  statuses,
			"audits":    audits,
		}).Info("🧹 [LEDGER_RETENTION] Đã dọn ledger quá hạn")
	}
}
