// Package shiftsvc - service cho domain shift, phần lõi của engine.
package shiftsvc

import (
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"pharmastaff/internal/global"
)

// LockShift giữ critical section độc quyền theo từng ca.
// Escalate, assign, reveal và expressInterest trên cùng một ca phải chạy tuần tự:
// hai lệnh assign đồng thời cho cùng slot thì đúng một lệnh được thấy SlotAlreadyFilled.
// Reads (aggregate) không cần lock.
//
// Trả về hàm unlock, dùng: defer LockShift(id)()
func LockShift(shiftID primitive.ObjectID) func() {
	mu, err := global.RegistryShiftLocks.GetOrCreate(shiftID.Hex(), func() (*sync.Mutex, error) {
		return &sync.Mutex{}, nil
	})
	if err != nil {
		// Key hex không bao giờ rỗng nên nhánh này không xảy ra trong thực tế
		mu = &sync.Mutex{}
	}
	mu.Lock()
	return mu.Unlock
}

// getCollection lấy collection từ registry, trả lỗi rõ ràng khi chưa đăng ký.
func getCollection(name string) (*mongo.Collection, error) {
	col, exist := global.RegistryCollections.Get(name)
	if !exist {
		return nil, fmt.Errorf("failed to get collection: %s", name)
	}
	return col, nil
}
