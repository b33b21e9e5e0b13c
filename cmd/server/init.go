package main

import (
	"context"

	"pharmastaff/config"
	"pharmastaff/internal/api/events"
	"pharmastaff/internal/database"
	"pharmastaff/internal/global"

	"github.com/sirupsen/logrus"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initEvents()           // Đăng ký subscriber cho event bus dữ liệu
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.InitColNames()
	logrus.Info("Initialized collection names")
}

// Hàm đăng ký subscriber cho event bus: trace mọi thay đổi trên các collection
// của engine ở mức debug. Gọi sau initColNames vì cần tên collection.
func initEvents() {
	engineCols := map[string]bool{
		global.MongoDB_ColNames.Shifts:              true,
		global.MongoDB_ColNames.ShiftMemberStatuses: true,
		global.MongoDB_ColNames.ShiftInterests:      true,
		global.MongoDB_ColNames.ShiftAssignments:    true,
	}

	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		if !engineCols[e.CollectionName] {
			return
		}
		entry := logrus.WithFields(logrus.Fields{
			"collection": e.CollectionName,
			"operation":  e.Operation,
		})
		if shiftID := events.GetObjectIDField(e.Document, "ShiftID"); !shiftID.IsZero() {
			entry = entry.WithField("shift_id", shiftID.Hex())
		}
		entry.Debug("Data changed")
	})
	logrus.Info("Initialized data change event subscribers")
}

// Hàm khởi tạo validator (đăng ký custom validators: no_xss, exists, object_id, time_range)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")
}
