package utility

import (
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"
)

// GoProtect chạy một hàm với recover, dùng khi spawn goroutine nền
// để panic trong goroutine không làm sập server.
func GoProtect(f func()) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("panic", r).Error("Goroutine panic recovered")
			debug.PrintStack()
		}
	}()
	f()
}

// UnixMilli chuyển time.Time thành Unix milliseconds.
func UnixMilli(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}

// CurrentTimeInMilli trả về thời điểm hiện tại theo Unix milliseconds.
func CurrentTimeInMilli() int64 {
	return UnixMilli(time.Now())
}
