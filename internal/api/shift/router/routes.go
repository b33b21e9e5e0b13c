// Package router - đăng ký route cho domain shift.
package router

import (
	"github.com/gofiber/fiber/v3"

	"pharmastaff/internal/api/middleware"
	apirouter "pharmastaff/internal/api/router"
	shifthdl "pharmastaff/internal/api/shift/handler"
)

// Register đăng ký toàn bộ route của domain shift dưới /api/v1.
//
// Cả prefix /shifts dùng chung MỘT bộ middleware (xác thực + organization context).
// .Use() của Fiber v3 match theo prefix: nếu gắn middleware capability khác nhau
// cho từng route cùng prefix thì mọi request /shifts/* phải đi qua tất cả các
// middleware đó, và ứng viên chỉ có shift.respond sẽ bị middleware shift.manage
// chặn trước khi tới route của mình. Capability theo từng route được kiểm tra
// trong handler qua requireCapability.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := shifthdl.NewShiftHandler()
	if err != nil {
		return err
	}

	shifts := apirouter.RegisterGroupRoutes(v1, "/shifts", []fiber.Handler{
		middleware.AuthMiddleware(""),
		middleware.OrganizationContextMiddleware(),
	})

	// Thao tác của poster (tạo, escalate, reveal, assign, share link, đóng ca)
	shifts.Post("", handler.HandleCreate)
	shifts.Delete("/:shiftId", handler.HandleClose)
	shifts.Post("/:shiftId/escalate", handler.HandleEscalate)
	shifts.Post("/:shiftId/reveal", handler.HandleReveal)
	shifts.Post("/:shiftId/assign", handler.HandleAssign)
	shifts.Post("/:shiftId/share-link", handler.HandleShareLink)

	// Thao tác xem của poster/quản lý
	shifts.Get("", handler.HandleList)
	shifts.Get("/:shiftId", handler.HandleGetDetail)
	shifts.Get("/:shiftId/candidates", handler.HandleCandidates)
	shifts.Get("/:shiftId/audit", handler.HandleAuditTrail)

	// Thao tác của ứng viên
	shifts.Post("/:shiftId/status", handler.HandleRespondStatus)
	shifts.Post("/:shiftId/interest", handler.HandleInterest)

	// View công khai qua share link: không auth
	public := apirouter.RegisterGroupRoutes(v1, "/public/shifts", nil)
	public.Get("/:token", handler.HandlePublicView)

	return nil
}
