// Package router - đăng ký route cho domain profile.
package router

import (
	"github.com/gofiber/fiber/v3"

	"pharmastaff/internal/api/middleware"
	profilehdl "pharmastaff/internal/api/profile/handler"
	apirouter "pharmastaff/internal/api/router"
)

// Register đăng ký mặt CRUD quản trị của profile dưới /api/v1.
// Cả prefix /profiles gác bởi profile.manage.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := profilehdl.NewProfileHandler()
	if err != nil {
		return err
	}

	adminMiddlewares := []fiber.Handler{
		middleware.AuthMiddleware(middleware.CapProfileManage),
		middleware.OrganizationContextMiddleware(),
	}

	r.RegisterCRUDRoutes(v1, "/profiles", handler, apirouter.ReadWriteConfig, adminMiddlewares)

	return nil
}
