// Package router - đăng ký route cho domain directory.
package router

import (
	"github.com/gofiber/fiber/v3"

	directoryhdl "pharmastaff/internal/api/directory/handler"
	"pharmastaff/internal/api/middleware"
	apirouter "pharmastaff/internal/api/router"
)

// Register đăng ký mặt CRUD quản trị của directory dưới /api/v1.
// Mỗi collection một prefix riêng, cả prefix gác bởi directory.manage.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	orgHandler, err := directoryhdl.NewOrganizationHandler()
	if err != nil {
		return err
	}
	memberHandler, err := directoryhdl.NewOrgMemberHandler()
	if err != nil {
		return err
	}

	adminMiddlewares := []fiber.Handler{
		middleware.AuthMiddleware(middleware.CapDirectoryManage),
		middleware.OrganizationContextMiddleware(),
	}

	r.RegisterCRUDRoutes(v1, "/directory/organizations", orgHandler, apirouter.ReadWriteConfig, adminMiddlewares)
	r.RegisterCRUDRoutes(v1, "/directory/members", memberHandler, apirouter.ReadWriteConfig, adminMiddlewares)

	return nil
}
