package router

import (
	"github.com/gofiber/fiber/v3"
)

// CRUDHandler là tập handler CRUD chung mà BaseHandler của base/handler cung cấp.
// Domain nào muốn mở mặt CRUD quản trị thì truyền handler của mình vào RegisterCRUDRoutes.
type CRUDHandler interface {
	InsertOne(c fiber.Ctx) error
	Find(c fiber.Ctx) error
	FindOneById(c fiber.Ctx) error
	FindWithPagination(c fiber.Ctx) error
	UpdateById(c fiber.Ctx) error
	DeleteById(c fiber.Ctx) error
	CountDocuments(c fiber.Ctx) error
	DocumentExists(c fiber.Ctx) error
}

// CRUDConfig bật/tắt từng operation CRUD khi đăng ký route cho một collection.
type CRUDConfig struct {
	InsOne   bool // POST /insert-one
	Find     bool // GET /find
	FindById bool // GET /find-by-id/:id
	Paginate bool // GET /find-with-pagination
	UpdById  bool // PUT /update-by-id/:id
	DelById  bool // DELETE /delete-by-id/:id
	Count    bool // GET /count
	Exists   bool // GET /exists
}

// Các preset CRUDConfig dùng sẵn.
var (
	ReadOnlyConfig = CRUDConfig{
		Find: true, FindById: true, Paginate: true, Count: true, Exists: true,
	}
	ReadWriteConfig = CRUDConfig{
		InsOne: true, Find: true, FindById: true, Paginate: true,
		UpdById: true, DelById: true, Count: true, Exists: true,
	}
)

// RegisterCRUDRoutes đăng ký các route CRUD chuẩn cho một collection dưới prefix.
// Cả prefix dùng chung MỘT bộ middleware; route cùng prefix cần quyền khác nhau
// thì không dùng hàm này (xem ghi chú ở RegisterGroupRoutes).
func (r *Router) RegisterCRUDRoutes(router fiber.Router, prefix string, h CRUDHandler, config CRUDConfig, middlewares []fiber.Handler) {
	group := RegisterGroupRoutes(router, prefix, middlewares)

	if config.InsOne {
		group.Post("/insert-one", h.InsertOne)
	}
	if config.Find {
		group.Get("/find", h.Find)
	}
	if config.FindById {
		group.Get("/find-by-id/:id", h.FindOneById)
	}
	if config.Paginate {
		group.Get("/find-with-pagination", h.FindWithPagination)
	}
	if config.UpdById {
		group.Put("/update-by-id/:id", h.UpdateById)
	}
	if config.DelById {
		group.Delete("/delete-by-id/:id", h.DeleteById)
	}
	if config.Count {
		group.Get("/count", h.CountDocuments)
	}
	if config.Exists {
		group.Get("/exists", h.DocumentExists)
	}
}
