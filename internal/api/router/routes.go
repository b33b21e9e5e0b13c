package router

import (
	"github.com/gofiber/fiber/v3"
)

// ============================================================================
// ⚠️ QUAN TRỌNG: BUG FIBER V3 - CÁCH ĐĂNG KÝ MIDDLEWARE
// ============================================================================
//
// Fiber v3 có bug với cách đăng ký middleware trực tiếp trong route.
// Middleware sẽ KHÔNG được gọi nếu dùng cách trực tiếp!
//
// ❌ CÁCH SAI (KHÔNG HOẠT ĐỘNG):
//    router.Get("/path", middleware.AuthMiddleware(""), handler)
//
// ✅ CÁCH ĐÚNG (PHẢI DÙNG):
//    group := RegisterGroupRoutes(router, "/prefix", []fiber.Handler{authMiddleware})
//    group.Get("/path", handler)
//    → Middleware sẽ được gọi đúng cách thông qua .Use() method
//
// ⚠️ MỘT PREFIX = MỘT BỘ MIDDLEWARE: .Use() match theo prefix, nên mọi request
// tới prefix đi qua TẤT CẢ middleware đã gắn vào prefix đó. Gắn các bộ middleware
// khác nhau (ví dụ capability khác nhau) cho từng route cùng prefix sẽ làm các
// middleware chặn nhầm request của nhau. Route cùng prefix cần quyền khác nhau
// thì kiểm tra quyền trong handler (middleware.HasCapability).
//
// ============================================================================

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// RegisterRouteWithMiddleware đăng ký MỘT route lẻ với middleware qua .Use() (cách đúng theo Fiber v3).
// Chỉ dùng khi prefix đó có đúng một route; nhiều route chung prefix thì dùng
// RegisterGroupRoutes để middleware chỉ được gắn một lần và không bị trộn nhiều
// bộ middleware trên cùng prefix.
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	routeGroup := RegisterGroupRoutes(router, prefix, middlewares)

	// Đăng ký route với path tương đối (không có prefix vì đã có trong group)
	switch method {
	case "GET":
		routeGroup.Get(path, handler)
	case "POST":
		routeGroup.Post(path, handler)
	case "PUT":
		routeGroup.Put(path, handler)
	case "DELETE":
		routeGroup.Delete(path, handler)
	}
}

// RegisterGroupRoutes tạo group cho prefix và gắn bộ middleware đúng MỘT lần qua .Use(),
// rồi trả về group để domain router đăng ký route trên đó.
// Lưu ý: .Use() của Fiber v3 match theo PREFIX, nên mọi request tới prefix này
// (bất kể method/path con) đều đi qua toàn bộ middleware của group. Vì vậy mỗi
// prefix chỉ được mang MỘT bộ middleware; các route cùng prefix cần quyền khác nhau
// phải kiểm tra quyền trong handler (middleware.HasCapability), không gắn thêm
// middleware capability theo từng route.
func RegisterGroupRoutes(router fiber.Router, prefix string, middlewares []fiber.Handler) fiber.Router {
	group := router.Group(prefix)
	for _, mw := range middlewares {
		group.Use(mw)
	}
	return group
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes thiết lập tất cả các route cho ứng dụng.
// Caller truyền lần lượt Register của từng domain để tránh import cycle.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
