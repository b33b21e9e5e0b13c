package global

import (
	"sync"

	"pharmastaff/config"
	"pharmastaff/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_Staffing_CollectionName chứa tên các collection trong MongoDB
type MongoDB_Staffing_CollectionName struct {
	Shifts              string // Tên collection cho ca làm việc
	ShiftMemberStatuses string // Tên collection cho trạng thái thành viên theo ca
	ShiftInterests      string // Tên collection cho sổ quan tâm (interest ledger)
	ShiftAssignments    string // Tên collection cho gán ca (assignment)
	ShiftAudit          string // Tên collection cho audit log của ca
	Profiles            string // Tên collection cho hồ sơ dược sĩ
	Organizations       string // Tên collection cho tổ chức (nhà thuốc, chuỗi)
	OrgMembers          string // Tên collection cho thành viên tổ chức (directory)
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration // Cấu hình của server
var MongoDB_ColNames MongoDB_Staffing_CollectionName = *new(MongoDB_Staffing_CollectionName)

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
var RegistryShiftLocks = registry.NewRegistry[*sync.Mutex]()        // Registry chứa lock theo từng ca (serialize escalate/assign/interest)

// InitColNames gán tên cố định cho các collection.
// Gọi một lần duy nhất khi khởi động server, trước khi đăng ký collections.
func InitColNames() {
	MongoDB_ColNames.Shifts = "shifts"
	MongoDB_ColNames.ShiftMemberStatuses = "shift_member_statuses"
	MongoDB_ColNames.ShiftInterests = "shift_interests"
	MongoDB_ColNames.ShiftAssignments = "shift_assignments"
	MongoDB_ColNames.ShiftAudit = "shift_audit"
	MongoDB_ColNames.Profiles = "profiles"
	MongoDB_ColNames.Organizations = "organizations"
	MongoDB_ColNames.OrgMembers = "org_members"
}
