package httpx

// CurrentPage constants identify pages in templates and navigation.
const (
	// Public pages.
	PageLogin    = "login"
	PageRegister = "register"

	// Admin subtree.
	PageAdminDashboard = "admin-dashboard"
	PageAdminClasses   = "admin-classes"
	PageAdminStudents  = "admin-students"
	PageAdminGrades    = "admin-grades"
	PageAdminDocuments = "admin-documents"
	PageAdminPayments  = "admin-payments"
	PageAdminSchedule  = "admin-schedule"
	PageAdminSettings  = "admin-settings"

	// Student subtree.
	PageStudentDashboard = "student-dashboard"
	PageStudentGrades    = "student-grades"
	PageStudentDocuments = "student-documents"
	PageStudentPayments  = "student-payments"
	PageStudentSettings  = "student-settings"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
	StaticPathFromRoot   = "frontend/static"
)

// Shared user-facing messages.
const (
	msgSaved         = "Cập nhật thành công!"
	msgGenericError  = "Có lỗi xảy ra"
	msgLoginFailed   = "Login failed"
	msgRegisterFail  = "Registration failed"
	msgPickClass     = "Vui lòng chọn lớp trước"
	msgFillAllFields = "Vui lòng điền đủ thông tin"
	msgDeleted       = "Đã xóa thành công!"
	msgCreated       = "Tạo mới thành công!"
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageLogin:            "login-content",
	PageRegister:         "register-content",
	PageAdminDashboard:   "admin-dashboard-content",
	PageAdminClasses:     "admin-classes-content",
	PageAdminStudents:    "admin-students-content",
	PageAdminGrades:      "admin-grades-content",
	PageAdminDocuments:   "admin-documents-content",
	PageAdminPayments:    "admin-payments-content",
	PageAdminSchedule:    "admin-schedule-content",
	PageAdminSettings:    "settings-content",
	PageStudentDashboard: "student-dashboard-content",
	PageStudentGrades:    "student-grades-content",
	PageStudentDocuments: "student-documents-content",
	PageStudentPayments:  "student-payments-content",
	PageStudentSettings:  "settings-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Unknown pages fall back to the login form.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "login-content"
}
