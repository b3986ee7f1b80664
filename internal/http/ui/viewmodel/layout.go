package viewmodel

import (
	"strings"

	domainauth "github.com/ghugn/chem-class-git/internal/domain/auth"
)

// Brand is shown in both shells and on the auth pages.
const Brand = "ChemClass"

// Themes toggled by the top bar.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// User represents the signed-in user as shown by the top bar.
type User struct {
	Name  string
	Email string
	Role  string
}

// NavItem is one entry of a shell's sidebar.
type NavItem struct {
	Label  string
	Href   string
	Icon   string
	Active bool
}

// Flash is a one-shot banner carried across a redirect.
type Flash struct {
	Kind    string // "success" or "error"
	Message string
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	Theme           string
	Shell           string // "admin", "student" or "" for public pages
	IsAuthenticated bool
	User            *User
	Nav             []NavItem
	Flash           *Flash
}

// Dark reports whether the dark theme is active.
func (l Layout) Dark() bool { return l.Theme == ThemeDark }

// LayoutProvider exposes layout metadata for renderer utilities.
type LayoutProvider interface {
	LayoutData() *Layout
}

//nolint:gochecknoglobals // static nav lists
var (
	adminNav = []NavItem{
		{Label: "Tổng quan", Href: "/admin", Icon: "home"},
		{Label: "Quản lý lớp", Href: "/admin/classes", Icon: "layers"},
		{Label: "Học sinh", Href: "/admin/students", Icon: "users"},
		{Label: "Điểm thi", Href: "/admin/grades", Icon: "award"},
		{Label: "Tài liệu", Href: "/admin/documents", Icon: "book"},
		{Label: "Học phí", Href: "/admin/payments", Icon: "wallet"},
		{Label: "Lịch dạy", Href: "/admin/schedule", Icon: "calendar"},
		{Label: "Cài đặt", Href: "/admin/settings", Icon: "settings"},
	}
	studentNav = []NavItem{
		{Label: "Tổng quan", Href: "/student", Icon: "home"},
		{Label: "Điểm thi", Href: "/student/grades", Icon: "award"},
		{Label: "Tài liệu môn học", Href: "/student/documents", Icon: "book"},
		{Label: "Học phí", Href: "/student/payments", Icon: "wallet"},
		{Label: "Cài đặt", Href: "/student/settings", Icon: "settings"},
	}
)

// ShellFor returns the shell name and nav list of a role, marking the entry
// matching path as active. Unknown roles get no shell.
func ShellFor(role domainauth.Role, path string) (string, []NavItem) {
	var (
		shell string
		items []NavItem
	)
	switch role {
	case domainauth.RoleAdmin:
		shell, items = "admin", adminNav
	case domainauth.RoleStudent:
		shell, items = "student", studentNav
	default:
		return "", nil
	}

	out := make([]NavItem, len(items))
	copy(out, items)
	home := role.HomePath()
	for i := range out {
		href := out[i].Href
		if href == home {
			out[i].Active = path == home || path == home+"/"
			continue
		}
		out[i].Active = path == href || strings.HasPrefix(path, href+"/")
	}
	return shell, out
}
