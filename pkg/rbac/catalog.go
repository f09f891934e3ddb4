package rbac

import "learnhub_client/internal/model"

// Permission catalog. Closed set; admin holds all of it.
const (
	PermViewCourses    model.Permission = "view_courses"
	PermCreateCourses  model.Permission = "create_courses"
	PermEditCourses    model.Permission = "edit_courses"
	PermDeleteCourses  model.Permission = "delete_courses"
	PermPublishCourses model.Permission = "publish_courses"
	PermEnrollCourses  model.Permission = "enroll_courses"

	PermViewModules   model.Permission = "view_modules"
	PermCreateModules model.Permission = "create_modules"
	PermEditModules   model.Permission = "edit_modules"
	PermDeleteModules model.Permission = "delete_modules"

	PermViewAssessments   model.Permission = "view_assessments"
	PermCreateAssessments model.Permission = "create_assessments"
	PermEditAssessments   model.Permission = "edit_assessments"
	PermDeleteAssessments model.Permission = "delete_assessments"
	PermTakeAssessments   model.Permission = "take_assessments"
	PermGradeAssessments  model.Permission = "grade_assessments"

	PermViewSimulations   model.Permission = "view_simulations"
	PermCreateSimulations model.Permission = "create_simulations"
	PermEditSimulations   model.Permission = "edit_simulations"
	PermDeleteSimulations model.Permission = "delete_simulations"
	PermStartSimulations  model.Permission = "start_simulations"

	PermViewUsers         model.Permission = "view_users"
	PermCreateUsers       model.Permission = "create_users"
	PermEditUsers         model.Permission = "edit_users"
	PermDeleteUsers       model.Permission = "delete_users"
	PermManageRoles       model.Permission = "manage_roles"
	PermManagePermissions model.Permission = "manage_permissions"

	PermViewReports   model.Permission = "view_reports"
	PermExportReports model.Permission = "export_reports"
	PermViewAnalytics model.Permission = "view_analytics"

	PermViewInstitutions   model.Permission = "view_institutions"
	PermManageInstitutions model.Permission = "manage_institutions"

	PermViewDashboard    model.Permission = "view_dashboard"
	PermViewGradebook    model.Permission = "view_gradebook"
	PermSendChatMessages model.Permission = "send_chat_messages"
)

var Catalog = []model.Permission{
	PermViewCourses, PermCreateCourses, PermEditCourses, PermDeleteCourses,
	PermPublishCourses, PermEnrollCourses,
	PermViewModules, PermCreateModules, PermEditModules, PermDeleteModules,
	PermViewAssessments, PermCreateAssessments, PermEditAssessments,
	PermDeleteAssessments, PermTakeAssessments, PermGradeAssessments,
	PermViewSimulations, PermCreateSimulations, PermEditSimulations,
	PermDeleteSimulations, PermStartSimulations,
	PermViewUsers, PermCreateUsers, PermEditUsers, PermDeleteUsers,
	PermManageRoles, PermManagePermissions,
	PermViewReports, PermExportReports, PermViewAnalytics,
	PermViewInstitutions, PermManageInstitutions,
	PermViewDashboard, PermViewGradebook, PermSendChatMessages,
}

var rolePermissions = map[model.Role][]model.Permission{
	model.RoleAdmin: Catalog,

	model.RoleInstructor: {
		PermViewCourses, PermCreateCourses, PermEditCourses, PermDeleteCourses,
		PermPublishCourses,
		PermViewModules, PermCreateModules, PermEditModules, PermDeleteModules,
		PermViewAssessments, PermCreateAssessments, PermEditAssessments,
		PermDeleteAssessments, PermGradeAssessments,
		PermViewSimulations, PermCreateSimulations, PermEditSimulations,
		PermDeleteSimulations, PermStartSimulations,
		PermViewUsers, PermCreateUsers, PermEditUsers,
		PermViewReports, PermExportReports, PermViewAnalytics,
		PermViewDashboard, PermViewGradebook, PermSendChatMessages,
	},

	model.RolePartnerInstructor: {
		PermViewCourses,
		PermViewModules,
		PermViewAssessments, PermGradeAssessments,
		PermViewSimulations, PermStartSimulations,
		PermViewUsers,
		PermViewReports,
		PermViewDashboard, PermViewGradebook, PermSendChatMessages,
	},

	model.RoleStudent: {
		PermViewCourses, PermEnrollCourses,
		PermViewModules,
		PermViewAssessments, PermTakeAssessments,
		PermViewSimulations, PermStartSimulations,
		PermViewDashboard, PermSendChatMessages,
	},

	model.RoleGuest: {
		PermViewCourses,
		PermViewModules,
		PermViewAssessments,
		PermViewSimulations, PermStartSimulations,
		PermViewDashboard, PermSendChatMessages,
	},
}

// Whitelists for per-user custom grants. An administrator may only toggle
// permissions from the list matching the target's role.
var guestGrantable = map[model.Permission]bool{
	PermViewCourses:      true,
	PermViewModules:      true,
	PermViewAssessments:  true,
	PermTakeAssessments:  true,
	PermViewSimulations:  true,
	PermStartSimulations: true,
	PermViewDashboard:    true,
	PermSendChatMessages: true,
}

var partnerInstructorGrantable = map[model.Permission]bool{
	PermViewCourses:       true,
	PermEditCourses:       true,
	PermViewModules:       true,
	PermEditModules:       true,
	PermViewAssessments:   true,
	PermCreateAssessments: true,
	PermEditAssessments:   true,
	PermGradeAssessments:  true,
	PermViewSimulations:   true,
	PermStartSimulations:  true,
	PermViewUsers:         true,
	PermViewReports:       true,
	PermExportReports:     true,
	PermViewAnalytics:     true,
	PermViewDashboard:     true,
	PermViewGradebook:     true,
	PermSendChatMessages:  true,
}
