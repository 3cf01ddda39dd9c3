package authorize

type Action string
type Permission string
type Role string

// ----------------------------
// Actions
// ----------------------------

const (
	ActionAccess Action = "access" // read/use the screens behind a permission tag
	ActionExport Action = "export" // produce CSV/PDF artifacts

	WildcardAction Action = "*"
)

var KnownActions = map[Action]struct{}{
	ActionAccess: {},
	ActionExport: {},
}

// ----------------------------
// Permissions (the menu/route gating tags)
// ----------------------------

const (
	WildcardPermission Permission = "*"

	PermPatientManagement  Permission = "patient_management"
	PermAppointments       Permission = "appointments"
	PermConsultation       Permission = "consultation"
	PermPrescription       Permission = "prescription"
	PermPharmacy           Permission = "pharmacy"
	PermMedicineManagement Permission = "medicine_management"
	PermBilling            Permission = "billing"
	PermReports            Permission = "reports"
)

var KnownPermissions = map[Permission]struct{}{
	PermPatientManagement: {}, PermAppointments: {}, PermConsultation: {},
	PermPrescription: {}, PermPharmacy: {}, PermMedicineManagement: {},
	PermBilling: {}, PermReports: {},
}

// ----------------------------
// Roles (the fixture roster's staff roles)
// ----------------------------

const (
	WildcardRole Role = "*"

	RoleAdmin        Role = "Admin"
	RoleDoctor       Role = "Doctor"
	RoleNurse        Role = "Nurse"
	RolePharmacist   Role = "Pharmacist"
	RoleReceptionist Role = "Receptionist"
)

var KnownRoles = map[Role]struct{}{
	RoleAdmin: {}, RoleDoctor: {}, RoleNurse: {},
	RolePharmacist: {}, RoleReceptionist: {},
}

// PermissionPolicy is one p-rule: role can perform action on permission tag.
type PermissionPolicy struct {
	Subject Role
	Object  Permission
	Action  Action
}
