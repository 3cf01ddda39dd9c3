package authorize

import (
	"context"
	"log/slog"
)

// SeedDefaultPolicies sets up the baseline role policies for the clinic.
func SeedDefaultPolicies(ctx context.Context, auth IAuthorization) error {
	logger := slog.Default()

	policies := []PermissionPolicy{
		// Admin: god mode (the roster's "all" tag)
		{RoleAdmin, WildcardPermission, WildcardAction},

		// Doctor: consultation notes, prescriptions, reports
		{RoleDoctor, PermConsultation, WildcardAction},
		{RoleDoctor, PermPrescription, WildcardAction},
		{RoleDoctor, PermReports, WildcardAction},

		// Nurse: intake and the visit queue
		{RoleNurse, PermPatientManagement, WildcardAction},
		{RoleNurse, PermAppointments, WildcardAction},

		// Pharmacist: dispensing, the catalog, and the bills it generates
		{RolePharmacist, PermPharmacy, WildcardAction},
		{RolePharmacist, PermMedicineManagement, WildcardAction},
		{RolePharmacist, PermBilling, WildcardAction},

		// Receptionist: front desk, from intake through checkout
		{RoleReceptionist, PermPatientManagement, WildcardAction},
		{RoleReceptionist, PermAppointments, WildcardAction},
		{RoleReceptionist, PermBilling, WildcardAction},
	}

	for _, p := range policies {
		added, err := auth.AddPermission(ctx, p.Subject, p.Object, p.Action)
		if err != nil {
			logger.Error("failed to add policy", "policy", p, "error", err)
			return err
		}
		if added {
			logger.Debug("added policy", "role", p.Subject, "permission", p.Object, "action", p.Action)
		}
	}

	logger.Info("seeded default RBAC policies", "count", len(policies))
	return nil
}
