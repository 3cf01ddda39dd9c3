package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/clinicdesk/clinicdesk_backend/config"
	"github.com/clinicdesk/clinicdesk_backend/internal/fixtures"
	"github.com/clinicdesk/clinicdesk_backend/internal/service/appointment"
	"github.com/clinicdesk/clinicdesk_backend/internal/service/auth"
	"github.com/clinicdesk/clinicdesk_backend/internal/service/billing"
	"github.com/clinicdesk/clinicdesk_backend/internal/service/consultation"
	"github.com/clinicdesk/clinicdesk_backend/internal/service/dashboard"
	"github.com/clinicdesk/clinicdesk_backend/internal/service/patient"
	"github.com/clinicdesk/clinicdesk_backend/internal/service/pharmacy"
	"github.com/clinicdesk/clinicdesk_backend/internal/service/report"
	"github.com/clinicdesk/clinicdesk_backend/internal/store"
	"github.com/clinicdesk/clinicdesk_backend/pkg/authorize"
	pasetotoken "github.com/clinicdesk/clinicdesk_backend/pkg/paseto"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideAuthService,
		ProvidePatientService,
		ProvideAppointmentService,
		ProvideConsultationService,
		ProvidePharmacyService,
		ProvideBillingService,
		ProvideDashboardService,
		ProvideReportService,
		ProvidePasetoManager,
	),
)

func ProvideAuthService(
	seed *fixtures.Seed,
	paseto *pasetotoken.Manager,
	authz authorize.IAuthorization,
	cfg *config.Config,
) auth.Service {
	ttl := time.Duration(cfg.Authentication.SessionTTLMinutes) * time.Minute
	return auth.New(seed.Users, paseto, authz, ttl)
}

func ProvidePatientService(st *store.Store) patient.Service {
	return patient.New(st)
}

func ProvideAppointmentService(st *store.Store) appointment.Service {
	return appointment.New(st)
}

func ProvideConsultationService(st *store.Store) consultation.Service {
	return consultation.New(st)
}

func ProvidePharmacyService(st *store.Store) pharmacy.Service {
	return pharmacy.New(st)
}

func ProvideBillingService(st *store.Store) billing.Service {
	return billing.New(st)
}

func ProvideDashboardService(st *store.Store) dashboard.Service {
	return dashboard.New(st)
}

func ProvideReportService(st *store.Store) report.Service {
	return report.New(st)
}

func ProvidePasetoManager(cfg *config.Config) (*pasetotoken.Manager, error) {
	return pasetotoken.NewPasetoManager(cfg)
}
