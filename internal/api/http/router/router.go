package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/clinicdesk/clinicdesk_backend/config"
	"github.com/clinicdesk/clinicdesk_backend/internal/api/http/handler"
	"github.com/clinicdesk/clinicdesk_backend/internal/api/http/middleware"
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

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg             *config.Config
	Store           *store.Store
	Auth            authorize.IAuthorization
	PasetoMgr       *pasetotoken.Manager
	AuthSvc         auth.Service
	PatientSvc      patient.Service
	AppointmentSvc  appointment.Service
	ConsultationSvc consultation.Service
	PharmacySvc     pharmacy.Service
	BillingSvc      billing.Service
	DashboardSvc    dashboard.Service
	ReportSvc       report.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Initialize Middlewares
	authRequired := middleware.AuthRequired(r.p.PasetoMgr, r.p.AuthSvc)

	// Permission helper
	requirePerm := func(perm authorize.Permission, act authorize.Action) fiber.Handler {
		return middleware.RequirePermission(r.p.Auth, perm, act)
	}

	// 3. Initialize Handlers
	authH := handler.NewAuthHandler(r.p.AuthSvc)
	patientH := handler.NewPatientHandler(r.p.PatientSvc)
	doctorH := handler.NewDoctorHandler(r.p.Store, r.p.AppointmentSvc)
	appointmentH := handler.NewAppointmentHandler(r.p.AppointmentSvc)
	consultationH := handler.NewConsultationHandler(r.p.ConsultationSvc)
	pharmacyH := handler.NewPharmacyHandler(r.p.PharmacySvc)
	billingH := handler.NewBillingHandler(r.p.BillingSvc)
	dashboardH := handler.NewDashboardHandler(r.p.DashboardSvc)
	reportH := handler.NewReportHandler(r.p.ReportSvc)

	api := app.Group("/api/v1")

	// 4. Delegate to sub-files
	r.registerAuthRoutes(api, authH, authRequired)
	r.registerPatientRoutes(api, patientH, authRequired, requirePerm)
	r.registerDoctorRoutes(api, doctorH, authRequired)
	r.registerAppointmentRoutes(api, appointmentH, authRequired, requirePerm)
	r.registerConsultationRoutes(api, consultationH, authRequired, requirePerm)
	r.registerPharmacyRoutes(api, pharmacyH, authRequired, requirePerm)
	r.registerBillingRoutes(api, billingH, authRequired, requirePerm)
	r.registerDashboardRoutes(api, dashboardH, authRequired)
	r.registerReportRoutes(api, reportH, authRequired, requirePerm)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		// Ready once the catalogs are seeded.
		Probe: func(c fiber.Ctx) bool { return len(r.p.Store.Doctors()) > 0 },
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
