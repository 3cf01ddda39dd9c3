package app

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/clinicdesk/clinicdesk_backend/config"
	"github.com/clinicdesk/clinicdesk_backend/internal/fixtures"
	"github.com/clinicdesk/clinicdesk_backend/internal/store"
	"github.com/clinicdesk/clinicdesk_backend/pkg/authorize"
	"github.com/clinicdesk/clinicdesk_backend/pkg/observability"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideSeed),
	fx.Provide(ProvideStore),
	fx.Provide(ProvideAuthorization),
	fx.Provide(ProvideOTel),
)

// ProvideSeed loads the demo fixtures once; the store and the auth service
// both draw from the same seed.
func ProvideSeed(cfg *config.Config) (*fixtures.Seed, error) {
	return fixtures.LoadWith(fixtures.Options{
		DemoPassword:        cfg.Seed.DemoPassword,
		IncludeDemoPatients: cfg.Seed.IncludeDemoPatients,
	})
}

func ProvideStore(seed *fixtures.Seed) (*store.Store, error) {
	st := store.New()
	if err := fixtures.Apply(st, seed); err != nil {
		return nil, err
	}
	p, a, _, _ := st.Counts()
	slog.Info("store seeded",
		"doctors", len(seed.Doctors),
		"medicines", len(seed.Medicines),
		"patients", p,
		"appointments", a,
	)
	return st, nil
}

func ProvideAuthorization(seed *fixtures.Seed) (authorize.IAuthorization, error) {
	enforcer, err := authorize.NewEnforcer()
	if err != nil {
		return nil, err
	}
	auth, err := authorize.NewAuthorization(enforcer)
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	if err := authorize.SeedDefaultPolicies(ctx, auth); err != nil {
		return nil, err
	}
	for _, u := range seed.Users {
		role := authorize.Role(u.Role)
		if _, ok := authorize.KnownRoles[role]; !ok {
			slog.Warn("fixture user has unknown role, skipping grant", "user", u.ID, "role", u.Role)
			continue
		}
		if _, err := auth.AssignRole(ctx, u.ID, role); err != nil {
			return nil, err
		}
	}
	return auth, nil
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(), observability.Config{
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: cfg.Observability.ServiceVersion,
		Environment:    cfg.Server.Environment,
		OTLPEndpoint:   cfg.Observability.Tracing.OTLPEndpoint,
		OTLPInsecure:   cfg.Observability.Tracing.OTLPInsecure,
		SamplingRate:   cfg.Observability.Tracing.SamplingRate,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
