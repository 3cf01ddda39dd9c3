package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"

	"github.com/clinicdesk/clinicdesk_backend/internal/service/auth"
	"github.com/clinicdesk/clinicdesk_backend/internal/store"
)

const (
	sessionSweepInterval = 5 * time.Minute
	storeSampleInterval  = 15 * time.Second
)

// WorkerModule registers the background loops: expired-session sweeping and
// store gauge sampling.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc      fx.Lifecycle
	Store   *store.Store
	AuthSvc auth.Service
}

var (
	storePatients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "clinicdesk_store_patients",
		Help: "Number of registered patients held in memory.",
	})
	storeAppointments = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "clinicdesk_store_appointments",
		Help: "Number of appointments held in memory.",
	})
	storeConsultations = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "clinicdesk_store_consultations",
		Help: "Number of consultation records held in memory.",
	})
	storeBills = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "clinicdesk_store_bills",
		Help: "Number of bills held in memory.",
	})
	sessionsSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinicdesk_sessions_swept_total",
		Help: "Expired sessions removed by the background sweeper.",
	})
)

func RegisterWorkers(p WorkerParams) {
	ctx, cancel := context.WithCancel(context.Background())

	p.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go runSessionSweeper(ctx, p.AuthSvc)
			go runStoreSampler(ctx, p.Store)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func runSessionSweeper(ctx context.Context, svc auth.Service) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := svc.SweepSessions(now); n > 0 {
				sessionsSwept.Add(float64(n))
				slog.Debug("swept expired sessions", "count", n)
			}
		}
	}
}

func runStoreSampler(ctx context.Context, st *store.Store) {
	sample := func() {
		patients, appointments, consultations, bills := st.Counts()
		storePatients.Set(float64(patients))
		storeAppointments.Set(float64(appointments))
		storeConsultations.Set(float64(consultations))
		storeBills.Set(float64(bills))
	}
	sample()

	ticker := time.NewTicker(storeSampleInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sample()
		}
	}
}
