// Package observability exposes engine activity as Prometheus metrics,
// wired in through the engine's lifecycle hooks so the runtime itself stays
// free of metric dependencies.
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lstw2025/sv-documentation-platform/pkg/domain"
)

// Metrics holds the collectors for one engine instance.
type Metrics struct {
	responses *prometheus.CounterVec
	autosaves *prometheus.CounterVec
	crisis    prometheus.Counter
	reminders prometheus.Counter
}

// New registers the intake collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		responses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_responses_recorded_total",
				Help: "Total responses recorded, including skip sentinels",
			},
			[]string{"type", "skipped"},
		),
		autosaves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_autosaves_total",
				Help: "Autosave attempts by trigger and outcome",
			},
			[]string{"trigger", "outcome"},
		),
		crisis: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "intake_crisis_flags_total",
			Help: "Free-text responses flagged by the crisis detector",
		}),
		reminders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "intake_break_reminders_total",
			Help: "Break reminders fired",
		}),
	}
	reg.MustRegister(m.responses, m.autosaves, m.crisis, m.reminders)
	return m
}

// Hooks returns lifecycle hooks that record engine activity. Chain them with
// any host hooks via Combine.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnResponse: func(_ context.Context, e *domain.ResponseEvent) {
			skipped := "false"
			if e.Skipped {
				skipped = "true"
			}
			m.responses.WithLabelValues(string(e.Type), skipped).Inc()
		},
		OnAutosave: func(_ context.Context, e *domain.SaveEvent) {
			outcome := "ok"
			if e.Err != nil {
				outcome = "error"
			}
			m.autosaves.WithLabelValues(string(e.Trigger), outcome).Inc()
		},
		OnCrisisDetected: func(_ context.Context, _ *domain.CrisisEvent) {
			m.crisis.Inc()
		},
		OnBreakReminder: func(_ context.Context, _ *domain.ReminderEvent) {
			m.reminders.Inc()
		},
	}
}

// Combine merges hook sets so multiple observers can listen to one engine.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	out.OnCrisisDetected = func(ctx context.Context, e *domain.CrisisEvent) {
		for _, h := range hooks {
			if h.OnCrisisDetected != nil {
				h.OnCrisisDetected(ctx, e)
			}
		}
	}
	out.OnBreakReminder = func(ctx context.Context, e *domain.ReminderEvent) {
		for _, h := range hooks {
			if h.OnBreakReminder != nil {
				h.OnBreakReminder(ctx, e)
			}
		}
	}
	out.OnAutosave = func(ctx context.Context, e *domain.SaveEvent) {
		for _, h := range hooks {
			if h.OnAutosave != nil {
				h.OnAutosave(ctx, e)
			}
		}
	}
	out.OnResponse = func(ctx context.Context, e *domain.ResponseEvent) {
		for _, h := range hooks {
			if h.OnResponse != nil {
				h.OnResponse(ctx, e)
			}
		}
	}
	return out
}
