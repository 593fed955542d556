// Package monitor runs the fetch → diff → notify cycle over the active
// searches.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"jobwatch/monitor-service/internal/model"
	"jobwatch/monitor-service/internal/notify"
	"jobwatch/monitor-service/internal/registry"
	"jobwatch/monitor-service/internal/search"
	"jobwatch/monitor-service/internal/source"
	"jobwatch/monitor-service/internal/store"
)

// DefaultSearchPause is the throttle between two fetches within one cycle.
const DefaultSearchPause = time.Second

// Monitor owns the registry for the process lifetime and executes cycles.
// Failures are isolated: a failed fetch empties one search's results, a
// failed notification loses one alert, and neither stops the cycle.
type Monitor struct {
	registry *registry.Registry
	store    store.Store
	fetcher  source.Fetcher
	notifier notify.Notifier
	logger   *slog.Logger
	pause    time.Duration
}

// New constructs a Monitor. pause is the inter-search throttle delay.
func New(
	reg *registry.Registry,
	st store.Store,
	fetcher source.Fetcher,
	notifier notify.Notifier,
	logger *slog.Logger,
	pause time.Duration,
) *Monitor {
	return &Monitor{
		registry: reg,
		store:    st,
		fetcher:  fetcher,
		notifier: notifier,
		logger:   logger,
		pause:    pause,
	}
}

// RunCycle processes every active search once, in registry order. It returns
// early only on context cancellation, checked at each search boundary. Any
// panic escaping the per-search handling is recovered and logged so the
// scheduler can always run the next cycle.
func (m *Monitor) RunCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("cycle aborted by panic", slog.Any("panic", r))
		}
	}()

	for _, s := range m.registry.Active() {
		if ctx.Err() != nil {
			return
		}

		offers, err := m.fetcher.Fetch(ctx, s)
		if err != nil {
			m.logger.Error("fetch failed, skipping search this cycle",
				slog.String("search_id", s.ID()),
				slog.String("error", err.Error()),
			)
			offers = nil
		}

		if len(offers) > 0 {
			sent := m.processOffers(ctx, s, offers)
			m.logger.Info("processed offers",
				slog.String("search_id", s.ID()),
				slog.Int("offers", len(offers)),
				slog.Int("new", sent),
			)
		}

		if !sleepCtx(ctx, m.pause) {
			return
		}
	}
}

// processOffers records and notifies every offer not seen before, in source
// order, and returns the number of new offers. A notification failure does
// not roll back the store record: at-most-once delivery wins over
// at-least-once.
func (m *Monitor) processOffers(ctx context.Context, s search.Search, offers []model.GroupedOffer) int {
	var newOffers int
	for _, offer := range offers {
		key := s.OfferKey(offer.GroupID)
		if m.store.HasOffer(ctx, key) {
			continue
		}
		newOffers++

		m.store.RecordOffer(ctx, key, offer.Snapshot())

		if err := m.notifier.Send(ctx, FormatAlert(s, offer)); err != nil {
			m.logger.Error("alert delivery failed",
				slog.String("offer_key", key),
				slog.String("error", err.Error()),
			)
			continue
		}
		m.logger.Info("sent alert",
			slog.String("offer_key", key),
			slog.String("job_title", offer.JobTitle),
		)
	}
	return newOffers
}

// FormatAlert renders the notification message for one new offer.
func FormatAlert(s search.Search, offer model.GroupedOffer) string {
	salary := offer.SalaryDisplayText
	if salary == "" {
		salary = "Not specified"
	}
	return fmt.Sprintf(
		"🚨 New job offer: %s!\n\n"+
			"🔍 Search: %s\n\n"+
			"🏢 Company: %s\n"+
			"📍 Location: %s\n"+
			"💼 Level: %s\n"+
			"🔧 Technologies: %s\n"+
			"💰 Salary: %s\n"+
			"🔗 Link: %s\n\n"+
			"📅 Published: %s",
		offer.JobTitle,
		s.String(),
		offer.CompanyName,
		offer.Workplace(),
		strings.Join(offer.PositionLevels, ", "),
		strings.Join(offer.Technologies, ", "),
		salary,
		offer.Link(),
		offer.LastPublicated,
	)
}

// sleepCtx sleeps for d unless the context ends first. Returns false when
// interrupted.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
