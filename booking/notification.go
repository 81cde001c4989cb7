package booking

import (
	"cinema_booking/loyalty"
	"context"

	"github.com/rs/zerolog/log"
)

type pendingMessage struct {
	accountID uint
	message   string
}

// deferredNotifications holds rank messages until the surrounding
// transaction commits, so a rolled back booking never announces an upgrade.
type deferredNotifications struct {
	target  loyalty.NotificationStore
	pending []pendingMessage
}

func deferNotifications(target loyalty.NotificationStore) *deferredNotifications {
	return &deferredNotifications{target: target}
}

func (d *deferredNotifications) Put(_ context.Context, accountID uint, message string) error {
	d.pending = append(d.pending, pendingMessage{accountID: accountID, message: message})
	return nil
}

func (d *deferredNotifications) Take(ctx context.Context, accountID uint) (string, bool, error) {
	return d.target.Take(ctx, accountID)
}

func (d *deferredNotifications) flush(ctx context.Context) {
	for _, p := range d.pending {
		if err := d.target.Put(ctx, p.accountID, p.message); err != nil {
			log.Error().Err(err).Uint("accountId", p.accountID).Msg("queue rank notification")
		}
	}
	d.pending = nil
}
