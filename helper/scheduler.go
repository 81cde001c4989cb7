package helper

import (
	"cinema_booking/booking"
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

var (
	voucherScheduler gocron.Scheduler
	invoiceScheduler *cron.Cron
)

// StartVoucherScheduler expires vouchers every day at 00:05 ICT.
func StartVoucherScheduler(svc *booking.Service) error {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("ICT", 7*3600)),
	)
	if err != nil {
		return err
	}

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(func() {
			if _, err := svc.ExpireVouchers(context.Background()); err != nil {
				log.Error().Err(err).Msg("expire vouchers")
			}
		}),
	)
	if err != nil {
		return err
	}

	voucherScheduler = s
	s.Start()
	log.Info().Msg("voucher scheduler started (00:05 ICT)")
	return nil
}

// StartInvoiceScheduler cancels unpaid invoices older than ttl every minute.
func StartInvoiceScheduler(svc *booking.Service, ttl time.Duration) error {
	invoiceScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := invoiceScheduler.AddFunc("* * * * *", func() {
		if _, err := svc.ExpirePending(context.Background(), ttl); err != nil {
			log.Error().Err(err).Msg("expire pending invoices")
		}
	})
	if err != nil {
		return err
	}

	invoiceScheduler.Start()
	log.Info().Dur("ttl", ttl).Msg("pending invoice scheduler started")
	return nil
}

func StopSchedulers() {
	if invoiceScheduler != nil {
		<-invoiceScheduler.Stop().Done()
	}
	if voucherScheduler != nil {
		if err := voucherScheduler.Shutdown(); err != nil {
			log.Error().Err(err).Msg("stop voucher scheduler")
		}
	}
	log.Info().Msg("schedulers stopped")
}
