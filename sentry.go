package main

import (
	"errors"
	"log"
	"time"

	"github.com/getsentry/sentry-go"

	"eventmod/internal/eventbus"
)

const sentryFlushTimeout = 2 * time.Second

// setupSentry reports failed actions and errors published on the bus.
// With an empty DSN nothing is reported. The returned function flushes
// buffered reports.
func setupSentry(dsn string, bus eventbus.EventBus) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		AttachStacktrace: true,
	}); err != nil {
		return func() {}, err
	}

	offFailed := bus.Subscribe(eventbus.EventActionFailed, func(e eventbus.DomainEvent) {
		failed, ok := e.(eventbus.ActionFailedEvent)
		if !ok || failed.Err == nil {
			return
		}
		sentry.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("action", string(failed.Action))
			scope.SetTag("view", string(failed.View))
			scope.SetExtra("events", failed.EventIDs)
			sentry.CaptureException(failed.Err)
		})
	})
	offError := bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		ev, ok := e.(eventbus.ErrorEvent)
		if !ok {
			return
		}
		err := ev.Err
		if err == nil {
			err = errors.New(ev.Message)
		}
		sentry.WithScope(func(scope *sentry.Scope) {
			if ev.Message != "" {
				scope.SetExtra("message", ev.Message)
			}
			sentry.CaptureException(err)
		})
	})

	log.Printf("Sentry: reporting enabled")
	return func() {
		offFailed()
		offError()
		sentry.Flush(sentryFlushTimeout)
	}, nil
}
