package custody

import (
	"github.com/tendermint/tendermint/libs/log"

	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/coin"
)

// CreatedEvent is emitted after a new custody record was funded.
type CreatedEvent struct {
	Sender               payinbox.Address
	RecipientFingerprint []byte
	CustodyAccount       payinbox.Address
	Amount               coin.Coin
	ExpiresAt            payinbox.UnixTime
}

// ClaimedEvent is emitted after funds were released to a destination.
type ClaimedEvent struct {
	Sender               payinbox.Address
	RecipientFingerprint []byte
	Destination          payinbox.Address
	Amount               coin.Coin
}

// CancelledEvent is emitted after a sender took their funds back.
type CancelledEvent struct {
	Sender               payinbox.Address
	RecipientFingerprint []byte
	Amount               coin.Coin
}

// ReclaimedEvent is emitted after an expired record was swept back to
// its sender.
type ReclaimedEvent struct {
	Sender               payinbox.Address
	RecipientFingerprint []byte
	Amount               coin.Coin
}

// EventSink receives a notification for every settled state
// transition. Sinks are fire and forget, they cannot fail a transition
// and must not be used to influence one.
type EventSink interface {
	CustodyCreated(CreatedEvent)
	CustodyClaimed(ClaimedEvent)
	CustodyCancelled(CancelledEvent)
	CustodyReclaimed(ReclaimedEvent)
}

// NopSink discards every event.
type NopSink struct{}

var _ EventSink = NopSink{}

func (NopSink) CustodyCreated(CreatedEvent)     {}
func (NopSink) CustodyClaimed(ClaimedEvent)     {}
func (NopSink) CustodyCancelled(CancelledEvent) {}
func (NopSink) CustodyReclaimed(ReclaimedEvent) {}

// LogEmitter writes every event to a structured logger.
type LogEmitter struct {
	logger log.Logger
}

var _ EventSink = LogEmitter{}

// NewLogEmitter returns a sink logging all events through the given
// logger.
func NewLogEmitter(logger log.Logger) LogEmitter {
	if logger == nil {
		logger = payinbox.DefaultLogger
	}
	return LogEmitter{logger: logger}
}

func (e LogEmitter) CustodyCreated(ev CreatedEvent) {
	e.logger.Info("custody created",
		"sender", ev.Sender,
		"custody_account", ev.CustodyAccount,
		"amount", ev.Amount.String(),
		"expires_at", ev.ExpiresAt.String(),
	)
}

func (e LogEmitter) CustodyClaimed(ev ClaimedEvent) {
	e.logger.Info("custody claimed",
		"sender", ev.Sender,
		"destination", ev.Destination,
		"amount", ev.Amount.String(),
	)
}

func (e LogEmitter) CustodyCancelled(ev CancelledEvent) {
	e.logger.Info("custody cancelled",
		"sender", ev.Sender,
		"amount", ev.Amount.String(),
	)
}

func (e LogEmitter) CustodyReclaimed(ev ReclaimedEvent) {
	e.logger.Info("custody reclaimed",
		"sender", ev.Sender,
		"amount", ev.Amount.String(),
	)
}
