package payinbox

import (
	"regexp"
	"time"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/payinbox/payinbox/errors"
)

var (
	// DefaultLogger is used for all block info that have not set
	// anything themselves.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the RegExp to ensure valid chain IDs.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// BlockInfo carries the framework-defined information down the
// Decorator/Handler stack: which execution slot we are in, the
// canonical "now" of the host, and a logger. Handlers must use this
// time source for every temporal decision so that all operations in a
// slot observe the same clock.
type BlockInfo struct {
	height  int64
	now     time.Time
	chainID string
	logger  log.Logger
}

// NewBlockInfo creates a BlockInfo struct with current context of where
// it is being executed.
func NewBlockInfo(height int64, now time.Time, chainID string, logger log.Logger) (BlockInfo, error) {
	if !IsValidChainID(chainID) {
		return BlockInfo{}, errors.Wrap(errors.ErrInput, "chainID invalid")
	}
	if logger == nil {
		logger = DefaultLogger
	}
	return BlockInfo{
		height:  height,
		now:     now,
		chainID: chainID,
		logger:  logger,
	}, nil
}

func (b BlockInfo) ChainID() string {
	return b.chainID
}

func (b BlockInfo) Height() int64 {
	return b.height
}

func (b BlockInfo) BlockTime() time.Time {
	return b.now
}

func (b BlockInfo) UnixTime() UnixTime {
	return AsUnixTime(b.now)
}

func (b BlockInfo) Logger() log.Logger {
	return b.logger
}

// WithLogInfo accepts keyvalue pairs, and returns another block info
// like this, after passing all the keyvals to the Logger.
func (b BlockInfo) WithLogInfo(keyvals ...interface{}) BlockInfo {
	b.logger = b.logger.With(keyvals...)
	return b
}

// IsExpired returns true if given time is in the past as compared to
// the "now" as declared for the block. Expiration is inclusive, meaning
// that if current time is equal to the expiration time than this
// function returns true.
func (b BlockInfo) IsExpired(t UnixTime) bool {
	return t <= b.UnixTime()
}

// InThePast returns true if given time is in the past compared to the
// current time as declared in the block info. Keep in mind that this
// function is not inclusive of current time. If given time is equal to
// "now" then this function returns false.
func (b BlockInfo) InThePast(t time.Time) bool {
	return t.Before(b.now)
}

// InTheFuture returns true if given time is in the future compared to
// the current time as declared in the block info. Keep in mind that
// this function is not inclusive of current time. If given time is
// equal to "now" then this function returns false.
func (b BlockInfo) InTheFuture(t time.Time) bool {
	return t.After(b.now)
}
