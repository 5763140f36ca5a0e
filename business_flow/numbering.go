package businessflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirphl/ppp-rental/config"
	"github.com/amirphl/ppp-rental/numbering"
	"github.com/amirphl/ppp-rental/repository"
	"github.com/amirphl/ppp-rental/utils"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Numbering streams
const (
	streamQuotes      = "quotes"
	streamGuestQuotes = "guest_quotes"
	streamAssessments = "assessments"
)

// NumberingLock serializes number issuing of one stream across instances.
type NumberingLock interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// NoopNumberingLock relies on the unique index alone.
type NoopNumberingLock struct{}

func (NoopNumberingLock) Acquire(context.Context, string) (func(), error) {
	return func() {}, nil
}

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisNumberingLock is a SETNX lock with a TTL. Acquire polls until the lock
// is free or wait elapses.
type RedisNumberingLock struct {
	rc     *redis.Client
	prefix string
	ttl    time.Duration
	wait   time.Duration
	poll   time.Duration
}

func NewRedisNumberingLock(rc *redis.Client, prefix string, ttl time.Duration) *RedisNumberingLock {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &RedisNumberingLock{rc: rc, prefix: prefix, ttl: ttl, wait: ttl, poll: 25 * time.Millisecond}
}

func (l *RedisNumberingLock) Acquire(ctx context.Context, key string) (func(), error) {
	lockKey := l.prefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.rc.SetNX(ctx, lockKey, token, l.ttl).Result()
		if err != nil {
			return nil, NewBusinessError("NUMBERING_LOCK_FAILED", "Failed to acquire numbering lock", err)
		}
		if ok {
			return func() {
				_ = releaseScript.Run(context.Background(), l.rc, []string{lockKey}, token).Err()
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, NewBusinessError("NUMBERING_LOCK_BUSY", "Another request is issuing a number", ErrNumberingLockBusy)
		}

		select {
		case <-ctx.Done():
			return nil, NewBusinessError("NUMBERING_LOCK_BUSY", "Another request is issuing a number", errors.Join(ErrNumberingLockBusy, ctx.Err()))
		case <-time.After(l.poll):
		}
	}
}

// numberSource computes the candidate number of an entity created at at.
// attempt counts the collisions seen so far.
type numberSource func(ctx context.Context, at time.Time, attempt int) (string, error)

func sequentialSource(svc *numbering.Service) numberSource {
	return func(ctx context.Context, at time.Time, attempt int) (string, error) {
		return svc.NextAfter(ctx, at, int64(attempt))
	}
}

func guestSource(prefix string, loc *time.Location) numberSource {
	return func(_ context.Context, at time.Time, attempt int) (string, error) {
		return numbering.FormatGuest(prefix, at.Add(time.Duration(attempt)*time.Millisecond), loc), nil
	}
}

// Numberer issues the number of a new entity and inserts it in the same
// transaction. A duplicate number is logged, counted and retried.
type Numberer struct {
	db         *gorm.DB
	stream     string
	lockKey    string
	source     numberSource
	lock       NumberingLock
	maxRetries int
	logger     *zap.Logger
	// dayScoped streams restart every day, so their numbers are unique per
	// local day only.
	dayScoped bool
	loc       *time.Location
}

// Day is the uniqueness scope of a number issued at at: the local date for
// streams that restart daily, empty for globally unique streams.
func (n *Numberer) Day(at time.Time) string {
	if !n.dayScoped {
		return ""
	}
	return at.In(n.loc).Format(utils.NumberDateLayout)
}

// Run numbers and inserts an entity created at at. insert receives the
// transaction context and the candidate number.
func (n *Numberer) Run(ctx context.Context, at time.Time, insert func(ctx context.Context, number string) error) (string, error) {
	release, err := n.lock.Acquire(ctx, n.lockKey)
	if err != nil {
		return "", err
	}
	defer release()

	for attempt := 0; attempt < n.maxRetries; attempt++ {
		var number string
		err := repository.WithTransaction(ctx, n.db, func(txCtx context.Context) error {
			var err error
			number, err = n.source(txCtx, at, attempt)
			if err != nil {
				return NewBusinessError("NUMBERING_FAILED", "Failed to compute number", err)
			}
			return insert(txCtx, number)
		})
		if err == nil {
			return number, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", err
		}

		numberingCollisionsTotal.WithLabelValues(n.stream).Inc()
		n.logger.Warn("Numbering collision detected",
			zap.String("stream", n.stream),
			zap.String("number", number),
			zap.Int("attempt", attempt+1),
		)
	}

	return "", NewBusinessErrorf("QUOTE_NUMBER_COLLISION", "Could not issue a unique %s number", ErrConcurrentNumberingCollision, n.stream)
}

// NumberingDeps are the collaborators of every numbering stream.
type NumberingDeps struct {
	DB          *gorm.DB
	Config      config.QuoteConfig
	Location    *time.Location
	Lock        NumberingLock
	Counters    repository.SequenceCounterRepository
	Logger      *zap.Logger
	QuoteCount  numbering.DailyCounter
	AssessCount numbering.DailyCounter
}

// Numberers holds one Numberer per stream.
type Numberers struct {
	Quotes      *Numberer
	GuestQuotes *Numberer
	Assessments *Numberer
}

func NewNumberers(deps NumberingDeps) (*Numberers, error) {
	if deps.Lock == nil {
		deps.Lock = NoopNumberingLock{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	guestPrefix := deps.Config.GuestPrefix
	if guestPrefix == "" {
		guestPrefix = utils.GuestQuotePrefix
	}
	retries := deps.Config.NumberingMaxRetries
	if retries < 1 {
		retries = 1
	}

	sequencer := func(stream string, counter numbering.DailyCounter) (numbering.Sequencer, error) {
		switch deps.Config.NumberingStrategy {
		case numbering.StrategyCount, "":
			return numbering.NewCountSequencer(counter, deps.Location), nil
		case numbering.StrategyCounter:
			return numbering.NewCounterSequencer(deps.Counters, stream, deps.Location), nil
		default:
			return nil, fmt.Errorf("unknown numbering strategy %q", deps.Config.NumberingStrategy)
		}
	}

	quoteSeq, err := sequencer(streamQuotes, deps.QuoteCount)
	if err != nil {
		return nil, err
	}
	assessSeq, err := sequencer(streamAssessments, deps.AssessCount)
	if err != nil {
		return nil, err
	}

	newNumberer := func(stream, lockKey string, source numberSource, dayScoped bool) *Numberer {
		return &Numberer{
			dayScoped:  dayScoped,
			loc:        deps.Location,
			db:         deps.DB,
			stream:     stream,
			lockKey:    lockKey,
			source:     source,
			lock:       deps.Lock,
			maxRetries: retries,
			logger:     deps.Logger,
		}
	}

	return &Numberers{
		Quotes:      newNumberer(streamQuotes, utils.QuoteNumberingLockKey, sequentialSource(numbering.NewService(quoteSeq, deps.Location)), true),
		GuestQuotes: newNumberer(streamGuestQuotes, utils.GuestQuoteNumberingLockKey, guestSource(guestPrefix, deps.Location), false),
		Assessments: newNumberer(streamAssessments, utils.AssessmentNumberingLockKey, sequentialSource(numbering.NewService(assessSeq, deps.Location)), true),
	}, nil
}
