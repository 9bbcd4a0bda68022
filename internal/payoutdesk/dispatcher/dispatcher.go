package dispatcher

import (
	"context"
	"sync"
	"time"

	"go-payout/internal/payoutdesk/data"
	"go-payout/pkg/logging"
	"go.uber.org/zap"
)

type Sender interface {
	Send(ctx context.Context, notification data.Notification) error
}

type Config struct {
	WorkersCount int
	QueueLength  int
	SendTimeout  time.Duration
}

// Dispatcher delivers notifications in the background. Notify never blocks:
// when the queue is full or the dispatcher is stopped the notification is
// dropped and logged.
type Dispatcher struct {
	sender   Sender
	logger   *logging.ZapLogger
	queue    chan data.Notification
	done     chan struct{}
	// stateMux orders enqueues before Stop so the drain sees every accepted notification.
	stateMux sync.RWMutex
	stopped  bool
	config   Config
}

func New(config Config, sender Sender, logger *logging.ZapLogger) *Dispatcher {
	if config.WorkersCount <= 0 {
		config.WorkersCount = 1
	}
	if config.QueueLength < 0 {
		config.QueueLength = 0
	}
	return &Dispatcher{
		sender: sender,
		logger: logger,
		config: config,
		queue:  make(chan data.Notification, config.QueueLength),
		done:   make(chan struct{}),
	}
}

func (d *Dispatcher) Notify(ctx context.Context, notification data.Notification) {
	d.stateMux.RLock()
	defer d.stateMux.RUnlock()

	if d.stopped {
		d.logger.WarnCtx(
			ctx,
			"dispatcher stopped, notification dropped",
			zap.Int64("withdrawalID", notification.WithdrawalID),
		)
		return
	}

	select {
	case d.queue <- notification:
	default:
		d.logger.WarnCtx(
			ctx,
			"notification queue is full, notification dropped",
			zap.Int64("withdrawalID", notification.WithdrawalID),
		)
	}
}

// Run blocks until Stop is called and every worker has drained the queue.
func (d *Dispatcher) Run() {
	wg := &sync.WaitGroup{}
	for range d.config.WorkersCount {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.worker()
		}()
	}
	wg.Wait()
}

func (d *Dispatcher) Stop() {
	d.stateMux.Lock()
	defer d.stateMux.Unlock()
	if d.stopped {
		return
	}
	d.stopped = true
	close(d.done)
}

func (d *Dispatcher) worker() {
	for {
		select {
		case notification := <-d.queue:
			d.deliver(notification)
		case <-d.done:
			d.drain()
			return
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		select {
		case notification := <-d.queue:
			d.deliver(notification)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(notification data.Notification) {
	ctx := context.Background()
	if d.config.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.SendTimeout)
		defer cancel()
	}
	ctx = logging.WithContextFields(ctx, zap.Int64("withdrawalID", notification.WithdrawalID))

	defer func() {
		if rcv := recover(); rcv != nil {
			d.logger.ErrorCtx(ctx, "panic while sending notification", zap.Any("recover", rcv))
		}
	}()

	if err := d.sender.Send(ctx, notification); err != nil {
		d.logger.WarnCtx(ctx, "failed to send notification", zap.Error(err))
	}
}
