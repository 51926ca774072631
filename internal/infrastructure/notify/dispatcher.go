// Package notify delivers transactional mail off the request path so a slow
// or failing mail relay never stalls an HTTP handler.
package notify

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

type resetMail struct {
	Email  string
	Ticket string
}

// Dispatcher routes reset mail to a fixed set of workers using consistent
// hashing on the recipient address, so retries for one recipient never
// reorder behind another's backlog.
type Dispatcher struct {
	workers []chan resetMail
	mailer  ports.Mailer
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan resetMail, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan resetMail, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// EnqueuePasswordReset hands a reset mail to the worker responsible for the
// recipient. Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) EnqueuePasswordReset(email, ticket string) {
	d.workers[d.shardIndex(email)] <- resetMail{Email: email, Ticket: ticket}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan resetMail) {
	for {
		select {
		case <-ctx.Done():
			return
		case mail, ok := <-ch:
			if !ok {
				return
			}
			if err := d.mailer.SendPasswordReset(ctx, mail.Email, mail.Ticket); err != nil {
				d.log.Error().Err(err).
					Int("worker_id", id).
					Msg("reset mail delivery failed")
			}
		}
	}
}
