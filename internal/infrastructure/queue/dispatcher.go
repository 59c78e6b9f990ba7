package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/movieplatform/movie-api/internal/api/metrics"
	"github.com/movieplatform/movie-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// MailDispatcher delivers notification mails on a fixed set of workers,
// sharded by recipient so mails to one address keep their order. It is
// in-memory only: queued mails are lost on shutdown.
type MailDispatcher struct {
	workers []chan ports.MailMessage
	mailer  ports.Mailer
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewMailDispatcher creates a MailDispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewMailDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *MailDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &MailDispatcher{
		workers: make([]chan ports.MailMessage, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.MailMessage, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// Wait blocks until they have returned.
func (d *MailDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has stopped.
func (d *MailDispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands msg to the worker responsible for its recipient. It never
// blocks: when that worker's buffer is full the mail is dropped and logged.
func (d *MailDispatcher) Enqueue(msg ports.MailMessage) {
	idx := d.shardIndex(msg.To)
	select {
	case d.workers[idx] <- msg:
		metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.MailsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("to", msg.To).Str("subject", msg.Subject).Int("worker_id", idx).Msg("mail queue full, dropping message")
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *MailDispatcher) shardIndex(to string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(to)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *MailDispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.MailMessage) {
	defer d.wg.Done()
	depth := metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-ch:
			depth.Dec()
			if err := d.mailer.Send(ctx, msg); err != nil {
				metrics.MailsTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).
					Str("to", msg.To).
					Int("worker_id", id).
					Msg("mail delivery failed")
				continue
			}
			metrics.MailsTotal.WithLabelValues("sent").Inc()
		}
	}
}
