package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/Proyeccion-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// MaxAttempts intentos de envío antes de mover el job a la DLQ.
const MaxAttempts = 3

// DLQEntry job fallido con metadatos para inspección manual.
type DLQEntry struct {
	OriginalQueue string    `json:"original_queue"`
	Payload       string    `json:"payload"`
	Reason        string    `json:"reason"`
	FailedAt      time.Time `json:"failed_at"`
	Attempts      int       `json:"attempts"`
}

// Pool workers que consumen la cola de alertas con BRPOP.
type Pool struct {
	rdb       *redis.Client
	processor *Processor
	workers   int
	log       *logger.Logger
	wg        sync.WaitGroup
}

// NewPool construye el pool.
func NewPool(rdb *redis.Client, processor *Processor, workers int, log *logger.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Pool{rdb: rdb, processor: processor, workers: workers, log: log}
}

// Start lanza los workers; terminan al cancelar ctx.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
	p.log.Info().Int("workers", p.workers).Msg("pool de notificaciones iniciado")
}

// Wait espera a que terminen los workers (apagado ordenado).
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		if ctx.Err() != nil {
			p.log.Debug().Int("worker", id).Msg("worker de notificaciones detenido")
			return
		}
		// BRPOP bloquea hasta 5s y vuelve a revisar ctx
		result, err := p.rdb.BRPop(ctx, 5*time.Second, QueueAlerts).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
				p.log.Warn().Err(err).Int("worker", id).Msg("error leyendo cola de alertas")
				time.Sleep(time.Second)
			}
			continue
		}
		if len(result) < 2 {
			continue
		}
		p.handle(ctx, []byte(result[1]))
	}
}

func (p *Pool) handle(ctx context.Context, raw []byte) {
	err := p.processor.Process(ctx, raw)
	if err == nil {
		return
	}

	var job Job
	_ = json.Unmarshal(raw, &job)
	job.Attempts++
	if errors.Is(err, ErrPermanent) || job.Attempts >= MaxAttempts {
		p.toDLQ(ctx, raw, err, job.Attempts)
		return
	}

	retry, merr := json.Marshal(job)
	if merr != nil {
		p.toDLQ(ctx, raw, err, job.Attempts)
		return
	}
	p.log.Warn().Err(err).Int("attempts", job.Attempts).Msg("envío de alerta fallido, se reintenta")
	if perr := p.rdb.LPush(ctx, QueueAlerts, retry).Err(); perr != nil {
		p.log.Error().Err(perr).Msg("no se pudo reencolar la alerta")
	}
}

func (p *Pool) toDLQ(ctx context.Context, raw []byte, reason error, attempts int) {
	entry := DLQEntry{
		OriginalQueue: QueueAlerts,
		Payload:       string(raw),
		Reason:        reason.Error(),
		FailedAt:      time.Now().UTC(),
		Attempts:      attempts,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		p.log.Error().Err(err).Msg("dlq: no se pudo serializar")
		return
	}
	if err := p.rdb.LPush(ctx, DLQPrefix+QueueAlerts, data).Err(); err != nil {
		p.log.Error().Err(err).Msg("dlq: no se pudo encolar")
		return
	}
	p.log.Warn().Str("reason", reason.Error()).Int("attempts", attempts).Msg("dlq: alerta movida a la cola de descarte")
}
