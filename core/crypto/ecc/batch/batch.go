// Package batch 在有界协程池上并发执行 ecc 流水线
package batch

import (
	"context"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"

	"github.com/kochabx/seccure/core/crypto/ecc"
	"github.com/kochabx/seccure/errors"
	"github.com/kochabx/seccure/log"
)

var (
	ErrClosed  = errors.Precondition("batch: pool closed")
	ErrMissing = errors.Precondition("batch: signatures and messages differ in length")
)

// Pool 绑定一个 State 的批处理协程池
type Pool struct {
	id     string
	st     *ecc.State
	pool   *ants.Pool
	logger *log.Logger
}

// Option 批处理池选项
type Option func(*options)

type options struct {
	size   int
	logger *log.Logger
}

// WithSize 设置并发数，默认 GOMAXPROCS
func WithSize(n int) Option {
	return func(o *options) {
		o.size = n
	}
}

// WithLogger 设置日志记录器
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New 创建批处理池
func New(st *ecc.State, opts ...Option) (*Pool, error) {
	o := &options{size: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(o)
	}
	if o.size <= 0 {
		o.size = 1
	}
	if o.logger == nil {
		o.logger = log.For("batch")
	}

	pool, err := ants.NewPool(o.size, ants.WithPreAlloc(true))
	if err != nil {
		return nil, errors.Provider("batch: create pool").WithCause(err)
	}

	id := "batch-" + uuid.New().String()[:8]
	return &Pool{
		id:     id,
		st:     st,
		pool:   pool,
		logger: &log.Logger{Logger: o.logger.With().Str("batch_id", id).Logger()},
	}, nil
}

// Close 释放协程池，等待已提交任务结束
func (p *Pool) Close() {
	p.pool.Release()
}

// Running 返回正在执行的任务数
func (p *Pool) Running() int {
	return p.pool.Running()
}

// run 把 n 个任务提交到协程池，任一任务失败即取消其余任务
func (p *Pool) run(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	if p.pool.IsClosed() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// inflight 等待已提交的任务写完结果，避免调用方读到并发写入
	var inflight sync.WaitGroup

	g, ctx := errgroup.WithContext(ctx)
	for i := range n {
		if ctx.Err() != nil {
			break
		}

		done := make(chan error, 1)
		inflight.Add(1)
		err := p.pool.Submit(func() {
			defer inflight.Done()
			if err := ctx.Err(); err != nil {
				done <- err
				return
			}
			done <- fn(ctx, i)
		})
		if err != nil {
			inflight.Done()
			g.Go(func() error { return ErrClosed.WithCause(err) })
			break
		}

		g.Go(func() error {
			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	err := g.Wait()
	inflight.Wait()
	if err != nil {
		p.logger.Warn().Err(err).Int("items", n).Msg("batch aborted")
		return err
	}
	return nil
}

// EncryptAll 并发加密，结果顺序与输入一致
func (p *Pool) EncryptAll(ctx context.Context, plaintexts [][]byte, kp *ecc.KeyPair) ([]*ecc.Data, error) {
	out := make([]*ecc.Data, len(plaintexts))
	err := p.run(ctx, len(plaintexts), func(_ context.Context, i int) error {
		d, err := ecc.Encrypt(plaintexts[i], kp, p.st)
		if err != nil {
			return err
		}
		out[i] = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecryptAll 并发解密，任一密文认证失败则整体失败
func (p *Pool) DecryptAll(ctx context.Context, blobs [][]byte, kp *ecc.KeyPair) ([]*ecc.Data, error) {
	out := make([]*ecc.Data, len(blobs))
	err := p.run(ctx, len(blobs), func(_ context.Context, i int) error {
		d, err := ecc.Decrypt(blobs[i], kp, p.st)
		if err != nil {
			return err
		}
		out[i] = d
		return nil
	})
	if err != nil {
		for _, d := range out {
			d.Destroy()
		}
		return nil, err
	}
	return out, nil
}

// SignAll 并发签名，返回紧凑文本签名
func (p *Pool) SignAll(ctx context.Context, messages [][]byte, kp *ecc.KeyPair) ([]string, error) {
	out := make([]string, len(messages))
	err := p.run(ctx, len(messages), func(_ context.Context, i int) error {
		d, err := ecc.Sign(messages[i], kp, p.st)
		if err != nil {
			return err
		}
		out[i] = d.String()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyAll 并发验签。验签不通过记为 false，不视为错误；
// 只有上下文取消或协程池关闭才返回错误
func (p *Pool) VerifyAll(ctx context.Context, messages [][]byte, signatures []string, kp *ecc.KeyPair) ([]bool, error) {
	if len(messages) != len(signatures) {
		return nil, ErrMissing
	}

	out := make([]bool, len(messages))
	err := p.run(ctx, len(messages), func(_ context.Context, i int) error {
		out[i] = ecc.Verify(messages[i], signatures[i], kp, p.st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
