// Package pool は固定数のワーカーゴルーチンで共有キューのジョブを実行する
//
// # 仕様
//   - ワーカー数は起動時に決まり、以後変わらない
//   - キューは無制限で、Submit は呼び出し元をブロックしない
//   - 各ジョブはちょうど1つのワーカーが取り出し、最後まで同期的に実行する
//   - 取り出し順は到着順だが、複数のワーカーが並行に動くため完了順は保証しない
//   - ジョブが返したエラーやパニックはログに出すだけで、再試行も伝播もしない
//   - Stop は新規の受付を止め、キューに残ったジョブを実行し終えるまで待つ
//     実行中のジョブを中断する手段はない
package pool

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
)

var (
	// ErrInvalidSize はワーカー数が正でないことを表す
	ErrInvalidSize = errors.New("ワーカー数は1以上である必要があります")

	// ErrClosed は停止済みのプールにジョブを投入したことを表す
	ErrClosed = errors.New("プールは停止しています")
)

// Job はプールで実行する作業の単位
type Job func() error

// Pool は固定数のワーカーと無制限のジョブキュー
type Pool struct {
	size int

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Job
	closed bool

	wg sync.WaitGroup

	active    atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
}

// Stats はプールの状態のスナップショット
type Stats struct {
	Workers   int   `json:"workers"`
	Queued    int   `json:"queued"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
}

// New は size 個のワーカーを起動したPoolを作成する
func New(size int) (*Pool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	p := &Pool{size: size}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker(i)
	}

	return p, nil
}

// Submit はジョブをキューに追加する
func (p *Pool) Submit(job Job) error {
	if job == nil {
		return errors.New("nil のジョブは投入できません")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	p.queue = append(p.queue, job)
	p.cond.Signal()

	return nil
}

// Stop は新規の受付を止め、キュー内のジョブがすべて終わるのを待つ
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("ワーカーの停止待ちを中断: %w", ctx.Err())
	}
}

// Size はワーカー数を返す
func (p *Pool) Size() int {
	return p.size
}

// Stats は現在の状態を返す
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	queued := len(p.queue)
	p.mu.Unlock()

	return Stats{
		Workers:   p.size,
		Queued:    queued,
		Active:    p.active.Load(),
		Completed: p.completed.Load(),
		Failed:    p.failed.Load(),
	}
}

// next はジョブが来るまで待ち、1つ取り出す
// 停止済みでキューが空なら false を返す
func (p *Pool) next() (Job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.queue) == 0 && !p.closed {
		p.cond.Wait()
	}
	if len(p.queue) == 0 {
		return nil, false
	}

	job := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]
	return job, true
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		job, ok := p.next()
		if !ok {
			return
		}
		p.run(id, job)
	}
}

// run はジョブを1つ実行する
func (p *Pool) run(id int, job Job) {
	p.active.Add(1)
	defer p.active.Add(-1)
	defer p.completed.Add(1)

	defer func() {
		if r := recover(); r != nil {
			p.failed.Add(1)
			log.Printf("worker %d: ジョブがパニックしました: %v", id, r)
		}
	}()

	if err := job(); err != nil {
		p.failed.Add(1)
		log.Printf("worker %d: ジョブが失敗しました: %v", id, err)
	}
}
