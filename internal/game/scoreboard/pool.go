package scoreboard

import (
	"context"
	"database/sql"
	"sync"
)

// connectionPool hands out a fixed set of *sql.Conn under a
// mutex/condvar pair rather than leaning on database/sql's own pool,
// matching the bounded ConnectionPool the original keeps in front of
// libpqxx so SaveRecord/GetRecords never block on an unbounded number
// of concurrent connections.
type connectionPool struct {
	mu    sync.Mutex
	cond  *sync.Cond
	conns []*sql.Conn
	used  []bool
}

func newConnectionPool(ctx context.Context, db *sql.DB, capacity int) (*connectionPool, error) {
	p := &connectionPool{
		conns: make([]*sql.Conn, capacity),
		used:  make([]bool, capacity),
	}
	p.cond = sync.NewCond(&p.mu)
	for i := 0; i < capacity; i++ {
		c, err := db.Conn(ctx)
		if err != nil {
			p.closeLocked()
			return nil, err
		}
		p.conns[i] = c
	}
	return p, nil
}

// acquire blocks until a connection is free, then marks it used and
// returns it along with the slot index release must be called with.
func (p *connectionPool) acquire() (*sql.Conn, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for {
		for i, busy := range p.used {
			if !busy {
				p.used[i] = true
				return p.conns[i], i
			}
		}
		p.cond.Wait()
	}
}

func (p *connectionPool) release(slot int) {
	p.mu.Lock()
	p.used[slot] = false
	p.mu.Unlock()
	p.cond.Signal()
}

func (p *connectionPool) closeLocked() {
	for _, c := range p.conns {
		if c != nil {
			c.Close()
		}
	}
}

func (p *connectionPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var firstErr error
	for _, c := range p.conns {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
