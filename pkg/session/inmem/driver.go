package inmem

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
	"github.com/jondwaite/vcd-h5-themes/internal/task"
	"github.com/jondwaite/vcd-h5-themes/pkg/session"
)

var dbSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		"sessions": {
			Name: "sessions",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:         "id",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.StringFieldIndex{Field: "Endpoint"},
				},
				"expires": {
					Name:         "expires",
					Unique:       false,
					AllowMissing: false,
					Indexer:      &memdb.IntFieldIndex{Field: "Expires"},
				},
			},
		},
	},
}

// Driver represents the in-memory session registry driver built using hashicorp/go-memdb
type Driver struct {
	db *memdb.MemDB

	sweepMutex sync.Mutex
	sweepTask  *task.Repeating
}

var _ session.Registry = (*Driver)(nil)

// New creates a new empty in-memory session registry driver
func New() (*Driver, error) {
	db, err := memdb.NewMemDB(dbSchema)
	if err != nil {
		return nil, err
	}
	return &Driver{db: db}, nil
}

// List retrieves all active (non-expired) sessions
func (driver *Driver) List(_ context.Context) ([]*session.Session, error) {
	txn := driver.db.Txn(false)
	it, err := txn.Get("sessions", "id")
	if err != nil {
		return nil, err
	}

	sessions := []*session.Session{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		ses := obj.(*session.Session)
		if ses.IsExpired() {
			continue
		}
		sessions = append(sessions, ses)
	}
	return sessions, nil
}

// GetByEndpoint retrieves the active session bound to the given endpoint.
// It returns nil if no such session exists or the stored one is expired.
func (driver *Driver) GetByEndpoint(_ context.Context, endpoint string) (*session.Session, error) {
	txn := driver.db.Txn(false)
	obj, err := txn.First("sessions", "id", endpoint)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}

	ses := obj.(*session.Session)
	if ses.IsExpired() {
		return nil, nil
	}
	return ses, nil
}

// Put stores a session, replacing any previous session bound to the same endpoint.
// A zero session ID is replaced with a freshly generated one.
func (driver *Driver) Put(_ context.Context, ses *session.Session) (uuid.UUID, error) {
	if ses.ID == uuid.Nil {
		ses.ID = uuid.New()
	}

	txn := driver.db.Txn(true)
	defer txn.Abort()
	if _, err := txn.DeleteAll("sessions", "id", ses.Endpoint); err != nil {
		return uuid.Nil, err
	}
	if err := txn.Insert("sessions", ses); err != nil {
		return uuid.Nil, err
	}
	txn.Commit()

	return ses.ID, nil
}

// Remove removes the session bound to the given endpoint, if any
func (driver *Driver) Remove(_ context.Context, endpoint string) error {
	txn := driver.db.Txn(true)
	defer txn.Abort()
	if _, err := txn.DeleteAll("sessions", "id", endpoint); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// RemoveExpired removes all sessions that are expired
func (driver *Driver) RemoveExpired(_ context.Context) (int, error) {
	now := time.Now().Unix()

	txn := driver.db.Txn(true)
	defer txn.Abort()
	it, err := txn.Get("sessions", "id")
	if err != nil {
		return 0, err
	}

	expired := []*session.Session{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		ses := obj.(*session.Session)
		if ses.Expires > 0 && ses.Expires <= now {
			expired = append(expired, ses)
		}
	}
	for _, ses := range expired {
		if err := txn.Delete("sessions", ses); err != nil {
			return 0, err
		}
	}
	txn.Commit()

	return len(expired), nil
}

// ScheduleSweepTask schedules a repeating task that removes expired sessions.
// If a sweep task is already scheduled, this is a no-op.
func (driver *Driver) ScheduleSweepTask(interval time.Duration) {
	driver.sweepMutex.Lock()
	defer driver.sweepMutex.Unlock()
	if driver.sweepTask != nil {
		return
	}
	driver.sweepTask = task.NewRepeating(func() {
		_, _ = driver.RemoveExpired(context.Background())
	}, interval)
	driver.sweepTask.Start()
}

// StopSweepTask stops the scheduled sweep task, if any
func (driver *Driver) StopSweepTask() {
	driver.sweepMutex.Lock()
	defer driver.sweepMutex.Unlock()
	if driver.sweepTask != nil {
		driver.sweepTask.Stop()
		driver.sweepTask = nil
	}
}
