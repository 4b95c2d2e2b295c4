package db

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/mflix-users/apiserver/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connection states, numbered to match the classic readyState values.
const (
	stateDisconnected = iota
	stateConnected
	stateConnecting
	stateDisconnecting
)

var stateNames = [...]string{"disconnected", "connected", "connecting", "disconnecting"}

// Mongo wraps the driver client together with the database it serves and
// a coarse connection state for the health endpoints.
type Mongo struct {
	client *mongo.Client
	dbName string
	host   string
	state  atomic.Int32
}

// Connect dials MongoDB with the configured pool size and server-selection
// timeout, then verifies the connection with a ping.
func Connect(ctx context.Context, cfg config.Config) (*Mongo, error) {
	m := &Mongo{dbName: cfg.Mongo.DBName}
	m.state.Store(stateConnecting)

	opts := options.Client().
		ApplyURI(cfg.Mongo.URL).
		SetMaxPoolSize(uint64(cfg.Mongo.MaxPoolSize)).
		SetServerSelectionTimeout(cfg.Mongo.ServerSelectionTimeout)

	// ApplyURI resolves the host list from the connection string.
	m.host = strings.Join(opts.Hosts, ",")

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		m.state.Store(stateDisconnected)
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.ServerSelectionTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		m.state.Store(stateDisconnected)
		return nil, err
	}

	m.client = client
	m.state.Store(stateConnected)
	return m, nil
}

// Collection returns a handle to the named collection in the configured database.
func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.client.Database(m.dbName).Collection(name)
}

// Host returns the host list resolved from the connection string.
func (m *Mongo) Host() string {
	return m.host
}

// Name returns the active database name.
func (m *Mongo) Name() string {
	return m.dbName
}

// State reports the connection state as one of disconnected, connected,
// connecting, disconnecting.
func (m *Mongo) State() string {
	return stateNames[m.state.Load()]
}

// Disconnect closes the client and transitions the state accordingly.
func (m *Mongo) Disconnect(ctx context.Context) error {
	m.state.Store(stateDisconnecting)
	err := m.client.Disconnect(ctx)
	m.state.Store(stateDisconnected)
	return err
}
