package simpletxmanager

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- заглушка драйвера: транзакции без реальной БД ---

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("open through connector")
}

type stubConnector struct {
	conn *stubConn
}

func (c stubConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c stubConnector) Driver() driver.Driver                        { return stubDriver{} }

type stubConn struct {
	begun     int
	commitErr error
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *stubConn) Close() error { return nil }

func (c *stubConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *stubConn) BeginTx(_ context.Context, _ driver.TxOptions) (driver.Tx, error) {
	c.begun++
	return stubTx{conn: c}, nil
}

type stubTx struct {
	conn *stubConn
}

func (t stubTx) Commit() error   { return t.conn.commitErr }
func (t stubTx) Rollback() error { return nil }

func newStubManager() (*TransactionManager, *stubConn) {
	conn := &stubConn{}
	db := sql.OpenDB(stubConnector{conn: conn})
	return NewTransactionManager(db), conn
}

// --- тесты ---

func TestDoSerializable_RetriesOnSerializationFailure(t *testing.T) {
	m, conn := newStubManager()

	// Первые две попытки проигрывают гонку сериализации, третья проходит
	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return &pq.Error{Code: "40001"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, conn.begun)
}

func TestDoSerializable_RetriesExhausted(t *testing.T) {
	m, _ := newStubManager()

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return &pq.Error{Code: "40001"}
	})

	assert.ErrorIs(t, err, ErrTxFailed)
	assert.Equal(t, maxRetries, attempts)
}

func TestDoSerializable_NonSerializationErrorNotRetried(t *testing.T) {
	m, _ := newStubManager()

	cause := errors.New("booking conflict")
	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return cause
	})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, attempts)
}

func TestDoSerializable_RetriesCommitTimeSerializationFailure(t *testing.T) {
	m, conn := newStubManager()

	// Serialization failure на COMMIT: после первой неудачи повтор проходит
	conn.commitErr = &pq.Error{Code: "40001"}
	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 2 {
			conn.commitErr = nil
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}
