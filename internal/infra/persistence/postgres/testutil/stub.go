// Package testutil provides a fake database/sql driver standing in for
// Postgres in resource store tests. It understands exactly the statements the
// store issues against the resources table and nothing else.
package testutil

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
)

var driverSeq atomic.Int64

// StubConn is the single connection behind a stub DB. Rows holds the
// resources table keyed by name; the Fail* switches make the matching
// driver call return an error.
type StubConn struct {
	Execs []string
	Rows  map[string][]byte

	FailPing    bool
	FailBegin   bool
	FailCommit  bool
	FailQueries bool
}

// NewStubDB registers a fresh driver and returns a sql.DB bound to it.
func NewStubDB() (*sql.DB, *StubConn) {
	conn := &StubConn{Rows: make(map[string][]byte)}
	name := fmt.Sprintf("stubpg%d", driverSeq.Add(1))
	sql.Register(name, stubDriver{conn: conn})
	db, err := sql.Open(name, "stub")
	if err != nil {
		panic(err)
	}
	return db, conn
}

type stubDriver struct {
	conn *StubConn
}

func (d stubDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

// Prepare implements driver.Conn. Only the context fast paths are supported.
func (c *StubConn) Prepare(query string) (driver.Stmt, error) {
	return nil, fmt.Errorf("stub: prepare not supported: %s", query)
}

// Close implements driver.Conn.
func (c *StubConn) Close() error { return nil }

// Begin implements driver.Conn.
func (c *StubConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

// BeginTx implements driver.ConnBeginTx.
func (c *StubConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	if c.FailBegin {
		return nil, errors.New("stub: begin failed")
	}
	return stubTx{conn: c}, nil
}

// Ping implements driver.Pinger.
func (c *StubConn) Ping(context.Context) error {
	if c.FailPing {
		return errors.New("stub: ping failed")
	}
	return nil
}

// statement classifies a query by its normalized text.
func statement(query string) string {
	return strings.ToUpper(strings.Join(strings.Fields(query), " "))
}

// ExecContext implements driver.ExecerContext for the DDL, upsert and delete.
func (c *StubConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.Execs = append(c.Execs, query)
	stmt := statement(query)
	switch {
	case strings.HasPrefix(stmt, "CREATE TABLE"):
		return driver.RowsAffected(0), nil
	case strings.HasPrefix(stmt, "INSERT INTO RESOURCES"):
		if c.FailQueries {
			return nil, errors.New("stub: insert failed")
		}
		name, err := nameArg(args)
		if err != nil {
			return nil, err
		}
		if len(args) != 2 {
			return nil, fmt.Errorf("stub: insert wants 2 args, got %d", len(args))
		}
		payload, _ := args[1].Value.([]byte)
		c.Rows[name] = append([]byte(nil), payload...)
		return driver.RowsAffected(1), nil
	case strings.HasPrefix(stmt, "DELETE FROM RESOURCES"):
		if c.FailQueries {
			return nil, errors.New("stub: delete failed")
		}
		name, err := nameArg(args)
		if err != nil {
			return nil, err
		}
		if _, ok := c.Rows[name]; !ok {
			return driver.RowsAffected(0), nil
		}
		delete(c.Rows, name)
		return driver.RowsAffected(1), nil
	}
	return nil, fmt.Errorf("stub: unsupported exec: %s", query)
}

// QueryContext implements driver.QueryerContext for name and payload lookups
// and the full name listing.
func (c *StubConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	stmt := statement(query)
	if !strings.HasPrefix(stmt, "SELECT ") || !strings.Contains(stmt, " FROM RESOURCES") {
		return nil, fmt.Errorf("stub: unsupported query: %s", query)
	}
	if c.FailQueries {
		return nil, errors.New("stub: query failed")
	}
	column := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(stmt[:strings.Index(stmt, " FROM ")], "SELECT")))

	if !strings.Contains(stmt, " WHERE ") {
		rows := &stubRows{column: column}
		for name := range c.Rows {
			rows.values = append(rows.values, name)
		}
		return rows, nil
	}

	name, err := nameArg(args)
	if err != nil {
		return nil, err
	}
	rows := &stubRows{column: column}
	if payload, ok := c.Rows[name]; ok {
		if column == "payload" {
			rows.values = append(rows.values, payload)
		} else {
			rows.values = append(rows.values, name)
		}
	}
	return rows, nil
}

func nameArg(args []driver.NamedValue) (string, error) {
	if len(args) == 0 {
		return "", errors.New("stub: missing name argument")
	}
	name, ok := args[0].Value.(string)
	if !ok {
		return "", fmt.Errorf("stub: name argument is %T", args[0].Value)
	}
	return name, nil
}

type stubTx struct {
	conn *StubConn
}

func (t stubTx) Commit() error {
	if t.conn.FailCommit {
		return errors.New("stub: commit failed")
	}
	return nil
}

func (stubTx) Rollback() error { return nil }

// stubRows yields a single column.
type stubRows struct {
	column string
	values []driver.Value
	next   int
}

func (r *stubRows) Columns() []string { return []string{r.column} }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.next >= len(r.values) {
		return io.EOF
	}
	dest[0] = r.values[r.next]
	r.next++
	return nil
}
