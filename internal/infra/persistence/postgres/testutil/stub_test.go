package testutil

import (
	"context"
	"database/sql/driver"
	"io"
	"testing"
)

func TestStubConnResourcesTable(t *testing.T) {
	ctx := context.Background()
	_, conn := NewStubDB()

	for _, name := range []string{"Settings.xml", "Alt.yaml"} {
		_, err := conn.ExecContext(ctx, "INSERT INTO resources(name,payload) VALUES($1,$2) ON CONFLICT(name) DO UPDATE SET payload=EXCLUDED.payload",
			[]driver.NamedValue{{Ordinal: 1, Value: name}, {Ordinal: 2, Value: []byte("payload-" + name)}})
		if err != nil {
			t.Fatalf("insert %s: %v", name, err)
		}
	}
	if len(conn.Rows) != 2 || len(conn.Execs) != 2 {
		t.Fatalf("expected two rows from two execs, got %v / %v", conn.Rows, conn.Execs)
	}

	rows, err := conn.QueryContext(ctx, "SELECT payload FROM resources WHERE name=$1", []driver.NamedValue{{Ordinal: 1, Value: "Alt.yaml"}})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	dest := make([]driver.Value, 1)
	if err := rows.Next(dest); err != nil {
		t.Fatalf("next: %v", err)
	}
	if string(dest[0].([]byte)) != "payload-Alt.yaml" || rows.Columns()[0] != "payload" {
		t.Fatalf("unexpected row %v", dest)
	}
	if err := rows.Next(dest); err != io.EOF {
		t.Fatalf("expected one row, got %v", err)
	}

	all, err := conn.QueryContext(ctx, "SELECT name FROM resources", nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	count := 0
	for all.Next(dest) == nil {
		count++
	}
	if count != 2 {
		t.Fatalf("expected two names, got %d", count)
	}

	res, err := conn.ExecContext(ctx, "DELETE FROM resources WHERE name=$1", []driver.NamedValue{{Ordinal: 1, Value: "Settings.xml"}})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n, _ := res.RowsAffected(); n != 1 {
		t.Fatalf("expected one row removed, got %d", n)
	}
	res, _ = conn.ExecContext(ctx, "DELETE FROM resources WHERE name=$1", []driver.NamedValue{{Ordinal: 1, Value: "Settings.xml"}})
	if n, _ := res.RowsAffected(); n != 0 {
		t.Fatalf("expected no rows removed, got %d", n)
	}
}

func TestStubConnRejectsAndFails(t *testing.T) {
	ctx := context.Background()
	_, conn := NewStubDB()

	if _, err := conn.QueryContext(ctx, "UPDATE resources SET payload=$1", nil); err == nil {
		t.Fatalf("expected unsupported query error")
	}
	if _, err := conn.ExecContext(ctx, "TRUNCATE resources", nil); err == nil {
		t.Fatalf("expected unsupported exec error")
	}
	if _, err := conn.QueryContext(ctx, "SELECT name FROM resources WHERE name=$1", nil); err == nil {
		t.Fatalf("expected missing argument error")
	}

	conn.FailPing = true
	if err := conn.Ping(ctx); err == nil {
		t.Fatalf("expected ping failure")
	}
	conn.FailBegin = true
	if _, err := conn.BeginTx(ctx, driver.TxOptions{}); err == nil {
		t.Fatalf("expected begin failure")
	}
	conn.FailBegin = false
	conn.FailCommit = true
	tx, err := conn.BeginTx(ctx, driver.TxOptions{})
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := tx.Commit(); err == nil {
		t.Fatalf("expected commit failure")
	}
}
