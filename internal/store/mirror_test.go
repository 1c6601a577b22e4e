package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"railbook/internal/domain/models"
)

func TestMirrorInsertUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS ticket_mirror").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO ticket_mirror").
		WillReturnResult(sqlmock.NewResult(1, 1))

	m := &Mirror[models.TicketRecord]{DB: db, Table: ticketMirrorTable, Codec: ticketCodec()}
	rec := ticketAt("PNRMIRROR01", time.Now())
	if _, err := m.Insert(context.Background(), rec); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMirrorListDecodesPayloads(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	older := ticketAt("PNRMIRROR02", time.Now().Add(-time.Hour))
	newer := ticketAt("PNRMIRROR03", time.Now())
	newerJSON, _ := json.Marshal(newer)
	olderJSON, _ := json.Marshal(older)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS ticket_mirror").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT payload FROM ticket_mirror ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).
			AddRow(string(newerJSON)).
			AddRow(string(olderJSON)))

	m := &Mirror[models.TicketRecord]{DB: db, Table: ticketMirrorTable, Codec: ticketCodec()}
	got, err := m.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].PNR != "PNRMIRROR03" || got[1].PNR != "PNRMIRROR02" {
		t.Fatalf("unexpected records: %v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMirrorUpdateStatusRewritesPayload(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rec := ticketAt("PNRMIRROR04", time.Now())
	payload, _ := json.Marshal(rec)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS ticket_mirror").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT payload FROM ticket_mirror WHERE record_id").
		WithArgs("PNRMIRROR04").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(string(payload)))
	mock.ExpectExec("UPDATE ticket_mirror SET payload").
		WillReturnResult(sqlmock.NewResult(0, 1))

	m := &Mirror[models.TicketRecord]{DB: db, Table: ticketMirrorTable, Codec: ticketCodec()}
	got, err := m.UpdateStatus(context.Background(), "PNRMIRROR04", models.TicketCancelled, "")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if got.Status != models.TicketCancelled {
		t.Fatalf("expected Cancelled, got %q", got.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMirrorUpdateStatusMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS ticket_mirror").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT payload FROM ticket_mirror WHERE record_id").
		WithArgs("PNRABSENT99").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	m := &Mirror[models.TicketRecord]{DB: db, Table: ticketMirrorTable, Codec: ticketCodec()}
	if _, err := m.UpdateStatus(context.Background(), "PNRABSENT99", models.TicketCancelled, ""); err == nil {
		t.Fatal("expected error for a record the mirror never held")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
