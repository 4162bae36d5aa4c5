package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"reflect"
	"testing"
)

func TestExportWritesConfiguredColumnsInOrder(t *testing.T) {
	store := newTestStore()
	seedPendingTransfer(t, store, "reg-1")
	svc := NewExportService(store, []string{"id", "name", "ticketType", "balance", "status", "checkedIn"})

	var buf bytes.Buffer
	if err := svc.WriteCSV(context.Background(), &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one row, got %d rows", len(rows))
	}
	wantHeader := []string{"id", "name", "ticketType", "balance", "status", "checkedIn"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	wantRow := []string{"reg-1", "Bola", "guest", "3000", "pending", "false"}
	if !reflect.DeepEqual(rows[1], wantRow) {
		t.Fatalf("unexpected row: %v", rows[1])
	}
}

func TestExportDropsUnknownColumns(t *testing.T) {
	svc := NewExportService(newTestStore(), []string{"id", "favoriteColor", "name"})
	if got := svc.Columns(); !reflect.DeepEqual(got, []string{"id", "name"}) {
		t.Fatalf("expected unknown columns dropped, got %v", got)
	}
}

func TestExportEmptyLedgerIsHeaderOnly(t *testing.T) {
	svc := NewExportService(newTestStore(), []string{"id", "name"})

	var buf bytes.Buffer
	if err := svc.WriteCSV(context.Background(), &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}
