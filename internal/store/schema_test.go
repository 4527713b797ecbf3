package store

import (
	"context"
	"path/filepath"
	"testing"

	"entgo.io/ent/schema/field"
)

func TestBuildTablesFollowsEntSchemas(t *testing.T) {
	tables, err := buildTables()
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != len(entities) {
		t.Fatalf("got %d tables, want %d", len(tables), len(entities))
	}

	byName := make(map[string]map[string]field.Type)
	for _, tbl := range tables {
		cols := make(map[string]field.Type)
		for _, c := range tbl.Columns {
			cols[c.Name] = c.Type
		}
		byName[tbl.Name] = cols
	}

	tests := []struct {
		table, column string
		want          field.Type
	}{
		{tableSessionEvents, "sequence", field.TypeInt64},
		{tableSessionEvents, "created_at", field.TypeInt64},
		{tableSessionEvents, "mastered_ids", field.TypeJSON},
		{tableSessionEvents, "mode", field.TypeEnum},
		{tableMistakeEvents, "item_id", field.TypeString},
		{tableRewardEvents, "amount", field.TypeInt},
		{tableLLMEvents, "success", field.TypeBool},
		{tableSnapshots, "data", field.TypeJSON},
		{tableSnapshots, "id", field.TypeInt},
	}
	for _, tt := range tests {
		got, ok := byName[tt.table][tt.column]
		if !ok {
			t.Errorf("%s: column %q missing", tt.table, tt.column)
			continue
		}
		if got != tt.want {
			t.Errorf("%s.%s type = %v, want %v", tt.table, tt.column, got, tt.want)
		}
	}
}

func TestColumnSkipsFunctionDefaults(t *testing.T) {
	tables, err := buildTables()
	if err != nil {
		t.Fatal(err)
	}
	for _, tbl := range tables {
		for _, c := range tbl.Columns {
			switch c.Name {
			case "created_at":
				if c.Default != nil {
					t.Errorf("%s.created_at default = %v, want none", tbl.Name, c.Default)
				}
			case "reason":
				if c.Default != "" {
					t.Errorf("%s.reason default = %#v, want empty string", tbl.Name, c.Default)
				}
			}
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, e := range entities {
		rows, err := s.DB().QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", e.table)
		if err != nil {
			t.Fatal(err)
		}
		cols := make(map[string]bool)
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				t.Fatal(err)
			}
			cols[name] = true
		}
		rows.Close()

		for _, f := range e.def.Fields() {
			if name := f.Descriptor().Name; !cols[name] {
				t.Errorf("%s: column %q not created", e.table, name)
			}
		}
	}

	var n int
	err := s.DB().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = ?",
		tableMistakeEvents+"_item_id_sequence").Scan(&n)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("mistake item index count = %d, want 1", n)
	}
}

func TestMigrationIsRepeatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumi.db")
	for range 2 {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		if err := s.EventRepo().AppendRewardEvent(context.Background(), RewardEventData{Kind: RewardXP, Amount: 5}); err != nil {
			t.Fatal(err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	xp, _, err := s.EventRepo().RewardTotals(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if xp != 10 {
		t.Errorf("xp = %d, want 10 after two opens", xp)
	}
}
