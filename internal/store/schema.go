package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/lumi/ent/schema"
)

// Table names.
const (
	tableSessionEvents = "session_events"
	tableMistakeEvents = "mistake_events"
	tableRewardEvents  = "reward_events"
	tableLLMEvents     = "llm_events"
	tableSnapshots     = "snapshots"
)

// entities maps each table to the ent schema that defines it. The ent
// definitions are the single source of the table layout.
var entities = []struct {
	table string
	def   ent.Interface
}{
	{tableSessionEvents, entschema.SessionEvent{}},
	{tableMistakeEvents, entschema.MistakeEvent{}},
	{tableRewardEvents, entschema.RewardEvent{}},
	{tableLLMEvents, entschema.LLMEvent{}},
	{tableSnapshots, entschema.Snapshot{}},
}

// migrate creates or upgrades every table with ent's migration engine.
func migrate(ctx context.Context, drv dialect.Driver) error {
	tables, err := buildTables()
	if err != nil {
		return err
	}
	m, err := schema.NewMigrate(drv, schema.WithDropIndex(true))
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func buildTables() ([]*schema.Table, error) {
	tables := make([]*schema.Table, 0, len(entities))
	for _, e := range entities {
		t, err := buildTable(e.table, e.def)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", e.table, err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func buildTable(name string, def ent.Interface) (*schema.Table, error) {
	t := schema.NewTable(name).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true})

	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range def.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, def.Fields()...)
	indexes = append(indexes, def.Indexes()...)

	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("field %s: %w", d.Name, d.Err)
		}
		t.AddColumn(column(d))
	}
	for _, idx := range indexes {
		d := idx.Descriptor()
		key := d.StorageKey
		if key == "" {
			key = name + "_" + strings.Join(d.Fields, "_")
		}
		t.AddIndex(key, d.Unique, d.Fields)
	}
	return t, nil
}

func column(d *field.Descriptor) *schema.Column {
	c := &schema.Column{
		Name:     d.Name,
		Type:     d.Info.Type,
		Unique:   d.Unique,
		Nullable: d.Optional,
		Comment:  d.Comment,
	}
	if d.StorageKey != "" {
		c.Name = d.StorageKey
	}
	for _, e := range d.Enums {
		c.Enums = append(c.Enums, e.V)
	}
	// Function defaults are applied by the writer, not the database.
	if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
		c.Default = d.Default
	}
	return c
}
