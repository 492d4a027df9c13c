package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Record is a keyed JSON document. The bank and the progress history are
// each stored as a single record so that replacing one is always a whole
// document swap.
type Record struct {
	ent.Schema
}

func (Record) Fields() []ent.Field {
	return []ent.Field{
		field.String("key").
			Unique().
			Comment("Record identity: \"bank\" or \"progress\""),
		field.Int("version").
			Comment("Payload schema version; incompatible versions are rejected at load"),
		field.JSON("data", map[string]any{}).
			Comment("Full document as JSON"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}
