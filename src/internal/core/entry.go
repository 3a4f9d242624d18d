// FILE: logpane/src/internal/core/entry.go
package core

import (
	"time"
)

// Record is one captured log event. Records are values; once inserted into
// the store no field changes.
type Record struct {
	Seq     uint64    `json:"seq"`
	Time    time.Time `json:"time"`
	Level   Level     `json:"level"`
	Target  string    `json:"target,omitempty"`
	Message string    `json:"message"`
}

// NewRecord builds a record stamped with the current time. The sequence id is
// assigned by the store at insertion.
func NewRecord(level Level, target, message string) Record {
	return Record{
		Time:    time.Now(),
		Level:   level,
		Target:  target,
		Message: message,
	}
}

// Size approximates the retained byte size of the record
func (r Record) Size() int64 {
	return int64(len(r.Target) + len(r.Message))
}
