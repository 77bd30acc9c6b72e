package kafka

import (
	"time"

	"github.com/Domenick1991/flightdb/internal/domain"
)

const EventRecordCreated = "record_created"

type RecordEvent struct {
	Type  string       `json:"type"`
	Table domain.Table `json:"table"`
	Key   string       `json:"key"`
	At    time.Time    `json:"at"`
}
