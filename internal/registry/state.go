package registry

//
// Persistent on-disk state
//

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/proars/Test-DNS-Speed/internal/model"
)

// historyKey is the key under which the key-value store keeps the
// resolver health history.
const historyKey = "dns_test_history"

// statsKey is the key under which the key-value store keeps the
// latest run's statistics.
const statsKey = "dns_stats"

// dataFormatVersion is the data format version.
const dataFormatVersion = 1

// errInvalidDataFormatVersion indicates the on-disk data format version is invalid.
var errInvalidDataFormatVersion = errors.New("registry: invalid data format version")

// serializedHistory is the serialized health history.
type serializedHistory struct {
	Records map[string]model.HealthRecord
	Version int
}

// serializedStats is the serialized per-run statistics.
type serializedStats struct {
	Records   map[string]statsRecord
	RunID     string
	Timestamp time.Time
	Version   int
}

// statsRecord contains one resolver's statistics for the run. The
// latency fields are only meaningful when Defined is true.
type statsRecord struct {
	Min           float64
	Max           float64
	Mean          float64
	Median        float64
	StdDev        float64
	Defined       bool
	SuccessRate   float64
	TotalAttempts int
}

// timeNow is a hook for testing.
var timeNow = time.Now

// newRunID is a hook for testing.
var newRunID = uuid.NewString

// loadHistory reads the health history from the store. Any read or
// parse failure yields an empty history with a warning: a corrupted
// store must never be fatal.
func (reg *Registry) loadHistory() map[string]model.HealthRecord {
	data, err := reg.kvs.Get(historyKey)
	if err != nil {
		reg.logger.Debugf("registry: no usable history: %s", err.Error())
		return make(map[string]model.HealthRecord)
	}
	var sh serializedHistory
	if err := json.Unmarshal(data, &sh); err != nil {
		reg.logger.Warnf("registry: cannot parse history, starting empty: %s", err.Error())
		return make(map[string]model.HealthRecord)
	}
	if sh.Version != dataFormatVersion {
		reg.logger.Warnf(
			"registry: cannot use history, starting empty: %s",
			errInvalidDataFormatVersion.Error(),
		)
		return make(map[string]model.HealthRecord)
	}
	if sh.Records == nil {
		return make(map[string]model.HealthRecord)
	}
	return sh.Records
}

// saveHistory writes the health history back to the store.
func (reg *Registry) saveHistory() error {
	data, err := json.Marshal(serializedHistory{
		Records: reg.health,
		Version: dataFormatVersion,
	})
	if err != nil {
		return err
	}
	return reg.kvs.Set(historyKey, data)
}

// saveStats writes this run's statistics to the store. The stats
// store is write only: we never read it back.
func (reg *Registry) saveStats(reports []model.ResolverReport) error {
	records := make(map[string]statsRecord)
	for _, report := range reports {
		records[report.Resolver.Key()] = statsRecord{
			Min:           report.Stats.Min,
			Max:           report.Stats.Max,
			Mean:          report.Stats.Mean,
			Median:        report.Stats.Median,
			StdDev:        report.Stats.StdDev,
			Defined:       report.Stats.Defined,
			SuccessRate:   report.Stats.SuccessRate,
			TotalAttempts: report.Stats.TotalAttempts,
		}
	}
	data, err := json.Marshal(serializedStats{
		Records:   records,
		RunID:     newRunID(),
		Timestamp: timeNow(),
		Version:   dataFormatVersion,
	})
	if err != nil {
		return err
	}
	return reg.kvs.Set(statsKey, data)
}
