package registry

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/proars/Test-DNS-Speed/internal/kvstore"
	"github.com/proars/Test-DNS-Speed/internal/model"
)

var configured = []model.Resolver{
	{Address: "8.8.8.8", Label: "Google Public DNS"},
	{Address: "1.1.1.1:53", Label: "Cloudflare DNS"},
}

func TestNewCanonicalizesAddresses(t *testing.T) {
	reg := New(&kvstore.Memory{}, nil, configured)
	active := reg.ActiveResolvers()
	if len(active) != 2 {
		t.Fatal("unexpected number of resolvers", len(active))
	}
	if active[0].Address != "8.8.8.8:53" {
		t.Fatal("expected default port", active[0].Address)
	}
	if active[1].Address != "1.1.1.1:53" {
		t.Fatal("unexpected address", active[1].Address)
	}
}

func TestNewExcludesMalformedAddresses(t *testing.T) {
	reg := New(&kvstore.Memory{}, nil, []model.Resolver{
		{Address: "8.8.8.8", Label: "Google Public DNS"},
		{Address: "xxx.xxx.xxx.xxx", Label: "Custom DNS 1"},
		{Address: "1.1.1.1:notaport", Label: "bad port"},
		{Address: "dns.example.com:53", Label: "not an IP"},
	})
	active := reg.ActiveResolvers()
	if len(active) != 1 {
		t.Fatal("expected only the valid resolver", active)
	}
}

func TestHealthRecordRoundTrip(t *testing.T) {
	kvs := &kvstore.Memory{}
	reg := New(kvs, nil, configured)
	resolver := reg.ActiveResolvers()[0]
	expect := model.HealthRecord{
		ConsecutiveFailures: 1,
		TotalQueries:        10,
		TotalSuccesses:      9,
	}
	err := reg.ApplyReports([]model.ResolverReport{{
		Resolver: resolver,
		Health:   expect,
	}})
	if err != nil {
		t.Fatal(err)
	}

	// reloading without issuing new queries must yield the same record
	reloaded := New(kvs, nil, configured)
	if diff := cmp.Diff(expect, reloaded.HealthRecord(resolver)); diff != "" {
		t.Fatal(diff)
	}
}

func TestFreshResolverStartsWithZeroRecord(t *testing.T) {
	reg := New(&kvstore.Memory{}, nil, configured)
	record := reg.HealthRecord(reg.ActiveResolvers()[0])
	if record != (model.HealthRecord{}) {
		t.Fatal("expected fresh record", record)
	}
}

func TestDroppedResolverExcludedFromActive(t *testing.T) {
	kvs := &kvstore.Memory{}
	reg := New(kvs, nil, configured)
	resolvers := reg.ActiveResolvers()
	err := reg.ApplyReports([]model.ResolverReport{{
		Resolver: resolvers[0],
		Health:   model.HealthRecord{ConsecutiveFailures: 3, Dropped: true},
	}})
	if err != nil {
		t.Fatal(err)
	}

	reloaded := New(kvs, nil, configured)
	active := reloaded.ActiveResolvers()
	if len(active) != 1 || active[0].Address != "1.1.1.1:53" {
		t.Fatal("expected the dropped resolver to be excluded", active)
	}
	dropped := reloaded.DroppedResolvers()
	if len(dropped) != 1 || dropped[0].Health.ConsecutiveFailures != 3 {
		t.Fatal("expected a dropped report", dropped)
	}
}

func TestResetReinstatesResolver(t *testing.T) {
	kvs := &kvstore.Memory{}
	reg := New(kvs, nil, configured)
	resolver := reg.ActiveResolvers()[0]
	err := reg.ApplyReports([]model.ResolverReport{{
		Resolver: resolver,
		Health:   model.HealthRecord{ConsecutiveFailures: 3, Dropped: true},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if err := reg.Reset(resolver); err != nil {
		t.Fatal(err)
	}

	reloaded := New(kvs, nil, configured)
	if len(reloaded.ActiveResolvers()) != 2 {
		t.Fatal("expected the resolver to be active again")
	}
}

func TestCorruptedHistoryTreatedAsEmpty(t *testing.T) {
	kvs := &kvstore.Memory{}
	if err := kvs.Set(historyKey, []byte("{")); err != nil {
		t.Fatal(err)
	}
	reg := New(kvs, nil, configured)
	if len(reg.ActiveResolvers()) != 2 {
		t.Fatal("expected all resolvers active")
	}
}

func TestWrongHistoryVersionTreatedAsEmpty(t *testing.T) {
	kvs := &kvstore.Memory{}
	data, err := json.Marshal(serializedHistory{
		Records: map[string]model.HealthRecord{
			"8.8.8.8:53 Google Public DNS": {Dropped: true},
		},
		Version: dataFormatVersion + 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := kvs.Set(historyKey, data); err != nil {
		t.Fatal(err)
	}
	reg := New(kvs, nil, configured)
	if len(reg.ActiveResolvers()) != 2 {
		t.Fatal("expected all resolvers active")
	}
}

func TestApplyReportsWritesStats(t *testing.T) {
	savedTimeNow, savedNewRunID := timeNow, newRunID
	defer func() {
		timeNow, newRunID = savedTimeNow, savedNewRunID
	}()
	newRunID = func() string {
		return "deadbeef"
	}

	kvs := &kvstore.Memory{}
	reg := New(kvs, nil, configured)
	resolver := reg.ActiveResolvers()[0]
	err := reg.ApplyReports([]model.ResolverReport{{
		Resolver: resolver,
		Stats: model.ResolverRunStats{
			Min: 10, Max: 20, Mean: 15, Median: 15, StdDev: 5,
			Defined: true, SuccessRate: 1, TotalAttempts: 2,
		},
		Health: model.HealthRecord{TotalQueries: 2, TotalSuccesses: 2},
	}})
	if err != nil {
		t.Fatal(err)
	}

	data, err := kvs.Get(statsKey)
	if err != nil {
		t.Fatal(err)
	}
	var ss serializedStats
	if err := json.Unmarshal(data, &ss); err != nil {
		t.Fatal(err)
	}
	if ss.RunID != "deadbeef" || ss.Version != dataFormatVersion {
		t.Fatal("unexpected stats envelope", ss)
	}
	record := ss.Records[resolver.Key()]
	if !record.Defined || record.Mean != 15 || record.TotalAttempts != 2 {
		t.Fatal("unexpected stats record", record)
	}
}
