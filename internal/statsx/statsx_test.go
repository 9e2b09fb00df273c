package statsx

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/proars/Test-DNS-Speed/internal/model"
)

func success(latencyMs float64) model.QueryResult {
	return model.QueryResult{LatencyMs: latencyMs, Attempts: 1}
}

func failure(kind model.ErrorKind) model.QueryResult {
	return model.QueryResult{Failure: kind, Attempts: 1}
}

func TestAggregateEmptyInput(t *testing.T) {
	out := Aggregate(nil)
	expect := model.ResolverRunStats{}
	if diff := cmp.Diff(expect, out); diff != "" {
		t.Fatal(diff)
	}
}

func TestAggregateAllFailures(t *testing.T) {
	out := Aggregate([]model.QueryResult{
		failure(model.KindTimeout),
		failure(model.KindTimeout),
		failure(model.KindResolutionError),
	})
	expect := model.ResolverRunStats{
		Defined:       false,
		SuccessRate:   0,
		TotalAttempts: 3,
	}
	if diff := cmp.Diff(expect, out); diff != "" {
		t.Fatal(diff)
	}
}

func TestAggregateOddMedian(t *testing.T) {
	out := Aggregate([]model.QueryResult{
		success(10), success(20), success(30),
	})
	if out.Median != 20 {
		t.Fatal("unexpected median", out.Median)
	}
}

func TestAggregateEvenMedian(t *testing.T) {
	out := Aggregate([]model.QueryResult{
		success(10), success(20), success(30), success(40),
	})
	if out.Median != 25 {
		t.Fatal("unexpected median", out.Median)
	}
}

func TestAggregateMixedOutcomes(t *testing.T) {
	out := Aggregate([]model.QueryResult{
		success(10),
		failure(model.KindTimeout),
		success(20),
		failure(model.KindTimeout),
	})
	expect := model.ResolverRunStats{
		Min:           10,
		Max:           20,
		Mean:          15,
		Median:        15,
		StdDev:        5,
		Defined:       true,
		SuccessRate:   0.5,
		TotalAttempts: 4,
	}
	if diff := cmp.Diff(expect, out); diff != "" {
		t.Fatal(diff)
	}
}

func TestAggregatePopulationStdDev(t *testing.T) {
	// population stddev of {2, 4, 4, 4, 5, 5, 7, 9} is exactly 2;
	// the sample stddev would be ~2.138
	var input []model.QueryResult
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		input = append(input, success(v))
	}
	out := Aggregate(input)
	if math.Abs(out.StdDev-2) > 1e-9 {
		t.Fatal("expected population standard deviation", out.StdDev)
	}
}

func TestAggregateSuccessRateBounds(t *testing.T) {
	inputs := [][]model.QueryResult{
		nil,
		{success(10)},
		{failure(model.KindTimeout)},
		{success(10), failure(model.KindTimeout)},
	}
	for _, input := range inputs {
		out := Aggregate(input)
		if out.SuccessRate < 0 || out.SuccessRate > 1 {
			t.Fatal("success rate out of bounds", out.SuccessRate)
		}
	}
}
