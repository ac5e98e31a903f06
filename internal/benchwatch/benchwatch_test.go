package benchwatch

import "testing"

func TestCheckRunWithoutBaselineIsNoop(t *testing.T) {
	w := New(nil)
	if got := w.CheckRun("adder4", []int{10}, 0.1); got != nil {
		t.Errorf("CheckRun with no baseline = %v, want nil", got)
	}
}

func TestCheckRunFlagsRegressionBeyondTolerance(t *testing.T) {
	w := New(nil)
	w.SetBaseline("adder4", []int{10, 20})
	got := w.CheckRun("adder4", []int{10, 25}, 0.1)
	if len(got) != 1 {
		t.Fatalf("expected 1 regression, got %v", got)
	}
	if got[0].OutputIndex != 1 || got[0].CurrentSize != 25 {
		t.Errorf("regression = %+v, want output 1 at size 25", got[0])
	}
}

func TestCheckRunWithinToleranceProducesNoRegression(t *testing.T) {
	w := New(nil)
	w.SetBaseline("adder4", []int{100})
	if got := w.CheckRun("adder4", []int{105}, 0.1); got != nil {
		t.Errorf("5%% growth within 10%% tolerance should not regress, got %v", got)
	}
}

func TestCheckRunBroadcastsAndRecordsHistory(t *testing.T) {
	var received []Alert
	w := New(func(a Alert) { received = append(received, a) })
	w.SetBaseline("parity4", []int{4})
	w.CheckRun("parity4", []int{8}, 0.0)

	if len(received) != 1 {
		t.Fatalf("expected 1 broadcast alert, got %d", len(received))
	}
	if got := w.RecentAlerts(10); len(got) != 1 {
		t.Errorf("RecentAlerts = %v, want 1 entry", got)
	}
}
