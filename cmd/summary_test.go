package cmd

import (
	"bytes"
	"errors"
	"testing"

	"chargestat/core/charging"
)

func resetSummaryFlags() {
	summaryFrom, summaryTo, summaryMonth = "", "", ""
	summaryLastMonth = false
}

func TestSummaryWindowResolution(t *testing.T) {
	t.Cleanup(resetSummaryFlags)

	resetSummaryFlags()
	if _, err := summaryWindow(); err == nil {
		t.Fatal("no date flags should be an error")
	}

	resetSummaryFlags()
	summaryMonth = "2024-02"
	w, err := summaryWindow()
	if err != nil {
		t.Fatalf("named month: %v", err)
	}
	if w.End != "2024-02-29" {
		t.Errorf("leap february should end on the 29th, got %s", w.End)
	}

	resetSummaryFlags()
	summaryFrom, summaryTo = "2025-02-01", "2025-01-01"
	if _, err := summaryWindow(); !errors.Is(err, charging.ErrInvalidRange) {
		t.Errorf("reversed range should fail with ErrInvalidRange, got %v", err)
	}
}

func TestControlDryRunSendsNothing(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"control", "set-charge-limit", "80"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	// No config file exists in the test environment; a dry run must not
	// need one.
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("set_charge_limit&charge_limit_soc=80")) {
		t.Errorf("dry run should print the built command, got: %s", buf.String())
	}
}

func TestControlRejectsOutOfRangeWithoutSending(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"control", "set-temp", "40"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("out-of-range temperature should fail at build time")
	}
}
