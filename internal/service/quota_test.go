package service

import "testing"

func TestMemoryQuotaLimits(t *testing.T) {
	q := NewMemorySimulationQuota()

	for i := 0; i < 3; i++ {
		if !q.Allow("user-1", 3) {
			t.Fatalf("run %d should be allowed", i)
		}
	}
	if q.Allow("user-1", 3) {
		t.Error("fourth run should be denied")
	}

	// contadores independientes por usuario
	if !q.Allow("user-2", 3) {
		t.Error("other user should not share the counter")
	}
}

func TestMemoryQuotaUnlimited(t *testing.T) {
	q := NewMemorySimulationQuota()
	for i := 0; i < 100; i++ {
		if !q.Allow("user-1", -1) {
			t.Fatal("unlimited tier should never be denied")
		}
	}
	if !q.Allow("user-1", 0) {
		t.Error("limit 0 means unlimited")
	}
}
