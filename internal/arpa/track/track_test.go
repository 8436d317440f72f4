package track

import (
	"testing"

	"github.com/marinecore/radarcore/internal/arpa/history"
	"github.com/marinecore/radarcore/internal/geo"
)

const testSpokesPerRev = 64

func testConverter() geo.Converter {
	return geo.NewConverter(testSpokesPerRev, 1.0)
}

func TestNewSeedsAcquire0AndPosition(t *testing.T) {
	conv := testConverter()
	tgt := New(conv, 0, 20, 1000, 51.0, -1.0)

	if tgt.Status != Acquire0 {
		t.Errorf("expected a freshly acquired target to start at Acquire0, got %v", tgt.Status)
	}
	if tgt.FirstSeenMs != 1000 || tgt.LastSeenMs != 1000 {
		t.Errorf("expected FirstSeenMs/LastSeenMs seeded to nowMs, got %d/%d", tgt.FirstSeenMs, tgt.LastSeenMs)
	}
	if tgt.Kalman.LatM() <= 0 {
		t.Errorf("expected a positive local latitude offset for a target ahead at angle 0, got %v", tgt.Kalman.LatM())
	}
	if tgt.ID == "" {
		t.Errorf("expected a non-empty opaque id")
	}
}

func TestRefreshWithNoBlobIncrementsLostCountUntilLost(t *testing.T) {
	conv := testConverter()
	h := history.New(testSpokesPerRev, 32)
	tgt := New(conv, 0, 20, 0, 0, 0)
	cfg := Config{MinContourLength: 1, MaxContourLength: 100, MaxLostCount: 2}

	tgt.Refresh(h, conv, cfg, 1000, 0, 0, PassFirst)
	if tgt.Status == Lost {
		t.Fatalf("did not expect Lost after a single miss with MaxLostCount=2")
	}
	if tgt.LostCount != 1 {
		t.Errorf("expected LostCount=1 after one miss, got %d", tgt.LostCount)
	}

	tgt.Refresh(h, conv, cfg, 2000, 0, 0, PassFirst)
	if tgt.Status != Lost {
		t.Errorf("expected Status=Lost once LostCount reaches MaxLostCount, got %v (lostCount=%d)", tgt.Status, tgt.LostCount)
	}
}

func TestEligibleReflectsMaxLostCount(t *testing.T) {
	tgt := &Target{LostCount: 3}
	if !tgt.Eligible(3) {
		t.Errorf("expected Eligible(3) true when LostCount==3")
	}
	if tgt.Eligible(4) {
		t.Errorf("expected Eligible(4) false when LostCount==3")
	}
}

func TestRefreshAdvancesAcquisitionStageOnMatchingBlob(t *testing.T) {
	conv := testConverter()
	h := history.New(testSpokesPerRev, 32)
	for a := int32(0); a < testSpokesPerRev; a++ {
		data := make([]byte, 32)
		data[20] = 13 // bright ring at r=20 on every spoke
		h.UpdateSpoke(a, data, 0, 0, 0)
	}

	tgt := New(conv, 0, 20, 0, 0, 0)
	cfg := Config{
		SearchRadiusPixels:  25,
		MinContourLength:    1,
		MaxContourLength:    200,
		MaxLostCount:        3,
		MaxDetectionSpeedKn: 70,
	}

	tgt.Refresh(h, conv, cfg, 1000, 0, 0, PassFirst)

	if tgt.Status != Acquire1 {
		t.Errorf("expected the target to advance from Acquire0 to Acquire1 on a matching blob, got %v", tgt.Status)
	}
	if tgt.LostCount != 0 {
		t.Errorf("expected LostCount reset to 0 on a successful refresh, got %d", tgt.LostCount)
	}
	if tgt.LastSeenMs != 1000 {
		t.Errorf("expected LastSeenMs updated to nowMs, got %d", tgt.LastSeenMs)
	}
}
