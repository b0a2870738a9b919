package queryplan

import "testing"

func TestSSBReturnsFourFixedQueries(t *testing.T) {
	for q := 0; q < 4; q++ {
		plan, err := SSB(q)
		if err != nil {
			t.Fatalf("SSB(%d) unexpected error: %v", q, err)
		}
		if plan.QueryID != q {
			t.Errorf("SSB(%d).QueryID = %d, want %d", q, plan.QueryID, q)
		}
		if plan.FactTable != "lineorder" {
			t.Errorf("SSB(%d).FactTable = %q, want lineorder", q, plan.FactTable)
		}
		if len(plan.Joins) == 0 {
			t.Errorf("SSB(%d) has no joins, want at least one", q)
		}
		if plan.TotalVal <= 0 {
			t.Errorf("SSB(%d).TotalVal = %d, want > 0", q, plan.TotalVal)
		}
		if plan.Aggregate.V1Column == "" {
			t.Errorf("SSB(%d) has no aggregate value column", q)
		}
	}
}

func TestSSBUnknownQueryRejected(t *testing.T) {
	if _, err := SSB(4); err == nil {
		t.Fatal("SSB(4) expected error, got nil")
	}
	if _, err := SSB(-1); err == nil {
		t.Fatal("SSB(-1) expected error, got nil")
	}
}

// TestQ21GroupCardinalityMatchesScenarioS2 checks the dense-hash stride
// choice for Q2.1 keeps every (brand, year) pair distinct up to the 280
// non-empty groups scenario S2 names: 40 distinct p_brand1 values (SF1's
// MFGR#12 category) crossed with the 7-year d_year span.
func TestQ21GroupCardinalityMatchesScenarioS2(t *testing.T) {
	plan := q21()

	brandSpec := plan.GroupBy[1].KeySpec
	yearSpec := plan.GroupBy[2].KeySpec

	seen := map[int]bool{}
	for brand := int32(0); brand < 40; brand++ {
		for year := int32(1992); year <= 1998; year++ {
			h := int(brand-brandSpec.Min)*int(brandSpec.Stride) + int(year-yearSpec.Min)*int(yearSpec.Stride)
			if seen[h] {
				t.Fatalf("collision at brand=%d year=%d, h=%d", brand, year, h)
			}
			seen[h] = true
		}
	}
	if len(seen) != 40*7 {
		t.Fatalf("distinct group addresses = %d, want %d", len(seen), 40*7)
	}
}
