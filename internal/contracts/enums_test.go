package contracts

import "testing"

func TestLoyaltyTier_Score(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"Platinum", 4},
		{"gold", 3},
		{"SILVER", 2},
		{"Jade", 1},
		{"Bronze", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLoyaltyTier(tt.input).Score(); got != tt.want {
				t.Errorf("Score(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFeeStructure_RatePct(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"High", 5},
		{"mid", 3},
		{"Low", 1},
		{"Premium", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFeeStructure(tt.input).RatePct(); got != tt.want {
				t.Errorf("RatePct(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRiskSeverity_Labels(t *testing.T) {
	want := map[RiskSeverity][2]string{
		SeverityLow:      {"Low Risk", "green"},
		SeverityModerate: {"Moderate Risk", "yellow"},
		SeverityHigh:     {"High Risk", "red"},
		SeverityCritical: {"Critical Risk", "red"},
	}

	for sev, labels := range want {
		if sev.String() != labels[0] {
			t.Errorf("String() = %s, want %s", sev.String(), labels[0])
		}
		if sev.Color() != labels[1] {
			t.Errorf("Color() = %s, want %s", sev.Color(), labels[1])
		}
	}
}

func TestSnapshot_Find(t *testing.T) {
	snap := &Snapshot{Customers: []Customer{
		{ClientID: "IND81288", Name: "Raymond Mills"},
		{ClientID: "IND65833", Name: "Julia Spencer"},
	}}

	c, ok := snap.Find("IND65833")
	if !ok || c.Name != "Julia Spencer" {
		t.Errorf("Find() = %+v, %v", c, ok)
	}

	if _, ok := snap.Find("IND00000"); ok {
		t.Error("Expected not to find IND00000")
	}

	if snap.Len() != 2 {
		t.Errorf("Len() = %d, want 2", snap.Len())
	}
}

func TestRelationshipName(t *testing.T) {
	if RelationshipName("3") != "Private Bank" {
		t.Errorf("RelationshipName(3) = %s", RelationshipName("3"))
	}
	if RelationshipName("9") != "Unknown" {
		t.Errorf("RelationshipName(9) = %s", RelationshipName("9"))
	}
}
