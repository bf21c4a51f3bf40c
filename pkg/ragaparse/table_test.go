package ragaparse

import "testing"

func TestParseTable_AllClauses(t *testing.T) {
	raw := "Melakartha 22 Kharaharapriya Arohana S G2 M1 P N2 S Avarohana S N2 D2 P M1 G2 R2 S Listen to samples"

	data := ParseTable(raw)

	if data.MelakarthaNumber == nil || *data.MelakarthaNumber != 22 {
		t.Fatalf("Expected melakartha number 22, got %v", data.MelakarthaNumber)
	}
	if data.MelakarthaName == nil || *data.MelakarthaName != "Kharaharapriya" {
		t.Errorf("Expected melakartha name 'Kharaharapriya', got %v", data.MelakarthaName)
	}
	if data.Arohana == nil || *data.Arohana != "S G2 M1 P N2 S" {
		t.Errorf("Expected arohana 'S G2 M1 P N2 S', got %v", data.Arohana)
	}
	if data.Avarohana == nil || *data.Avarohana != "S N2 D2 P M1 G2 R2 S" {
		t.Errorf("Expected avarohana 'S N2 D2 P M1 G2 R2 S', got %v", data.Avarohana)
	}
}

func TestParseTable_AvarohanaAtEndOfText(t *testing.T) {
	raw := "Melakartha 65 Mechakalyani Arohana S R2 G3 M2 P D2 N3 S Avarohana S N3 D2 P M2 G3 R2 S"

	data := ParseTable(raw)

	if data.Avarohana == nil || *data.Avarohana != "S N3 D2 P M2 G3 R2 S" {
		t.Errorf("Expected avarohana clause bounded by end of text, got %v", data.Avarohana)
	}
}

func TestParseTable_MissingClausesAreNil(t *testing.T) {
	data := ParseTable("Arohana S R2 G3 P D2 S")

	if data.MelakarthaNumber != nil || data.MelakarthaName != nil {
		t.Errorf("Expected nil melakartha fields, got %v %v", data.MelakarthaNumber, data.MelakarthaName)
	}
	if data.Arohana == nil || *data.Arohana != "S R2 G3 P D2 S" {
		t.Errorf("Expected arohana 'S R2 G3 P D2 S', got %v", data.Arohana)
	}
	if data.Avarohana != nil {
		t.Errorf("Expected nil avarohana, got %q", *data.Avarohana)
	}
}

func TestParseTable_EmptyText(t *testing.T) {
	data := ParseTable("")

	if data.MelakarthaNumber != nil || data.MelakarthaName != nil || data.Arohana != nil || data.Avarohana != nil {
		t.Errorf("Expected all-nil table data for empty text, got %+v", data)
	}
}

func TestParseTable_CaseInsensitiveKeywords(t *testing.T) {
	raw := "MELAKARTHA 8 Hanumatodi AROHANA S R1 G2 M1 P D1 N2 S AVAROHANA S N2 D1 P M1 G2 R1 S"

	data := ParseTable(raw)

	if data.MelakarthaNumber == nil || *data.MelakarthaNumber != 8 {
		t.Errorf("Expected melakartha number 8, got %v", data.MelakarthaNumber)
	}
	if data.Arohana == nil {
		t.Error("Expected arohana clause to be found with uppercase keyword")
	}
}
