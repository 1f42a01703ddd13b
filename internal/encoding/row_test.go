package encoding

import (
	"errors"
	"testing"

	"mental-predictor/internal/feature"
)

func sampleVector() feature.Vector {
	return feature.Vector{
		feature.Text("Male"),
		feature.Text("USA"),
		feature.Text("Engineer"),
		feature.Text("No"),
		feature.Text("Yes"),
		feature.Text("No"),
		feature.Number(5),
		feature.Number(3),
		feature.Number(2),
		feature.Text("No"),
		feature.Text("Yes"),
		feature.Text("Sometimes"),
		feature.Text("High"),
		feature.Text("Low"),
		feature.Text("No"),
		feature.Text("Yes"),
	}
}

func TestLabelEncoderSortsClasses(t *testing.T) {
	enc := NewLabelEncoder("Male", "Female", "Other", "Male")
	classes := enc.Classes()
	want := []string{"Female", "Male", "Other"}
	if len(classes) != len(want) {
		t.Fatalf("expected %v, got %v", want, classes)
	}
	for i := range want {
		if classes[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, classes)
		}
	}
	if code, err := enc.Transform("Male"); err != nil || code != 1 {
		t.Fatalf("expected Male=1, got %d %v", code, err)
	}
	if _, err := enc.Transform("male"); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	if label, err := enc.Inverse(2); err != nil || label != "Other" {
		t.Fatalf("expected Other, got %q %v", label, err)
	}
	if _, err := enc.Inverse(3); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestRowEncoderEncode(t *testing.T) {
	enc := NewDefaultRowEncoder()
	row, err := enc.Encode(sampleVector())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// Gender: Female,Male,Other -> Male=1; Country: Kenya,Other,UK,USA -> USA=3.
	want := []float64{1, 3, 1, 0, 1, 0, 5, 3, 2, 0, 1, 2, 0, 1, 0, 1}
	for i := range want {
		if row[i] != want[i] {
			t.Fatalf("column %s: expected %v, got %v", feature.Name(i), want[i], row[i])
		}
	}
}

func TestRowEncoderCountryFallback(t *testing.T) {
	enc := NewDefaultRowEncoder()
	vec := sampleVector()
	vec[feature.Index(feature.Country)] = feature.Text("Brazil")
	row, err := enc.Encode(vec)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if row[feature.Index(feature.Country)] != 1 {
		t.Fatalf("expected Other=1, got %v", row[feature.Index(feature.Country)])
	}
}

func TestRowEncoderUnknownCategory(t *testing.T) {
	enc := NewDefaultRowEncoder()
	vec := sampleVector()
	vec[0] = feature.Text("invalid")
	_, err := enc.Encode(vec)
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	want := "Unknown category in feature 'Gender': y contains previously unseen labels: ['invalid']"
	if err.Error() != want {
		t.Fatalf("unexpected message:\n got %s\nwant %s", err.Error(), want)
	}
}

func TestRowEncoderNumberInCategoricalColumn(t *testing.T) {
	enc := NewDefaultRowEncoder()
	vec := sampleVector()
	vec[feature.Index(feature.MoodSwings)] = feature.Number(3)
	_, err := enc.Encode(vec)
	want := "Unknown category in feature 'Mood_Swings': y contains previously unseen labels: [3]"
	if err == nil || err.Error() != want {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRowEncoderTextInNumericColumn(t *testing.T) {
	enc := NewDefaultRowEncoder()
	vec := sampleVector()
	vec[feature.Index(feature.DaysIndoors)] = feature.Text("often")
	if _, err := enc.Encode(vec); !errors.Is(err, ErrNotNumeric) {
		t.Fatalf("expected ErrNotNumeric, got %v", err)
	}
}

func TestRowEncoderWrongLength(t *testing.T) {
	enc := NewDefaultRowEncoder()
	_, err := enc.Encode(feature.Vector{feature.Number(0.5), feature.Number(1.2)})
	if err == nil || err.Error() != "16 columns passed, passed data had 2 columns" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewRowEncoderValidation(t *testing.T) {
	if _, err := NewRowEncoder(map[string][]string{"Age": {"x"}}, nil); err == nil {
		t.Fatalf("expected error for unknown feature")
	}
	if _, err := NewRowEncoder(map[string][]string{feature.Country: {"USA"}}, map[string]string{feature.Country: "Other"}); err == nil {
		t.Fatalf("expected error for fallback outside classes")
	}
	enc := NewDefaultRowEncoder()
	if enc.IsCategorical(feature.DaysIndoors) || !enc.IsCategorical(feature.Gender) {
		t.Fatalf("unexpected categorical columns")
	}
	if got := enc.Classes(feature.WorkInterest); len(got) != 3 || got[0] != "High" {
		t.Fatalf("unexpected classes %v", got)
	}
}
