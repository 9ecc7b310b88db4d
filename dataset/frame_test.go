package dataset

import "testing"

func TestFrameAddColumn(t *testing.T) {
	f := NewFrame(3)

	if err := f.AddColumn("coupon", []float64{0, 1, 0}); err != nil {
		t.Fatalf("AddColumn() error = %v", err)
	}

	// Wrong length.
	if err := f.AddColumn("short", []float64{1}); err == nil {
		t.Error("expected error for mismatched column length")
	}

	// Duplicate name.
	if err := f.AddColumn("coupon", []float64{1, 1, 1}); err == nil {
		t.Error("expected error for duplicate column name")
	}

	got, ok := f.Column("coupon")
	if !ok {
		t.Fatal("Column(coupon) not found")
	}
	if len(got) != 3 || got[1] != 1 {
		t.Errorf("Column(coupon) = %v", got)
	}
}

func TestFrameSelect(t *testing.T) {
	f := NewFrame(2)
	if err := f.AddColumn("a", []float64{1, 2}); err != nil {
		t.Fatal(err)
	}
	if err := f.AddColumn("b", []float64{3, 4}); err != nil {
		t.Fatal(err)
	}

	X, missing, ok := f.Select([]string{"b", "a"})
	if !ok {
		t.Fatalf("Select reported missing column %q", missing)
	}
	if X.At(0, 0) != 3 || X.At(0, 1) != 1 || X.At(1, 0) != 4 || X.At(1, 1) != 2 {
		t.Errorf("Select assembled wrong matrix: %v", X.RawMatrix().Data)
	}

	_, missing, ok = f.Select([]string{"a", "c"})
	if ok {
		t.Fatal("Select succeeded with a missing column")
	}
	if missing != "c" {
		t.Errorf("missing = %q, want %q", missing, "c")
	}
}
