package fitplan

import (
	"errors"
	"math"
	"testing"

	"bucketcrop/internal/bucket"
)

func TestSelectBucketDeterministic(t *testing.T) {
	catalog := bucket.DefaultCatalog()
	first, err := SelectBucket(1234, 777, catalog)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := SelectBucket(1234, 777, catalog)
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		if again != first {
			t.Fatalf("run %d: selected %s, previously %s", i, again.Name, first.Name)
		}
	}
}

func TestSelectBucketTieBreaksByOrder(t *testing.T) {
	// A square source is equidistant from 2:1 and 1:2 in log space, so the
	// first-listed candidate must win.
	wide := bucket.New("2:1", 2, 1)
	tall := bucket.New("1:2", 1, 2)

	got, err := SelectBucket(100, 100, bucket.Catalog{wide, tall})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got.Name != "2:1" {
		t.Errorf("expected first-listed 2:1, got %s", got.Name)
	}

	got, err = SelectBucket(100, 100, bucket.Catalog{tall, wide})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got.Name != "1:2" {
		t.Errorf("expected first-listed 1:2, got %s", got.Name)
	}
}

func TestCropAlreadyMatching(t *testing.T) {
	catalog, err := bucket.DefaultCatalog().Select("16:9", "1:1", "9:16")
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	plan, err := Compute(1920, 1080, catalog, ModeCrop, 0)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if plan.Bucket.Name != "16:9" {
		t.Errorf("expected 16:9, got %s", plan.Bucket.Name)
	}
	if plan.CropRect.Dx() != 1920 || plan.CropRect.Dy() != 1080 {
		t.Errorf("expected full-frame crop, got %v", plan.CropRect)
	}
	if plan.OutputWidth != 1920 || plan.OutputHeight != 1080 {
		t.Errorf("expected 1920x1080 output, got %dx%d", plan.OutputWidth, plan.OutputHeight)
	}
}

func TestCropToSquareIsCentered(t *testing.T) {
	catalog := bucket.Catalog{bucket.New("1:1", 1, 1)}

	plan, err := Compute(1920, 1080, catalog, ModeCrop, 0)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if plan.CropRect.Dx() != 1080 || plan.CropRect.Dy() != 1080 {
		t.Errorf("expected 1080x1080 crop, got %dx%d", plan.CropRect.Dx(), plan.CropRect.Dy())
	}
	if plan.CropRect.Min.X != 420 || plan.CropRect.Min.Y != 0 {
		t.Errorf("expected crop at (420,0), got %v", plan.CropRect.Min)
	}
}

func TestCropInvariants(t *testing.T) {
	catalog := bucket.DefaultCatalog()
	sizes := [][2]int{{1920, 1080}, {640, 480}, {333, 777}, {4096, 4096}, {1234, 567}}

	for _, s := range sizes {
		plan, err := Compute(s[0], s[1], catalog, ModeCrop, 0)
		if err != nil {
			t.Fatalf("compute %dx%d: %v", s[0], s[1], err)
		}
		if plan.CropRect.Dx() > s[0] || plan.CropRect.Dy() > s[1] {
			t.Errorf("%dx%d: crop %v exceeds source", s[0], s[1], plan.CropRect)
		}
		gotRatio := float64(plan.CropRect.Dx()) / float64(plan.CropRect.Dy())
		// Within one pixel of rounding on either dimension.
		tol := 1.0/float64(plan.CropRect.Dy()) + 1.0/float64(plan.CropRect.Dx())
		if math.Abs(gotRatio-plan.Bucket.Ratio()) > tol {
			t.Errorf("%dx%d: crop ratio %f, bucket %s wants %f", s[0], s[1], gotRatio, plan.Bucket.Name, plan.Bucket.Ratio())
		}
	}
}

func TestPadToPortrait(t *testing.T) {
	catalog := bucket.Catalog{bucket.New("9:16", 9, 16)}

	plan, err := Compute(800, 600, catalog, ModePad, 0)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if plan.CanvasWidth != 800 || plan.CanvasHeight != 1422 {
		t.Errorf("expected 800x1422 canvas, got %dx%d", plan.CanvasWidth, plan.CanvasHeight)
	}
	if plan.Origin.X != 0 || plan.Origin.Y != 411 {
		t.Errorf("expected source at (0,411), got %v", plan.Origin)
	}
}

func TestPadInvariants(t *testing.T) {
	catalog := bucket.DefaultCatalog()
	sizes := [][2]int{{800, 600}, {1080, 1920}, {500, 500}, {123, 456}}

	for _, s := range sizes {
		plan, err := Compute(s[0], s[1], catalog, ModePad, 0)
		if err != nil {
			t.Fatalf("compute %dx%d: %v", s[0], s[1], err)
		}
		if plan.CanvasWidth < s[0] || plan.CanvasHeight < s[1] {
			t.Errorf("%dx%d: canvas %dx%d smaller than source", s[0], s[1], plan.CanvasWidth, plan.CanvasHeight)
		}
		if plan.Origin.X+s[0] > plan.CanvasWidth || plan.Origin.Y+s[1] > plan.CanvasHeight {
			t.Errorf("%dx%d: source at %v overflows canvas", s[0], s[1], plan.Origin)
		}
	}
}

func TestClampNoOpWithinBound(t *testing.T) {
	catalog := bucket.Catalog{bucket.New("16:9", 16, 9)}
	plan, err := Compute(1920, 1080, catalog, ModeCrop, 2000)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if plan.OutputWidth != 1920 || plan.OutputHeight != 1080 {
		t.Errorf("clamp within bound changed output: %dx%d", plan.OutputWidth, plan.OutputHeight)
	}
	if plan.Scaled() {
		t.Error("plan reports a resample for an in-bound clamp")
	}
}

func TestClampDownscalesOversized(t *testing.T) {
	catalog := bucket.Catalog{bucket.New("16:9", 16, 9)}
	plan, err := Compute(3840, 2160, catalog, ModeCrop, 1920)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if plan.OutputWidth != 1920 {
		t.Errorf("expected longest side 1920, got %d", plan.OutputWidth)
	}
	if plan.OutputHeight != 1080 {
		t.Errorf("expected proportional height 1080, got %d", plan.OutputHeight)
	}
	if !plan.Scaled() {
		t.Error("plan does not report the resample")
	}
}

func TestClampNeverEnlarges(t *testing.T) {
	catalog := bucket.Catalog{bucket.New("1:1", 1, 1)}
	plan, err := Compute(100, 100, catalog, ModeCrop, 5000)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if plan.OutputWidth != 100 || plan.OutputHeight != 100 {
		t.Errorf("clamp enlarged output to %dx%d", plan.OutputWidth, plan.OutputHeight)
	}
}

func TestInvalidGeometry(t *testing.T) {
	catalog := bucket.DefaultCatalog()

	cases := []struct {
		name       string
		w, h       int
		candidates bucket.Catalog
	}{
		{"zero width", 0, 100, catalog},
		{"negative height", 100, -1, catalog},
		{"empty candidates", 100, 100, nil},
		{"degenerate crop", 1, 10000, bucket.Catalog{bucket.New("1000:1", 1000, 1)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Compute(tc.w, tc.h, tc.candidates, ModeCrop, 0); !errors.Is(err, ErrInvalidGeometry) {
				t.Fatalf("expected ErrInvalidGeometry, got %v", err)
			}
		})
	}
}
