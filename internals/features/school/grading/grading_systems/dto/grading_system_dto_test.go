// file: internals/features/school/grading/grading_systems/dto/grading_system_dto_test.go
package dto

import (
	"testing"

	service "edupro_backend/internals/features/school/grading/grading_systems/service"
)

func strp(s string) *string   { return &s }
func f64p(v float64) *float64 { return &v }

func TestBandsToServiceNamesMissingField(t *testing.T) {
	full := func() GradeBandInput {
		return GradeBandInput{
			GradeName:     strp("A"),
			MinPercentage: f64p(80),
			MaxPercentage: f64p(100),
			Points:        f64p(4),
		}
	}

	tests := []struct {
		name    string
		mutate  func(*GradeBandInput)
		wantErr string
	}{
		{"missing grade_name", func(b *GradeBandInput) { b.GradeName = nil }, "grade_name is required"},
		{"missing min_percentage", func(b *GradeBandInput) { b.MinPercentage = nil }, "min_percentage is required"},
		{"missing max_percentage", func(b *GradeBandInput) { b.MaxPercentage = nil }, "max_percentage is required"},
		{"missing points", func(b *GradeBandInput) { b.Points = nil }, "points is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := full()
			tt.mutate(&in)
			_, err := BandsToService([]GradeBandInput{in})
			if err == nil {
				t.Fatalf("BandsToService() = nil error, want %q", tt.wantErr)
			}
			if _, ok := err.(*service.ValidationError); !ok {
				t.Fatalf("error type = %T, want *service.ValidationError", err)
			}
			if err.Error() != tt.wantErr {
				t.Fatalf("error = %q, want %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestBandsToServiceConverts(t *testing.T) {
	got, err := BandsToService([]GradeBandInput{
		{GradeName: strp("A"), MinPercentage: f64p(80), MaxPercentage: f64p(100), Points: f64p(4)},
		{GradeName: strp("F"), MinPercentage: f64p(0), MaxPercentage: f64p(39), Points: f64p(0)},
	})
	if err != nil {
		t.Fatalf("BandsToService() error = %v", err)
	}
	want := []service.Band{
		{GradeName: "A", MinPercentage: 80, MaxPercentage: 100, Points: 4},
		{GradeName: "F", MinPercentage: 0, MaxPercentage: 39, Points: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("band %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCreateRequestNormalizeTrims(t *testing.T) {
	req := CreateGradingSystemRequest{
		Name: "  Standard Scale  ",
		Bands: []GradeBandInput{
			{GradeName: strp(" A "), MinPercentage: f64p(80), MaxPercentage: f64p(100), Points: f64p(4)},
		},
	}
	req.Normalize()
	if req.Name != "Standard Scale" {
		t.Fatalf("Name = %q, want %q", req.Name, "Standard Scale")
	}
	if *req.Bands[0].GradeName != "A" {
		t.Fatalf("GradeName = %q, want %q", *req.Bands[0].GradeName, "A")
	}
}
