package models

import "testing"

func TestAssetValidate(t *testing.T) {
	base := Asset{
		ID:              "BB-001",
		Name:            "Main St bulletin",
		Format:          FormatBulletin,
		Profile:         ProfileCommuter,
		DailyBaseVolume: 50000,
	}

	if err := base.Validate(); err != nil {
		t.Errorf("valid asset rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Asset)
		wantErr bool
	}{
		{"missing id", func(a *Asset) { a.ID = "" }, true},
		{"missing name", func(a *Asset) { a.Name = "" }, true},
		{"negative volume", func(a *Asset) { a.DailyBaseVolume = -1 }, true},
		{"unknown format", func(a *Asset) { a.Format = "jumbotron" }, true},
		{"empty format defaults", func(a *Asset) { a.Format = "" }, false},
		{"zero volume ok", func(a *Asset) { a.DailyBaseVolume = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := base
			tt.mutate(&a)
			err := a.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAssetValidateNormalizes(t *testing.T) {
	a := Asset{ID: "BB-002", Name: "Mall poster", Profile: "RETAIL", DailyBaseVolume: 1000}
	if err := a.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if a.Format != FormatBulletin {
		t.Errorf("format = %s, want bulletin default", a.Format)
	}
	if a.Profile != ProfileRetail {
		t.Errorf("profile = %s, want normalized retail", a.Profile)
	}
}
