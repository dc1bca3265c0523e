package openfoodfacts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sampleResponse = `{
	"status": 1,
	"product": {
		"product_name": "Peanut Butter",
		"brands": "TestBrand",
		"categories": "Spreads",
		"ingredients_text": "Peanuts, salt",
		"image_url": "https://images.example/pb.jpg",
		"nutriscore_grade": "c",
		"nutriments": {
			"energy-kcal_100g": 589,
			"fat_100g": 50,
			"saturated-fat_100g": 7.5,
			"carbohydrates_100g": 22,
			"sugars_100g": "9.2",
			"fiber_100g": 6,
			"proteins_100g": 25,
			"salt_100g": 1.1,
			"sodium_100g": "N/A"
		}
	}
}`

func TestGetProduct(t *testing.T) {
	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "nutriscan/1.0", 5*time.Second)
	p, err := c.GetProduct(context.Background(), "737628064502")
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}

	if gotPath != "/api/v0/product/737628064502.json" {
		t.Errorf("path = %s", gotPath)
	}
	if gotUA != "nutriscan/1.0" {
		t.Errorf("user agent = %s", gotUA)
	}
	if p.Name != "Peanut Butter" || p.Brands != "TestBrand" {
		t.Errorf("metadata mismatch: %+v", p)
	}
	if p.Nutrients.EnergyKcal.Value() != 589 {
		t.Errorf("energy = %v", p.Nutrients.EnergyKcal.Value())
	}
	if p.Nutrients.Sugars.Value() != 9.2 {
		t.Errorf("string-typed sugars = %v, want 9.2", p.Nutrients.Sugars.Value())
	}
	if p.Nutrients.Sodium.Known() {
		t.Error("N/A sodium should be unknown")
	}
}

func TestGetProductNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 0, "status_verbose": "product not found"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", 0)
	_, err := c.GetProduct(context.Background(), "00000000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetProductHTTP404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", 0)
	_, err := c.GetProduct(context.Background(), "00000000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetProductServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", 0)
	_, err := c.GetProduct(context.Background(), "737628064502")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("expected transport error, got %v", err)
	}
}

func TestGetProductMetadataDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 1, "product": {"nutriments": {}}}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", 0)
	p, err := c.GetProduct(context.Background(), "73513537")
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if p.Name != "Unknown Product" || p.Brands != "Unknown" || p.IngredientsText != "Not available" || p.NutriscoreGrade != "N/A" {
		t.Errorf("defaults not applied: %+v", p)
	}
}
