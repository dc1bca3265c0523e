// Package openfoodfacts fetches product records from the OpenFoodFacts
// public database. It is the engine's product data source; retries and
// caching are deliberately left to callers.
package openfoodfacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nutriscan/nutriscan/internal/score"
)

// ErrNotFound means the barcode is not in the database.
var ErrNotFound = errors.New("product not found")

// Product is one packaged food product: the nutrient record the scoring
// engine consumes plus display metadata that passes through unscored.
type Product struct {
	Barcode         string       `json:"barcode"`
	Name            string       `json:"product_name"`
	Brands          string       `json:"brands"`
	Categories      string       `json:"categories"`
	IngredientsText string       `json:"ingredients_text"`
	ImageURL        string       `json:"image_url,omitempty"`
	NutriscoreGrade string       `json:"nutriscore_grade"`
	Nutrients       score.Record `json:"nutriments"`
}

type Client interface {
	GetProduct(ctx context.Context, barcode string) (*Product, error)
}

type HTTPClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, userAgent string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type nutriments struct {
	EnergyKcal    score.Amount `json:"energy-kcal_100g"`
	Fat           score.Amount `json:"fat_100g"`
	SaturatedFat  score.Amount `json:"saturated-fat_100g"`
	Carbohydrates score.Amount `json:"carbohydrates_100g"`
	Sugars        score.Amount `json:"sugars_100g"`
	Fiber         score.Amount `json:"fiber_100g"`
	Proteins      score.Amount `json:"proteins_100g"`
	Salt          score.Amount `json:"salt_100g"`
	Sodium        score.Amount `json:"sodium_100g"`
}

type productResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName     string     `json:"product_name"`
		Brands          string     `json:"brands"`
		Categories      string     `json:"categories"`
		IngredientsText string     `json:"ingredients_text"`
		ImageURL        string     `json:"image_url"`
		NutriscoreGrade string     `json:"nutriscore_grade"`
		Nutriments      nutriments `json:"nutriments"`
	} `json:"product"`
}

// GetProduct fetches one product by barcode. Missing metadata fields get the
// same placeholder values the UI has always shown.
func (c *HTTPClient) GetProduct(ctx context.Context, barcode string) (*Product, error) {
	url := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL, barcode)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openfoodfacts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("openfoodfacts: %d %s", resp.StatusCode, string(body))
	}

	var pr productResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("openfoodfacts: decode response: %w", err)
	}
	if pr.Status != 1 {
		return nil, ErrNotFound
	}

	p := &Product{
		Barcode:         barcode,
		Name:            orDefault(pr.Product.ProductName, "Unknown Product"),
		Brands:          orDefault(pr.Product.Brands, "Unknown"),
		Categories:      orDefault(pr.Product.Categories, "Unknown"),
		IngredientsText: orDefault(pr.Product.IngredientsText, "Not available"),
		ImageURL:        pr.Product.ImageURL,
		NutriscoreGrade: orDefault(pr.Product.NutriscoreGrade, "N/A"),
		Nutrients: score.Record{
			EnergyKcal:    pr.Product.Nutriments.EnergyKcal,
			Fat:           pr.Product.Nutriments.Fat,
			SaturatedFat:  pr.Product.Nutriments.SaturatedFat,
			Carbohydrates: pr.Product.Nutriments.Carbohydrates,
			Sugars:        pr.Product.Nutriments.Sugars,
			Fiber:         pr.Product.Nutriments.Fiber,
			Proteins:      pr.Product.Nutriments.Proteins,
			Salt:          pr.Product.Nutriments.Salt,
			Sodium:        pr.Product.Nutriments.Sodium,
		},
	}
	return p, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
