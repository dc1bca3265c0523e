// batch_scan.go — standalone script to score a list of barcodes via the nutriscan API.
//
// Reads one barcode per line (blank lines and # comments skipped) and hits
// GET /api/v1/products/{barcode} for each, printing a one-line summary.
//
// Usage:
//
//	go run scripts/batch_scan.go -file barcodes.txt -api http://localhost:8700
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
)

type analysis struct {
	Product struct {
		Barcode string `json:"barcode"`
		Name    string `json:"name"`
		Brands  string `json:"brands"`
	} `json:"product"`
	Analysis struct {
		Score    int      `json:"score"`
		Band     string   `json:"band"`
		Concerns []string `json:"concerns"`
	} `json:"analysis"`
}

func main() {
	filePath := flag.String("file", "barcodes.txt", "path to barcode list, one per line")
	apiURL := flag.String("api", "http://localhost:8700", "nutriscan API base URL")
	minScore := flag.Int("min-score", 0, "only print products scoring at or above this")
	flag.Parse()

	f, err := os.Open(*filePath)
	if err != nil {
		log.Fatalf("open barcode list: %v", err)
	}
	defer f.Close()

	var codes []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		codes = append(codes, line)
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read barcode list: %v", err)
	}

	log.Printf("scoring %d barcodes against %s", len(codes), *apiURL)

	client := &http.Client{}
	scored, skipped := 0, 0
	for _, code := range codes {
		resp, err := client.Get(*apiURL + "/api/v1/products/" + code)
		if err != nil {
			log.Printf("skip %s: %v", code, err)
			skipped++
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			log.Printf("skip %s: status %d", code, resp.StatusCode)
			skipped++
			continue
		}

		var a analysis
		err = json.NewDecoder(resp.Body).Decode(&a)
		resp.Body.Close()
		if err != nil {
			log.Printf("skip %s: decode: %v", code, err)
			skipped++
			continue
		}
		scored++

		if a.Analysis.Score < *minScore {
			continue
		}
		fmt.Printf("%s  %3d/100 [%s]  %s (%s)  concerns=%d\n",
			a.Product.Barcode, a.Analysis.Score, a.Analysis.Band,
			a.Product.Name, a.Product.Brands, len(a.Analysis.Concerns))
	}

	log.Printf("done: %d scored, %d skipped", scored, skipped)
}
