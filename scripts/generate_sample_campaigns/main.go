// Generates sample gzipped campaign files for local development. Each line
// is CODE:PCT where PCT is the discount percentage.
package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

func main() {
	dataDir := "data/campaigns"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	// Later files override earlier ones on code collisions, so BOXINGDAY
	// resolves to 40 when both files are configured in order.
	campaigns := map[string]map[string]int{
		"campaigns1.gz": {
			"SUMMER30":  30,
			"NEWUSER10": 10,
			"BOXINGDAY": 25,
		},
		"campaigns2.gz": {
			"BOXINGDAY": 40,
			"FLASH15":   15,
		},
	}

	for filename, codes := range campaigns {
		filePath := filepath.Join(dataDir, filename)

		if err := createCampaignFile(filePath, codes); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d campaigns\n", filePath, len(codes))
	}

	fmt.Println("\nSample campaign files created successfully!")
	fmt.Println("Set PROMO_FILE_PATHS=data/campaigns/campaigns1.gz,data/campaigns/campaigns2.gz")
}

func createCampaignFile(filePath string, campaigns map[string]int) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	for code, pct := range campaigns {
		if _, err := fmt.Fprintf(gzipWriter, "%s:%d\n", code, pct); err != nil {
			return fmt.Errorf("failed to write campaign: %w", err)
		}
	}

	return nil
}
