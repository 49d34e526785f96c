package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Generates sample gzipped warranty documents under documents/ for the
// warranty endpoint to pick up locally.
func main() {
	dataDir := "documents"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	docs := map[string][]string{
		"warranty-standard.gz": {
			"Limited warranty.",
			"This product is covered for 12 months from the date of purchase.",
			"Damage caused by misuse is not covered.",
		},
		"warranty-extended.gz": {
			"Extended warranty.",
			"This product is covered for 36 months from the date of purchase.",
			"Accidental damage is covered for the first 12 months.",
			"Claims require proof of purchase.",
		},
	}

	for filename, lines := range docs {
		filePath := filepath.Join(dataDir, filename)

		if err := createDocumentFile(filePath, lines); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d lines\n", filePath, len(lines))
	}

	fmt.Println("\nSample warranty documents created successfully!")
}

func createDocumentFile(filePath string, lines []string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	for _, line := range lines {
		if _, err := gzipWriter.Write([]byte(line + "\n")); err != nil {
			return fmt.Errorf("failed to write line: %w", err)
		}
	}

	return nil
}
