package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/geonorm/pkg/geonorm"
)

func main() {
	// Read a GML feature collection
	data, err := os.ReadFile("parcels.xml")
	if err != nil {
		log.Fatal(err)
	}

	// Create parser and normalize
	parser := geonorm.NewParser()
	batch, err := parser.ParseGML(data, geonorm.DefaultParseOptions())
	if err != nil {
		log.Fatal(err)
	}

	// Print batch info
	fmt.Printf("Features: %d\n", batch.FeatureCount())
	fmt.Printf("Columns: %v\n", batch.Columns())

	// Get batch bounds
	bounds := batch.Bounds()
	fmt.Printf("Bounds: [%.4f,%.4f] to [%.4f,%.4f]\n",
		bounds.MinLon, bounds.MinLat,
		bounds.MaxLon, bounds.MaxLat)
}
