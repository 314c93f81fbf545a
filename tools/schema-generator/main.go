// Command schema-generator reflects the configuration types into a JSON
// schema. The embedded schema/joystick.schema.json is maintained by hand
// (it carries patterns the struct tags cannot express); diff it against the
// generated file when the configuration types change.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/grovetools/joystick/config"
)

func main() {
	outputPath := flag.String("o", "schema/definitions/config.schema.json", "output file")
	flag.Parse()

	schemaBytes, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(*outputPath), 0755); err != nil {
		log.Fatalf("Error creating schema directory: %v", err)
	}

	if err := os.WriteFile(*outputPath, schemaBytes, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated schema at %s", *outputPath)
}
