// Package main provides the onnxmeta CLI.
package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/born-ml/onnxmeta/metadata"
)

const version = "v0.1.0"

var outputPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "onnxmeta MODEL_PATH",
		Short: "onnxmeta extracts metadata from an ONNX model",
		Long: `onnxmeta reads a serialized ONNX model file and writes a JSON report
covering model identity, input/output tensor specifications, custom
key-value metadata, opset versions, and the full computation graph.`,
		Version: version,
		Args:    cobra.ExactArgs(1),
		Run:     extractMetadata,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "model_metadata.json", "Output JSON file name")

	if err := rootCmd.Execute(); err != nil {
		log.Fatalln(err.Error())
	}
}

func extractMetadata(_ *cobra.Command, args []string) {
	report, err := metadata.Extract(args[0])
	if err != nil {
		log.Fatalln(err.Error())
	}

	if err := report.WriteFile(outputPath); err != nil {
		log.Fatalln(err.Error())
	}

	fmt.Printf("Metadata extracted and saved to %s\n", outputPath)
}
