package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"yoloserver/internal/client"
)

func main() {
	url := flag.String("url", "http://localhost:7860/predict", "Prediction endpoint")
	contentType := flag.String("type", "", "Content type to declare (sniffed when empty)")
	timeout := flag.Duration("timeout", 30*time.Second, "Per-request timeout")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: predict [-url URL] [-type MIME] image...")
		os.Exit(2)
	}

	c := client.NewClient(*url)
	failed := 0

	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("⚠️  Skipping %s: %v", path, err)
			failed++
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		result, err := c.Predict(ctx, path, *contentType, data)
		cancel()
		if err != nil {
			log.Printf("❌ %s: %v", path, err)
			failed++
			continue
		}

		out, _ := json.MarshalIndent(map[string]interface{}{
			"file":       path,
			"detections": result.Detections,
		}, "", "  ")
		fmt.Println(string(out))
	}

	if failed > 0 {
		os.Exit(1)
	}
}
