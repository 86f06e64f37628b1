package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-raytracer/pkg/config"
	"github.com/df07/go-raytracer/pkg/output"
	"github.com/df07/go-raytracer/web/server"
)

// serverLogger routes library log lines to the standard logger
type serverLogger struct{}

func (serverLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}

	// Parse command line flags
	port := flag.Int("port", cfg.Port, "Port to serve on")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port)

	if cfg.S3.Enabled() {
		publisher, err := output.NewS3Publisher(cfg.S3, serverLogger{})
		if err != nil {
			log.Printf("Error configuring S3 uploads: %v", err)
			os.Exit(1)
		}
		webServer.SetPublisher(publisher)
		log.Printf("Uploads enabled to bucket %s", cfg.S3.Bucket)
	}

	log.Printf("Raytracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=default", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
