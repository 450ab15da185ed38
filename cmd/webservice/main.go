package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/ohowland/cgc_augment/internal/pkg/database"
	"github.com/ohowland/cgc_augment/internal/pkg/webservice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	in := flag.String("in", "", "network location to serve")
	port := flag.String("port", "8080", "listen port")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	log.Println("[Main] Reading Network")
	n, err := database.Read(context.Background(), *in)
	if err != nil {
		panic(err)
	}

	r := webservice.New(n).Router()
	r.Handle("/metrics", promhttp.Handler())

	addr := ":" + *port
	log.Println("[Main] Starting Server on Port", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
