package main

// recommend - Go implementation of laptop recommendation dashboard
//
// Copyright (c) 2023 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/vkuznet/mlservices/internal/dashboard"
	"github.com/vkuznet/mlservices/internal/dataset"
	"github.com/vkuznet/mlservices/internal/server"
)

// version of the code
var version string

func main() {
	var config string
	flag.StringVar(&config, "config", "", "configuration file")
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "print version information about the server")
	flag.Parse()
	server.Version = version
	if showVersion {
		fmt.Println(server.Info(dashboard.Name))
		os.Exit(0)
	}
	defaults := server.Configuration{
		Port:     8501,
		DataFile: "./datasets/clusterizacao_laptops.csv",
	}
	if err := server.ParseConfig(config, defaults); err != nil {
		log.Fatalf("unable to parse config %s, error %v\n", config, err)
	}
	if err := server.InitLogging(); err != nil {
		log.Fatalf("unable to initialize logging, error %v", err)
	}
	if server.Config.Verbose > 0 {
		log.Printf("%+v\n", server.Config)
	}

	data, err := dataset.Load(server.Config.DataFile, server.Config.CacheSize)
	if err != nil {
		log.Fatalf("unable to load dataset, error %v", err)
	}
	log.Printf("loaded %d rows and %d models from %s", data.Len(), len(data.Models()), data.Path)
	svc := dashboard.New(data)
	server.Server(&server.Service{
		Name:     dashboard.Name,
		Title:    dashboard.Title,
		Artifact: server.Config.DataFile,
		Docs:     "recommend.md",
		Routes:   svc.Routes(),
	})
}
