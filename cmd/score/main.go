package main

// score - Go implementation of test score prediction service
//
// Copyright (c) 2023 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/vkuznet/mlservices/internal/model"
	"github.com/vkuznet/mlservices/internal/scoring"
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
		fmt.Println(server.Info(scoring.Name))
		os.Exit(0)
	}
	defaults := server.Configuration{
		Port:      8000,
		ModelFile: "./modelo_pontuacao.json",
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

	// model is loaded once, service does not start without it
	regressor, err := model.LoadRegressor(server.Config.ModelFile)
	if err != nil {
		log.Fatalf("unable to load model, error %v", err)
	}
	svc := scoring.New(regressor)
	server.Server(&server.Service{
		Name:     scoring.Name,
		Title:    "Test score prediction",
		Artifact: server.Config.ModelFile,
		Docs:     "score.md",
		Routes:   svc.Routes(),
	})
}
