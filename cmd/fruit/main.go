package main

// fruit - Go implementation of fruit quality classification service
//
// Copyright (c) 2023 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/vkuznet/mlservices/internal/model"
	"github.com/vkuznet/mlservices/internal/quality"
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
		fmt.Println(server.Info(quality.Name))
		os.Exit(0)
	}
	defaults := server.Configuration{
		Port:      8001,
		ModelFile: "./modelo_qualidade_frutas.json",
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

	classifier, err := model.LoadClassifier(server.Config.ModelFile)
	if err != nil {
		log.Fatalf("unable to load model, error %v", err)
	}
	if err := quality.CheckFeatures(classifier.NumFeatures(), classifier.Features()); err != nil {
		log.Fatalf("model %s does not match service features, error %v", server.Config.ModelFile, err)
	}
	svc := quality.New(classifier)
	server.Server(&server.Service{
		Name:     quality.Name,
		Title:    "Fruit quality classification",
		Artifact: server.Config.ModelFile,
		Docs:     "fruit.md",
		Routes:   svc.Routes(),
	})
}
