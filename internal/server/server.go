// Package server provides HTTP infrastructure shared by our ML services:
// router with logging and rate limiting middlewares, configuration,
// error envelopes, request validation, templates, docs and metrics.
package server

// server module
//
// Copyright (c) 2023 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"crypto/tls"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bunrouter"
)

// StaticFs is our static web server content.
//
//go:embed static
var StaticFs embed.FS

// Version of the code, set by main packages
var Version string

// Info returns version string of the server
func Info(name string) string {
	goVersion := runtime.Version()
	tstamp := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s git=%s go=%s date=%s", name, Version, goVersion, tstamp)
}

// Route represents service end-point
type Route struct {
	Method  string           // HTTP method
	Path    string           // route path relative to base URL
	Handler http.HandlerFunc // route handler
}

// Service represents single ML service hosted by our server
type Service struct {
	Name     string  // service name used in logs, metrics and pages
	Title    string  // human readable title
	Artifact string  // dataset or model file served by this service
	Docs     string  // markdown document in static/md area
	Routes   []Route // service specific routes
	Started  time.Time
}

// Router provides bunrouter implementation of the compatible (with net/http)
// router handlers for given service
func Router(svc *Service) *bunrouter.CompatRouter {
	if svc.Started.IsZero() {
		svc.Started = time.Now()
	}
	router := bunrouter.New(
		bunrouter.Use(bunrouterLoggingMiddleware(svc.Name)),
		bunrouter.Use(bunrouterLimitMiddleware),
	).Compat()
	base := Config.Base

	// service APIs
	for _, route := range svc.Routes {
		switch route.Method {
		case http.MethodPost:
			router.POST(base+route.Path, route.Handler)
		case http.MethodPut:
			router.PUT(base+route.Path, route.Handler)
		case http.MethodDelete:
			router.DELETE(base+route.Path, route.Handler)
		default:
			router.GET(base+route.Path, route.Handler)
		}
	}

	// common APIs
	router.GET(base+"/status", StatusHandler(svc))
	router.GET(base+"/docs", DocsHandler(svc))
	router.Router.GET(base+"/metrics", bunrouter.HTTPHandler(promhttp.Handler()))

	// static handlers
	for _, dir := range []string{"css"} {
		filesFS, err := fs.Sub(StaticFs, "static/"+dir)
		if err != nil {
			panic(err)
		}
		m := fmt.Sprintf("%s/%s", base, dir)
		fileServer := http.FileServer(http.FS(filesFS))
		hdlr := http.StripPrefix(m, fileServer)
		router.Router.GET(m+"/*path", bunrouter.HTTPHandler(hdlr))
	}
	return router
}

// Server starts given service, it only returns on fatal errors
func Server(svc *Service) {
	// initialize server middleware
	if err := initLimiter(Config.LimiterPeriod); err != nil {
		log.Fatalf("unable to initialize limiter with rate %s, error %v", Config.LimiterPeriod, err)
	}

	// setup server router
	router := Router(svc)

	// start HTTPs server
	if len(Config.DomainNames) > 0 {
		server := LetsEncryptServer(Config.DomainNames...)
		server.Handler = router
		log.Println("Start HTTPs server with LetsEncrypt", Config.DomainNames)
		log.Fatal(server.ListenAndServeTLS("", ""))
	} else if Config.ServerCrt != "" && Config.ServerKey != "" {
		tlsConfig := &tls.Config{
			RootCAs: RootCAs(),
		}
		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", Config.Port),
			TLSConfig:         tlsConfig,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		log.Printf("Start HTTPs %s server with %s and %s on :%d", svc.Name, Config.ServerCrt, Config.ServerKey, Config.Port)
		log.Fatal(server.ListenAndServeTLS(Config.ServerCrt, Config.ServerKey))
	} else {
		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", Config.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		log.Printf("Start HTTP %s server on :%d", svc.Name, Config.Port)
		log.Fatal(server.ListenAndServe())
	}
}
