package server

// config module
//
// Copyright (c) 2023 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v2"
)

// Configuration stores server configuration parameters
type Configuration struct {
	// web server parts
	Base    string `json:"base" yaml:"base"`         // base URL
	LogFile string `json:"log_file" yaml:"log_file"` // server log file
	Port    int    `json:"port" yaml:"port"`         // server port number
	Verbose int    `json:"verbose" yaml:"verbose"`   // verbose output

	// server parts
	RootCAs       string   `json:"rootCAs" yaml:"rootCAs"`           // server Root CAs path
	ServerCrt     string   `json:"server_cert" yaml:"server_cert"`   // server certificate
	ServerKey     string   `json:"server_key" yaml:"server_key"`     // server certificate
	DomainNames   []string `json:"domain_names" yaml:"domain_names"` // LetsEncrypt domain names
	LimiterPeriod string   `json:"rate" yaml:"rate"`                 // limiter rate value

	// artifact parts
	DataFile  string `json:"data_file" yaml:"data_file"`   // dataset file
	ModelFile string `json:"model_file" yaml:"model_file"` // model artifact file
	CacheSize int    `json:"cache_size" yaml:"cache_size"` // number of cached recommendations
}

// Config variable represents configuration object
var Config Configuration

// ParseConfig parses server configuration file on top of given defaults,
// empty file name means defaults only. Files with .yaml or .yml extension
// are parsed as YAML, otherwise as JSON.
func ParseConfig(configFile string, defaults Configuration) error {
	Config = defaults
	if configFile != "" {
		data, err := os.ReadFile(filepath.Clean(configFile))
		if err != nil {
			log.Println("Unable to read", err)
			return err
		}
		ext := strings.ToLower(filepath.Ext(configFile))
		if ext == ".yaml" || ext == ".yml" {
			err = yaml.Unmarshal(data, &Config)
		} else {
			err = json.Unmarshal(data, &Config)
		}
		if err != nil {
			log.Println("Unable to parse", err)
			return err
		}
	}

	// default values
	if Config.Port == 0 {
		Config.Port = 8181
	}
	if Config.LimiterPeriod == "" {
		Config.LimiterPeriod = "100-S"
	}
	if Config.CacheSize == 0 {
		Config.CacheSize = 128
	}
	return nil
}
