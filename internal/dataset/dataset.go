// Package dataset loads the clustered laptops table and answers
// "show me everything in the same cluster" recommendations.
//
// The table is read once, kept in memory and never modified. Each row keeps
// all of its columns; only the model and cluster columns carry meaning here.
package dataset

// dataset module
//
// Copyright (c) 2023 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vkuznet/mlservices/internal/artifact"
)

// column names used by recommendation logic
const (
	ModelColumn   = "model"
	ClusterColumn = "cluster"
)

// Row represents single dataset record
type Row struct {
	Model   string   `json:"model"`   // model identifier, not guaranteed to be unique
	Cluster string   `json:"cluster"` // cluster label
	Values  []string `json:"values"`  // all column values in header order
}

// Dataset represents immutable in-memory table
type Dataset struct {
	Path    string   // file the dataset was loaded from
	Columns []string // header columns
	Rows    []Row    // rows in file order

	models []string
	first  map[string]int
	cache  *lru.Cache[string, []Row]
}

// Load reads delimited file with header row. The cacheSize controls how many
// cluster selections are memoised, zero disables the cache.
func Load(path string, cacheSize int) (*Dataset, error) {
	data, err := artifact.ReadFile("dataset", path)
	if err != nil {
		return nil, err
	}
	ds, err := Parse(bytes.NewReader(data), cacheSize)
	if err != nil {
		return nil, artifact.Wrap("dataset", path, err)
	}
	ds.Path = path
	return ds, nil
}

// Parse reads dataset from given reader
func Parse(r io.Reader, cacheSize int) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("dataset has no header")
		}
		return nil, err
	}
	for i, col := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
	}
	midx, cidx := -1, -1
	for i, col := range header {
		switch col {
		case ModelColumn:
			midx = i
		case ClusterColumn:
			cidx = i
		}
	}
	if midx < 0 || cidx < 0 {
		return nil, fmt.Errorf("dataset requires '%s' and '%s' columns, found %v", ModelColumn, ClusterColumn, header)
	}

	ds := &Dataset{Columns: header, first: make(map[string]int)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := Row{
			Model:   strings.TrimSpace(record[midx]),
			Cluster: strings.TrimSpace(record[cidx]),
			Values:  record,
		}
		if _, ok := ds.first[row.Model]; !ok {
			ds.first[row.Model] = len(ds.Rows)
			ds.models = append(ds.models, row.Model)
		}
		ds.Rows = append(ds.Rows, row)
	}
	if cacheSize > 0 {
		cache, err := lru.New[string, []Row](cacheSize)
		if err != nil {
			return nil, err
		}
		ds.cache = cache
	}
	return ds, nil
}

// Models returns distinct model names in the order they first appear
func (d *Dataset) Models() []string {
	return d.models
}

// Len returns number of rows in dataset
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Lookup returns first row with given model name. When the same model
// appears multiple times the first one in file order is used.
func (d *Dataset) Lookup(model string) (Row, bool) {
	idx, ok := d.first[model]
	if !ok {
		return Row{}, false
	}
	return d.Rows[idx], true
}

// Cluster returns all rows with given cluster label in file order
func (d *Dataset) Cluster(label string) []Row {
	if d.cache != nil {
		if rows, ok := d.cache.Get(label); ok {
			return rows
		}
	}
	var rows []Row
	for _, row := range d.Rows {
		if row.Cluster == label {
			rows = append(rows, row)
		}
	}
	if d.cache != nil {
		d.cache.Add(label, rows)
	}
	return rows
}

// Recommend returns rows which share cluster with given model. Unknown
// models yield empty result. Returned rows must not be modified.
func (d *Dataset) Recommend(model string) []Row {
	row, ok := d.Lookup(model)
	if !ok {
		return nil
	}
	return d.Cluster(row.Cluster)
}
