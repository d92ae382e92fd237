package server

// templates module
//
// Copyright (c) 2023 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"strconv"
	"sync"
)

// TmplRecord represent template record
type TmplRecord map[string]interface{}

// GetInt converts given value for provided key to int data-type
func (t TmplRecord) GetInt(key string) int {
	if v, ok := t[key]; ok {
		if val, err := strconv.Atoi(fmt.Sprintf("%v", v)); err == nil {
			return val
		} else {
			log.Println("ERROR:", err)
		}
	}
	return 0
}

// Templates holds parsed templates from our static area
type Templates struct {
	mu    sync.Mutex
	cache map[string]*template.Template
}

// templates is used by all page handlers
var templates = &Templates{}

// Tmpl renders given template file with provided data
func (q *Templates) Tmpl(tfile string, tmplData TmplRecord) (string, error) {
	q.mu.Lock()
	if q.cache == nil {
		q.cache = make(map[string]*template.Template)
	}
	t, ok := q.cache[tfile]
	if !ok {
		var err error
		// get template from embed.FS
		filenames := []string{"static/templates/" + tfile}
		t, err = template.New(tfile).ParseFS(StaticFs, filenames...)
		if err != nil {
			q.mu.Unlock()
			return "", err
		}
		q.cache[tfile] = t
	}
	q.mu.Unlock()
	buf := new(bytes.Buffer)
	if err := t.Execute(buf, tmplData); err != nil {
		return "", err
	}
	return buf.String(), nil
}
