// Package server decodes charts posted over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"git.lost.host/meutraa/chunichart/internal/catalog"
	"git.lost.host/meutraa/chunichart/internal/parser"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// MaxChartSize bounds a posted chart body.
const MaxChartSize = 8 << 20

type Server struct {
	Options parser.Options
	// Catalog, when set, records every decoded chart under one scan id
	// per server and serves lookups by sum.
	Catalog catalog.Catalog

	scan uuid.UUID
}

// Handler returns the routes wrapped in a permissive CORS policy.
func (s *Server) Handler() http.Handler {
	if nil != s.Catalog {
		s.scan = s.Catalog.NewScan()
	}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/formats", s.handleFormats).Methods("GET")
	router.HandleFunc("/decode/{format}", s.handleDecode).Methods("POST")
	router.HandleFunc("/charts", s.handleCharts).Methods("GET").Queries("sum", "{sum}")
	return cors.Default().Handler(router)
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, parser.Formats())
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	format, err := parser.ParseFormat(mux.Vars(r)["format"])
	if nil != err {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxChartSize))
	if nil != err {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "chart too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "unable to read chart", http.StatusBadRequest)
		return
	}

	p, err := parser.New(format, s.Options)
	if nil != err {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	summary, err := p.Parse(string(body))
	if nil != err {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if nil != s.Catalog {
		if err := s.Catalog.Save(s.scan, summary); nil != err {
			log.Println("unable to catalog chart", err)
		}
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	if nil == s.Catalog {
		http.Error(w, "no catalog", http.StatusNotFound)
		return
	}
	entries, err := s.Catalog.Load(r.URL.Query().Get("sum"))
	if nil != err {
		log.Println("unable to load catalog entries", err)
		http.Error(w, "unable to load catalog entries", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); nil != err {
		log.Println("unable to encode response", err)
	}
}
