package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

type server struct {
	store *recordStore
	opts  widgetOptions
	now   func() time.Time
}

func newServer(store *recordStore, cfg config) *server {
	return &server{
		store: store,
		opts:  widgetOptions{Goal: cfg.Goal, Bars: cfg.Bars},
		now:   time.Now,
	}
}

func (s *server) routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.health).Methods("GET")
	r.HandleFunc("/api/records", s.getToday).Methods("GET")
	r.HandleFunc("/api/records", s.putRecord).Methods("POST")
	r.HandleFunc("/api/records/year/{year:[0-9]{4}}", s.getYear).Methods("GET")
	r.HandleFunc("/api/records/year/{year:[0-9]{4}}/month/{month:[0-9]{1,2}}", s.getMonth).Methods("GET")
	r.HandleFunc("/api/records/{date}", s.getRecord).Methods("GET")
	r.HandleFunc("/api/widgets/{kind}", s.getWidget).Methods("GET")

	return r
}

// handler wraps the router with logging and CORS.
func (s *server) handler(origins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{requestIDHeader},
	})
	return c.Handler(loggingMiddleware(s.routes()))
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
}

func (s *server) today() string {
	return s.now().Format(dateLayout)
}

func (s *server) getToday(w http.ResponseWriter, r *http.Request) {
	s.writeRecord(w, r, s.today())
}

func (s *server) getRecord(w http.ResponseWriter, r *http.Request) {
	s.writeRecord(w, r, mux.Vars(r)["date"])
}

func (s *server) writeRecord(w http.ResponseWriter, r *http.Request, date string) {
	rec, err := s.store.Get(r.Context(), date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *server) putRecord(w http.ResponseWriter, r *http.Request) {
	var in recordInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	rec := in.record()
	if err := s.store.Put(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *server) getYear(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(mux.Vars(r)["year"])
	records, err := s.store.Year(r.Context(), year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(records))
}

func (s *server) getMonth(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, _ := strconv.Atoi(vars["year"])
	month, _ := strconv.Atoi(vars["month"])
	if month < 1 || month > 12 {
		http.Error(w, "Invalid month", http.StatusBadRequest)
		return
	}
	records, err := s.store.Month(r.Context(), year, time.Month(month))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(records))
}

// getWidget serves a widget view model. Query parameters: date (default
// today), privacy (bool), format=text for a terminal rendering.
func (s *server) getWidget(w http.ResponseWriter, r *http.Request) {
	kind := mux.Vars(r)["kind"]
	q := r.URL.Query()

	date := q.Get("date")
	if date == "" {
		date = s.today()
	}
	opts := s.opts
	if p := q.Get("privacy"); p != "" {
		privacy, err := strconv.ParseBool(p)
		if err != nil {
			http.Error(w, "Invalid privacy flag", http.StatusBadRequest)
			return
		}
		opts.Privacy = privacy
	}

	rec, err := s.store.Get(r.Context(), date)
	if err != nil {
		writeError(w, err)
		return
	}
	widget, ok := buildWidget(kind, rec, opts)
	if !ok {
		http.Error(w, "Unknown widget kind", http.StatusNotFound)
		return
	}

	if q.Get("format") == "text" {
		columns, _ := strconv.Atoi(q.Get("columns"))
		text, err := newRenderer(columns).render(widget)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(text + "\n"))
		return
	}
	writeJSON(w, http.StatusOK, widget)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errRecordNotFound):
		http.Error(w, "Record not found", http.StatusNotFound)
	case errors.Is(err, errInvalidRecord):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("Error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func nonNil(records []DailyRecord) []DailyRecord {
	if records == nil {
		return []DailyRecord{}
	}
	return records
}
