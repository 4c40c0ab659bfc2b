package main

import (
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spencer-p/almanac/pkg/almanac"
	"github.com/spencer-p/almanac/pkg/config"
	"github.com/spencer-p/almanac/pkg/handlers"
	"github.com/spencer-p/almanac/pkg/log"
	"github.com/spencer-p/almanac/pkg/metrics"
)

func main() {
	env, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := log.Init(env.Debug); err != nil {
		panic(err)
	}
	defer log.Sync()

	// One pipeline, and so one pacer, is shared by every request.
	p := almanac.New(env)

	r := mux.NewRouter().StrictSlash(true)
	r.Use(metrics.LatencyHandler)
	r.Handle("/metrics", promhttp.Handler())

	s := r.PathPrefix(env.Prefix).Subrouter()
	s.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "almanac: GET %s?zip=NNNNN\n", path.Join(env.Prefix, "api/v1/almanac"))
	})
	handlers.Register(s, env, p)

	srv := &http.Server{
		Handler:      r,
		Addr:         "0.0.0.0:" + env.Port,
		// Every day of the longest window is paced.
		WriteTimeout: time.Duration(env.MaxDays)*env.Pace + env.Timeout*3,
		ReadTimeout:  15 * time.Second,
	}
	log.Infow("listening", "addr", srv.Addr, "prefix", env.Prefix)
	log.Fatalf("server exited: %v", srv.ListenAndServe())
}
