// Package webservice serves a network read-only over HTTP.
package webservice

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/ohowland/cgc_augment/internal/pkg/network"
)

const contentType = "application/json; charset=UTF-8"

// NetworkInfo describes the served network.
type NetworkInfo struct {
	Name          string                    `json:"Name"`
	PID           uuid.UUID                 `json:"PID"`
	SnapshotHours float64                   `json:"SnapshotHours"`
	Counts        map[network.Component]int `json:"Counts"`
}

type errorBody struct {
	Error string `json:"Error"`
}

// App holds the network being served.
type App struct {
	network *network.Network
}

// New serves n.
func New(n *network.Network) *App {
	return &App{network: n}
}

// Router returns the routes of the app.
func (a *App) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", BaseHandler).Methods("GET")
	r.HandleFunc("/network", a.NetworkHandler).Methods("GET")
	r.HandleFunc("/network/{component}", a.ComponentHandler).Methods("GET")
	r.HandleFunc("/network/{component}/{name}", a.RowHandler).Methods("GET")
	return r
}

// BaseHandler answers health checks.
func BaseHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
}

// NetworkHandler returns the network name, PID and row counts.
func (a *App) NetworkHandler(w http.ResponseWriter, r *http.Request) {
	c := a.network.Components()
	counts := make(map[network.Component]int, len(network.ComponentNames))
	for _, comp := range network.ComponentNames {
		for _, n := range c.CarrierCounts(comp) {
			counts[comp] += n
		}
	}

	writeJSON(w, http.StatusOK, NetworkInfo{
		Name:          a.network.Name(),
		PID:           a.network.PID(),
		SnapshotHours: a.network.SnapshotHours(),
		Counts:        counts,
	})
}

// ComponentHandler returns every row of one component table.
func (a *App) ComponentHandler(w http.ResponseWriter, r *http.Request) {
	comp := network.Component(mux.Vars(r)["component"])
	rows, ok := a.network.Components().Rows(comp)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{"unknown component " + string(comp)})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// RowHandler returns one row by name.
func (a *App) RowHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	comp := network.Component(vars["component"])
	if _, ok := a.network.Components().Rows(comp); !ok {
		writeJSON(w, http.StatusNotFound, errorBody{"unknown component " + string(comp)})
		return
	}
	row, ok := a.network.Row(comp, vars["name"])
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{string(comp) + " " + vars["name"] + " not found"})
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", contentType)
	body, err := json.Marshal(v)
	if err != nil {
		log.Println("[Webservice] malformed JSON:", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Println("[Webservice] write:", err)
	}
}
