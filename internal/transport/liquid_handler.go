// Package transport exposes the ledger read API over HTTP.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/service/reporting"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// LiquidHandler serves the peg and reserve projections as JSON.
type LiquidHandler struct {
	reporting Reporting
	logger    *zap.Logger
}

// NewLiquidHandler returns a LiquidHandler instance.
func NewLiquidHandler(projections Reporting, logger *zap.Logger) *LiquidHandler {
	return &LiquidHandler{reporting: projections, logger: logger}
}

const liquidAPI = "/api/v1/liquid"

// Router registers every read route on a new mux router. Routes sit on the
// root router so a wrong method answers 405 instead of 404.
func (h *LiquidHandler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	get := func(path string, fn http.HandlerFunc) {
		r.HandleFunc(liquidAPI+path, fn).Methods(http.MethodGet)
	}
	get("/pegs", serve(h, h.reporting.CurrentSupply))
	get("/pegs/month", serve(h, h.reporting.PegsByMonth))
	get("/pegs/list", h.PegEvents)
	get("/reserves", serve(h, h.reporting.CurrentReserves))
	get("/reserves/status", serve(h, h.reporting.AuditStatus))
	get("/reserves/month", serve(h, h.reporting.ReservesByMonth))
	get("/reserves/addresses", serve(h, h.reporting.TopAddresses))
	get("/reserves/addresses/total", serve(h, h.reporting.AddressesTotal))
	get("/reserves/addresses/all", serve(h, h.reporting.FederationAddresses))
	get("/reserves/utxos", serve(h, h.reporting.FederationUtxos))
	get("/reserves/utxos/{txid}/{index:[0-9]+}", h.FederationUtxo)
	return r
}

// Health reports server health.
func (h *LiquidHandler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// PegEvents serves a page of recorded peg events; limit and offset are optional.
func (h *LiquidHandler) PegEvents(w http.ResponseWriter, r *http.Request) {
	limit, err := queryUint(r, "limit")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	offset, err := queryUint(r, "offset")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid offset")
		return
	}
	events, err := h.reporting.PegEvents(r.Context(), limit, offset)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// FederationUtxo serves a single unspent reserve output.
func (h *LiquidHandler) FederationUtxo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, err := strconv.ParseUint(vars["index"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid output index")
		return
	}
	utxo, err := h.reporting.FederationUtxo(r.Context(), model.Outpoint{TxID: vars["txid"], Index: uint32(index)})
	if errors.Is(err, reporting.ErrNotFound) {
		respondError(w, http.StatusNotFound, "utxo not found")
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, utxo)
}

// serve adapts a parameterless projection into a JSON handler.
func serve[T any](h *LiquidHandler, project func(ctx context.Context) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := project(r.Context())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

func (h *LiquidHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("read api request failed", zap.String("path", r.URL.Path), zap.Error(err))
	respondError(w, http.StatusInternalServerError, err.Error())
}

func queryUint(r *http.Request, key string) (uint64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseUint(raw, 10, 64)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondJSON writes payload as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
