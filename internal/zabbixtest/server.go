// Package zabbixtest provides an in-process fake Zabbix JSON-RPC server
// for tests: fixture listings, canned export documents, and a configurable
// login parameter convention.
package zabbixtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"

	"github.com/evgkrsk/zabbix-review-export/internal/models"
)

// Token is the session token the fake server issues on a successful login.
const Token = "0424bd59b807674191e7d77572075f33"

// Server is a fake Zabbix API endpoint backed by httptest.
type Server struct {
	*httptest.Server

	// LoginParam is the user.login parameter name the server accepts:
	// "username" (Zabbix >= 5.4) or "user" (older). Other shapes get a
	// -32602 error, like a real server of the opposite generation.
	LoginParam string

	// Listings maps a listing method ("host.get") to its result.
	Listings map[string][]models.Resource

	// Exports maps "<class>/<id>" to the markup document returned by
	// configuration.export for that single object.
	Exports map[string]string

	// Calls records every method invoked, in order.
	Calls []string
}

// New starts a fake server accepting the modern login convention.
func New() *Server {
	s := &Server{
		LoginParam: "username",
		Listings:   map[string][]models.Resource{},
		Exports:    map[string]string{},
	}
	r := chi.NewRouter()
	r.Post("/api_jsonrpc.php", s.handle)
	s.Server = httptest.NewServer(r)
	return s
}

type rpcRequest struct {
	JSONRPC string                 `json:"jsonrpc"`
	Method  string                 `json:"method"`
	Params  map[string]interface{} `json:"params"`
	ID      string                 `json:"id"`
	Auth    string                 `json:"auth"`
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, req.ID, -32700, "Parse error.", err.Error())
		return
	}
	s.Calls = append(s.Calls, req.Method)

	switch req.Method {
	case "user.login":
		if _, ok := req.Params[s.LoginParam]; !ok {
			writeError(w, req.ID, -32602, "Invalid params.",
				fmt.Sprintf(`unexpected parameter shape, want %q`, s.LoginParam))
			return
		}
		writeResult(w, req.ID, Token)

	case "apiinfo.version":
		writeResult(w, req.ID, "6.0.0")

	case "configuration.export":
		if req.Auth != Token {
			writeError(w, req.ID, -32602, "Not authorised.", "session terminated")
			return
		}
		options, _ := req.Params["options"].(map[string]interface{})
		for class, ids := range options {
			list, _ := ids.([]interface{})
			for _, id := range list {
				if doc, ok := s.Exports[fmt.Sprintf("%s/%v", class, id)]; ok {
					writeResult(w, req.ID, doc)
					return
				}
			}
		}
		writeError(w, req.ID, -32602, "Invalid params.", "no such object")

	default:
		if req.Auth != Token {
			writeError(w, req.ID, -32602, "Not authorised.", "session terminated")
			return
		}
		listing, ok := s.Listings[req.Method]
		if !ok {
			writeError(w, req.ID, -32601, "Method not found.", req.Method)
			return
		}
		if listing == nil {
			listing = []models.Resource{}
		}
		writeResult(w, req.ID, listing)
	}
}

func writeResult(w http.ResponseWriter, id string, result interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jsonrpc": "2.0",
		"result":  result,
		"id":      id,
	})
}

func writeError(w http.ResponseWriter, id string, code int, message, data string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jsonrpc": "2.0",
		"error":   map[string]interface{}{"code": code, "message": message, "data": data},
		"id":      id,
	})
}
